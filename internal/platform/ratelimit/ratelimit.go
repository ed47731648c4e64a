// Copyright (c) 2026 Shareframe. All rights reserved.
// Author: minh.anle.dev@gmail.com

/*
Package ratelimit implements a fixed-window request counter keyed by an
arbitrary string identifier (client address, session id).

All requests for an identifier within one window share a single counter;
once the window's reset time passes, the next request starts a fresh window.

# Concurrency

The table is guarded by a mutex: the read-increment-write sequence on a
counter must be atomic under net/http's one-goroutine-per-request model.
A background sweep removes expired entries so the table stays bounded even
for identifiers that never return.

# Durability

There is none. A process restart resets all counters. This is a soft
abuse-mitigation control, not a hard security boundary.
*/
package ratelimit

import (
	"context"
	"net/http"
	"strconv"
	"sync"
	"time"

	"github.com/minhanle/shareframe/internal/platform/constants"
)

// Result describes the outcome of one rate-limit check.
type Result struct {
	// Allowed reports whether the request may proceed.
	Allowed bool

	// Remaining is how many requests are left in the current window.
	Remaining int

	// ResetTime is when the current window ends and the counter resets.
	ResetTime time.Time
}

type entry struct {
	count     int
	resetTime time.Time
}

// Limiter owns the identifier → window-counter table.
type Limiter struct {
	mu      sync.Mutex
	entries map[string]*entry

	// now is swappable for tests.
	now func() time.Time
}

// New creates an empty Limiter.
func New() *Limiter {
	return &Limiter{
		entries: make(map[string]*entry),
		now:     time.Now,
	}
}

// Check records one attempt for identifier and reports whether it is allowed
// under a policy of maxRequests per window.
//
// The first request for a never-seen identifier (or one whose previous window
// has ended) seeds a fresh window with count 1. While the counter has reached
// maxRequests, further requests are denied and the reset time is unchanged —
// the caller must wait the window out. Denied attempts do not extend the window.
func (l *Limiter) Check(identifier string, maxRequests int, window time.Duration) Result {
	now := l.now()

	l.mu.Lock()
	defer l.mu.Unlock()

	current, found := l.entries[identifier]

	// Expired windows are equivalent to never-seen identifiers.
	if found && now.After(current.resetTime) {
		delete(l.entries, identifier)
		found = false
	}

	if !found {
		reset := now.Add(window)
		l.entries[identifier] = &entry{count: 1, resetTime: reset}
		return Result{
			Allowed:   true,
			Remaining: maxRequests - 1,
			ResetTime: reset,
		}
	}

	if current.count >= maxRequests {
		return Result{
			Allowed:   false,
			Remaining: 0,
			ResetTime: current.resetTime,
		}
	}

	current.count++
	return Result{
		Allowed:   true,
		Remaining: maxRequests - current.count,
		ResetTime: current.resetTime,
	}
}

// Sweep periodically removes entries whose window has ended, independent of
// the request path. It blocks until ctx is cancelled; run it on its own
// goroutine.
func (l *Limiter) Sweep(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			now := l.now()

			l.mu.Lock()
			for identifier, e := range l.entries {
				if now.After(e.resetTime) {
					delete(l.entries, identifier)
				}
			}
			l.mu.Unlock()
		case <-ctx.Done():
			return
		}
	}
}

// Len reports the number of tracked identifiers. Intended for tests and
// observability logging.
func (l *Limiter) Len() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.entries)
}

// SetHeaders stamps the standard rate-limit response headers from a result.
func SetHeaders(writer http.ResponseWriter, result Result) {
	writer.Header().Set(constants.HeaderRateLimitRemaining, strconv.Itoa(result.Remaining))
	writer.Header().Set(constants.HeaderRateLimitReset, result.ResetTime.UTC().Format(time.RFC3339))
}
