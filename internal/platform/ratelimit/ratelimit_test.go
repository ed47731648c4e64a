// Copyright (c) 2026 Shareframe. All rights reserved.
// Author: minh.anle.dev@gmail.com

package ratelimit_test

import (
	"context"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/minhanle/shareframe/internal/platform/ratelimit"
)

// testClock is a swappable, race-safe time source for the limiter.
type testClock struct {
	nanos atomic.Int64
}

func newTestClock(start time.Time) *testClock {
	c := &testClock{}
	c.nanos.Store(start.UnixNano())
	return c
}

func (c *testClock) Now() time.Time { return time.Unix(0, c.nanos.Load()) }

func (c *testClock) Advance(d time.Duration) { c.nanos.Add(int64(d)) }

/*
TestLimiter_WindowExhaustion verifies that requests are allowed up to the
maximum and denied afterward, with Remaining counting down to zero.
*/
func TestLimiter_WindowExhaustion(t *testing.T) {
	clock := newTestClock(time.Date(2026, 8, 1, 12, 0, 0, 0, time.UTC))
	limiter := ratelimit.New()
	ratelimit.SetClock(limiter, clock.Now)

	window := 15 * time.Minute
	expectedReset := clock.Now().Add(window)

	for i := 0; i < 5; i++ {
		result := limiter.Check("auth-203.0.113.7", 5, window)
		assert.True(t, result.Allowed, "request %d should be allowed", i+1)
		assert.Equal(t, 4-i, result.Remaining)
		assert.Equal(t, expectedReset, result.ResetTime)
	}

	// Sixth attempt in the same window is denied.
	denied := limiter.Check("auth-203.0.113.7", 5, window)
	assert.False(t, denied.Allowed)
	assert.Equal(t, 0, denied.Remaining)

	// Denied attempts must not push the reset time out.
	assert.Equal(t, expectedReset, denied.ResetTime)
}

/*
TestLimiter_WindowReset verifies that the counter starts fresh once the
window's reset time has passed.
*/
func TestLimiter_WindowReset(t *testing.T) {
	clock := newTestClock(time.Date(2026, 8, 1, 12, 0, 0, 0, time.UTC))
	limiter := ratelimit.New()
	ratelimit.SetClock(limiter, clock.Now)

	window := 1 * time.Minute

	require.True(t, limiter.Check("upload-session-a", 1, window).Allowed)
	require.False(t, limiter.Check("upload-session-a", 1, window).Allowed)

	clock.Advance(window + time.Second)

	fresh := limiter.Check("upload-session-a", 1, window)
	assert.True(t, fresh.Allowed)
	assert.Equal(t, 0, fresh.Remaining)
	assert.Equal(t, clock.Now().Add(window), fresh.ResetTime)
}

/*
TestLimiter_IndependentIdentifiers verifies that exhausting one identifier
does not affect another.
*/
func TestLimiter_IndependentIdentifiers(t *testing.T) {
	limiter := ratelimit.New()

	require.True(t, limiter.Check("upload-session-a", 1, time.Minute).Allowed)
	require.False(t, limiter.Check("upload-session-a", 1, time.Minute).Allowed)

	assert.True(t, limiter.Check("upload-session-b", 1, time.Minute).Allowed)
	assert.Equal(t, 2, limiter.Len())
}

/*
TestLimiter_Sweep verifies that the background sweep removes expired entries.
*/
func TestLimiter_Sweep(t *testing.T) {
	clock := newTestClock(time.Date(2026, 8, 1, 12, 0, 0, 0, time.UTC))
	limiter := ratelimit.New()
	ratelimit.SetClock(limiter, clock.Now)

	limiter.Check("auth-a", 5, time.Minute)
	limiter.Check("auth-b", 5, time.Minute)
	require.Equal(t, 2, limiter.Len())

	clock.Advance(2 * time.Minute)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go limiter.Sweep(ctx, 5*time.Millisecond)

	assert.Eventually(t, func() bool {
		return limiter.Len() == 0
	}, time.Second, 10*time.Millisecond)
}

/*
TestSetHeaders verifies the X-RateLimit-* response header format.
*/
func TestSetHeaders(t *testing.T) {
	recorder := httptest.NewRecorder()
	reset := time.Date(2026, 8, 1, 12, 15, 0, 0, time.UTC)

	ratelimit.SetHeaders(recorder, ratelimit.Result{
		Allowed:   true,
		Remaining: 3,
		ResetTime: reset,
	})

	assert.Equal(t, "3", recorder.Header().Get("X-RateLimit-Remaining"))
	assert.Equal(t, "2026-08-01T12:15:00Z", recorder.Header().Get("X-RateLimit-Reset"))
}
