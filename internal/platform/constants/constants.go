// Copyright (c) 2026 Shareframe. All rights reserved.
// Author: minh.anle.dev@gmail.com

/*
Package constants provides centralized, immutable values for the entire platform.

It defines default timeouts, rate limits, and cross-cutting keys that are shared
between different layers of the system.

Categories:

  - Server Timing: Read/Write/Idle timeouts for the HTTP server.
  - Rate Limiting: Window policies for authentication and upload throttling.
  - Security: Session/CSRF token lifetimes and cookie configuration.
  - Upload: Batch and per-file limits for the upload pipeline.

Using this package ensures Magic Strings and Magic Numbers are eliminated
from the business logic.
*/
package constants

import "time"

// # Metadata

const (
	AppName    = "shareframe"
	AppVersion = "0.1.0-dev"

	// ServiceDisplayName is the human-readable identifier returned by /api/health.
	ServiceDisplayName = "Shareframe Photo Uploader"
)

// # Server Timing

const (
	// DefaultReadTimeout is the maximum duration for reading the entire request.
	// Large because upload bodies can take a while on slow guest connections.
	DefaultReadTimeout = 10 * time.Minute

	// DefaultWriteTimeout is the maximum duration before timing out writes of the response.
	DefaultWriteTimeout = 10 * time.Minute

	// DefaultIdleTimeout is the maximum amount of time to wait for the next request.
	DefaultIdleTimeout = 120 * time.Second

	// DefaultReadHeaderTimeout is the amount of time allowed to read request headers.
	DefaultReadHeaderTimeout = 5 * time.Second

	// ShutdownTimeout is how long we wait for in-flight requests to complete during shutdown.
	ShutdownTimeout = 30 * time.Second

	// MediaBackendTimeout is the per-call deadline for outbound Immich requests.
	MediaBackendTimeout = 60 * time.Second
)

// # Global IP Throttle (token bucket)

const (
	// DefaultRateLimitRPS is the requests per second allowed per IP.
	DefaultRateLimitRPS = 50.0

	// DefaultRateLimitBurst is the maximum burst allowed for the rate limiter.
	DefaultRateLimitBurst = 100

	// RateLimitCleanupInterval is how often old IP entries are removed from memory.
	RateLimitCleanupInterval = 1 * time.Minute

	// RateLimitClientTTL is how long a client must be idle before its entry is deleted.
	RateLimitClientTTL = 3 * time.Minute
)

// # Fixed-Window Policies

const (
	// AuthRateLimitMax is the number of authentication attempts allowed per
	// client address within [AuthRateLimitWindow].
	AuthRateLimitMax = 5

	// AuthRateLimitWindow is the fixed window for authentication attempts.
	AuthRateLimitWindow = 15 * time.Minute

	// UploadRateLimitMax is the number of upload batches allowed per session
	// within [UploadRateLimitWindow].
	UploadRateLimitMax = 1

	// UploadRateLimitWindow is the fixed window for upload batches.
	UploadRateLimitWindow = 1 * time.Minute

	// RateLimitSweepInterval is how often expired fixed-window entries are
	// garbage-collected, independent of the request path.
	RateLimitSweepInterval = 5 * time.Minute
)

// # Sessions & CSRF

const (
	// AuthIssuer is the standard 'iss' claim in signed tokens.
	AuthIssuer = "shareframe"

	// SessionTTL is the lifetime of a guest session. Fixed at creation and
	// never extended by activity.
	SessionTTL = 7 * 24 * time.Hour

	// SessionCookieName is the name of the cookie that stores the signed session token.
	SessionCookieName = "session"

	// SessionCookiePath scopes the session cookie to the whole app.
	SessionCookiePath = "/"

	// CSRFTokenTTL is the lifetime of an issued CSRF token.
	CSRFTokenTTL = 1 * time.Hour

	// CSRFPurpose is the fixed sentinel value embedded in CSRF token claims.
	CSRFPurpose = "csrf"

	// HeaderCSRFToken carries the CSRF token on state-changing requests.
	HeaderCSRFToken = "X-CSRF-Token"
)

// # Upload Pipeline

const (
	// MaxFilesPerBatch caps the number of files accepted in one upload request.
	MaxFilesPerBatch = 100

	// MaxFileSizeBytes caps the declared size of a single uploaded file (100MB).
	MaxFileSizeBytes = 100 * 1024 * 1024

	// MultipartMemoryBytes is how much of a parsed multipart body is held in
	// memory before spilling to disk (32MB, the net/http default).
	MultipartMemoryBytes = 32 * 1024 * 1024

	// FormFieldAlbumName is the multipart field carrying the album name.
	FormFieldAlbumName = "albumName"

	// FormFieldPhotos is the multipart field carrying the uploaded files.
	FormFieldPhotos = "photos"
)

// # HTTP Headers

const (
	HeaderXRequestID         = "X-Request-ID"
	HeaderXRealIP            = "X-Real-IP"
	HeaderXForwardedFor      = "X-Forwarded-For"
	HeaderOrigin             = "Origin"
	HeaderRateLimitRemaining = "X-RateLimit-Remaining"
	HeaderRateLimitReset     = "X-RateLimit-Reset"
)

// # JSON Field Identifiers

const (
	FieldError   = "error"
	FieldCode    = "code"
	FieldMessage = "message"
	FieldStatus  = "status"
)
