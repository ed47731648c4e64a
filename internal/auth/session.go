// Copyright (c) 2026 Shareframe. All rights reserved.
// Author: minh.anle.dev@gmail.com

/*
Package auth implements the invitation-gated session layer.

Shareframe has no user database: all mutable per-guest state (identity and
the list of albums the guest has created) lives inside a signed token held
by the browser as a cookie. Every mutation re-signs the token and replaces
the cookie — the re-sign is the moral equivalent of a database write.

# Architecture

  - Manager: issues, verifies, and incrementally updates session tokens (HS256).
  - CSRFGuard: issues and verifies short-lived session-bound CSRF tokens.
  - Handler: the HTTP delivery layer for /auth and /csrf.

Verification failures are never fatal: an invalid, expired, or foreign token
simply means "not authenticated" and maps to a 401 downstream.
*/
package auth

import (
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"github.com/minhanle/shareframe/internal/platform/constants"
)

// # Errors

var (
	// ErrNoSession means the request carries no session cookie.
	ErrNoSession = errors.New("auth: no session cookie")

	// ErrInvalidSession means the token failed signature or structural checks.
	ErrInvalidSession = errors.New("auth: invalid session token")

	// ErrSessionExpired means the payload-level expiry has passed.
	ErrSessionExpired = errors.New("auth: session expired")

	// ErrSessionMismatch means the cookie's embedded session id does not match
	// the caller's, i.e. a stale or foreign cookie.
	ErrSessionMismatch = errors.New("auth: session id mismatch")
)

// # Session Record

// Session is the identity record for one authenticated browsing session.
type Session struct {
	// SessionID is an opaque unique string generated at session creation.
	SessionID string `json:"sessionId"`

	// UserName is the display name the guest supplied, trimmed of whitespace.
	UserName string `json:"userName"`

	// AlbumIDs is the insertion-ordered, duplicate-free set of album ids the
	// session has created.
	AlbumIDs []string `json:"albumIds"`

	// CreatedAt and ExpiresAt are millisecond timestamps. ExpiresAt is fixed
	// at creation (CreatedAt + 7 days) and never extended by activity.
	CreatedAt int64 `json:"createdAt"`
	ExpiresAt int64 `json:"expiresAt"`
}

// SessionClaims is the JWT payload wrapping a [Session].
//
// The record-level CreatedAt/ExpiresAt fields are carried alongside the
// standard envelope claims; verification checks both (defense in depth
// against envelope/payload expiry skew).
type SessionClaims struct {
	jwt.RegisteredClaims

	SessionID string   `json:"sessionId"`
	UserName  string   `json:"userName"`
	AlbumIDs  []string `json:"albumIds"`
	CreatedAt int64    `json:"createdAt"`
	ExpiresAt int64    `json:"expiresAt"`
}

// # Session Manager

// Manager issues, verifies, and incrementally updates signed session tokens
// backed by a single shared secret.
type Manager struct {
	secret        []byte
	secureCookies bool

	// now is swappable for tests.
	now func() time.Time
}

// NewManager constructs a session [Manager].
//
// secureCookies should be true in production so the session cookie is only
// sent over HTTPS.
func NewManager(secret string, secureCookies bool) *Manager {
	return &Manager{
		secret:        []byte(secret),
		secureCookies: secureCookies,
		now:           time.Now,
	}
}

// Create builds a fresh session for userName and returns the signed token
// together with the record it encodes.
//
// The record starts with no albums; ExpiresAt is fixed at CreatedAt + 7 days.
func (m *Manager) Create(userName string) (string, *Session, error) {
	now := m.now()

	session := &Session{
		SessionID: uuid.NewString(),
		UserName:  strings.TrimSpace(userName),
		AlbumIDs:  []string{},
		CreatedAt: now.UnixMilli(),
		ExpiresAt: now.Add(constants.SessionTTL).UnixMilli(),
	}

	token, err := m.sign(session, now)
	if err != nil {
		return "", nil, err
	}
	return token, session, nil
}

// Verify checks the token's signature and both expiry levels.
//
// Any failure — bad signature, malformed payload, envelope expiry, payload
// expiry — returns a non-nil error that callers must treat as "not
// authenticated", never as a fatal condition.
func (m *Manager) Verify(token string) (*Session, error) {
	claims := &SessionClaims{}

	parsed, err := jwt.ParseWithClaims(token, claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("auth: unexpected signing method: %v", t.Header["alg"])
		}
		return m.secret, nil
	})
	if err != nil || !parsed.Valid {
		return nil, ErrInvalidSession
	}

	// Payload-level expiry check. The envelope expiry above can drift from the
	// record's ExpiresAt after album updates, so both are enforced.
	if claims.ExpiresAt < m.now().UnixMilli() {
		return nil, ErrSessionExpired
	}

	albumIDs := claims.AlbumIDs
	if albumIDs == nil {
		albumIDs = []string{}
	}

	return &Session{
		SessionID: claims.SessionID,
		UserName:  claims.UserName,
		AlbumIDs:  albumIDs,
		CreatedAt: claims.CreatedAt,
		ExpiresAt: claims.ExpiresAt,
	}, nil
}

// FromRequest reads the session cookie from the request and verifies it.
func (m *Manager) FromRequest(request *http.Request) (*Session, error) {
	cookie, err := request.Cookie(constants.SessionCookieName)
	if err != nil || cookie.Value == "" {
		return nil, ErrNoSession
	}
	return m.Verify(cookie.Value)
}

// AppendAlbum records albumID against the session identified by sessionID.
//
// The current cookie is re-read and re-verified, and its embedded session id
// must equal sessionID — a stale or foreign cookie is rejected. Appending an
// id that is already present is a no-op (idempotent). On a real append the
// token is re-signed with a fresh 7-day envelope expiry while the record's
// CreatedAt/ExpiresAt stay untouched, and the cookie is replaced.
func (m *Manager) AppendAlbum(writer http.ResponseWriter, request *http.Request, sessionID, albumID string) error {
	cookie, err := request.Cookie(constants.SessionCookieName)
	if err != nil || cookie.Value == "" {
		return ErrNoSession
	}

	session, err := m.Verify(cookie.Value)
	if err != nil {
		return err
	}

	if session.SessionID != sessionID {
		return ErrSessionMismatch
	}

	for _, existing := range session.AlbumIDs {
		if existing == albumID {
			return nil
		}
	}

	session.AlbumIDs = append(session.AlbumIDs, albumID)

	token, err := m.sign(session, m.now())
	if err != nil {
		return err
	}

	m.WriteCookie(writer, token)
	return nil
}

// WriteCookie sets the session cookie on the response.
func (m *Manager) WriteCookie(writer http.ResponseWriter, token string) {
	http.SetCookie(writer, &http.Cookie{
		Name:     constants.SessionCookieName,
		Value:    token,
		Path:     constants.SessionCookiePath,
		MaxAge:   int(constants.SessionTTL / time.Second),
		Secure:   m.secureCookies,
		HttpOnly: true,
		SameSite: http.SameSiteStrictMode,
	})
}

// sign serializes the session into an HS256 token with a 7-day envelope
// expiry anchored at now.
func (m *Manager) sign(session *Session, now time.Time) (string, error) {
	claims := SessionClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    constants.AuthIssuer,
			Subject:   session.SessionID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(constants.SessionTTL)),
		},
		SessionID: session.SessionID,
		UserName:  session.UserName,
		AlbumIDs:  session.AlbumIDs,
		CreatedAt: session.CreatedAt,
		ExpiresAt: session.ExpiresAt,
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(m.secret)
	if err != nil {
		return "", fmt.Errorf("auth: failed to sign session token: %w", err)
	}
	return signed, nil
}
