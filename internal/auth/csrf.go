// Copyright (c) 2026 Shareframe. All rights reserved.
// Author: minh.anle.dev@gmail.com

package auth

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/minhanle/shareframe/internal/platform/constants"
)

// ErrInvalidCSRF means the CSRF token failed signature, expiry, purpose, or
// session-binding checks.
var ErrInvalidCSRF = errors.New("auth: invalid csrf token")

// CSRFClaims is the payload of a CSRF token: the session it is bound to, a
// fixed purpose marker, and the issuance timestamp in milliseconds.
type CSRFClaims struct {
	jwt.RegisteredClaims

	SessionID string `json:"sessionId"`
	Purpose   string `json:"purpose"`
	Timestamp int64  `json:"timestamp"`
}

// CSRFGuard issues and verifies short-lived CSRF tokens bound to a session id.
//
// Tokens are not tracked server-side, so a token remains valid for replay
// until its 1-hour expiry elapses. This is a cross-site request forgery
// defense for the mutating upload endpoint, not a replay-proof nonce.
type CSRFGuard struct {
	secret []byte

	// now is swappable for tests.
	now func() time.Time
}

// NewCSRFGuard constructs a [CSRFGuard] over the shared signing secret.
func NewCSRFGuard(secret string) *CSRFGuard {
	return &CSRFGuard{
		secret: []byte(secret),
		now:    time.Now,
	}
}

// Issue signs a fresh CSRF token for sessionID with a 1-hour expiry.
//
// One token is issued per page load; issuance is restricted to
// authenticated callers by the HTTP layer.
func (g *CSRFGuard) Issue(sessionID string) (string, error) {
	now := g.now()

	claims := CSRFClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    constants.AuthIssuer,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(constants.CSRFTokenTTL)),
		},
		SessionID: sessionID,
		Purpose:   constants.CSRFPurpose,
		Timestamp: now.UnixMilli(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(g.secret)
	if err != nil {
		return "", fmt.Errorf("auth: failed to sign csrf token: %w", err)
	}
	return signed, nil
}

// Verify checks token against the caller's current session id.
//
// It fails on bad signature, expiry, a purpose other than the fixed marker,
// or a session id that does not match sessionID.
func (g *CSRFGuard) Verify(token, sessionID string) error {
	claims := &CSRFClaims{}

	parsed, err := jwt.ParseWithClaims(token, claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("auth: unexpected signing method: %v", t.Header["alg"])
		}
		return g.secret, nil
	})
	if err != nil || !parsed.Valid {
		return ErrInvalidCSRF
	}

	if claims.Purpose != constants.CSRFPurpose || claims.SessionID != sessionID {
		return ErrInvalidCSRF
	}

	return nil
}
