// Copyright (c) 2026 Shareframe. All rights reserved.
// Author: minh.anle.dev@gmail.com

package auth_test

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/minhanle/shareframe/internal/auth"
	"github.com/minhanle/shareframe/internal/platform/constants"
)

/*
TestCSRFGuard_IssueAndVerify checks the happy path: a token issued for a
session verifies against that same session.
*/
func TestCSRFGuard_IssueAndVerify(t *testing.T) {
	guard := auth.NewCSRFGuard(testSecret)

	token, err := guard.Issue("session-1")
	require.NoError(t, err)
	require.NotEmpty(t, token)

	assert.NoError(t, guard.Verify(token, "session-1"))
}

/*
TestCSRFGuard_Verify_Rejections covers session binding, purpose, expiry, and
signature failures. Every failure collapses to the same opaque error.
*/
func TestCSRFGuard_Verify_Rejections(t *testing.T) {
	guard := auth.NewCSRFGuard(testSecret)

	valid, err := guard.Issue("session-1")
	require.NoError(t, err)

	tests := []struct {
		name      string
		token     string
		sessionID string
	}{
		{"foreign_session", valid, "session-2"},
		{"garbage_token", "definitely-not-a-jwt", "session-1"},
		{"wrong_secret", signCSRF(t, "other-secret", "session-1", constants.CSRFPurpose, time.Hour), "session-1"},
		{"wrong_purpose", signCSRF(t, testSecret, "session-1", "password-reset", time.Hour), "session-1"},
		{"expired", signCSRF(t, testSecret, "session-1", constants.CSRFPurpose, -time.Minute), "session-1"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := guard.Verify(tt.token, tt.sessionID)
			assert.ErrorIs(t, err, auth.ErrInvalidCSRF)
		})
	}
}

/*
TestCSRFGuard_SessionTokenIsNotCSRF ensures a session token cannot stand in
for a CSRF token even though both are signed with the same secret.
*/
func TestCSRFGuard_SessionTokenIsNotCSRF(t *testing.T) {
	guard := auth.NewCSRFGuard(testSecret)
	manager := auth.NewManager(testSecret, false)

	sessionToken, session, err := manager.Create("Alice")
	require.NoError(t, err)

	err = guard.Verify(sessionToken, session.SessionID)
	assert.ErrorIs(t, err, auth.ErrInvalidCSRF)
}

// signCSRF builds a CSRF token with arbitrary purpose and time-to-live.
func signCSRF(t *testing.T, secret, sessionID, purpose string, ttl time.Duration) string {
	t.Helper()

	now := time.Now()
	claims := auth.CSRFClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    constants.AuthIssuer,
			IssuedAt:  jwt.NewNumericDate(now.Add(-2 * time.Minute)),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
		SessionID: sessionID,
		Purpose:   purpose,
		Timestamp: now.UnixMilli(),
	}

	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(secret))
	require.NoError(t, err)
	return signed
}
