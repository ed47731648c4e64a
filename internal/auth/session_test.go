// Copyright (c) 2026 Shareframe. All rights reserved.
// Author: minh.anle.dev@gmail.com

package auth_test

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/minhanle/shareframe/internal/auth"
	"github.com/minhanle/shareframe/internal/platform/constants"
)

const testSecret = "unit-test-signing-secret"

/*
TestManager_CreateAndVerify checks the full issue-then-verify round trip.
*/
func TestManager_CreateAndVerify(t *testing.T) {
	manager := auth.NewManager(testSecret, false)

	token, session, err := manager.Create("  Alice  ")
	require.NoError(t, err)
	require.NotEmpty(t, token)
	require.NotNil(t, session)

	// The display name is trimmed; a new session has no albums.
	assert.Equal(t, "Alice", session.UserName)
	assert.NotEmpty(t, session.SessionID)
	assert.Equal(t, []string{}, session.AlbumIDs)

	// Expiry is fixed at creation + 7 days, in milliseconds.
	assert.Equal(t, session.CreatedAt+constants.SessionTTL.Milliseconds(), session.ExpiresAt)

	verified, err := manager.Verify(token)
	require.NoError(t, err)
	assert.Equal(t, session.SessionID, verified.SessionID)
	assert.Equal(t, session.UserName, verified.UserName)
	assert.Equal(t, []string{}, verified.AlbumIDs)
	assert.Equal(t, session.CreatedAt, verified.CreatedAt)
	assert.Equal(t, session.ExpiresAt, verified.ExpiresAt)
}

/*
TestManager_Verify_Rejections covers signature and structural failures.
*/
func TestManager_Verify_Rejections(t *testing.T) {
	manager := auth.NewManager(testSecret, false)
	token, _, err := manager.Create("Alice")
	require.NoError(t, err)

	tests := []struct {
		name  string
		token string
	}{
		{"garbage", "not-a-token"},
		{"empty", ""},
		{"wrong_secret", mustSign(t, "other-secret", futureClaims("sid-1"))},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := manager.Verify(tt.token)
			assert.ErrorIs(t, err, auth.ErrInvalidSession)
		})
	}

	// A token from the right secret still verifies; sanity check the fixture.
	_, err = manager.Verify(token)
	assert.NoError(t, err)
}

/*
TestManager_Verify_PayloadExpiry ensures the record-level expiry is enforced
even when the token envelope is still valid.
*/
func TestManager_Verify_PayloadExpiry(t *testing.T) {
	manager := auth.NewManager(testSecret, false)

	claims := futureClaims("sid-1")
	claims.ExpiresAt = time.Now().Add(-time.Hour).UnixMilli()

	_, err := manager.Verify(mustSign(t, testSecret, claims))
	assert.ErrorIs(t, err, auth.ErrSessionExpired)
}

/*
TestManager_FromRequest verifies cookie extraction behavior.
*/
func TestManager_FromRequest(t *testing.T) {
	manager := auth.NewManager(testSecret, false)
	token, session, err := manager.Create("Alice")
	require.NoError(t, err)

	t.Run("no_cookie", func(t *testing.T) {
		request := httptest.NewRequest(http.MethodGet, "/", nil)
		_, err := manager.FromRequest(request)
		assert.ErrorIs(t, err, auth.ErrNoSession)
	})

	t.Run("valid_cookie", func(t *testing.T) {
		request := httptest.NewRequest(http.MethodGet, "/", nil)
		request.AddCookie(&http.Cookie{Name: constants.SessionCookieName, Value: token})

		got, err := manager.FromRequest(request)
		require.NoError(t, err)
		assert.Equal(t, session.SessionID, got.SessionID)
	})
}

/*
TestManager_AppendAlbum covers the append, idempotency, and mismatch paths.
*/
func TestManager_AppendAlbum(t *testing.T) {
	manager := auth.NewManager(testSecret, false)
	token, session, err := manager.Create("Alice")
	require.NoError(t, err)

	t.Run("appends_and_replaces_cookie", func(t *testing.T) {
		request := httptest.NewRequest(http.MethodPost, "/", nil)
		request.AddCookie(&http.Cookie{Name: constants.SessionCookieName, Value: token})
		recorder := httptest.NewRecorder()

		require.NoError(t, manager.AppendAlbum(recorder, request, session.SessionID, "album-1"))

		cookie := sessionCookie(t, recorder)
		updated, err := manager.Verify(cookie.Value)
		require.NoError(t, err)
		assert.Equal(t, []string{"album-1"}, updated.AlbumIDs)

		// The record expiry survives the re-sign untouched.
		assert.Equal(t, session.ExpiresAt, updated.ExpiresAt)
		assert.True(t, cookie.HttpOnly)
	})

	t.Run("idempotent_for_known_album", func(t *testing.T) {
		withAlbum := appendOnce(t, manager, token, session.SessionID, "album-1")

		request := httptest.NewRequest(http.MethodPost, "/", nil)
		request.AddCookie(&http.Cookie{Name: constants.SessionCookieName, Value: withAlbum})
		recorder := httptest.NewRecorder()

		require.NoError(t, manager.AppendAlbum(recorder, request, session.SessionID, "album-1"))

		// No-op appends do not touch the cookie.
		assert.Empty(t, recorder.Result().Cookies())
	})

	t.Run("rejects_foreign_session_id", func(t *testing.T) {
		request := httptest.NewRequest(http.MethodPost, "/", nil)
		request.AddCookie(&http.Cookie{Name: constants.SessionCookieName, Value: token})
		recorder := httptest.NewRecorder()

		err := manager.AppendAlbum(recorder, request, "some-other-session", "album-1")
		assert.ErrorIs(t, err, auth.ErrSessionMismatch)
	})

	t.Run("no_cookie", func(t *testing.T) {
		request := httptest.NewRequest(http.MethodPost, "/", nil)
		recorder := httptest.NewRecorder()

		err := manager.AppendAlbum(recorder, request, session.SessionID, "album-1")
		assert.ErrorIs(t, err, auth.ErrNoSession)
	})
}

// # Fixtures

// futureClaims builds a structurally valid session payload with a live envelope.
func futureClaims(sessionID string) auth.SessionClaims {
	now := time.Now()
	return auth.SessionClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    constants.AuthIssuer,
			Subject:   sessionID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(time.Hour)),
		},
		SessionID: sessionID,
		UserName:  "Alice",
		AlbumIDs:  []string{},
		CreatedAt: now.UnixMilli(),
		ExpiresAt: now.Add(time.Hour).UnixMilli(),
	}
}

// mustSign signs claims with an HS256 token over the given secret.
func mustSign(t *testing.T, secret string, claims auth.SessionClaims) string {
	t.Helper()
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(secret))
	require.NoError(t, err)
	return signed
}

// sessionCookie extracts the session cookie written to the recorder.
func sessionCookie(t *testing.T, recorder *httptest.ResponseRecorder) *http.Cookie {
	t.Helper()
	for _, cookie := range recorder.Result().Cookies() {
		if cookie.Name == constants.SessionCookieName {
			return cookie
		}
	}
	t.Fatal("session cookie not set")
	return nil
}

// appendOnce performs one album append and returns the refreshed token.
func appendOnce(t *testing.T, manager *auth.Manager, token, sessionID, albumID string) string {
	t.Helper()
	request := httptest.NewRequest(http.MethodPost, "/", nil)
	request.AddCookie(&http.Cookie{Name: constants.SessionCookieName, Value: token})
	recorder := httptest.NewRecorder()
	require.NoError(t, manager.AppendAlbum(recorder, request, sessionID, albumID))
	return sessionCookie(t, recorder).Value
}
