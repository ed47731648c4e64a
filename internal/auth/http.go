// Copyright (c) 2026 Shareframe. All rights reserved.
// Author: minh.anle.dev@gmail.com

package auth

import (
	"crypto/subtle"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/minhanle/shareframe/internal/platform/apperr"
	"github.com/minhanle/shareframe/internal/platform/config"
	"github.com/minhanle/shareframe/internal/platform/constants"
	"github.com/minhanle/shareframe/internal/platform/ratelimit"
	requestutil "github.com/minhanle/shareframe/internal/platform/request"
	"github.com/minhanle/shareframe/internal/platform/respond"
	"github.com/minhanle/shareframe/internal/platform/validate"
)

// languageCookieTTL keeps the UI language preference for a year.
const languageCookieTTL = 365 * 24 * time.Hour

// maxUserNameLen bounds the display name embedded in the session token.
const maxUserNameLen = 100

// # Definitions & Constructors

// Handler implements the authentication and CSRF HTTP endpoints.
type Handler struct {
	sessions *Manager
	csrf     *CSRFGuard
	limiter  *ratelimit.Limiter
	cfg      *config.Config
}

// NewHandler constructs a new [Handler] with its dependencies.
func NewHandler(sessions *Manager, csrf *CSRFGuard, limiter *ratelimit.Limiter, cfg *config.Config) *Handler {
	return &Handler{
		sessions: sessions,
		csrf:     csrf,
		limiter:  limiter,
		cfg:      cfg,
	}
}

// Routes returns a [chi.Router] configured with authentication routes.
//
// # Endpoints
//   - POST /auth : Exchanges an invitation code for a session cookie.
//   - GET  /auth : Reports the current session state.
//   - GET  /csrf : Issues a CSRF token for the current session.
func (handler *Handler) Routes() chi.Router {
	router := chi.NewRouter()

	router.Post("/auth", handler.authenticate)
	router.Get("/auth", handler.sessionInfo)
	router.Get("/csrf", handler.csrfToken)

	return router
}

// # Request Payloads

type authenticateRequest struct {
	InvitationCode string `json:"invitationCode"`
	UserName       string `json:"userName"`
	Language       string `json:"language"`
}

/*
Authenticate exchanges an invitation code for a session cookie.

POST /api/auth

Description: Verifies the shared invitation code, creates a fresh signed
session for the supplied display name, and sets the session cookie. When a
language preference is supplied, a long-lived language cookie is set too.
Attempts are rate-limited per client address (5 per 15 minutes) and every
attempt — accepted or rejected — counts against the window.

Request:
  - Body: authenticateRequest (InvitationCode, UserName, Language?)

Response:
  - 200: {success, message} with Set-Cookie: session=...
  - 400: validationError: Missing invitation code or name
  - 401: invalidInvitationCode
  - 429: rateLimited with X-RateLimit-* headers
*/
func (handler *Handler) authenticate(writer http.ResponseWriter, request *http.Request) {
	clientIP := requestutil.ClientIP(request)

	result := handler.limiter.Check(
		"auth-"+clientIP,
		constants.AuthRateLimitMax,
		constants.AuthRateLimitWindow,
	)
	ratelimit.SetHeaders(writer, result)

	if !result.Allowed {
		respond.Error(writer, request, apperr.RateLimited(
			"Too many authentication attempts. Please try again later."))
		return
	}

	var input authenticateRequest
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, validate.ErrInvalidJSON)
		return
	}

	validator := &validate.Validator{}
	validator.Required("invitationCode", input.InvitationCode).
		Required("userName", input.UserName).
		MaxLen("userName", input.UserName, maxUserNameLen)

	if err := validator.Err(); err != nil {
		respond.Error(writer, request, err)
		return
	}

	// Constant-time compare; the invitation code is a shared secret.
	if subtle.ConstantTimeCompare([]byte(input.InvitationCode), []byte(handler.cfg.InvitationCode)) != 1 {
		respond.Error(writer, request, apperr.Unauthorized(
			"invalidInvitationCode", "Invalid invitation code"))
		return
	}

	token, _, err := handler.sessions.Create(input.UserName)
	if err != nil {
		respond.Error(writer, request, apperr.Internal(err))
		return
	}

	handler.sessions.WriteCookie(writer, token)
	handler.setLanguageCookie(writer, input.Language)

	respond.OK(writer, map[string]any{
		"success": true,
		"message": "Authentication successful",
	})
}

/*
SessionInfo reports the current session state.

GET /api/auth

Response:
  - 200: {authenticated, sessionId, userName, albumIds}
  - 401: {authenticated: false} when no valid session cookie is present
*/
func (handler *Handler) sessionInfo(writer http.ResponseWriter, request *http.Request) {
	session, err := handler.sessions.FromRequest(request)
	if err != nil {
		respond.JSON(writer, http.StatusUnauthorized, map[string]any{
			"authenticated": false,
		})
		return
	}

	respond.OK(writer, map[string]any{
		"authenticated": true,
		"sessionId":     session.SessionID,
		"userName":      session.UserName,
		"albumIds":      session.AlbumIDs,
	})
}

/*
CSRFToken issues a CSRF token bound to the current session.

GET /api/csrf

Response:
  - 200: {csrfToken}
  - 401: authenticationRequired when no valid session is present
*/
func (handler *Handler) csrfToken(writer http.ResponseWriter, request *http.Request) {
	session, err := handler.sessions.FromRequest(request)
	if err != nil {
		respond.Error(writer, request, apperr.Unauthorized(
			"authenticationRequired", "Authentication required"))
		return
	}

	token, err := handler.csrf.Issue(session.SessionID)
	if err != nil {
		respond.Error(writer, request, apperr.Internal(err))
		return
	}

	respond.OK(writer, map[string]string{
		"csrfToken": token,
	})
}

// setLanguageCookie persists the guest's UI language preference.
//
// The cookie is intentionally readable by client-side script: the browser UI
// resolves its translation table from it before any API call is made.
func (handler *Handler) setLanguageCookie(writer http.ResponseWriter, language string) {
	language = strings.TrimSpace(language)
	if language == "" {
		return
	}

	http.SetCookie(writer, &http.Cookie{
		Name:     handler.cfg.LanguageCookieName,
		Value:    language,
		Path:     "/",
		MaxAge:   int(languageCookieTTL / time.Second),
		Secure:   handler.cfg.IsProduction(),
		HttpOnly: false,
		SameSite: http.SameSiteLaxMode,
	})
}
