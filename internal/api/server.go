// Copyright (c) 2026 Shareframe. All rights reserved.
// Author: minh.anle.dev@gmail.com

/*
Package api wires together the HTTP router, middleware chain, and all
domain handlers into a runnable [http.Server].

Architecture:

  - This package is the topmost Presentation layer boundary.
  - It acts as the central composition root for the HTTP transport framework (chi router).
  - Only this package and cmd/api are allowed to import net/http server primitives.
*/
package api

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"

	"github.com/minhanle/shareframe/internal/album"
	"github.com/minhanle/shareframe/internal/auth"
	"github.com/minhanle/shareframe/internal/platform/config"
	"github.com/minhanle/shareframe/internal/platform/constants"
	"github.com/minhanle/shareframe/internal/platform/middleware"
	"github.com/minhanle/shareframe/internal/upload"
)

// # Server Definitions

// Server wraps the chi router and the [http.Server].
//
// It is constructed once in main.go with all dependencies injected.
type Server struct {
	httpServer *http.Server
	router     *chi.Mux
	log        *slog.Logger
}

// # Handler Registry

// Handlers groups all domain-specific HTTP handler sets.
//
// # Usage
//
// New domains add a field here — no other change to server.go is required.
type Handlers struct {
	// Health is the /api/health liveness handler.
	Health http.HandlerFunc

	// Manifest serves the installable-app descriptor.
	Manifest http.HandlerFunc

	// Auth handles authentication and CSRF issuance.
	Auth *auth.Handler

	// Upload orchestrates upload batches against the media backend.
	Upload *upload.Handler

	// Album proxies album management to the media backend.
	Album *album.Handler
}

// # Server Initialization

// NewServer constructs the chi router with the full middleware chain and
// registers all route groups under the configured base path.
//
// There is deliberately no global request timeout middleware: upload bodies
// can legitimately take minutes on slow guest connections, so deadlines are
// enforced by the server read/write timeouts and the media-backend client's
// own per-call timeout instead.
func NewServer(context context.Context, cfg *config.Config, log *slog.Logger, h Handlers) *Server {
	r := chi.NewRouter()

	// # Middleware Chain
	// Global middleware applied in order of execution.
	r.Use(middleware.RequestID())
	r.Use(middleware.StructuredLogger(log))
	r.Use(middleware.RateLimit(context))
	r.Use(middleware.PanicRecovery(log))
	r.Use(middleware.CORS(cfg))
	r.Use(chimw.CleanPath)

	// # Application API
	// All routes live under {basePath}/api to support subpath deployment.
	r.Route(cfg.BasePath+"/api", func(api chi.Router) {
		// Infrastructure endpoints, unauthenticated.
		api.Get("/health", h.Health)
		api.Get("/manifest", h.Manifest)

		// Session gate: /auth and /csrf.
		api.Mount("/", h.Auth.Routes())

		// Upload pipeline, body-capped at the configured ceiling.
		api.With(middleware.MaxBody(cfg.BodySizeLimit)).
			Mount("/upload", h.Upload.Routes())

		// Album proxy.
		api.Mount("/albums", h.Album.Routes())
	})

	return &Server{
		router: r,
		log:    log,
		httpServer: &http.Server{
			Addr:              ":" + cfg.ServerPort,
			Handler:           r,
			ReadTimeout:       constants.DefaultReadTimeout,
			WriteTimeout:      constants.DefaultWriteTimeout,
			IdleTimeout:       constants.DefaultIdleTimeout,
			ReadHeaderTimeout: constants.DefaultReadHeaderTimeout,
		},
	}
}

// # Server Lifecycle

// ListenAndServe starts the HTTP server.
//
// It blocks until the server is closed or an error occurs.
func (s *Server) ListenAndServe() error {
	s.log.Info("server starting", slog.String("addr", s.httpServer.Addr))
	return s.httpServer.ListenAndServe()
}

// Shutdown gracefully stops the server, waiting for in-flight requests.
func (s *Server) Shutdown(timeout time.Duration) error {
	context, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()
	return s.httpServer.Shutdown(context)
}

// Router exposes the underlying mux for tests.
func (s *Server) Router() http.Handler {
	return s.router
}
