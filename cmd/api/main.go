// Copyright (c) 2026 Shareframe. All rights reserved.
// Author: minh.anle.dev@gmail.com

// Command api is the entry point for the Shareframe HTTP server.
//
// # Startup Sequence
//
//  1. Initialize structured logger.
//  2. Load configuration from environment variables.
//  3. Construct the fixed-window rate limiter and start its sweep.
//  4. Construct the media-backend client.
//  5. Wire HTTP handlers.
//  6. Start HTTP server with graceful shutdown.
//
// No business logic lives here. All wiring is explicit constructor injection.
package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/minhanle/shareframe/internal/album"
	"github.com/minhanle/shareframe/internal/api"
	"github.com/minhanle/shareframe/internal/auth"
	"github.com/minhanle/shareframe/internal/immich"
	"github.com/minhanle/shareframe/internal/platform/config"
	"github.com/minhanle/shareframe/internal/platform/constants"
	"github.com/minhanle/shareframe/internal/platform/ratelimit"
	"github.com/minhanle/shareframe/internal/upload"
)

func main() {
	// ── 1. Logger ──────────────────────────────────────────────────────────
	// Initialize first so that subsequent startup errors are structured JSON.
	rawLog := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	}))

	// Add global context to all log entries.
	log := rawLog.With(slog.String("app", constants.AppName))
	slog.SetDefault(log)

	log.Info("service_initializing")

	// ── 2. Configuration ──────────────────────────────────────────────────
	cfg, err := config.Load()
	must(log, err, "load configuration")

	if cfg.Debug {
		debugLog := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
			Level: slog.LevelDebug,
		}))
		log = debugLog.With(slog.String("app", constants.AppName))
		slog.SetDefault(log)
		log.Debug("debug_logging_enabled")
	}

	log.Info("configuration_loaded",
		slog.String("environment", cfg.Environment),
		slog.String("port", cfg.ServerPort),
		slog.String("media_backend", cfg.ImmichServerURL),
	)

	// Root context: cancelled on shutdown so background goroutines
	// (rate-limit sweeps, the global IP throttle cleaner) stop cleanly.
	appCtx, appCancel := context.WithCancel(context.Background())
	defer appCancel()

	// ── 3. Fixed-Window Rate Limiter ──────────────────────────────────────
	limiter := ratelimit.New()
	go limiter.Sweep(appCtx, constants.RateLimitSweepInterval)

	// ── 4. Media-Backend Client ───────────────────────────────────────────
	media := immich.NewClient(cfg.ImmichServerURL, cfg.ImmichAPIKey, log)

	// ── 5. Domain Wiring ──────────────────────────────────────────────────
	sessions := auth.NewManager(cfg.SessionSecret, cfg.IsProduction())
	csrfGuard := auth.NewCSRFGuard(cfg.SessionSecret)

	handlers := api.Handlers{
		Health:   api.NewHealthHandler(),
		Manifest: api.NewManifestHandler(cfg),
		Auth:     auth.NewHandler(sessions, csrfGuard, limiter, cfg),
		Upload:   upload.NewHandler(sessions, csrfGuard, limiter, media),
		Album:    album.NewHandler(media),
	}

	// ── 6. HTTP Server ────────────────────────────────────────────────────
	server := api.NewServer(appCtx, cfg, log, handlers)

	// ── 7. Graceful Shutdown ──────────────────────────────────────────────
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGTERM, syscall.SIGINT)

	serverErr := make(chan error, 1)
	go func() {
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
		}
	}()

	// Block until OS signal or server error.
	select {
	case sig := <-quit:
		log.Info("shutdown signal received", slog.String("signal", sig.String()))
	case err := <-serverErr:
		log.Error("server startup error", slog.Any("error", err))
	}

	appCancel()

	// Give in-flight requests enough time to complete.
	shutdownTimeout := constants.ShutdownTimeout
	log.Info("shutting down server", slog.Duration("timeout", shutdownTimeout))

	if err := server.Shutdown(shutdownTimeout); err != nil {
		log.Error("shutdown error", slog.Any("error", err))
		os.Exit(1)
	}

	log.Info("server stopped cleanly")
}

// must logs a structured fatal error and terminates the process if err is non-nil.
//
// It is intentionally limited to startup wiring. After startup, all errors
// must be returned and handled explicitly (never panic).
func must(log *slog.Logger, err error, context string) {
	if err != nil {
		log.Error("startup failure",
			slog.String("context", context),
			slog.Any("error", err),
		)
		os.Exit(1)
	}
}
