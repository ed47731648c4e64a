// Copyright (c) 2026 Shareframe. All rights reserved.
// Author: minh.anle.dev@gmail.com

// Package api contains the health check handler for liveness probes.
package api

import (
	"net/http"
	"time"

	"github.com/minhanle/shareframe/internal/platform/constants"
	"github.com/minhanle/shareframe/internal/platform/respond"
)

// NewHealthHandler creates the /api/health http.HandlerFunc.
//
// It reports process liveness only. The media backend is intentionally not
// probed here: Shareframe should keep serving the login and upload screens
// even while the backend is briefly down, and orchestrators restarting this
// process would not fix a backend outage anyway.
func NewHealthHandler() http.HandlerFunc {
	return func(writer http.ResponseWriter, request *http.Request) {
		respond.OK(writer, map[string]string{
			"status":    "ok",
			"service":   constants.ServiceDisplayName,
			"timestamp": time.Now().UTC().Format(time.RFC3339),
		})
	}
}
