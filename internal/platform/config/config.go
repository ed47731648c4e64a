// Copyright (c) 2026 Shareframe. All rights reserved.
// Author: minh.anle.dev@gmail.com

/*
Package config handles application-wide settings and environment parsing.

It leverages 'caarlos0/env' to map OS environment variables into a strongly-typed
Go struct, providing early validation and default values.

Usage:

	cfg, err := config.Load()
	if err != nil {
	    log.Fatal(err)
	}

Architecture:

  - Immutability: Once loaded, configuration is read-only.
  - DI-Friendly: Passed to core components via constructors.
  - Zero Hidden State: No global variables are used to store config.

This ensures the application is Twelve-Factor compliant by storing config in the env.
*/
package config

import (
	"fmt"
	"strings"

	"github.com/caarlos0/env/v11"
)

// # Configuration Schema

// Config holds all runtime configuration for the Shareframe server.
//
// Absence of any field marked 'required' is a startup-time fatal condition.
type Config struct {

	// Server settings
	ServerPort  string `env:"SERVER_PORT"  envDefault:"3000"`
	Environment string `env:"ENVIRONMENT"  envDefault:"development"`
	Debug       bool   `env:"DEBUG"        envDefault:"false"`

	// Media backend (Immich)
	ImmichServerURL string `env:"IMMICH_SERVER_URL,required"`
	ImmichAPIKey    string `env:"IMMICH_API_KEY,required"`

	// Shared secret for session and CSRF token signing
	SessionSecret string `env:"JWT_SECRET,required"`

	// Invitation code gating initial authentication
	InvitationCode string `env:"INVITATION_CODE,required"`

	// UI language preference
	DefaultLanguage    string `env:"DEFAULT_LANGUAGE"     envDefault:"en"`
	LanguageCookieName string `env:"LANGUAGE_COOKIE_NAME" envDefault:"shareframe-language"`

	// BasePath allows deploying the app under a subpath (e.g. "/share").
	BasePath string `env:"BASE_PATH"`

	// BodySizeLimit caps the total request body size for uploads, in bytes.
	BodySizeLimit int64 `env:"BODY_SIZE_LIMIT_BYTES" envDefault:"524288000"`

	// Cross-Origin Resource Sharing
	ExtraOrigins string `env:"EXTRA_ORIGINS"`
}

// # Configuration Loading

// Load parses environment variables into a [Config] struct.
func Load() (*Config, error) {

	// Initialize an empty config struct
	cfg := &Config{}

	// Use the 'env' package to map environment variables to struct fields.
	// This will fail if any field marked with 'required' is missing.
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("config: failed to parse environment variables: %w", err)
	}

	// Normalize so route registration can blindly do BasePath + "/api".
	cfg.BasePath = strings.TrimSuffix(cfg.BasePath, "/")
	cfg.ImmichServerURL = strings.TrimSuffix(cfg.ImmichServerURL, "/")

	return cfg, nil
}

// IsDevelopment reports whether the server is running in development mode.
func (c *Config) IsDevelopment() bool {
	return c.Environment == "development"
}

// IsProduction reports whether the server is running in production mode.
func (c *Config) IsProduction() bool {
	return c.Environment == "production"
}

// AllowedOrigins returns the comma-separated EXTRA_ORIGINS as a slice.
func (c *Config) AllowedOrigins() []string {
	if c.ExtraOrigins == "" {
		return nil
	}

	parts := strings.Split(c.ExtraOrigins, ",")
	origins := make([]string, 0, len(parts))
	for _, part := range parts {
		if trimmed := strings.TrimSpace(part); trimmed != "" {
			origins = append(origins, trimmed)
		}
	}
	return origins
}
