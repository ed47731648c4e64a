// Copyright (c) 2026 Shareframe. All rights reserved.
// Author: minh.anle.dev@gmail.com

package api

import (
	"encoding/json"
	"net/http"

	"github.com/minhanle/shareframe/internal/platform/config"
)

// manifestIcon is one icon entry in the web-app manifest.
type manifestIcon struct {
	Src     string `json:"src"`
	Sizes   string `json:"sizes"`
	Type    string `json:"type"`
	Purpose string `json:"purpose"`
}

// webManifest is the installable-app descriptor served at /api/manifest.
type webManifest struct {
	Name            string         `json:"name"`
	ShortName       string         `json:"short_name"`
	Description     string         `json:"description"`
	StartURL        string         `json:"start_url"`
	Display         string         `json:"display"`
	BackgroundColor string         `json:"background_color"`
	ThemeColor      string         `json:"theme_color"`
	Orientation     string         `json:"orientation"`
	Icons           []manifestIcon `json:"icons"`
	Categories      []string       `json:"categories"`
}

// NewManifestHandler creates the /api/manifest http.HandlerFunc.
//
// All URLs in the manifest honor the configured base path so the app stays
// installable when deployed under a subpath.
func NewManifestHandler(cfg *config.Config) http.HandlerFunc {
	iconSrc := cfg.BasePath + "/icon.svg"

	manifest := webManifest{
		Name:            "Share Photos - Shareframe",
		ShortName:       "Share Photos",
		Description:     "Upload photos to create shared albums",
		StartURL:        cfg.BasePath + "/",
		Display:         "standalone",
		BackgroundColor: "#ffffff",
		ThemeColor:      "#2563eb",
		Orientation:     "portrait-primary",
		Icons: []manifestIcon{
			{Src: iconSrc, Sizes: "192x192", Type: "image/svg+xml", Purpose: "any maskable"},
			{Src: iconSrc, Sizes: "512x512", Type: "image/svg+xml", Purpose: "any maskable"},
		},
		Categories: []string{"photo", "utilities"},
	}

	return func(writer http.ResponseWriter, request *http.Request) {
		writer.Header().Set("Content-Type", "application/manifest+json")
		writer.WriteHeader(http.StatusOK)
		_ = json.NewEncoder(writer).Encode(manifest)
	}
}
