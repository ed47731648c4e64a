// Copyright (c) 2026 Shareframe. All rights reserved.
// Author: minh.anle.dev@gmail.com

package upload

import (
	"mime"
	"mime/multipart"

	"github.com/minhanle/shareframe/internal/platform/constants"
)

// # Per-File Error Codes

// Opaque keys resolved to localized text by the browser UI.
const (
	// CodeInvalidFileType marks a declared media type outside the allow-list.
	CodeInvalidFileType = "invalidFileType"

	// CodeFileTooLarge marks a declared size over the 100MB ceiling.
	CodeFileTooLarge = "fileTooLarge"

	// CodeUploadFailed marks a file that passed validation but failed to reach
	// the media backend (temp-file I/O or upstream error).
	CodeUploadFailed = "uploadFailed"
)

// allowedMediaTypes is the allow-list of common image/video types accepted
// for upload. The declared (browser-supplied) type is checked; content
// sniffing is the media backend's job.
var allowedMediaTypes = map[string]struct{}{
	"image/jpeg": {},
	"image/png":  {},
	"image/gif":  {},
	"image/webp": {},
	"image/heic": {},
	"image/heif": {},
	"image/avif": {},
	"image/tiff": {},
	"image/bmp":  {},

	"video/mp4":        {},
	"video/quicktime":  {},
	"video/webm":       {},
	"video/mpeg":       {},
	"video/3gpp":       {},
	"video/x-matroska": {},
	"video/x-msvideo":  {},
}

// FileResult is the per-file outcome reported back to the browser.
// Exactly one of AssetID or Error is set.
type FileResult struct {
	Success  bool   `json:"success"`
	Filename string `json:"filename"`
	AssetID  string `json:"assetId,omitempty"`
	Error    string `json:"error,omitempty"`
}

// Response is the aggregated answer to one upload batch.
//
// Success reflects the primary contract — the batch was processed and the
// album exists — not that every single file made it (per-file outcomes are
// in Results, preserving input order).
type Response struct {
	Success       bool         `json:"success"`
	AlbumID       string       `json:"albumId"`
	AlbumName     string       `json:"albumName"`
	UploadedCount int          `json:"uploadedCount"`
	TotalCount    int          `json:"totalCount"`
	Results       []FileResult `json:"results"`
}

// validateFile checks one file's declared media type and size against the
// upload policy. It returns an error code, or "" when the file is acceptable.
//
// Validation is independent per file and never aborts the batch: a rejected
// file is skipped (never written to disk, never uploaded) but still appears
// in the results list.
func validateFile(header *multipart.FileHeader) string {
	declared := header.Header.Get("Content-Type")
	mediaType, _, err := mime.ParseMediaType(declared)
	if err != nil {
		return CodeInvalidFileType
	}
	if _, ok := allowedMediaTypes[mediaType]; !ok {
		return CodeInvalidFileType
	}

	if header.Size > constants.MaxFileSizeBytes {
		return CodeFileTooLarge
	}

	return ""
}
