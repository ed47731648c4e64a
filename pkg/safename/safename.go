// Copyright (c) 2026 Shareframe. All rights reserved.
// Author: minh.anle.dev@gmail.com

// Package safename sanitizes arbitrary Unicode filenames into filesystem-safe
// ASCII names.
//
// # Usage
//
// Uploaded files are written to a shared temporary directory before being
// forwarded to the media backend. Browsers send whatever filename the guest's
// device produced (emoji, accents, path separators), so temp-file names are
// sanitized while the original filename is preserved for the backend upload.
package safename

import (
	"path/filepath"
	"regexp"
	"strings"
	"unicode"

	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

var (
	// unsafeChars matches any character outside the safe filename alphabet.
	unsafeChars = regexp.MustCompile(`[^a-z0-9._-]+`)
	// multiDash collapses multiple consecutive dashes into one.
	multiDash = regexp.MustCompile(`-{2,}`)
)

// Sanitize converts an arbitrary Unicode filename into a safe ASCII name,
// preserving the file extension.
//
// # Transformation Pipeline
//
// 1. Strips any path component (defeats "../../etc/passwd" style names).
// 2. Normalizes to NFD and removes combining marks (é → e).
// 3. Converts to lowercase.
// 4. Replaces everything outside [a-z0-9._-] with dashes, collapsing runs.
//
// An input that sanitizes to nothing (e.g. a name of only emoji) becomes
// "file" plus its original extension, so callers always get a usable name.
func Sanitize(name string) string {
	// 1. Strip directories; the backslash check covers Windows-style names.
	base := filepath.Base(name)
	if idx := strings.LastIndexByte(base, '\\'); idx >= 0 {
		base = base[idx+1:]
	}

	// 2. Normalize and remove accents
	t := transform.Chain(norm.NFD, transform.RemoveFunc(isMn))
	result, _, _ := transform.String(t, base)

	// 3. Lowercase
	result = strings.ToLower(result)

	// 4. Replace unsafe characters with dashes
	result = strings.Map(func(r rune) rune {
		if unicode.IsLetter(r) || unicode.IsDigit(r) || r == '.' || r == '_' || r == '-' {
			return r
		}
		return '-'
	}, result)

	result = unsafeChars.ReplaceAllString(result, "-")
	result = multiDash.ReplaceAllString(result, "-")
	result = strings.Trim(result, "-")

	// Never return an empty, dot-only, or hidden-dotfile name.
	if result == "" || strings.Trim(result, ".") == "" {
		ext := strings.ToLower(filepath.Ext(base))
		if strings.Trim(ext, ".") == "" {
			ext = ""
		}
		result = "file" + ext
	} else if strings.HasPrefix(result, ".") {
		result = "file" + result
	}

	return result
}

// isMn reports whether r is a Unicode non-spacing mark (e.g., accents).
func isMn(r rune) bool {
	return unicode.Is(unicode.Mn, r)
}
