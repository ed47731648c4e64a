// Copyright (c) 2026 Shareframe. All rights reserved.
// Author: minh.anle.dev@gmail.com

package safename_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/minhanle/shareframe/pkg/safename"
)

/*
TestSanitize covers the transformation pipeline on realistic browser-supplied
filenames: case folding, accent removal, path stripping, and fallbacks for
names that sanitize to nothing.
*/
func TestSanitize(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{"simple", "IMG_1234.JPG", "img_1234.jpg"},
		{"accents", "Café Photo.png", "cafe-photo.png"},
		{"spaces_and_parens", "photo (1).jpg", "photo-1-.jpg"},
		{"unix_path_stripped", "../../etc/passwd", "passwd"},
		{"windows_path_stripped", `C:\Users\guest\pic.jpg`, "pic.jpg"},
		{"emoji_only_keeps_extension", "😀😀.jpg", "file.jpg"},
		{"empty_input", "", "file"},
		{"dots_only", "...", "file"},
		{"already_safe", "holiday-2026_day1.heic", "holiday-2026_day1.heic"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, safename.Sanitize(tt.input))
		})
	}
}

/*
TestSanitize_NeverHidden verifies the output never starts with a dot, so temp
files stay visible to cleanup tooling.
*/
func TestSanitize_NeverHidden(t *testing.T) {
	inputs := []string{".gitignore", ".hidden.jpg", "🎉.png"}

	for _, input := range inputs {
		result := safename.Sanitize(input)
		assert.NotEmpty(t, result)
		assert.NotEqual(t, byte('.'), result[0], "input %q produced hidden name %q", input, result)
	}
}
