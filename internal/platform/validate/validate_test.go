// Copyright (c) 2026 Shareframe. All rights reserved.
// Author: minh.anle.dev@gmail.com

package validate_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/minhanle/shareframe/internal/platform/apperr"
	"github.com/minhanle/shareframe/internal/platform/validate"
)

/*
TestValidator_Required tests the mandatory field validation logic.
*/
func TestValidator_Required(t *testing.T) {
	tests := []struct {
		name     string
		field    string
		value    string
		hasError bool
	}{
		{"valid_string", "albumName", "Summer 2026", false},
		{"empty_string", "albumName", "", true},
		{"whitespace_only", "albumName", "   ", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v := &validate.Validator{}
			v.Required(tt.field, tt.value)

			if tt.hasError {
				assert.True(t, v.HasErrors())
				err := v.Err()
				require.NotNil(t, err)

				ae := apperr.As(err)
				require.NotNil(t, ae)
				assert.Equal(t, "validationError", ae.Code)
				assert.Equal(t, tt.field, ae.Details[0].Field)
			} else {
				assert.False(t, v.HasErrors())
				assert.Nil(t, v.Err())
			}
		})
	}
}

/*
TestValidator_UUID checks the UUID format validation rule.
*/
func TestValidator_UUID(t *testing.T) {
	tests := []struct {
		name    string
		value   string
		isValid bool
	}{
		{"valid_v4", "9f4c2f3a-1b2c-4d5e-8f90-112233445566", true},
		{"valid_uppercase", "9F4C2F3A-1B2C-4D5E-8F90-112233445566", true},
		{"missing_dashes", "9f4c2f3a1b2c4d5e8f90112233445566", false},
		{"path_traversal", "../albums", false},
		{"empty", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v := &validate.Validator{}
			v.UUID("id", tt.value)

			if tt.isValid {
				assert.False(t, v.HasErrors())
			} else {
				assert.True(t, v.HasErrors())
			}
		})
	}
}

/*
TestValidator_Chain tests the fluent API (chaining multiple rules).
*/
func TestValidator_Chain(t *testing.T) {
	v := &validate.Validator{}

	// Multi-rule validation
	err := v.
		Required("userName", "Alice").
		MinLen("userName", "Alice", 2).
		MaxLen("userName", "Alice", 100).
		Err()

	assert.NoError(t, err)
	assert.False(t, v.HasErrors())
}

/*
TestValidator_Chain_Failure tests error accumulation in the chain.
*/
func TestValidator_Chain_Failure(t *testing.T) {
	v := &validate.Validator{}

	err := v.
		Required("userName", "").              // Fails
		MinLen("invitationCode", "a", 5).      // Fails
		Custom("photos", true, "no files").    // Fails
		Err()

	require.Error(t, err)
	ae := apperr.As(err)
	require.NotNil(t, ae)

	// Should accumulate all 3 errors
	assert.Len(t, ae.Details, 3)
}

/*
TestValidator_Custom verifies arbitrary predicate-based rules.
*/
func TestValidator_Custom(t *testing.T) {
	v := &validate.Validator{}

	fileCount := 150
	v.Custom("photos", fileCount > 100, "At most 100 files per upload")

	require.Error(t, v.Err())
	ae := apperr.As(v.Err())
	require.NotNil(t, ae)
	assert.Equal(t, "photos", ae.Details[0].Field)
	assert.Equal(t, "At most 100 files per upload", ae.Details[0].Message)
}
