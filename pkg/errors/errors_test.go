package errors

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAppError_Error(t *testing.T) {
	tests := []struct {
		name     string
		setup    func() *AppError
		expected string
	}{
		{
			name: "ErrorWithoutCause",
			setup: func() *AppError {
				return New(ValidationError, "document cannot be empty")
			},
			expected: "VALIDATION_ERROR: document cannot be empty",
		},
		{
			name: "ErrorWithCause",
			setup: func() *AppError {
				cause := fmt.Errorf("dial tcp: connection refused")
				return Wrap(ConnectionError, "redis get operation failed", cause)
			},
			expected: "CONNECTION_ERROR: redis get operation failed (caused by: dial tcp: connection refused)",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.setup()
			assert.Equal(t, tt.expected, err.Error())
		})
	}
}

func TestAppError_Unwrap(t *testing.T) {
	cause := fmt.Errorf("strconv.ParseInt: parsing \"hello\": invalid syntax")
	err := NewDecodeError("value is not an integer", cause)

	assert.Equal(t, cause, err.Unwrap())
	assert.Nil(t, NewNotFoundError("missing").Unwrap())
}

func TestErrorType_String(t *testing.T) {
	tests := []struct {
		errorType ErrorType
		expected  string
	}{
		{ErrorTypeValidation, "VALIDATION_ERROR"},
		{ErrorTypeNotFound, "NOT_FOUND_ERROR"},
		{ErrorTypeDecode, "DECODE_ERROR"},
		{ErrorTypeConnection, "CONNECTION_ERROR"},
		{ErrorTypeDatabase, "DATABASE_ERROR"},
		{ErrorTypeConfiguration, "CONFIGURATION_ERROR"},
		{ErrorTypeUnknown, "UNKNOWN_ERROR"},
	}

	for _, tt := range tests {
		t.Run(tt.expected, func(t *testing.T) {
			assert.Equal(t, tt.expected, tt.errorType.String())
		})
	}
}

func TestTypeCheckers(t *testing.T) {
	tests := []struct {
		name    string
		err     error
		checker func(error) bool
	}{
		{"Validation", NewValidationError("bad"), IsValidationError},
		{"NotFound", NewNotFoundError("missing"), IsNotFoundError},
		{"Decode", NewDecodeError("bad bytes", nil), IsDecodeError},
		{"Connection", NewConnectionError("down", nil), IsConnectionError},
		{"Database", NewDatabaseError("query failed", nil), IsDatabaseError},
		{"Configuration", NewConfigurationError("bad config", nil), IsConfigurationError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.True(t, tt.checker(tt.err))
			assert.True(t, tt.checker(fmt.Errorf("wrapped: %w", tt.err)))
			assert.False(t, tt.checker(fmt.Errorf("plain error")))
			assert.False(t, tt.checker(nil))
		})
	}
}

func TestTypeOf(t *testing.T) {
	assert.Equal(t, ErrorTypeDecode, TypeOf(fmt.Errorf("get int: %w", NewDecodeError("bad", nil))))
	assert.Equal(t, ErrorTypeUnknown, TypeOf(fmt.Errorf("plain")))
}
