package errors

import (
	stderrors "errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestNewConfigurationError_Formatting tests message formatting and category
func TestNewConfigurationError_Formatting(t *testing.T) {
	err := NewConfigurationError("optimization", "validate", "population size must be positive, got: %d", 0)

	assert.Equal(t, ErrorCategoryConfiguration, err.Category)
	assert.Equal(t, "[CONFIG:optimization] validate: population size must be positive, got: 0", err.Error())
	assert.True(t, err.IsFatal())
}

// TestIsConfigurationError_Wrapped tests detection through fmt wrapping
func TestIsConfigurationError_Wrapped(t *testing.T) {
	base := NewConfigurationError("optimization", "validate", "bad")
	wrapped := fmt.Errorf("loading config: %w", base)

	assert.True(t, IsConfigurationError(wrapped))
	assert.False(t, IsInvalidInput(wrapped))
}

// TestIsInvalidInput_PlainError tests that plain errors carry no category
func TestIsInvalidInput_PlainError(t *testing.T) {
	assert.False(t, IsInvalidInput(stderrors.New("boom")))

	_, ok := CategoryOf(stderrors.New("boom"))
	assert.False(t, ok)
}

// TestWrapError_Unwrap tests unwrapping to the underlying error
func TestWrapError_Unwrap(t *testing.T) {
	underlying := stderrors.New("disk full")
	err := NewIOError("reporting", "write", underlying)

	require.NotNil(t, err)
	assert.ErrorIs(t, err, underlying)
	assert.False(t, err.IsFatal())
	assert.Nil(t, WrapError(nil, ErrorCategoryIO, "x", "y"))
}

// TestWithContext_InitializesMap tests context attachment
func TestWithContext_InitializesMap(t *testing.T) {
	err := &SVMError{Category: ErrorCategoryInvalidInput}
	err.WithContext("row", 3)

	assert.Equal(t, 3, err.Context["row"])
}
