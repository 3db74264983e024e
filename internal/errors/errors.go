package errors

import (
	stderrors "errors"
	"fmt"
)

// ErrorCategory represents the kind of failure an operation ran into
type ErrorCategory string

const (
	// ErrorCategoryConfiguration covers malformed training configuration:
	// non-positive population or generation counts, gene count not matching
	// the dataset, rates outside [0, 1].
	ErrorCategoryConfiguration ErrorCategory = "CONFIG"

	// ErrorCategoryInvalidInput covers malformed data reaching the core:
	// kernel vectors of unequal length, ragged feature rows, labels outside {+1, -1}.
	ErrorCategoryInvalidInput ErrorCategory = "INVALID_INPUT"

	// ErrorCategoryIO covers dataset and report file access.
	ErrorCategoryIO ErrorCategory = "IO"

	// ErrorCategoryStorage covers the run store.
	ErrorCategoryStorage ErrorCategory = "STORAGE"
)

// SVMError represents a categorized error with context
type SVMError struct {
	Category   ErrorCategory
	Component  string
	Operation  string
	Message    string
	Underlying error
	Context    map[string]interface{}
}

// Error implements the error interface
func (e *SVMError) Error() string {
	if e.Underlying != nil {
		return fmt.Sprintf("[%s:%s] %s: %s: %v", e.Category, e.Component, e.Operation, e.Message, e.Underlying)
	}
	return fmt.Sprintf("[%s:%s] %s: %s", e.Category, e.Component, e.Operation, e.Message)
}

// Unwrap returns the underlying error for error unwrapping
func (e *SVMError) Unwrap() error {
	return e.Underlying
}

// IsFatal reports whether the error must stop the run before any generation executes.
// Every category is deterministic given its inputs, so nothing here is ever retried.
func (e *SVMError) IsFatal() bool {
	return e.Category == ErrorCategoryConfiguration || e.Category == ErrorCategoryInvalidInput
}

// WithContext adds context information to the error
func (e *SVMError) WithContext(key string, value interface{}) *SVMError {
	if e.Context == nil {
		e.Context = make(map[string]interface{})
	}
	e.Context[key] = value
	return e
}

// NewSVMError creates a new categorized error
func NewSVMError(category ErrorCategory, component, operation, message string) *SVMError {
	return &SVMError{
		Category:  category,
		Component: component,
		Operation: operation,
		Message:   message,
		Context:   make(map[string]interface{}),
	}
}

// WrapError wraps an existing error with category context
func WrapError(err error, category ErrorCategory, component, operation string) *SVMError {
	if err == nil {
		return nil
	}

	return &SVMError{
		Category:   category,
		Component:  component,
		Operation:  operation,
		Message:    "operation failed",
		Underlying: err,
		Context:    make(map[string]interface{}),
	}
}

// NewConfigurationError reports a configuration that cannot be trained with
func NewConfigurationError(component, operation, format string, args ...interface{}) *SVMError {
	return NewSVMError(ErrorCategoryConfiguration, component, operation, fmt.Sprintf(format, args...))
}

// NewInvalidInputError reports data the core refuses to consume
func NewInvalidInputError(component, operation, format string, args ...interface{}) *SVMError {
	return NewSVMError(ErrorCategoryInvalidInput, component, operation, fmt.Sprintf(format, args...))
}

func NewIOError(component, operation string, err error) *SVMError {
	return WrapError(err, ErrorCategoryIO, component, operation)
}

func NewStorageError(component, operation string, err error) *SVMError {
	return WrapError(err, ErrorCategoryStorage, component, operation)
}

// CategoryOf returns the category of the first SVMError in err's chain
func CategoryOf(err error) (ErrorCategory, bool) {
	var svmErr *SVMError
	if stderrors.As(err, &svmErr) {
		return svmErr.Category, true
	}
	return "", false
}

// IsConfigurationError reports whether err carries the CONFIG category
func IsConfigurationError(err error) bool {
	category, ok := CategoryOf(err)
	return ok && category == ErrorCategoryConfiguration
}

// IsInvalidInput reports whether err carries the INVALID_INPUT category
func IsInvalidInput(err error) bool {
	category, ok := CategoryOf(err)
	return ok && category == ErrorCategoryInvalidInput
}
