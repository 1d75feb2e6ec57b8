package errors

import (
	"errors"
	"fmt"
)

// Common error types used across the taskforge library

var (
	// ErrShutdown indicates that an operation was attempted on a stopped component
	ErrShutdown = errors.New("component is shut down")

	// ErrInvalidConfiguration indicates invalid configuration parameters
	ErrInvalidConfiguration = errors.New("invalid configuration")

	// ErrDuplicateID indicates that an identifier is already registered
	ErrDuplicateID = errors.New("duplicate id")

	// ErrNotFound indicates that a referenced entry does not exist
	ErrNotFound = errors.New("not found")
)

// IsShutdown returns true if the error was caused by operating on a
// stopped component
func IsShutdown(err error) bool {
	return errors.Is(err, ErrShutdown)
}

// IsInvalidConfiguration returns true if the error stems from a rejected
// configuration or registration parameter
func IsInvalidConfiguration(err error) bool {
	return errors.Is(err, ErrInvalidConfiguration)
}

// ValidationError describes a configuration or registration field that
// failed validation. It unwraps to ErrInvalidConfiguration.
type ValidationError struct {
	Module string
	Field  string
	Value  interface{}
	Reason string
	Hint   string
}

// NewValidationError creates a ValidationError for the given module and field.
func NewValidationError(module, field string, value interface{}, reason string) *ValidationError {
	return &ValidationError{
		Module: module,
		Field:  field,
		Value:  value,
		Reason: reason,
	}
}

// WithHint attaches a remediation hint to the error and returns it.
func (e *ValidationError) WithHint(hint string) *ValidationError {
	e.Hint = hint
	return e
}

// Error implements the error interface.
func (e *ValidationError) Error() string {
	msg := fmt.Sprintf("%s: %s %s (got %v)", e.Module, e.Field, e.Reason, e.Value)
	if e.Hint != "" {
		msg += ": " + e.Hint
	}
	return msg
}

// Unwrap allows errors.Is(err, ErrInvalidConfiguration) to match.
func (e *ValidationError) Unwrap() error {
	return ErrInvalidConfiguration
}
