package entity

import (
	"errors"
	"fmt"
)

// ErrValidationFailed is matched by every ValidationError through errors.Is.
var ErrValidationFailed = errors.New("validation failed")

// ValidationError reports a missing or malformed request parameter.
// Message is safe to show to API clients.
type ValidationError struct {
	Field   string
	Message string
}

// Error returns a formatted error message for the validation error.
func (e *ValidationError) Error() string {
	return fmt.Sprintf("validation error on field '%s': %s", e.Field, e.Message)
}

// Is makes errors.Is(err, ErrValidationFailed) true for any ValidationError.
func (e *ValidationError) Is(target error) bool {
	return target == ErrValidationFailed
}

// NewValidationError builds a ValidationError for field with a client-facing message.
func NewValidationError(field, message string) *ValidationError {
	return &ValidationError{Field: field, Message: message}
}
