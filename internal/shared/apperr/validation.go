// Package apperr defines error types shared by every feature.
package apperr

import (
	"errors"
	"fmt"
)

// ValidationError reports bad caller input. It is an expected outcome and is
// never logged as a system fault.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	if e.Field == "" {
		return e.Message
	}
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// NewValidation returns a *ValidationError for the given field.
func NewValidation(field, message string) error {
	return &ValidationError{Field: field, Message: message}
}

// IsValidation reports whether err wraps a *ValidationError.
func IsValidation(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}
