package types

import (
	"errors"
	"fmt"
	"strings"
)

var (
	ErrApplicationNotFound = errors.New("application not found")
	ErrProviderNotFound    = errors.New("service provider not found")
	ErrCompanyNotFound     = errors.New("company not found")
	ErrBillNotFound        = errors.New("bill not found")
	ErrJobNotFound         = errors.New("job not found")

	// ErrDuplicateEmail is returned when an application with the same email
	// has already been submitted.
	ErrDuplicateEmail = errors.New("an application with this email already exists")
)

// ValidationError carries field-level messages for a rejected request body.
// The HTTP layer maps it to a 400.
type ValidationError struct {
	Fields map[string]string
}

func NewValidationError(field, message string) *ValidationError {
	return &ValidationError{Fields: map[string]string{field: message}}
}

func (e *ValidationError) Error() string {
	if len(e.Fields) == 0 {
		return "validation failed"
	}

	parts := make([]string, 0, len(e.Fields))
	for field, message := range e.Fields {
		parts = append(parts, fmt.Sprintf("%s: %s", field, message))
	}

	return "validation failed: " + strings.Join(parts, "; ")
}
