// Package apperrors defines the error taxonomy shared by services and
// handlers. Services return these sentinels (possibly wrapped); the HTTP
// layer maps them to status codes in one place.
package apperrors

import (
	"errors"
	"fmt"
)

var (
	// ErrNotFound covers unknown ids and cross-tenant access. Records owned
	// by another hospital are reported as not found, never as forbidden.
	ErrNotFound = errors.New("not found")

	// ErrForbidden is returned on role or tenant mismatch for an action the
	// caller is not allowed to perform.
	ErrForbidden = errors.New("forbidden")

	// ErrConflict is returned on uniqueness violations (SKU, ticket_id,
	// patient_id, employee_id, po_number).
	ErrConflict = errors.New("conflict")

	// ErrUpstream is returned when an external dependency (payment gateway)
	// fails. Never retried.
	ErrUpstream = errors.New("upstream dependency error")
)

// ValidationError carries per-field messages for malformed or missing input.
type ValidationError struct {
	Fields map[string]string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("validation failed: %v", e.Fields)
}

// NewValidation builds a ValidationError for a single field.
func NewValidation(field, message string) *ValidationError {
	return &ValidationError{Fields: map[string]string{field: message}}
}

// AsValidation extracts a ValidationError from an error chain.
func AsValidation(err error) (*ValidationError, bool) {
	var ve *ValidationError
	if errors.As(err, &ve) {
		return ve, true
	}
	return nil, false
}

// NotFound wraps ErrNotFound with the entity name for log context.
func NotFound(entity string) error {
	return fmt.Errorf("%s: %w", entity, ErrNotFound)
}

// Conflict wraps ErrConflict with the violated constraint for log context.
func Conflict(constraint string) error {
	return fmt.Errorf("%s: %w", constraint, ErrConflict)
}
