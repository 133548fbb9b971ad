// Package apperror defines the typed errors shared by the validation,
// repository and service layers. The HTTP boundary maps them to status
// codes with errors.As; nothing in the codebase inspects error strings.
package apperror

import (
	"fmt"
	"strings"
)

// FieldError is a single field-level violation, in the same shape the
// API exposes to clients.
type FieldError struct {
	Message string   `json:"message"`
	Path    []string `json:"path"`
	Type    string   `json:"type"`
}

// ValidationError carries the complete list of violations found in a
// request payload. Validation never fails fast: all checks run and the
// error holds every violation at once.
type ValidationError struct {
	Violations []FieldError
}

func (e *ValidationError) Error() string {
	if len(e.Violations) == 0 {
		return "validation failed"
	}
	msgs := make([]string, len(e.Violations))
	for i, v := range e.Violations {
		msgs[i] = v.Message
	}
	return strings.Join(msgs, "; ")
}

// ErrorsByField groups violations by their leading path segment, which
// is how the 422 response body presents them.
func (e *ValidationError) ErrorsByField() map[string][]FieldError {
	byField := make(map[string][]FieldError, len(e.Violations))
	for _, v := range e.Violations {
		field := ""
		if len(v.Path) > 0 {
			field = v.Path[0]
		}
		byField[field] = append(byField[field], v)
	}
	return byField
}

// NewUniqueEmailError is the violation raised when an email address is
// already taken, whether caught by the pre-insert probe or by the
// storage-level unique constraint.
func NewUniqueEmailError() *ValidationError {
	return &ValidationError{Violations: []FieldError{{
		Message: "email already taken",
		Path:    []string{"email"},
		Type:    "unique",
	}}}
}

// RecordNotFoundError identifies a lookup miss by collection and the id
// as it appeared in the request, numeric or not.
type RecordNotFoundError struct {
	Collection string
	ID         string
}

func (e *RecordNotFoundError) Error() string {
	return fmt.Sprintf("record with id %s not found in %s", e.ID, e.Collection)
}

// UnauthorizedError rejects a request that lacks valid credentials.
type UnauthorizedError struct {
	Reason string
}

func (e *UnauthorizedError) Error() string {
	if e.Reason == "" {
		return "unauthorized"
	}
	return e.Reason
}
