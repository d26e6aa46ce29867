// Package validation validates incoming API requests before they reach the
// service layer.
package validation

import (
	"fmt"
	"strings"
)

// Error collects per-field validation failures for a single request.
type Error struct {
	Fields map[string]string
}

func (e *Error) Error() string {
	if len(e.Fields) == 0 {
		return "validation failed"
	}
	parts := make([]string, 0, len(e.Fields))
	for field, msg := range e.Fields {
		parts = append(parts, fmt.Sprintf("%s: %s", field, msg))
	}
	return "validation failed: " + strings.Join(parts, "; ")
}

// NewError creates an empty validation error ready to collect field failures.
func NewError() *Error {
	return &Error{Fields: map[string]string{}}
}

// Add records a failure for a field.
func (e *Error) Add(field, message string) {
	e.Fields[field] = message
}

// HasErrors reports whether any field failed.
func (e *Error) HasErrors() bool {
	return len(e.Fields) > 0
}
