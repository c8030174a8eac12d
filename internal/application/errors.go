package application

import (
	"fmt"
	"sort"
	"strings"
)

// Category identifies the terminal failure class of a scheduling attempt.
// Categories drive both the HTTP status for flat callers and the audit stage.
type Category string

const (
	CategoryValidation      Category = "validation"
	CategoryParseFailure    Category = "parse_failure"
	CategoryZoneError       Category = "zone_error"
	CategoryPastTime        Category = "past_time"
	CategoryUnauthenticated Category = "unauthenticated_session"
	CategoryForbidden       Category = "forbidden"
	CategoryRateLimited     Category = "rate_limited"
	CategoryDownstream      Category = "downstream_generic"
	CategoryInternal        Category = "internal"
)

// PipelineError wraps a failure with its category. Message is safe to relay
// to the end user; the wrapped error keeps full detail for server-side logs.
type PipelineError struct {
	Category Category
	Message  string
	Err      error
}

// Error implements the error interface.
func (e *PipelineError) Error() string {
	if e == nil {
		return ""
	}
	if e.Message != "" {
		return e.Message
	}
	return string(e.Category)
}

// Unwrap exposes the underlying cause.
func (e *PipelineError) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Err
}

// ValidationError collects field level validation issues. All violations are
// gathered and reported together, not just the first.
type ValidationError struct {
	FieldErrors map[string][]string
}

// Error implements the error interface.
func (v *ValidationError) Error() string {
	if v == nil || len(v.FieldErrors) == 0 {
		return "validation failed"
	}
	fields := make([]string, 0, len(v.FieldErrors))
	for field := range v.FieldErrors {
		fields = append(fields, field)
	}
	sort.Strings(fields)

	parts := make([]string, 0, len(fields))
	for _, field := range fields {
		parts = append(parts, fmt.Sprintf("%s: %s", field, strings.Join(v.FieldErrors[field], "; ")))
	}
	return "validation failed: " + strings.Join(parts, ", ")
}

// HasErrors reports whether any field level issues were recorded.
func (v *ValidationError) HasErrors() bool {
	return v != nil && len(v.FieldErrors) > 0
}

// add records a field level validation error.
func (v *ValidationError) add(field, message string) {
	if v.FieldErrors == nil {
		v.FieldErrors = make(map[string][]string)
	}
	v.FieldErrors[field] = append(v.FieldErrors[field], message)
}
