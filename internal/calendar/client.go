// Package calendar wraps the downstream calendar-creation collaborator. The
// pipeline consumes it through the Client interface only.
package calendar

import (
	"context"
	"fmt"
	"time"
)

// ErrorCategory classifies a downstream failure.
type ErrorCategory string

const (
	ErrorUnauthenticated ErrorCategory = "unauthenticated"
	ErrorForbidden       ErrorCategory = "forbidden"
	ErrorRateLimited     ErrorCategory = "rate_limited"
	ErrorDownstream      ErrorCategory = "downstream_generic"
)

// Error is a categorized downstream failure. Message preserves the original
// diagnostic; callers decide how much of it reaches the end user.
type Error struct {
	Category ErrorCategory
	Message  string
}

// Error implements the error interface.
func (e *Error) Error() string {
	if e == nil {
		return ""
	}
	return fmt.Sprintf("calendar %s: %s", e.Category, e.Message)
}

// Event identifies a created calendar event.
type Event struct {
	ID   string
	Link string
}

// CreateInput carries everything the downstream call needs. Start and End
// are absolute instants; Timezone is forwarded so the event renders at the
// intended wall-clock hour.
type CreateInput struct {
	Title       string
	Description string
	Start       time.Time
	End         time.Time
	Timezone    string
}

// Client creates calendar events on behalf of a session.
type Client interface {
	Create(ctx context.Context, sessionID string, input CreateInput) (Event, error)
}
