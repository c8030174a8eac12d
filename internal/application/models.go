package application

import (
	"fmt"
	"time"

	"github.com/yakupzengin/voice-scheduling-agent/internal/temporal"
)

// SchedulingRequest is the canonical post-normalization argument record.
// Constructed once per inbound call; immutable thereafter.
type SchedulingRequest struct {
	SessionID       string
	Name            string
	Date            string
	Time            string
	Timezone        string
	DurationMinutes int
	Title           string
}

// EffectiveTitle returns the caller supplied title, or the default built from
// the attendee name.
func (r SchedulingRequest) EffectiveTitle() string {
	if r.Title != "" {
		return r.Title
	}
	return fmt.Sprintf("Meeting with %s", r.Name)
}

// SessionEventRecord is one successfully created event retained in the
// session ledger for later read-back.
type SessionEventRecord struct {
	Title     string
	Start     time.Time
	Timezone  string
	EventLink string
}

// ScheduleParams wraps the data required to run the scheduling pipeline.
// RequestID correlates the pipeline's terminal audit entry with the arrival
// entry the transport wrote; when empty the service generates its own.
// RawInput is the untransformed inbound request body, kept for the audit
// trail.
type ScheduleParams struct {
	RequestID string
	Request   SchedulingRequest
	RawInput  string
}

// ScheduleResult captures the outcome of a successful scheduling attempt.
type ScheduleResult struct {
	RequestID string
	EventID   string
	EventLink string
	Summary   string
	Interval  temporal.Interval
}
