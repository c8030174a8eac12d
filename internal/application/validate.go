package application

import (
	"strings"
	"time"
	"unicode/utf8"

	"github.com/google/uuid"
)

const (
	maxNameLength  = 100
	maxTitleLength = 200
	minDuration    = 5
	maxDuration    = 240
)

// ValidateSchedulingRequest enforces per-field syntactic and range
// constraints on the canonical record. Every violation is collected; the
// returned request has surrounding whitespace trimmed from string fields.
//
// Date and time are only checked for presence here; their format is the
// temporal resolver's concern.
func ValidateSchedulingRequest(req SchedulingRequest) (SchedulingRequest, *ValidationError) {
	vErr := &ValidationError{}

	req.SessionID = strings.TrimSpace(req.SessionID)
	req.Name = strings.TrimSpace(req.Name)
	req.Date = strings.TrimSpace(req.Date)
	req.Time = strings.TrimSpace(req.Time)
	req.Timezone = strings.TrimSpace(req.Timezone)
	req.Title = strings.TrimSpace(req.Title)

	if req.SessionID == "" {
		vErr.add("sessionId", "sessionId is required")
	} else if _, err := uuid.Parse(req.SessionID); err != nil {
		vErr.add("sessionId", "sessionId must be a valid UUID")
	}

	if req.Name == "" {
		vErr.add("name", "name is required")
	} else if utf8.RuneCountInString(req.Name) > maxNameLength {
		vErr.add("name", "name must be at most 100 characters")
	}

	if req.Date == "" {
		vErr.add("date", "date is required")
	}
	if req.Time == "" {
		vErr.add("time", "time is required")
	}

	if req.Timezone == "" {
		vErr.add("timezone", "timezone is required")
	} else if _, err := time.LoadLocation(req.Timezone); err != nil {
		vErr.add("timezone", "timezone must be a recognized IANA identifier")
	}

	if req.DurationMinutes < minDuration || req.DurationMinutes > maxDuration {
		vErr.add("durationMinutes", "durationMinutes must be between 5 and 240")
	}

	if req.Title != "" && utf8.RuneCountInString(req.Title) > maxTitleLength {
		vErr.add("title", "title must be at most 200 characters")
	}

	if vErr.HasErrors() {
		return SchedulingRequest{}, vErr
	}
	return req, nil
}
