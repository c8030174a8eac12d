package testfixtures

import (
	"time"

	"github.com/yakupzengin/voice-scheduling-agent/internal/application"
)

var referenceTime = time.Date(2024, time.June, 1, 9, 0, 0, 0, time.UTC)

// ReferenceTime returns the canonical baseline timestamp used by fixtures.
func ReferenceTime() time.Time {
	return referenceTime
}

// SessionID is a well-formed session identifier shared by fixtures.
const SessionID = "6b1a5b9e-8c0d-4f3a-9a1e-2d4c6e8f0a1b"

// RequestOption configures the generated scheduling request fixture.
type RequestOption func(*application.SchedulingRequest)

// NewSchedulingRequest returns a request that passes validation unless
// overridden. The date lands well after ReferenceTime so the past-time guard
// stays quiet by default.
func NewSchedulingRequest(opts ...RequestOption) application.SchedulingRequest {
	request := application.SchedulingRequest{
		SessionID:       SessionID,
		Name:            "Alex Morgan",
		Date:            "2024-06-10",
		Time:            "15:00",
		Timezone:        "UTC",
		DurationMinutes: 30,
	}
	for _, opt := range opts {
		opt(&request)
	}
	return request
}

// WithSessionID overrides the session identifier.
func WithSessionID(id string) RequestOption {
	return func(r *application.SchedulingRequest) {
		r.SessionID = id
	}
}

// WithName overrides the attendee name.
func WithName(name string) RequestOption {
	return func(r *application.SchedulingRequest) {
		r.Name = name
	}
}

// WithDate overrides the date text.
func WithDate(date string) RequestOption {
	return func(r *application.SchedulingRequest) {
		r.Date = date
	}
}

// WithTime overrides the time text.
func WithTime(timeText string) RequestOption {
	return func(r *application.SchedulingRequest) {
		r.Time = timeText
	}
}

// WithTimezone overrides the IANA zone identifier.
func WithTimezone(zone string) RequestOption {
	return func(r *application.SchedulingRequest) {
		r.Timezone = zone
	}
}

// WithDuration overrides the duration in minutes.
func WithDuration(minutes int) RequestOption {
	return func(r *application.SchedulingRequest) {
		r.DurationMinutes = minutes
	}
}

// WithTitle overrides the optional event title.
func WithTitle(title string) RequestOption {
	return func(r *application.SchedulingRequest) {
		r.Title = title
	}
}
