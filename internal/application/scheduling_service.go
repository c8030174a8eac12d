package application

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/yakupzengin/voice-scheduling-agent/internal/audit"
	"github.com/yakupzengin/voice-scheduling-agent/internal/calendar"
	"github.com/yakupzengin/voice-scheduling-agent/internal/temporal"
)

// IntervalResolver converts date/time text plus an IANA zone into an
// absolute interval.
type IntervalResolver interface {
	Resolve(date, timeText, zone string, duration time.Duration) (temporal.Interval, error)
}

// AuditRecorder appends one immutable record per pipeline stage boundary.
type AuditRecorder interface {
	Record(ctx context.Context, entry audit.Entry)
}

// SchedulingService runs the temporal resolution and request-validation
// pipeline: validate, resolve, guard against past times, create the event
// downstream, and record the outcome in the session ledger and audit trail.
type SchedulingService struct {
	resolver    IntervalResolver
	calendar    calendar.Client
	ledger      *SessionLedger
	audit       AuditRecorder
	idGenerator func() string
	now         func() time.Time
	callTimeout time.Duration
	logger      *slog.Logger
}

// NewSchedulingService constructs a SchedulingService with the provided dependencies.
func NewSchedulingService(resolver IntervalResolver, client calendar.Client, ledger *SessionLedger, recorder AuditRecorder, idGenerator func() string, now func() time.Time, callTimeout time.Duration) *SchedulingService {
	return NewSchedulingServiceWithLogger(resolver, client, ledger, recorder, idGenerator, now, callTimeout, nil)
}

// NewSchedulingServiceWithLogger constructs a SchedulingService with a specified logger.
func NewSchedulingServiceWithLogger(resolver IntervalResolver, client calendar.Client, ledger *SessionLedger, recorder AuditRecorder, idGenerator func() string, now func() time.Time, callTimeout time.Duration, logger *slog.Logger) *SchedulingService {
	if idGenerator == nil {
		idGenerator = func() string { return "" }
	}
	if now == nil {
		now = time.Now
	}
	if callTimeout <= 0 {
		callTimeout = 10 * time.Second
	}
	return &SchedulingService{
		resolver:    resolver,
		calendar:    client,
		ledger:      ledger,
		audit:       recorder,
		idGenerator: idGenerator,
		now:         now,
		callTimeout: callTimeout,
		logger:      defaultLogger(logger),
	}
}

func (s *SchedulingService) loggerWith(ctx context.Context, operation string, attrs ...any) *slog.Logger {
	return serviceLogger(ctx, s.logger, "SchedulingService", operation, attrs...)
}

// Ledger exposes the session event ledger for read-back handlers.
func (s *SchedulingService) Ledger() *SessionLedger {
	if s == nil {
		return nil
	}
	return s.ledger
}

// Schedule runs the full pipeline for one canonical request. Every failure
// is returned as a *ValidationError or *PipelineError; nothing propagates
// unstructured to the transport layer. The pipeline never retries a failed
// attempt, the conversational layer decides whether to ask again.
//
// The transport writes the arrival audit entry before normalization; the
// service writes the single terminal entry under the same request id.
func (s *SchedulingService) Schedule(ctx context.Context, params ScheduleParams) (result ScheduleResult, err error) {
	if s == nil {
		err = fmt.Errorf("SchedulingService is nil")
		return
	}
	if s.resolver == nil {
		err = fmt.Errorf("temporal resolver not configured")
		return
	}
	if s.calendar == nil {
		err = fmt.Errorf("calendar client not configured")
		return
	}

	requestID := params.RequestID
	if requestID == "" {
		requestID = s.idGenerator()
	}
	result.RequestID = requestID
	sessionHash := audit.HashSessionID(params.Request.SessionID)

	logger := s.loggerWith(ctx, "Schedule",
		"request_id", requestID,
		"timezone", params.Request.Timezone,
	)
	defer func() {
		if err != nil {
			logger.ErrorContext(ctx, "scheduling failed", "error", err, "error_kind", ErrorKind(err))
			return
		}
		logger.With(
			"event_id", result.EventID,
			"start", result.Interval.Start.Format(time.RFC3339),
		).InfoContext(ctx, "event scheduled")
	}()

	terminal := func(entry audit.Entry) {
		entry.RequestID = requestID
		entry.SessionIDHash = sessionHash
		entry.RawInput = params.RawInput
		s.record(ctx, entry)
	}

	validated, vErr := ValidateSchedulingRequest(params.Request)
	if vErr.HasErrors() {
		terminal(audit.Entry{Stage: audit.StageValidationError, ErrorMessage: vErr.Error()})
		err = vErr
		return
	}

	duration := time.Duration(validated.DurationMinutes) * time.Minute
	interval, rerr := s.resolver.Resolve(validated.Date, validated.Time, validated.Timezone, duration)
	if rerr != nil {
		var zoneErr *temporal.ZoneError
		if errors.As(rerr, &zoneErr) {
			terminal(audit.Entry{Stage: audit.StageZoneError, ErrorMessage: rerr.Error()})
			err = &PipelineError{Category: CategoryZoneError, Message: rerr.Error(), Err: rerr}
			return
		}
		terminal(audit.Entry{Stage: audit.StageParseError, ErrorMessage: rerr.Error()})
		err = &PipelineError{Category: CategoryParseFailure, Message: rerr.Error(), Err: rerr}
		return
	}

	start := interval.Start
	end := interval.End

	// Same zone-aware "now" the resolver anchors to; a UTC comparison here
	// misjudges events near a zone boundary.
	nowLocal := s.now().In(start.Location())
	if !start.After(nowLocal) {
		message := fmt.Sprintf("requested start %s is not in the future", start.Format(time.RFC3339))
		terminal(audit.Entry{Stage: audit.StagePastTime, ErrorMessage: message, ParsedStart: &start, ParsedEnd: &end})
		err = &PipelineError{Category: CategoryPastTime, Message: message}
		return
	}

	title := validated.EffectiveTitle()
	callCtx, cancel := context.WithTimeout(ctx, s.callTimeout)
	defer cancel()

	event, cerr := s.calendar.Create(callCtx, validated.SessionID, calendar.CreateInput{
		Title:       title,
		Description: fmt.Sprintf("Scheduled by voice assistant for %s.", validated.Name),
		Start:       start,
		End:         end,
		Timezone:    validated.Timezone,
	})
	if cerr != nil {
		category, message := classifyDownstream(cerr)
		terminal(audit.Entry{
			Stage:            audit.StageDownstreamError,
			ErrorMessage:     message,
			DownstreamStatus: string(category),
			ParsedStart:      &start,
			ParsedEnd:        &end,
		})
		err = &PipelineError{Category: category, Message: message, Err: cerr}
		return
	}

	s.ledger.Record(validated.SessionID, SessionEventRecord{
		Title:     title,
		Start:     start,
		Timezone:  validated.Timezone,
		EventLink: event.Link,
	})

	terminal(audit.Entry{
		Stage:            audit.StageDownstreamSuccess,
		DownstreamStatus: "created",
		ParsedStart:      &start,
		ParsedEnd:        &end,
		EventID:          event.ID,
		EventLink:        event.Link,
	})

	result = ScheduleResult{
		RequestID: requestID,
		EventID:   event.ID,
		EventLink: event.Link,
		Summary:   fmt.Sprintf("%s is scheduled for %s (%s)", title, start.Format("Monday, January 2 at 3:04 PM"), validated.Timezone),
		Interval:  interval,
	}
	return
}

func (s *SchedulingService) record(ctx context.Context, entry audit.Entry) {
	if s.audit == nil {
		return
	}
	s.audit.Record(ctx, entry)
}

func classifyDownstream(err error) (Category, string) {
	var calErr *calendar.Error
	if !errors.As(err, &calErr) {
		return CategoryDownstream, err.Error()
	}
	switch calErr.Category {
	case calendar.ErrorUnauthenticated:
		return CategoryUnauthenticated, calErr.Message
	case calendar.ErrorForbidden:
		return CategoryForbidden, calErr.Message
	case calendar.ErrorRateLimited:
		return CategoryRateLimited, calErr.Message
	default:
		return CategoryDownstream, calErr.Message
	}
}
