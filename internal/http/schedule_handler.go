package http

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"sort"
	"strings"
	"time"

	"github.com/yakupzengin/voice-scheduling-agent/internal/application"
	"github.com/yakupzengin/voice-scheduling-agent/internal/audit"
)

const maxRequestBodyBytes = 1 << 20

type schedulingService interface {
	Schedule(ctx context.Context, params application.ScheduleParams) (application.ScheduleResult, error)
}

type ScheduleHandler struct {
	service     schedulingService
	audit       application.AuditRecorder
	idGenerator func() string
	responder   responder
}

func NewScheduleHandler(service schedulingService, recorder application.AuditRecorder, idGenerator func() string, logger *slog.Logger) *ScheduleHandler {
	if idGenerator == nil {
		idGenerator = func() string { return "" }
	}
	return &ScheduleHandler{
		service:     service,
		audit:       recorder,
		idGenerator: idGenerator,
		responder:   newResponder(logger),
	}
}

func (h *ScheduleHandler) Create(w http.ResponseWriter, r *http.Request) {
	if h == nil || h.service == nil {
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, maxRequestBodyBytes))
	if err != nil {
		h.responder.writeError(r.Context(), w, http.StatusBadRequest, errBadRequestBody)
		return
	}

	// The arrival entry is written before any parsing, so even a body that
	// never normalizes leaves a trace. The session id is not known yet; the
	// recorder stamps the placeholder hash.
	requestID := h.idGenerator()
	h.record(r.Context(), audit.Entry{
		RequestID: requestID,
		Stage:     audit.StageReceived,
		RawInput:  string(body),
	})

	inbound, err := NormalizeInbound(body)
	if err != nil {
		h.responder.writeError(r.Context(), w, http.StatusBadRequest, errBadRequestBody)
		return
	}

	result, err := h.service.Schedule(r.Context(), application.ScheduleParams{
		RequestID: requestID,
		Request:   inbound.Request,
		RawInput:  string(body),
	})

	if inbound.Enveloped {
		h.renderToolCallResult(r.Context(), w, inbound.ToolCallID, result, err)
		return
	}

	if err != nil {
		h.responder.handlePipelineError(r.Context(), w, err)
		return
	}

	h.responder.writeJSON(r.Context(), w, http.StatusCreated, toScheduleResponse(result))
}

func (h *ScheduleHandler) record(ctx context.Context, entry audit.Entry) {
	if h.audit == nil {
		return
	}
	h.audit.Record(ctx, entry)
}

// renderToolCallResult echoes the tool call identifier with a single spoken
// result string. The transport drops any non-200 response before it reaches
// the conversational layer, so failures are relayed as text under 200.
func (h *ScheduleHandler) renderToolCallResult(ctx context.Context, w http.ResponseWriter, toolCallID string, result application.ScheduleResult, err error) {
	message := result.Summary
	if err != nil {
		message = userFacingMessage(err)
		handlerLogger(ctx, h.responder.logger, "ScheduleHandler", "Create").WarnContext(ctx,
			"relaying failure to conversational layer",
			"error_kind", application.ErrorKind(err),
		)
	}

	h.responder.writeJSON(ctx, w, http.StatusOK, toolCallResponse{
		Results: []toolCallResult{{ToolCallID: toolCallID, Result: message}},
	})
}

func userFacingMessage(err error) string {
	var vErr *application.ValidationError
	if errors.As(err, &vErr) {
		fields := make([]string, 0, len(vErr.FieldErrors))
		for field := range vErr.FieldErrors {
			fields = append(fields, field)
		}
		sort.Strings(fields)
		return "I couldn't schedule that because some details were missing or invalid: " + strings.Join(fields, ", ") + "."
	}

	var pErr *application.PipelineError
	if errors.As(err, &pErr) {
		switch pErr.Category {
		case application.CategoryParseFailure:
			return "Sorry, I couldn't understand that date and time. Could you say it differently?"
		case application.CategoryZoneError:
			return "That time doesn't exist in the requested timezone. Could you pick a different time?"
		case application.CategoryPastTime:
			return "That time has already passed. Could you pick a time in the future?"
		case application.CategoryUnauthenticated:
			return "Your calendar isn't connected yet, so I couldn't create the event."
		case application.CategoryForbidden:
			return "I don't have permission to write to that calendar."
		case application.CategoryRateLimited:
			return "The calendar service is busy right now. Please try again in a moment."
		}
	}

	return "Something went wrong while creating the event. Please try again."
}

type toolCallResponse struct {
	Results []toolCallResult `json:"results"`
}

type toolCallResult struct {
	ToolCallID string `json:"toolCallId"`
	Result     string `json:"result"`
}

type scheduleResponse struct {
	OK        bool   `json:"ok"`
	RequestID string `json:"requestId"`
	EventID   string `json:"eventId"`
	EventLink string `json:"eventLink,omitempty"`
	Summary   string `json:"summary"`
	StartISO  string `json:"startISO"`
	EndISO    string `json:"endISO"`
	Timezone  string `json:"timezone"`
}

func toScheduleResponse(result application.ScheduleResult) scheduleResponse {
	return scheduleResponse{
		OK:        true,
		RequestID: result.RequestID,
		EventID:   result.EventID,
		EventLink: result.EventLink,
		Summary:   result.Summary,
		StartISO:  result.Interval.Start.Format(time.RFC3339),
		EndISO:    result.Interval.End.Format(time.RFC3339),
		Timezone:  result.Interval.Zone,
	}
}
