package http

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"github.com/yakupzengin/voice-scheduling-agent/internal/application"
)

var (
	errBadRequestBody   = errors.New("invalid request body")
	errMissingSessionID = errors.New("session id is required")
)

type responder struct {
	logger *slog.Logger
}

func newResponder(logger *slog.Logger) responder {
	if logger == nil {
		logger = slog.Default()
	}
	return responder{logger: logger}
}

func (r responder) writeJSON(ctx context.Context, w http.ResponseWriter, status int, payload any) {
	if w == nil {
		return
	}

	if status == http.StatusNoContent || payload == nil {
		w.WriteHeader(status)
		return
	}

	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		r.loggerFor(ctx).ErrorContext(ctx, "failed to encode response", "error", err)
	}
}

// writeError renders a failure in the flat error shape. Internal detail is
// never echoed on 5xx responses; the full error goes to the server log only.
func (r responder) writeError(ctx context.Context, w http.ResponseWriter, status int, err error) {
	message := statusMessage(status)
	if err != nil {
		if msg := strings.TrimSpace(err.Error()); msg != "" && status < http.StatusInternalServerError {
			message = msg
		}
		r.loggerFor(ctx).ErrorContext(ctx, "request failed", "status", status, "error", err)
	}

	r.writeJSON(ctx, w, status, errorResponse{Error: errorDetail{Message: message}})
}

// handlePipelineError renders a scheduling failure for flat callers. The HTTP
// status follows the failure category; enveloped callers never reach this
// path because their transport status is always 200.
func (r responder) handlePipelineError(ctx context.Context, w http.ResponseWriter, err error) {
	if err == nil {
		r.writeError(ctx, w, http.StatusInternalServerError, errors.New("unknown error"))
		return
	}

	var vErr *application.ValidationError
	if errors.As(err, &vErr) {
		r.writeJSON(ctx, w, http.StatusBadRequest, errorResponse{Error: errorDetail{
			Code:    string(application.CategoryValidation),
			Message: "request validation failed",
			Fields:  vErr.FieldErrors,
		}})
		return
	}

	var pErr *application.PipelineError
	if errors.As(err, &pErr) {
		r.writeJSON(ctx, w, statusForCategory(pErr.Category), errorResponse{Error: errorDetail{
			Code:    string(pErr.Category),
			Message: pErr.Message,
		}})
		return
	}

	r.loggerFor(ctx).ErrorContext(ctx, "unclassified scheduling failure", "error", err)
	r.writeJSON(ctx, w, http.StatusInternalServerError, errorResponse{Error: errorDetail{
		Code:    string(application.CategoryInternal),
		Message: statusMessage(http.StatusInternalServerError),
	}})
}

func (r responder) loggerFor(ctx context.Context) *slog.Logger {
	if logger := LoggerFromContext(ctx); logger != nil {
		return logger
	}
	return r.logger
}

func statusForCategory(category application.Category) int {
	switch category {
	case application.CategoryValidation,
		application.CategoryParseFailure,
		application.CategoryZoneError,
		application.CategoryPastTime:
		return http.StatusBadRequest
	case application.CategoryUnauthenticated:
		return http.StatusUnauthorized
	case application.CategoryForbidden:
		return http.StatusForbidden
	case application.CategoryRateLimited:
		return http.StatusTooManyRequests
	case application.CategoryDownstream:
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}

func statusMessage(status int) string {
	switch status {
	case http.StatusBadRequest:
		return "the request could not be processed"
	case http.StatusUnauthorized:
		return "authentication is required"
	case http.StatusForbidden:
		return "this operation is not permitted"
	case http.StatusNotFound:
		return "the requested resource was not found"
	case http.StatusTooManyRequests:
		return "too many requests"
	case http.StatusBadGateway:
		return "the downstream service failed"
	default:
		return "an internal error occurred"
	}
}

// errorResponse is the failure half of the flat outbound contract: the ok
// flag lets cross-language clients branch without inspecting status codes.
type errorResponse struct {
	OK    bool        `json:"ok"`
	Error errorDetail `json:"error"`
}

type errorDetail struct {
	Code    string              `json:"code,omitempty"`
	Message string              `json:"message"`
	Fields  map[string][]string `json:"fields,omitempty"`
}
