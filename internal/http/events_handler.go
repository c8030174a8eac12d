package http

import (
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/yakupzengin/voice-scheduling-agent/internal/application"
)

// EventsHandler serves the per-session read-back of events created during a
// conversation.
type EventsHandler struct {
	ledger    *application.SessionLedger
	responder responder
}

func NewEventsHandler(ledger *application.SessionLedger, logger *slog.Logger) *EventsHandler {
	return &EventsHandler{ledger: ledger, responder: newResponder(logger)}
}

func (h *EventsHandler) List(w http.ResponseWriter, r *http.Request) {
	if h == nil || h.ledger == nil {
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	sessionID, ok := SessionIDFromContext(r.Context())
	if !ok || strings.TrimSpace(sessionID) == "" {
		h.responder.writeError(r.Context(), w, http.StatusBadRequest, errMissingSessionID)
		return
	}

	events := h.ledger.List(sessionID)

	h.responder.writeJSON(r.Context(), w, http.StatusOK, sessionEventsResponse{
		SessionID: sessionID,
		Events:    toSessionEventDTOs(events),
	})
}

type sessionEventsResponse struct {
	SessionID string            `json:"sessionId"`
	Events    []sessionEventDTO `json:"events"`
}

type sessionEventDTO struct {
	Title     string `json:"title"`
	Start     string `json:"start"`
	Timezone  string `json:"timezone"`
	EventLink string `json:"eventLink,omitempty"`
}

func toSessionEventDTOs(events []application.SessionEventRecord) []sessionEventDTO {
	out := make([]sessionEventDTO, 0, len(events))
	for _, event := range events {
		out = append(out, sessionEventDTO{
			Title:     event.Title,
			Start:     event.Start.Format(time.RFC3339),
			Timezone:  event.Timezone,
			EventLink: event.EventLink,
		})
	}
	return out
}
