package http

import (
	"context"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/yakupzengin/voice-scheduling-agent/internal/audit"
)

const (
	auditDefaultLimit = 50
	auditMaxLimit     = 100
)

type auditReader interface {
	List(ctx context.Context, limit, offset int) ([]audit.Entry, error)
}

// AuditHandler exposes the audit trail for inspection. It is only mounted in
// non-production environments.
type AuditHandler struct {
	store     auditReader
	responder responder
}

func NewAuditHandler(store auditReader, logger *slog.Logger) *AuditHandler {
	return &AuditHandler{store: store, responder: newResponder(logger)}
}

func (h *AuditHandler) List(w http.ResponseWriter, r *http.Request) {
	if h == nil || h.store == nil {
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	limit := queryInt(r, "limit", auditDefaultLimit)
	if limit <= 0 {
		limit = auditDefaultLimit
	}
	if limit > auditMaxLimit {
		limit = auditMaxLimit
	}
	offset := queryInt(r, "offset", 0)
	if offset < 0 {
		offset = 0
	}

	entries, err := h.store.List(r.Context(), limit, offset)
	if err != nil {
		h.responder.writeError(r.Context(), w, http.StatusInternalServerError, err)
		return
	}

	h.responder.writeJSON(r.Context(), w, http.StatusOK, auditListResponse{Entries: toAuditDTOs(entries)})
}

func queryInt(r *http.Request, name string, fallback int) int {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return fallback
	}
	value, err := strconv.Atoi(raw)
	if err != nil {
		return fallback
	}
	return value
}

type auditListResponse struct {
	Entries []auditEntryDTO `json:"entries"`
}

type auditEntryDTO struct {
	Timestamp        string `json:"timestamp"`
	RequestID        string `json:"requestId"`
	SessionIDHash    string `json:"sessionIdHash"`
	Stage            string `json:"stage"`
	RawInput         string `json:"rawInput"`
	ParsedStart      string `json:"parsedStart,omitempty"`
	ParsedEnd        string `json:"parsedEnd,omitempty"`
	ErrorMessage     string `json:"errorMessage,omitempty"`
	DownstreamStatus string `json:"downstreamStatus,omitempty"`
	EventID          string `json:"eventId,omitempty"`
	EventLink        string `json:"eventLink,omitempty"`
}

func toAuditDTOs(entries []audit.Entry) []auditEntryDTO {
	out := make([]auditEntryDTO, 0, len(entries))
	for _, entry := range entries {
		dto := auditEntryDTO{
			Timestamp:        entry.Timestamp.UTC().Format(time.RFC3339),
			RequestID:        entry.RequestID,
			SessionIDHash:    entry.SessionIDHash,
			Stage:            string(entry.Stage),
			RawInput:         entry.RawInput,
			ErrorMessage:     entry.ErrorMessage,
			DownstreamStatus: entry.DownstreamStatus,
			EventID:          entry.EventID,
			EventLink:        entry.EventLink,
		}
		if entry.ParsedStart != nil {
			dto.ParsedStart = entry.ParsedStart.UTC().Format(time.RFC3339)
		}
		if entry.ParsedEnd != nil {
			dto.ParsedEnd = entry.ParsedEnd.UTC().Format(time.RFC3339)
		}
		out = append(out, dto)
	}
	return out
}
