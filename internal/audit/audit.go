// Package audit maintains the append-only trail of scheduling attempts. Each
// request produces an entry on arrival and exactly one more at its terminal
// stage; the two share a request id.
package audit

import (
	"context"
	"encoding/hex"
	"log/slog"
	"time"

	"golang.org/x/crypto/blake2b"
)

// Stage labels the pipeline stage at which a request terminated. Every value
// except StageReceived is terminal.
type Stage string

const (
	StageReceived          Stage = "received"
	StageValidationError   Stage = "validation_error"
	StageParseError        Stage = "parse_error"
	StageZoneError         Stage = "zone_error"
	StagePastTime          Stage = "past_time"
	StageDownstreamSuccess Stage = "downstream_success"
	StageDownstreamError   Stage = "downstream_error"
)

// Entry is one immutable audit record. RawInput preserves the untransformed
// inbound payload for reproducibility; the session token itself never
// appears, only its one-way hash.
type Entry struct {
	Timestamp        time.Time
	RequestID        string
	SessionIDHash    string
	Stage            Stage
	RawInput         string
	ParsedStart      *time.Time
	ParsedEnd        *time.Time
	ErrorMessage     string
	DownstreamStatus string
	EventID          string
	EventLink        string
}

// Store persists entries. Implementations must be append-only and safe for
// concurrent use.
type Store interface {
	Append(ctx context.Context, entry Entry) error
	List(ctx context.Context, limit, offset int) ([]Entry, error)
}

// Recorder writes entries synchronously so the trail is durable before the
// HTTP response goes out. A store failure never fails the request: it is
// swallowed and reported to the operational log only.
type Recorder struct {
	store  Store
	now    func() time.Time
	logger *slog.Logger
}

// NewRecorder constructs a Recorder with the provided dependencies.
func NewRecorder(store Store, now func() time.Time, logger *slog.Logger) *Recorder {
	if now == nil {
		now = time.Now
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Recorder{store: store, now: now, logger: logger}
}

// Record appends one entry, stamping the timestamp when unset.
func (r *Recorder) Record(ctx context.Context, entry Entry) {
	if r == nil || r.store == nil {
		return
	}
	if entry.Timestamp.IsZero() {
		entry.Timestamp = r.now().UTC()
	}
	if entry.SessionIDHash == "" {
		entry.SessionIDHash = unknownSessionHash
	}
	if err := r.store.Append(ctx, entry); err != nil {
		r.logger.ErrorContext(ctx, "failed to append audit entry",
			"error", err,
			"request_id", entry.RequestID,
			"stage", entry.Stage,
		)
	}
}

// unknownSessionHash marks entries written before the session id is known.
const unknownSessionHash = "unknown"

// HashSessionID derives the one-way hash stored in place of the raw session
// token. Empty input maps to a fixed placeholder.
func HashSessionID(sessionID string) string {
	if sessionID == "" {
		return unknownSessionHash
	}
	sum := blake2b.Sum256([]byte(sessionID))
	return hex.EncodeToString(sum[:16])
}
