package audit

import (
	"context"
	"database/sql"
	"fmt"
	"sync"
	"time"

	_ "modernc.org/sqlite"
)

const createTableStatement = `
CREATE TABLE IF NOT EXISTS audit_entries (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	timestamp TEXT NOT NULL,
	request_id TEXT NOT NULL,
	session_id_hash TEXT NOT NULL,
	stage TEXT NOT NULL,
	raw_input TEXT NOT NULL,
	parsed_start TEXT,
	parsed_end TEXT,
	error_message TEXT NOT NULL DEFAULT '',
	downstream_status TEXT NOT NULL DEFAULT '',
	event_id TEXT NOT NULL DEFAULT '',
	event_link TEXT NOT NULL DEFAULT ''
)`

// SQLiteStore is the durable Store implementation. Inserts are serialized so
// interleaved writes from concurrent requests never corrupt the trail; rows
// are never updated or deleted.
type SQLiteStore struct {
	mu sync.Mutex
	db *sql.DB
}

// OpenSQLite opens (or creates) the audit database at the given DSN.
func OpenSQLite(dsn string) (*SQLiteStore, error) {
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open audit store: %w", err)
	}
	if _, err := db.Exec(createTableStatement); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to initialise audit store: %w", err)
	}
	return &SQLiteStore{db: db}, nil
}

// Close releases the underlying database handle.
func (s *SQLiteStore) Close() error {
	if s == nil || s.db == nil {
		return nil
	}
	return s.db.Close()
}

// Append inserts one entry synchronously.
func (s *SQLiteStore) Append(ctx context.Context, entry Entry) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	query := `
		INSERT INTO audit_entries
			(timestamp, request_id, session_id_hash, stage, raw_input, parsed_start, parsed_end, error_message, downstream_status, event_id, event_link)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`

	_, err := s.db.ExecContext(ctx, query,
		entry.Timestamp.UTC().Format(time.RFC3339),
		entry.RequestID,
		entry.SessionIDHash,
		string(entry.Stage),
		entry.RawInput,
		formatTimePtr(entry.ParsedStart),
		formatTimePtr(entry.ParsedEnd),
		entry.ErrorMessage,
		entry.DownstreamStatus,
		entry.EventID,
		entry.EventLink,
	)
	if err != nil {
		return fmt.Errorf("failed to append audit entry: %w", err)
	}
	return nil
}

// List returns entries in insertion order, paged by limit and offset.
func (s *SQLiteStore) List(ctx context.Context, limit, offset int) ([]Entry, error) {
	if limit <= 0 {
		limit = 50
	}
	if offset < 0 {
		offset = 0
	}

	query := `
		SELECT timestamp, request_id, session_id_hash, stage, raw_input, parsed_start, parsed_end, error_message, downstream_status, event_id, event_link
		FROM audit_entries
		ORDER BY id ASC
		LIMIT ? OFFSET ?
	`

	rows, err := s.db.QueryContext(ctx, query, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("failed to list audit entries: %w", err)
	}
	defer rows.Close()

	entries := make([]Entry, 0, limit)
	for rows.Next() {
		var entry Entry
		var timestampStr string
		var parsedStart, parsedEnd sql.NullString

		if err := rows.Scan(
			&timestampStr,
			&entry.RequestID,
			&entry.SessionIDHash,
			&entry.Stage,
			&entry.RawInput,
			&parsedStart,
			&parsedEnd,
			&entry.ErrorMessage,
			&entry.DownstreamStatus,
			&entry.EventID,
			&entry.EventLink,
		); err != nil {
			return nil, fmt.Errorf("failed to scan audit entry: %w", err)
		}

		if entry.Timestamp, err = time.Parse(time.RFC3339, timestampStr); err != nil {
			return nil, fmt.Errorf("failed to parse timestamp: %w", err)
		}
		if entry.ParsedStart, err = parseTimePtr(parsedStart); err != nil {
			return nil, fmt.Errorf("failed to parse parsed_start: %w", err)
		}
		if entry.ParsedEnd, err = parseTimePtr(parsedEnd); err != nil {
			return nil, fmt.Errorf("failed to parse parsed_end: %w", err)
		}

		entries = append(entries, entry)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate audit entries: %w", err)
	}

	return entries, nil
}

func formatTimePtr(t *time.Time) sql.NullString {
	if t == nil {
		return sql.NullString{}
	}
	return sql.NullString{String: t.UTC().Format(time.RFC3339), Valid: true}
}

func parseTimePtr(value sql.NullString) (*time.Time, error) {
	if !value.Valid {
		return nil, nil
	}
	parsed, err := time.Parse(time.RFC3339, value.String)
	if err != nil {
		return nil, err
	}
	return &parsed, nil
}
