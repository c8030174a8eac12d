package application

import "sync"

const defaultLedgerCapacity = 50

// SessionLedger is an ephemeral, process-scoped record of successfully
// created events, keyed by session. It exists so a client that cannot observe
// the original call inline can read recent events back later.
//
// Entries interleave in completion order under concurrency and the whole
// ledger is lost on restart; the downstream calendar remains the source of
// truth.
type SessionLedger struct {
	mu       sync.Mutex
	capacity int
	events   map[string][]SessionEventRecord
}

// NewSessionLedger returns an empty ledger holding at most 50 events per
// session, oldest evicted first.
func NewSessionLedger() *SessionLedger {
	return &SessionLedger{
		capacity: defaultLedgerCapacity,
		events:   make(map[string][]SessionEventRecord),
	}
}

// Record appends an event for the session, evicting the oldest entry when
// the per-session cap is exceeded.
func (l *SessionLedger) Record(sessionID string, event SessionEventRecord) {
	if l == nil || sessionID == "" {
		return
	}
	l.mu.Lock()
	defer l.mu.Unlock()

	entries := append(l.events[sessionID], event)
	if len(entries) > l.capacity {
		entries = entries[len(entries)-l.capacity:]
	}
	l.events[sessionID] = entries
}

// List returns a copy of the session's events, or nil when none exist.
func (l *SessionLedger) List(sessionID string) []SessionEventRecord {
	if l == nil {
		return nil
	}
	l.mu.Lock()
	defer l.mu.Unlock()

	entries := l.events[sessionID]
	if len(entries) == 0 {
		return nil
	}
	out := make([]SessionEventRecord, len(entries))
	copy(out, entries)
	return out
}

// Evict drops all events retained for the session.
func (l *SessionLedger) Evict(sessionID string) {
	if l == nil {
		return
	}
	l.mu.Lock()
	delete(l.events, sessionID)
	l.mu.Unlock()
}
