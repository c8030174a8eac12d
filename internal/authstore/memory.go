// Package authstore holds the OAuth credentials established out-of-band by
// the voice platform, keyed by session id. Token acquisition and rotation
// happen elsewhere; this store only answers lookups.
package authstore

import (
	"context"
	"errors"
	"sync"

	"golang.org/x/oauth2"
)

// ErrNoCredential is returned when no credential exists for a session.
var ErrNoCredential = errors.New("authstore: no credential for session")

// Memory is an in-memory credential store.
type Memory struct {
	mu     sync.RWMutex
	tokens map[string]*oauth2.Token
}

// NewMemory returns an empty store.
func NewMemory() *Memory {
	return &Memory{tokens: make(map[string]*oauth2.Token)}
}

// Put stores or replaces the credential for a session.
func (m *Memory) Put(sessionID string, token *oauth2.Token) {
	if m == nil || sessionID == "" || token == nil {
		return
	}
	m.mu.Lock()
	m.tokens[sessionID] = cloneToken(token)
	m.mu.Unlock()
}

// Credential retrieves the credential for a session.
func (m *Memory) Credential(_ context.Context, sessionID string) (*oauth2.Token, error) {
	if m == nil {
		return nil, ErrNoCredential
	}
	m.mu.RLock()
	token, ok := m.tokens[sessionID]
	m.mu.RUnlock()
	if !ok {
		return nil, ErrNoCredential
	}
	return cloneToken(token), nil
}

// Delete removes the credential for a session.
func (m *Memory) Delete(sessionID string) {
	if m == nil {
		return
	}
	m.mu.Lock()
	delete(m.tokens, sessionID)
	m.mu.Unlock()
}

func cloneToken(token *oauth2.Token) *oauth2.Token {
	clone := *token
	return &clone
}
