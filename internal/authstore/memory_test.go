package authstore

import (
	"context"
	"errors"
	"testing"

	"golang.org/x/oauth2"
)

func TestMemory_PutAndCredential(t *testing.T) {
	t.Parallel()

	store := NewMemory()
	store.Put("session-1", &oauth2.Token{AccessToken: "token-1", TokenType: "Bearer"})

	token, err := store.Credential(context.Background(), "session-1")
	if err != nil {
		t.Fatalf("Credential failed: %v", err)
	}
	if token.AccessToken != "token-1" {
		t.Fatalf("unexpected token: %#v", token)
	}

	// The returned token is a copy; mutating it must not poison the store.
	token.AccessToken = "tampered"
	again, err := store.Credential(context.Background(), "session-1")
	if err != nil {
		t.Fatalf("Credential failed: %v", err)
	}
	if again.AccessToken != "token-1" {
		t.Fatalf("store exposed internal state: %#v", again)
	}
}

func TestMemory_MissingCredential(t *testing.T) {
	t.Parallel()

	store := NewMemory()

	if _, err := store.Credential(context.Background(), "session-x"); !errors.Is(err, ErrNoCredential) {
		t.Fatalf("expected ErrNoCredential, got %v", err)
	}
}

func TestMemory_Delete(t *testing.T) {
	t.Parallel()

	store := NewMemory()
	store.Put("session-1", &oauth2.Token{AccessToken: "token-1"})
	store.Delete("session-1")

	if _, err := store.Credential(context.Background(), "session-1"); !errors.Is(err, ErrNoCredential) {
		t.Fatalf("expected ErrNoCredential after delete, got %v", err)
	}
}
