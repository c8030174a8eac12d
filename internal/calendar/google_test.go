package calendar

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"golang.org/x/oauth2"
)

type credentialStub struct {
	token *oauth2.Token
	err   error
}

func (s *credentialStub) Credential(context.Context, string) (*oauth2.Token, error) {
	if s.err != nil {
		return nil, s.err
	}
	return s.token, nil
}

func testInput() CreateInput {
	start := time.Date(2024, time.June, 10, 15, 0, 0, 0, time.UTC)
	return CreateInput{
		Title:       "Meeting with Alex",
		Description: "Scheduled by voice assistant for Alex.",
		Start:       start,
		End:         start.Add(30 * time.Minute),
		Timezone:    "UTC",
	}
}

func TestGoogleClient_Create(t *testing.T) {
	t.Parallel()

	t.Run("creates the event and returns its identity", func(t *testing.T) {
		t.Parallel()

		var gotAuth string
		var gotBody map[string]any
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			gotAuth = r.Header.Get("Authorization")
			if err := json.NewDecoder(r.Body).Decode(&gotBody); err != nil {
				t.Errorf("failed to decode request body: %v", err)
			}
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusOK)
			_, _ = w.Write([]byte(`{"id":"evt-1","htmlLink":"https://calendar/evt-1"}`))
		}))
		defer server.Close()

		client := NewGoogleClient(server.URL, time.Second, &credentialStub{token: &oauth2.Token{AccessToken: "token-1"}})

		event, err := client.Create(context.Background(), "session-1", testInput())
		if err != nil {
			t.Fatalf("Create failed: %v", err)
		}
		if event.ID != "evt-1" || event.Link != "https://calendar/evt-1" {
			t.Fatalf("unexpected event: %#v", event)
		}
		if gotAuth != "Bearer token-1" {
			t.Fatalf("unexpected authorization header: %q", gotAuth)
		}
		if gotBody["summary"] != "Meeting with Alex" {
			t.Fatalf("unexpected request body: %#v", gotBody)
		}
		start, _ := gotBody["start"].(map[string]any)
		if start["dateTime"] != "2024-06-10T15:00:00Z" || start["timeZone"] != "UTC" {
			t.Fatalf("unexpected start payload: %#v", start)
		}
	})

	t.Run("maps a missing credential without calling downstream", func(t *testing.T) {
		t.Parallel()

		called := false
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			called = true
		}))
		defer server.Close()

		client := NewGoogleClient(server.URL, time.Second, &credentialStub{err: errors.New("no credential")})

		_, err := client.Create(context.Background(), "session-1", testInput())
		var calErr *Error
		if !errors.As(err, &calErr) || calErr.Category != ErrorUnauthenticated {
			t.Fatalf("expected unauthenticated, got %v", err)
		}
		if called {
			t.Fatal("expected no downstream call without a credential")
		}
	})

	t.Run("maps downstream statuses to categories", func(t *testing.T) {
		t.Parallel()

		cases := []struct {
			status   int
			category ErrorCategory
		}{
			{http.StatusUnauthorized, ErrorUnauthenticated},
			{http.StatusForbidden, ErrorForbidden},
			{http.StatusTooManyRequests, ErrorRateLimited},
			{http.StatusInternalServerError, ErrorDownstream},
		}

		for _, tc := range cases {

			tc := tc
			t.Run(http.StatusText(tc.status), func(t *testing.T) {
				t.Parallel()

				server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
					w.Header().Set("Content-Type", "application/json")
					w.WriteHeader(tc.status)
					_, _ = w.Write([]byte(`{"error":{"message":"remote detail"}}`))
				}))
				defer server.Close()

				client := NewGoogleClient(server.URL, time.Second, &credentialStub{token: &oauth2.Token{AccessToken: "token-1"}})

				_, err := client.Create(context.Background(), "session-1", testInput())
				var calErr *Error
				if !errors.As(err, &calErr) || calErr.Category != tc.category {
					t.Fatalf("status %d: expected %s, got %v", tc.status, tc.category, err)
				}
				if calErr.Message != "remote detail" {
					t.Fatalf("expected remote message preserved, got %q", calErr.Message)
				}
			})
		}
	})
}
