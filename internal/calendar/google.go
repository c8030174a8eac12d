package calendar

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/go-resty/resty/v2"
	"golang.org/x/oauth2"
)

// CredentialSource supplies the OAuth credential established for a session.
type CredentialSource interface {
	Credential(ctx context.Context, sessionID string) (*oauth2.Token, error)
}

// GoogleClient creates events through the Google Calendar v3 REST API on the
// session owner's primary calendar.
type GoogleClient struct {
	http        *resty.Client
	credentials CredentialSource
}

// NewGoogleClient constructs a client with a bounded per-call timeout.
func NewGoogleClient(baseURL string, timeout time.Duration, credentials CredentialSource) *GoogleClient {
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	client := resty.New().
		SetBaseURL(baseURL).
		SetTimeout(timeout).
		SetHeader("Accept", "application/json")
	return &GoogleClient{http: client, credentials: credentials}
}

type eventTime struct {
	DateTime string `json:"dateTime"`
	TimeZone string `json:"timeZone"`
}

type eventResource struct {
	Summary     string    `json:"summary"`
	Description string    `json:"description,omitempty"`
	Start       eventTime `json:"start"`
	End         eventTime `json:"end"`
}

type createdEvent struct {
	ID       string `json:"id"`
	HTMLLink string `json:"htmlLink"`
	Error    *struct {
		Message string `json:"message"`
	} `json:"error"`
}

// Create inserts the event. A missing stored credential maps to the
// unauthenticated category; HTTP statuses map per the downstream taxonomy
// and a timeout is treated as a generic downstream failure.
func (c *GoogleClient) Create(ctx context.Context, sessionID string, input CreateInput) (Event, error) {
	if c == nil || c.http == nil {
		return Event{}, &Error{Category: ErrorDownstream, Message: "calendar client not configured"}
	}

	token, err := c.credentials.Credential(ctx, sessionID)
	if err != nil {
		return Event{}, &Error{Category: ErrorUnauthenticated, Message: "no stored credential for session"}
	}

	body := eventResource{
		Summary:     input.Title,
		Description: input.Description,
		Start:       eventTime{DateTime: input.Start.Format(time.RFC3339), TimeZone: input.Timezone},
		End:         eventTime{DateTime: input.End.Format(time.RFC3339), TimeZone: input.Timezone},
	}

	var created createdEvent
	resp, err := c.http.R().
		SetContext(ctx).
		SetAuthToken(token.AccessToken).
		SetBody(body).
		SetResult(&created).
		SetError(&created).
		Post("/calendars/primary/events")
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) {
			return Event{}, &Error{Category: ErrorDownstream, Message: "calendar request timed out"}
		}
		return Event{}, &Error{Category: ErrorDownstream, Message: err.Error()}
	}

	switch resp.StatusCode() {
	case http.StatusOK, http.StatusCreated:
		return Event{ID: created.ID, Link: created.HTMLLink}, nil
	case http.StatusUnauthorized:
		return Event{}, &Error{Category: ErrorUnauthenticated, Message: remoteMessage(created, "credential rejected by calendar API")}
	case http.StatusForbidden:
		return Event{}, &Error{Category: ErrorForbidden, Message: remoteMessage(created, "insufficient calendar permission")}
	case http.StatusTooManyRequests:
		return Event{}, &Error{Category: ErrorRateLimited, Message: remoteMessage(created, "calendar API rate limit exceeded")}
	default:
		return Event{}, &Error{
			Category: ErrorDownstream,
			Message:  remoteMessage(created, fmt.Sprintf("calendar API returned status %d", resp.StatusCode())),
		}
	}
}

func remoteMessage(created createdEvent, fallback string) string {
	if created.Error != nil && created.Error.Message != "" {
		return created.Error.Message
	}
	return fallback
}
