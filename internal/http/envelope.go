package http

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/yakupzengin/voice-scheduling-agent/internal/application"
)

// envelopeMessageType is the discriminator the voice-orchestration transport
// places on tool invocation messages.
const envelopeMessageType = "tool-calls"

// InboundRequest is the canonical form of a schedule request after envelope
// normalization. Enveloped records which inbound shape was detected; it is
// the only place shape matters, everything downstream consumes the canonical
// record and the Outcome Reporter reads the flag back to pick the response
// shape.
type InboundRequest struct {
	Enveloped  bool
	ToolCallID string
	Request    application.SchedulingRequest
}

type scheduleArguments struct {
	SessionID       string `json:"sessionId"`
	Name            string `json:"name"`
	Date            string `json:"date"`
	Time            string `json:"time"`
	Timezone        string `json:"timezone"`
	DurationMinutes int    `json:"durationMinutes"`
	Title           string `json:"title"`
}

type envelopePayload struct {
	Message *struct {
		Type      string `json:"type"`
		ToolCalls []struct {
			ID       string `json:"id"`
			Function struct {
				Name      string          `json:"name"`
				Arguments json.RawMessage `json:"arguments"`
			} `json:"function"`
		} `json:"toolCalls"`
		Call *struct {
			Metadata struct {
				SessionID string `json:"sessionId"`
				Timezone  string `json:"timezone"`
			} `json:"metadata"`
		} `json:"call"`
	} `json:"message"`
}

// NormalizeInbound reduces the two inbound shapes to one canonical record.
// Enveloped payloads contribute the first tool call's arguments overlaid on
// the call metadata defaults for sessionId and timezone; explicit argument
// values always win. Anything that is not a tool-call envelope is treated as
// the flat argument object directly.
func NormalizeInbound(body []byte) (InboundRequest, error) {
	trimmed := bytes.TrimSpace(body)
	if len(trimmed) == 0 {
		return InboundRequest{}, fmt.Errorf("empty request body")
	}

	var envelope envelopePayload
	if err := json.Unmarshal(trimmed, &envelope); err == nil &&
		envelope.Message != nil &&
		envelope.Message.Type == envelopeMessageType &&
		len(envelope.Message.ToolCalls) > 0 {
		call := envelope.Message.ToolCalls[0]

		// Undecodable arguments degrade to an empty record; the missing
		// fields surface as validation errors, not a transport rejection.
		args, decodeErr := decodeArguments(call.Function.Arguments)
		if decodeErr != nil {
			args = scheduleArguments{}
		}

		if envelope.Message.Call != nil {
			metadata := envelope.Message.Call.Metadata
			if args.SessionID == "" {
				args.SessionID = metadata.SessionID
			}
			if args.Timezone == "" {
				args.Timezone = metadata.Timezone
			}
		}

		return InboundRequest{
			Enveloped:  true,
			ToolCallID: call.ID,
			Request:    args.toRequest(),
		}, nil
	}

	var args scheduleArguments
	if err := json.Unmarshal(trimmed, &args); err != nil {
		return InboundRequest{}, fmt.Errorf("malformed request payload: %w", err)
	}

	return InboundRequest{Request: args.toRequest()}, nil
}

// decodeArguments accepts the argument object either inline or doubly
// encoded as a JSON string, which some transport versions emit.
func decodeArguments(raw json.RawMessage) (scheduleArguments, error) {
	var args scheduleArguments

	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) == 0 {
		return args, nil
	}

	if trimmed[0] == '"' {
		var encoded string
		if err := json.Unmarshal(trimmed, &encoded); err != nil {
			return args, err
		}
		encoded = strings.TrimSpace(encoded)
		if encoded == "" {
			return args, nil
		}
		err := json.Unmarshal([]byte(encoded), &args)
		return args, err
	}

	err := json.Unmarshal(trimmed, &args)
	return args, err
}

func (a scheduleArguments) toRequest() application.SchedulingRequest {
	return application.SchedulingRequest{
		SessionID:       a.SessionID,
		Name:            a.Name,
		Date:            a.Date,
		Time:            a.Time,
		Timezone:        a.Timezone,
		DurationMinutes: a.DurationMinutes,
		Title:           a.Title,
	}
}
