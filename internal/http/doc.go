// Package http provides HTTP handlers and middleware for the voice scheduling API.
//
// The router exposes the following endpoints:
//   - POST /schedule: accepts either a voice-platform tool-call envelope or a
//     flat argument object. Enveloped callers always receive HTTP 200 with
//     {"results":[{"toolCallId","result"}]}; flat callers receive a structured
//     payload with an HTTP status reflecting the outcome (201 on success).
//   - GET /sessions/{sessionId}/events: lists the events created during the
//     session, newest last, from the in-memory session ledger.
//   - GET /audit: pages through the append-only audit trail. Mounted only in
//     non-production environments.
//   - GET /healthz: liveness check.
//
// Request/response DTOs live alongside their respective handlers so tests and
// documentation share the same ground truth.
package http
