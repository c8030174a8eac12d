// Package logging carries the request-scoped logger through the scheduling
// pipeline. The HTTP middleware attaches a logger tagged with the request id
// and route; handlers and services retrieve it so every log line for one
// scheduling attempt shares the correlation fields of its audit entries.
package logging

import (
	"context"
	"log/slog"
)

// loggerKey is unexported so only this package can place the value.
type loggerKey struct{}

// ContextWithLogger derives a context carrying logger. A nil context or nil
// logger leaves the chain untouched.
func ContextWithLogger(ctx context.Context, logger *slog.Logger) context.Context {
	if ctx == nil || logger == nil {
		return ctx
	}
	return context.WithValue(ctx, loggerKey{}, logger)
}

// FromContext returns the logger attached by ContextWithLogger, or nil when
// the context carries none. Callers are expected to fall back to their own
// configured logger.
func FromContext(ctx context.Context) *slog.Logger {
	if ctx == nil {
		return nil
	}
	if logger, ok := ctx.Value(loggerKey{}).(*slog.Logger); ok {
		return logger
	}
	return nil
}
