package logging

import (
	"context"
	"io"
	"log/slog"
	"testing"
)

func TestContextWithLogger(t *testing.T) {
	t.Parallel()

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	ctx := ContextWithLogger(context.Background(), logger)
	if got := FromContext(ctx); got != logger {
		t.Fatalf("expected the attached logger back, got %v", got)
	}
}

func TestFromContextWithoutLogger(t *testing.T) {
	t.Parallel()

	if got := FromContext(context.Background()); got != nil {
		t.Fatalf("expected nil for a bare context, got %v", got)
	}
	var missing context.Context
	if got := FromContext(missing); got != nil {
		t.Fatalf("expected nil for a nil context, got %v", got)
	}
}

func TestContextWithLoggerNilLogger(t *testing.T) {
	t.Parallel()

	ctx := ContextWithLogger(context.Background(), nil)
	if got := FromContext(ctx); got != nil {
		t.Fatalf("expected nil logger to be ignored, got %v", got)
	}
}
