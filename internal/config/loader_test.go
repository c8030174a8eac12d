package config

import (
	"strings"
	"testing"
	"time"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("VOICE_AGENT_HTTP_PORT", "")
	t.Setenv("VOICE_AGENT_AUDIT_DSN", "")
	t.Setenv("VOICE_AGENT_CALENDAR_BASE_URL", "")
	t.Setenv("VOICE_AGENT_CALENDAR_TIMEOUT", "")
	t.Setenv("VOICE_AGENT_ENV", "")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if cfg.HTTPPort != 8080 {
		t.Fatalf("unexpected port: %d", cfg.HTTPPort)
	}
	if cfg.CalendarTimeout != 10*time.Second {
		t.Fatalf("unexpected timeout: %v", cfg.CalendarTimeout)
	}
	if cfg.Environment != "development" || cfg.IsProduction() {
		t.Fatalf("unexpected environment: %q", cfg.Environment)
	}
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("VOICE_AGENT_HTTP_PORT", "9090")
	t.Setenv("VOICE_AGENT_AUDIT_DSN", "file:custom.db")
	t.Setenv("VOICE_AGENT_CALENDAR_BASE_URL", "https://calendar.test")
	t.Setenv("VOICE_AGENT_CALENDAR_TIMEOUT", "3s")
	t.Setenv("VOICE_AGENT_ENV", "Production")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if cfg.HTTPPort != 9090 || cfg.AuditDSN != "file:custom.db" || cfg.CalendarBaseURL != "https://calendar.test" {
		t.Fatalf("unexpected config: %#v", cfg)
	}
	if cfg.CalendarTimeout != 3*time.Second {
		t.Fatalf("unexpected timeout: %v", cfg.CalendarTimeout)
	}
	if !cfg.IsProduction() {
		t.Fatal("expected production profile")
	}
}

func TestLoadAccumulatesInvalidValues(t *testing.T) {
	t.Setenv("VOICE_AGENT_HTTP_PORT", "not-a-port")
	t.Setenv("VOICE_AGENT_CALENDAR_TIMEOUT", "-5s")

	_, err := Load()
	if err == nil {
		t.Fatal("expected error for invalid values")
	}
	if !strings.Contains(err.Error(), "VOICE_AGENT_HTTP_PORT") || !strings.Contains(err.Error(), "VOICE_AGENT_CALENDAR_TIMEOUT") {
		t.Fatalf("expected both variables reported, got %v", err)
	}
}
