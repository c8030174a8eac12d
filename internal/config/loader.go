package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

// Config captures environment driven configuration values for the voice
// scheduling agent.
type Config struct {
	HTTPPort        int
	AuditDSN        string
	CalendarBaseURL string
	CalendarTimeout time.Duration
	Environment     string
}

// IsProduction reports whether the process runs with the production profile.
// The audit read-back endpoint is only mounted when this is false.
func (c Config) IsProduction() bool {
	return strings.EqualFold(c.Environment, "production")
}

// Load parses configuration values from the current process environment.
//
// The loader applies defaults for optional fields and accumulates every
// invalid entry before reporting, so operators see all problems at once.
func Load() (Config, error) {
	cfg := Config{
		HTTPPort:        8080,
		AuditDSN:        "file:audit.db?_pragma=journal_mode(WAL)",
		CalendarBaseURL: "https://www.googleapis.com/calendar/v3",
		CalendarTimeout: 10 * time.Second,
		Environment:     "development",
	}

	invalid := make([]string, 0, 2)

	if portValue := strings.TrimSpace(os.Getenv("VOICE_AGENT_HTTP_PORT")); portValue != "" {
		port, err := strconv.Atoi(portValue)
		if err != nil || port <= 0 {
			invalid = append(invalid, "VOICE_AGENT_HTTP_PORT")
		} else {
			cfg.HTTPPort = port
		}
	}

	if dsn := strings.TrimSpace(os.Getenv("VOICE_AGENT_AUDIT_DSN")); dsn != "" {
		cfg.AuditDSN = dsn
	}

	if base := strings.TrimSpace(os.Getenv("VOICE_AGENT_CALENDAR_BASE_URL")); base != "" {
		cfg.CalendarBaseURL = base
	}

	if timeoutValue := strings.TrimSpace(os.Getenv("VOICE_AGENT_CALENDAR_TIMEOUT")); timeoutValue != "" {
		timeout, err := time.ParseDuration(timeoutValue)
		if err != nil || timeout <= 0 {
			invalid = append(invalid, "VOICE_AGENT_CALENDAR_TIMEOUT")
		} else {
			cfg.CalendarTimeout = timeout
		}
	}

	if env := strings.TrimSpace(os.Getenv("VOICE_AGENT_ENV")); env != "" {
		cfg.Environment = env
	}

	if len(invalid) > 0 {
		return Config{}, fmt.Errorf("invalid environment variable values: %s", strings.Join(invalid, ", "))
	}

	return cfg, nil
}
