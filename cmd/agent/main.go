package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/google/uuid"
	"golang.org/x/oauth2"

	"github.com/yakupzengin/voice-scheduling-agent/internal/application"
	"github.com/yakupzengin/voice-scheduling-agent/internal/audit"
	"github.com/yakupzengin/voice-scheduling-agent/internal/authstore"
	"github.com/yakupzengin/voice-scheduling-agent/internal/calendar"
	"github.com/yakupzengin/voice-scheduling-agent/internal/config"
	httptransport "github.com/yakupzengin/voice-scheduling-agent/internal/http"
	"github.com/yakupzengin/voice-scheduling-agent/internal/temporal"
)

func main() {
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelInfo}))
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cfg, err := config.Load()
	if err != nil {
		logger.Error("failed to load configuration", "error", err)
		os.Exit(1)
	}

	auditStore, err := audit.OpenSQLite(cfg.AuditDSN)
	if err != nil {
		logger.Error("failed to open audit store", "error", err)
		os.Exit(1)
	}
	defer func() {
		if cerr := auditStore.Close(); cerr != nil {
			logger.Error("failed to close audit store", "error", cerr)
		}
	}()

	recorder := audit.NewRecorder(auditStore, time.Now, logger)

	credentials := authstore.NewMemory()
	seedCredentials(credentials, logger)

	calendarClient := calendar.NewGoogleClient(cfg.CalendarBaseURL, cfg.CalendarTimeout, credentials)
	resolver := temporal.NewResolver(time.Now)
	ledger := application.NewSessionLedger()

	service := application.NewSchedulingServiceWithLogger(
		resolver,
		calendarClient,
		ledger,
		recorder,
		uuid.NewString,
		time.Now,
		cfg.CalendarTimeout,
		logger,
	)

	scheduleHandler := httptransport.NewScheduleHandler(service, recorder, uuid.NewString, logger)
	eventsHandler := httptransport.NewEventsHandler(ledger, logger)

	var auditHandler *httptransport.AuditHandler
	if !cfg.IsProduction() {
		auditHandler = httptransport.NewAuditHandler(auditStore, logger)
	}

	handler := httptransport.NewRouter(httptransport.RouterConfig{
		Schedule:   scheduleHandler,
		Events:     eventsHandler,
		Audit:      auditHandler,
		Middleware: []func(http.Handler) http.Handler{httptransport.RequestLogger(logger)},
	})

	server := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.HTTPPort),
		Handler:           handler,
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       30 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := server.Shutdown(shutdownCtx); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("failed to shutdown server", "error", err)
		}
	}()

	logger.Info("voice scheduling agent listening", "addr", server.Addr, "environment", cfg.Environment)
	if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		logger.Error("server encountered error", "error", err)
		os.Exit(1)
	}
}

// seedCredentials loads pre-provisioned session credentials from
// VOICE_AGENT_SESSION_TOKENS, formatted as comma-separated
// "sessionId=accessToken" pairs. Token acquisition normally happens on the
// voice platform side; this hook covers local runs and smoke tests.
func seedCredentials(store *authstore.Memory, logger *slog.Logger) {
	raw := strings.TrimSpace(os.Getenv("VOICE_AGENT_SESSION_TOKENS"))
	if raw == "" {
		return
	}

	seeded := 0
	for _, pair := range strings.Split(raw, ",") {
		sessionID, token, ok := strings.Cut(strings.TrimSpace(pair), "=")
		sessionID = strings.TrimSpace(sessionID)
		token = strings.TrimSpace(token)
		if !ok || sessionID == "" || token == "" {
			logger.Warn("skipping malformed session token entry")
			continue
		}
		store.Put(sessionID, &oauth2.Token{AccessToken: token, TokenType: "Bearer"})
		seeded++
	}
	if seeded > 0 {
		logger.Info("seeded session credentials", "count", seeded)
	}
}
