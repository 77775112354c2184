// Package diagnostics reports handled-but-noteworthy failures to the
// structured log and, when configured, to PostHog.
package diagnostics

import (
	"context"
	"log/slog"

	"github.com/posthog/posthog-go"

	portssvc "github.com/pocketfox/pocketfox_backend/internal/core/ports/services"
	"github.com/pocketfox/pocketfox_backend/internal/middleware"
)

// Sink logs exceptions and optionally forwards them to PostHog. A nil or
// unconfigured PostHog client degrades to log-only; reporting must never fail
// the flow that triggered it.
type Sink struct {
	posthogClient posthog.Client
	distinctID    string
}

// NewSink creates a sink. With an empty API key the sink is log-only.
func NewSink(apiKey string, logger *slog.Logger) *Sink {
	s := &Sink{distinctID: "pocketfox-backend"}
	if apiKey == "" {
		logger.Warn("PostHog API key is empty, exception reporting is log-only")
		return s
	}
	client, err := posthog.NewWithConfig(apiKey, posthog.Config{Endpoint: "https://eu.i.posthog.com"})
	if err != nil {
		logger.Warn("Failed to initialize PostHog client, exception reporting is log-only",
			slog.String("error", err.Error()))
		return s
	}
	s.posthogClient = client
	return s
}

var _ portssvc.DiagnosticsSink = (*Sink)(nil)

// LogException records a handled failure. It never returns an error and never
// blocks on the PostHog delivery.
func (s *Sink) LogException(ctx context.Context, err error) {
	if err == nil {
		return
	}

	logger := middleware.GetLoggerFromCtx(ctx)
	logger.Error("Handled exception", slog.String("error", err.Error()))

	if s.posthogClient == nil {
		return
	}
	_ = s.posthogClient.Enqueue(posthog.Capture{
		DistinctId: s.distinctID,
		Event:      "backend_exception",
		Properties: map[string]any{
			"error": err.Error(),
		},
	})
}

// Close flushes any queued PostHog events.
func (s *Sink) Close() {
	if s.posthogClient == nil {
		return
	}
	s.posthogClient.Close()
}
