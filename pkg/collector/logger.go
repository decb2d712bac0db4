package collector

import (
	"context"
	"fmt"
	"log/slog"
)

// SlogEventLogger logs events using structured logging.
type SlogEventLogger struct {
	logger *slog.Logger
}

// NewSlogEventLogger creates an event logger that emits one log line per event.
func NewSlogEventLogger(logger *slog.Logger) *SlogEventLogger {
	return &SlogEventLogger{logger: logger}
}

// LogEvent emits a structured log line with the event's fields.
func (l *SlogEventLogger) LogEvent(ctx context.Context, event *Event) error {
	l.logger.InfoContext(ctx, "tracking event",
		slog.Time("timestamp", event.Timestamp),
		slog.String("url", event.URL),
		slog.Bool("tracked", event.Tracked),
		slog.String("app", value(event.Tracking.App)),
		slog.String("page", value(event.Tracking.Page)),
		slog.String("label", value(event.Tracking.Label)),
		slog.String("property", value(event.Tracking.Property)),
		slog.String("user_id", value(event.Tracking.UserID)),
		slog.String("referrer", event.Referrer),
		slog.String("user_agent", event.UserAgent),
		slog.String("remote_addr", event.RemoteAddr),
	)
	return nil
}

// MultiEventLogger calls multiple EventLoggers in sequence.
// Every logger is called even if an earlier one fails.
type MultiEventLogger struct {
	loggers []EventLogger
}

// NewMultiEventLogger creates a logger that calls each of loggers.
func NewMultiEventLogger(loggers ...EventLogger) *MultiEventLogger {
	return &MultiEventLogger{loggers: loggers}
}

// LogEvent calls all loggers and returns a combined error if any fail.
func (m *MultiEventLogger) LogEvent(ctx context.Context, event *Event) error {
	var errs []error
	for _, logger := range m.loggers {
		if err := logger.LogEvent(ctx, event); err != nil {
			errs = append(errs, err)
		}
	}
	if len(errs) > 0 {
		return fmt.Errorf("event logging errors: %v", errs)
	}
	return nil
}

// NoopEventLogger discards events.
type NoopEventLogger struct{}

// NewNoopEventLogger creates a no-op logger.
func NewNoopEventLogger() *NoopEventLogger {
	return &NoopEventLogger{}
}

// LogEvent does nothing and always returns nil.
func (n *NoopEventLogger) LogEvent(ctx context.Context, event *Event) error {
	return nil
}
