package mailer

import (
	"context"
	"log/slog"
)

// LogTransport logs messages instead of sending them. Default when no SMTP
// relay is configured.
type LogTransport struct {
	logger *slog.Logger
}

// NewLogTransport creates a log-only transport.
func NewLogTransport(logger *slog.Logger) *LogTransport {
	return &LogTransport{logger: logger.With("module", "mailer")}
}

// Send logs the message and reports success.
func (t *LogTransport) Send(ctx context.Context, message Message) error {
	t.logger.InfoContext(ctx, "Email suppressed (no SMTP relay configured)",
		"to", message.To,
		"subject", message.Subject,
	)

	return nil
}
