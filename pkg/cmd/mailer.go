package cmd

import (
	"log/slog"

	"github.com/maintops/maintops/pkg/mailer"
)

// NewMailer returns the SMTP transport when an SMTP URL is configured, and a
// log-only transport otherwise.
func NewMailer(smtpURL string, logger *slog.Logger) (mailer.Transport, error) {
	if smtpURL == "" {
		return mailer.NewLogTransport(logger), nil
	}

	return mailer.NewSMTPTransport(smtpURL)
}
