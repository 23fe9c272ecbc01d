// Package notifier implements the notification fan-out engine.
package notifier

import (
	"context"
	"log/slog"
	"sort"
	"time"

	"github.com/google/uuid"
	"github.com/maintops/maintops/pkg/mailer"
	"github.com/maintops/maintops/pkg/models"
	"github.com/maintops/maintops/pkg/persistence"
)

// Request describes one fan-out: a notification payload broadcast to a set
// of recipients, with optional email delivery to a (possibly different) set
// of addresses.
type Request struct {
	// Recipients receive one notification record each. Duplicates and empty
	// entries are dropped.
	Recipients []string

	Type     models.NotificationType
	Title    string
	Message  string
	Metadata map[string]any

	// EmailRecipients additionally receive one email each. Empty means no
	// email delivery. Email subject and body default to Title and Message.
	EmailRecipients []string
	EmailSubject    string
	EmailBody       string
}

// Failure records one per-recipient side effect that failed.
type Failure struct {
	Recipient string `json:"recipient"`
	Stage     string `json:"stage"` // "notification" or "email"
	Reason    string `json:"reason"`
}

// Result reports fan-out counts and per-recipient failures. A partially
// failed fan-out never aborts the triggering operation.
type Result struct {
	NotificationsCreated int       `json:"notifications_created"`
	EmailsSent           int       `json:"emails_sent"`
	Failures             []Failure `json:"failures,omitempty"`
}

// PartialFailure reports whether some recipients failed while others
// succeeded.
func (r *Result) PartialFailure() bool {
	return len(r.Failures) > 0 && (r.NotificationsCreated > 0 || r.EmailsSent > 0)
}

// Merge folds another result into this one.
func (r *Result) Merge(other *Result) {
	r.NotificationsCreated += other.NotificationsCreated
	r.EmailsSent += other.EmailsSent
	r.Failures = append(r.Failures, other.Failures...)
}

// Engine creates notification records and dispatches best-effort email.
// The two side effects are independent per recipient: a failed email never
// rolls back the notification record, and one recipient's failure never
// blocks the rest.
type Engine struct {
	notifications persistence.NotificationRepository
	transport     mailer.Transport
	logger        *slog.Logger
	now           func() time.Time
}

// NewEngine creates a fan-out engine.
func NewEngine(notifications persistence.NotificationRepository, transport mailer.Transport, logger *slog.Logger) *Engine {
	return &Engine{
		notifications: notifications,
		transport:     transport,
		logger:        logger.With("module", "notifier"),
		now:           time.Now,
	}
}

// WithClock overrides the engine's clock. Test hook.
func (e *Engine) WithClock(now func() time.Time) *Engine {
	e.now = now

	return e
}

// FanOut performs one broadcast and reports per-recipient outcomes.
func (e *Engine) FanOut(ctx context.Context, req Request) *Result {
	result := &Result{}
	createdAt := e.now()

	for _, recipient := range dedupe(req.Recipients) {
		notification := &models.Notification{
			ID:        uuid.NewString(),
			UserEmail: recipient,
			Type:      req.Type,
			Title:     req.Title,
			Message:   req.Message,
			Metadata:  req.Metadata,
			CreatedAt: createdAt,
		}

		if err := e.notifications.Create(ctx, notification); err != nil {
			e.logger.ErrorContext(ctx, "Failed to create notification",
				"recipient", recipient, "type", req.Type, "error", err)
			result.Failures = append(result.Failures, Failure{
				Recipient: recipient,
				Stage:     "notification",
				Reason:    err.Error(),
			})

			continue
		}

		result.NotificationsCreated++
	}

	subject := req.EmailSubject
	if subject == "" {
		subject = req.Title
	}

	body := req.EmailBody
	if body == "" {
		body = req.Message
	}

	for _, recipient := range dedupe(req.EmailRecipients) {
		err := e.transport.Send(ctx, mailer.Message{To: recipient, Subject: subject, Body: body})
		if err != nil {
			e.logger.WarnContext(ctx, "Failed to send email",
				"recipient", recipient, "type", req.Type, "error", err)
			result.Failures = append(result.Failures, Failure{
				Recipient: recipient,
				Stage:     "email",
				Reason:    err.Error(),
			})

			continue
		}

		result.EmailsSent++
	}

	return result
}

// dedupe drops duplicates and empty entries, returning a sorted slice so
// fan-out order is deterministic.
func dedupe(recipients []string) []string {
	seen := make(map[string]bool, len(recipients))
	out := make([]string, 0, len(recipients))

	for _, recipient := range recipients {
		if recipient == "" || seen[recipient] {
			continue
		}

		seen[recipient] = true
		out = append(out, recipient)
	}

	sort.Strings(out)

	return out
}
