package services

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/maintops/maintops/pkg/auth"
	"github.com/maintops/maintops/pkg/dedup"
	"github.com/maintops/maintops/pkg/eventbus"
	"github.com/maintops/maintops/pkg/events"
	"github.com/maintops/maintops/pkg/models"
	"github.com/maintops/maintops/pkg/notifier"
	"github.com/maintops/maintops/pkg/persistence"
)

// StockDedupWindow is the lookback interval during which a repeat alert for
// the same part is suppressed. Guards against admin spam under a daily
// scheduler, not against concurrent scans.
const StockDedupWindow = 24 * time.Hour

// StockResult reports one stock alert scan.
type StockResult struct {
	Alerting        int              `json:"alerting"`
	Notified        int              `json:"notified"`
	AlreadyNotified []string         `json:"already_notified"` // part codes
	FanOut          *notifier.Result `json:"fan_out"`
}

// StockScanner raises admin alerts for spare parts at or below their minimum
// stock level, deduplicated per part inside the lookback window.
type StockScanner struct {
	persistence persistence.Persistence
	engine      *notifier.Engine
	resolver    notifier.RecipientResolver
	tracker     dedup.Tracker
	bus         eventbus.EventPublisher
	logger      *slog.Logger
	now         func() time.Time
}

// NewStockScanner creates the scanner. bus may be nil.
func NewStockScanner(
	p persistence.Persistence,
	engine *notifier.Engine,
	resolver notifier.RecipientResolver,
	tracker dedup.Tracker,
	bus eventbus.EventPublisher,
	logger *slog.Logger,
) *StockScanner {
	return &StockScanner{
		persistence: p,
		engine:      engine,
		resolver:    resolver,
		tracker:     tracker,
		bus:         bus,
		logger:      logger.With("module", "stock_scanner"),
		now:         time.Now,
	}
}

// WithClock overrides the scanner clock. Test hook.
func (s *StockScanner) WithClock(now func() time.Time) *StockScanner {
	s.now = now

	return s
}

// Run scans every active spare part. Each newly alerting part fans out one
// notification and one best-effort email per admin; parts alerted inside the
// dedup window are skipped and reported by code.
func (s *StockScanner) Run(ctx context.Context, trigger Trigger) (*StockResult, error) {
	if err := trigger.Authorize(auth.PermScansRun); err != nil {
		return nil, fmt.Errorf("stock scan: %w", err)
	}

	parts, err := s.persistence.SpareParts().ListActive(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list spare parts: %w", err)
	}

	admins, err := s.resolver.Admins(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve admins: %w", err)
	}

	result := &StockResult{
		AlreadyNotified: make([]string, 0),
		FanOut:          &notifier.Result{},
	}

	for _, part := range parts {
		if !part.BelowMinimum() {
			continue
		}

		result.Alerting++

		notified, err := s.tracker.AlreadyNotified(ctx, part.ID, StockDedupWindow)
		if err != nil {
			return nil, fmt.Errorf("failed to check dedup window for part %s: %w", part.ID, err)
		}

		if notified {
			result.AlreadyNotified = append(result.AlreadyNotified, part.Code)

			continue
		}

		result.FanOut.Merge(s.engine.FanOut(ctx, s.alertRequest(part, admins)))
		result.Notified++

		if err := s.tracker.Remember(ctx, part.ID, StockDedupWindow); err != nil {
			s.logger.WarnContext(ctx, "Failed to record dedup window",
				"part_id", part.ID, "error", err)
		}
	}

	s.publish(ctx, events.StockScanCompleted{
		BaseEvent: events.BaseEvent{
			ID:        uuid.NewString(),
			Type:      events.StockScanCompletedEvent,
			Timestamp: s.now(),
		},
		Alerting:        result.Alerting,
		Notified:        result.Notified,
		EmailsSent:      result.FanOut.EmailsSent,
		AlreadyNotified: result.AlreadyNotified,
	})

	s.logger.InfoContext(ctx, "Stock scan completed",
		"alerting", result.Alerting,
		"notified", result.Notified,
		"already_notified", len(result.AlreadyNotified),
		"emails", result.FanOut.EmailsSent,
	)

	return result, nil
}

// alertRequest builds the per-part fan-out, with out-of-stock parts getting
// higher-severity messaging.
func (s *StockScanner) alertRequest(part *models.SparePart, admins []string) notifier.Request {
	metadata := map[string]any{
		models.MetadataSparePartID: part.ID,
		"code":                     part.Code,
		"stock_actual":             *part.StockCurrent,
		"stock_minimo":             *part.StockMinimum,
	}

	if part.OutOfStock() {
		return notifier.Request{
			Recipients: admins,
			Type:       models.NotificationStockOut,
			Title:      "Repuesto agotado: " + part.Name,
			Message: fmt.Sprintf("El repuesto %s (%s) está agotado. Stock mínimo: %d",
				part.Name, part.Code, *part.StockMinimum),
			Metadata:        metadata,
			EmailRecipients: admins,
		}
	}

	return notifier.Request{
		Recipients: admins,
		Type:       models.NotificationStockLow,
		Title:      "Stock bajo: " + part.Name,
		Message: fmt.Sprintf("El repuesto %s (%s) tiene stock %d, bajo el mínimo %d",
			part.Name, part.Code, *part.StockCurrent, *part.StockMinimum),
		Metadata:        metadata,
		EmailRecipients: admins,
	}
}

func (s *StockScanner) publish(ctx context.Context, event eventbus.Event) {
	if s.bus == nil {
		return
	}

	if err := s.bus.Publish(ctx, "stock", event); err != nil {
		s.logger.WarnContext(ctx, "Failed to publish event",
			"event_type", event.GetType(), "error", err)
	}
}
