package services

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/maintops/maintops/pkg/auth"
	"github.com/maintops/maintops/pkg/eventbus"
	"github.com/maintops/maintops/pkg/events"
	"github.com/maintops/maintops/pkg/models"
	"github.com/maintops/maintops/pkg/notifier"
	"github.com/maintops/maintops/pkg/persistence"
)

// DueSoonHorizon is how far ahead the preventive scanner looks for upcoming
// maintenance.
const DueSoonHorizon = 7 * 24 * time.Hour

// PreventiveResult reports one preventive maintenance scan.
type PreventiveResult struct {
	Overdue []*models.Equipment `json:"overdue"`
	DueSoon []*models.Equipment `json:"due_soon"`
	FanOut  *notifier.Result    `json:"fan_out"`
}

// PreventiveScanner partitions equipment by maintenance due date and raises
// aggregated admin alerts.
type PreventiveScanner struct {
	persistence persistence.Persistence
	engine      *notifier.Engine
	resolver    notifier.RecipientResolver
	bus         eventbus.EventPublisher
	logger      *slog.Logger
	now         func() time.Time
}

// NewPreventiveScanner creates the scanner. bus may be nil.
func NewPreventiveScanner(
	p persistence.Persistence,
	engine *notifier.Engine,
	resolver notifier.RecipientResolver,
	bus eventbus.EventPublisher,
	logger *slog.Logger,
) *PreventiveScanner {
	return &PreventiveScanner{
		persistence: p,
		engine:      engine,
		resolver:    resolver,
		bus:         bus,
		logger:      logger.With("module", "preventive_scanner"),
		now:         time.Now,
	}
}

// WithClock overrides the scanner clock. Test hook.
func (s *PreventiveScanner) WithClock(now func() time.Time) *PreventiveScanner {
	s.now = now

	return s
}

// Run scans every scannable equipment record. Overdue items produce one
// aggregated notification and one aggregated email per admin; due-soon items
// produce one aggregated notification per admin, no email. One notification
// summarizes all items; never one per item.
func (s *PreventiveScanner) Run(ctx context.Context, trigger Trigger) (*PreventiveResult, error) {
	if err := trigger.Authorize(auth.PermScansRun); err != nil {
		return nil, fmt.Errorf("preventive scan: %w", err)
	}

	equipment, err := s.persistence.Equipment().ListAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list equipment: %w", err)
	}

	today := truncateToDay(s.now())
	horizon := today.Add(DueSoonHorizon)

	result := &PreventiveResult{
		Overdue: make([]*models.Equipment, 0),
		DueSoon: make([]*models.Equipment, 0),
		FanOut:  &notifier.Result{},
	}

	for _, eq := range equipment {
		if !eq.Scannable() {
			continue
		}

		due := truncateToDay(*eq.NextMaintenanceDue)

		switch {
		case due.Before(today):
			result.Overdue = append(result.Overdue, eq)
		case !due.After(horizon):
			result.DueSoon = append(result.DueSoon, eq)
		}
	}

	admins, err := s.resolver.Admins(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve admins: %w", err)
	}

	if len(result.Overdue) > 0 {
		result.FanOut.Merge(s.engine.FanOut(ctx, notifier.Request{
			Recipients:      admins,
			Type:            models.NotificationMaintenanceOverdue,
			Title:           fmt.Sprintf("Mantenciones vencidas: %d equipos", len(result.Overdue)),
			Message:         equipmentList(result.Overdue, "vencida el"),
			EmailRecipients: admins,
		}))
	}

	if len(result.DueSoon) > 0 {
		result.FanOut.Merge(s.engine.FanOut(ctx, notifier.Request{
			Recipients: admins,
			Type:       models.NotificationMaintenanceReminder,
			Title:      fmt.Sprintf("Mantenciones próximas: %d equipos", len(result.DueSoon)),
			Message:    equipmentList(result.DueSoon, "vence el"),
		}))
	}

	s.publish(ctx, events.PreventiveScanCompleted{
		BaseEvent: events.BaseEvent{
			ID:        uuid.NewString(),
			Type:      events.PreventiveScanCompletedEvent,
			Timestamp: s.now(),
		},
		Overdue:              len(result.Overdue),
		DueSoon:              len(result.DueSoon),
		NotificationsCreated: result.FanOut.NotificationsCreated,
		EmailsSent:           result.FanOut.EmailsSent,
	})

	s.logger.InfoContext(ctx, "Preventive scan completed",
		"overdue", len(result.Overdue),
		"due_soon", len(result.DueSoon),
		"notifications", result.FanOut.NotificationsCreated,
		"emails", result.FanOut.EmailsSent,
	)

	return result, nil
}

func (s *PreventiveScanner) publish(ctx context.Context, event eventbus.Event) {
	if s.bus == nil {
		return
	}

	if err := s.bus.Publish(ctx, "preventive", event); err != nil {
		s.logger.WarnContext(ctx, "Failed to publish event",
			"event_type", event.GetType(), "error", err)
	}
}

// equipmentList renders one aggregated message line per item.
func equipmentList(items []*models.Equipment, verb string) string {
	lines := make([]string, 0, len(items))

	for _, eq := range items {
		lines = append(lines, fmt.Sprintf("- %s (%s): %s %s",
			eq.Name, eq.InternalNumber, verb,
			eq.NextMaintenanceDue.Format("2006-01-02")))
	}

	return strings.Join(lines, "\n")
}

// truncateToDay drops the time-of-day component.
func truncateToDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}
