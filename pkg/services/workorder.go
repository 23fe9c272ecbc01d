package services

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/maintops/maintops/pkg/auth"
	"github.com/maintops/maintops/pkg/eventbus"
	"github.com/maintops/maintops/pkg/events"
	"github.com/maintops/maintops/pkg/models"
	"github.com/maintops/maintops/pkg/notifier"
	"github.com/maintops/maintops/pkg/persistence"
)

// Work order action names accepted by the dispatch entrypoint.
const (
	ActionSubmit  = "submit_for_approval"
	ActionApprove = "approve"
	ActionReject  = "reject"
	ActionAssign  = "assign"
)

// RejectReasonPlaceholder is recorded when a rejection carries no reason.
const RejectReasonPlaceholder = "no reason given"

// TransitionResult reports one committed state transition plus the outcome
// of its notification fan-out. Fan-out failures never roll the transition
// back; they are surfaced here as counts.
type TransitionResult struct {
	WorkOrder *models.WorkOrder `json:"work_order"`
	FanOut    *notifier.Result  `json:"fan_out"`
}

// WorkOrders drives the work order approval state machine.
type WorkOrders struct {
	persistence persistence.Persistence
	engine      *notifier.Engine
	resolver    notifier.RecipientResolver
	bus         eventbus.EventPublisher
	logger      *slog.Logger
	now         func() time.Time
}

// NewWorkOrders creates the state machine service. bus may be nil when no
// event bus is configured.
func NewWorkOrders(
	p persistence.Persistence,
	engine *notifier.Engine,
	resolver notifier.RecipientResolver,
	bus eventbus.EventPublisher,
	logger *slog.Logger,
) *WorkOrders {
	return &WorkOrders{
		persistence: p,
		engine:      engine,
		resolver:    resolver,
		bus:         bus,
		logger:      logger.With("module", "workorders"),
		now:         time.Now,
	}
}

// WithClock overrides the service clock. Test hook.
func (s *WorkOrders) WithClock(now func() time.Time) *WorkOrders {
	s.now = now

	return s
}

// Dispatch routes an action name to its operation. Unknown names fail with
// ErrUnknownAction before the work order is loaded.
func (s *WorkOrders) Dispatch(ctx context.Context, caller Caller, workOrderID, action, assignee, reason string) (*TransitionResult, error) {
	switch action {
	case ActionSubmit:
		return s.SubmitForApproval(ctx, caller, workOrderID)
	case ActionApprove:
		return s.Approve(ctx, caller, workOrderID)
	case ActionReject:
		return s.Reject(ctx, caller, workOrderID, reason)
	case ActionAssign:
		return s.Assign(ctx, caller, workOrderID, assignee)
	default:
		return nil, &ServiceError{Op: "Dispatch", Code: "unknown_action", Message: action, Err: ErrUnknownAction}
	}
}

// SubmitForApproval moves a work order into en_aprobacion and notifies every
// admin. Any authenticated actor may submit.
func (s *WorkOrders) SubmitForApproval(ctx context.Context, caller Caller, workOrderID string) (*TransitionResult, error) {
	workOrder, err := s.persistence.WorkOrders().GetByID(ctx, workOrderID)
	if err != nil {
		return nil, err
	}

	if !workOrder.CanTransition(models.WorkOrderStatusEnAprobacion) {
		return nil, fmt.Errorf("submit work order %s: %w", workOrderID, ErrInvalidTransition)
	}

	workOrder.Status = models.WorkOrderStatusEnAprobacion
	workOrder.UpdatedAt = s.now()

	if err := s.persistence.WorkOrders().Save(ctx, workOrder); err != nil {
		return nil, fmt.Errorf("failed to save work order: %w", err)
	}

	admins, err := s.resolver.Admins(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve admins: %w", err)
	}

	result := s.engine.FanOut(ctx, notifier.Request{
		Recipients: admins,
		Type:       models.NotificationWorkOrderApprovalNeeded,
		Title:      "Orden de trabajo pendiente de aprobación",
		Message: fmt.Sprintf("%s envió la orden %s a aprobación: %s",
			caller.Email, workOrder.ID, workOrder.Description),
		Metadata: map[string]any{"work_order_id": workOrder.ID},
	})

	s.publish(ctx, workOrder.ID, events.WorkOrderSubmitted{
		BaseEvent:   s.baseEvent(events.WorkOrderSubmittedEvent),
		WorkOrderID: workOrder.ID,
		Actor:       caller.Email,
	})

	return &TransitionResult{WorkOrder: workOrder, FanOut: result}, nil
}

// Approve moves a work order into asignada. Admin only.
func (s *WorkOrders) Approve(ctx context.Context, caller Caller, workOrderID string) (*TransitionResult, error) {
	workOrder, err := s.persistence.WorkOrders().GetByID(ctx, workOrderID)
	if err != nil {
		return nil, err
	}

	if !auth.HasPermission(caller.Role, auth.PermWorkOrderApprove) {
		return nil, fmt.Errorf("approve work order %s: %w", workOrderID, ErrForbidden)
	}

	if !workOrder.CanTransition(models.WorkOrderStatusAsignada) {
		return nil, fmt.Errorf("approve work order %s: %w", workOrderID, ErrInvalidTransition)
	}

	now := s.now()
	workOrder.Status = models.WorkOrderStatusAsignada
	workOrder.UpdatedAt = now
	workOrder.AppendApproval(models.ApprovalEntry{
		Actor:  caller.Email,
		Action: models.ApprovalActionApproved,
		Note:   "Aprobada por " + caller.Email,
		At:     now,
	})

	if err := s.persistence.WorkOrders().Save(ctx, workOrder); err != nil {
		return nil, fmt.Errorf("failed to save work order: %w", err)
	}

	var emailRecipients []string
	if workOrder.AssignedTo != "" {
		emailRecipients = []string{workOrder.AssignedTo}
	}

	result := s.engine.FanOut(ctx, notifier.Request{
		Recipients: []string{workOrder.AssignedTo, workOrder.CreatedBy},
		Type:       models.NotificationWorkOrderApproved,
		Title:      "Orden de trabajo aprobada",
		Message: fmt.Sprintf("La orden %s fue aprobada por %s",
			workOrder.ID, caller.Email),
		Metadata:        map[string]any{"work_order_id": workOrder.ID},
		EmailRecipients: emailRecipients,
	})

	s.publish(ctx, workOrder.ID, events.WorkOrderApproved{
		BaseEvent:   s.baseEvent(events.WorkOrderApprovedEvent),
		WorkOrderID: workOrder.ID,
		Actor:       caller.Email,
		AssignedTo:  workOrder.AssignedTo,
	})

	return &TransitionResult{WorkOrder: workOrder, FanOut: result}, nil
}

// Reject moves a work order back to pendiente, recording the reason. Admin
// only. The work order is re-enterable: it can be resubmitted later.
func (s *WorkOrders) Reject(ctx context.Context, caller Caller, workOrderID, reason string) (*TransitionResult, error) {
	workOrder, err := s.persistence.WorkOrders().GetByID(ctx, workOrderID)
	if err != nil {
		return nil, err
	}

	if !auth.HasPermission(caller.Role, auth.PermWorkOrderReject) {
		return nil, fmt.Errorf("reject work order %s: %w", workOrderID, ErrForbidden)
	}

	if !workOrder.CanTransition(models.WorkOrderStatusPendiente) {
		return nil, fmt.Errorf("reject work order %s: %w", workOrderID, ErrInvalidTransition)
	}

	if reason == "" {
		reason = RejectReasonPlaceholder
	}

	now := s.now()
	workOrder.Status = models.WorkOrderStatusPendiente
	workOrder.UpdatedAt = now
	workOrder.AppendApproval(models.ApprovalEntry{
		Actor:  caller.Email,
		Action: models.ApprovalActionRejected,
		Note:   reason,
		At:     now,
	})

	if err := s.persistence.WorkOrders().Save(ctx, workOrder); err != nil {
		return nil, fmt.Errorf("failed to save work order: %w", err)
	}

	result := s.engine.FanOut(ctx, notifier.Request{
		Recipients: []string{workOrder.AssignedTo, workOrder.CreatedBy},
		Type:       models.NotificationWorkOrderRejected,
		Title:      "Orden de trabajo rechazada",
		Message: fmt.Sprintf("La orden %s fue rechazada por %s. Motivo: %s",
			workOrder.ID, caller.Email, reason),
		Metadata: map[string]any{"work_order_id": workOrder.ID},
	})

	s.publish(ctx, workOrder.ID, events.WorkOrderRejected{
		BaseEvent:   s.baseEvent(events.WorkOrderRejectedEvent),
		WorkOrderID: workOrder.ID,
		Actor:       caller.Email,
		Reason:      reason,
	})

	return &TransitionResult{WorkOrder: workOrder, FanOut: result}, nil
}

// Assign sets the assignee and moves the work order into asignada. Admin
// only. Reassignment of an already assigned order is an idempotent re-entry.
func (s *WorkOrders) Assign(ctx context.Context, caller Caller, workOrderID, assignee string) (*TransitionResult, error) {
	workOrder, err := s.persistence.WorkOrders().GetByID(ctx, workOrderID)
	if err != nil {
		return nil, err
	}

	if !auth.HasPermission(caller.Role, auth.PermWorkOrderAssign) {
		return nil, fmt.Errorf("assign work order %s: %w", workOrderID, ErrForbidden)
	}

	if assignee == "" {
		return nil, fmt.Errorf("assign work order %s: %w", workOrderID, ErrAssigneeRequired)
	}

	// The assignee must be a known user before the order becomes asignada.
	if _, err := s.persistence.Users().GetByEmail(ctx, assignee); err != nil {
		if persistence.IsUserNotFound(err) {
			return nil, fmt.Errorf("assign work order %s to %s: %w", workOrderID, assignee, ErrUnknownAssignee)
		}

		return nil, fmt.Errorf("failed to look up assignee: %w", err)
	}

	if !workOrder.CanTransition(models.WorkOrderStatusAsignada) {
		return nil, fmt.Errorf("assign work order %s: %w", workOrderID, ErrInvalidTransition)
	}

	now := s.now()
	workOrder.AssignedTo = assignee
	workOrder.Status = models.WorkOrderStatusAsignada
	workOrder.UpdatedAt = now
	workOrder.AppendApproval(models.ApprovalEntry{
		Actor:  caller.Email,
		Action: models.ApprovalActionAssigned,
		Note:   "Asignada a " + assignee,
		At:     now,
	})

	if err := s.persistence.WorkOrders().Save(ctx, workOrder); err != nil {
		return nil, fmt.Errorf("failed to save work order: %w", err)
	}

	result := s.engine.FanOut(ctx, notifier.Request{
		Recipients: []string{assignee},
		Type:       models.NotificationWorkOrderAssigned,
		Title:      "Orden de trabajo asignada",
		Message: fmt.Sprintf("Se te asignó la orden %s: %s",
			workOrder.ID, workOrder.Description),
		Metadata:        map[string]any{"work_order_id": workOrder.ID},
		EmailRecipients: []string{assignee},
	})

	s.publish(ctx, workOrder.ID, events.WorkOrderAssigned{
		BaseEvent:   s.baseEvent(events.WorkOrderAssignedEvent),
		WorkOrderID: workOrder.ID,
		Actor:       caller.Email,
		Assignee:    assignee,
	})

	return &TransitionResult{WorkOrder: workOrder, FanOut: result}, nil
}

func (s *WorkOrders) baseEvent(eventType events.EventType) events.BaseEvent {
	return events.BaseEvent{
		ID:        uuid.NewString(),
		Type:      eventType,
		Timestamp: s.now(),
	}
}

// publish emits a domain event. Bus failures are logged, never fatal: the
// transition is already committed.
func (s *WorkOrders) publish(ctx context.Context, key string, event eventbus.Event) {
	if s.bus == nil {
		return
	}

	if err := s.bus.Publish(ctx, key, event); err != nil {
		s.logger.WarnContext(ctx, "Failed to publish event",
			"event_type", event.GetType(), "key", key, "error", err)
	}
}
