// Package events defines the domain events published after committed state
// transitions and completed scans.
package events

import "time"

// EventType tags a domain event.
type EventType string

// Kafka topic carrying all maintenance events.
const Topic = "maintops.events"

const EventMetadataKey = "key"
const EventTypeMetadataKey = "event_type"

const (
	// Work order approval lifecycle.
	WorkOrderSubmittedEvent EventType = "work_order.submitted"
	WorkOrderApprovedEvent  EventType = "work_order.approved"
	WorkOrderRejectedEvent  EventType = "work_order.rejected"
	WorkOrderAssignedEvent  EventType = "work_order.assigned"

	// Scan completions.
	PreventiveScanCompletedEvent EventType = "scan.preventive.completed"
	StockScanCompletedEvent      EventType = "scan.stock.completed"
)

// BaseEvent carries fields shared by every domain event.
type BaseEvent struct {
	ID        string         `json:"id"`
	Type      EventType      `json:"type"`
	Timestamp time.Time      `json:"timestamp"`
	Metadata  map[string]any `json:"metadata,omitempty"`
}

type WorkOrderSubmitted struct {
	BaseEvent

	WorkOrderID string `json:"work_order_id"`
	Actor       string `json:"actor"`
}

func (e WorkOrderSubmitted) GetType() EventType { return WorkOrderSubmittedEvent }

type WorkOrderApproved struct {
	BaseEvent

	WorkOrderID string `json:"work_order_id"`
	Actor       string `json:"actor"`
	AssignedTo  string `json:"assigned_to,omitempty"`
}

func (e WorkOrderApproved) GetType() EventType { return WorkOrderApprovedEvent }

type WorkOrderRejected struct {
	BaseEvent

	WorkOrderID string `json:"work_order_id"`
	Actor       string `json:"actor"`
	Reason      string `json:"reason"`
}

func (e WorkOrderRejected) GetType() EventType { return WorkOrderRejectedEvent }

type WorkOrderAssigned struct {
	BaseEvent

	WorkOrderID string `json:"work_order_id"`
	Actor       string `json:"actor"`
	Assignee    string `json:"assignee"`
}

func (e WorkOrderAssigned) GetType() EventType { return WorkOrderAssignedEvent }

type PreventiveScanCompleted struct {
	BaseEvent

	Overdue              int `json:"overdue"`
	DueSoon              int `json:"due_soon"`
	NotificationsCreated int `json:"notifications_created"`
	EmailsSent           int `json:"emails_sent"`
}

func (e PreventiveScanCompleted) GetType() EventType { return PreventiveScanCompletedEvent }

type StockScanCompleted struct {
	BaseEvent

	Alerting        int      `json:"alerting"`
	Notified        int      `json:"notified"`
	EmailsSent      int      `json:"emails_sent"`
	AlreadyNotified []string `json:"already_notified,omitempty"`
}

func (e StockScanCompleted) GetType() EventType { return StockScanCompletedEvent }
