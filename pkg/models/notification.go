package models

import "time"

// NotificationType tags the alert kind of a notification record.
type NotificationType string

const (
	NotificationWorkOrderApprovalNeeded NotificationType = "work_order_approval_needed"
	NotificationWorkOrderApproved       NotificationType = "work_order_approved"
	NotificationWorkOrderRejected       NotificationType = "work_order_rejected"
	NotificationWorkOrderAssigned       NotificationType = "work_order_assigned"
	NotificationMaintenanceOverdue      NotificationType = "maintenance_overdue"
	NotificationMaintenanceReminder     NotificationType = "maintenance_reminder"
	NotificationStockLow                NotificationType = "stock_low"
	NotificationStockOut                NotificationType = "stock_out"
)

// StockAlertTypes is the alert category the dedup window tracker scans when
// deciding whether a spare part was already notified.
var StockAlertTypes = []NotificationType{NotificationStockLow, NotificationStockOut}

// MetadataSparePartID is the metadata key carrying the alerting part's
// identifier, used both for dedup lookback and UI deep-linking.
const MetadataSparePartID = "spare_part_id"

// Notification is an in-app notification record. Created only by the fan-out
// engine and never mutated by this core beyond creation.
type Notification struct {
	ID        string           `json:"id"           validate:"required"`
	UserEmail string           `json:"user_email"   validate:"required,email"`
	Type      NotificationType `json:"type"         validate:"required"`
	Title     string           `json:"title"`
	Message   string           `json:"message"`
	Metadata  map[string]any   `json:"metadata,omitempty"`
	CreatedAt time.Time        `json:"created_date"`
	Read      bool             `json:"read"`
}

// SubjectID returns the identifier stored under the given metadata key, or
// an empty string when absent.
func (n *Notification) SubjectID(key string) string {
	if n.Metadata == nil {
		return ""
	}

	id, _ := n.Metadata[key].(string)

	return id
}
