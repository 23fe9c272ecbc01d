// Package persistence provides the record store abstraction consumed by the
// orchestration core. The store itself is an external collaborator; only the
// contracts the core needs are defined here.
package persistence

import (
	"context"
	"time"

	"github.com/maintops/maintops/pkg/models"
)

// Persistence bundles the per-entity repositories behind one handle.
type Persistence interface {
	WorkOrders() WorkOrderRepository
	Equipment() EquipmentRepository
	SpareParts() SparePartRepository
	Users() UserRepository
	Notifications() NotificationRepository
	Subscriptions() SubscriptionRepository

	HealthCheck(ctx context.Context) error
	Close(ctx context.Context) error
}

// WorkOrderRepository reads and updates work orders. Work orders are created
// elsewhere in the platform and never deleted by this core.
type WorkOrderRepository interface {
	GetByID(ctx context.Context, id string) (*models.WorkOrder, error)
	Save(ctx context.Context, workOrder *models.WorkOrder) error
}

// EquipmentRepository reads equipment records.
type EquipmentRepository interface {
	ListAll(ctx context.Context) ([]*models.Equipment, error)
}

// SparePartRepository reads spare part records.
type SparePartRepository interface {
	ListActive(ctx context.Context) ([]*models.SparePart, error)
}

// UserRepository reads platform users.
type UserRepository interface {
	GetByEmail(ctx context.Context, email string) (*models.User, error)
	ListByRole(ctx context.Context, role models.Role) ([]*models.User, error)
}

// NotificationRepository creates notification records and supports the dedup
// lookback query.
type NotificationRepository interface {
	Create(ctx context.Context, notification *models.Notification) error
	BulkCreate(ctx context.Context, notifications []*models.Notification) error
	ListByTypesSince(ctx context.Context, types []models.NotificationType, since time.Time) ([]*models.Notification, error)
}

// SubscriptionRepository reads subscriptions by their owning user.
type SubscriptionRepository interface {
	GetByUserEmail(ctx context.Context, email string) (*models.Subscription, error)
}
