// Package memory provides an in-memory record store used by tests and local
// development. Semantics mirror the postgres implementation.
package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/maintops/maintops/pkg/models"
	"github.com/maintops/maintops/pkg/persistence"
)

// Persistence implements persistence.Persistence over process-local maps.
type Persistence struct {
	mu sync.RWMutex

	workOrders    map[string]*models.WorkOrder
	equipment     map[string]*models.Equipment
	spareParts    map[string]*models.SparePart
	users         map[string]*models.User
	notifications map[string]*models.Notification
	subscriptions map[string]*models.Subscription
}

// NewPersistence creates an empty in-memory store.
func NewPersistence() *Persistence {
	return &Persistence{
		workOrders:    make(map[string]*models.WorkOrder),
		equipment:     make(map[string]*models.Equipment),
		spareParts:    make(map[string]*models.SparePart),
		users:         make(map[string]*models.User),
		notifications: make(map[string]*models.Notification),
		subscriptions: make(map[string]*models.Subscription),
	}
}

func (p *Persistence) WorkOrders() persistence.WorkOrderRepository         { return &workOrderRepo{p} }
func (p *Persistence) Equipment() persistence.EquipmentRepository         { return &equipmentRepo{p} }
func (p *Persistence) SpareParts() persistence.SparePartRepository        { return &sparePartRepo{p} }
func (p *Persistence) Users() persistence.UserRepository                  { return &userRepo{p} }
func (p *Persistence) Notifications() persistence.NotificationRepository  { return &notificationRepo{p} }
func (p *Persistence) Subscriptions() persistence.SubscriptionRepository  { return &subscriptionRepo{p} }

func (p *Persistence) HealthCheck(_ context.Context) error { return nil }
func (p *Persistence) Close(_ context.Context) error       { return nil }

// Seed helpers for tests and local bootstrap.

func (p *Persistence) SeedWorkOrder(wo *models.WorkOrder) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.workOrders[wo.ID] = wo
}

func (p *Persistence) SeedEquipment(eq *models.Equipment) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.equipment[eq.ID] = eq
}

func (p *Persistence) SeedSparePart(part *models.SparePart) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.spareParts[part.ID] = part
}

func (p *Persistence) SeedUser(u *models.User) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.users[u.Email] = u
}

func (p *Persistence) SeedSubscription(s *models.Subscription) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.subscriptions[s.UserEmail] = s
}

// AllNotifications returns every stored notification sorted by creation time.
func (p *Persistence) AllNotifications() []*models.Notification {
	p.mu.RLock()
	defer p.mu.RUnlock()

	out := make([]*models.Notification, 0, len(p.notifications))
	for _, n := range p.notifications {
		out = append(out, n)
	}

	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.Before(out[j].CreatedAt) })

	return out
}

type workOrderRepo struct{ p *Persistence }

func (r *workOrderRepo) GetByID(_ context.Context, id string) (*models.WorkOrder, error) {
	r.p.mu.RLock()
	defer r.p.mu.RUnlock()

	wo, ok := r.p.workOrders[id]
	if !ok {
		return nil, persistence.NewRecordError("GetByID", "work_order", id, persistence.ErrWorkOrderNotFound)
	}

	clone := *wo
	clone.ApprovalLog = append([]models.ApprovalEntry(nil), wo.ApprovalLog...)

	return &clone, nil
}

func (r *workOrderRepo) Save(_ context.Context, workOrder *models.WorkOrder) error {
	r.p.mu.Lock()
	defer r.p.mu.Unlock()

	if _, ok := r.p.workOrders[workOrder.ID]; !ok {
		return persistence.NewRecordError("Save", "work_order", workOrder.ID, persistence.ErrWorkOrderNotFound)
	}

	clone := *workOrder
	clone.ApprovalLog = append([]models.ApprovalEntry(nil), workOrder.ApprovalLog...)
	r.p.workOrders[workOrder.ID] = &clone

	return nil
}

type equipmentRepo struct{ p *Persistence }

func (r *equipmentRepo) ListAll(_ context.Context) ([]*models.Equipment, error) {
	r.p.mu.RLock()
	defer r.p.mu.RUnlock()

	out := make([]*models.Equipment, 0, len(r.p.equipment))
	for _, eq := range r.p.equipment {
		out = append(out, eq)
	}

	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })

	return out, nil
}

type sparePartRepo struct{ p *Persistence }

func (r *sparePartRepo) ListActive(_ context.Context) ([]*models.SparePart, error) {
	r.p.mu.RLock()
	defer r.p.mu.RUnlock()

	out := make([]*models.SparePart, 0, len(r.p.spareParts))

	for _, part := range r.p.spareParts {
		if part.Active {
			out = append(out, part)
		}
	}

	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })

	return out, nil
}

type userRepo struct{ p *Persistence }

func (r *userRepo) GetByEmail(_ context.Context, email string) (*models.User, error) {
	r.p.mu.RLock()
	defer r.p.mu.RUnlock()

	user, ok := r.p.users[email]
	if !ok {
		return nil, persistence.NewRecordError("GetByEmail", "user", email, persistence.ErrUserNotFound)
	}

	return user, nil
}

func (r *userRepo) ListByRole(_ context.Context, role models.Role) ([]*models.User, error) {
	r.p.mu.RLock()
	defer r.p.mu.RUnlock()

	out := make([]*models.User, 0)

	for _, user := range r.p.users {
		if user.Role == role {
			out = append(out, user)
		}
	}

	sort.Slice(out, func(i, j int) bool { return out[i].Email < out[j].Email })

	return out, nil
}

type notificationRepo struct{ p *Persistence }

func (r *notificationRepo) Create(_ context.Context, notification *models.Notification) error {
	r.p.mu.Lock()
	defer r.p.mu.Unlock()

	r.p.notifications[notification.ID] = notification

	return nil
}

func (r *notificationRepo) BulkCreate(ctx context.Context, notifications []*models.Notification) error {
	for _, n := range notifications {
		if err := r.Create(ctx, n); err != nil {
			return err
		}
	}

	return nil
}

func (r *notificationRepo) ListByTypesSince(_ context.Context, types []models.NotificationType, since time.Time) ([]*models.Notification, error) {
	r.p.mu.RLock()
	defer r.p.mu.RUnlock()

	wanted := make(map[models.NotificationType]bool, len(types))
	for _, t := range types {
		wanted[t] = true
	}

	out := make([]*models.Notification, 0)

	for _, n := range r.p.notifications {
		if wanted[n.Type] && !n.CreatedAt.Before(since) {
			out = append(out, n)
		}
	}

	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.Before(out[j].CreatedAt) })

	return out, nil
}

type subscriptionRepo struct{ p *Persistence }

func (r *subscriptionRepo) GetByUserEmail(_ context.Context, email string) (*models.Subscription, error) {
	r.p.mu.RLock()
	defer r.p.mu.RUnlock()

	sub, ok := r.p.subscriptions[email]
	if !ok {
		return nil, persistence.NewRecordError("GetByUserEmail", "subscription", email, persistence.ErrSubscriptionNotFound)
	}

	return sub, nil
}
