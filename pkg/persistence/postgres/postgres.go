// Package postgres provides the PostgreSQL record store implementation.
package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"

	"github.com/maintops/maintops/pkg/persistence"
	"github.com/maintops/maintops/pkg/persistence/sqlbase"

	_ "github.com/lib/pq"
)

// Persistence implements persistence.Persistence over PostgreSQL.
type Persistence struct {
	db     *sql.DB
	logger *slog.Logger

	workOrders    *WorkOrderRepository
	equipment     *EquipmentRepository
	spareParts    *SparePartRepository
	users         *UserRepository
	notifications *NotificationRepository
	subscriptions *SubscriptionRepository
}

// NewPersistence connects, runs migrations and returns a ready store.
func NewPersistence(ctx context.Context, logger *slog.Logger, databaseURL string) (*Persistence, error) {
	database, err := sql.Open("postgres", databaseURL)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to PostgreSQL database: %w", err)
	}

	if err := database.PingContext(ctx); err != nil {
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	migrationManager := sqlbase.NewMigrationManager(logger, database, migrations())
	if err := migrationManager.RunMigrations(ctx); err != nil {
		return nil, fmt.Errorf("failed to run migrations: %w", err)
	}

	return &Persistence{
		db:            database,
		logger:        logger,
		workOrders:    &WorkOrderRepository{db: database, logger: logger},
		equipment:     &EquipmentRepository{db: database, logger: logger},
		spareParts:    &SparePartRepository{db: database, logger: logger},
		users:         &UserRepository{db: database, logger: logger},
		notifications: &NotificationRepository{db: database, logger: logger},
		subscriptions: &SubscriptionRepository{db: database, logger: logger},
	}, nil
}

func (p *Persistence) WorkOrders() persistence.WorkOrderRepository        { return p.workOrders }
func (p *Persistence) Equipment() persistence.EquipmentRepository        { return p.equipment }
func (p *Persistence) SpareParts() persistence.SparePartRepository       { return p.spareParts }
func (p *Persistence) Users() persistence.UserRepository                 { return p.users }
func (p *Persistence) Notifications() persistence.NotificationRepository { return p.notifications }
func (p *Persistence) Subscriptions() persistence.SubscriptionRepository { return p.subscriptions }

// Close closes the database connection.
func (p *Persistence) Close(_ context.Context) error {
	if p.db == nil {
		return nil
	}

	if err := p.db.Close(); err != nil {
		return fmt.Errorf("failed to close database connection: %w", err)
	}

	return nil
}

// HealthCheck verifies the database connection is healthy.
func (p *Persistence) HealthCheck(ctx context.Context) error {
	if err := p.db.PingContext(ctx); err != nil {
		return fmt.Errorf("failed to ping database: %w", err)
	}

	return nil
}
