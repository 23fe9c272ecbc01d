package postgres

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/lib/pq"
	"github.com/maintops/maintops/pkg/models"
	"github.com/maintops/maintops/pkg/persistence"
)

// WorkOrderRepository handles work order database operations.
type WorkOrderRepository struct {
	db     *sql.DB
	logger *slog.Logger
}

// GetByID returns a work order by its identifier.
func (r *WorkOrderRepository) GetByID(ctx context.Context, id string) (*models.WorkOrder, error) {
	query := `
		SELECT
			id
		  , description
		  , type
		  , priority
		  , status
		  , assigned_to
		  , created_by
		  , approval_notes
		  , approval_log
		  , created_at
		  , updated_at
		FROM work_orders
		WHERE id = $1
	`

	var (
		wo          models.WorkOrder
		assignedTo  sql.NullString
		approvalLog []byte
	)

	err := r.db.QueryRowContext(ctx, query, id).Scan(
		&wo.ID, &wo.Description, &wo.Type, &wo.Priority, &wo.Status,
		&assignedTo, &wo.CreatedBy, &wo.ApprovalNotes, &approvalLog,
		&wo.CreatedAt, &wo.UpdatedAt,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, persistence.NewRecordError("GetByID", "work_order", id, persistence.ErrWorkOrderNotFound)
	}

	if err != nil {
		return nil, fmt.Errorf("failed to query work order: %w", err)
	}

	wo.AssignedTo = assignedTo.String

	if err := json.Unmarshal(approvalLog, &wo.ApprovalLog); err != nil {
		return nil, fmt.Errorf("failed to unmarshal approval log: %w", err)
	}

	return &wo, nil
}

// Save updates an existing work order. Work orders are created elsewhere in
// the platform, so a missing row is an error rather than an upsert.
func (r *WorkOrderRepository) Save(ctx context.Context, workOrder *models.WorkOrder) error {
	approvalLog, err := json.Marshal(workOrder.ApprovalLog)
	if err != nil {
		return fmt.Errorf("failed to marshal approval log: %w", err)
	}

	query := `
		UPDATE work_orders SET
			description = $2
		  , type = $3
		  , priority = $4
		  , status = $5
		  , assigned_to = NULLIF($6, '')
		  , approval_notes = $7
		  , approval_log = $8
		  , updated_at = $9
		WHERE id = $1
	`

	result, err := r.db.ExecContext(ctx, query,
		workOrder.ID, workOrder.Description, workOrder.Type, workOrder.Priority,
		workOrder.Status, workOrder.AssignedTo, workOrder.ApprovalNotes,
		approvalLog, workOrder.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to update work order: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to read affected rows: %w", err)
	}

	if affected == 0 {
		return persistence.NewRecordError("Save", "work_order", workOrder.ID, persistence.ErrWorkOrderNotFound)
	}

	return nil
}

// EquipmentRepository handles equipment database reads.
type EquipmentRepository struct {
	db     *sql.DB
	logger *slog.Logger
}

// ListAll returns every equipment record.
func (r *EquipmentRepository) ListAll(ctx context.Context) ([]*models.Equipment, error) {
	query := `
		SELECT id, name, numero_interno, status, fecha_proxima_mantencion
		FROM equipment
		ORDER BY id
	`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to query equipment: %w", err)
	}
	defer r.closeRows(ctx, rows)

	equipment := make([]*models.Equipment, 0)

	for rows.Next() {
		var (
			eq  models.Equipment
			due sql.NullTime
		)

		if err := rows.Scan(&eq.ID, &eq.Name, &eq.InternalNumber, &eq.Status, &due); err != nil {
			return nil, fmt.Errorf("failed to scan equipment: %w", err)
		}

		if due.Valid {
			d := due.Time
			eq.NextMaintenanceDue = &d
		}

		equipment = append(equipment, &eq)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating equipment: %w", err)
	}

	return equipment, nil
}

func (r *EquipmentRepository) closeRows(ctx context.Context, rows *sql.Rows) {
	if err := rows.Close(); err != nil {
		r.logger.ErrorContext(ctx, "failed to close rows", "error", err)
	}
}

// SparePartRepository handles spare part database reads.
type SparePartRepository struct {
	db     *sql.DB
	logger *slog.Logger
}

// ListActive returns every active spare part.
func (r *SparePartRepository) ListActive(ctx context.Context) ([]*models.SparePart, error) {
	query := `
		SELECT id, code, name, stock_actual, stock_minimo, activo
		FROM spare_parts
		WHERE activo = TRUE
		ORDER BY id
	`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to query spare parts: %w", err)
	}

	defer func() {
		if err := rows.Close(); err != nil {
			r.logger.ErrorContext(ctx, "failed to close rows", "error", err)
		}
	}()

	parts := make([]*models.SparePart, 0)

	for rows.Next() {
		var (
			part    models.SparePart
			current sql.NullInt64
			minimum sql.NullInt64
		)

		if err := rows.Scan(&part.ID, &part.Code, &part.Name, &current, &minimum, &part.Active); err != nil {
			return nil, fmt.Errorf("failed to scan spare part: %w", err)
		}

		if current.Valid {
			v := int(current.Int64)
			part.StockCurrent = &v
		}

		if minimum.Valid {
			v := int(minimum.Int64)
			part.StockMinimum = &v
		}

		parts = append(parts, &part)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating spare parts: %w", err)
	}

	return parts, nil
}

// UserRepository handles user database reads.
type UserRepository struct {
	db     *sql.DB
	logger *slog.Logger
}

// GetByEmail returns a user by its identity key.
func (r *UserRepository) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	var user models.User

	err := r.db.QueryRowContext(ctx,
		"SELECT email, full_name, role FROM users WHERE email = $1", email,
	).Scan(&user.Email, &user.FullName, &user.Role)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, persistence.NewRecordError("GetByEmail", "user", email, persistence.ErrUserNotFound)
	}

	if err != nil {
		return nil, fmt.Errorf("failed to query user: %w", err)
	}

	return &user, nil
}

// ListByRole returns all users holding the given role, ordered by email.
func (r *UserRepository) ListByRole(ctx context.Context, role models.Role) ([]*models.User, error) {
	rows, err := r.db.QueryContext(ctx,
		"SELECT email, full_name, role FROM users WHERE role = $1 ORDER BY email", string(role),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to query users by role: %w", err)
	}

	defer func() {
		if err := rows.Close(); err != nil {
			r.logger.ErrorContext(ctx, "failed to close rows", "error", err)
		}
	}()

	users := make([]*models.User, 0)

	for rows.Next() {
		var user models.User

		if err := rows.Scan(&user.Email, &user.FullName, &user.Role); err != nil {
			return nil, fmt.Errorf("failed to scan user: %w", err)
		}

		users = append(users, &user)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating users: %w", err)
	}

	return users, nil
}

// NotificationRepository handles notification record creation and the dedup
// lookback query.
type NotificationRepository struct {
	db     *sql.DB
	logger *slog.Logger
}

// Create inserts one notification record.
func (r *NotificationRepository) Create(ctx context.Context, notification *models.Notification) error {
	metadata, err := json.Marshal(notification.Metadata)
	if err != nil {
		return fmt.Errorf("failed to marshal notification metadata: %w", err)
	}

	_, err = r.db.ExecContext(ctx, `
		INSERT INTO notifications (id, user_email, type, title, message, metadata, created_date, read)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	`,
		notification.ID, notification.UserEmail, string(notification.Type),
		notification.Title, notification.Message, metadata,
		notification.CreatedAt, notification.Read,
	)
	if err != nil {
		return fmt.Errorf("failed to insert notification: %w", err)
	}

	return nil
}

// BulkCreate inserts notification records one statement per record inside a
// single transaction.
func (r *NotificationRepository) BulkCreate(ctx context.Context, notifications []*models.Notification) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}

	for _, notification := range notifications {
		metadata, err := json.Marshal(notification.Metadata)
		if err != nil {
			_ = tx.Rollback()

			return fmt.Errorf("failed to marshal notification metadata: %w", err)
		}

		_, err = tx.ExecContext(ctx, `
			INSERT INTO notifications (id, user_email, type, title, message, metadata, created_date, read)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		`,
			notification.ID, notification.UserEmail, string(notification.Type),
			notification.Title, notification.Message, metadata,
			notification.CreatedAt, notification.Read,
		)
		if err != nil {
			_ = tx.Rollback()

			return fmt.Errorf("failed to insert notification: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit notifications: %w", err)
	}

	return nil
}

// ListByTypesSince returns notifications of the given types created at or
// after the given instant.
func (r *NotificationRepository) ListByTypesSince(ctx context.Context, types []models.NotificationType, since time.Time) ([]*models.Notification, error) {
	typeNames := make([]string, 0, len(types))
	for _, t := range types {
		typeNames = append(typeNames, string(t))
	}

	rows, err := r.db.QueryContext(ctx, `
		SELECT id, user_email, type, title, message, metadata, created_date, read
		FROM notifications
		WHERE type = ANY($1) AND created_date >= $2
		ORDER BY created_date
	`, pq.Array(typeNames), since)
	if err != nil {
		return nil, fmt.Errorf("failed to query notifications: %w", err)
	}

	defer func() {
		if err := rows.Close(); err != nil {
			r.logger.ErrorContext(ctx, "failed to close rows", "error", err)
		}
	}()

	notifications := make([]*models.Notification, 0)

	for rows.Next() {
		var (
			n        models.Notification
			metadata []byte
		)

		if err := rows.Scan(&n.ID, &n.UserEmail, &n.Type, &n.Title, &n.Message, &metadata, &n.CreatedAt, &n.Read); err != nil {
			return nil, fmt.Errorf("failed to scan notification: %w", err)
		}

		if err := json.Unmarshal(metadata, &n.Metadata); err != nil {
			return nil, fmt.Errorf("failed to unmarshal notification metadata: %w", err)
		}

		notifications = append(notifications, &n)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating notifications: %w", err)
	}

	return notifications, nil
}

// SubscriptionRepository handles subscription database reads.
type SubscriptionRepository struct {
	db     *sql.DB
	logger *slog.Logger
}

// GetByUserEmail returns the subscription owned by the given user.
func (r *SubscriptionRepository) GetByUserEmail(ctx context.Context, email string) (*models.Subscription, error) {
	var (
		sub    models.Subscription
		endsAt sql.NullTime
	)

	err := r.db.QueryRowContext(ctx,
		"SELECT user_email, plan, status, ends_at FROM subscriptions WHERE user_email = $1", email,
	).Scan(&sub.UserEmail, &sub.Plan, &sub.Status, &endsAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, persistence.NewRecordError("GetByUserEmail", "subscription", email, persistence.ErrSubscriptionNotFound)
	}

	if err != nil {
		return nil, fmt.Errorf("failed to query subscription: %w", err)
	}

	if endsAt.Valid {
		e := endsAt.Time
		sub.EndsAt = &e
	}

	return &sub, nil
}
