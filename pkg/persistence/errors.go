// Package persistence provides standardized error types for record store operations.
package persistence

import (
	"errors"
	"fmt"
)

// Standard record store error types that all implementations should use.
var (
	// ErrWorkOrderNotFound indicates a work order was not found by the given identifier.
	ErrWorkOrderNotFound = errors.New("work order not found")

	// ErrUserNotFound indicates a user was not found by the given email.
	ErrUserNotFound = errors.New("user not found")

	// ErrSubscriptionNotFound indicates no subscription exists for the given user.
	ErrSubscriptionNotFound = errors.New("subscription not found")

	// ErrEquipmentNotFound indicates an equipment record was not found.
	ErrEquipmentNotFound = errors.New("equipment not found")

	// ErrSparePartNotFound indicates a spare part record was not found.
	ErrSparePartNotFound = errors.New("spare part not found")
)

// RecordError wraps record store errors with operation context.
type RecordError struct {
	Op     string // Operation being performed (e.g., "GetByID", "Save")
	Entity string // Entity kind (e.g., "work_order", "notification")
	ID     string // Record identifier if applicable
	Err    error  // Underlying error
}

func (e *RecordError) Error() string {
	if e.ID != "" {
		return fmt.Sprintf("%s %s %s: %v", e.Op, e.Entity, e.ID, e.Err)
	}

	return fmt.Sprintf("%s %s: %v", e.Op, e.Entity, e.Err)
}

func (e *RecordError) Unwrap() error {
	return e.Err
}

func (e *RecordError) Is(target error) bool {
	return errors.Is(e.Err, target)
}

// NewRecordError creates a record error with context.
func NewRecordError(op, entity, id string, err error) *RecordError {
	return &RecordError{Op: op, Entity: entity, ID: id, Err: err}
}

// IsWorkOrderNotFound checks if an error indicates a missing work order.
func IsWorkOrderNotFound(err error) bool {
	return errors.Is(err, ErrWorkOrderNotFound)
}

// IsUserNotFound checks if an error indicates a missing user.
func IsUserNotFound(err error) bool {
	return errors.Is(err, ErrUserNotFound)
}

// IsSubscriptionNotFound checks if an error indicates a missing subscription.
func IsSubscriptionNotFound(err error) bool {
	return errors.Is(err, ErrSubscriptionNotFound)
}

// IsNotFound checks if an error indicates any missing record.
func IsNotFound(err error) bool {
	return errors.Is(err, ErrWorkOrderNotFound) ||
		errors.Is(err, ErrUserNotFound) ||
		errors.Is(err, ErrSubscriptionNotFound) ||
		errors.Is(err, ErrEquipmentNotFound) ||
		errors.Is(err, ErrSparePartNotFound)
}
