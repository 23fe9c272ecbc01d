// Package services implements the maintenance operations orchestration core.
package services

import (
	"errors"
	"fmt"

	"github.com/maintops/maintops/pkg/persistence"
)

// Business logic errors, grouped by the HTTP class they map onto.
var (
	// Authentication and authorization (401 / 403).
	ErrUnauthenticated = errors.New("caller is not authenticated")
	ErrForbidden       = errors.New("caller role lacks permission")

	// Validation errors (400 Bad Request).
	ErrAssigneeRequired = errors.New("assignee is required")
	ErrUnknownAssignee  = errors.New("assignee is not a known user")
	ErrUnknownAction    = errors.New("unknown work order action")

	// Lifecycle conflicts (409 Conflict).
	ErrInvalidTransition = errors.New("transition not allowed from current status")
)

// ErrWorkOrderNotFound re-exports the record store sentinel for callers that
// only import the service layer.
var ErrWorkOrderNotFound = persistence.ErrWorkOrderNotFound

// ServiceError wraps service-level errors with operation context.
type ServiceError struct {
	Op      string // Operation name
	Code    string // Error code for API responses
	Message string // Human-readable message
	Err     error  // Underlying error
}

func (e *ServiceError) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("%s: %s", e.Op, e.Message)
	}

	return fmt.Sprintf("%s: %v", e.Op, e.Err)
}

func (e *ServiceError) Unwrap() error {
	return e.Err
}

func (e *ServiceError) Is(target error) bool {
	return errors.Is(e.Err, target)
}

// IsUnauthenticatedError checks for the 401 class.
func IsUnauthenticatedError(err error) bool {
	return errors.Is(err, ErrUnauthenticated)
}

// IsForbiddenError checks for the 403 class.
func IsForbiddenError(err error) bool {
	return errors.Is(err, ErrForbidden)
}

// IsValidationError checks for the 400 class.
func IsValidationError(err error) bool {
	return errors.Is(err, ErrAssigneeRequired) ||
		errors.Is(err, ErrUnknownAssignee) ||
		errors.Is(err, ErrUnknownAction)
}

// IsConflictError checks for the 409 class.
func IsConflictError(err error) bool {
	return errors.Is(err, ErrInvalidTransition)
}

// IsNotFoundError checks for the 404 class.
func IsNotFoundError(err error) bool {
	return persistence.IsNotFound(err)
}
