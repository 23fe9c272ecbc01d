package services

import (
	"github.com/maintops/maintops/pkg/auth"
	"github.com/maintops/maintops/pkg/models"
)

// Caller is the already-resolved identity of a human actor. Authentication
// mechanics live outside this core.
type Caller struct {
	Email    string      `json:"email"`
	FullName string      `json:"full_name"`
	Role     models.Role `json:"role"`
}

// Trigger carries the invocation context of a scan: a human actor or the
// scheduler. Scheduler-triggered runs carry no caller and skip permission
// checks.
type Trigger struct {
	Caller *Caller
}

// ScheduledTrigger returns a scheduler invocation context.
func ScheduledTrigger() Trigger {
	return Trigger{}
}

// UserTrigger returns an interactive invocation context.
func UserTrigger(caller Caller) Trigger {
	return Trigger{Caller: &caller}
}

// Scheduled reports whether the trigger has no human actor.
func (t Trigger) Scheduled() bool {
	return t.Caller == nil
}

// Authorize checks the permission when a human actor is present. Scheduler
// runs are unconditional.
func (t Trigger) Authorize(permission auth.Permission) error {
	if t.Caller == nil {
		return nil
	}

	if !auth.HasPermission(t.Caller.Role, permission) {
		return ErrForbidden
	}

	return nil
}
