package models

import "time"

// Plan is a subscription tier.
type Plan string

const (
	PlanFree       Plan = "free"
	PlanPro        Plan = "pro"
	PlanEnterprise Plan = "enterprise"
)

// SubscriptionStatus values as stored by the billing integration.
const SubscriptionStatusActive = "active"

// Subscription ties a user to a plan tier. Read-only to this core; the
// plan-limit table itself is static configuration, not persisted here.
type Subscription struct {
	UserEmail string     `json:"user_email" validate:"required,email"`
	Plan      Plan       `json:"plan"       validate:"required"`
	Status    string     `json:"status"`
	EndsAt    *time.Time `json:"ends_at,omitempty"`
}

// ActiveAt reports whether the subscription is active at the given instant.
// An inactive subscription still reports its nominal plan limits; expiry is a
// separate gate enforced by callers.
func (s *Subscription) ActiveAt(now time.Time) bool {
	if s.Status != SubscriptionStatusActive {
		return false
	}

	if s.EndsAt != nil && s.EndsAt.Before(now) {
		return false
	}

	return true
}
