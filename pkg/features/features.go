// Package features evaluates plan-derived feature gates.
//
// The evaluator checks plan eligibility only: comparing a limit against live
// usage counts is the caller's responsibility, as is enforcing subscription
// expiry (an inactive subscription still reports its nominal plan limits).
package features

import (
	"github.com/maintops/maintops/pkg/models"
	"github.com/maintops/maintops/pkg/plans"
)

// Evaluator answers feature-gate questions against a plan-limit table.
type Evaluator struct {
	table plans.Table
}

// NewEvaluator creates an evaluator over the given table.
func NewEvaluator(table plans.Table) *Evaluator {
	return &Evaluator{table: table}
}

// Limit returns the ceiling for the subscription's plan and the feature.
// A nil subscription defaults to the free plan. The second return is false
// when the feature is unlimited.
func (e *Evaluator) Limit(subscription *models.Subscription, feature plans.Feature) (int, bool) {
	plan := models.PlanFree
	if subscription != nil {
		plan = subscription.Plan
	}

	return e.table.Limit(plan, feature)
}

// CanUse reports whether the subscription's plan grants any capacity for the
// feature: true when the limit is unlimited or strictly positive.
func (e *Evaluator) CanUse(subscription *models.Subscription, feature plans.Feature) bool {
	ceiling, limited := e.Limit(subscription, feature)
	if !limited {
		return true
	}

	return ceiling > 0
}
