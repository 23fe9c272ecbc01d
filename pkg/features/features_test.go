package features

import (
	"testing"

	"github.com/maintops/maintops/pkg/models"
	"github.com/maintops/maintops/pkg/plans"
	"github.com/stretchr/testify/assert"
)

func TestEvaluator_NilSubscriptionDefaultsToFree(t *testing.T) {
	evaluator := NewEvaluator(plans.Default())

	ceiling, limited := evaluator.Limit(nil, plans.FeatureMaxCourses)
	assert.True(t, limited)
	assert.Equal(t, 1, ceiling)
	assert.True(t, evaluator.CanUse(nil, plans.FeatureMaxCourses))
}

func TestEvaluator_ProPlanLimits(t *testing.T) {
	evaluator := NewEvaluator(plans.Default())
	subscription := &models.Subscription{
		UserEmail: "admin@planta.cl",
		Plan:      models.PlanPro,
		Status:    models.SubscriptionStatusActive,
	}

	ceiling, limited := evaluator.Limit(subscription, plans.FeatureMaxCourses)
	assert.True(t, limited)
	assert.Equal(t, 5, ceiling)
}

func TestEvaluator_EnterpriseIsUnlimited(t *testing.T) {
	evaluator := NewEvaluator(plans.Default())
	subscription := &models.Subscription{Plan: models.PlanEnterprise}

	_, limited := evaluator.Limit(subscription, plans.FeatureMaxEquipment)
	assert.False(t, limited)
	assert.True(t, evaluator.CanUse(subscription, plans.FeatureMaxEquipment))
}

func TestEvaluator_ZeroLimitDeniesUse(t *testing.T) {
	zero := 0
	table := plans.Table{
		models.PlanFree: plans.Limits{plans.FeatureMaxCourses: &zero},
	}
	evaluator := NewEvaluator(table)

	assert.False(t, evaluator.CanUse(nil, plans.FeatureMaxCourses))
}
