package models_test

import (
	"testing"
	"time"

	"github.com/maintops/maintops/pkg/models"
	"github.com/stretchr/testify/assert"
)

func intPtr(v int) *int { return &v }

func TestWorkOrder_CanTransition(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		from    models.WorkOrderStatus
		to      models.WorkOrderStatus
		allowed bool
	}{
		{"submit from pendiente", models.WorkOrderStatusPendiente, models.WorkOrderStatusEnAprobacion, true},
		{"direct assign from pendiente", models.WorkOrderStatusPendiente, models.WorkOrderStatusAsignada, true},
		{"approve from en_aprobacion", models.WorkOrderStatusEnAprobacion, models.WorkOrderStatusAsignada, true},
		{"reject back to pendiente", models.WorkOrderStatusEnAprobacion, models.WorkOrderStatusPendiente, true},
		{"reassign is idempotent", models.WorkOrderStatusAsignada, models.WorkOrderStatusAsignada, true},
		{"no resubmit while waiting", models.WorkOrderStatusEnAprobacion, models.WorkOrderStatusEnAprobacion, false},
		{"no submit once assigned", models.WorkOrderStatusAsignada, models.WorkOrderStatusEnAprobacion, false},
		{"no reset once assigned", models.WorkOrderStatusAsignada, models.WorkOrderStatusPendiente, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			wo := &models.WorkOrder{ID: "wo-1", Status: tt.from}
			assert.Equal(t, tt.allowed, wo.CanTransition(tt.to))
		})
	}
}

func TestWorkOrder_AppendApproval(t *testing.T) {
	t.Parallel()

	wo := &models.WorkOrder{ID: "wo-1", Status: models.WorkOrderStatusEnAprobacion}

	wo.AppendApproval(models.ApprovalEntry{
		Actor:  "admin@x.com",
		Action: models.ApprovalActionRejected,
		Note:   "missing part numbers",
		At:     time.Now(),
	})
	wo.AppendApproval(models.ApprovalEntry{
		Actor:  "admin@x.com",
		Action: models.ApprovalActionApproved,
		Note:   "approved by admin@x.com",
		At:     time.Now(),
	})

	assert.Len(t, wo.ApprovalLog, 2, "log must keep history")
	assert.Equal(t, "approved by admin@x.com", wo.ApprovalNotes, "notes mirror the latest entry")
	assert.Equal(t, models.ApprovalActionRejected, wo.ApprovalLog[0].Action)
}

func TestEquipment_Scannable(t *testing.T) {
	t.Parallel()

	due := time.Now()

	assert.True(t, (&models.Equipment{Status: models.EquipmentStatusOperativo, NextMaintenanceDue: &due}).Scannable())
	assert.False(t, (&models.Equipment{Status: models.EquipmentStatusFueraServicio, NextMaintenanceDue: &due}).Scannable())
	assert.False(t, (&models.Equipment{Status: models.EquipmentStatusOperativo}).Scannable(), "no due date means not scheduled")
}

func TestSparePart_Thresholds(t *testing.T) {
	t.Parallel()

	part := &models.SparePart{StockCurrent: intPtr(3), StockMinimum: intPtr(5)}
	assert.True(t, part.BelowMinimum())
	assert.False(t, part.OutOfStock())

	out := &models.SparePart{StockCurrent: intPtr(0), StockMinimum: intPtr(5)}
	assert.True(t, out.BelowMinimum())
	assert.True(t, out.OutOfStock())

	missing := &models.SparePart{StockMinimum: intPtr(5)}
	assert.False(t, missing.BelowMinimum(), "missing stock figure is excluded, not alerting")
}

func TestSubscription_ActiveAt(t *testing.T) {
	t.Parallel()

	now := time.Date(2026, 8, 1, 12, 0, 0, 0, time.UTC)
	past := now.Add(-time.Hour)
	future := now.Add(24 * time.Hour)

	active := &models.Subscription{Plan: models.PlanPro, Status: models.SubscriptionStatusActive, EndsAt: &future}
	assert.True(t, active.ActiveAt(now))

	expired := &models.Subscription{Plan: models.PlanPro, Status: models.SubscriptionStatusActive, EndsAt: &past}
	assert.False(t, expired.ActiveAt(now))

	cancelled := &models.Subscription{Plan: models.PlanPro, Status: "cancelled"}
	assert.False(t, cancelled.ActiveAt(now))

	openEnded := &models.Subscription{Plan: models.PlanFree, Status: models.SubscriptionStatusActive}
	assert.True(t, openEnded.ActiveAt(now))
}
