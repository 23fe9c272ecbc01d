package models

import "time"

// WorkOrderStatus represents the approval lifecycle state of a work order.
// Execution and completion states live outside this core and are never
// written here.
type WorkOrderStatus string

const (
	WorkOrderStatusPendiente    WorkOrderStatus = "pendiente"     // Initial, re-entered on rejection
	WorkOrderStatusEnAprobacion WorkOrderStatus = "en_aprobacion" // Waiting for an admin decision
	WorkOrderStatusAsignada     WorkOrderStatus = "asignada"      // Approved and assigned to a technician
)

// ApprovalAction tags one entry in a work order's approval log.
type ApprovalAction string

const (
	ApprovalActionApproved ApprovalAction = "approved"
	ApprovalActionRejected ApprovalAction = "rejected"
	ApprovalActionAssigned ApprovalAction = "assigned"
)

// ApprovalEntry is one record of the append-only approval audit log.
type ApprovalEntry struct {
	Actor  string         `json:"actor"`
	Action ApprovalAction `json:"action"`
	Note   string         `json:"note,omitempty"`
	At     time.Time      `json:"at"`
}

// WorkOrder is a schedulable maintenance task. Created elsewhere in the
// platform in state pendiente; this core mutates it exclusively through the
// approval state machine and never deletes it.
type WorkOrder struct {
	ID          string          `json:"id"          validate:"required"`
	Description string          `json:"description"`
	Type        string          `json:"type"`
	Priority    string          `json:"priority"`
	Status      WorkOrderStatus `json:"status"      validate:"required"`
	AssignedTo  string          `json:"assigned_to,omitempty"`
	CreatedBy   string          `json:"created_by"`

	// ApprovalNotes mirrors the latest approval log entry for UI
	// compatibility with the legacy single-field shape.
	ApprovalNotes string          `json:"approval_notes,omitempty"`
	ApprovalLog   []ApprovalEntry `json:"approval_log,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// AppendApproval records an approval decision on the audit log and mirrors
// it into ApprovalNotes.
func (w *WorkOrder) AppendApproval(entry ApprovalEntry) {
	w.ApprovalLog = append(w.ApprovalLog, entry)
	w.ApprovalNotes = entry.Note
}

// CanTransition reports whether the approval state machine allows moving
// from the work order's current status to the target status. Reassignment
// (asignada to asignada) is an idempotent re-entry.
func (w *WorkOrder) CanTransition(target WorkOrderStatus) bool {
	switch w.Status {
	case WorkOrderStatusPendiente:
		return target == WorkOrderStatusEnAprobacion || target == WorkOrderStatusAsignada
	case WorkOrderStatusEnAprobacion:
		return target == WorkOrderStatusAsignada || target == WorkOrderStatusPendiente
	case WorkOrderStatusAsignada:
		return target == WorkOrderStatusAsignada
	default:
		return false
	}
}
