package models

import "time"

// EquipmentStatus represents the operational state of a piece of equipment.
type EquipmentStatus string

const (
	EquipmentStatusOperativo     EquipmentStatus = "operativo"
	EquipmentStatusEnMantencion  EquipmentStatus = "en_mantencion"
	EquipmentStatusFueraServicio EquipmentStatus = "fuera_servicio" // Exempt from scanning
)

// Equipment is a maintainable asset. Read-only to this core.
type Equipment struct {
	ID             string          `json:"id"              validate:"required"`
	Name           string          `json:"name"`
	InternalNumber string          `json:"numero_interno"`
	Status         EquipmentStatus `json:"status"`

	// NextMaintenanceDue is nil when no maintenance is scheduled. Unscheduled
	// equipment is excluded from scanning, not treated as overdue.
	NextMaintenanceDue *time.Time `json:"fecha_proxima_mantencion,omitempty"`
}

// Scannable reports whether the preventive scanner should consider this
// equipment at all.
func (e *Equipment) Scannable() bool {
	return e.Status != EquipmentStatusFueraServicio && e.NextMaintenanceDue != nil
}
