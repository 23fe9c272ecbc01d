package models

// SparePart is an inventory item tracked against a minimum stock level.
// Read-only to this core.
//
// Stock fields are pointers because the surrounding CRUD layer stores
// free-form records: a part with a missing stock figure is excluded from
// alerting rather than treated as alerting.
type SparePart struct {
	ID           string `json:"id"     validate:"required"`
	Code         string `json:"code"`
	Name         string `json:"name"`
	StockCurrent *int   `json:"stock_actual,omitempty"`
	StockMinimum *int   `json:"stock_minimo,omitempty"`
	Active       bool   `json:"activo"`
}

// BelowMinimum reports whether the part is at or below its minimum stock
// level. Parts with missing stock figures never alert.
func (p *SparePart) BelowMinimum() bool {
	if p.StockCurrent == nil || p.StockMinimum == nil {
		return false
	}

	return *p.StockCurrent <= *p.StockMinimum
}

// OutOfStock reports whether the part has no stock at all.
func (p *SparePart) OutOfStock() bool {
	return p.StockCurrent != nil && *p.StockCurrent == 0
}
