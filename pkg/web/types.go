package web

// WorkOrderActionRequest is the payload of the work order action endpoint.
// Action names follow the services package constants; unknown names are
// rejected with 400 before the work order is loaded.
type WorkOrderActionRequest struct {
	Action   string `json:"action"   validate:"required"`
	Assignee string `json:"assignee,omitempty"`
	Reason   string `json:"reason,omitempty"`
}

// ActionResponse wraps a successful action outcome.
type ActionResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
	Data    any    `json:"data,omitempty"`
}
