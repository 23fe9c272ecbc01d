// Package web provides the HTTP action surface of the orchestration core.
package web

import (
	"encoding/json"
	"fmt"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v3"
	"github.com/maintops/maintops/pkg/features"
	"github.com/maintops/maintops/pkg/persistence"
	"github.com/maintops/maintops/pkg/plans"
	"github.com/maintops/maintops/pkg/services"
)

type APIHandlers struct {
	workOrders    *services.WorkOrders
	preventive    *services.PreventiveScanner
	stock         *services.StockScanner
	features      *features.Evaluator
	subscriptions persistence.SubscriptionRepository
	validator     *validator.Validate
}

func NewAPIHandlers(
	workOrders *services.WorkOrders,
	preventive *services.PreventiveScanner,
	stock *services.StockScanner,
	featureGate *features.Evaluator,
	subscriptions persistence.SubscriptionRepository,
	validator *validator.Validate,
) *APIHandlers {
	return &APIHandlers{
		workOrders:    workOrders,
		preventive:    preventive,
		stock:         stock,
		features:      featureGate,
		subscriptions: subscriptions,
		validator:     validator,
	}
}

// WorkOrderAction dispatches one state machine action on a work order.
// Requires an authenticated caller.
func (h *APIHandlers) WorkOrderAction(c fiber.Ctx) error {
	caller, ok := callerFrom(c)
	if !ok {
		return unauthenticated(c)
	}

	var req WorkOrderActionRequest
	if err := json.Unmarshal(c.Body(), &req); err != nil {
		return badRequest(c, "Invalid request body: "+err.Error())
	}

	if err := h.validator.Struct(&req); err != nil {
		return badRequest(c, "Invalid request: "+err.Error())
	}

	result, err := h.workOrders.Dispatch(c.Context(), *caller, c.Params("id"), req.Action, req.Assignee, req.Reason)
	if err != nil {
		return handleServiceError(c, err)
	}

	return c.JSON(ActionResponse{
		Success: true,
		Message: fmt.Sprintf("work order %s: %s", result.WorkOrder.ID, result.WorkOrder.Status),
		Data:    result,
	})
}

// RunPreventiveScan triggers a preventive maintenance scan. An absent caller
// means scheduler context and runs unconditionally; a present caller must
// hold the scan permission.
func (h *APIHandlers) RunPreventiveScan(c fiber.Ctx) error {
	result, err := h.preventive.Run(c.Context(), h.trigger(c))
	if err != nil {
		return handleServiceError(c, err)
	}

	return c.JSON(ActionResponse{
		Success: true,
		Message: fmt.Sprintf("%d overdue, %d due soon", len(result.Overdue), len(result.DueSoon)),
		Data:    result,
	})
}

// RunStockScan triggers a spare part stock scan, with the same trigger
// semantics as RunPreventiveScan.
func (h *APIHandlers) RunStockScan(c fiber.Ctx) error {
	result, err := h.stock.Run(c.Context(), h.trigger(c))
	if err != nil {
		return handleServiceError(c, err)
	}

	return c.JSON(ActionResponse{
		Success: true,
		Message: fmt.Sprintf("%d alerting, %d notified", result.Alerting, result.Notified),
		Data:    result,
	})
}

// GetFeature evaluates the caller's plan gate for one feature key.
func (h *APIHandlers) GetFeature(c fiber.Ctx) error {
	caller, ok := callerFrom(c)
	if !ok {
		return unauthenticated(c)
	}

	feature := plans.Feature(c.Params("feature"))
	if !plans.KnownFeature(feature) {
		return badRequest(c, "Unknown feature: "+string(feature))
	}

	subscription, err := h.subscriptions.GetByUserEmail(c.Context(), caller.Email)
	if err != nil && !persistence.IsSubscriptionNotFound(err) {
		return internalError(c, err)
	}

	response := fiber.Map{
		"feature": feature,
		"allowed": h.features.CanUse(subscription, feature),
	}

	if ceiling, limited := h.features.Limit(subscription, feature); limited {
		response["limit"] = ceiling
	} else {
		response["limit"] = nil
	}

	if subscription != nil {
		response["plan"] = subscription.Plan
	} else {
		response["plan"] = "free"
	}

	return c.JSON(response)
}

// trigger builds the scan invocation context from the request identity.
func (h *APIHandlers) trigger(c fiber.Ctx) services.Trigger {
	if caller, ok := callerFrom(c); ok {
		return services.UserTrigger(*caller)
	}

	return services.ScheduledTrigger()
}
