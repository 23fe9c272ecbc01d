// Package main provides the MaintOps API server implementation.
package main

import (
	"log/slog"
	"strconv"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v3"
	"github.com/gofiber/fiber/v3/middleware/cors"
	"github.com/gofiber/fiber/v3/middleware/healthcheck"
	"github.com/gofiber/fiber/v3/middleware/logger"
	"github.com/maintops/maintops/pkg/dedup"
	"github.com/maintops/maintops/pkg/eventbus"
	"github.com/maintops/maintops/pkg/features"
	"github.com/maintops/maintops/pkg/mailer"
	"github.com/maintops/maintops/pkg/notifier"
	"github.com/maintops/maintops/pkg/persistence"
	"github.com/maintops/maintops/pkg/plans"
	"github.com/maintops/maintops/pkg/services"
	"github.com/maintops/maintops/pkg/web"
)

type API struct {
	logger      *slog.Logger
	persistence persistence.Persistence
	eventBus    eventbus.EventBus
	transport   mailer.Transport
	tracker     dedup.Tracker
	planTable   plans.Table
	validate    *validator.Validate
}

func NewAPI(
	logger *slog.Logger,
	persistence persistence.Persistence,
	eventBus eventbus.EventBus,
	transport mailer.Transport,
	tracker dedup.Tracker,
	planTable plans.Table,
) *API {
	return &API{
		logger:      logger,
		persistence: persistence,
		eventBus:    eventBus,
		transport:   transport,
		tracker:     tracker,
		planTable:   planTable,
		validate:    validator.New(validator.WithRequiredStructEnabled()),
	}
}

func (a *API) App() *fiber.App {
	engine := notifier.NewEngine(a.persistence.Notifications(), a.transport, a.logger)
	resolver := notifier.NewUserResolver(a.persistence.Users())

	var bus eventbus.EventPublisher = a.eventBus

	workOrders := services.NewWorkOrders(a.persistence, engine, resolver, bus, a.logger)
	preventive := services.NewPreventiveScanner(a.persistence, engine, resolver, bus, a.logger)
	stock := services.NewStockScanner(a.persistence, engine, resolver, a.tracker, bus, a.logger)
	gate := features.NewEvaluator(a.planTable)

	handlers := web.NewAPIHandlers(workOrders, preventive, stock, gate, a.persistence.Subscriptions(), a.validate)

	app := fiber.New()
	app.Use(cors.New())
	app.Use(logger.New(logger.Config{
		DisableColors: true,
	}))
	app.Use(web.IdentityMiddleware())

	app.Get(healthcheck.DefaultLivenessEndpoint, healthcheck.NewHealthChecker())
	app.Get(healthcheck.DefaultReadinessEndpoint, healthcheck.NewHealthChecker())

	app.Get("/", func(c fiber.Ctx) error {
		return c.SendString("MaintOps API")
	})

	w := app.Group("/work-orders")
	w.Post("/:id/actions", handlers.WorkOrderAction)

	s := app.Group("/scans")
	s.Post("/preventive", handlers.RunPreventiveScan)
	s.Post("/stock", handlers.RunStockScan)

	app.Get("/features/:feature", handlers.GetFeature)

	app.Get("/health", func(c fiber.Ctx) error {
		if err := a.persistence.HealthCheck(c.Context()); err != nil {
			return c.Status(fiber.StatusServiceUnavailable).JSON(fiber.Map{
				"status": "unhealthy",
				"error":  err.Error(),
			})
		}

		return c.JSON(fiber.Map{"status": "healthy"})
	})

	return app
}

func (a *API) Start(port int) error {
	app := a.App()

	err := app.Listen(":" + strconv.Itoa(port))

	return err
}
