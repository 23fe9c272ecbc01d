package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/robfig/cron/v3"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"github.com/maintops/maintops/pkg/dedup"
	"github.com/maintops/maintops/pkg/eventbus"
	"github.com/maintops/maintops/pkg/mailer"
	"github.com/maintops/maintops/pkg/notifier"
	"github.com/maintops/maintops/pkg/otelhelper"
	"github.com/maintops/maintops/pkg/persistence"
	"github.com/maintops/maintops/pkg/services"
)

// Scanner schedules the preventive maintenance and stock alert scans. Both
// scans run under the scheduler identity, which bypasses caller permission
// checks.
type Scanner struct {
	id         string
	preventive *services.PreventiveScanner
	stock      *services.StockScanner
	tracer     trace.Tracer
	logger     *slog.Logger
}

// NewScanner wires the two scan services from their shared dependencies.
func NewScanner(
	id string,
	p persistence.Persistence,
	eventBus eventbus.EventBus,
	transport mailer.Transport,
	tracker dedup.Tracker,
	tracer trace.Tracer,
	logger *slog.Logger,
) *Scanner {
	engine := notifier.NewEngine(p.Notifications(), transport, logger)
	resolver := notifier.NewUserResolver(p.Users())

	var bus eventbus.EventPublisher = eventBus

	return &Scanner{
		id:         id,
		preventive: services.NewPreventiveScanner(p, engine, resolver, bus, logger),
		stock:      services.NewStockScanner(p, engine, resolver, tracker, bus, logger),
		tracer:     tracer,
		logger:     logger.With("module", "scanner"),
	}
}

// Start schedules both scans and blocks until a shutdown signal arrives.
func (s *Scanner) Start(ctx context.Context, preventiveCron, stockCron string) error {
	sCtx, cancel := context.WithCancel(ctx)
	defer cancel()

	c := cron.New()

	if _, err := c.AddFunc(preventiveCron, func() { s.runPreventive(sCtx) }); err != nil {
		return err
	}

	if _, err := c.AddFunc(stockCron, func() { s.runStock(sCtx) }); err != nil {
		return err
	}

	s.logger.Info("Starting scanner",
		"preventive_cron", preventiveCron,
		"stock_cron", stockCron)

	c.Start()

	s.handleSignals(cancel)
	<-sCtx.Done()

	s.logger.Info("Scanner context cancelled, stopping...")

	stopCtx := c.Stop()
	<-stopCtx.Done()

	return nil
}

// RunOnce executes both scans immediately and returns the first error.
func (s *Scanner) RunOnce(ctx context.Context) error {
	if err := s.runPreventive(ctx); err != nil {
		return err
	}

	return s.runStock(ctx)
}

// handleSignals sets up signal handling for graceful shutdown.
func (s *Scanner) handleSignals(cancel context.CancelFunc) {
	signals := make(chan os.Signal, 1)
	signal.Notify(signals, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		sig := <-signals
		s.logger.Info("Received signal", "signal", sig)
		s.logger.Info("Shutting down gracefully...")
		cancel()
	}()
}

func (s *Scanner) runPreventive(ctx context.Context) error {
	spanCtx, span := otelhelper.StartSpan(ctx, s.tracer, "scanner.preventive",
		attribute.String(otelhelper.ScanKindKey, "preventive"),
		attribute.String(otelhelper.ServiceIDKey, s.id),
	)
	defer span.End()

	result, err := s.preventive.Run(spanCtx, services.ScheduledTrigger())
	if err != nil {
		otelhelper.SetError(span, err)
		s.logger.Error("Preventive scan failed", "error", err)

		return err
	}

	span.SetAttributes(
		attribute.Int("maintops.scan.overdue", len(result.Overdue)),
		attribute.Int("maintops.scan.due_soon", len(result.DueSoon)),
	)

	return nil
}

func (s *Scanner) runStock(ctx context.Context) error {
	spanCtx, span := otelhelper.StartSpan(ctx, s.tracer, "scanner.stock",
		attribute.String(otelhelper.ScanKindKey, "stock"),
		attribute.String(otelhelper.ServiceIDKey, s.id),
	)
	defer span.End()

	result, err := s.stock.Run(spanCtx, services.ScheduledTrigger())
	if err != nil {
		otelhelper.SetError(span, err)
		s.logger.Error("Stock scan failed", "error", err)

		return err
	}

	span.SetAttributes(
		attribute.Int("maintops.scan.alerting", result.Alerting),
		attribute.Int("maintops.scan.notified", result.Notified),
	)

	return nil
}
