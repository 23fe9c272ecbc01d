package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"github.com/google/uuid"
	"github.com/maintops/maintops/pkg/cmd"
	"github.com/maintops/maintops/pkg/log"
	"github.com/maintops/maintops/pkg/otelhelper"
	cli "github.com/urfave/cli/v3"
)

func main() {
	command := &cli.Command{
		Name:                  "maintops-scanner",
		Usage:                 "Run the preventive maintenance and stock alert scanners",
		EnableShellCompletion: true,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "scanner-id",
				Aliases: []string{"id"},
				Usage:   "Custom scanner ID (auto-generated if not provided)",
				Value:   "",
				Sources: cli.EnvVars("SCANNER_ID"),
			},
			&cli.StringFlag{
				Name:    "database-url",
				Usage:   "Database connection URL for persistence (empty for in-memory)",
				Sources: cli.EnvVars("DATABASE_URL"),
			},
			&cli.StringFlag{
				Name:    "event-bus",
				Usage:   "Event bus type (kafka, gochannel, none)",
				Value:   "none",
				Sources: cli.EnvVars("EVENT_BUS_TYPE"),
			},
			&cli.StringFlag{
				Name:    "smtp-url",
				Usage:   "SMTP URL for outbound email (empty logs instead of sending)",
				Sources: cli.EnvVars("SMTP_URL"),
			},
			&cli.StringFlag{
				Name:    "redis-url",
				Usage:   "Redis URL for stock alert deduplication (empty uses the notification store)",
				Sources: cli.EnvVars("REDIS_URL"),
			},
			&cli.StringFlag{
				Name:    "preventive-cron",
				Usage:   "Cron expression for the preventive maintenance scan",
				Value:   "0 6 * * *",
				Sources: cli.EnvVars("PREVENTIVE_CRON"),
			},
			&cli.StringFlag{
				Name:    "stock-cron",
				Usage:   "Cron expression for the stock alert scan",
				Value:   "0 * * * *",
				Sources: cli.EnvVars("STOCK_CRON"),
			},
			&cli.BoolFlag{
				Name:  "once",
				Usage: "Run both scans once and exit instead of scheduling",
			},
			&cli.StringFlag{
				Name:    "log-level",
				Usage:   "Log level (debug, info, warn, error)",
				Value:   "info",
				Sources: cli.EnvVars("LOG_LEVEL"),
			},
		},
		Action: func(ctx context.Context, command *cli.Command) error {
			log.Setup(command.String("log-level"))

			scannerID := command.String("scanner-id")
			if scannerID == "" {
				scannerID = fmt.Sprintf("scanner-%s", uuid.New().String()[:8])
			}

			logger := log.WithModule("maintops-scanner").With("scanner_id", scannerID)

			logger.Info("Initializing MaintOps Scanner", "scanner_id", scannerID)

			tracer, err := otelhelper.NewTracer(ctx, "maintops-scanner")
			if err != nil {
				return fmt.Errorf("failed to initialize tracer: %w", err)
			}

			persistence, err := cmd.NewPersistence(ctx, logger, command.String("database-url"))
			if err != nil {
				return err
			}

			defer func() {
				if err := persistence.Close(ctx); err != nil {
					logger.Error("Failed to close persistence", "error", err)
				}
			}()

			eventBus, err := cmd.NewEventBus(command.String("event-bus"), "maintops-scanner", logger)
			if err != nil {
				return err
			}

			if eventBus != nil {
				defer func() {
					if err := eventBus.Close(); err != nil {
						logger.Error("Failed to close event bus", "error", err)
					}
				}()
			}

			transport, err := cmd.NewMailer(command.String("smtp-url"), logger)
			if err != nil {
				return err
			}

			tracker, err := cmd.NewStockTracker(command.String("redis-url"), persistence.Notifications())
			if err != nil {
				return err
			}

			daemon := NewScanner(
				scannerID,
				persistence,
				eventBus,
				transport,
				tracker,
				tracer,
				logger,
			)

			if command.Bool("once") {
				return daemon.RunOnce(ctx)
			}

			return daemon.Start(ctx, command.String("preventive-cron"), command.String("stock-cron"))
		},
	}

	if err := command.Run(context.Background(), os.Args); err != nil {
		slog.Error("Scanner exited with error", "error", err)
		os.Exit(1)
	}
}
