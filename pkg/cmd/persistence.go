// Package cmd provides common initialization functions for command-line
// applications.
package cmd

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/maintops/maintops/pkg/persistence"
	"github.com/maintops/maintops/pkg/persistence/memory"
	"github.com/maintops/maintops/pkg/persistence/postgres"
)

// NewPersistence selects a store implementation from the database URL
// scheme. An empty URL yields the in-memory store, useful for local runs and
// demos only.
func NewPersistence(ctx context.Context, logger *slog.Logger, databaseURL string) (persistence.Persistence, error) {
	switch {
	case databaseURL == "":
		return memory.NewPersistence(), nil
	case strings.HasPrefix(databaseURL, "postgres://"), strings.HasPrefix(databaseURL, "postgresql://"):
		return postgres.NewPersistence(ctx, logger, databaseURL)
	default:
		return nil, fmt.Errorf("unsupported database URL: %q", databaseURL)
	}
}
