// Package repositories selects and opens the configured storage backend.
package repositories

import (
	"context"
	"fmt"
	"log/slog"

	portsrepo "github.com/SscSPs/ledgerlite/internal/core/ports/repositories"
	"github.com/SscSPs/ledgerlite/internal/platform/config"
	"github.com/SscSPs/ledgerlite/internal/repositories/database/pgsql"
	"github.com/SscSPs/ledgerlite/internal/repositories/database/sqlite"
	"github.com/SscSPs/ledgerlite/pkg/database"
)

// Storage bundles the repositories of one backend with its lifecycle hooks.
type Storage struct {
	Repos  portsrepo.RepositoryProvider
	Health portsrepo.HealthChecker
	close  func()
}

// Close releases the backend's connections.
func (s *Storage) Close() {
	if s != nil && s.close != nil {
		s.close()
	}
}

// Migrate brings the configured database schema up to date.
// The SQLite schema is applied when the database is opened, so only Postgres needs this.
func Migrate(cfg *config.Config, logger *slog.Logger) error {
	if cfg.DatabaseDriver != config.DriverPostgres {
		logger.Info("Skipping migrations for driver", "driver", cfg.DatabaseDriver)
		return nil
	}
	return database.RunMigrations(cfg.DatabaseURL, logger)
}

// NewStorage opens the backend named by cfg.DatabaseDriver.
func NewStorage(ctx context.Context, cfg *config.Config, logger *slog.Logger) (*Storage, error) {
	switch cfg.DatabaseDriver {
	case config.DriverPostgres:
		pool, err := database.NewPgxPool(ctx, cfg.DatabaseURL, cfg.EnableDBCheck)
		if err != nil {
			return nil, err
		}
		logger.Info("Using PostgreSQL storage")
		return &Storage{
			Repos:  pgsql.NewRepositoryProvider(pool),
			Health: pgsql.NewHealthChecker(pool),
			close:  func() { database.ClosePgxPool(pool) },
		}, nil
	case config.DriverSQLite:
		db, err := sqlite.Open(ctx, cfg.SQLitePath)
		if err != nil {
			return nil, err
		}
		logger.Info("Using SQLite storage", "path", cfg.SQLitePath)
		return &Storage{
			Repos:  sqlite.NewRepositoryProvider(db),
			Health: sqlite.NewHealthChecker(db),
			close: func() {
				if err := db.Close(); err != nil {
					logger.Warn("Error closing SQLite database", "error", err)
				}
			},
		}, nil
	default:
		return nil, fmt.Errorf("unsupported database driver %q", cfg.DatabaseDriver)
	}
}
