package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"

	"github.com/SscSPs/ledgerlite/internal/platform/config"
	"github.com/SscSPs/ledgerlite/internal/repositories"
	"github.com/google/subcommands"
)

type migrateCmd struct{}

func (*migrateCmd) Name() string     { return "migrate" }
func (*migrateCmd) Synopsis() string { return "apply pending schema migrations" }
func (*migrateCmd) Usage() string {
	return `ledgerctl migrate

  Applies the embedded PostgreSQL migrations when DB_DRIVER=postgres.
  With DB_DRIVER=sqlite the schema is created by opening the database file.
`
}

func (*migrateCmd) SetFlags(*flag.FlagSet) {}

func (*migrateCmd) Execute(ctx context.Context, _ *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	cfg, err := config.LoadConfig()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return subcommands.ExitFailure
	}

	if err := repositories.Migrate(cfg, slog.Default()); err != nil {
		fmt.Fprintln(os.Stderr, err)
		return subcommands.ExitFailure
	}
	if cfg.DatabaseDriver == config.DriverSQLite {
		storage, err := repositories.NewStorage(ctx, cfg, slog.Default())
		if err != nil {
			fmt.Fprintln(os.Stderr, err)
			return subcommands.ExitFailure
		}
		storage.Close()
	}

	fmt.Printf("schema up to date (%s)\n", cfg.DatabaseDriver)
	return subcommands.ExitSuccess
}
