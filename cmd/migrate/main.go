package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"authgate/config"
	"authgate/internal/infra/persistence/postgres"

	"github.com/pkg/errors"
)

// Supported subcommands:
// - up:     apply all pending migrations
// - down:   roll back the latest migration
// - status: list applied and pending migrations

func main() {
	if len(os.Args) < 2 {
		printUsage()
		os.Exit(1)
	}

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	if err := run(ctx, os.Args[1], os.Args[2:]); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, subcommand string, args []string) error {
	fs := flag.NewFlagSet(subcommand, flag.ContinueOnError)
	configName := fs.String("config", "config", "Config file name without the .yaml extension")
	if err := fs.Parse(args); err != nil {
		return errors.WithStack(err)
	}

	switch subcommand {
	case "up", "down", "status":
	default:
		printUsage()

		return errors.Errorf("unknown subcommand: %s", subcommand)
	}

	cfg, err := config.LoadWithEnv[config.Config](*configName, "config", "../config", "../../config")
	if err != nil {
		return err
	}
	if cfg.Database.DSN == "" && cfg.Postgres == nil {
		return errors.New("database.dsn or postgres connection is required")
	}

	db, err := postgres.Open(cfg)
	if err != nil {
		return err
	}
	sqlDB, err := db.DB()
	if err != nil {
		return errors.WithStack(err)
	}
	defer sqlDB.Close()

	logger := slog.New(slog.NewTextHandler(os.Stderr, nil))

	switch subcommand {
	case "up":
		return postgres.MigrateUp(ctx, sqlDB, logger)
	case "down":
		return postgres.MigrateDown(ctx, sqlDB, logger)
	default:
		return postgres.MigrateStatus(ctx, sqlDB)
	}
}

func printUsage() {
	fmt.Fprintln(os.Stderr, `Usage: migrate <up|down|status> [-config name]

Applies the embedded schema migrations to the configured PostgreSQL database.`)
}
