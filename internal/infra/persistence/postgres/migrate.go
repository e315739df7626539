package postgres

import (
	"context"
	"database/sql"
	"log/slog"

	"authgate/internal/errors"
	"authgate/internal/infra/persistence/migrations"

	"github.com/pressly/goose/v3"
)

// Seams for goose so the runner can be tested without a database.
var (
	gooseUp     = goose.UpContext
	gooseDown   = goose.DownContext
	gooseStatus = goose.StatusContext
)

func prepareGoose() error {
	goose.SetBaseFS(migrations.Migrations)

	return errors.Wrap(goose.SetDialect("postgres"), "configure goose")
}

// MigrateUp applies every pending migration.
func MigrateUp(ctx context.Context, db *sql.DB, logger *slog.Logger) error {
	if err := prepareGoose(); err != nil {
		return err
	}

	logger.Info("Applying migrations")
	if err := gooseUp(ctx, db, "."); err != nil {
		return errors.Wrap(err, "apply migrations")
	}
	logger.Info("Migrations applied")

	return nil
}

// MigrateDown rolls back the latest migration.
func MigrateDown(ctx context.Context, db *sql.DB, logger *slog.Logger) error {
	if err := prepareGoose(); err != nil {
		return err
	}

	logger.Info("Rolling back latest migration")

	return errors.Wrap(gooseDown(ctx, db, "."), "rollback latest migration")
}

// MigrateStatus logs applied and pending migrations.
func MigrateStatus(ctx context.Context, db *sql.DB) error {
	if err := prepareGoose(); err != nil {
		return err
	}

	return errors.Wrap(gooseStatus(ctx, db, "."), "migration status")
}
