// Package persistence selects and wires the credential store.
package persistence

import (
	"log/slog"

	"authgate/config"
	"authgate/internal/domain/repository"
	"authgate/internal/errors"
	"authgate/internal/infra/persistence/memory"
	"authgate/internal/infra/persistence/postgres"

	"go.uber.org/fx"
)

// Params defines the required parameters
type Params struct {
	fx.In
	fx.Lifecycle

	Config *config.Config
	Logger *slog.Logger
}

// Store exposes the repositories of the configured driver to the container.
type Store struct {
	fx.Out

	TxManager repository.TransactionManager
	Users     repository.UserRepository
}

// NewStore opens the store named by database.driver.
func NewStore(params Params) (Store, error) {
	switch params.Config.Database.Driver {
	case config.DriverMemory:
		params.Logger.Warn("Using in-memory credential store; users are lost on restart")
		store := memory.NewStore()

		return Store{TxManager: store, Users: store.Users()}, nil
	case config.DriverPostgres, "":
		db, err := postgres.New(postgres.Params{
			Lifecycle: params.Lifecycle,
			Config:    params.Config,
			Logger:    params.Logger,
		})
		if err != nil {
			return Store{}, err
		}

		return Store{
			TxManager: postgres.NewTransactionManager(db),
			Users:     postgres.NewUserRepository(db),
		}, nil
	default:
		return Store{}, errors.Errorf("unsupported database driver: %s", params.Config.Database.Driver)
	}
}
