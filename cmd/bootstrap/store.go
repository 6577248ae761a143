package bootstrap

import (
	"context"
	"log/slog"

	"shareit/internal/infra/db"
	"shareit/internal/infra/memory"
	"shareit/internal/infra/uow"
	"shareit/internal/pkg/config"
	"shareit/internal/usecase/shared"

	"go.uber.org/fx"
)

var StoreModule = fx.Module("store",
	fx.Provide(
		NewUnitOfWork,
	),
)

// NewUnitOfWork picks the store backend. Postgres gets its schema applied
// on start when DB_AUTO_MIGRATE is set.
func NewUnitOfWork(lc fx.Lifecycle, cfg config.Config) (shared.UnitOfWork, error) {
	if cfg.Store.Backend == config.StoreBackendMemory {
		slog.Warn("using in-memory store; data is lost on restart")
		return memory.NewStore(), nil
	}

	pool, cleanup, err := db.Connect(cfg.DB)
	if err != nil {
		return nil, err
	}

	if cfg.Store.AutoMigrate {
		if err := db.Migrate(context.Background(), pool); err != nil {
			cleanup()
			return nil, err
		}
		slog.Info("database schema applied")
	}

	lc.Append(fx.Hook{
		OnStop: func(_ context.Context) error {
			if cleanup != nil {
				cleanup()
			}
			return nil
		},
	})

	return uow.NewPostgresUoW(pool), nil
}
