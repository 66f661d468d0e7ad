package storageimpl

import (
	"context"
	"database/sql"
	"fmt"

	_ "github.com/lib/pq"
	"github.com/orgball2608/insta-feed/internal/storage"
	"github.com/orgball2608/insta-feed/pkg/config"
	"github.com/orgball2608/insta-feed/pkg/logger"
	"github.com/orgball2608/insta-feed/pkg/pgx"
	"go.uber.org/fx"
)

type Opts struct {
	fx.In

	LC     fx.Lifecycle
	Logger logger.Logger
	Config *config.Config
}

var Module = fx.Module("storage",
	fx.Provide(New),
)

// New picks the repository for the configured driver and hooks its schema
// and connection lifecycle into fx.
func New(opts Opts) (storage.Repository, error) {
	log := opts.Logger.WithComponent("Storage")

	switch opts.Config.Storage.Driver {
	case storage.DriverMemory:
		log.Warn("Using in-memory preferences, nothing survives a restart")
		return NewMemory(), nil

	case storage.DriverSQLite:
		repo, err := NewSQLite(opts.Config.Storage.SqlitePath, opts.Logger)
		if err != nil {
			return nil, fmt.Errorf("failed to open sqlite: %w", err)
		}
		opts.LC.Append(fx.Hook{
			OnStart: func(ctx context.Context) error {
				if err := repo.Migrate(ctx); err != nil {
					return err
				}
				log.Info("SQLite preferences ready", "path", opts.Config.Storage.SqlitePath)
				return nil
			},
			OnStop: func(context.Context) error {
				return repo.Close()
			},
		})
		return repo, nil

	case storage.DriverPostgres:
		pool, err := pgx.New(pgx.Opts{LC: opts.LC, Logger: opts.Logger, Config: opts.Config})
		if err != nil {
			return nil, err
		}
		opts.LC.Append(fx.Hook{
			OnStart: func(ctx context.Context) error {
				return migratePostgres(ctx, opts.Config)
			},
		})
		return NewPgx(pool, opts.Logger), nil

	default:
		return nil, fmt.Errorf("unsupported storage driver %q", opts.Config.Storage.Driver)
	}
}

func migratePostgres(ctx context.Context, cfg *config.Config) error {
	db, err := sql.Open("postgres", cfg.GetDSN())
	if err != nil {
		return err
	}
	defer db.Close()

	return Migrate(ctx, db, "postgres")
}
