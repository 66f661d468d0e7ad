package session

import (
	"context"

	"github.com/orgball2608/insta-feed/internal/seed"
	"github.com/orgball2608/insta-feed/internal/storage"
	"github.com/orgball2608/insta-feed/pkg/logger"
	"go.uber.org/fx"
)

type Opts struct {
	fx.In

	LC     fx.Lifecycle
	Repo   storage.Repository
	Seed   seed.Client
	Logger logger.Logger
}

var Module = fx.Module("session",
	fx.Provide(
		func(opts Opts) *Store {
			store := NewStore(opts.Repo, opts.Logger, opts.Seed.CurrentUser())
			opts.LC.Append(fx.Hook{
				OnStart: func(ctx context.Context) error {
					store.Load(ctx)
					return nil
				},
			})
			return store
		},
	),
)
