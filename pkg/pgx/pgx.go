package pgx

import (
	"context"
	"fmt"
	"net"
	"net/url"
	"strconv"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/orgball2608/insta-feed/pkg/config"
	"github.com/orgball2608/insta-feed/pkg/logger"
	"github.com/orgball2608/insta-feed/pkg/retry"
	"go.uber.org/fx"
)

// Preferences traffic is a handful of small writes, a small pool is enough.
const maxConns = 4

type Opts struct {
	LC     fx.Lifecycle
	Logger logger.Logger
	Config *config.Config
}

// New creates the preferences pool. The first ping is retried on start and the
// pool closes on stop.
func New(opts Opts) (*pgxpool.Pool, error) {
	log := opts.Logger.WithComponent("Postgres")

	poolCfg, err := pgxpool.ParseConfig(ConnString(opts.Config))
	if err != nil {
		return nil, fmt.Errorf("invalid postgres config: %w", err)
	}
	poolCfg.MaxConns = maxConns

	pool, err := pgxpool.NewWithConfig(context.Background(), poolCfg)
	if err != nil {
		return nil, fmt.Errorf("failed to create pgx pool: %w", err)
	}

	opts.LC.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			ping := func() error { return pool.Ping(ctx) }
			if err := retry.Do(ctx, log, "postgres ping", ping, retry.DefaultConfig()); err != nil {
				return fmt.Errorf("failed to ping postgres: %w", err)
			}
			log.Info("Connected", "host", opts.Config.Postgres.Host, "database", opts.Config.Postgres.Name)
			return nil
		},
		OnStop: func(context.Context) error {
			pool.Close()
			return nil
		},
	})

	return pool, nil
}

// ConnString renders the postgres URL with credentials escaped.
func ConnString(cfg *config.Config) string {
	pg := cfg.Postgres
	u := url.URL{
		Scheme:   "postgres",
		User:     url.UserPassword(pg.User, pg.Pass),
		Host:     net.JoinHostPort(pg.Host, strconv.Itoa(pg.Port)),
		Path:     "/" + pg.Name,
		RawQuery: url.Values{"sslmode": {pg.SslMode}}.Encode(),
	}
	return u.String()
}
