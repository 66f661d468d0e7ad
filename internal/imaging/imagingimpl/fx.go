package imagingimpl

import (
	"context"
	"time"

	"github.com/orgball2608/insta-feed/internal/imaging"
	"github.com/orgball2608/insta-feed/internal/ratelimit"
	"github.com/orgball2608/insta-feed/pkg/config"
	"github.com/orgball2608/insta-feed/pkg/logger"
	"go.uber.org/fx"
)

type Opts struct {
	fx.In

	LC     fx.Lifecycle
	Config *config.Config
	Logger logger.Logger
}

var Module = fx.Module("imaging",
	fx.Provide(New),
)

func New(opts Opts) (imaging.Loader, error) {
	images := opts.Config.Images
	if !images.Fetch {
		opts.Logger.Info("Image fetching disabled")
		return Offline{}, nil
	}

	limiter := ratelimit.NewInMemoryLimiter(images.PerHostRate, time.Second, images.PerHostBurst)
	pooled, err := NewPooled(NewHTTP(timeoutClient(images.Timeout), limiter, opts.Logger), images.Workers)
	if err != nil {
		return nil, err
	}

	opts.LC.Append(fx.Hook{
		OnStop: func(context.Context) error {
			pooled.Release()
			return nil
		},
	})
	return pooled, nil
}
