package delay

import (
	"context"

	"github.com/orgball2608/insta-feed/pkg/logger"
	"go.uber.org/fx"
)

var Module = fx.Module("delay",
	fx.Provide(
		func(lc fx.Lifecycle, log logger.Logger) (*Scheduler, error) {
			s, err := New(log)
			if err != nil {
				return nil, err
			}
			lc.Append(fx.Hook{
				OnStart: func(context.Context) error {
					s.Start()
					return nil
				},
				OnStop: func(context.Context) error {
					return s.Shutdown()
				},
			})
			return s, nil
		},
	),
)
