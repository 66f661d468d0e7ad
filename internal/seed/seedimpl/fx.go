package seedimpl

import (
	"github.com/orgball2608/insta-feed/internal/seed"
	"go.uber.org/fx"
)

var Module = fx.Module("seed",
	fx.Provide(
		fx.Annotate(
			New,
			fx.As(new(seed.Client)),
		),
	),
)
