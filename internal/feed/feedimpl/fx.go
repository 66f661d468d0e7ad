package feedimpl

import (
	"github.com/orgball2608/insta-feed/internal/feed"
	"go.uber.org/fx"
)

var Module = fx.Module("feed",
	fx.Provide(
		fx.Annotate(
			New,
			fx.As(new(feed.Controller)),
		),
	),
)
