package shareimpl

import (
	"github.com/orgball2608/insta-feed/internal/share"
	"github.com/orgball2608/insta-feed/internal/share/telegramimpl"
	"github.com/orgball2608/insta-feed/pkg/config"
	"github.com/orgball2608/insta-feed/pkg/logger"
	"go.uber.org/fx"
)

type Opts struct {
	fx.In

	Config *config.Config
	Logger logger.Logger
}

var Module = fx.Module("share",
	fx.Provide(New),
)

// New sends shares to Telegram when a bot token and chat are configured and
// only logs them otherwise.
func New(opts Opts) share.Client {
	tg := opts.Config.Telegram
	if tg.BotToken == "" || tg.ChatID == 0 {
		return NewLog(opts.Logger)
	}

	client, err := telegramimpl.New(telegramimpl.Opts{Config: opts.Config, Logger: opts.Logger})
	if err != nil {
		opts.Logger.Warn("Telegram sharing unavailable, falling back to log", "error", err)
		return NewLog(opts.Logger)
	}
	return client
}
