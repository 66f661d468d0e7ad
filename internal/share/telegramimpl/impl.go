package telegramimpl

import (
	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/orgball2608/insta-feed/internal/share"
	"github.com/orgball2608/insta-feed/pkg/config"
	"github.com/orgball2608/insta-feed/pkg/logger"
	"github.com/orgball2608/insta-feed/pkg/retry"
)

type Opts struct {
	Config *config.Config
	Logger logger.Logger

	// Endpoint overrides the Bot API URL template, for tests.
	Endpoint string
}

type TelegramImpl struct {
	TgBot  *tgbotapi.BotAPI
	Logger logger.Logger
	ChatID int64
	Retry  retry.Config
}

var _ share.Client = (*TelegramImpl)(nil)

func New(opts Opts) (*TelegramImpl, error) {
	log := opts.Logger.WithComponent("TelegramShare")

	endpoint := opts.Endpoint
	if endpoint == "" {
		endpoint = tgbotapi.APIEndpoint
	}

	tgBot, err := tgbotapi.NewBotAPIWithAPIEndpoint(opts.Config.Telegram.BotToken, endpoint)
	if err != nil {
		log.Error("Error creating bot", "error", err)
		return nil, err
	}

	log.Info("Telegram sharing enabled", "bot", tgBot.Self.UserName, "chatID", opts.Config.Telegram.ChatID)

	return &TelegramImpl{
		TgBot:  tgBot,
		Logger: log,
		ChatID: opts.Config.Telegram.ChatID,
		Retry:  retry.Interactive(),
	}, nil
}
