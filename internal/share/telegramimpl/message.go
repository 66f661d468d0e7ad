package telegramimpl

import (
	"context"
	"fmt"
	"strings"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/orgball2608/insta-feed/internal/domain"
	"github.com/orgball2608/insta-feed/pkg/errors"
	"github.com/orgball2608/insta-feed/pkg/formatter"
	"github.com/orgball2608/insta-feed/pkg/retry"
)

// Telegram rejects photo captions longer than this.
const maxCaption = 1024

// SharePost sends the post's cover image with its caption. If Telegram cannot
// fetch the image the caption and link go out as a plain message instead.
func (tg *TelegramImpl) SharePost(ctx context.Context, post domain.Post) error {
	text := shareText(post)

	if cover := post.CoverImage(); cover != "" {
		err := tg.send(ctx, "sendPhoto", func() tgbotapi.Chattable {
			photo := tgbotapi.NewPhoto(tg.ChatID, tgbotapi.FileURL(cover))
			photo.Caption = formatter.TruncateText(text, maxCaption-3)
			return photo
		})
		if err == nil {
			tg.Logger.Info("Shared post as photo", "postID", post.ID, "chatID", tg.ChatID)
			return nil
		}
		tg.Logger.Warn("Photo share failed, sending text", "postID", post.ID, "error", err)
		text += "\n" + cover
	}

	if err := tg.send(ctx, "sendMessage", func() tgbotapi.Chattable {
		return tgbotapi.NewMessage(tg.ChatID, text)
	}); err != nil {
		tg.Logger.Error("Error sharing post", "postID", post.ID, "chatID", tg.ChatID, "error", err)
		return errors.WrapWithCode(err, errors.CodeShare, fmt.Sprintf("failed to share post %s", post.ID))
	}

	tg.Logger.Info("Shared post as message", "postID", post.ID, "chatID", tg.ChatID)
	return nil
}

// send retries transport failures. API refusals are final.
func (tg *TelegramImpl) send(ctx context.Context, name string, build func() tgbotapi.Chattable) error {
	return retry.Do(ctx, tg.Logger, name, func() error {
		_, err := tg.TgBot.Send(build())
		var apiErr *tgbotapi.Error
		if errors.As(err, &apiErr) {
			return retry.Permanent(err)
		}
		return err
	}, tg.Retry)
}

func shareText(post domain.Post) string {
	var b strings.Builder
	if post.Author != nil {
		b.WriteString("@" + post.Author.Username)
		if post.Location != "" {
			b.WriteString(" · " + post.Location)
		}
		b.WriteString("\n")
	}
	b.WriteString(post.Caption)
	return b.String()
}
