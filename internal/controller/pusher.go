package controller

import (
	"context"
	"errors"
	"fmt"

	"github.com/Freeeeeet/tutor_market/internal/controller/callbacks/common/formatting"
	"github.com/Freeeeeet/tutor_market/internal/model"
	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
)

// Pusher отправляет уведомления из входящих в чат Telegram
type Pusher struct {
	bot *bot.Bot
}

func NewPusher(b *bot.Bot) *Pusher {
	return &Pusher{bot: b}
}

// Push отправляет одно уведомление в чат.
// 403 и 400 от Telegram возвращаются как model.ErrChatUnreachable.
func (p *Pusher) Push(ctx context.Context, chatID int64, n *model.Notification) error {
	_, err := p.bot.SendMessage(ctx, &bot.SendMessageParams{
		ChatID:    chatID,
		Text:      formatting.FormatNotification(n),
		ParseMode: models.ParseModeHTML,
	})
	if err != nil {
		return pushError(n.ID, err)
	}
	return nil
}

func pushError(notificationID int64, err error) error {
	if errors.Is(err, bot.ErrorForbidden) || errors.Is(err, bot.ErrorBadRequest) {
		return fmt.Errorf("send notification %d: %w: %w", notificationID, model.ErrChatUnreachable, err)
	}
	return fmt.Errorf("send notification %d: %w", notificationID, err)
}
