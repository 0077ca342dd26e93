package handlers

import (
	"context"

	"github.com/Freeeeeet/tutor_market/internal/model"
	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
	"go.uber.org/zap"
)

// requireUser находит пользователя, привязанного к чату.
// Возвращает user и true если OK, nil и false если нет
func (h *Handlers) requireUser(ctx context.Context, b *bot.Bot, update *models.Update) (*model.User, bool) {
	if update.Message == nil {
		return nil, false
	}

	chatID := update.Message.Chat.ID
	user, err := h.userService.GetByTelegramChatID(ctx, chatID)

	if err != nil {
		h.logger.Error("Failed to get user", zap.Int64("chat_id", chatID), zap.Error(err))
		h.sendMessage(ctx, b, chatID, "❌ Произошла ошибка. Попробуйте позже.", nil)
		return nil, false
	}

	if user == nil {
		h.sendMessage(ctx, b, chatID, "❌ Аккаунт не привязан. Используйте /start <ваш ID>.", nil)
		return nil, false
	}

	return user, true
}

// sendMessage отправляет сообщение и логирует если не удалось
func (h *Handlers) sendMessage(ctx context.Context, b *bot.Bot, chatID int64, text string, markup *models.InlineKeyboardMarkup) {
	params := &bot.SendMessageParams{
		ChatID:    chatID,
		Text:      text,
		ParseMode: models.ParseModeHTML,
	}
	if markup != nil {
		params.ReplyMarkup = markup
	}

	if _, err := b.SendMessage(ctx, params); err != nil {
		h.logger.Error("Failed to send message",
			zap.Int64("chat_id", chatID),
			zap.Error(err),
		)
	}
}
