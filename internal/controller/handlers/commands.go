package handlers

import (
	"context"
	"errors"
	"fmt"
	"html"
	"strings"

	"github.com/Freeeeeet/tutor_market/internal/controller/callbacks/common/formatting"
	"github.com/Freeeeeet/tutor_market/internal/controller/callbacks/common/keyboard"
	"github.com/Freeeeeet/tutor_market/internal/model"
	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
	"go.uber.org/zap"
)

// maxListed сколько встреч или заявок показывать за раз
const maxListed = 10

const helpText = "📚 Справка по командам:\n\n" +
	"/start &lt;ID&gt; - Привязать чат к аккаунту\n" +
	"/appointments - Мои встречи\n" +
	"/applications - Заявки на мои объявления\n" +
	"/help - Показать эту справку\n\n" +
	"Уведомления о заявках и встречах приходят в этот чат."

// HandleStart обрабатывает команду /start <userID>
func (h *Handlers) HandleStart(ctx context.Context, b *bot.Bot, update *models.Update) {
	if update.Message == nil {
		return
	}

	chatID := update.Message.Chat.ID
	userID := startPayload(update.Message.Text)

	if userID == "" {
		user, err := h.userService.GetByTelegramChatID(ctx, chatID)
		if err != nil {
			h.logger.Error("Failed to get user", zap.Int64("chat_id", chatID), zap.Error(err))
		}
		if user != nil {
			h.sendMessage(ctx, b, chatID, fmt.Sprintf("👋 С возвращением, %s!\n\n%s", html.EscapeString(user.Username), helpText), nil)
			return
		}
		h.sendMessage(ctx, b, chatID, "👋 Привет! Чтобы получать уведомления, отправьте /start &lt;ваш ID&gt;.", nil)
		return
	}

	user, err := h.userService.LinkTelegram(ctx, userID, chatID)
	if err != nil {
		h.logger.Warn("Failed to link telegram",
			zap.String("user_id", userID),
			zap.Int64("chat_id", chatID),
			zap.Error(err))

		text := "❌ Произошла ошибка при привязке. Попробуйте позже."
		switch {
		case errors.Is(err, model.ErrUserNotFound):
			text = "❌ Пользователь с таким ID не найден."
		case errors.Is(err, model.ErrUserDisabled):
			text = "❌ Аккаунт отключён."
		}
		h.sendMessage(ctx, b, chatID, text, nil)
		return
	}

	h.logger.Info("Telegram linked", zap.String("user_id", user.ID), zap.Int64("chat_id", chatID))
	h.sendMessage(ctx, b, chatID, fmt.Sprintf("✅ Чат привязан к аккаунту %s.\n\n%s", html.EscapeString(user.Username), helpText), nil)
}

// startPayload возвращает аргумент команды /start
func startPayload(text string) string {
	fields := strings.Fields(text)
	if len(fields) < 2 {
		return ""
	}
	return fields[1]
}

// HandleHelp обрабатывает команду /help
func (h *Handlers) HandleHelp(ctx context.Context, b *bot.Bot, update *models.Update) {
	if update.Message == nil {
		return
	}
	h.sendMessage(ctx, b, update.Message.Chat.ID, helpText, nil)
}

// HandleAppointments показывает встречи пользователя с кнопками действий
func (h *Handlers) HandleAppointments(ctx context.Context, b *bot.Bot, update *models.Update) {
	user, ok := h.requireUser(ctx, b, update)
	if !ok {
		return
	}
	chatID := update.Message.Chat.ID

	appts, err := h.matchingService.ListAppointmentsByUser(ctx, user.ID)
	if err != nil {
		h.logger.Error("Failed to list appointments", zap.String("user_id", user.ID), zap.Error(err))
		h.sendMessage(ctx, b, chatID, "❌ Не удалось загрузить встречи.", nil)
		return
	}

	if len(appts) == 0 {
		h.sendMessage(ctx, b, chatID, "📅 У вас пока нет встреч.", nil)
		return
	}

	for _, appt := range appts[:min(len(appts), maxListed)] {
		h.sendMessage(ctx, b, chatID, formatting.FormatAppointment(appt, user.ID), keyboard.AppointmentActions(appt, user.ID))
	}
}

// HandleApplications показывает ожидающие заявки на объявления пользователя
func (h *Handlers) HandleApplications(ctx context.Context, b *bot.Bot, update *models.Update) {
	user, ok := h.requireUser(ctx, b, update)
	if !ok {
		return
	}
	chatID := update.Message.Chat.ID

	apps, err := h.matchingService.ListPendingApplicationsForOwner(ctx, user.ID)
	if err != nil {
		h.logger.Error("Failed to list applications", zap.String("user_id", user.ID), zap.Error(err))
		h.sendMessage(ctx, b, chatID, "❌ Не удалось загрузить заявки.", nil)
		return
	}

	if len(apps) == 0 {
		h.sendMessage(ctx, b, chatID, "📭 Новых заявок нет.", nil)
		return
	}

	for _, app := range apps[:min(len(apps), maxListed)] {
		h.sendMessage(ctx, b, chatID, formatting.FormatApplication(app), keyboard.ApplicationActions(app))
	}
}
