package common

import (
	"context"

	"github.com/Freeeeeet/tutor_market/internal/controller/callbacks/callbacktypes"
	"github.com/Freeeeeet/tutor_market/internal/model"
	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
	"go.uber.org/zap"
)

// WithAppointmentParty загружает пользователя и встречу, проверяет участие.
// При ошибке сам отвечает пользователю.
func WithAppointmentParty(
	ctx context.Context,
	b *bot.Bot,
	callback *models.CallbackQuery,
	h *callbacktypes.Handler,
	appointmentID int64,
	handler func(*HandlerContext, *model.Appointment),
) {
	hc := NewHandlerContext(ctx, b, callback, h)

	appt, err := hc.RequireAppointmentParty(appointmentID)
	if err != nil {
		h.Logger.Warn("Appointment party check failed",
			zap.Int64("telegram_id", hc.TelegramID),
			zap.Int64("appointment_id", appointmentID),
			zap.Error(err))
		hc.AnswerAlert(ErrorMessage(err))
		return
	}

	handler(hc, appt)
}

// WithListingOwner загружает пользователя и проверяет, что заявка подана на его объявление
func WithListingOwner(
	ctx context.Context,
	b *bot.Bot,
	callback *models.CallbackQuery,
	h *callbacktypes.Handler,
	applicationID int64,
	handler func(*HandlerContext),
) {
	hc := NewHandlerContext(ctx, b, callback, h)

	if err := hc.RequireListingOwner(applicationID); err != nil {
		h.Logger.Warn("Listing owner check failed",
			zap.Int64("telegram_id", hc.TelegramID),
			zap.Int64("application_id", applicationID),
			zap.Error(err))
		hc.AnswerAlert(ErrorMessage(err))
		return
	}

	handler(hc)
}

// HandleError обрабатывает ошибку и отправляет ответ пользователю
func HandleError(hc *HandlerContext, err error, operation string) {
	hc.Handler.Logger.Error("Operation failed",
		zap.String("operation", operation),
		zap.Int64("telegram_id", hc.TelegramID),
		zap.Error(err))
	hc.AnswerAlert(ErrorMessage(err))
}

// LogAndAnswer логирует действие и отвечает на callback
func LogAndAnswer(hc *HandlerContext, message string, answer string) {
	hc.Handler.Logger.Info(message,
		zap.Int64("telegram_id", hc.TelegramID),
		zap.String("user_id", hc.User.ID))
	hc.Answer(answer)
}
