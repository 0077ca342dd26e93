package callbacks

import (
	"context"
	"strings"

	"github.com/Freeeeeet/tutor_market/internal/controller/callbacks/callbacktypes"
	"github.com/Freeeeeet/tutor_market/internal/controller/callbacks/common"
	"github.com/Freeeeeet/tutor_market/internal/controller/callbacks/common/keyboard"
	"github.com/Freeeeeet/tutor_market/internal/controller/callbacks/lifecycle"
	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
	"go.uber.org/zap"
)

// Route распределяет callback query по соответствующим обработчикам
func Route(ctx context.Context, b *bot.Bot, callback *models.CallbackQuery, h *callbacktypes.Handler) {
	data := callback.Data

	switch {
	// ===== Заявки =====
	case strings.HasPrefix(data, keyboard.AcceptApplicationPrefix):
		lifecycle.HandleAcceptApplication(ctx, b, callback, h)
	case strings.HasPrefix(data, keyboard.RejectApplicationPrefix):
		lifecycle.HandleRejectApplication(ctx, b, callback, h)

	// ===== Встречи =====
	case strings.HasPrefix(data, keyboard.ConfirmAppointmentPrefix):
		lifecycle.HandleConfirmAppointment(ctx, b, callback, h)
	case strings.HasPrefix(data, keyboard.CancelAppointmentPrefix):
		lifecycle.HandleCancelAppointment(ctx, b, callback, h)
	case strings.HasPrefix(data, keyboard.CompleteAppointmentPrefix):
		lifecycle.HandleCompleteAppointment(ctx, b, callback, h)

	case data == "noop":
		common.AnswerCallback(ctx, b, callback.ID, "")

	default:
		h.Logger.Warn("Unknown callback", zap.String("data", data))
		common.AnswerCallback(ctx, b, callback.ID, "")
	}
}
