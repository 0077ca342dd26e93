package lifecycle

import (
	"context"

	"github.com/Freeeeeet/tutor_market/internal/controller/callbacks/callbacktypes"
	"github.com/Freeeeeet/tutor_market/internal/controller/callbacks/common"
	"github.com/Freeeeeet/tutor_market/internal/controller/callbacks/common/formatting"
	"github.com/Freeeeeet/tutor_market/internal/controller/callbacks/common/keyboard"
	"github.com/Freeeeeet/tutor_market/internal/model"
	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
	"go.uber.org/zap"
)

type appointmentAction struct {
	operation string
	// role ограничивает действие одной стороной встречи, пустая строка - любой участник
	role   model.UserRole
	run    func(h *callbacktypes.Handler) func(ctx context.Context, id int64) (bool, error)
	answer string
}

var (
	confirmAction = appointmentAction{
		operation: "confirm_appointment",
		role:      model.UserRoleTutor,
		run: func(h *callbacktypes.Handler) func(context.Context, int64) (bool, error) {
			return h.MatchingService.ConfirmAppointment
		},
		answer: "✅ Встреча подтверждена",
	}
	cancelAction = appointmentAction{
		operation: "cancel_appointment",
		role:      model.UserRoleStudent,
		run: func(h *callbacktypes.Handler) func(context.Context, int64) (bool, error) {
			return h.MatchingService.CancelAppointment
		},
		answer: "Встреча отменена",
	}
	completeAction = appointmentAction{
		operation: "complete_appointment",
		run: func(h *callbacktypes.Handler) func(context.Context, int64) (bool, error) {
			return h.MatchingService.CompleteAppointment
		},
		answer: "✔️ Встреча завершена, баллы начислены",
	}
)

// HandleConfirmAppointment подтверждение встречи репетитором
func HandleConfirmAppointment(ctx context.Context, b *bot.Bot, callback *models.CallbackQuery, h *callbacktypes.Handler) {
	handleAppointmentAction(ctx, b, callback, h, confirmAction)
}

// HandleCancelAppointment отмена встречи учеником
func HandleCancelAppointment(ctx context.Context, b *bot.Bot, callback *models.CallbackQuery, h *callbacktypes.Handler) {
	handleAppointmentAction(ctx, b, callback, h, cancelAction)
}

// HandleCompleteAppointment завершение встречи любым участником
func HandleCompleteAppointment(ctx context.Context, b *bot.Bot, callback *models.CallbackQuery, h *callbacktypes.Handler) {
	handleAppointmentAction(ctx, b, callback, h, completeAction)
}

func handleAppointmentAction(
	ctx context.Context,
	b *bot.Bot,
	callback *models.CallbackQuery,
	h *callbacktypes.Handler,
	action appointmentAction,
) {
	appointmentID, err := common.ParseIDFromCallback(callback.Data)
	if err != nil {
		common.AnswerCallbackAlert(ctx, b, callback.ID, common.ErrorMessage(err))
		return
	}

	common.WithAppointmentParty(ctx, b, callback, h, appointmentID, func(hc *common.HandlerContext, appt *model.Appointment) {
		if !allowedSide(action.role, appt, hc.User.ID) {
			hc.AnswerAlert(common.ErrorMessage(common.ErrNotAppointmentParty))
			return
		}

		changed, err := action.run(h)(ctx, appointmentID)
		if err != nil {
			common.HandleError(hc, err, action.operation)
			return
		}
		if !changed {
			hc.AnswerAlert("❌ Встреча не найдена")
			return
		}

		updated, err := h.MatchingService.GetAppointment(ctx, appointmentID)
		if err != nil {
			h.Logger.Warn("Failed to reload appointment", zap.Int64("appointment_id", appointmentID), zap.Error(err))
		} else if err := hc.EditMessage(formatting.FormatAppointment(updated, hc.User.ID), keyboard.AppointmentActions(updated, hc.User.ID)); err != nil {
			h.Logger.Warn("Failed to edit message", zap.Error(err))
		}

		common.LogAndAnswer(hc, "Appointment updated via bot", action.answer)
	})
}

// allowedSide проверяет, что пользователь на нужной стороне встречи
func allowedSide(role model.UserRole, appt *model.Appointment, userID string) bool {
	switch role {
	case model.UserRoleTutor:
		return appt.TutorID == userID
	case model.UserRoleStudent:
		return appt.StudentID == userID
	default:
		return appt.HasParty(userID)
	}
}
