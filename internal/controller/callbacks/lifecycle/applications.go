package lifecycle

import (
	"context"

	"github.com/Freeeeeet/tutor_market/internal/controller/callbacks/callbacktypes"
	"github.com/Freeeeeet/tutor_market/internal/controller/callbacks/common"
	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
	"go.uber.org/zap"
)

// HandleAcceptApplication принимает заявку. Остальные заявки на объявление отклоняются,
// создаётся встреча
func HandleAcceptApplication(ctx context.Context, b *bot.Bot, callback *models.CallbackQuery, h *callbacktypes.Handler) {
	applicationID, err := common.ParseIDFromCallback(callback.Data)
	if err != nil {
		common.AnswerCallbackAlert(ctx, b, callback.ID, common.ErrorMessage(err))
		return
	}

	common.WithListingOwner(ctx, b, callback, h, applicationID, func(hc *common.HandlerContext) {
		accepted, err := h.MatchingService.AcceptApplication(ctx, applicationID)
		if err != nil {
			common.HandleError(hc, err, "accept_application")
			return
		}
		if !accepted {
			hc.AnswerAlert("❌ Заявка не найдена")
			return
		}

		if err := hc.EditMessage("🤝 Заявка принята, встреча создана. Остальные заявки отклонены.", nil); err != nil {
			h.Logger.Warn("Failed to edit message", zap.Error(err))
		}
		common.LogAndAnswer(hc, "Application accepted via bot", "✅ Заявка принята")
	})
}

// HandleRejectApplication отклоняет заявку
func HandleRejectApplication(ctx context.Context, b *bot.Bot, callback *models.CallbackQuery, h *callbacktypes.Handler) {
	applicationID, err := common.ParseIDFromCallback(callback.Data)
	if err != nil {
		common.AnswerCallbackAlert(ctx, b, callback.ID, common.ErrorMessage(err))
		return
	}

	common.WithListingOwner(ctx, b, callback, h, applicationID, func(hc *common.HandlerContext) {
		rejected, err := h.MatchingService.RejectApplication(ctx, applicationID)
		if err != nil {
			common.HandleError(hc, err, "reject_application")
			return
		}
		if !rejected {
			hc.AnswerAlert("❌ Заявка не найдена")
			return
		}

		if err := hc.EditMessage("🚫 Заявка отклонена.", nil); err != nil {
			h.Logger.Warn("Failed to edit message", zap.Error(err))
		}
		common.LogAndAnswer(hc, "Application rejected via bot", "Заявка отклонена")
	})
}
