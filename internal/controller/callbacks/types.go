package callbacks

import (
	"context"

	"github.com/Freeeeeet/tutor_market/internal/controller/callbacks/callbacktypes"
	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
	"go.uber.org/zap"
)

// Handler обертка для callbacktypes.Handler с методами
type Handler struct {
	*callbacktypes.Handler
}

// NewHandler создаёт новый обработчик callbacks с зависимостями
func NewHandler(
	userService callbacktypes.UserService,
	matchingService callbacktypes.MatchingService,
	logger *zap.Logger,
) *Handler {
	return &Handler{Handler: &callbacktypes.Handler{
		UserService:     userService,
		MatchingService: matchingService,
		Logger:          logger,
	}}
}

// HandleCallbackQuery - главный обработчик callback queries
func (h *Handler) HandleCallbackQuery(ctx context.Context, b *bot.Bot, update *models.Update) {
	if update.CallbackQuery == nil {
		return
	}

	callback := update.CallbackQuery

	h.Logger.Info("Callback received",
		zap.String("data", callback.Data),
		zap.Int64("telegram_id", callback.From.ID),
	)

	Route(ctx, b, callback, h.Handler)
}
