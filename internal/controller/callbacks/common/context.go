package common

import (
	"context"

	"github.com/Freeeeeet/tutor_market/internal/controller/callbacks/callbacktypes"
	"github.com/Freeeeeet/tutor_market/internal/model"
	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
)

// HandlerContext содержит общие данные для обработки callback
type HandlerContext struct {
	Ctx        context.Context
	Bot        *bot.Bot
	Callback   *models.CallbackQuery
	Handler    *callbacktypes.Handler
	Message    *models.Message
	User       *model.User
	TelegramID int64
	ChatID     int64
}

// NewHandlerContext создаёт новый контекст обработчика
func NewHandlerContext(
	ctx context.Context,
	b *bot.Bot,
	callback *models.CallbackQuery,
	h *callbacktypes.Handler,
) *HandlerContext {
	msg := GetMessageFromCallback(callback)
	chatID := callback.From.ID
	if msg != nil {
		chatID = msg.Chat.ID
	}

	return &HandlerContext{
		Ctx:        ctx,
		Bot:        b,
		Callback:   callback,
		Handler:    h,
		Message:    msg,
		TelegramID: callback.From.ID,
		ChatID:     chatID,
	}
}

// LoadUser загружает пользователя, привязанного к чату
func (hc *HandlerContext) LoadUser() error {
	user, err := hc.Handler.UserService.GetByTelegramChatID(hc.Ctx, hc.ChatID)
	if err != nil {
		return err
	}
	if user == nil {
		return ErrUserNotLinked
	}
	hc.User = user
	return nil
}

// RequireUser проверяет что пользователь загружен
func (hc *HandlerContext) RequireUser() error {
	if hc.User == nil {
		return hc.LoadUser()
	}
	return nil
}

// RequireAppointmentParty проверяет что пользователь участник встречи
func (hc *HandlerContext) RequireAppointmentParty(appointmentID int64) (*model.Appointment, error) {
	if err := hc.RequireUser(); err != nil {
		return nil, err
	}

	appt, err := hc.Handler.MatchingService.GetAppointment(hc.Ctx, appointmentID)
	if err != nil {
		return nil, err
	}
	if !appt.HasParty(hc.User.ID) {
		return nil, ErrNotAppointmentParty
	}

	return appt, nil
}

// RequireListingOwner проверяет что пользователь владеет объявлением, на которое подана заявка
func (hc *HandlerContext) RequireListingOwner(applicationID int64) error {
	if err := hc.RequireUser(); err != nil {
		return err
	}

	owner, err := hc.Handler.MatchingService.IsListingOwner(hc.Ctx, applicationID, hc.User.ID)
	if err != nil {
		return err
	}
	if !owner {
		return ErrNotListingOwner
	}
	return nil
}

// Answer отвечает на callback query
func (hc *HandlerContext) Answer(text string) {
	AnswerCallback(hc.Ctx, hc.Bot, hc.Callback.ID, text)
}

// AnswerAlert отвечает на callback query с alert
func (hc *HandlerContext) AnswerAlert(text string) {
	AnswerCallbackAlert(hc.Ctx, hc.Bot, hc.Callback.ID, text)
}

// EditMessage редактирует сообщение
func (hc *HandlerContext) EditMessage(text string, keyboard *models.InlineKeyboardMarkup) error {
	if hc.Message == nil {
		return ErrNoMessage
	}

	params := &bot.EditMessageTextParams{
		ChatID:    hc.ChatID,
		MessageID: hc.Message.ID,
		Text:      text,
		ParseMode: models.ParseModeHTML,
	}
	if keyboard != nil {
		params.ReplyMarkup = keyboard
	}

	_, err := hc.Bot.EditMessageText(hc.Ctx, params)

	if IsMessageNotModifiedError(err) {
		return nil
	}

	return err
}
