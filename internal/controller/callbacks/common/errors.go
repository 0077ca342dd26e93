package common

import (
	"errors"

	"github.com/Freeeeeet/tutor_market/internal/model"
)

// Общие ошибки для обработчиков
var (
	ErrUserNotLinked       = errors.New("telegram chat is not linked to a user")
	ErrNotAppointmentParty = errors.New("user is not a party of this appointment")
	ErrNotListingOwner     = errors.New("user is not the owner of this listing")
	ErrNoMessage           = errors.New("no message in callback")
	ErrInvalidFormat       = errors.New("invalid callback format")
)

// ErrorMessage возвращает пользовательское сообщение для ошибки
func ErrorMessage(err error) string {
	switch {
	case errors.Is(err, ErrUserNotLinked):
		return "❌ Аккаунт не привязан. Используйте /start <ваш ID>"
	case errors.Is(err, ErrNotAppointmentParty):
		return "❌ Это не ваша встреча"
	case errors.Is(err, ErrNotListingOwner):
		return "❌ Решение по заявке принимает владелец объявления"
	case errors.Is(err, ErrNoMessage):
		return "❌ Ошибка обработки сообщения"
	case errors.Is(err, ErrInvalidFormat):
		return "❌ Неверный формат данных"
	case errors.Is(err, model.ErrAlreadyAccepted):
		return "❌ На это объявление уже принята другая заявка"
	case errors.Is(err, model.ErrBlockedRelationship):
		return "❌ Один из участников добавил другого в чёрный список"
	case errors.Is(err, model.ErrUserDisabled):
		return "❌ Аккаунт отключён"
	case errors.Is(err, model.ErrInvalidTransition):
		return "❌ Статус уже изменился, обновите список"
	case errors.Is(err, model.ErrNotFound):
		return "❌ Не найдено"
	default:
		return "❌ Произошла ошибка"
	}
}
