package callbacktypes

import (
	"context"

	"github.com/Freeeeeet/tutor_market/internal/model"
	"go.uber.org/zap"
)

// UserService поиск и привязка пользователей к чатам Telegram
type UserService interface {
	GetByTelegramChatID(ctx context.Context, chatID int64) (*model.User, error)
	LinkTelegram(ctx context.Context, userID string, chatID int64) (*model.User, error)
}

// MatchingService операции над заявками и встречами, доступные из бота
type MatchingService interface {
	AcceptApplication(ctx context.Context, id int64) (bool, error)
	RejectApplication(ctx context.Context, id int64) (bool, error)
	IsListingOwner(ctx context.Context, applicationID int64, userID string) (bool, error)
	ListPendingApplicationsForOwner(ctx context.Context, ownerID string) ([]*model.Application, error)

	GetAppointment(ctx context.Context, id int64) (*model.Appointment, error)
	ListAppointmentsByUser(ctx context.Context, userID string) ([]*model.Appointment, error)
	ConfirmAppointment(ctx context.Context, id int64) (bool, error)
	CancelAppointment(ctx context.Context, id int64) (bool, error)
	CompleteAppointment(ctx context.Context, id int64) (bool, error)
}

// Handler содержит общие зависимости для всех callback handlers
type Handler struct {
	UserService     UserService
	MatchingService MatchingService
	Logger          *zap.Logger
}
