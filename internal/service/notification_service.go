package service

import (
	"context"

	"github.com/Freeeeeet/tutor_market/internal/model"
	"go.uber.org/zap"
)

const (
	defaultNotificationLimit = 20
	maxNotificationLimit     = 100
)

type NotificationService struct {
	notificationRepo NotificationStore
	logger           *zap.Logger
}

func NewNotificationService(notificationRepo NotificationStore, logger *zap.Logger) *NotificationService {
	return &NotificationService{
		notificationRepo: notificationRepo,
		logger:           logger,
	}
}

// Send сохраняет уведомление во входящих. Отправка в Telegram идёт отдельно, через диспетчер.
func (s *NotificationService) Send(ctx context.Context, n *model.Notification) error {
	if err := s.notificationRepo.Create(ctx, n); err != nil {
		return err
	}

	s.logger.Debug("Notification stored",
		zap.Int64("notification_id", n.ID),
		zap.String("user_id", n.UserID),
		zap.String("type", string(n.Type)),
	)

	return nil
}

// List получает уведомления пользователя постранично
func (s *NotificationService) List(ctx context.Context, userID string, limit, offset int) ([]*model.Notification, error) {
	if limit <= 0 {
		limit = defaultNotificationLimit
	}
	if limit > maxNotificationLimit {
		limit = maxNotificationLimit
	}
	if offset < 0 {
		offset = 0
	}

	return s.notificationRepo.ListByUser(ctx, userID, limit, offset)
}

// UnreadCount считает непрочитанные уведомления
func (s *NotificationService) UnreadCount(ctx context.Context, userID string) (int, error) {
	return s.notificationRepo.CountUnread(ctx, userID)
}

// MarkRead отмечает уведомление пользователя прочитанным
func (s *NotificationService) MarkRead(ctx context.Context, id int64, userID string) error {
	ok, err := s.notificationRepo.MarkRead(ctx, id, userID)
	if err != nil {
		return err
	}
	if !ok {
		return model.ErrNotificationNotFound
	}
	return nil
}

// MarkAllRead отмечает все уведомления прочитанными и возвращает их количество
func (s *NotificationService) MarkAllRead(ctx context.Context, userID string) (int64, error) {
	return s.notificationRepo.MarkAllRead(ctx, userID)
}
