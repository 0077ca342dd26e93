package repository

import (
	"context"
	"fmt"

	"github.com/Freeeeeet/tutor_market/internal/model"
	"github.com/Freeeeeet/tutor_market/internal/repository/base"
	"github.com/jackc/pgx/v5/pgxpool"
)

type NotificationRepository struct {
	*base.Repository
}

func NewNotificationRepository(pool *pgxpool.Pool) *NotificationRepository {
	return &NotificationRepository{Repository: base.NewRepository(pool)}
}

// PendingDelivery уведомление, ожидающее отправки в Telegram
type PendingDelivery struct {
	Notification *model.Notification
	ChatID       int64
	Attempts     int // неудачных попыток до этого прохода
}

const notificationColumns = `id, user_id, type, title, content, related_id, related_type, is_read, delivered_at, created_at`

func scanNotification(row scanner) (*model.Notification, error) {
	var n model.Notification
	err := row.Scan(
		&n.ID,
		&n.UserID,
		&n.Type,
		&n.Title,
		&n.Content,
		&n.RelatedID,
		&n.RelatedType,
		&n.IsRead,
		&n.DeliveredAt,
		&n.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &n, nil
}

// Create сохраняет уведомление во входящих пользователя
func (r *NotificationRepository) Create(ctx context.Context, n *model.Notification) error {
	query := `
		INSERT INTO notifications (user_id, type, title, content, related_id, related_type)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id, is_read, created_at
	`

	err := r.QueryRow(
		ctx, query,
		n.UserID,
		n.Type,
		n.Title,
		n.Content,
		n.RelatedID,
		n.RelatedType,
	).Scan(&n.ID, &n.IsRead, &n.CreatedAt)

	if err != nil {
		return fmt.Errorf("create notification: %w", err)
	}

	return nil
}

// ListByUser получает уведомления пользователя, новые сверху
func (r *NotificationRepository) ListByUser(ctx context.Context, userID string, limit, offset int) ([]*model.Notification, error) {
	query := `SELECT ` + notificationColumns + ` FROM notifications
		WHERE user_id = $1
		ORDER BY created_at DESC, id DESC
		LIMIT $2 OFFSET $3`

	rows, err := r.Query(ctx, query, userID, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("get notifications: %w", err)
	}
	defer rows.Close()

	var list []*model.Notification
	for rows.Next() {
		n, err := scanNotification(rows)
		if err != nil {
			return nil, fmt.Errorf("scan notification: %w", err)
		}
		list = append(list, n)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate notifications: %w", err)
	}

	return list, nil
}

// CountUnread считает непрочитанные уведомления
func (r *NotificationRepository) CountUnread(ctx context.Context, userID string) (int, error) {
	query := `SELECT COUNT(*) FROM notifications WHERE user_id = $1 AND NOT is_read`

	var count int
	if err := r.QueryRow(ctx, query, userID).Scan(&count); err != nil {
		return 0, fmt.Errorf("count unread notifications: %w", err)
	}

	return count, nil
}

// MarkRead отмечает уведомление прочитанным. false - нет такого уведомления у пользователя
func (r *NotificationRepository) MarkRead(ctx context.Context, id int64, userID string) (bool, error) {
	query := `UPDATE notifications SET is_read = TRUE WHERE id = $1 AND user_id = $2`

	affected, err := r.ExecAffected(ctx, query, id, userID)
	if err != nil {
		return false, fmt.Errorf("mark notification read: %w", err)
	}

	return affected > 0, nil
}

// MarkAllRead отмечает все уведомления пользователя прочитанными
func (r *NotificationRepository) MarkAllRead(ctx context.Context, userID string) (int64, error) {
	query := `UPDATE notifications SET is_read = TRUE WHERE user_id = $1 AND NOT is_read`

	affected, err := r.ExecAffected(ctx, query, userID)
	if err != nil {
		return 0, fmt.Errorf("mark all notifications read: %w", err)
	}

	return affected, nil
}

// ListUndelivered получает неотправленные уведомления пользователей с привязанным Telegram.
// Сначала ещё не пробованные, затем те, что пробовали давнее всего.
func (r *NotificationRepository) ListUndelivered(ctx context.Context, limit int) ([]PendingDelivery, error) {
	query := `
		SELECT n.id, n.user_id, n.type, n.title, n.content, n.related_id, n.related_type,
			n.is_read, n.delivered_at, n.created_at, u.telegram_chat_id, n.delivery_attempts
		FROM notifications n
		JOIN users u ON u.id = n.user_id
		WHERE n.delivered_at IS NULL AND n.failed_at IS NULL AND u.telegram_chat_id IS NOT NULL
		ORDER BY n.last_attempt_at NULLS FIRST, n.id
		LIMIT $1
	`

	rows, err := r.Query(ctx, query, limit)
	if err != nil {
		return nil, fmt.Errorf("get undelivered notifications: %w", err)
	}
	defer rows.Close()

	var pending []PendingDelivery
	for rows.Next() {
		var (
			n        model.Notification
			chatID   int64
			attempts int
		)
		err := rows.Scan(
			&n.ID,
			&n.UserID,
			&n.Type,
			&n.Title,
			&n.Content,
			&n.RelatedID,
			&n.RelatedType,
			&n.IsRead,
			&n.DeliveredAt,
			&n.CreatedAt,
			&chatID,
			&attempts,
		)
		if err != nil {
			return nil, fmt.Errorf("scan undelivered notification: %w", err)
		}
		pending = append(pending, PendingDelivery{Notification: &n, ChatID: chatID, Attempts: attempts})
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate undelivered notifications: %w", err)
	}

	return pending, nil
}

// MarkDelivered отмечает уведомление отправленным
func (r *NotificationRepository) MarkDelivered(ctx context.Context, id int64) error {
	query := `UPDATE notifications SET delivered_at = NOW() WHERE id = $1`

	if _, err := r.ExecAffected(ctx, query, id); err != nil {
		return fmt.Errorf("mark notification delivered: %w", err)
	}

	return nil
}

// MarkFailed записывает неудачную попытку. giveUp исключает уведомление из доставки
func (r *NotificationRepository) MarkFailed(ctx context.Context, id int64, giveUp bool) error {
	query := `
		UPDATE notifications
		SET delivery_attempts = delivery_attempts + 1,
			last_attempt_at = NOW(),
			failed_at = CASE WHEN $2 THEN NOW() ELSE failed_at END
		WHERE id = $1
	`

	if _, err := r.ExecAffected(ctx, query, id, giveUp); err != nil {
		return fmt.Errorf("mark notification failed: %w", err)
	}

	return nil
}
