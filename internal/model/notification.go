package model

import (
	"errors"
	"time"
)

// ErrChatUnreachable Telegram отказал навсегда: бот заблокирован или чата нет
var ErrChatUnreachable = errors.New("telegram chat unreachable")

type NotificationType string

const (
	NotificationApplication          NotificationType = "application"
	NotificationApplicationAccepted  NotificationType = "application_accepted"
	NotificationApplicationRejected  NotificationType = "application_rejected"
	NotificationApplicationConfirmed NotificationType = "application_confirmed"
	NotificationAppointmentConfirmed NotificationType = "appointment_confirmed"
	NotificationAppointmentCancelled NotificationType = "appointment_cancelled"
	NotificationAppointmentCompleted NotificationType = "appointment_completed"
	NotificationReview               NotificationType = "review"
)

// Типы связанных сущностей
const (
	RelatedTypeApplication = "application"
	RelatedTypeAppointment = "appointment"
	RelatedTypeReview      = "review"
)

// Notification is a one-way message in a user's inbox
type Notification struct {
	ID          int64            `json:"id"`
	UserID      string           `json:"user_id"`
	Type        NotificationType `json:"type"`
	Title       string           `json:"title"`
	Content     string           `json:"content"`
	RelatedID   string           `json:"related_id"`
	RelatedType string           `json:"related_type"`
	IsRead      bool             `json:"is_read"`
	DeliveredAt *time.Time       `json:"delivered_at,omitempty"` // отправлено в Telegram
	CreatedAt   time.Time        `json:"created_at"`
}
