package model

import "time"

type UserRole string

const (
	UserRoleStudent UserRole = "student"
	UserRoleTutor   UserRole = "tutor"
	UserRoleAdmin   UserRole = "admin"
)

type UserStatus string

const (
	UserStatusActive   UserStatus = "active"
	UserStatusDisabled UserStatus = "disabled"
)

type User struct {
	ID             string     `json:"id"`
	Username       string     `json:"username"`
	Phone          string     `json:"phone"`
	Role           UserRole   `json:"role"`
	Status         UserStatus `json:"status"`
	Points         int        `json:"points"`
	TelegramChatID *int64     `json:"telegram_chat_id,omitempty"` // nil - Telegram не привязан
	CreatedAt      time.Time  `json:"created_at"`
}

// IsActive checks if the account may take part in bookings
func (u *User) IsActive() bool {
	return u.Status == UserStatusActive
}
