package model

import "time"

// BlacklistEntry means UserID has blocked BlockedUserID
type BlacklistEntry struct {
	ID            int64     `json:"id"`
	UserID        string    `json:"user_id"`
	BlockedUserID string    `json:"blocked_user_id"`
	CreatedAt     time.Time `json:"created_at"`

	// Не из БД
	BlockedUser *User `json:"blocked_user,omitempty"`
}
