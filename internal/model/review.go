package model

import "time"

const (
	MinRating = 1
	MaxRating = 5
)

// Review отзыв одной стороны завершённой встречи о другой
type Review struct {
	ID            int64     `json:"id"`
	AppointmentID int64     `json:"appointment_id"`
	ReviewerID    string    `json:"reviewer_id"`
	ReviewedID    string    `json:"reviewed_id"`
	Rating        int       `json:"rating"`
	Comment       string    `json:"comment"`
	CreatedAt     time.Time `json:"created_at"`
}

// RatingSummary средняя оценка пользователя по полученным отзывам
type RatingSummary struct {
	UserID      string  `json:"user_id"`
	Rating      float64 `json:"rating"`
	ReviewCount int     `json:"review_count"`
}
