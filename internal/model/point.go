package model

import "time"

// Типы начислений
const (
	PointTypeReward = "reward"
	PointTypeAdmin  = "admin"
)

// Награды за проведённое занятие
const (
	TutorCompletionPoints   = 10
	StudentCompletionPoints = 5
)

type PointRecord struct {
	ID          int64     `json:"id"`
	UserID      string    `json:"user_id"`
	Points      int       `json:"points"`
	Type        string    `json:"type"`
	Description string    `json:"description"`
	CreatedAt   time.Time `json:"created_at"`
}
