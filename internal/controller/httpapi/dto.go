package httpapi

import (
	"time"

	"github.com/Freeeeeet/tutor_market/internal/model"
)

type CreateApplicationRequest struct {
	ListingID   int64  `json:"listing_id" binding:"required,gt=0"`
	ListingType string `json:"listing_type" binding:"required"`
	Message     string `json:"message" binding:"max=1000"`
}

type UpdateApplicationStatusRequest struct {
	Status string `json:"status" binding:"required"`
}

type BookAppointmentRequest struct {
	TutorID         string      `json:"tutor_id" binding:"required"`
	StudentID       string      `json:"student_id" binding:"required"`
	SubjectID       int64       `json:"subject_id" binding:"gte=0"`
	SubjectName     string      `json:"subject_name" binding:"required,max=100"`
	AppointmentTime time.Time   `json:"appointment_time" binding:"required"`
	Duration        int         `json:"duration" binding:"gte=0,lte=480"`
	Address         string      `json:"address" binding:"max=255"`
	Latitude        float64     `json:"latitude"`
	Longitude       float64     `json:"longitude"`
	HourlyRate      model.Money `json:"hourly_rate" binding:"gte=0"`
	TotalAmount     model.Money `json:"total_amount" binding:"gte=0"`
	Notes           string      `json:"notes" binding:"max=1000"`
}

func (r BookAppointmentRequest) toModel() *model.Appointment {
	return &model.Appointment{
		TutorID:         r.TutorID,
		StudentID:       r.StudentID,
		SubjectID:       r.SubjectID,
		SubjectName:     r.SubjectName,
		AppointmentTime: r.AppointmentTime,
		Duration:        r.Duration,
		Address:         r.Address,
		Latitude:        r.Latitude,
		Longitude:       r.Longitude,
		HourlyRate:      r.HourlyRate,
		TotalAmount:     r.TotalAmount,
		Notes:           r.Notes,
	}
}

// CreateListingRequest общий для заявок учеников и анкет репетиторов.
// Тип объявления задаётся маршрутом.
type CreateListingRequest struct {
	SubjectID     int64   `json:"subject_id"`
	SubjectName   string  `json:"subject_name"`
	Address       string  `json:"address"`
	Latitude      float64 `json:"latitude"`
	Longitude     float64 `json:"longitude"`
	AvailableTime string  `json:"available_time"`

	ChildName     string      `json:"child_name"`
	ChildGrade    string      `json:"child_grade"`
	HourlyRateMin model.Money `json:"hourly_rate_min"`
	HourlyRateMax model.Money `json:"hourly_rate_max"`
	Requirements  string      `json:"requirements"`

	HourlyRate        model.Money `json:"hourly_rate"`
	Description       string      `json:"description"`
	TargetGradeLevels string      `json:"target_grade_levels"`
}

type RegisterUserRequest struct {
	ID       string `json:"id" binding:"required,max=64"`
	Username string `json:"username" binding:"required,max=100"`
	Phone    string `json:"phone" binding:"max=32"`
	Role     string `json:"role"`
}

// CreateReviewRequest автор отзыва берётся из X-User-ID
type CreateReviewRequest struct {
	AppointmentID int64  `json:"appointment_id" binding:"required,gt=0"`
	Rating        int    `json:"rating" binding:"required,min=1,max=5"`
	Comment       string `json:"comment" binding:"max=1000"`
}

type BlockUserRequest struct {
	BlockedUserID string `json:"blocked_user_id" binding:"required"`
}

type PointsResponse struct {
	UserID  string               `json:"user_id"`
	Total   int                  `json:"total"`
	Records []*model.PointRecord `json:"records"`
}

type UnreadCountResponse struct {
	Count int `json:"count"`
}
