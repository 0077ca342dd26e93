package model

import "time"

type AppointmentStatus string

const (
	AppointmentStatusPending   AppointmentStatus = "pending"   // Ожидает подтверждения репетитором
	AppointmentStatusConfirmed AppointmentStatus = "confirmed" // Подтверждена
	AppointmentStatusCancelled AppointmentStatus = "cancelled" // Отменена
	AppointmentStatusCompleted AppointmentStatus = "completed" // Проведена
)

// DefaultAppointmentDuration длительность занятия по умолчанию, в минутах
const DefaultAppointmentDuration = 60

// Допустимые переходы. pending -> completed разрешён: подтверждение можно пропустить.
var appointmentTransitions = map[AppointmentStatus][]AppointmentStatus{
	AppointmentStatusPending: {
		AppointmentStatusConfirmed,
		AppointmentStatusCancelled,
		AppointmentStatusCompleted,
	},
	AppointmentStatusConfirmed: {
		AppointmentStatusCancelled,
		AppointmentStatusCompleted,
	},
}

// CanTransitionTo checks if the appointment may move from s to next
func (s AppointmentStatus) CanTransitionTo(next AppointmentStatus) bool {
	for _, allowed := range appointmentTransitions[s] {
		if allowed == next {
			return true
		}
	}
	return false
}

// IsTerminal checks if no further transitions are possible
func (s AppointmentStatus) IsTerminal() bool {
	return len(appointmentTransitions[s]) == 0
}

type Appointment struct {
	ID              int64             `json:"id"`
	TutorID         string            `json:"tutor_id"`
	StudentID       string            `json:"student_id"`
	SubjectID       int64             `json:"subject_id"`
	SubjectName     string            `json:"subject_name"`
	AppointmentTime time.Time         `json:"appointment_time"`
	Duration        int               `json:"duration"` // в минутах
	Address         string            `json:"address"`
	Latitude        float64           `json:"latitude"`
	Longitude       float64           `json:"longitude"`
	HourlyRate      Money             `json:"hourly_rate"`
	TotalAmount     Money             `json:"total_amount"`
	Status          AppointmentStatus `json:"status"`
	Notes           string            `json:"notes"`
	RequestID       *int64            `json:"request_id,omitempty"`   // nil для прямой записи
	RequestType     *ListingType      `json:"request_type,omitempty"` // nil для прямой записи
	CreatedAt       time.Time         `json:"created_at"`
	UpdatedAt       time.Time         `json:"updated_at"`
}

// HasParty checks if the user is the tutor or the student of the appointment
func (a *Appointment) HasParty(userID string) bool {
	return a.TutorID == userID || a.StudentID == userID
}
