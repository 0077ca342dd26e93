package model

import (
	"fmt"
	"time"
)

type ApplicationStatus string

const (
	ApplicationStatusPending   ApplicationStatus = "pending"   // Ожидает решения владельца
	ApplicationStatusAccepted  ApplicationStatus = "accepted"  // Принята, создана встреча
	ApplicationStatusRejected  ApplicationStatus = "rejected"  // Отклонена
	ApplicationStatusConfirmed ApplicationStatus = "confirmed" // Подтверждена кандидатом
)

// ParseApplicationStatus validates a status coming from the outside
func ParseApplicationStatus(s string) (ApplicationStatus, error) {
	switch st := ApplicationStatus(s); st {
	case ApplicationStatusPending, ApplicationStatusAccepted, ApplicationStatusRejected, ApplicationStatusConfirmed:
		return st, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrInvalidStatus, s)
	}
}

// Application is a candidate's bid to fulfil a listing.
//
// ApplicantName and ApplicantPhone are a point-in-time copy taken when the
// application is created; later profile changes are not reflected here.
type Application struct {
	ID             int64             `json:"id"`
	ListingID      int64             `json:"listing_id"`
	ListingType    ListingType       `json:"listing_type"`
	ApplicantID    string            `json:"applicant_id"`
	ApplicantName  string            `json:"applicant_name"`
	ApplicantPhone string            `json:"applicant_phone"`
	Message        string            `json:"message"`
	Status         ApplicationStatus `json:"status"`
	CreatedAt      time.Time         `json:"created_at"`
	UpdatedAt      time.Time         `json:"updated_at"`
}

// IsPending checks if application is pending
func (a *Application) IsPending() bool {
	return a.Status == ApplicationStatusPending
}

// IsAccepted checks if application is accepted
func (a *Application) IsAccepted() bool {
	return a.Status == ApplicationStatusAccepted
}

// HoldsListing сообщает, что по заявке уже есть встреча: accepted или confirmed
func (a *Application) HoldsListing() bool {
	return a.Status == ApplicationStatusAccepted || a.Status == ApplicationStatusConfirmed
}
