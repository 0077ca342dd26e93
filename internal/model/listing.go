package model

import (
	"fmt"
	"time"
)

// ListingType identifies which kind of published need a listing is
type ListingType string

const (
	ListingTypeStudentRequest ListingType = "student_request" // Заявка ученика
	ListingTypeTutorProfile   ListingType = "tutor_profile"   // Анкета репетитора
)

// ParseListingType validates a listing type coming from the outside
func ParseListingType(s string) (ListingType, error) {
	t := ListingType(s)
	if !t.Valid() {
		return "", fmt.Errorf("%w: %q", ErrInvalidListingType, s)
	}
	return t, nil
}

// Valid checks if the type is one of the known variants
func (t ListingType) Valid() bool {
	return t == ListingTypeStudentRequest || t == ListingTypeTutorProfile
}

// OpenStatus returns the status of a listing that still accepts applications
func (t ListingType) OpenStatus() ListingStatus {
	if t == ListingTypeTutorProfile {
		return ListingStatusAvailable
	}
	return ListingStatusRecruiting
}

// ClosedStatus returns the status set once an application is accepted
func (t ListingType) ClosedStatus() ListingStatus {
	if t == ListingTypeTutorProfile {
		return ListingStatusBusy
	}
	return ListingStatusClosed
}

// DisplayName returns a human readable name used in notifications
func (t ListingType) DisplayName() string {
	if t == ListingTypeTutorProfile {
		return "tutor profile"
	}
	return "student request"
}

type ListingStatus string

const (
	ListingStatusRecruiting ListingStatus = "recruiting" // student_request: набор открыт
	ListingStatusClosed     ListingStatus = "closed"     // student_request: репетитор найден
	ListingStatusAvailable  ListingStatus = "available"  // tutor_profile: принимает учеников
	ListingStatusBusy       ListingStatus = "busy"       // tutor_profile: занят
)

// Listing is a published need (student request) or offer (tutor profile).
// Exactly one of Request / Profile is set, matching Type.
type Listing struct {
	ID            int64         `json:"id"`
	Type          ListingType   `json:"type"`
	OwnerID       string        `json:"owner_id"`
	SubjectID     int64         `json:"subject_id"`
	SubjectName   string        `json:"subject_name"`
	Address       string        `json:"address"`
	Latitude      float64       `json:"latitude"`
	Longitude     float64       `json:"longitude"`
	AvailableTime string        `json:"available_time"`
	Status        ListingStatus `json:"status"`
	CreatedAt     time.Time     `json:"created_at"`
	UpdatedAt     time.Time     `json:"updated_at"`

	Request *StudentRequestDetails `json:"request,omitempty"`
	Profile *TutorProfileDetails   `json:"profile,omitempty"`
}

// StudentRequestDetails holds the fields specific to a student request
type StudentRequestDetails struct {
	ChildName     string `json:"child_name"`
	ChildGrade    string `json:"child_grade"`
	HourlyRateMin Money  `json:"hourly_rate_min"`
	HourlyRateMax Money  `json:"hourly_rate_max"`
	Requirements  string `json:"requirements"`
}

// TutorProfileDetails holds the fields specific to a tutor profile
type TutorProfileDetails struct {
	HourlyRate        Money  `json:"hourly_rate"`
	Description       string `json:"description"`
	TargetGradeLevels string `json:"target_grade_levels"`
}

// IsOpen checks if the listing still accepts applications
func (l *Listing) IsOpen() bool {
	return l.Status == l.Type.OpenStatus()
}
