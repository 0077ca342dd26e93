package model

import "errors"

// Категории ошибок. Каждая доменная ошибка принадлежит одной из них,
// поэтому на границе (HTTP, Telegram) достаточно errors.Is по категории.
var (
	ErrNotFound          = errors.New("not found")
	ErrConflict          = errors.New("conflict")
	ErrForbidden         = errors.New("forbidden")
	ErrInvalidTransition = errors.New("invalid transition")
	ErrValidation        = errors.New("validation error")
)

// kindError связывает конкретную ошибку с её категорией
type kindError struct {
	kind error
	msg  string
}

func (e *kindError) Error() string { return e.msg }

func (e *kindError) Is(target error) bool { return target == e.kind }

func newKind(kind error, msg string) error {
	return &kindError{kind: kind, msg: msg}
}

// NotFound
var (
	ErrListingNotFound      = newKind(ErrNotFound, "listing not found")
	ErrApplicationNotFound  = newKind(ErrNotFound, "application not found")
	ErrAppointmentNotFound  = newKind(ErrNotFound, "appointment not found")
	ErrUserNotFound         = newKind(ErrNotFound, "user not found")
	ErrNotificationNotFound = newKind(ErrNotFound, "notification not found")
	ErrBlacklistNotFound    = newKind(ErrNotFound, "blacklist entry not found")
	ErrReviewNotFound       = newKind(ErrNotFound, "review not found")
)

// Conflict
var (
	ErrDuplicateApplication = newKind(ErrConflict, "you have already applied to this listing")
	ErrAlreadyAccepted      = newKind(ErrConflict, "another application for this listing is already accepted")
	ErrAlreadyBlocked       = newKind(ErrConflict, "user is already in the blacklist")
	ErrUserExists           = newKind(ErrConflict, "user already exists")
	ErrDuplicateReview      = newKind(ErrConflict, "you have already reviewed this appointment")
)

// Forbidden
var (
	ErrSelfApplication     = newKind(ErrForbidden, "cannot apply to your own listing")
	ErrBlockedByOwner      = newKind(ErrForbidden, "the listing owner has blacklisted you")
	ErrBlockedOwner        = newKind(ErrForbidden, "you have blacklisted the listing owner")
	ErrSelfBooking         = newKind(ErrForbidden, "cannot book an appointment with yourself")
	ErrBlockedRelationship = newKind(ErrForbidden, "one of the parties has blacklisted the other")
	ErrUserDisabled        = newKind(ErrForbidden, "user account is disabled")
	ErrSelfBlock           = newKind(ErrForbidden, "cannot blacklist yourself")
	ErrReviewerNotParty    = newKind(ErrForbidden, "only a party of the appointment can review it")
)

// InvalidTransition
var (
	ErrApplicationNotPending  = newKind(ErrInvalidTransition, "application is not pending")
	ErrApplicationNotAccepted = newKind(ErrInvalidTransition, "application is not accepted")
	ErrAppointmentTransition  = newKind(ErrInvalidTransition, "appointment status does not allow this change")
	ErrAppointmentNotFinished = newKind(ErrInvalidTransition, "only completed appointments can be reviewed")
)

// Validation
var (
	ErrInvalidListingType = newKind(ErrValidation, "invalid listing type")
	ErrInvalidStatus      = newKind(ErrValidation, "invalid status")
	ErrTimeRequired       = newKind(ErrValidation, "appointment time is required")
)
