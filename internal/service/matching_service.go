package service

import (
	"context"
	"fmt"

	"github.com/Freeeeeet/tutor_market/internal/model"
	"go.uber.org/zap"
)

// MatchingService точка входа для HTTP и Telegram: сценарии заявок и встреч
type MatchingService struct {
	applications *ApplicationService
	appointments *AppointmentService
	listingRepo  ListingStore
	users        UserDirectory
	logger       *zap.Logger
}

func NewMatchingService(
	applications *ApplicationService,
	appointments *AppointmentService,
	listingRepo ListingStore,
	users UserDirectory,
	logger *zap.Logger,
) *MatchingService {
	return &MatchingService{
		applications: applications,
		appointments: appointments,
		listingRepo:  listingRepo,
		users:        users,
		logger:       logger,
	}
}

// ApplyToListing проверяет объявление и подаёт заявку
func (s *MatchingService) ApplyToListing(ctx context.Context, listingID int64, listingType model.ListingType, applicantID, message string) (*model.Application, error) {
	if !listingType.Valid() {
		return nil, model.ErrInvalidListingType
	}

	listing, err := s.listingRepo.GetByID(ctx, listingID, listingType)
	if err != nil {
		return nil, fmt.Errorf("get listing: %w", err)
	}
	if listing == nil {
		return nil, model.ErrListingNotFound
	}
	if listing.OwnerID == applicantID {
		return nil, model.ErrSelfApplication
	}

	return s.applications.Submit(ctx, listingID, listingType, applicantID, message)
}

func (s *MatchingService) AcceptApplication(ctx context.Context, id int64) (bool, error) {
	return s.applications.TransitionStatus(ctx, id, model.ApplicationStatusAccepted)
}

func (s *MatchingService) RejectApplication(ctx context.Context, id int64) (bool, error) {
	return s.applications.TransitionStatus(ctx, id, model.ApplicationStatusRejected)
}

func (s *MatchingService) ConfirmApplication(ctx context.Context, id int64) (bool, error) {
	return s.applications.Confirm(ctx, id)
}

// UpdateApplicationStatus меняет статус заявки по строке извне
func (s *MatchingService) UpdateApplicationStatus(ctx context.Context, id int64, status string) (bool, error) {
	st, err := model.ParseApplicationStatus(status)
	if err != nil {
		return false, err
	}
	return s.applications.TransitionStatus(ctx, id, st)
}

// BookDirectly записывает на встречу без заявки. Обе стороны должны существовать и быть активны.
func (s *MatchingService) BookDirectly(ctx context.Context, appt *model.Appointment) (*model.Appointment, error) {
	if appt.TutorID == appt.StudentID {
		return nil, model.ErrSelfBooking
	}
	if appt.AppointmentTime.IsZero() {
		return nil, model.ErrTimeRequired
	}

	for _, id := range []string{appt.TutorID, appt.StudentID} {
		user, err := s.users.GetByID(ctx, id)
		if err != nil {
			return nil, fmt.Errorf("get user: %w", err)
		}
		if user == nil {
			return nil, fmt.Errorf("%w: %s", model.ErrUserNotFound, id)
		}
		if !user.IsActive() {
			return nil, fmt.Errorf("%w: %s", model.ErrUserDisabled, id)
		}
	}

	appt.RequestID = nil
	appt.RequestType = nil

	return s.appointments.Create(ctx, appt)
}

func (s *MatchingService) ConfirmAppointment(ctx context.Context, id int64) (bool, error) {
	return s.appointments.Confirm(ctx, id)
}

func (s *MatchingService) CancelAppointment(ctx context.Context, id int64) (bool, error) {
	return s.appointments.Cancel(ctx, id)
}

func (s *MatchingService) CompleteAppointment(ctx context.Context, id int64) (bool, error) {
	return s.appointments.Complete(ctx, id)
}

func (s *MatchingService) GetApplication(ctx context.Context, id int64) (*model.Application, error) {
	return s.applications.GetByID(ctx, id)
}

func (s *MatchingService) ListApplicationsByListing(ctx context.Context, listingID int64, listingType model.ListingType) ([]*model.Application, error) {
	return s.applications.ListByListing(ctx, listingID, listingType)
}

func (s *MatchingService) ListApplicationsByApplicant(ctx context.Context, applicantID string) ([]*model.Application, error) {
	return s.applications.ListByApplicant(ctx, applicantID)
}

func (s *MatchingService) ListPendingApplicationsForOwner(ctx context.Context, ownerID string) ([]*model.Application, error) {
	return s.applications.ListPendingForOwner(ctx, ownerID)
}

func (s *MatchingService) GetAppointment(ctx context.Context, id int64) (*model.Appointment, error) {
	return s.appointments.GetByID(ctx, id)
}

func (s *MatchingService) ListAppointmentsByUser(ctx context.Context, userID string) ([]*model.Appointment, error) {
	return s.appointments.ListByUser(ctx, userID)
}

func (s *MatchingService) ListAppointmentsByTutor(ctx context.Context, tutorID string) ([]*model.Appointment, error) {
	return s.appointments.ListByTutor(ctx, tutorID)
}

// IsListingOwner проверяет, что userID владеет объявлением, на которое подана заявка
func (s *MatchingService) IsListingOwner(ctx context.Context, applicationID int64, userID string) (bool, error) {
	app, err := s.applications.GetByID(ctx, applicationID)
	if err != nil {
		return false, err
	}

	listing, err := s.listingRepo.GetByID(ctx, app.ListingID, app.ListingType)
	if err != nil {
		return false, fmt.Errorf("get listing: %w", err)
	}
	if listing == nil {
		return false, model.ErrListingNotFound
	}

	return listing.OwnerID == userID, nil
}
