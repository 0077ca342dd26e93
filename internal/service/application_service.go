package service

import (
	"context"
	"fmt"
	"strconv"

	"github.com/Freeeeeet/tutor_market/internal/model"
	"go.uber.org/zap"
)

// ApplicationService ведёт заявки на объявления: подача, принятие с отклонением
// остальных заявок объявления, подтверждение кандидатом.
type ApplicationService struct {
	tx              Transactor
	applicationRepo ApplicationStore
	listingRepo     ListingStore
	users           UserDirectory
	blacklist       BlacklistOracle
	notifications   NotificationSink
	materializer    Materializer
	logger          *zap.Logger
}

func NewApplicationService(
	tx Transactor,
	applicationRepo ApplicationStore,
	listingRepo ListingStore,
	users UserDirectory,
	blacklist BlacklistOracle,
	notifications NotificationSink,
	materializer Materializer,
	logger *zap.Logger,
) *ApplicationService {
	return &ApplicationService{
		tx:              tx,
		applicationRepo: applicationRepo,
		listingRepo:     listingRepo,
		users:           users,
		blacklist:       blacklist,
		notifications:   notifications,
		materializer:    materializer,
		logger:          logger,
	}
}

// Submit подаёт заявку кандидата на объявление
func (s *ApplicationService) Submit(ctx context.Context, listingID int64, listingType model.ListingType, applicantID, message string) (*model.Application, error) {
	if !listingType.Valid() {
		return nil, model.ErrInvalidListingType
	}

	var app *model.Application

	err := s.tx.WithinTx(ctx, func(ctx context.Context) error {
		exists, err := s.applicationRepo.Exists(ctx, listingID, listingType, applicantID)
		if err != nil {
			return err
		}
		if exists {
			return model.ErrDuplicateApplication
		}

		listing, err := s.listingRepo.GetByID(ctx, listingID, listingType)
		if err != nil {
			return fmt.Errorf("get listing: %w", err)
		}
		if listing == nil {
			return model.ErrListingNotFound
		}

		if listing.OwnerID == applicantID {
			return model.ErrSelfApplication
		}

		// Проверяем чёрный список в обе стороны
		blocked, err := s.blacklist.IsBlocked(ctx, listing.OwnerID, applicantID)
		if err != nil {
			return fmt.Errorf("check blacklist: %w", err)
		}
		if blocked {
			return model.ErrBlockedByOwner
		}

		blocked, err = s.blacklist.IsBlocked(ctx, applicantID, listing.OwnerID)
		if err != nil {
			return fmt.Errorf("check blacklist: %w", err)
		}
		if blocked {
			return model.ErrBlockedOwner
		}

		app = &model.Application{
			ListingID:   listingID,
			ListingType: listingType,
			ApplicantID: applicantID,
			Message:     message,
			Status:      model.ApplicationStatusPending,
		}

		// Снимок имени и телефона на момент подачи
		applicant, err := s.users.GetByID(ctx, applicantID)
		if err != nil {
			return fmt.Errorf("get applicant: %w", err)
		}
		if applicant != nil {
			app.ApplicantName = applicant.Username
			app.ApplicantPhone = applicant.Phone
		}

		if err := s.applicationRepo.Create(ctx, app); err != nil {
			return err
		}

		name := app.ApplicantName
		if name == "" {
			name = applicantID
		}

		return s.notify(ctx, &model.Notification{
			UserID:      listing.OwnerID,
			Type:        model.NotificationApplication,
			Title:       "New application",
			Content:     fmt.Sprintf("%s applied to your %s", name, listingType.DisplayName()),
			RelatedID:   strconv.FormatInt(app.ID, 10),
			RelatedType: model.RelatedTypeApplication,
		})
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("Application submitted",
		zap.Int64("application_id", app.ID),
		zap.Int64("listing_id", listingID),
		zap.String("listing_type", string(listingType)),
		zap.String("applicant_id", applicantID),
	)

	return app, nil
}

// TransitionStatus меняет статус заявки. false - заявка не найдена.
// accepted запускает принятие: остальные заявки объявления отклоняются, создаётся встреча.
func (s *ApplicationService) TransitionStatus(ctx context.Context, applicationID int64, status model.ApplicationStatus) (bool, error) {
	switch status {
	case model.ApplicationStatusAccepted:
		return s.accept(ctx, applicationID)
	case model.ApplicationStatusPending, model.ApplicationStatusRejected, model.ApplicationStatusConfirmed:
	default:
		return false, fmt.Errorf("%w: %q", model.ErrInvalidStatus, status)
	}

	updated, err := s.applicationRepo.UpdateStatus(ctx, applicationID, status)
	if err != nil {
		return false, err
	}

	if updated {
		s.logger.Info("Application status updated",
			zap.Int64("application_id", applicationID),
			zap.String("status", string(status)),
		)
	}

	return updated, nil
}

func (s *ApplicationService) accept(ctx context.Context, applicationID int64) (bool, error) {
	var (
		accepted *model.Application
		rejected []*model.Application
		appt     *model.Appointment
	)

	err := s.tx.WithinTx(ctx, func(ctx context.Context) error {
		target, err := s.applicationRepo.GetByID(ctx, applicationID)
		if err != nil {
			return fmt.Errorf("get application: %w", err)
		}
		if target == nil {
			return nil
		}

		// Блокируем все заявки объявления. Конкурентное принятие ждёт здесь
		// и видит уже отклонённую заявку.
		siblings, err := s.applicationRepo.LockByListing(ctx, target.ListingID, target.ListingType)
		if err != nil {
			return err
		}

		var current *model.Application
		for _, sib := range siblings {
			if sib.ID == applicationID {
				current = sib
			}
		}
		if current == nil {
			return model.ErrApplicationNotFound
		}
		if !current.IsPending() {
			return model.ErrApplicationNotPending
		}
		for _, sib := range siblings {
			if sib.ID != applicationID && sib.HoldsListing() {
				return model.ErrAlreadyAccepted
			}
		}

		if _, err := s.applicationRepo.UpdateStatus(ctx, current.ID, model.ApplicationStatusAccepted); err != nil {
			return err
		}
		current.Status = model.ApplicationStatusAccepted
		accepted = current

		for _, sib := range siblings {
			if sib.ID == applicationID {
				continue
			}
			if _, err := s.applicationRepo.UpdateStatus(ctx, sib.ID, model.ApplicationStatusRejected); err != nil {
				return err
			}
			sib.Status = model.ApplicationStatusRejected
			rejected = append(rejected, sib)
		}

		appt, err = s.materializer.MaterializeFromApplication(ctx, current)
		if err != nil {
			return fmt.Errorf("materialize appointment: %w", err)
		}

		err = s.notify(ctx, &model.Notification{
			UserID:      current.ApplicantID,
			Type:        model.NotificationApplicationAccepted,
			Title:       "Application accepted",
			Content:     "Your application has been accepted, please confirm the appointment",
			RelatedID:   strconv.FormatInt(current.ID, 10),
			RelatedType: model.RelatedTypeApplication,
		})
		if err != nil {
			return err
		}

		for _, sib := range rejected {
			err := s.notify(ctx, &model.Notification{
				UserID:      sib.ApplicantID,
				Type:        model.NotificationApplicationRejected,
				Title:       "Application rejected",
				Content:     "Your application has been rejected",
				RelatedID:   strconv.FormatInt(sib.ID, 10),
				RelatedType: model.RelatedTypeApplication,
			})
			if err != nil {
				return err
			}
		}

		return nil
	})
	if err != nil {
		return false, err
	}

	if accepted == nil {
		return false, nil
	}

	fields := []zap.Field{
		zap.Int64("application_id", accepted.ID),
		zap.Int64("listing_id", accepted.ListingID),
		zap.String("listing_type", string(accepted.ListingType)),
		zap.Int("rejected", len(rejected)),
	}
	if appt != nil {
		fields = append(fields, zap.Int64("appointment_id", appt.ID))
	}
	s.logger.Info("Application accepted", fields...)

	return true, nil
}

// Confirm подтверждает принятую заявку. false - заявка не найдена или не в статусе accepted
func (s *ApplicationService) Confirm(ctx context.Context, applicationID int64) (bool, error) {
	var confirmed bool

	err := s.tx.WithinTx(ctx, func(ctx context.Context) error {
		app, err := s.applicationRepo.GetByID(ctx, applicationID)
		if err != nil {
			return fmt.Errorf("get application: %w", err)
		}
		if app == nil || !app.IsAccepted() {
			return nil
		}

		ok, err := s.applicationRepo.UpdateStatusFrom(ctx, applicationID, model.ApplicationStatusAccepted, model.ApplicationStatusConfirmed)
		if err != nil {
			return err
		}
		if !ok {
			return nil
		}

		confirmed = true

		return s.notify(ctx, &model.Notification{
			UserID:      app.ApplicantID,
			Type:        model.NotificationApplicationConfirmed,
			Title:       "Appointment confirmed",
			Content:     "The appointment is confirmed, please attend on time",
			RelatedID:   strconv.FormatInt(app.ID, 10),
			RelatedType: model.RelatedTypeApplication,
		})
	})
	if err != nil {
		return false, err
	}

	if confirmed {
		s.logger.Info("Application confirmed", zap.Int64("application_id", applicationID))
	}

	return confirmed, nil
}

// GetByID получает заявку
func (s *ApplicationService) GetByID(ctx context.Context, id int64) (*model.Application, error) {
	app, err := s.applicationRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if app == nil {
		return nil, model.ErrApplicationNotFound
	}
	return app, nil
}

// ListByListing получает заявки на объявление
func (s *ApplicationService) ListByListing(ctx context.Context, listingID int64, listingType model.ListingType) ([]*model.Application, error) {
	if !listingType.Valid() {
		return nil, model.ErrInvalidListingType
	}
	return s.applicationRepo.ListByListing(ctx, listingID, listingType)
}

// ListByApplicant получает заявки кандидата
func (s *ApplicationService) ListByApplicant(ctx context.Context, applicantID string) ([]*model.Application, error) {
	return s.applicationRepo.ListByApplicant(ctx, applicantID)
}

// ListPendingForOwner получает заявки, ожидающие решения владельца объявлений
func (s *ApplicationService) ListPendingForOwner(ctx context.Context, ownerID string) ([]*model.Application, error) {
	return s.applicationRepo.ListPendingByOwner(ctx, ownerID)
}

func (s *ApplicationService) notify(ctx context.Context, n *model.Notification) error {
	if err := s.notifications.Send(ctx, n); err != nil {
		return fmt.Errorf("send %s notification: %w", n.Type, err)
	}
	return nil
}
