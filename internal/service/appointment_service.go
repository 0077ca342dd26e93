package service

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/Freeeeeet/tutor_market/internal/model"
	"go.uber.org/zap"
)

// Встреча из заявки назначается на следующий день, время согласуют стороны
const materializedAppointmentDelay = 24 * time.Hour

type AppointmentService struct {
	tx              Transactor
	appointmentRepo AppointmentStore
	listingRepo     ListingStore
	blacklist       BlacklistOracle
	points          PointsLedger
	notifications   NotificationSink
	logger          *zap.Logger
	now             func() time.Time
}

func NewAppointmentService(
	tx Transactor,
	appointmentRepo AppointmentStore,
	listingRepo ListingStore,
	blacklist BlacklistOracle,
	points PointsLedger,
	notifications NotificationSink,
	logger *zap.Logger,
) *AppointmentService {
	return &AppointmentService{
		tx:              tx,
		appointmentRepo: appointmentRepo,
		listingRepo:     listingRepo,
		blacklist:       blacklist,
		points:          points,
		notifications:   notifications,
		logger:          logger,
		now:             time.Now,
	}
}

// MaterializeFromApplication создаёт встречу по принятой заявке и закрывает объявление.
// Если объявления уже нет, ничего не делает и возвращает nil.
func (s *AppointmentService) MaterializeFromApplication(ctx context.Context, app *model.Application) (*model.Appointment, error) {
	var appt *model.Appointment

	err := s.tx.WithinTx(ctx, func(ctx context.Context) error {
		listing, err := s.listingRepo.GetByID(ctx, app.ListingID, app.ListingType)
		if err != nil {
			return fmt.Errorf("get listing: %w", err)
		}
		if listing == nil {
			s.logger.Warn("Listing is gone, appointment not created",
				zap.Int64("application_id", app.ID),
				zap.Int64("listing_id", app.ListingID),
				zap.String("listing_type", string(app.ListingType)),
			)
			return nil
		}

		listingID, listingType := listing.ID, listing.Type
		candidate := &model.Appointment{
			SubjectID:       listing.SubjectID,
			SubjectName:     listing.SubjectName,
			AppointmentTime: s.now().Add(materializedAppointmentDelay),
			Duration:        model.DefaultAppointmentDuration,
			Address:         listing.Address,
			Latitude:        listing.Latitude,
			Longitude:       listing.Longitude,
			RequestID:       &listingID,
			RequestType:     &listingType,
		}

		switch listing.Type {
		case model.ListingTypeStudentRequest:
			if listing.Request == nil {
				return fmt.Errorf("%w: student request %d has no details", model.ErrValidation, listing.ID)
			}
			candidate.TutorID = app.ApplicantID
			candidate.StudentID = listing.OwnerID
			candidate.HourlyRate = listing.Request.HourlyRateMin
			candidate.Notes = "From student request application: " + listing.Request.Requirements
		case model.ListingTypeTutorProfile:
			if listing.Profile == nil {
				return fmt.Errorf("%w: tutor profile %d has no details", model.ErrValidation, listing.ID)
			}
			candidate.TutorID = listing.OwnerID
			candidate.StudentID = app.ApplicantID
			candidate.HourlyRate = listing.Profile.HourlyRate
			candidate.Notes = "From tutor profile application: " + listing.Profile.Description
		default:
			return model.ErrInvalidListingType
		}
		candidate.TotalAmount = candidate.HourlyRate.ForDuration(candidate.Duration)

		appt, err = s.Create(ctx, candidate)
		if err != nil {
			return err
		}

		return s.listingRepo.SetStatus(ctx, listing.ID, listing.Type, listing.Type.ClosedStatus())
	})
	if err != nil {
		return nil, err
	}

	return appt, nil
}

// Create создаёт встречу. Это же путь прямой записи без заявки.
func (s *AppointmentService) Create(ctx context.Context, appt *model.Appointment) (*model.Appointment, error) {
	if appt.TutorID == appt.StudentID {
		return nil, model.ErrSelfBooking
	}

	if appt.Duration <= 0 {
		appt.Duration = model.DefaultAppointmentDuration
	}
	if appt.TotalAmount == 0 {
		appt.TotalAmount = appt.HourlyRate.ForDuration(appt.Duration)
	}
	appt.Status = model.AppointmentStatusPending

	err := s.tx.WithinTx(ctx, func(ctx context.Context) error {
		blocked, err := s.isBlockedEitherWay(ctx, appt.TutorID, appt.StudentID)
		if err != nil {
			return err
		}
		if blocked {
			return model.ErrBlockedRelationship
		}

		return s.appointmentRepo.Create(ctx, appt)
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("Appointment created",
		zap.Int64("appointment_id", appt.ID),
		zap.String("tutor_id", appt.TutorID),
		zap.String("student_id", appt.StudentID),
		zap.String("subject", appt.SubjectName),
		zap.Time("time", appt.AppointmentTime),
	)

	return appt, nil
}

func (s *AppointmentService) isBlockedEitherWay(ctx context.Context, a, b string) (bool, error) {
	blocked, err := s.blacklist.IsBlocked(ctx, a, b)
	if err != nil {
		return false, fmt.Errorf("check blacklist: %w", err)
	}
	if blocked {
		return true, nil
	}

	blocked, err = s.blacklist.IsBlocked(ctx, b, a)
	if err != nil {
		return false, fmt.Errorf("check blacklist: %w", err)
	}
	return blocked, nil
}

// Confirm подтверждает встречу и уведомляет ученика
func (s *AppointmentService) Confirm(ctx context.Context, id int64) (bool, error) {
	return s.transition(ctx, id, model.AppointmentStatusConfirmed, func(ctx context.Context, appt *model.Appointment) error {
		return s.notify(ctx, appt, appt.StudentID, model.NotificationAppointmentConfirmed,
			"Appointment confirmed", "The tutor confirmed your appointment, please attend on time")
	})
}

// Cancel отменяет встречу и уведомляет репетитора
func (s *AppointmentService) Cancel(ctx context.Context, id int64) (bool, error) {
	return s.transition(ctx, id, model.AppointmentStatusCancelled, func(ctx context.Context, appt *model.Appointment) error {
		return s.notify(ctx, appt, appt.TutorID, model.NotificationAppointmentCancelled,
			"Appointment cancelled", "The student cancelled the appointment")
	})
}

// Complete завершает встречу: начисляет баллы обеим сторонам и уведомляет их
func (s *AppointmentService) Complete(ctx context.Context, id int64) (bool, error) {
	return s.transition(ctx, id, model.AppointmentStatusCompleted, func(ctx context.Context, appt *model.Appointment) error {
		awards := []struct {
			userID      string
			points      int
			description string
		}{
			{appt.TutorID, model.TutorCompletionPoints, "Completed appointment as tutor"},
			{appt.StudentID, model.StudentCompletionPoints, "Completed appointment as student"},
		}

		for _, a := range awards {
			if err := s.points.Grant(ctx, a.userID, a.points, model.PointTypeReward, a.description); err != nil {
				return err
			}
		}

		for _, a := range awards {
			content := fmt.Sprintf("The appointment is completed, you earned %d points", a.points)
			if err := s.notify(ctx, appt, a.userID, model.NotificationAppointmentCompleted, "Appointment completed", content); err != nil {
				return err
			}
		}

		return nil
	})
}

// transition переводит встречу в статус to и в той же транзакции выполняет after.
// Обновление статуса условное: второй конкурентный переход не пройдёт.
func (s *AppointmentService) transition(
	ctx context.Context,
	id int64,
	to model.AppointmentStatus,
	after func(ctx context.Context, appt *model.Appointment) error,
) (bool, error) {
	var (
		changed bool
		from    model.AppointmentStatus
	)

	err := s.tx.WithinTx(ctx, func(ctx context.Context) error {
		appt, err := s.appointmentRepo.GetByID(ctx, id)
		if err != nil {
			return fmt.Errorf("get appointment: %w", err)
		}
		if appt == nil {
			return nil
		}

		from = appt.Status
		if !from.CanTransitionTo(to) {
			return fmt.Errorf("%w: %s -> %s", model.ErrAppointmentTransition, from, to)
		}

		ok, err := s.appointmentRepo.UpdateStatus(ctx, id, from, to)
		if err != nil {
			return err
		}
		if !ok {
			return fmt.Errorf("%w: status changed concurrently", model.ErrAppointmentTransition)
		}
		appt.Status = to
		changed = true

		return after(ctx, appt)
	})
	if err != nil {
		return false, err
	}

	if changed {
		s.logger.Info("Appointment status changed",
			zap.Int64("appointment_id", id),
			zap.String("from", string(from)),
			zap.String("to", string(to)),
		)
	}

	return changed, nil
}

func (s *AppointmentService) notify(ctx context.Context, appt *model.Appointment, userID string, t model.NotificationType, title, content string) error {
	err := s.notifications.Send(ctx, &model.Notification{
		UserID:      userID,
		Type:        t,
		Title:       title,
		Content:     content,
		RelatedID:   strconv.FormatInt(appt.ID, 10),
		RelatedType: model.RelatedTypeAppointment,
	})
	if err != nil {
		return fmt.Errorf("send %s notification: %w", t, err)
	}
	return nil
}

// GetByID получает встречу
func (s *AppointmentService) GetByID(ctx context.Context, id int64) (*model.Appointment, error) {
	appt, err := s.appointmentRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if appt == nil {
		return nil, model.ErrAppointmentNotFound
	}
	return appt, nil
}

// ListByUser получает встречи пользователя в любой роли
func (s *AppointmentService) ListByUser(ctx context.Context, userID string) ([]*model.Appointment, error) {
	return s.appointmentRepo.ListByUser(ctx, userID)
}

// ListByTutor получает встречи репетитора
func (s *AppointmentService) ListByTutor(ctx context.Context, tutorID string) ([]*model.Appointment, error) {
	return s.appointmentRepo.ListByTutor(ctx, tutorID)
}
