package service

import (
	"context"
	"fmt"
	"strconv"

	"github.com/Freeeeeet/tutor_market/internal/model"
	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"
)

// CreateReviewInput отзыв на встречу. Кого оценивают, определяется по встрече
type CreateReviewInput struct {
	AppointmentID int64  `validate:"gt=0"`
	ReviewerID    string `validate:"required,max=64"`
	Rating        int    `validate:"min=1,max=5"`
	Comment       string `validate:"max=1000"`
}

// ReviewWithSummary отзывы о пользователе вместе со средней оценкой
type ReviewWithSummary struct {
	Summary *model.RatingSummary `json:"summary"`
	Reviews []*model.Review      `json:"reviews"`
}

type ReviewService struct {
	tx              Transactor
	reviewRepo      ReviewStore
	appointmentRepo AppointmentStore
	notifications   NotificationSink
	validate        *validator.Validate
	logger          *zap.Logger
}

func NewReviewService(
	tx Transactor,
	reviewRepo ReviewStore,
	appointmentRepo AppointmentStore,
	notifications NotificationSink,
	logger *zap.Logger,
) *ReviewService {
	return &ReviewService{
		tx:              tx,
		reviewRepo:      reviewRepo,
		appointmentRepo: appointmentRepo,
		notifications:   notifications,
		validate:        validator.New(),
		logger:          logger,
	}
}

// Create оставляет отзыв о второй стороне завершённой встречи и уведомляет её.
// Каждая сторона может оставить один отзыв на встречу.
func (s *ReviewService) Create(ctx context.Context, in CreateReviewInput) (*model.Review, error) {
	if err := s.validate.Struct(in); err != nil {
		return nil, validationError(err)
	}

	var review *model.Review

	err := s.tx.WithinTx(ctx, func(ctx context.Context) error {
		appt, err := s.appointmentRepo.GetByID(ctx, in.AppointmentID)
		if err != nil {
			return fmt.Errorf("get appointment: %w", err)
		}
		if appt == nil {
			return model.ErrAppointmentNotFound
		}
		if !appt.HasParty(in.ReviewerID) {
			return model.ErrReviewerNotParty
		}
		if appt.Status != model.AppointmentStatusCompleted {
			return model.ErrAppointmentNotFinished
		}

		reviewed := appt.TutorID
		if in.ReviewerID == appt.TutorID {
			reviewed = appt.StudentID
		}

		review = &model.Review{
			AppointmentID: appt.ID,
			ReviewerID:    in.ReviewerID,
			ReviewedID:    reviewed,
			Rating:        in.Rating,
			Comment:       in.Comment,
		}
		if err := s.reviewRepo.Create(ctx, review); err != nil {
			return err
		}

		err = s.notifications.Send(ctx, &model.Notification{
			UserID:      reviewed,
			Type:        model.NotificationReview,
			Title:       "New review",
			Content:     fmt.Sprintf("You received a new review, rating: %d", review.Rating),
			RelatedID:   strconv.FormatInt(review.ID, 10),
			RelatedType: model.RelatedTypeReview,
		})
		if err != nil {
			return fmt.Errorf("send review notification: %w", err)
		}

		return nil
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("Review created",
		zap.Int64("review_id", review.ID),
		zap.Int64("appointment_id", review.AppointmentID),
		zap.String("reviewer_id", review.ReviewerID),
		zap.Int("rating", review.Rating),
	)

	return review, nil
}

// GetByID получает отзыв
func (s *ReviewService) GetByID(ctx context.Context, id int64) (*model.Review, error) {
	rv, err := s.reviewRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if rv == nil {
		return nil, model.ErrReviewNotFound
	}
	return rv, nil
}

// ForUser отзывы о пользователе и его средняя оценка
func (s *ReviewService) ForUser(ctx context.Context, userID string) (*ReviewWithSummary, error) {
	summary, err := s.reviewRepo.Summary(ctx, userID)
	if err != nil {
		return nil, err
	}

	reviews, err := s.reviewRepo.ListByReviewed(ctx, userID)
	if err != nil {
		return nil, err
	}
	if reviews == nil {
		reviews = []*model.Review{}
	}

	return &ReviewWithSummary{Summary: summary, Reviews: reviews}, nil
}

// ByReviewer отзывы, оставленные пользователем
func (s *ReviewService) ByReviewer(ctx context.Context, userID string) ([]*model.Review, error) {
	return s.reviewRepo.ListByReviewer(ctx, userID)
}
