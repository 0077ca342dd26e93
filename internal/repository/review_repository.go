package repository

import (
	"context"
	"fmt"

	"github.com/Freeeeeet/tutor_market/internal/model"
	"github.com/Freeeeeet/tutor_market/internal/repository/base"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type ReviewRepository struct {
	*base.Repository
}

func NewReviewRepository(pool *pgxpool.Pool) *ReviewRepository {
	return &ReviewRepository{Repository: base.NewRepository(pool)}
}

const reviewColumns = `id, appointment_id, reviewer_id, reviewed_id, rating, comment, created_at`

func scanReview(row scanner) (*model.Review, error) {
	var rv model.Review
	err := row.Scan(
		&rv.ID,
		&rv.AppointmentID,
		&rv.ReviewerID,
		&rv.ReviewedID,
		&rv.Rating,
		&rv.Comment,
		&rv.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &rv, nil
}

func collectReviews(rows pgx.Rows) ([]*model.Review, error) {
	defer rows.Close()

	var reviews []*model.Review
	for rows.Next() {
		rv, err := scanReview(rows)
		if err != nil {
			return nil, fmt.Errorf("scan review: %w", err)
		}
		reviews = append(reviews, rv)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate reviews: %w", err)
	}

	return reviews, nil
}

// Create сохраняет отзыв. Второй отзыв того же автора на встречу даёт ErrDuplicateReview
func (r *ReviewRepository) Create(ctx context.Context, rv *model.Review) error {
	query := `
		INSERT INTO reviews (appointment_id, reviewer_id, reviewed_id, rating, comment)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, created_at
	`

	err := r.QueryRow(ctx, query, rv.AppointmentID, rv.ReviewerID, rv.ReviewedID, rv.Rating, rv.Comment).
		Scan(&rv.ID, &rv.CreatedAt)
	if err != nil {
		if base.IsUniqueViolation(err) {
			return model.ErrDuplicateReview
		}
		return fmt.Errorf("create review: %w", err)
	}

	return nil
}

// GetByID получает отзыв. nil, если не найден
func (r *ReviewRepository) GetByID(ctx context.Context, id int64) (*model.Review, error) {
	query := `SELECT ` + reviewColumns + ` FROM reviews WHERE id = $1`

	rv, err := scanReview(r.QueryRow(ctx, query, id))
	if err != nil {
		if base.IsNotFound(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get review by id: %w", err)
	}

	return rv, nil
}

// ListByReviewed получает отзывы о пользователе, новые первыми
func (r *ReviewRepository) ListByReviewed(ctx context.Context, userID string) ([]*model.Review, error) {
	query := `SELECT ` + reviewColumns + ` FROM reviews WHERE reviewed_id = $1 ORDER BY created_at DESC`

	rows, err := r.Query(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("get reviews by reviewed: %w", err)
	}

	return collectReviews(rows)
}

// ListByReviewer получает отзывы, оставленные пользователем
func (r *ReviewRepository) ListByReviewer(ctx context.Context, userID string) ([]*model.Review, error) {
	query := `SELECT ` + reviewColumns + ` FROM reviews WHERE reviewer_id = $1 ORDER BY created_at DESC`

	rows, err := r.Query(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("get reviews by reviewer: %w", err)
	}

	return collectReviews(rows)
}

// Summary считает среднюю оценку и число отзывов о пользователе
func (r *ReviewRepository) Summary(ctx context.Context, userID string) (*model.RatingSummary, error) {
	query := `SELECT COALESCE(AVG(rating), 0)::float8, COUNT(*) FROM reviews WHERE reviewed_id = $1`

	summary := &model.RatingSummary{UserID: userID}
	if err := r.QueryRow(ctx, query, userID).Scan(&summary.Rating, &summary.ReviewCount); err != nil {
		return nil, fmt.Errorf("get rating summary: %w", err)
	}

	return summary, nil
}
