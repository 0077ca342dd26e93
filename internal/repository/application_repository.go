package repository

import (
	"context"
	"fmt"

	"github.com/Freeeeeet/tutor_market/internal/model"
	"github.com/Freeeeeet/tutor_market/internal/repository/base"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type ApplicationRepository struct {
	*base.Repository
}

func NewApplicationRepository(pool *pgxpool.Pool) *ApplicationRepository {
	return &ApplicationRepository{Repository: base.NewRepository(pool)}
}

const applicationColumns = `
	id, request_id, request_type, applicant_id, applicant_name, applicant_phone, message, status, created_at, updated_at
`

func scanApplication(row scanner) (*model.Application, error) {
	var app model.Application
	err := row.Scan(
		&app.ID,
		&app.ListingID,
		&app.ListingType,
		&app.ApplicantID,
		&app.ApplicantName,
		&app.ApplicantPhone,
		&app.Message,
		&app.Status,
		&app.CreatedAt,
		&app.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &app, nil
}

func collectApplications(rows pgx.Rows) ([]*model.Application, error) {
	defer rows.Close()

	var apps []*model.Application
	for rows.Next() {
		app, err := scanApplication(rows)
		if err != nil {
			return nil, fmt.Errorf("scan application: %w", err)
		}
		apps = append(apps, app)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate applications: %w", err)
	}

	return apps, nil
}

// Create создаёт заявку. Повторная заявка того же кандидата даёт ErrDuplicateApplication
func (r *ApplicationRepository) Create(ctx context.Context, app *model.Application) error {
	query := `
		INSERT INTO request_applications (request_id, request_type, applicant_id, applicant_name, applicant_phone, message, status)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id, created_at, updated_at
	`

	err := r.QueryRow(
		ctx, query,
		app.ListingID,
		app.ListingType,
		app.ApplicantID,
		app.ApplicantName,
		app.ApplicantPhone,
		app.Message,
		app.Status,
	).Scan(&app.ID, &app.CreatedAt, &app.UpdatedAt)

	if err != nil {
		if base.IsUniqueViolation(err) {
			return model.ErrDuplicateApplication
		}
		return fmt.Errorf("create application: %w", err)
	}

	return nil
}

// GetByID получает заявку по ID
func (r *ApplicationRepository) GetByID(ctx context.Context, id int64) (*model.Application, error) {
	query := `SELECT ` + applicationColumns + ` FROM request_applications WHERE id = $1`

	app, err := scanApplication(r.QueryRow(ctx, query, id))
	if err != nil {
		if base.IsNotFound(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get application by id: %w", err)
	}

	return app, nil
}

// Exists проверяет, подавал ли кандидат заявку на это объявление
func (r *ApplicationRepository) Exists(ctx context.Context, listingID int64, listingType model.ListingType, applicantID string) (bool, error) {
	query := `
		SELECT EXISTS(
			SELECT 1 FROM request_applications
			WHERE request_id = $1 AND request_type = $2 AND applicant_id = $3
		)
	`

	var exists bool
	err := r.QueryRow(ctx, query, listingID, listingType, applicantID).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("check application exists: %w", err)
	}

	return exists, nil
}

// LockByListing получает все заявки объявления и блокирует их до конца транзакции.
// Порядок по id одинаков для всех вызывающих.
func (r *ApplicationRepository) LockByListing(ctx context.Context, listingID int64, listingType model.ListingType) ([]*model.Application, error) {
	query := `SELECT ` + applicationColumns + ` FROM request_applications
		WHERE request_id = $1 AND request_type = $2
		ORDER BY id
		FOR UPDATE`

	rows, err := r.Query(ctx, query, listingID, listingType)
	if err != nil {
		return nil, fmt.Errorf("lock applications: %w", err)
	}

	return collectApplications(rows)
}

// UpdateStatus обновляет статус заявки. false - заявка не найдена
func (r *ApplicationRepository) UpdateStatus(ctx context.Context, id int64, status model.ApplicationStatus) (bool, error) {
	query := `
		UPDATE request_applications
		SET status = $1, updated_at = NOW()
		WHERE id = $2
	`

	affected, err := r.ExecAffected(ctx, query, status, id)
	if err != nil {
		if base.IsUniqueViolation(err) {
			return false, model.ErrAlreadyAccepted
		}
		return false, fmt.Errorf("update application status: %w", err)
	}

	return affected > 0, nil
}

// UpdateStatusFrom переводит заявку из from в to. false - заявка не найдена или статус уже другой
func (r *ApplicationRepository) UpdateStatusFrom(ctx context.Context, id int64, from, to model.ApplicationStatus) (bool, error) {
	query := `
		UPDATE request_applications
		SET status = $1, updated_at = NOW()
		WHERE id = $2 AND status = $3
	`

	affected, err := r.ExecAffected(ctx, query, to, id, from)
	if err != nil {
		if base.IsUniqueViolation(err) {
			return false, model.ErrAlreadyAccepted
		}
		return false, fmt.Errorf("update application status: %w", err)
	}

	return affected > 0, nil
}

// ListByListing получает заявки на объявление
func (r *ApplicationRepository) ListByListing(ctx context.Context, listingID int64, listingType model.ListingType) ([]*model.Application, error) {
	query := `SELECT ` + applicationColumns + ` FROM request_applications
		WHERE request_id = $1 AND request_type = $2
		ORDER BY created_at ASC`

	rows, err := r.Query(ctx, query, listingID, listingType)
	if err != nil {
		return nil, fmt.Errorf("get applications by listing: %w", err)
	}

	return collectApplications(rows)
}

// ListByApplicant получает заявки кандидата
func (r *ApplicationRepository) ListByApplicant(ctx context.Context, applicantID string) ([]*model.Application, error) {
	query := `SELECT ` + applicationColumns + ` FROM request_applications
		WHERE applicant_id = $1
		ORDER BY created_at DESC`

	rows, err := r.Query(ctx, query, applicantID)
	if err != nil {
		return nil, fmt.Errorf("get applications by applicant: %w", err)
	}

	return collectApplications(rows)
}

// ListPendingByOwner получает ожидающие решения заявки на объявления владельца
func (r *ApplicationRepository) ListPendingByOwner(ctx context.Context, ownerID string) ([]*model.Application, error) {
	query := `
		SELECT a.id, a.request_id, a.request_type, a.applicant_id, a.applicant_name, a.applicant_phone,
			a.message, a.status, a.created_at, a.updated_at
		FROM request_applications a
		LEFT JOIN student_requests sr ON a.request_type = 'student_request' AND sr.id = a.request_id
		LEFT JOIN tutor_profiles tp ON a.request_type = 'tutor_profile' AND tp.id = a.request_id
		WHERE a.status = 'pending' AND COALESCE(sr.user_id, tp.user_id) = $1
		ORDER BY a.created_at ASC
	`

	rows, err := r.Query(ctx, query, ownerID)
	if err != nil {
		return nil, fmt.Errorf("get pending applications by owner: %w", err)
	}

	return collectApplications(rows)
}
