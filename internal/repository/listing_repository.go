package repository

import (
	"context"
	"fmt"

	"github.com/Freeeeeet/tutor_market/internal/model"
	"github.com/Freeeeeet/tutor_market/internal/repository/base"
	"github.com/jackc/pgx/v5/pgxpool"
)

// ListingRepository хранит оба вида объявлений: заявки учеников и анкеты репетиторов
type ListingRepository struct {
	*base.Repository
}

func NewListingRepository(pool *pgxpool.Pool) *ListingRepository {
	return &ListingRepository{Repository: base.NewRepository(pool)}
}

const studentRequestColumns = `
	id, user_id, subject_id, subject_name, address, latitude, longitude, available_time, status,
	created_at, updated_at, child_name, child_grade, hourly_rate_min_cents, hourly_rate_max_cents, requirements
`

const tutorProfileColumns = `
	id, user_id, subject_id, subject_name, address, latitude, longitude, available_time, status,
	created_at, updated_at, hourly_rate_cents, description, target_grade_levels
`

type scanner interface {
	Scan(dest ...any) error
}

func scanStudentRequest(row scanner) (*model.Listing, error) {
	l := model.Listing{Type: model.ListingTypeStudentRequest, Request: &model.StudentRequestDetails{}}
	err := row.Scan(
		&l.ID,
		&l.OwnerID,
		&l.SubjectID,
		&l.SubjectName,
		&l.Address,
		&l.Latitude,
		&l.Longitude,
		&l.AvailableTime,
		&l.Status,
		&l.CreatedAt,
		&l.UpdatedAt,
		&l.Request.ChildName,
		&l.Request.ChildGrade,
		&l.Request.HourlyRateMin,
		&l.Request.HourlyRateMax,
		&l.Request.Requirements,
	)
	if err != nil {
		return nil, err
	}
	return &l, nil
}

func scanTutorProfile(row scanner) (*model.Listing, error) {
	l := model.Listing{Type: model.ListingTypeTutorProfile, Profile: &model.TutorProfileDetails{}}
	err := row.Scan(
		&l.ID,
		&l.OwnerID,
		&l.SubjectID,
		&l.SubjectName,
		&l.Address,
		&l.Latitude,
		&l.Longitude,
		&l.AvailableTime,
		&l.Status,
		&l.CreatedAt,
		&l.UpdatedAt,
		&l.Profile.HourlyRate,
		&l.Profile.Description,
		&l.Profile.TargetGradeLevels,
	)
	if err != nil {
		return nil, err
	}
	return &l, nil
}

// Create создаёт объявление в таблице, соответствующей его типу
func (r *ListingRepository) Create(ctx context.Context, l *model.Listing) error {
	if l.Status == "" {
		l.Status = l.Type.OpenStatus()
	}

	switch l.Type {
	case model.ListingTypeStudentRequest:
		return r.createStudentRequest(ctx, l)
	case model.ListingTypeTutorProfile:
		return r.createTutorProfile(ctx, l)
	default:
		return model.ErrInvalidListingType
	}
}

func (r *ListingRepository) createStudentRequest(ctx context.Context, l *model.Listing) error {
	if l.Request == nil {
		return fmt.Errorf("%w: student request details are required", model.ErrValidation)
	}

	query := `
		INSERT INTO student_requests (
			user_id, subject_id, subject_name, address, latitude, longitude, available_time, status,
			child_name, child_grade, hourly_rate_min_cents, hourly_rate_max_cents, requirements
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)
		RETURNING id, created_at, updated_at
	`

	err := r.QueryRow(
		ctx, query,
		l.OwnerID,
		l.SubjectID,
		l.SubjectName,
		l.Address,
		l.Latitude,
		l.Longitude,
		l.AvailableTime,
		l.Status,
		l.Request.ChildName,
		l.Request.ChildGrade,
		int64(l.Request.HourlyRateMin),
		int64(l.Request.HourlyRateMax),
		l.Request.Requirements,
	).Scan(&l.ID, &l.CreatedAt, &l.UpdatedAt)

	if err != nil {
		return fmt.Errorf("create student request: %w", err)
	}

	return nil
}

func (r *ListingRepository) createTutorProfile(ctx context.Context, l *model.Listing) error {
	if l.Profile == nil {
		return fmt.Errorf("%w: tutor profile details are required", model.ErrValidation)
	}

	query := `
		INSERT INTO tutor_profiles (
			user_id, subject_id, subject_name, address, latitude, longitude, available_time, status,
			hourly_rate_cents, description, target_grade_levels
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
		RETURNING id, created_at, updated_at
	`

	err := r.QueryRow(
		ctx, query,
		l.OwnerID,
		l.SubjectID,
		l.SubjectName,
		l.Address,
		l.Latitude,
		l.Longitude,
		l.AvailableTime,
		l.Status,
		int64(l.Profile.HourlyRate),
		l.Profile.Description,
		l.Profile.TargetGradeLevels,
	).Scan(&l.ID, &l.CreatedAt, &l.UpdatedAt)

	if err != nil {
		return fmt.Errorf("create tutor profile: %w", err)
	}

	return nil
}

// GetByID получает объявление по ID и типу. Возвращает nil, если не найдено
func (r *ListingRepository) GetByID(ctx context.Context, id int64, listingType model.ListingType) (*model.Listing, error) {
	var (
		listing *model.Listing
		err     error
	)

	switch listingType {
	case model.ListingTypeStudentRequest:
		query := `SELECT ` + studentRequestColumns + ` FROM student_requests WHERE id = $1`
		listing, err = scanStudentRequest(r.QueryRow(ctx, query, id))
	case model.ListingTypeTutorProfile:
		query := `SELECT ` + tutorProfileColumns + ` FROM tutor_profiles WHERE id = $1`
		listing, err = scanTutorProfile(r.QueryRow(ctx, query, id))
	default:
		return nil, model.ErrInvalidListingType
	}

	if err != nil {
		if base.IsNotFound(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get %s by id: %w", listingType, err)
	}

	return listing, nil
}

// SetStatus обновляет статус объявления
func (r *ListingRepository) SetStatus(ctx context.Context, id int64, listingType model.ListingType, status model.ListingStatus) error {
	var table string
	switch listingType {
	case model.ListingTypeStudentRequest:
		table = "student_requests"
	case model.ListingTypeTutorProfile:
		table = "tutor_profiles"
	default:
		return model.ErrInvalidListingType
	}

	query := `UPDATE ` + table + ` SET status = $1, updated_at = NOW() WHERE id = $2`

	affected, err := r.ExecAffected(ctx, query, status, id)
	if err != nil {
		return fmt.Errorf("update %s status: %w", listingType, err)
	}

	if affected == 0 {
		return model.ErrListingNotFound
	}

	return nil
}

// ListOpen получает открытые объявления, опционально по названию предмета
func (r *ListingRepository) ListOpen(ctx context.Context, listingType model.ListingType, subjectName string) ([]*model.Listing, error) {
	var (
		query string
		scan  func(scanner) (*model.Listing, error)
	)

	switch listingType {
	case model.ListingTypeStudentRequest:
		query = `SELECT ` + studentRequestColumns + ` FROM student_requests
			WHERE status = $1 AND ($2 = '' OR subject_name = $2)
			ORDER BY created_at DESC`
		scan = scanStudentRequest
	case model.ListingTypeTutorProfile:
		query = `SELECT ` + tutorProfileColumns + ` FROM tutor_profiles
			WHERE status = $1 AND ($2 = '' OR subject_name = $2)
			ORDER BY created_at DESC`
		scan = scanTutorProfile
	default:
		return nil, model.ErrInvalidListingType
	}

	rows, err := r.Query(ctx, query, listingType.OpenStatus(), subjectName)
	if err != nil {
		return nil, fmt.Errorf("list open %s: %w", listingType, err)
	}
	defer rows.Close()

	var listings []*model.Listing
	for rows.Next() {
		l, err := scan(rows)
		if err != nil {
			return nil, fmt.Errorf("scan %s: %w", listingType, err)
		}
		listings = append(listings, l)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate %s: %w", listingType, err)
	}

	return listings, nil
}
