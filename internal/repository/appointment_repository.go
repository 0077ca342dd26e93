package repository

import (
	"context"
	"fmt"

	"github.com/Freeeeeet/tutor_market/internal/model"
	"github.com/Freeeeeet/tutor_market/internal/repository/base"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type AppointmentRepository struct {
	*base.Repository
}

func NewAppointmentRepository(pool *pgxpool.Pool) *AppointmentRepository {
	return &AppointmentRepository{Repository: base.NewRepository(pool)}
}

const appointmentColumns = `
	id, tutor_id, student_id, subject_id, subject_name, appointment_time, duration, address, latitude, longitude,
	hourly_rate_cents, total_amount_cents, status, notes, request_id, request_type, created_at, updated_at
`

func scanAppointment(row scanner) (*model.Appointment, error) {
	var a model.Appointment
	err := row.Scan(
		&a.ID,
		&a.TutorID,
		&a.StudentID,
		&a.SubjectID,
		&a.SubjectName,
		&a.AppointmentTime,
		&a.Duration,
		&a.Address,
		&a.Latitude,
		&a.Longitude,
		&a.HourlyRate,
		&a.TotalAmount,
		&a.Status,
		&a.Notes,
		&a.RequestID,
		&a.RequestType,
		&a.CreatedAt,
		&a.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &a, nil
}

func collectAppointments(rows pgx.Rows) ([]*model.Appointment, error) {
	defer rows.Close()

	var appointments []*model.Appointment
	for rows.Next() {
		a, err := scanAppointment(rows)
		if err != nil {
			return nil, fmt.Errorf("scan appointment: %w", err)
		}
		appointments = append(appointments, a)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate appointments: %w", err)
	}

	return appointments, nil
}

// Create создаёт новую встречу
func (r *AppointmentRepository) Create(ctx context.Context, a *model.Appointment) error {
	query := `
		INSERT INTO appointments (
			tutor_id, student_id, subject_id, subject_name, appointment_time, duration, address, latitude, longitude,
			hourly_rate_cents, total_amount_cents, status, notes, request_id, request_type
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15)
		RETURNING id, created_at, updated_at
	`

	err := r.QueryRow(
		ctx, query,
		a.TutorID,
		a.StudentID,
		a.SubjectID,
		a.SubjectName,
		a.AppointmentTime,
		a.Duration,
		a.Address,
		a.Latitude,
		a.Longitude,
		int64(a.HourlyRate),
		int64(a.TotalAmount),
		a.Status,
		a.Notes,
		a.RequestID,
		a.RequestType,
	).Scan(&a.ID, &a.CreatedAt, &a.UpdatedAt)

	if err != nil {
		return fmt.Errorf("create appointment: %w", err)
	}

	return nil
}

// GetByID получает встречу по ID
func (r *AppointmentRepository) GetByID(ctx context.Context, id int64) (*model.Appointment, error) {
	query := `SELECT ` + appointmentColumns + ` FROM appointments WHERE id = $1`

	a, err := scanAppointment(r.QueryRow(ctx, query, id))
	if err != nil {
		if base.IsNotFound(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get appointment by id: %w", err)
	}

	return a, nil
}

// UpdateStatus переводит встречу из статуса from в to.
// false - встреча не найдена или её статус уже не from.
func (r *AppointmentRepository) UpdateStatus(ctx context.Context, id int64, from, to model.AppointmentStatus) (bool, error) {
	query := `
		UPDATE appointments
		SET status = $1, updated_at = NOW()
		WHERE id = $2 AND status = $3
	`

	affected, err := r.ExecAffected(ctx, query, to, id, from)
	if err != nil {
		return false, fmt.Errorf("update appointment status: %w", err)
	}

	return affected > 0, nil
}

// ListByUser получает встречи, где пользователь репетитор или ученик
func (r *AppointmentRepository) ListByUser(ctx context.Context, userID string) ([]*model.Appointment, error) {
	query := `SELECT ` + appointmentColumns + ` FROM appointments
		WHERE tutor_id = $1 OR student_id = $1
		ORDER BY appointment_time DESC`

	rows, err := r.Query(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("get appointments by user: %w", err)
	}

	return collectAppointments(rows)
}

// ListByTutor получает встречи репетитора
func (r *AppointmentRepository) ListByTutor(ctx context.Context, tutorID string) ([]*model.Appointment, error) {
	query := `SELECT ` + appointmentColumns + ` FROM appointments
		WHERE tutor_id = $1
		ORDER BY appointment_time DESC`

	rows, err := r.Query(ctx, query, tutorID)
	if err != nil {
		return nil, fmt.Errorf("get appointments by tutor: %w", err)
	}

	return collectAppointments(rows)
}
