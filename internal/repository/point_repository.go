package repository

import (
	"context"
	"fmt"

	"github.com/Freeeeeet/tutor_market/internal/model"
	"github.com/Freeeeeet/tutor_market/internal/repository/base"
	"github.com/jackc/pgx/v5/pgxpool"
)

type PointRepository struct {
	*base.Repository
}

func NewPointRepository(pool *pgxpool.Pool) *PointRepository {
	return &PointRepository{Repository: base.NewRepository(pool)}
}

// Create добавляет запись о начислении
func (r *PointRepository) Create(ctx context.Context, record *model.PointRecord) error {
	query := `
		INSERT INTO point_records (user_id, points, type, description)
		VALUES ($1, $2, $3, $4)
		RETURNING id, created_at
	`

	err := r.QueryRow(
		ctx, query,
		record.UserID,
		record.Points,
		record.Type,
		record.Description,
	).Scan(&record.ID, &record.CreatedAt)

	if err != nil {
		return fmt.Errorf("create point record: %w", err)
	}

	return nil
}

// SumByUser считает баланс пользователя по всем записям
func (r *PointRepository) SumByUser(ctx context.Context, userID string) (int, error) {
	query := `SELECT COALESCE(SUM(points), 0) FROM point_records WHERE user_id = $1`

	var total int
	if err := r.QueryRow(ctx, query, userID).Scan(&total); err != nil {
		return 0, fmt.Errorf("sum points: %w", err)
	}

	return total, nil
}

// ListByUser получает историю начислений, новые сверху
func (r *PointRepository) ListByUser(ctx context.Context, userID string) ([]*model.PointRecord, error) {
	query := `
		SELECT id, user_id, points, type, description, created_at
		FROM point_records
		WHERE user_id = $1
		ORDER BY created_at DESC
	`

	rows, err := r.Query(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("get point records: %w", err)
	}
	defer rows.Close()

	var records []*model.PointRecord
	for rows.Next() {
		var rec model.PointRecord
		err := rows.Scan(
			&rec.ID,
			&rec.UserID,
			&rec.Points,
			&rec.Type,
			&rec.Description,
			&rec.CreatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("scan point record: %w", err)
		}
		records = append(records, &rec)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate point records: %w", err)
	}

	return records, nil
}
