package repository

import (
	"context"
	"fmt"

	"github.com/Freeeeeet/tutor_market/internal/model"
	"github.com/Freeeeeet/tutor_market/internal/repository/base"
	"github.com/jackc/pgx/v5/pgxpool"
)

type BlacklistRepository struct {
	*base.Repository
}

func NewBlacklistRepository(pool *pgxpool.Pool) *BlacklistRepository {
	return &BlacklistRepository{Repository: base.NewRepository(pool)}
}

// Exists проверяет, заблокировал ли userID пользователя blockedUserID
func (r *BlacklistRepository) Exists(ctx context.Context, userID, blockedUserID string) (bool, error) {
	query := `SELECT EXISTS(SELECT 1 FROM blacklist WHERE user_id = $1 AND blocked_user_id = $2)`

	var exists bool
	if err := r.QueryRow(ctx, query, userID, blockedUserID).Scan(&exists); err != nil {
		return false, fmt.Errorf("check blacklist: %w", err)
	}

	return exists, nil
}

// Create добавляет пользователя в чёрный список
func (r *BlacklistRepository) Create(ctx context.Context, entry *model.BlacklistEntry) error {
	query := `
		INSERT INTO blacklist (user_id, blocked_user_id)
		VALUES ($1, $2)
		RETURNING id, created_at
	`

	err := r.QueryRow(ctx, query, entry.UserID, entry.BlockedUserID).Scan(&entry.ID, &entry.CreatedAt)
	if err != nil {
		if base.IsUniqueViolation(err) {
			return model.ErrAlreadyBlocked
		}
		return fmt.Errorf("create blacklist entry: %w", err)
	}

	return nil
}

// Delete убирает пользователя из чёрного списка. false - записи не было
func (r *BlacklistRepository) Delete(ctx context.Context, userID, blockedUserID string) (bool, error) {
	query := `DELETE FROM blacklist WHERE user_id = $1 AND blocked_user_id = $2`

	affected, err := r.ExecAffected(ctx, query, userID, blockedUserID)
	if err != nil {
		return false, fmt.Errorf("delete blacklist entry: %w", err)
	}

	return affected > 0, nil
}

// ListByUser получает чёрный список пользователя
func (r *BlacklistRepository) ListByUser(ctx context.Context, userID string) ([]*model.BlacklistEntry, error) {
	query := `
		SELECT id, user_id, blocked_user_id, created_at
		FROM blacklist
		WHERE user_id = $1
		ORDER BY created_at DESC
	`

	rows, err := r.Query(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("get blacklist: %w", err)
	}
	defer rows.Close()

	var entries []*model.BlacklistEntry
	for rows.Next() {
		var e model.BlacklistEntry
		if err := rows.Scan(&e.ID, &e.UserID, &e.BlockedUserID, &e.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan blacklist entry: %w", err)
		}
		entries = append(entries, &e)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate blacklist: %w", err)
	}

	return entries, nil
}
