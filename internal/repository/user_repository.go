package repository

import (
	"context"
	"fmt"

	"github.com/Freeeeeet/tutor_market/internal/model"
	"github.com/Freeeeeet/tutor_market/internal/repository/base"
	"github.com/jackc/pgx/v5/pgxpool"
)

type UserRepository struct {
	*base.Repository
}

func NewUserRepository(pool *pgxpool.Pool) *UserRepository {
	return &UserRepository{Repository: base.NewRepository(pool)}
}

const userColumns = `id, username, phone, role, status, points, telegram_chat_id, created_at`

func scanUser(row scanner) (*model.User, error) {
	var user model.User
	err := row.Scan(
		&user.ID,
		&user.Username,
		&user.Phone,
		&user.Role,
		&user.Status,
		&user.Points,
		&user.TelegramChatID,
		&user.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &user, nil
}

// Create создаёт нового пользователя
func (r *UserRepository) Create(ctx context.Context, user *model.User) error {
	query := `
		INSERT INTO users (id, username, phone, role, status)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING points, created_at
	`

	err := r.QueryRow(
		ctx, query,
		user.ID,
		user.Username,
		user.Phone,
		user.Role,
		user.Status,
	).Scan(&user.Points, &user.CreatedAt)

	if err != nil {
		if base.IsUniqueViolation(err) {
			return model.ErrUserExists
		}
		return fmt.Errorf("create user: %w", err)
	}

	return nil
}

// GetByID получает пользователя по ID
func (r *UserRepository) GetByID(ctx context.Context, id string) (*model.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE id = $1`

	user, err := scanUser(r.QueryRow(ctx, query, id))
	if err != nil {
		if base.IsNotFound(err) {
			return nil, nil // Пользователь не найден
		}
		return nil, fmt.Errorf("get user by id: %w", err)
	}

	return user, nil
}

// GetByTelegramChatID получает пользователя по привязанному чату Telegram
func (r *UserRepository) GetByTelegramChatID(ctx context.Context, chatID int64) (*model.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE telegram_chat_id = $1`

	user, err := scanUser(r.QueryRow(ctx, query, chatID))
	if err != nil {
		if base.IsNotFound(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get user by telegram chat id: %w", err)
	}

	return user, nil
}

// GetByIDs получает пользователей по списку ID
func (r *UserRepository) GetByIDs(ctx context.Context, ids []string) ([]*model.User, error) {
	if len(ids) == 0 {
		return []*model.User{}, nil
	}

	query := `SELECT ` + userColumns + ` FROM users WHERE id = ANY($1) ORDER BY username`

	rows, err := r.Query(ctx, query, ids)
	if err != nil {
		return nil, fmt.Errorf("get users by ids: %w", err)
	}
	defer rows.Close()

	var users []*model.User
	for rows.Next() {
		user, err := scanUser(rows)
		if err != nil {
			return nil, fmt.Errorf("scan user: %w", err)
		}
		users = append(users, user)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate users: %w", err)
	}

	return users, nil
}

// SetTelegramChatID привязывает чат Telegram к пользователю
func (r *UserRepository) SetTelegramChatID(ctx context.Context, userID string, chatID int64) error {
	query := `UPDATE users SET telegram_chat_id = $1 WHERE id = $2`

	affected, err := r.ExecAffected(ctx, query, chatID, userID)
	if err != nil {
		return fmt.Errorf("set telegram chat id: %w", err)
	}

	if affected == 0 {
		return model.ErrUserNotFound
	}

	return nil
}

// ClearTelegramChatID отвязывает чат от всех пользователей
func (r *UserRepository) ClearTelegramChatID(ctx context.Context, chatID int64) error {
	query := `UPDATE users SET telegram_chat_id = NULL WHERE telegram_chat_id = $1`

	if _, err := r.ExecAffected(ctx, query, chatID); err != nil {
		return fmt.Errorf("clear telegram chat id: %w", err)
	}

	return nil
}

// SetPoints записывает пересчитанный баланс баллов
func (r *UserRepository) SetPoints(ctx context.Context, userID string, points int) error {
	query := `UPDATE users SET points = $1 WHERE id = $2`

	if _, err := r.ExecAffected(ctx, query, points, userID); err != nil {
		return fmt.Errorf("set user points: %w", err)
	}

	return nil
}
