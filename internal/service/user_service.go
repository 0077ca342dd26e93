package service

import (
	"context"
	"fmt"

	"github.com/Freeeeeet/tutor_market/internal/model"
	"go.uber.org/zap"
)

type UserService struct {
	tx       Transactor
	userRepo UserStore
	logger   *zap.Logger
}

func NewUserService(tx Transactor, userRepo UserStore, logger *zap.Logger) *UserService {
	return &UserService{
		tx:       tx,
		userRepo: userRepo,
		logger:   logger,
	}
}

// RegisterUser создаёт пользователя с внешним ID
func (s *UserService) RegisterUser(ctx context.Context, id, username, phone string, role model.UserRole) (*model.User, error) {
	if id == "" || username == "" {
		return nil, fmt.Errorf("%w: id and username are required", model.ErrValidation)
	}

	switch role {
	case "":
		role = model.UserRoleStudent
	case model.UserRoleStudent, model.UserRoleTutor, model.UserRoleAdmin:
	default:
		return nil, fmt.Errorf("%w: unknown role %q", model.ErrValidation, role)
	}

	user := &model.User{
		ID:       id,
		Username: username,
		Phone:    phone,
		Role:     role,
		Status:   model.UserStatusActive,
	}

	if err := s.userRepo.Create(ctx, user); err != nil {
		return nil, err
	}

	s.logger.Info("New user registered",
		zap.String("user_id", user.ID),
		zap.String("username", username),
		zap.String("role", string(role)),
	)

	return user, nil
}

// GetByID получает пользователя. nil, если не найден
func (s *UserService) GetByID(ctx context.Context, id string) (*model.User, error) {
	return s.userRepo.GetByID(ctx, id)
}

// GetByTelegramChatID получает пользователя, привязанного к чату
func (s *UserService) GetByTelegramChatID(ctx context.Context, chatID int64) (*model.User, error) {
	return s.userRepo.GetByTelegramChatID(ctx, chatID)
}

// LinkTelegram привязывает чат к пользователю. Предыдущая привязка чата снимается.
func (s *UserService) LinkTelegram(ctx context.Context, userID string, chatID int64) (*model.User, error) {
	var user *model.User

	err := s.tx.WithinTx(ctx, func(ctx context.Context) error {
		var err error
		user, err = s.userRepo.GetByID(ctx, userID)
		if err != nil {
			return fmt.Errorf("get user: %w", err)
		}
		if user == nil {
			return model.ErrUserNotFound
		}
		if !user.IsActive() {
			return model.ErrUserDisabled
		}

		if err := s.userRepo.ClearTelegramChatID(ctx, chatID); err != nil {
			return err
		}

		if err := s.userRepo.SetTelegramChatID(ctx, userID, chatID); err != nil {
			return err
		}

		user.TelegramChatID = &chatID
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("Telegram linked",
		zap.String("user_id", userID),
		zap.Int64("chat_id", chatID),
	)

	return user, nil
}
