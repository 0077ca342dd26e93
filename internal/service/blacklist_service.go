package service

import (
	"context"
	"fmt"

	"github.com/Freeeeeet/tutor_market/internal/model"
	"go.uber.org/zap"
)

type BlacklistService struct {
	blacklistRepo BlacklistStore
	users         UserDirectory
	logger        *zap.Logger
}

func NewBlacklistService(blacklistRepo BlacklistStore, users UserDirectory, logger *zap.Logger) *BlacklistService {
	return &BlacklistService{
		blacklistRepo: blacklistRepo,
		users:         users,
		logger:        logger,
	}
}

// IsBlocked проверяет, заблокировал ли blockerID пользователя blockedID
func (s *BlacklistService) IsBlocked(ctx context.Context, blockerID, blockedID string) (bool, error) {
	return s.blacklistRepo.Exists(ctx, blockerID, blockedID)
}

// Add добавляет пользователя в чёрный список
func (s *BlacklistService) Add(ctx context.Context, userID, blockedUserID string) (*model.BlacklistEntry, error) {
	if userID == blockedUserID {
		return nil, model.ErrSelfBlock
	}

	blocked, err := s.users.GetByID(ctx, blockedUserID)
	if err != nil {
		return nil, fmt.Errorf("get blocked user: %w", err)
	}
	if blocked == nil {
		return nil, model.ErrUserNotFound
	}

	entry := &model.BlacklistEntry{
		UserID:        userID,
		BlockedUserID: blockedUserID,
	}

	if err := s.blacklistRepo.Create(ctx, entry); err != nil {
		return nil, err
	}
	entry.BlockedUser = blocked

	s.logger.Info("User blacklisted",
		zap.String("user_id", userID),
		zap.String("blocked_user_id", blockedUserID),
	)

	return entry, nil
}

// Remove убирает пользователя из чёрного списка
func (s *BlacklistService) Remove(ctx context.Context, userID, blockedUserID string) error {
	removed, err := s.blacklistRepo.Delete(ctx, userID, blockedUserID)
	if err != nil {
		return err
	}
	if !removed {
		return model.ErrBlacklistNotFound
	}

	s.logger.Info("User removed from blacklist",
		zap.String("user_id", userID),
		zap.String("blocked_user_id", blockedUserID),
	)

	return nil
}

// List получает чёрный список с данными заблокированных пользователей
func (s *BlacklistService) List(ctx context.Context, userID string) ([]*model.BlacklistEntry, error) {
	entries, err := s.blacklistRepo.ListByUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	for _, e := range entries {
		user, err := s.users.GetByID(ctx, e.BlockedUserID)
		if err != nil {
			return nil, fmt.Errorf("get blocked user: %w", err)
		}
		e.BlockedUser = user
	}

	return entries, nil
}
