package service

import (
	"context"
	"fmt"

	"github.com/Freeeeeet/tutor_market/internal/model"
	"go.uber.org/zap"
)

type PointService struct {
	tx        Transactor
	pointRepo PointStore
	userRepo  UserStore
	logger    *zap.Logger
}

func NewPointService(tx Transactor, pointRepo PointStore, userRepo UserStore, logger *zap.Logger) *PointService {
	return &PointService{
		tx:        tx,
		pointRepo: pointRepo,
		userRepo:  userRepo,
		logger:    logger,
	}
}

// Grant добавляет запись о начислении и пересчитывает баланс пользователя
func (s *PointService) Grant(ctx context.Context, userID string, points int, pointType, description string) error {
	err := s.tx.WithinTx(ctx, func(ctx context.Context) error {
		record := &model.PointRecord{
			UserID:      userID,
			Points:      points,
			Type:        pointType,
			Description: description,
		}

		if err := s.pointRepo.Create(ctx, record); err != nil {
			return err
		}

		total, err := s.pointRepo.SumByUser(ctx, userID)
		if err != nil {
			return err
		}

		return s.userRepo.SetPoints(ctx, userID, total)
	})
	if err != nil {
		return fmt.Errorf("grant points: %w", err)
	}

	s.logger.Debug("Points granted",
		zap.String("user_id", userID),
		zap.Int("points", points),
		zap.String("type", pointType),
	)

	return nil
}

// Total возвращает баланс пользователя по журналу начислений
func (s *PointService) Total(ctx context.Context, userID string) (int, error) {
	return s.pointRepo.SumByUser(ctx, userID)
}

// Records возвращает историю начислений
func (s *PointService) Records(ctx context.Context, userID string) ([]*model.PointRecord, error) {
	return s.pointRepo.ListByUser(ctx, userID)
}
