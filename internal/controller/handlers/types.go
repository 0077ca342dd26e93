package handlers

import (
	"github.com/Freeeeeet/tutor_market/internal/controller/callbacks/callbacktypes"
	"go.uber.org/zap"
)

// Handlers содержит все зависимости для обработки команд
type Handlers struct {
	userService     callbacktypes.UserService
	matchingService callbacktypes.MatchingService
	logger          *zap.Logger
}

// NewHandlers создаёт новый обработчик команд
func NewHandlers(
	userService callbacktypes.UserService,
	matchingService callbacktypes.MatchingService,
	logger *zap.Logger,
) *Handlers {
	return &Handlers{
		userService:     userService,
		matchingService: matchingService,
		logger:          logger,
	}
}
