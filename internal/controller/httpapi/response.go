package httpapi

import (
	"errors"
	"net/http"

	"github.com/Freeeeeet/tutor_market/internal/model"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// Response общий конверт всех ответов API
type Response struct {
	Success bool   `json:"success"`
	Message string `json:"message,omitempty"`
	Data    any    `json:"data,omitempty"`
}

func respondOK(c *gin.Context, status int, message string, data any) {
	c.JSON(status, Response{Success: true, Message: message, Data: data})
}

func respondFail(c *gin.Context, status int, message string) {
	c.AbortWithStatusJSON(status, Response{Success: false, Message: message})
}

// errorStatus переводит категорию доменной ошибки в HTTP статус
func errorStatus(err error) int {
	switch {
	case errors.Is(err, model.ErrValidation):
		return http.StatusBadRequest
	case errors.Is(err, model.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, model.ErrConflict):
		return http.StatusConflict
	case errors.Is(err, model.ErrForbidden):
		return http.StatusForbidden
	case errors.Is(err, model.ErrInvalidTransition):
		return http.StatusUnprocessableEntity
	default:
		return http.StatusInternalServerError
	}
}

// respondError отвечает по ошибке сервиса. Внутренние ошибки логируются и не раскрываются клиенту.
func (h *Handler) respondError(c *gin.Context, err error) {
	status := errorStatus(err)
	if status == http.StatusInternalServerError {
		h.logger.Error("Request failed",
			zap.String("request_id", requestID(c)),
			zap.String("path", c.FullPath()),
			zap.Error(err),
		)
		respondFail(c, status, "internal server error")
		return
	}
	respondFail(c, status, err.Error())
}
