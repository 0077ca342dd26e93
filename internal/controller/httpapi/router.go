package httpapi

import (
	"context"
	"net/http"
	"time"

	"github.com/Freeeeeet/tutor_market/internal/model"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// HealthCheck проверяет доступность зависимостей, обычно пингует БД
type HealthCheck func(ctx context.Context) error

const healthTimeout = 2 * time.Second

// NewRouter собирает gin engine со всеми маршрутами API
func NewRouter(h *Handler, health HealthCheck, logger *zap.Logger) *gin.Engine {
	router := gin.New()
	router.Use(RequestID(), AccessLog(logger), gin.Recovery())

	router.NoRoute(func(c *gin.Context) {
		respondFail(c, http.StatusNotFound, "route not found")
	})

	router.GET("/healthz", func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(c.Request.Context(), healthTimeout)
		defer cancel()

		if health != nil {
			if err := health(ctx); err != nil {
				logger.Warn("Health check failed", zap.Error(err))
				respondFail(c, http.StatusServiceUnavailable, "database unavailable")
				return
			}
		}
		respondOK(c, http.StatusOK, "Server is running", nil)
	})

	api := router.Group("/api")

	users := api.Group("/users")
	{
		users.POST("", h.RegisterUser)
		users.GET("/:id", h.GetUser)
	}

	applications := api.Group("/applications")
	{
		applications.POST("", RequireUser(), h.ApplyToListing)
		applications.GET("/:id", h.GetApplication)
		applications.PUT("/:id/status", h.UpdateApplicationStatus)
		applications.PUT("/:id/confirm", h.ConfirmApplication)
		applications.GET("/listing/:type/:id", h.ListApplicationsByListing)
		applications.GET("/applicant/:userId", h.ListApplicationsByApplicant)
	}

	appointments := api.Group("/appointments")
	{
		appointments.POST("", h.BookDirectly)
		appointments.GET("/user/:userId", h.ListAppointmentsByUser)
		appointments.GET("/tutor/:tutorId", h.ListAppointmentsByTutor)
		appointments.GET("/:id", h.GetAppointment)
		appointments.PUT("/:id/confirm", h.ConfirmAppointment)
		appointments.PUT("/:id/cancel", h.CancelAppointment)
		appointments.PUT("/:id/complete", h.CompleteAppointment)
	}

	h.listingRoutes(api.Group("/student-requests"), model.ListingTypeStudentRequest)
	h.listingRoutes(api.Group("/tutor-profiles"), model.ListingTypeTutorProfile)

	notifications := api.Group("/notifications", RequireUser())
	{
		notifications.GET("", h.ListNotifications)
		notifications.GET("/unread-count", h.UnreadCount)
		notifications.PUT("/read-all", h.MarkAllNotificationsRead)
		notifications.PUT("/:id/read", h.MarkNotificationRead)
	}

	reviews := api.Group("/reviews")
	{
		reviews.POST("", RequireUser(), h.CreateReview)
		reviews.GET("/tutor/:tutorId", h.ReviewsForTutor)
		reviews.GET("/user/:userId", h.ReviewsByUser)
		reviews.GET("/:id", h.GetReview)
	}

	api.GET("/points/:userId", h.GetPoints)

	blacklist := api.Group("/blacklist", RequireUser())
	{
		blacklist.GET("", h.ListBlacklist)
		blacklist.POST("", h.AddToBlacklist)
		blacklist.DELETE("/:blockedUserId", h.RemoveFromBlacklist)
	}

	return router
}
