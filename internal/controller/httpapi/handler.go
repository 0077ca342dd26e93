package httpapi

import (
	"context"
	"net/http"
	"strconv"

	"github.com/Freeeeeet/tutor_market/internal/model"
	"github.com/Freeeeeet/tutor_market/internal/service"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// MatchingService операции жизненного цикла заявок и встреч
type MatchingService interface {
	ApplyToListing(ctx context.Context, listingID int64, listingType model.ListingType, applicantID, message string) (*model.Application, error)
	GetApplication(ctx context.Context, id int64) (*model.Application, error)
	UpdateApplicationStatus(ctx context.Context, id int64, status string) (bool, error)
	ConfirmApplication(ctx context.Context, id int64) (bool, error)
	ListApplicationsByListing(ctx context.Context, listingID int64, listingType model.ListingType) ([]*model.Application, error)
	ListApplicationsByApplicant(ctx context.Context, applicantID string) ([]*model.Application, error)

	BookDirectly(ctx context.Context, appt *model.Appointment) (*model.Appointment, error)
	GetAppointment(ctx context.Context, id int64) (*model.Appointment, error)
	ListAppointmentsByUser(ctx context.Context, userID string) ([]*model.Appointment, error)
	ListAppointmentsByTutor(ctx context.Context, tutorID string) ([]*model.Appointment, error)
	ConfirmAppointment(ctx context.Context, id int64) (bool, error)
	CancelAppointment(ctx context.Context, id int64) (bool, error)
	CompleteAppointment(ctx context.Context, id int64) (bool, error)
}

type ListingService interface {
	Create(ctx context.Context, in service.CreateListingInput) (*model.Listing, error)
	GetByID(ctx context.Context, id int64, listingType model.ListingType) (*model.Listing, error)
	Nearby(ctx context.Context, listingType model.ListingType, lat, lon, radiusKm float64, subjectName string) ([]service.NearbyListing, error)
}

type NotificationService interface {
	List(ctx context.Context, userID string, limit, offset int) ([]*model.Notification, error)
	UnreadCount(ctx context.Context, userID string) (int, error)
	MarkRead(ctx context.Context, id int64, userID string) error
	MarkAllRead(ctx context.Context, userID string) (int64, error)
}

type PointService interface {
	Total(ctx context.Context, userID string) (int, error)
	Records(ctx context.Context, userID string) ([]*model.PointRecord, error)
}

type BlacklistService interface {
	Add(ctx context.Context, userID, blockedUserID string) (*model.BlacklistEntry, error)
	Remove(ctx context.Context, userID, blockedUserID string) error
	List(ctx context.Context, userID string) ([]*model.BlacklistEntry, error)
}

type ReviewService interface {
	Create(ctx context.Context, in service.CreateReviewInput) (*model.Review, error)
	GetByID(ctx context.Context, id int64) (*model.Review, error)
	ForUser(ctx context.Context, userID string) (*service.ReviewWithSummary, error)
	ByReviewer(ctx context.Context, userID string) ([]*model.Review, error)
}

type UserService interface {
	RegisterUser(ctx context.Context, id, username, phone string, role model.UserRole) (*model.User, error)
	GetByID(ctx context.Context, id string) (*model.User, error)
}

// Services набор сервисов, которые обслуживает HTTP API
type Services struct {
	Matching      MatchingService
	Listings      ListingService
	Notifications NotificationService
	Points        PointService
	Blacklist     BlacklistService
	Users         UserService
	Reviews       ReviewService
}

type Handler struct {
	matching      MatchingService
	listings      ListingService
	notifications NotificationService
	points        PointService
	blacklist     BlacklistService
	users         UserService
	reviews       ReviewService
	logger        *zap.Logger
}

func NewHandler(s Services, logger *zap.Logger) *Handler {
	return &Handler{
		matching:      s.Matching,
		listings:      s.Listings,
		notifications: s.Notifications,
		points:        s.Points,
		blacklist:     s.Blacklist,
		users:         s.Users,
		reviews:       s.Reviews,
		logger:        logger,
	}
}

// pathID читает числовой параметр пути. При ошибке ответ уже отправлен.
func pathID(c *gin.Context, name string) (int64, bool) {
	id, err := strconv.ParseInt(c.Param(name), 10, 64)
	if err != nil || id <= 0 {
		respondFail(c, http.StatusBadRequest, "invalid "+name)
		return 0, false
	}
	return id, true
}

// bindJSON разбирает тело запроса. При ошибке ответ уже отправлен.
func bindJSON(c *gin.Context, dst any) bool {
	if err := c.ShouldBindJSON(dst); err != nil {
		respondFail(c, http.StatusBadRequest, "invalid request body: "+err.Error())
		return false
	}
	return true
}
