package httpapi

import (
	"net/http"

	"github.com/Freeeeeet/tutor_market/internal/service"
	"github.com/gin-gonic/gin"
)

// CreateReview POST /api/reviews
func (h *Handler) CreateReview(c *gin.Context) {
	var req CreateReviewRequest
	if !bindJSON(c, &req) {
		return
	}

	review, err := h.reviews.Create(c.Request.Context(), service.CreateReviewInput{
		AppointmentID: req.AppointmentID,
		ReviewerID:    currentUser(c),
		Rating:        req.Rating,
		Comment:       req.Comment,
	})
	if err != nil {
		h.respondError(c, err)
		return
	}

	respondOK(c, http.StatusCreated, "Review created", review)
}

// GetReview GET /api/reviews/:id
func (h *Handler) GetReview(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	review, err := h.reviews.GetByID(c.Request.Context(), id)
	if err != nil {
		h.respondError(c, err)
		return
	}

	respondOK(c, http.StatusOK, "", review)
}

// ReviewsForTutor GET /api/reviews/tutor/:tutorId
func (h *Handler) ReviewsForTutor(c *gin.Context) {
	res, err := h.reviews.ForUser(c.Request.Context(), c.Param("tutorId"))
	if err != nil {
		h.respondError(c, err)
		return
	}

	respondOK(c, http.StatusOK, "", res)
}

// ReviewsByUser GET /api/reviews/user/:userId
func (h *Handler) ReviewsByUser(c *gin.Context) {
	reviews, err := h.reviews.ByReviewer(c.Request.Context(), c.Param("userId"))
	if err != nil {
		h.respondError(c, err)
		return
	}

	respondOK(c, http.StatusOK, "", nonNil(reviews))
}
