package httpapi

import (
	"net/http"

	"github.com/Freeeeeet/tutor_market/internal/model"
	"github.com/gin-gonic/gin"
)

// ApplyToListing POST /api/applications
func (h *Handler) ApplyToListing(c *gin.Context) {
	var req CreateApplicationRequest
	if !bindJSON(c, &req) {
		return
	}

	listingType, err := model.ParseListingType(req.ListingType)
	if err != nil {
		h.respondError(c, err)
		return
	}

	app, err := h.matching.ApplyToListing(c.Request.Context(), req.ListingID, listingType, currentUser(c), req.Message)
	if err != nil {
		h.respondError(c, err)
		return
	}

	respondOK(c, http.StatusCreated, "Application submitted", app)
}

// GetApplication GET /api/applications/:id
func (h *Handler) GetApplication(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	app, err := h.matching.GetApplication(c.Request.Context(), id)
	if err != nil {
		h.respondError(c, err)
		return
	}

	respondOK(c, http.StatusOK, "", app)
}

// UpdateApplicationStatus PUT /api/applications/:id/status
func (h *Handler) UpdateApplicationStatus(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	var req UpdateApplicationStatusRequest
	if !bindJSON(c, &req) {
		return
	}

	updated, err := h.matching.UpdateApplicationStatus(c.Request.Context(), id, req.Status)
	if err != nil {
		h.respondError(c, err)
		return
	}
	if !updated {
		respondFail(c, http.StatusNotFound, model.ErrApplicationNotFound.Error())
		return
	}

	respondOK(c, http.StatusOK, "Application status updated", gin.H{"id": id, "status": req.Status})
}

// ConfirmApplication PUT /api/applications/:id/confirm
func (h *Handler) ConfirmApplication(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	confirmed, err := h.matching.ConfirmApplication(c.Request.Context(), id)
	if err != nil {
		h.respondError(c, err)
		return
	}
	if !confirmed {
		respondFail(c, http.StatusNotFound, "application not found or not accepted")
		return
	}

	respondOK(c, http.StatusOK, "Application confirmed", gin.H{"id": id, "status": model.ApplicationStatusConfirmed})
}

// ListApplicationsByListing GET /api/applications/listing/:type/:id
func (h *Handler) ListApplicationsByListing(c *gin.Context) {
	listingType, err := model.ParseListingType(c.Param("type"))
	if err != nil {
		h.respondError(c, err)
		return
	}
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	apps, err := h.matching.ListApplicationsByListing(c.Request.Context(), id, listingType)
	if err != nil {
		h.respondError(c, err)
		return
	}

	respondOK(c, http.StatusOK, "", nonNil(apps))
}

// ListApplicationsByApplicant GET /api/applications/applicant/:userId
func (h *Handler) ListApplicationsByApplicant(c *gin.Context) {
	apps, err := h.matching.ListApplicationsByApplicant(c.Request.Context(), c.Param("userId"))
	if err != nil {
		h.respondError(c, err)
		return
	}

	respondOK(c, http.StatusOK, "", nonNil(apps))
}

// nonNil отдаёт пустой массив вместо null
func nonNil[T any](items []T) []T {
	if items == nil {
		return []T{}
	}
	return items
}
