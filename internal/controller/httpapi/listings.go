package httpapi

import (
	"net/http"

	"github.com/Freeeeeet/tutor_market/internal/model"
	"github.com/Freeeeeet/tutor_market/internal/service"
	"github.com/gin-gonic/gin"
)

const defaultNearbyRadiusKm = 10

type NearbyQuery struct {
	Latitude  float64 `form:"lat" binding:"latitude"`
	Longitude float64 `form:"lng" binding:"longitude"`
	RadiusKm  float64 `form:"radius" binding:"gte=0,lte=500"`
	Subject   string  `form:"subject"`
}

// listingRoutes регистрирует маршруты одного вида объявлений
func (h *Handler) listingRoutes(g *gin.RouterGroup, listingType model.ListingType) {
	g.POST("", RequireUser(), h.createListing(listingType))
	g.GET("/nearby", h.nearbyListings(listingType))
	g.GET("/:id", h.getListing(listingType))
}

func (h *Handler) createListing(listingType model.ListingType) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req CreateListingRequest
		if !bindJSON(c, &req) {
			return
		}

		listing, err := h.listings.Create(c.Request.Context(), service.CreateListingInput{
			Type:              listingType,
			OwnerID:           currentUser(c),
			SubjectID:         req.SubjectID,
			SubjectName:       req.SubjectName,
			Address:           req.Address,
			Latitude:          req.Latitude,
			Longitude:         req.Longitude,
			AvailableTime:     req.AvailableTime,
			ChildName:         req.ChildName,
			ChildGrade:        req.ChildGrade,
			HourlyRateMin:     req.HourlyRateMin,
			HourlyRateMax:     req.HourlyRateMax,
			Requirements:      req.Requirements,
			HourlyRate:        req.HourlyRate,
			Description:       req.Description,
			TargetGradeLevels: req.TargetGradeLevels,
		})
		if err != nil {
			h.respondError(c, err)
			return
		}

		respondOK(c, http.StatusCreated, "Listing created", listing)
	}
}

func (h *Handler) getListing(listingType model.ListingType) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := pathID(c, "id")
		if !ok {
			return
		}

		listing, err := h.listings.GetByID(c.Request.Context(), id, listingType)
		if err != nil {
			h.respondError(c, err)
			return
		}

		respondOK(c, http.StatusOK, "", listing)
	}
}

func (h *Handler) nearbyListings(listingType model.ListingType) gin.HandlerFunc {
	return func(c *gin.Context) {
		var q NearbyQuery
		if err := c.ShouldBindQuery(&q); err != nil {
			respondFail(c, http.StatusBadRequest, "invalid query: "+err.Error())
			return
		}
		if q.RadiusKm == 0 {
			q.RadiusKm = defaultNearbyRadiusKm
		}

		listings, err := h.listings.Nearby(c.Request.Context(), listingType, q.Latitude, q.Longitude, q.RadiusKm, q.Subject)
		if err != nil {
			h.respondError(c, err)
			return
		}

		respondOK(c, http.StatusOK, "", nonNil(listings))
	}
}
