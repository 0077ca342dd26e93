package httpapi

import (
	"net/http"

	"github.com/Freeeeeet/tutor_market/internal/model"
	"github.com/gin-gonic/gin"
)

type PageQuery struct {
	Limit  int `form:"limit" binding:"gte=0"`
	Offset int `form:"offset" binding:"gte=0"`
}

// ListNotifications GET /api/notifications
func (h *Handler) ListNotifications(c *gin.Context) {
	var q PageQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		respondFail(c, http.StatusBadRequest, "invalid query: "+err.Error())
		return
	}

	items, err := h.notifications.List(c.Request.Context(), currentUser(c), q.Limit, q.Offset)
	if err != nil {
		h.respondError(c, err)
		return
	}

	respondOK(c, http.StatusOK, "", nonNil(items))
}

// UnreadCount GET /api/notifications/unread-count
func (h *Handler) UnreadCount(c *gin.Context) {
	count, err := h.notifications.UnreadCount(c.Request.Context(), currentUser(c))
	if err != nil {
		h.respondError(c, err)
		return
	}

	respondOK(c, http.StatusOK, "", UnreadCountResponse{Count: count})
}

// MarkNotificationRead PUT /api/notifications/:id/read
func (h *Handler) MarkNotificationRead(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	if err := h.notifications.MarkRead(c.Request.Context(), id, currentUser(c)); err != nil {
		h.respondError(c, err)
		return
	}

	respondOK(c, http.StatusOK, "Notification marked as read", nil)
}

// MarkAllNotificationsRead PUT /api/notifications/read-all
func (h *Handler) MarkAllNotificationsRead(c *gin.Context) {
	n, err := h.notifications.MarkAllRead(c.Request.Context(), currentUser(c))
	if err != nil {
		h.respondError(c, err)
		return
	}

	respondOK(c, http.StatusOK, "Notifications marked as read", gin.H{"updated": n})
}

// GetPoints GET /api/points/:userId
func (h *Handler) GetPoints(c *gin.Context) {
	userID := c.Param("userId")

	total, err := h.points.Total(c.Request.Context(), userID)
	if err != nil {
		h.respondError(c, err)
		return
	}
	records, err := h.points.Records(c.Request.Context(), userID)
	if err != nil {
		h.respondError(c, err)
		return
	}

	respondOK(c, http.StatusOK, "", PointsResponse{UserID: userID, Total: total, Records: nonNil(records)})
}

// ListBlacklist GET /api/blacklist
func (h *Handler) ListBlacklist(c *gin.Context) {
	entries, err := h.blacklist.List(c.Request.Context(), currentUser(c))
	if err != nil {
		h.respondError(c, err)
		return
	}

	respondOK(c, http.StatusOK, "", nonNil(entries))
}

// AddToBlacklist POST /api/blacklist
func (h *Handler) AddToBlacklist(c *gin.Context) {
	var req BlockUserRequest
	if !bindJSON(c, &req) {
		return
	}

	entry, err := h.blacklist.Add(c.Request.Context(), currentUser(c), req.BlockedUserID)
	if err != nil {
		h.respondError(c, err)
		return
	}

	respondOK(c, http.StatusCreated, "User blacklisted", entry)
}

// RemoveFromBlacklist DELETE /api/blacklist/:blockedUserId
func (h *Handler) RemoveFromBlacklist(c *gin.Context) {
	if err := h.blacklist.Remove(c.Request.Context(), currentUser(c), c.Param("blockedUserId")); err != nil {
		h.respondError(c, err)
		return
	}

	respondOK(c, http.StatusOK, "User removed from blacklist", nil)
}

// RegisterUser POST /api/users
func (h *Handler) RegisterUser(c *gin.Context) {
	var req RegisterUserRequest
	if !bindJSON(c, &req) {
		return
	}

	user, err := h.users.RegisterUser(c.Request.Context(), req.ID, req.Username, req.Phone, model.UserRole(req.Role))
	if err != nil {
		h.respondError(c, err)
		return
	}

	respondOK(c, http.StatusCreated, "User registered", user)
}

// GetUser GET /api/users/:id
func (h *Handler) GetUser(c *gin.Context) {
	user, err := h.users.GetByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.respondError(c, err)
		return
	}
	if user == nil {
		respondFail(c, http.StatusNotFound, model.ErrUserNotFound.Error())
		return
	}

	respondOK(c, http.StatusOK, "", user)
}
