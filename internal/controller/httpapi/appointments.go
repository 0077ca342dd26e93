package httpapi

import (
	"context"
	"net/http"

	"github.com/Freeeeeet/tutor_market/internal/model"
	"github.com/gin-gonic/gin"
)

// BookDirectly POST /api/appointments
func (h *Handler) BookDirectly(c *gin.Context) {
	var req BookAppointmentRequest
	if !bindJSON(c, &req) {
		return
	}

	appt, err := h.matching.BookDirectly(c.Request.Context(), req.toModel())
	if err != nil {
		h.respondError(c, err)
		return
	}

	respondOK(c, http.StatusCreated, "Appointment created", appt)
}

// GetAppointment GET /api/appointments/:id
func (h *Handler) GetAppointment(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	appt, err := h.matching.GetAppointment(c.Request.Context(), id)
	if err != nil {
		h.respondError(c, err)
		return
	}

	respondOK(c, http.StatusOK, "", appt)
}

// ListAppointmentsByUser GET /api/appointments/user/:userId
func (h *Handler) ListAppointmentsByUser(c *gin.Context) {
	appts, err := h.matching.ListAppointmentsByUser(c.Request.Context(), c.Param("userId"))
	if err != nil {
		h.respondError(c, err)
		return
	}

	respondOK(c, http.StatusOK, "", nonNil(appts))
}

// ListAppointmentsByTutor GET /api/appointments/tutor/:tutorId
func (h *Handler) ListAppointmentsByTutor(c *gin.Context) {
	appts, err := h.matching.ListAppointmentsByTutor(c.Request.Context(), c.Param("tutorId"))
	if err != nil {
		h.respondError(c, err)
		return
	}

	respondOK(c, http.StatusOK, "", nonNil(appts))
}

// ConfirmAppointment PUT /api/appointments/:id/confirm
func (h *Handler) ConfirmAppointment(c *gin.Context) {
	h.appointmentTransition(c, h.matching.ConfirmAppointment, model.AppointmentStatusConfirmed, "Appointment confirmed")
}

// CancelAppointment PUT /api/appointments/:id/cancel
func (h *Handler) CancelAppointment(c *gin.Context) {
	h.appointmentTransition(c, h.matching.CancelAppointment, model.AppointmentStatusCancelled, "Appointment cancelled")
}

// CompleteAppointment PUT /api/appointments/:id/complete
func (h *Handler) CompleteAppointment(c *gin.Context) {
	h.appointmentTransition(c, h.matching.CompleteAppointment, model.AppointmentStatusCompleted, "Appointment completed")
}

func (h *Handler) appointmentTransition(
	c *gin.Context,
	op func(ctx context.Context, id int64) (bool, error),
	status model.AppointmentStatus,
	message string,
) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	changed, err := op(c.Request.Context(), id)
	if err != nil {
		h.respondError(c, err)
		return
	}
	if !changed {
		respondFail(c, http.StatusNotFound, model.ErrAppointmentNotFound.Error())
		return
	}

	respondOK(c, http.StatusOK, message, gin.H{"id": id, "status": status})
}
