package keyboard

import (
	"fmt"

	"github.com/Freeeeeet/tutor_market/internal/model"
	"github.com/go-telegram/bot/models"
)

// Префиксы callback data действий
const (
	AcceptApplicationPrefix   = "app_accept:"    // app_accept:application_id
	RejectApplicationPrefix   = "app_reject:"    // app_reject:application_id
	ConfirmAppointmentPrefix  = "appt_confirm:"  // appt_confirm:appointment_id
	CancelAppointmentPrefix   = "appt_cancel:"   // appt_cancel:appointment_id
	CompleteAppointmentPrefix = "appt_complete:" // appt_complete:appointment_id
)

// ApplicationActions кнопки Принять/Отклонить для ожидающей заявки
func ApplicationActions(app *model.Application) *models.InlineKeyboardMarkup {
	b := NewBuilder()
	if app.IsPending() {
		b.Row(
			Button("✅ Принять", fmt.Sprintf("%s%d", AcceptApplicationPrefix, app.ID)),
			Button("❌ Отклонить", fmt.Sprintf("%s%d", RejectApplicationPrefix, app.ID)),
		)
	}
	return b.Build()
}

// AppointmentActions кнопки для встречи с учётом того, кто смотрит.
// Подтверждает репетитор, отменяет ученик, завершить может любой участник.
func AppointmentActions(appt *model.Appointment, viewerID string) *models.InlineKeyboardMarkup {
	b := NewBuilder()
	if appt.Status.IsTerminal() {
		return b.Build()
	}

	var row []models.InlineKeyboardButton
	if viewerID == appt.TutorID && appt.Status.CanTransitionTo(model.AppointmentStatusConfirmed) {
		row = append(row, Button("✅ Подтвердить", fmt.Sprintf("%s%d", ConfirmAppointmentPrefix, appt.ID)))
	}
	if viewerID == appt.StudentID && appt.Status.CanTransitionTo(model.AppointmentStatusCancelled) {
		row = append(row, Button("🚫 Отменить", fmt.Sprintf("%s%d", CancelAppointmentPrefix, appt.ID)))
	}
	if appt.Status.CanTransitionTo(model.AppointmentStatusCompleted) {
		row = append(row, Button("✔️ Завершить", fmt.Sprintf("%s%d", CompleteAppointmentPrefix, appt.ID)))
	}

	return b.Row(row...).Build()
}
