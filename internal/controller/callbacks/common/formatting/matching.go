package formatting

import (
	"fmt"
	"html"
	"strings"

	"github.com/Freeeeeet/tutor_market/internal/model"
)

// FormatAppointment форматирует встречу. Роль собеседника определяется по viewerID
func FormatAppointment(appt *model.Appointment, viewerID string) string {
	display := GetAppointmentStatusDisplay(appt.Status)

	counterpart := "👨‍🏫 Репетитор: " + html.EscapeString(appt.TutorID)
	if viewerID == appt.TutorID {
		counterpart = "🧑‍🎓 Ученик: " + html.EscapeString(appt.StudentID)
	}

	var sb strings.Builder
	fmt.Fprintf(&sb, "%s <b>Встреча #%d</b>\n\n", display.Emoji, appt.ID)
	fmt.Fprintf(&sb, "📚 Предмет: %s\n", html.EscapeString(appt.SubjectName))
	fmt.Fprintf(&sb, "%s\n", counterpart)
	fmt.Fprintf(&sb, "📅 Когда: %s\n", FormatDateTime(appt.AppointmentTime))
	fmt.Fprintf(&sb, "⏱ Длительность: %s\n", FormatDuration(appt.Duration))
	if appt.Address != "" {
		fmt.Fprintf(&sb, "📍 Адрес: %s\n", html.EscapeString(appt.Address))
	}
	fmt.Fprintf(&sb, "💰 Стоимость: %s\n", appt.TotalAmount)
	fmt.Fprintf(&sb, "📊 Статус: %s", display.Text)

	return sb.String()
}

// FormatApplication форматирует входящую заявку для владельца объявления
func FormatApplication(app *model.Application) string {
	display := GetApplicationStatusDisplay(app.Status)

	name := app.ApplicantName
	if name == "" {
		name = app.ApplicantID
	}

	var sb strings.Builder
	fmt.Fprintf(&sb, "%s <b>Заявка #%d</b>\n\n", display.Emoji, app.ID)
	fmt.Fprintf(&sb, "📋 Объявление: %s #%d\n", app.ListingType.DisplayName(), app.ListingID)
	fmt.Fprintf(&sb, "👤 Кандидат: %s\n", html.EscapeString(name))
	if app.ApplicantPhone != "" {
		fmt.Fprintf(&sb, "📞 Телефон: %s\n", html.EscapeString(app.ApplicantPhone))
	}
	if app.Message != "" {
		fmt.Fprintf(&sb, "💬 %s\n", html.EscapeString(app.Message))
	}
	fmt.Fprintf(&sb, "📊 Статус: %s", display.Text)

	return sb.String()
}

// FormatNotification форматирует уведомление для отправки в чат
func FormatNotification(n *model.Notification) string {
	return fmt.Sprintf("🔔 <b>%s</b>\n\n%s", html.EscapeString(n.Title), html.EscapeString(n.Content))
}
