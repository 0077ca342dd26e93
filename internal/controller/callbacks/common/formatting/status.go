package formatting

import "github.com/Freeeeeet/tutor_market/internal/model"

// StatusDisplay представляет отображение статуса
type StatusDisplay struct {
	Emoji string
	Text  string
}

// GetAppointmentStatusDisplay возвращает emoji и текст для статуса встречи
func GetAppointmentStatusDisplay(status model.AppointmentStatus) StatusDisplay {
	displays := map[model.AppointmentStatus]StatusDisplay{
		model.AppointmentStatusPending:   {"⏳", "Ожидает подтверждения"},
		model.AppointmentStatusConfirmed: {"✅", "Подтверждена"},
		model.AppointmentStatusCompleted: {"✔️", "Проведена"},
		model.AppointmentStatusCancelled: {"❌", "Отменена"},
	}

	if display, ok := displays[status]; ok {
		return display
	}

	return StatusDisplay{"❓", "Неизвестно"}
}

// GetApplicationStatusDisplay возвращает emoji и текст для статуса заявки
func GetApplicationStatusDisplay(status model.ApplicationStatus) StatusDisplay {
	displays := map[model.ApplicationStatus]StatusDisplay{
		model.ApplicationStatusPending:   {"⏳", "На рассмотрении"},
		model.ApplicationStatusAccepted:  {"🤝", "Принята"},
		model.ApplicationStatusConfirmed: {"✅", "Подтверждена"},
		model.ApplicationStatusRejected:  {"🚫", "Отклонена"},
	}

	if display, ok := displays[status]; ok {
		return display
	}

	return StatusDisplay{"❓", "Неизвестно"}
}
