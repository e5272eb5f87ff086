package reschedule_appointment

import (
	"time"

	"github.com/lex4u/BSM-SchedulingService/pkg/types"
)

// Request модель запроса на перенос записи.
// Мастер и услуга тоже могут меняться: перенос к другому мастеру
// проверяется против календаря нового мастера.
type Request struct {
	AppointmentID int64            // ID переносимой записи
	StaffID       int64            // Новый (или прежний) мастер
	ServiceID     int64            // Новая (или прежняя) услуга
	Date          time.Time        // Новая дата
	StartTime     types.TimeString // Новое время начала
}

// Response модель ответа с обновлённой записью
type Response struct {
	ID              int64
	ClientID        int64
	StaffID         int64
	ServiceID       int64
	Date            time.Time
	StartTime       types.TimeString
	DurationMinutes int
	Status          string
	ServiceName     string
	ServicePrice    float64
	Notes           *string
	CreatedAt       time.Time
	UpdatedAt       time.Time
}
