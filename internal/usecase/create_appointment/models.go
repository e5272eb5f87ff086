package create_appointment

import (
	"time"

	"github.com/lex4u/BSM-SchedulingService/pkg/types"
)

// Request модель запроса на создание записи
type Request struct {
	ClientID  int64            // ID клиента
	StaffID   int64            // ID мастера
	ServiceID int64            // ID услуги
	Date      time.Time        // Дата записи (без времени)
	StartTime types.TimeString // Время начала, например "14:30"
	Notes     *string          // Комментарий клиента (опционально)
}

// Response модель ответа с созданной записью
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
