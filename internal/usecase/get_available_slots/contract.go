package get_available_slots

import (
	"context"
	"time"

	"github.com/lex4u/BSM-SchedulingService/internal/domain"
)

// AppointmentRepository интерфейс репозитория записей
type AppointmentRepository interface {
	// GetByStaffDay получает записи мастера на конкретную дату
	GetByStaffDay(ctx context.Context, filter domain.StaffDayFilter) ([]*domain.Appointment, error)
}

// DirectoryRepository интерфейс справочника мастеров и услуг
type DirectoryRepository interface {
	GetStaffByID(ctx context.Context, id int64) (*domain.Staff, error)
	GetServiceByID(ctx context.Context, id int64) (*domain.Service, error)
}

// ScheduleConfigRepository интерфейс репозитория конфигурации расписания
type ScheduleConfigRepository interface {
	Get(ctx context.Context) (*domain.ScheduleConfig, error)
}

// TimeProvider интерфейс для получения текущего времени в таймзоне салона
type TimeProvider interface {
	Now() time.Time
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
