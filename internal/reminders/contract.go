package reminders

import (
	"context"
	"time"

	"github.com/lex4u/BSM-SchedulingService/internal/domain"
)

// AppointmentRepository интерфейс репозитория записей
type AppointmentRepository interface {
	GetByStaffDay(ctx context.Context, filter domain.StaffDayFilter) ([]*domain.Appointment, error)
}

// DirectoryRepository интерфейс справочника мастеров и клиентов
type DirectoryRepository interface {
	ListActiveStaff(ctx context.Context) ([]*domain.Staff, error)
	GetClientByID(ctx context.Context, id int64) (*domain.Client, error)
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
