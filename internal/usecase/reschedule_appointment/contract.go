package reschedule_appointment

import (
	"context"
	"time"

	"github.com/lex4u/BSM-SchedulingService/internal/domain"
)

// AppointmentRepository интерфейс репозитория записей
type AppointmentRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Appointment, error)
	// GetByStaffDay внутри транзакции блокирует записи мастера (FOR UPDATE)
	GetByStaffDay(ctx context.Context, filter domain.StaffDayFilter) ([]*domain.Appointment, error)
	Reschedule(ctx context.Context, appt *domain.Appointment) error
}

// ActivityRepository интерфейс для чтения визитов и продаж записи
type ActivityRepository interface {
	GetSessionsByAppointment(ctx context.Context, appointmentID int64) ([]domain.CheckInSession, error)
	GetSalesByAppointment(ctx context.Context, appointmentID int64) ([]domain.SaleRecord, error)
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

// TransactionManager интерфейс для управления транзакциями
type TransactionManager interface {
	DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error
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
