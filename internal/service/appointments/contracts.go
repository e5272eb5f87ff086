package appointments

import (
	"context"
	"time"

	"github.com/lex4u/BSM-SchedulingService/internal/domain"
)

// AppointmentRepository интерфейс репозитория записей
type AppointmentRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Appointment, error)
	GetByStaffDay(ctx context.Context, filter domain.StaffDayFilter) ([]*domain.Appointment, error)
	UpdateStatus(ctx context.Context, id int64, status domain.AppointmentStatus) error
	Cancel(ctx context.Context, id int64, reason string) error
	Delete(ctx context.Context, id int64) error
}

// ActivityRepository интерфейс для чтения визитов и продаж
type ActivityRepository interface {
	GetSessionsByAppointment(ctx context.Context, appointmentID int64) ([]domain.CheckInSession, error)
	GetSalesByAppointment(ctx context.Context, appointmentID int64) ([]domain.SaleRecord, error)
	GetSessionsByAppointments(ctx context.Context, appointmentIDs []int64) (map[int64][]domain.CheckInSession, error)
	GetSalesByAppointments(ctx context.Context, appointmentIDs []int64) (map[int64][]domain.SaleRecord, error)
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
