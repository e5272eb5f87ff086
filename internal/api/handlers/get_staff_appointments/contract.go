package get_staff_appointments

import (
	"context"

	"github.com/lex4u/BSM-SchedulingService/internal/service/appointments/models"
)

type AppointmentService interface {
	GetStaffDay(ctx context.Context, req *models.GetStaffDayRequest) (*models.AppointmentListResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
