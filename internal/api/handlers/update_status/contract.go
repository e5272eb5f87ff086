package update_status

import (
	"context"

	"github.com/lex4u/BSM-SchedulingService/internal/service/appointments/models"
)

type AppointmentService interface {
	UpdateStatus(ctx context.Context, id int64, req *models.UpdateStatusRequest) error
	GetByID(ctx context.Context, id int64) (*models.AppointmentResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
