package update_schedule_config

import (
	"context"

	"github.com/lex4u/BSM-SchedulingService/internal/service/scheduleconfig/models"
)

type ScheduleConfigService interface {
	Update(ctx context.Context, req *models.UpdateScheduleConfigRequest) (*models.ScheduleConfigResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
