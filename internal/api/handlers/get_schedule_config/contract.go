package get_schedule_config

import (
	"context"

	"github.com/lex4u/BSM-SchedulingService/internal/service/scheduleconfig/models"
)

type ScheduleConfigService interface {
	Get(ctx context.Context) (*models.ScheduleConfigResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
