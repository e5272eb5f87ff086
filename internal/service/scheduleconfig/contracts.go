package scheduleconfig

import (
	"context"

	"github.com/lex4u/BSM-SchedulingService/internal/domain"
)

// ScheduleConfigRepository интерфейс репозитория конфигурации расписания
type ScheduleConfigRepository interface {
	Get(ctx context.Context) (*domain.ScheduleConfig, error)
	Update(ctx context.Context, cfg *domain.ScheduleConfig) (*domain.ScheduleConfig, error)
	Create(ctx context.Context, cfg *domain.ScheduleConfig) (*domain.ScheduleConfig, error)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
