package scheduleconfig

import (
	"context"
	"errors"
	"fmt"

	"github.com/lex4u/BSM-SchedulingService/internal/domain"
	configRepo "github.com/lex4u/BSM-SchedulingService/internal/infra/storage/scheduleconfig"
	"github.com/lex4u/BSM-SchedulingService/internal/service/scheduleconfig/models"
	"github.com/lex4u/BSM-SchedulingService/pkg/types"
)

// Service сервис для работы с конфигурацией расписания салона
type Service struct {
	configRepo ScheduleConfigRepository
	logger     Logger
}

// NewService создает новый экземпляр сервиса конфигурации
func NewService(configRepo ScheduleConfigRepository, logger Logger) *Service {
	return &Service{
		configRepo: configRepo,
		logger:     logger,
	}
}

// Get получает конфигурацию расписания.
// Если конфигурация ещё не сохранялась, отдаются значения по умолчанию.
func (s *Service) Get(ctx context.Context) (*models.ScheduleConfigResponse, error) {
	s.logger.Info("Get: fetching schedule config")

	config, err := s.configRepo.Get(ctx)
	if err != nil {
		if errors.Is(err, configRepo.ErrConfigNotFound) {
			s.logger.Info("Get: no schedule config stored, returning defaults")
			return models.FromDomainScheduleConfig(defaultScheduleConfig()), nil
		}
		s.logger.Error("Get: repository error: %v", err)
		return nil, fmt.Errorf("%w: Get - repository error: %v", ErrInternal, err)
	}

	return models.FromDomainScheduleConfig(config), nil
}

// Update обновляет конфигурацию расписания, создавая её при первом вызове
func (s *Service) Update(ctx context.Context, req *models.UpdateScheduleConfigRequest) (*models.ScheduleConfigResponse, error) {
	s.logger.Info("Update: updating schedule config: open=%s, close=%s, granularity=%d, notice=%d",
		req.OpenTime, req.CloseTime, req.SlotGranularityMinutes, req.MinBookingNoticeMinutes)

	if err := validateRequest(req); err != nil {
		s.logger.Warn("Update: validation failed: %v", err)
		return nil, err
	}

	cfg := req.ToDomain()

	updated, err := s.configRepo.Update(ctx, cfg)
	if err != nil {
		if errors.Is(err, configRepo.ErrConfigNotFound) {
			created, createErr := s.configRepo.Create(ctx, cfg)
			if createErr != nil {
				s.logger.Error("Update: failed to create schedule config: %v", createErr)
				return nil, fmt.Errorf("%w: Update - failed to create config: %v", ErrInternal, createErr)
			}
			s.logger.Info("Update: schedule config created")
			return models.FromDomainScheduleConfig(created), nil
		}
		s.logger.Error("Update: repository error: %v", err)
		return nil, fmt.Errorf("%w: Update - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("Update: schedule config updated")
	return models.FromDomainScheduleConfig(updated), nil
}

// validateRequest валидирует конфигурацию расписания
func validateRequest(req *models.UpdateScheduleConfigRequest) error {
	open := types.TimeString(req.OpenTime)
	if err := open.Validate(); err != nil {
		return fmt.Errorf("%w: openTime must be in HH:MM format", ErrInvalidInput)
	}

	close := types.TimeString(req.CloseTime)
	if err := close.Validate(); err != nil {
		return fmt.Errorf("%w: closeTime must be in HH:MM format", ErrInvalidInput)
	}

	if !open.IsBefore(close) {
		return fmt.Errorf("%w: openTime must be before closeTime", ErrInvalidInput)
	}

	if req.SlotGranularityMinutes < domain.MinSlotGranularityMinutes ||
		req.SlotGranularityMinutes > domain.MaxSlotGranularityMinutes {
		return fmt.Errorf("%w: slotGranularityMinutes must be between %d and %d",
			ErrInvalidInput, domain.MinSlotGranularityMinutes, domain.MaxSlotGranularityMinutes)
	}

	if req.MinBookingNoticeMinutes < domain.MinNoticeMinutes ||
		req.MinBookingNoticeMinutes > domain.MaxNoticeMinutes {
		return fmt.Errorf("%w: minBookingNoticeMinutes must be between %d and %d",
			ErrInvalidInput, domain.MinNoticeMinutes, domain.MaxNoticeMinutes)
	}

	if len(req.ClosedWeekdays) > 6 {
		return fmt.Errorf("%w: at least one weekday must stay open", ErrInvalidInput)
	}

	seen := make(map[int]bool, len(req.ClosedWeekdays))
	for _, day := range req.ClosedWeekdays {
		if day < 0 || day > 6 {
			return fmt.Errorf("%w: closedWeekdays values must be between 0 and 6", ErrInvalidInput)
		}
		if seen[day] {
			return fmt.Errorf("%w: closedWeekdays must not repeat", ErrInvalidInput)
		}
		seen[day] = true
	}

	return nil
}

// defaultScheduleConfig возвращает конфигурацию по умолчанию
func defaultScheduleConfig() *domain.ScheduleConfig {
	return &domain.ScheduleConfig{
		OpenTime:                types.TimeString(domain.DefaultOpenTime),
		CloseTime:               types.TimeString(domain.DefaultCloseTime),
		SlotGranularityMinutes:  domain.DefaultSlotGranularityMinutes,
		MinBookingNoticeMinutes: domain.DefaultMinBookingNoticeMinutes,
		ClosedWeekdays:          []int{},
	}
}
