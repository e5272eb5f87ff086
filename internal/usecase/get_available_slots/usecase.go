package get_available_slots

import (
	"context"
	"errors"
	"fmt"

	"github.com/lex4u/BSM-SchedulingService/internal/domain"
	directoryRepo "github.com/lex4u/BSM-SchedulingService/internal/infra/storage/directory"
	configRepo "github.com/lex4u/BSM-SchedulingService/internal/infra/storage/scheduleconfig"
	"github.com/lex4u/BSM-SchedulingService/internal/scheduling"
	"github.com/lex4u/BSM-SchedulingService/pkg/types"
)

// UseCase use case для получения сетки слотов мастера на день
type UseCase struct {
	appointmentRepo AppointmentRepository
	directoryRepo   DirectoryRepository
	configRepo      ScheduleConfigRepository
	timeProvider    TimeProvider
	logger          Logger
}

// NewUseCase создает новый экземпляр use case.
// timeProvider обязан отдавать время в таймзоне салона.
func NewUseCase(
	appointmentRepo AppointmentRepository,
	directoryRepo DirectoryRepository,
	configRepo ScheduleConfigRepository,
	timeProvider TimeProvider,
	logger Logger,
) *UseCase {
	return &UseCase{
		appointmentRepo: appointmentRepo,
		directoryRepo:   directoryRepo,
		configRepo:      configRepo,
		timeProvider:    timeProvider,
		logger:          logger,
	}
}

// Execute выполняет use case получения сетки слотов
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("GetAvailableSlots: staff=%d, service=%d, date=%s",
		req.StaffID, req.ServiceID, req.Date.Format(domain.DateFormat))

	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("GetAvailableSlots: validation failed: %v", err)
		return nil, err
	}

	// 2. Получаем текущее время салона
	now := uc.timeProvider.Now()

	// 3. Дата в прошлом не обслуживается
	if isDateInPast(req.Date, now) {
		uc.logger.Warn("GetAvailableSlots: date %s is in the past", req.Date.Format(domain.DateFormat))
		return nil, ErrInvalidDate
	}

	// 4. Получаем мастера
	staff, err := uc.directoryRepo.GetStaffByID(ctx, req.StaffID)
	if err != nil {
		if errors.Is(err, directoryRepo.ErrStaffNotFound) {
			uc.logger.Warn("GetAvailableSlots: staff id=%d not found", req.StaffID)
			return nil, ErrStaffNotFound
		}
		uc.logger.Error("GetAvailableSlots: failed to get staff id=%d: %v", req.StaffID, err)
		return nil, fmt.Errorf("%w: failed to get staff: %v", ErrInternal, err)
	}
	if !staff.Active {
		uc.logger.Warn("GetAvailableSlots: staff id=%d is not active", req.StaffID)
		return nil, ErrStaffInactive
	}

	// 5. Получаем услугу (её длительность определяет интервал слота)
	service, err := uc.directoryRepo.GetServiceByID(ctx, req.ServiceID)
	if err != nil {
		if errors.Is(err, directoryRepo.ErrServiceNotFound) {
			uc.logger.Warn("GetAvailableSlots: service id=%d not found", req.ServiceID)
			return nil, ErrServiceNotFound
		}
		uc.logger.Error("GetAvailableSlots: failed to get service id=%d: %v", req.ServiceID, err)
		return nil, fmt.Errorf("%w: failed to get service: %v", ErrInternal, err)
	}
	if !service.Active {
		uc.logger.Warn("GetAvailableSlots: service id=%d is not active", req.ServiceID)
		return nil, ErrServiceInactive
	}

	// 6. Получаем конфигурацию расписания
	config, err := uc.configRepo.Get(ctx)
	if err != nil && !errors.Is(err, configRepo.ErrConfigNotFound) {
		uc.logger.Error("GetAvailableSlots: failed to get schedule config: %v", err)
		return nil, fmt.Errorf("%w: failed to get schedule config: %v", ErrInternal, err)
	}

	// Если конфигурация не найдена, используем дефолтные значения
	if config == nil {
		config = defaultScheduleConfig()
		uc.logger.Info("GetAvailableSlots: using default schedule config")
	}

	// 7. Выходной день: отдаем пустую сетку, а не ошибку
	if config.IsClosedOn(req.Date.Weekday()) {
		uc.logger.Info("GetAvailableSlots: salon is closed on %s", req.Date.Format(domain.DateFormat))
		return &Response{
			Date:      req.Date,
			StaffID:   req.StaffID,
			ServiceID: req.ServiceID,
			Slots:     []scheduling.Slot{},
		}, nil
	}

	// 8. Генерируем сетку кандидатов
	candidates, err := scheduling.GenerateSlots(
		config.OpenTime,
		config.CloseTime,
		config.SlotGranularityMinutes,
		service.DurationMinutes,
	)
	if err != nil {
		uc.logger.Error("GetAvailableSlots: failed to generate slots: %v", err)
		return nil, fmt.Errorf("%w: failed to generate slots: %v", ErrInternal, err)
	}

	// 9. Получаем записи мастера на эту дату (без отменённых и absent)
	appointments, err := uc.appointmentRepo.GetByStaffDay(ctx, domain.StaffDayFilter{
		StaffID: req.StaffID,
		Date:    req.Date,
	})
	if err != nil {
		uc.logger.Error("GetAvailableSlots: failed to get appointments: %v", err)
		return nil, fmt.Errorf("%w: failed to get appointments: %v", ErrInternal, err)
	}

	// 10. Размечаем доступность
	busy := scheduling.BusyIntervals(appointments)
	slots, err := scheduling.FilterAvailable(
		candidates,
		service.DurationMinutes,
		busy,
		isSameDay(req.Date, now),
		types.NewTimeString(now),
		config.MinBookingNoticeMinutes,
	)
	if err != nil {
		uc.logger.Error("GetAvailableSlots: failed to filter slots: %v", err)
		return nil, fmt.Errorf("%w: failed to filter slots: %v", ErrInternal, err)
	}

	uc.logger.Info("GetAvailableSlots: generated %d slots for staff=%d, service=%d, date=%s",
		len(slots), req.StaffID, req.ServiceID, req.Date.Format(domain.DateFormat))

	return &Response{
		Date:      req.Date,
		StaffID:   req.StaffID,
		ServiceID: req.ServiceID,
		Slots:     slots,
	}, nil
}

// defaultScheduleConfig возвращает конфигурацию по умолчанию
func defaultScheduleConfig() *domain.ScheduleConfig {
	return &domain.ScheduleConfig{
		OpenTime:                types.TimeString(domain.DefaultOpenTime),
		CloseTime:               types.TimeString(domain.DefaultCloseTime),
		SlotGranularityMinutes:  domain.DefaultSlotGranularityMinutes,
		MinBookingNoticeMinutes: domain.DefaultMinBookingNoticeMinutes,
	}
}
