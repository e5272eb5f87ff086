package create_appointment

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

// UseCase use case для создания записи
type UseCase struct {
	appointmentRepo AppointmentRepository
	directoryRepo   DirectoryRepository
	configRepo      ScheduleConfigRepository
	txManager       TransactionManager
	timeProvider    TimeProvider
	logger          Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	appointmentRepo AppointmentRepository,
	directoryRepo DirectoryRepository,
	configRepo ScheduleConfigRepository,
	txManager TransactionManager,
	timeProvider TimeProvider,
	logger Logger,
) *UseCase {
	return &UseCase{
		appointmentRepo: appointmentRepo,
		directoryRepo:   directoryRepo,
		configRepo:      configRepo,
		txManager:       txManager,
		timeProvider:    timeProvider,
		logger:          logger,
	}
}

// Execute выполняет use case создания записи.
// Проверка пересечений и вставка выполняются в сериализуемой транзакции
// с блокировкой записей мастера, чтобы два параллельных запроса на один
// слот не прошли оба.
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("CreateAppointment: client=%d, staff=%d, service=%d, date=%s, time=%s",
		req.ClientID, req.StaffID, req.ServiceID, req.Date.Format(domain.DateFormat), req.StartTime)

	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("CreateAppointment: validation failed: %v", err)
		return nil, err
	}

	// 2. Получаем текущее время салона
	now := uc.timeProvider.Now()

	// 3. Дата в прошлом не обслуживается
	if isDateInPast(req.Date, now) {
		uc.logger.Warn("CreateAppointment: date %s is in the past", req.Date.Format(domain.DateFormat))
		return nil, ErrInvalidDate
	}

	// 4. Проверяем справочники (вне транзакции: справочники записи не блокируют)
	staff, err := uc.directoryRepo.GetStaffByID(ctx, req.StaffID)
	if err != nil {
		if errors.Is(err, directoryRepo.ErrStaffNotFound) {
			uc.logger.Warn("CreateAppointment: staff id=%d not found", req.StaffID)
			return nil, ErrStaffNotFound
		}
		uc.logger.Error("CreateAppointment: failed to get staff id=%d: %v", req.StaffID, err)
		return nil, fmt.Errorf("%w: failed to get staff: %v", ErrInternal, err)
	}
	if !staff.Active {
		uc.logger.Warn("CreateAppointment: staff id=%d is not active", req.StaffID)
		return nil, ErrStaffInactive
	}

	service, err := uc.directoryRepo.GetServiceByID(ctx, req.ServiceID)
	if err != nil {
		if errors.Is(err, directoryRepo.ErrServiceNotFound) {
			uc.logger.Warn("CreateAppointment: service id=%d not found", req.ServiceID)
			return nil, ErrServiceNotFound
		}
		uc.logger.Error("CreateAppointment: failed to get service id=%d: %v", req.ServiceID, err)
		return nil, fmt.Errorf("%w: failed to get service: %v", ErrInternal, err)
	}
	if !service.Active {
		uc.logger.Warn("CreateAppointment: service id=%d is not active", req.ServiceID)
		return nil, ErrServiceInactive
	}

	if _, err := uc.directoryRepo.GetClientByID(ctx, req.ClientID); err != nil {
		if errors.Is(err, directoryRepo.ErrClientNotFound) {
			uc.logger.Warn("CreateAppointment: client id=%d not found", req.ClientID)
			return nil, ErrClientNotFound
		}
		uc.logger.Error("CreateAppointment: failed to get client id=%d: %v", req.ClientID, err)
		return nil, fmt.Errorf("%w: failed to get client: %v", ErrInternal, err)
	}

	var result *domain.Appointment

	// 5. Операции с календарём выполняем в сериализуемой транзакции
	err = uc.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		// 5.1. Конфигурация расписания
		config, err := uc.configRepo.Get(txCtx)
		if err != nil && !errors.Is(err, configRepo.ErrConfigNotFound) {
			uc.logger.Error("CreateAppointment: failed to get schedule config: %v", err)
			return fmt.Errorf("%w: failed to get schedule config: %v", ErrInternal, err)
		}
		if config == nil {
			config = defaultScheduleConfig()
			uc.logger.Info("CreateAppointment: using default schedule config")
		}

		// 5.2. Выходной день
		if config.IsClosedOn(req.Date.Weekday()) {
			uc.logger.Warn("CreateAppointment: salon is closed on %s", req.Date.Format(domain.DateFormat))
			return ErrSalonClosed
		}

		// 5.3. Рабочие часы
		if err := validateBusinessHours(req.StartTime, service.DurationMinutes, config); err != nil {
			uc.logger.Warn("CreateAppointment: business hours validation failed: %v", err)
			return err
		}

		// 5.4. Минимальное время уведомления (только для записи на сегодня)
		if err := validateBookingNotice(req.Date, req.StartTime, now, config.MinBookingNoticeMinutes); err != nil {
			uc.logger.Warn("CreateAppointment: booking notice validation failed: %v", err)
			return err
		}

		// 5.5. Записи мастера на эту дату с блокировкой (FOR UPDATE)
		appointments, err := uc.appointmentRepo.GetByStaffDay(txCtx, domain.StaffDayFilter{
			StaffID: req.StaffID,
			Date:    req.Date,
		})
		if err != nil {
			uc.logger.Error("CreateAppointment: failed to get appointments: %v", err)
			return fmt.Errorf("%w: failed to get appointments: %v", ErrInternal, err)
		}

		// 5.6. Проверка пересечений полуоткрытых интервалов
		if err := checkSlotIsFree(req.StartTime, service.DurationMinutes, appointments); err != nil {
			uc.logger.Warn("CreateAppointment: slot %s is not available for staff=%d", req.StartTime, req.StaffID)
			return err
		}

		// 5.7. Создаем запись с денормализацией данных услуги
		appt := &domain.Appointment{
			ClientID:        req.ClientID,
			StaffID:         req.StaffID,
			ServiceID:       req.ServiceID,
			Date:            req.Date,
			StartTime:       req.StartTime,
			DurationMinutes: service.DurationMinutes,
			Status:          domain.StatusScheduled,
			ServiceName:     service.Name,
			ServicePrice:    service.Price,
			Notes:           req.Notes,
		}

		created, err := uc.appointmentRepo.Create(txCtx, appt)
		if err != nil {
			uc.logger.Error("CreateAppointment: failed to create appointment: %v", err)
			return fmt.Errorf("%w: failed to create appointment: %v", ErrInternal, err)
		}

		result = created
		return nil
	})

	if err != nil {
		return nil, err
	}

	uc.logger.Info("CreateAppointment: successfully created appointment id=%d", result.ID)

	return &Response{
		ID:              result.ID,
		ClientID:        result.ClientID,
		StaffID:         result.StaffID,
		ServiceID:       result.ServiceID,
		Date:            result.Date,
		StartTime:       result.StartTime,
		DurationMinutes: result.DurationMinutes,
		Status:          string(result.Status),
		ServiceName:     result.ServiceName,
		ServicePrice:    result.ServicePrice,
		Notes:           result.Notes,
		CreatedAt:       result.CreatedAt,
		UpdatedAt:       result.UpdatedAt,
	}, nil
}

// checkSlotIsFree проверяет, что интервал [start, start+duration) не
// пересекается ни с одной записью мастера, занимающей календарь
func checkSlotIsFree(start types.TimeString, durationMinutes int, appointments []*domain.Appointment) error {
	end, err := start.AddMinutes(durationMinutes)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrInternal, err)
	}

	for _, b := range scheduling.BusyIntervals(appointments) {
		if scheduling.Overlaps(start, end, b.Start, b.End) {
			return ErrSlotNotAvailable
		}
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
	}
}
