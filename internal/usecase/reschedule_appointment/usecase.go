package reschedule_appointment

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/lex4u/BSM-SchedulingService/internal/domain"
	apptRepo "github.com/lex4u/BSM-SchedulingService/internal/infra/storage/appointment"
	directoryRepo "github.com/lex4u/BSM-SchedulingService/internal/infra/storage/directory"
	configRepo "github.com/lex4u/BSM-SchedulingService/internal/infra/storage/scheduleconfig"
	"github.com/lex4u/BSM-SchedulingService/internal/scheduling"
	"github.com/lex4u/BSM-SchedulingService/pkg/types"
)

// UseCase use case для переноса записи
type UseCase struct {
	appointmentRepo AppointmentRepository
	activityRepo    ActivityRepository
	directoryRepo   DirectoryRepository
	configRepo      ScheduleConfigRepository
	txManager       TransactionManager
	timeProvider    TimeProvider
	logger          Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	appointmentRepo AppointmentRepository,
	activityRepo ActivityRepository,
	directoryRepo DirectoryRepository,
	configRepo ScheduleConfigRepository,
	txManager TransactionManager,
	timeProvider TimeProvider,
	logger Logger,
) *UseCase {
	return &UseCase{
		appointmentRepo: appointmentRepo,
		activityRepo:    activityRepo,
		directoryRepo:   directoryRepo,
		configRepo:      configRepo,
		txManager:       txManager,
		timeProvider:    timeProvider,
		logger:          logger,
	}
}

// Execute выполняет use case переноса записи.
// Решение о допустимости переноса принимается по действующему статусу
// (DeriveStatus), а не по сырому полю status. Проверка пересечений и
// обновление выполняются в сериализуемой транзакции, как при создании.
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("RescheduleAppointment: id=%d, staff=%d, service=%d, date=%s, time=%s",
		req.AppointmentID, req.StaffID, req.ServiceID, req.Date.Format(domain.DateFormat), req.StartTime)

	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("RescheduleAppointment: validation failed: %v", err)
		return nil, err
	}

	// 2. Получаем текущее время салона
	now := uc.timeProvider.Now()

	// 3. Дата в прошлом не обслуживается
	if isDateInPast(req.Date, now) {
		uc.logger.Warn("RescheduleAppointment: date %s is in the past", req.Date.Format(domain.DateFormat))
		return nil, ErrInvalidDate
	}

	// 4. Получаем переносимую запись
	appt, err := uc.appointmentRepo.GetByID(ctx, req.AppointmentID)
	if err != nil {
		if errors.Is(err, apptRepo.ErrAppointmentNotFound) {
			uc.logger.Warn("RescheduleAppointment: appointment id=%d not found", req.AppointmentID)
			return nil, ErrAppointmentNotFound
		}
		uc.logger.Error("RescheduleAppointment: failed to get appointment id=%d: %v", req.AppointmentID, err)
		return nil, fmt.Errorf("%w: failed to get appointment: %v", ErrInternal, err)
	}

	// 5. Проверяем разрешение на редактирование по действующему статусу
	if err := uc.checkEditable(ctx, appt, now); err != nil {
		return nil, err
	}

	// 6. Проверяем справочники (мастер и услуга могли смениться)
	staff, err := uc.directoryRepo.GetStaffByID(ctx, req.StaffID)
	if err != nil {
		if errors.Is(err, directoryRepo.ErrStaffNotFound) {
			uc.logger.Warn("RescheduleAppointment: staff id=%d not found", req.StaffID)
			return nil, ErrStaffNotFound
		}
		uc.logger.Error("RescheduleAppointment: failed to get staff id=%d: %v", req.StaffID, err)
		return nil, fmt.Errorf("%w: failed to get staff: %v", ErrInternal, err)
	}
	if !staff.Active {
		uc.logger.Warn("RescheduleAppointment: staff id=%d is not active", req.StaffID)
		return nil, ErrStaffInactive
	}

	service, err := uc.directoryRepo.GetServiceByID(ctx, req.ServiceID)
	if err != nil {
		if errors.Is(err, directoryRepo.ErrServiceNotFound) {
			uc.logger.Warn("RescheduleAppointment: service id=%d not found", req.ServiceID)
			return nil, ErrServiceNotFound
		}
		uc.logger.Error("RescheduleAppointment: failed to get service id=%d: %v", req.ServiceID, err)
		return nil, fmt.Errorf("%w: failed to get service: %v", ErrInternal, err)
	}
	if !service.Active && service.ID != appt.ServiceID {
		// Деактивированная услуга допустима только если она уже была на записи
		uc.logger.Warn("RescheduleAppointment: service id=%d is not active", req.ServiceID)
		return nil, ErrServiceInactive
	}

	// 7. Операции с календарём выполняем в сериализуемой транзакции
	err = uc.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		config, err := uc.configRepo.Get(txCtx)
		if err != nil && !errors.Is(err, configRepo.ErrConfigNotFound) {
			uc.logger.Error("RescheduleAppointment: failed to get schedule config: %v", err)
			return fmt.Errorf("%w: failed to get schedule config: %v", ErrInternal, err)
		}
		if config == nil {
			config = defaultScheduleConfig()
			uc.logger.Info("RescheduleAppointment: using default schedule config")
		}

		if config.IsClosedOn(req.Date.Weekday()) {
			uc.logger.Warn("RescheduleAppointment: salon is closed on %s", req.Date.Format(domain.DateFormat))
			return ErrSalonClosed
		}

		if err := validateBusinessHours(req.StartTime, service.DurationMinutes, config); err != nil {
			uc.logger.Warn("RescheduleAppointment: business hours validation failed: %v", err)
			return err
		}

		if err := validateBookingNotice(req.Date, req.StartTime, now, config.MinBookingNoticeMinutes); err != nil {
			uc.logger.Warn("RescheduleAppointment: booking notice validation failed: %v", err)
			return err
		}

		// Записи нового мастера на новую дату с блокировкой (FOR UPDATE)
		appointments, err := uc.appointmentRepo.GetByStaffDay(txCtx, domain.StaffDayFilter{
			StaffID: req.StaffID,
			Date:    req.Date,
		})
		if err != nil {
			uc.logger.Error("RescheduleAppointment: failed to get appointments: %v", err)
			return fmt.Errorf("%w: failed to get appointments: %v", ErrInternal, err)
		}

		// Проверка пересечений, исключая саму переносимую запись
		if err := checkSlotIsFree(req.StartTime, service.DurationMinutes, appointments, appt.ID); err != nil {
			uc.logger.Warn("RescheduleAppointment: slot %s is not available for staff=%d", req.StartTime, req.StaffID)
			return err
		}

		// Обновляем запись; денормализованные данные услуги снимаем заново
		appt.StaffID = req.StaffID
		appt.ServiceID = req.ServiceID
		appt.Date = req.Date
		appt.StartTime = req.StartTime
		appt.DurationMinutes = service.DurationMinutes
		appt.ServiceName = service.Name
		appt.ServicePrice = service.Price

		if err := uc.appointmentRepo.Reschedule(txCtx, appt); err != nil {
			uc.logger.Error("RescheduleAppointment: failed to reschedule appointment id=%d: %v", appt.ID, err)
			return fmt.Errorf("%w: failed to reschedule appointment: %v", ErrInternal, err)
		}

		return nil
	})

	if err != nil {
		return nil, err
	}

	uc.logger.Info("RescheduleAppointment: successfully rescheduled appointment id=%d", appt.ID)

	return &Response{
		ID:              appt.ID,
		ClientID:        appt.ClientID,
		StaffID:         appt.StaffID,
		ServiceID:       appt.ServiceID,
		Date:            appt.Date,
		StartTime:       appt.StartTime,
		DurationMinutes: appt.DurationMinutes,
		Status:          string(appt.Status),
		ServiceName:     appt.ServiceName,
		ServicePrice:    appt.ServicePrice,
		Notes:           appt.Notes,
		CreatedAt:       appt.CreatedAt,
		UpdatedAt:       appt.UpdatedAt,
	}, nil
}

// checkEditable вычисляет действующий статус записи и проверяет разрешение
// на редактирование
func (uc *UseCase) checkEditable(ctx context.Context, appt *domain.Appointment, now time.Time) error {
	sessions, err := uc.activityRepo.GetSessionsByAppointment(ctx, appt.ID)
	if err != nil {
		uc.logger.Error("RescheduleAppointment: failed to get sessions for id=%d: %v", appt.ID, err)
		return fmt.Errorf("%w: failed to get check-in sessions: %v", ErrInternal, err)
	}

	sales, err := uc.activityRepo.GetSalesByAppointment(ctx, appt.ID)
	if err != nil {
		uc.logger.Error("RescheduleAppointment: failed to get sales for id=%d: %v", appt.ID, err)
		return fmt.Errorf("%w: failed to get sale records: %v", ErrInternal, err)
	}

	canonical := domain.DeriveStatus(appt.Status, sessions, sales)

	startsAt, err := appt.StartsAt(now.Location())
	if err != nil {
		uc.logger.Error("RescheduleAppointment: failed to compute start instant for id=%d: %v", appt.ID, err)
		return fmt.Errorf("%w: failed to compute start instant: %v", ErrInternal, err)
	}

	actions := domain.EvaluateActions(canonical, appt.Status, len(sessions) > 0, len(sales) > 0, now, startsAt)
	if !actions.CanEdit {
		uc.logger.Warn("RescheduleAppointment: appointment id=%d is not editable, status=%s", appt.ID, canonical)
		return ErrNotEditable
	}

	return nil
}

// checkSlotIsFree проверяет, что интервал [start, start+duration) не
// пересекается ни с одной записью мастера, кроме самой переносимой
func checkSlotIsFree(start types.TimeString, durationMinutes int, appointments []*domain.Appointment, excludeID int64) error {
	end, err := start.AddMinutes(durationMinutes)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrInternal, err)
	}

	for _, other := range appointments {
		if other.ID == excludeID || !other.OccupiesCalendar() {
			continue
		}
		otherEnd, err := other.EndTime()
		if err != nil {
			continue
		}
		if scheduling.Overlaps(start, end, other.StartTime, otherEnd) {
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
