package appointments

import (
	"context"
	"errors"
	"fmt"

	"github.com/lex4u/BSM-SchedulingService/internal/domain"
	apptRepo "github.com/lex4u/BSM-SchedulingService/internal/infra/storage/appointment"
	"github.com/lex4u/BSM-SchedulingService/internal/service/appointments/models"
)

// Service сервис для работы с существующими записями.
// Все решения о статусе и разрешённых действиях принимаются по действующему
// (вычисленному) статусу, сырое поле БД само по себе не является истиной.
type Service struct {
	appointmentRepo AppointmentRepository
	activityRepo    ActivityRepository
	timeProvider    TimeProvider
	logger          Logger
}

// NewService создает новый экземпляр сервиса записей
func NewService(
	appointmentRepo AppointmentRepository,
	activityRepo ActivityRepository,
	timeProvider TimeProvider,
	logger Logger,
) *Service {
	return &Service{
		appointmentRepo: appointmentRepo,
		activityRepo:    activityRepo,
		timeProvider:    timeProvider,
		logger:          logger,
	}
}

// GetByID получает запись по ID с действующим статусом и набором действий
func (s *Service) GetByID(ctx context.Context, id int64) (*models.AppointmentResponse, error) {
	s.logger.Info("GetByID: fetching appointment id=%d", id)

	appt, sessions, sales, err := s.loadWithActivity(ctx, id, "GetByID")
	if err != nil {
		return nil, err
	}

	s.logger.Info("GetByID: successfully fetched appointment id=%d", id)
	return models.FromDomainAppointment(appt, sessions, sales, s.timeProvider.Now()), nil
}

// GetStaffDay получает записи мастера на дату с действующими статусами.
// Визиты и продажи читаются одним батчем на весь день.
func (s *Service) GetStaffDay(ctx context.Context, req *models.GetStaffDayRequest) (*models.AppointmentListResponse, error) {
	s.logger.Info("GetStaffDay: fetching appointments for staff=%d, date=%s, includeReleased=%v",
		req.StaffID, req.Date.Format(domain.DateFormat), req.IncludeReleased)

	if req.StaffID <= 0 {
		return nil, fmt.Errorf("%w: staffID must be positive", ErrInvalidInput)
	}
	if req.Date.IsZero() {
		return nil, fmt.Errorf("%w: date is required", ErrInvalidInput)
	}

	appointments, err := s.appointmentRepo.GetByStaffDay(ctx, domain.StaffDayFilter{
		StaffID:         req.StaffID,
		Date:            req.Date,
		IncludeReleased: req.IncludeReleased,
	})
	if err != nil {
		s.logger.Error("GetStaffDay: repository error for staff=%d: %v", req.StaffID, err)
		return nil, fmt.Errorf("%w: GetStaffDay - repository error: %v", ErrInternal, err)
	}

	ids := make([]int64, len(appointments))
	for i, appt := range appointments {
		ids[i] = appt.ID
	}

	sessionsByID, err := s.activityRepo.GetSessionsByAppointments(ctx, ids)
	if err != nil {
		s.logger.Error("GetStaffDay: failed to get sessions for staff=%d: %v", req.StaffID, err)
		return nil, fmt.Errorf("%w: GetStaffDay - failed to get sessions: %v", ErrInternal, err)
	}

	salesByID, err := s.activityRepo.GetSalesByAppointments(ctx, ids)
	if err != nil {
		s.logger.Error("GetStaffDay: failed to get sales for staff=%d: %v", req.StaffID, err)
		return nil, fmt.Errorf("%w: GetStaffDay - failed to get sales: %v", ErrInternal, err)
	}

	now := s.timeProvider.Now()
	resp := &models.AppointmentListResponse{
		Appointments: make([]models.AppointmentResponse, 0, len(appointments)),
	}
	for _, appt := range appointments {
		if dto := models.FromDomainAppointment(appt, sessionsByID[appt.ID], salesByID[appt.ID], now); dto != nil {
			resp.Appointments = append(resp.Appointments, *dto)
		}
	}

	s.logger.Info("GetStaffDay: successfully fetched %d appointments for staff=%d", len(resp.Appointments), req.StaffID)
	return resp, nil
}

// UpdateStatus переводит сырой статус записи в confirmed, completed или
// no_show. Переходы из терминальных статусов запрещены.
func (s *Service) UpdateStatus(ctx context.Context, id int64, req *models.UpdateStatusRequest) error {
	s.logger.Info("UpdateStatus: updating appointment id=%d to status=%s", id, req.Status)

	newStatus, err := toTransitionStatus(req.Status)
	if err != nil {
		s.logger.Warn("UpdateStatus: invalid status=%s for appointment id=%d", req.Status, id)
		return err
	}

	appt, err := s.getAppointment(ctx, id, "UpdateStatus")
	if err != nil {
		return err
	}

	if appt.Status.IsTerminal() {
		s.logger.Warn("UpdateStatus: appointment id=%d has final status=%s", id, appt.Status)
		return ErrStatusFinal
	}

	if err := s.appointmentRepo.UpdateStatus(ctx, id, newStatus); err != nil {
		if errors.Is(err, apptRepo.ErrAppointmentNotFound) {
			return ErrAppointmentNotFound
		}
		s.logger.Error("UpdateStatus: repository error for appointment id=%d: %v", id, err)
		return fmt.Errorf("%w: UpdateStatus - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("UpdateStatus: successfully updated appointment id=%d to status=%s", id, newStatus)
	return nil
}

// Cancel отменяет запись. Отмена разрешена только пока действующий статус
// scheduled или checked_in: завершённую работу отменить нельзя.
func (s *Service) Cancel(ctx context.Context, id int64, req *models.CancelAppointmentRequest) error {
	s.logger.Info("Cancel: cancelling appointment id=%d", id)

	if len(req.CancellationReason) > domain.MaxCancellationReasonLength {
		return fmt.Errorf("%w: cancellation reason must not exceed %d characters",
			ErrInvalidInput, domain.MaxCancellationReasonLength)
	}

	appt, sessions, sales, err := s.loadWithActivity(ctx, id, "Cancel")
	if err != nil {
		return err
	}

	actions := s.evaluateActions(appt, sessions, sales)
	if !actions.CanCancel {
		canonical := domain.DeriveStatus(appt.Status, sessions, sales)
		s.logger.Warn("Cancel: appointment id=%d cannot be cancelled, status=%s", id, canonical)
		return ErrCannotCancel
	}

	if err := s.appointmentRepo.Cancel(ctx, id, req.CancellationReason); err != nil {
		if errors.Is(err, apptRepo.ErrAppointmentNotFound) {
			return ErrAppointmentNotFound
		}
		s.logger.Error("Cancel: repository error for appointment id=%d: %v", id, err)
		return fmt.Errorf("%w: Cancel - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("Cancel: successfully cancelled appointment id=%d", id)
	return nil
}

// MarkAbsent отмечает неявку клиента. Разрешено только после наступления
// времени записи: будущую запись отменяют, а не отмечают неявкой.
// Absent - терминальное состояние без выручки, продажа по нему не создаётся.
func (s *Service) MarkAbsent(ctx context.Context, id int64) error {
	s.logger.Info("MarkAbsent: marking appointment id=%d as absent", id)

	appt, sessions, sales, err := s.loadWithActivity(ctx, id, "MarkAbsent")
	if err != nil {
		return err
	}

	canonical := domain.DeriveStatus(appt.Status, sessions, sales)
	actions := s.evaluateActions(appt, sessions, sales)

	if !actions.CanMarkAbsent {
		// Различаем "рано" и "нельзя": для ещё не начавшейся записи
		// в ожидаемом статусе причина именно во времени
		if canonical == domain.CanonicalScheduled || canonical == domain.CanonicalCheckedIn {
			s.logger.Warn("MarkAbsent: appointment id=%d has not started yet", id)
			return ErrTimeNotPassed
		}
		s.logger.Warn("MarkAbsent: appointment id=%d cannot be marked absent, status=%s", id, canonical)
		return ErrCannotMarkAbsent
	}

	if err := s.appointmentRepo.UpdateStatus(ctx, id, domain.StatusAbsent); err != nil {
		if errors.Is(err, apptRepo.ErrAppointmentNotFound) {
			return ErrAppointmentNotFound
		}
		s.logger.Error("MarkAbsent: repository error for appointment id=%d: %v", id, err)
		return fmt.Errorf("%w: MarkAbsent - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("MarkAbsent: successfully marked appointment id=%d as absent", id)
	return nil
}

// Delete жёстко удаляет запись. Разрешено только для записей без визитов,
// без продаж и не достигших терминального статуса; отказ всегда содержит
// конкретную причину.
func (s *Service) Delete(ctx context.Context, id int64) error {
	s.logger.Info("Delete: deleting appointment id=%d", id)

	appt, sessions, sales, err := s.loadWithActivity(ctx, id, "Delete")
	if err != nil {
		return err
	}

	actions := s.evaluateActions(appt, sessions, sales)
	if !actions.CanDelete {
		s.logger.Warn("Delete: appointment id=%d cannot be deleted, reason=%s", id, actions.DeleteDeniedReason)
		return deleteDenialError(actions.DeleteDeniedReason)
	}

	if err := s.appointmentRepo.Delete(ctx, id); err != nil {
		if errors.Is(err, apptRepo.ErrAppointmentNotFound) {
			return ErrAppointmentNotFound
		}
		s.logger.Error("Delete: repository error for appointment id=%d: %v", id, err)
		return fmt.Errorf("%w: Delete - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("Delete: successfully deleted appointment id=%d", id)
	return nil
}

// Вспомогательные методы

// getAppointment читает запись с конвертацией ошибки "не найдено"
func (s *Service) getAppointment(ctx context.Context, id int64, op string) (*domain.Appointment, error) {
	appt, err := s.appointmentRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, apptRepo.ErrAppointmentNotFound) {
			s.logger.Warn("%s: appointment id=%d not found", op, id)
			return nil, ErrAppointmentNotFound
		}
		s.logger.Error("%s: repository error for appointment id=%d: %v", op, id, err)
		return nil, fmt.Errorf("%w: %s - repository error: %v", ErrInternal, op, err)
	}
	return appt, nil
}

// loadWithActivity читает запись вместе с её визитами и продажами
func (s *Service) loadWithActivity(ctx context.Context, id int64, op string) (*domain.Appointment, []domain.CheckInSession, []domain.SaleRecord, error) {
	appt, err := s.getAppointment(ctx, id, op)
	if err != nil {
		return nil, nil, nil, err
	}

	sessions, err := s.activityRepo.GetSessionsByAppointment(ctx, id)
	if err != nil {
		s.logger.Error("%s: failed to get sessions for appointment id=%d: %v", op, id, err)
		return nil, nil, nil, fmt.Errorf("%w: %s - failed to get sessions: %v", ErrInternal, op, err)
	}

	sales, err := s.activityRepo.GetSalesByAppointment(ctx, id)
	if err != nil {
		s.logger.Error("%s: failed to get sales for appointment id=%d: %v", op, id, err)
		return nil, nil, nil, fmt.Errorf("%w: %s - failed to get sales: %v", ErrInternal, op, err)
	}

	return appt, sessions, sales, nil
}

// evaluateActions вычисляет набор разрешённых действий для записи
func (s *Service) evaluateActions(appt *domain.Appointment, sessions []domain.CheckInSession, sales []domain.SaleRecord) domain.ActionSet {
	now := s.timeProvider.Now()
	canonical := domain.DeriveStatus(appt.Status, sessions, sales)

	startsAt, err := appt.StartsAt(now.Location())
	if err != nil {
		// Нечитаемое время начала блокирует действия, зависящие от времени
		s.logger.Error("evaluateActions: failed to compute start instant for appointment id=%d: %v", appt.ID, err)
		startsAt = now
	}

	return domain.EvaluateActions(canonical, appt.Status, len(sessions) > 0, len(sales) > 0, now, startsAt)
}

// toTransitionStatus валидирует целевой статус ручного перехода
func toTransitionStatus(status string) (domain.AppointmentStatus, error) {
	s := domain.AppointmentStatus(status)
	switch s {
	case domain.StatusConfirmed, domain.StatusCompleted, domain.StatusNoShow:
		return s, nil
	default:
		return "", ErrInvalidStatus
	}
}

// deleteDenialError конвертирует причину отказа в ошибку сервиса
func deleteDenialError(reason domain.DeleteDenialReason) error {
	switch reason {
	case domain.DeleteDeniedHasSessions:
		return ErrDeleteHasSessions
	case domain.DeleteDeniedHasSales:
		return ErrDeleteHasSales
	case domain.DeleteDeniedFinalized:
		return ErrDeleteFinalized
	case domain.DeleteDeniedCancelled:
		return ErrDeleteCancelledKept
	default:
		return ErrInternal
	}
}
