package create_appointment

import (
	"fmt"
	"time"

	"github.com/lex4u/BSM-SchedulingService/internal/domain"
	"github.com/lex4u/BSM-SchedulingService/pkg/types"
)

// validateRequest валидирует входные данные запроса
func validateRequest(req *Request) error {
	if req.ClientID <= 0 {
		return fmt.Errorf("%w: clientID must be positive", ErrInvalidInput)
	}

	if req.StaffID <= 0 {
		return fmt.Errorf("%w: staffID must be positive", ErrInvalidInput)
	}

	if req.ServiceID <= 0 {
		return fmt.Errorf("%w: serviceID must be positive", ErrInvalidInput)
	}

	if req.Date.IsZero() {
		return fmt.Errorf("%w: date is required", ErrInvalidInput)
	}

	if err := req.StartTime.Validate(); err != nil {
		return fmt.Errorf("%w: startTime must be in HH:MM format", ErrInvalidInput)
	}

	if req.Notes != nil && len(*req.Notes) > domain.MaxNotesLength {
		return fmt.Errorf("%w: notes must not exceed %d characters", ErrInvalidInput, domain.MaxNotesLength)
	}

	return nil
}

// validateBusinessHours проверяет, что интервал записи помещается в рабочие
// часы: start >= open и start + duration <= close
func validateBusinessHours(start types.TimeString, durationMinutes int, config *domain.ScheduleConfig) error {
	if start.IsBefore(config.OpenTime) {
		return fmt.Errorf("%w: starts before opening at %s", ErrOutsideBusinessHours, config.OpenTime)
	}

	end, err := start.AddMinutes(durationMinutes)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	if end.IsAfter(config.CloseTime) {
		return fmt.Errorf("%w: ends after closing at %s", ErrOutsideBusinessHours, config.CloseTime)
	}

	return nil
}

// validateBookingNotice проверяет минимальное время уведомления.
// Буфер применяется только для записи на сегодня: начало должно быть
// СТРОГО позже now + noticeMinutes.
func validateBookingNotice(date time.Time, start types.TimeString, now time.Time, noticeMinutes int) error {
	if !isSameDay(date, now) {
		return nil
	}

	minAllowed, err := types.NewTimeString(now).AddMinutes(noticeMinutes)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrInternal, err)
	}

	if !start.IsAfter(minAllowed) {
		return fmt.Errorf("%w: need at least %d minutes notice", ErrTooLateToBook, noticeMinutes)
	}

	return nil
}

// isDateInPast проверяет, что дата строго раньше сегодняшней (по дате, без времени)
func isDateInPast(date time.Time, now time.Time) bool {
	dateOnly := time.Date(date.Year(), date.Month(), date.Day(), 0, 0, 0, 0, now.Location())
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	return dateOnly.Before(today)
}

// isSameDay проверяет, что дата совпадает с сегодняшней
func isSameDay(date time.Time, now time.Time) bool {
	return date.Year() == now.Year() && date.Month() == now.Month() && date.Day() == now.Day()
}
