package get_available_slots

import (
	"fmt"
	"time"
)

// validateRequest валидирует входные данные запроса
func validateRequest(req *Request) error {
	if req.StaffID <= 0 {
		return fmt.Errorf("%w: staffID must be positive", ErrInvalidInput)
	}

	if req.ServiceID <= 0 {
		return fmt.Errorf("%w: serviceID must be positive", ErrInvalidInput)
	}

	if req.Date.IsZero() {
		return fmt.Errorf("%w: date is required", ErrInvalidInput)
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
