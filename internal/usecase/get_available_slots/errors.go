package get_available_slots

import "errors"

var (
	// ErrStaffNotFound возвращается, когда мастер не найден
	ErrStaffNotFound = errors.New("staff not found")

	// ErrStaffInactive возвращается, когда мастер деактивирован
	ErrStaffInactive = errors.New("staff is not active")

	// ErrServiceNotFound возвращается, когда услуга не найдена
	ErrServiceNotFound = errors.New("service not found")

	// ErrServiceInactive возвращается, когда услуга выведена из каталога
	ErrServiceInactive = errors.New("service is not active")

	// ErrInvalidDate возвращается при дате в прошлом
	ErrInvalidDate = errors.New("invalid date")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("invalid input data")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("usecase: internal error")
)
