package create_appointment

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

	// ErrClientNotFound возвращается, когда клиент не найден
	ErrClientNotFound = errors.New("client not found")

	// ErrSlotNotAvailable возвращается, когда интервал пересекается с
	// существующей записью мастера
	ErrSlotNotAvailable = errors.New("slot is not available")

	// ErrSalonClosed возвращается, когда салон закрыт в указанный день
	ErrSalonClosed = errors.New("salon is closed on this date")

	// ErrOutsideBusinessHours возвращается, когда запись не помещается
	// в рабочие часы салона
	ErrOutsideBusinessHours = errors.New("appointment is outside business hours")

	// ErrTooLateToBook возвращается, когда до начала слота осталось меньше
	// минимального времени уведомления
	ErrTooLateToBook = errors.New("too late to book this slot")

	// ErrInvalidDate возвращается при дате в прошлом
	ErrInvalidDate = errors.New("invalid date")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("invalid input data")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("usecase: internal error")
)
