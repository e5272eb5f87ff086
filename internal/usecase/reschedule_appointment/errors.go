package reschedule_appointment

import "errors"

var (
	// ErrAppointmentNotFound возвращается, когда запись не найдена
	ErrAppointmentNotFound = errors.New("appointment not found")

	// ErrNotEditable возвращается, когда действующий статус записи
	// запрещает перенос (completed или cancelled)
	ErrNotEditable = errors.New("appointment can not be edited")

	// ErrStaffNotFound возвращается, когда мастер не найден
	ErrStaffNotFound = errors.New("staff not found")

	// ErrStaffInactive возвращается, когда мастер деактивирован
	ErrStaffInactive = errors.New("staff is not active")

	// ErrServiceNotFound возвращается, когда услуга не найдена
	ErrServiceNotFound = errors.New("service not found")

	// ErrServiceInactive возвращается, когда услуга выведена из каталога
	ErrServiceInactive = errors.New("service is not active")

	// ErrSlotNotAvailable возвращается, когда новый интервал пересекается
	// с другой записью мастера
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
