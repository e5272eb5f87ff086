package appointments

import "errors"

var (
	// ErrAppointmentNotFound возвращается, когда запись не найдена
	ErrAppointmentNotFound = errors.New("appointment not found")

	// ErrInvalidStatus возвращается при попытке установить недопустимый статус
	ErrInvalidStatus = errors.New("invalid appointment status")

	// ErrStatusFinal возвращается при попытке перехода из терминального статуса
	ErrStatusFinal = errors.New("appointment status is final")

	// ErrCannotCancel возвращается, когда действующий статус записи
	// запрещает отмену
	ErrCannotCancel = errors.New("appointment cannot be cancelled")

	// ErrCannotMarkAbsent возвращается, когда действующий статус записи
	// запрещает отметку неявки
	ErrCannotMarkAbsent = errors.New("appointment cannot be marked absent")

	// ErrTimeNotPassed возвращается при попытке отметить неявку до
	// наступления времени записи
	ErrTimeNotPassed = errors.New("appointment time has not passed yet")

	// ErrDeleteHasSessions возвращается при попытке удалить запись с визитами
	ErrDeleteHasSessions = errors.New("appointment has check-in sessions")

	// ErrDeleteHasSales возвращается при попытке удалить запись с продажами
	ErrDeleteHasSales = errors.New("appointment has sale records")

	// ErrDeleteFinalized возвращается при попытке удалить завершённую запись
	ErrDeleteFinalized = errors.New("appointment status is finalized")

	// ErrDeleteCancelledKept возвращается при попытке удалить отменённую
	// запись: отменённые записи хранятся для аудита
	ErrDeleteCancelledKept = errors.New("cancelled appointment is kept for audit")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("invalid input data")

	// ErrInternal возвращается при внутренних ошибках сервиса
	ErrInternal = errors.New("service: internal error")
)
