package domain

// Default schedule configuration values
const (
	DefaultOpenTime                = "09:00"
	DefaultCloseTime               = "20:00"
	DefaultSlotGranularityMinutes  = 30
	DefaultMinBookingNoticeMinutes = 30
)

// Business validation constants
const (
	MinSlotGranularityMinutes   = 5
	MaxSlotGranularityMinutes   = 240
	MinNoticeMinutes            = 0
	MaxNoticeMinutes            = 10080 // 1 week
	MaxNotesLength              = 500
	MaxCancellationReasonLength = 500
)

// Time format constants
const (
	TimeFormat = "15:04"      // HH:MM
	DateFormat = "2006-01-02" // YYYY-MM-DD
)

// ReleasedStatuses статусы, не занимающие календарь
// Используется при фильтрации записей для подсчёта доступности
var ReleasedStatuses = []AppointmentStatus{
	StatusCancelled,
	StatusAbsent,
}

// TerminalStatuses статусы, из которых запрещены дальнейшие переходы
var TerminalStatuses = []AppointmentStatus{
	StatusCompleted,
	StatusCancelled,
	StatusNoShow,
	StatusAbsent,
}
