package models

import (
	"time"

	"github.com/lex4u/BSM-SchedulingService/internal/domain"
)

// Request модели

// UpdateStatusRequest запрос на смену сырого статуса записи
type UpdateStatusRequest struct {
	Status string `json:"status"`
}

// CancelAppointmentRequest запрос на отмену записи
type CancelAppointmentRequest struct {
	CancellationReason string `json:"cancellationReason"`
}

// GetStaffDayRequest запрос на получение записей мастера на дату
type GetStaffDayRequest struct {
	StaffID         int64     `json:"staffId"`
	Date            time.Time `json:"date"`
	IncludeReleased bool      `json:"includeReleased,omitempty"` // включать отменённые и absent
}

// Response модели

// ActionsResponse разрешённые действия над записью
type ActionsResponse struct {
	CanEdit       bool `json:"canEdit"`
	CanCancel     bool `json:"canCancel"`
	CanMarkAbsent bool `json:"canMarkAbsent"`
	CanDelete     bool `json:"canDelete"`

	// DeleteDeniedReason заполняется только когда canDelete=false
	DeleteDeniedReason string `json:"deleteDeniedReason,omitempty"`
}

// AppointmentResponse ответ с данными записи.
// Status всегда действующий (вычисленный), сырое поле отдаётся отдельно.
type AppointmentResponse struct {
	ID              int64  `json:"id"`
	ClientID        int64  `json:"clientId"`
	StaffID         int64  `json:"staffId"`
	ServiceID       int64  `json:"serviceId"`
	Date            string `json:"date"`      // "2025-10-15"
	StartTime       string `json:"startTime"` // "14:30"
	EndTime         string `json:"endTime"`   // "15:15"
	DurationMinutes int    `json:"durationMinutes"`

	Status    string `json:"status"`    // действующий статус
	RawStatus string `json:"rawStatus"` // сырое поле в БД

	// Денормализованные данные услуги
	ServiceName  string  `json:"serviceName"`
	ServicePrice float64 `json:"servicePrice"`

	Notes *string `json:"notes,omitempty"`

	CancellationReason *string `json:"cancellationReason,omitempty"`
	CancelledAt        *string `json:"cancelledAt,omitempty"` // ISO 8601

	Actions ActionsResponse `json:"actions"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// AppointmentListResponse ответ со списком записей
type AppointmentListResponse struct {
	Appointments []AppointmentResponse `json:"appointments"`
}

// Методы конвертации

// FromDomainAppointment конвертирует запись в DTO, вычисляя действующий
// статус и разрешённые действия из визитов и продаж.
// now должен быть в таймзоне салона.
func FromDomainAppointment(
	a *domain.Appointment,
	sessions []domain.CheckInSession,
	sales []domain.SaleRecord,
	now time.Time,
) *AppointmentResponse {
	if a == nil {
		return nil
	}

	canonical := domain.DeriveStatus(a.Status, sessions, sales)

	// Нечитаемое время начала блокирует действия, зависящие от времени:
	// startsAt == now означает "еще не в прошлом"
	startsAt := now
	if t, err := a.StartsAt(now.Location()); err == nil {
		startsAt = t
	}

	actions := domain.EvaluateActions(canonical, a.Status, len(sessions) > 0, len(sales) > 0, now, startsAt)

	endTime := ""
	if end, err := a.EndTime(); err == nil {
		endTime = end.String()
	}

	resp := &AppointmentResponse{
		ID:                 a.ID,
		ClientID:           a.ClientID,
		StaffID:            a.StaffID,
		ServiceID:          a.ServiceID,
		Date:               a.Date.Format(domain.DateFormat),
		StartTime:          a.StartTime.String(),
		EndTime:            endTime,
		DurationMinutes:    a.DurationMinutes,
		Status:             string(canonical),
		RawStatus:          string(a.Status),
		ServiceName:        a.ServiceName,
		ServicePrice:       a.ServicePrice,
		Notes:              a.Notes,
		CancellationReason: a.CancellationReason,
		Actions: ActionsResponse{
			CanEdit:            actions.CanEdit,
			CanCancel:          actions.CanCancel,
			CanMarkAbsent:      actions.CanMarkAbsent,
			CanDelete:          actions.CanDelete,
			DeleteDeniedReason: string(actions.DeleteDeniedReason),
		},
		CreatedAt: a.CreatedAt,
		UpdatedAt: a.UpdatedAt,
	}

	if a.CancelledAt != nil {
		cancelledStr := a.CancelledAt.Format(time.RFC3339)
		resp.CancelledAt = &cancelledStr
	}

	return resp
}
