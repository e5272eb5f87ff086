package reschedule_appointment

import (
	"time"

	"github.com/lex4u/BSM-SchedulingService/internal/domain"
	rescheduleAppointment "github.com/lex4u/BSM-SchedulingService/internal/usecase/reschedule_appointment"
	"github.com/lex4u/BSM-SchedulingService/pkg/types"
)

// RescheduleAppointmentRequest HTTP request model
type RescheduleAppointmentRequest struct {
	StaffID   int64  `json:"staffId"`
	ServiceID int64  `json:"serviceId"`
	Date      string `json:"date"`      // "2025-10-15"
	StartTime string `json:"startTime"` // "14:30"
}

// AppointmentResponse HTTP response model
type AppointmentResponse struct {
	ID              int64   `json:"id"`
	ClientID        int64   `json:"clientId"`
	StaffID         int64   `json:"staffId"`
	ServiceID       int64   `json:"serviceId"`
	Date            string  `json:"date"`
	StartTime       string  `json:"startTime"`
	DurationMinutes int     `json:"durationMinutes"`
	Status          string  `json:"status"`
	ServiceName     string  `json:"serviceName"`
	ServicePrice    float64 `json:"servicePrice"`
	Notes           *string `json:"notes,omitempty"`
	CreatedAt       string  `json:"createdAt"`
	UpdatedAt       string  `json:"updatedAt"`
}

// ToUseCaseRequest конвертирует HTTP запрос в модель use case
func (r *RescheduleAppointmentRequest) ToUseCaseRequest(appointmentID int64) (*rescheduleAppointment.Request, error) {
	date, err := time.Parse(domain.DateFormat, r.Date)
	if err != nil {
		return nil, err
	}

	startTime, err := types.NewTimeStringFromString(r.StartTime)
	if err != nil {
		return nil, err
	}

	return &rescheduleAppointment.Request{
		AppointmentID: appointmentID,
		StaffID:       r.StaffID,
		ServiceID:     r.ServiceID,
		Date:          date,
		StartTime:     startTime,
	}, nil
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *rescheduleAppointment.Response) *AppointmentResponse {
	return &AppointmentResponse{
		ID:              resp.ID,
		ClientID:        resp.ClientID,
		StaffID:         resp.StaffID,
		ServiceID:       resp.ServiceID,
		Date:            resp.Date.Format(domain.DateFormat),
		StartTime:       resp.StartTime.String(),
		DurationMinutes: resp.DurationMinutes,
		Status:          resp.Status,
		ServiceName:     resp.ServiceName,
		ServicePrice:    resp.ServicePrice,
		Notes:           resp.Notes,
		CreatedAt:       resp.CreatedAt.Format(time.RFC3339),
		UpdatedAt:       resp.UpdatedAt.Format(time.RFC3339),
	}
}
