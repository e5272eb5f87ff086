package create_appointment

import (
	"time"

	"github.com/lex4u/BSM-SchedulingService/internal/domain"
	createAppointment "github.com/lex4u/BSM-SchedulingService/internal/usecase/create_appointment"
	"github.com/lex4u/BSM-SchedulingService/pkg/types"
)

// CreateAppointmentRequest HTTP request model
type CreateAppointmentRequest struct {
	ClientID  int64   `json:"clientId"`
	StaffID   int64   `json:"staffId"`
	ServiceID int64   `json:"serviceId"`
	Date      string  `json:"date"`      // "2025-10-15"
	StartTime string  `json:"startTime"` // "14:30"
	Notes     *string `json:"notes,omitempty"`
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
func (r *CreateAppointmentRequest) ToUseCaseRequest() (*createAppointment.Request, error) {
	date, err := time.Parse(domain.DateFormat, r.Date)
	if err != nil {
		return nil, err
	}

	startTime, err := types.NewTimeStringFromString(r.StartTime)
	if err != nil {
		return nil, err
	}

	return &createAppointment.Request{
		ClientID:  r.ClientID,
		StaffID:   r.StaffID,
		ServiceID: r.ServiceID,
		Date:      date,
		StartTime: startTime,
		Notes:     r.Notes,
	}, nil
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *createAppointment.Response) *AppointmentResponse {
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
