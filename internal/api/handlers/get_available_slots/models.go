package get_available_slots

import (
	"github.com/lex4u/BSM-SchedulingService/internal/domain"
	getAvailableSlots "github.com/lex4u/BSM-SchedulingService/internal/usecase/get_available_slots"
)

// SlotResponse HTTP модель слота
type SlotResponse struct {
	StartTime       string `json:"startTime"` // "14:30"
	DurationMinutes int    `json:"durationMinutes"`
	Available       bool   `json:"available"`
}

// SlotsResponse HTTP модель ответа с сеткой слотов
type SlotsResponse struct {
	Date      string         `json:"date"` // "2025-10-15"
	StaffID   int64          `json:"staffId"`
	ServiceID int64          `json:"serviceId"`
	Slots     []SlotResponse `json:"slots"`
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *getAvailableSlots.Response) *SlotsResponse {
	slots := make([]SlotResponse, len(resp.Slots))
	for i, slot := range resp.Slots {
		slots[i] = SlotResponse{
			StartTime:       slot.StartTime.String(),
			DurationMinutes: slot.DurationMinutes,
			Available:       slot.Available,
		}
	}

	return &SlotsResponse{
		Date:      resp.Date.Format(domain.DateFormat),
		StaffID:   resp.StaffID,
		ServiceID: resp.ServiceID,
		Slots:     slots,
	}
}
