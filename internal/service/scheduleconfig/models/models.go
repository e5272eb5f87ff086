package models

import (
	"time"

	"github.com/lex4u/BSM-SchedulingService/internal/domain"
	"github.com/lex4u/BSM-SchedulingService/pkg/types"
)

// Request модели

// UpdateScheduleConfigRequest запрос на обновление конфигурации расписания
type UpdateScheduleConfigRequest struct {
	OpenTime                string `json:"openTime"`  // "09:00"
	CloseTime               string `json:"closeTime"` // "20:00"
	SlotGranularityMinutes  int    `json:"slotGranularityMinutes"`
	MinBookingNoticeMinutes int    `json:"minBookingNoticeMinutes"`
	ClosedWeekdays          []int  `json:"closedWeekdays"` // 0 = воскресенье
}

// ToDomain конвертирует request в domain модель
func (r *UpdateScheduleConfigRequest) ToDomain() *domain.ScheduleConfig {
	return &domain.ScheduleConfig{
		OpenTime:                types.TimeString(r.OpenTime),
		CloseTime:               types.TimeString(r.CloseTime),
		SlotGranularityMinutes:  r.SlotGranularityMinutes,
		MinBookingNoticeMinutes: r.MinBookingNoticeMinutes,
		ClosedWeekdays:          r.ClosedWeekdays,
	}
}

// Response модели

// ScheduleConfigResponse ответ с конфигурацией расписания
type ScheduleConfigResponse struct {
	OpenTime                string     `json:"openTime"`
	CloseTime               string     `json:"closeTime"`
	SlotGranularityMinutes  int        `json:"slotGranularityMinutes"`
	MinBookingNoticeMinutes int        `json:"minBookingNoticeMinutes"`
	ClosedWeekdays          []int      `json:"closedWeekdays"`
	UpdatedAt               *time.Time `json:"updatedAt,omitempty"`
}

// FromDomainScheduleConfig конвертирует domain модель в DTO
func FromDomainScheduleConfig(c *domain.ScheduleConfig) *ScheduleConfigResponse {
	if c == nil {
		return nil
	}

	closedWeekdays := c.ClosedWeekdays
	if closedWeekdays == nil {
		closedWeekdays = []int{}
	}

	resp := &ScheduleConfigResponse{
		OpenTime:                c.OpenTime.String(),
		CloseTime:               c.CloseTime.String(),
		SlotGranularityMinutes:  c.SlotGranularityMinutes,
		MinBookingNoticeMinutes: c.MinBookingNoticeMinutes,
		ClosedWeekdays:          closedWeekdays,
	}

	if !c.UpdatedAt.IsZero() {
		updatedAt := c.UpdatedAt
		resp.UpdatedAt = &updatedAt
	}

	return resp
}
