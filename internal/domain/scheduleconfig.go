package domain

import (
	"time"

	"github.com/lex4u/BSM-SchedulingService/pkg/types"
)

// ScheduleConfig holds the salon's booking configuration: business hours,
// slot granularity and the same-day booking lead time. Stored in the
// database so managers can adjust it without a redeploy.
type ScheduleConfig struct {
	ID                      int64
	OpenTime                types.TimeString
	CloseTime               types.TimeString
	SlotGranularityMinutes  int
	MinBookingNoticeMinutes int
	ClosedWeekdays          []int // time.Weekday values (0 = Sunday)
	CreatedAt               time.Time
	UpdatedAt               time.Time
}

// IsClosedOn reports whether the salon is closed on the given weekday.
func (c *ScheduleConfig) IsClosedOn(day time.Weekday) bool {
	for _, d := range c.ClosedWeekdays {
		if time.Weekday(d) == day {
			return true
		}
	}
	return false
}
