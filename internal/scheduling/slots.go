package scheduling

import (
	"errors"

	"github.com/lex4u/BSM-SchedulingService/internal/domain"
	"github.com/lex4u/BSM-SchedulingService/pkg/types"
)

var (
	// ErrInvalidWindow возвращается, когда открытие не раньше закрытия
	ErrInvalidWindow = errors.New("scheduling: open time must be before close time")

	// ErrInvalidGranularity возвращается при неположительном шаге сетки
	ErrInvalidGranularity = errors.New("scheduling: granularity must be positive")

	// ErrInvalidDuration возвращается при неположительной длительности услуги
	ErrInvalidDuration = errors.New("scheduling: duration must be positive")
)

// Slot кандидат на время начала записи с тегом доступности
// Недоступные слоты отдаются клиенту для отрисовки, но выбрать их нельзя
type Slot struct {
	StartTime       types.TimeString
	DurationMinutes int
	Available       bool
}

// Interval занятый интервал [Start, End) в рамках одного дня
type Interval struct {
	Start types.TimeString
	End   types.TimeString
}

// GenerateSlots генерирует упорядоченную сетку кандидатов на начало записи.
// Первый слот привязан к открытию; шаг сетки равен granularity, а не
// длительности услуги, поэтому кандидаты для длинных услуг пересекаются
// между собой - пересечения разрешает FilterAvailable, не генератор.
// Каждый кандидат t удовлетворяет t + duration <= close. Если равномерная
// сетка не попадает в close - duration, последним добавляется прижатый к
// закрытию кандидат: окно перед закрытием не должно пропадать из-за шага.
// Если duration > close - open, сетка пустая.
func GenerateSlots(open, close types.TimeString, granularityMinutes, durationMinutes int) ([]types.TimeString, error) {
	if err := open.Validate(); err != nil {
		return nil, err
	}
	if err := close.Validate(); err != nil {
		return nil, err
	}
	if !open.IsBefore(close) {
		return nil, ErrInvalidWindow
	}
	if granularityMinutes <= 0 {
		return nil, ErrInvalidGranularity
	}
	if durationMinutes <= 0 {
		return nil, ErrInvalidDuration
	}

	openMin, err := open.Minutes()
	if err != nil {
		return nil, err
	}
	closeMin, err := close.Minutes()
	if err != nil {
		return nil, err
	}

	slots := make([]types.TimeString, 0)
	last := -1
	for t := openMin; t+durationMinutes <= closeMin; t += granularityMinutes {
		slot, err := types.TimeString("00:00").AddMinutes(t)
		if err != nil {
			return nil, err
		}
		slots = append(slots, slot)
		last = t
	}

	// Прижатый к закрытию кандидат, когда шаг сетки в него не попадает
	if final := closeMin - durationMinutes; last >= 0 && last < final {
		slot, err := types.TimeString("00:00").AddMinutes(final)
		if err != nil {
			return nil, err
		}
		slots = append(slots, slot)
	}

	return slots, nil
}

// Overlaps проверяет пересечение двух полуоткрытых интервалов [aStart, aEnd)
// и [bStart, bEnd). Граничащие интервалы (aEnd == bStart) не пересекаются.
func Overlaps(aStart, aEnd, bStart, bEnd types.TimeString) bool {
	return aStart.IsBefore(bEnd) && aEnd.IsAfter(bStart)
}

// BusyIntervals строит занятые интервалы мастера из его записей на день.
// Записи, не занимающие календарь (cancelled, absent), пропускаются.
func BusyIntervals(appointments []*domain.Appointment) []Interval {
	busy := make([]Interval, 0, len(appointments))
	for _, appt := range appointments {
		if !appt.OccupiesCalendar() {
			continue
		}
		end, err := appt.EndTime()
		if err != nil {
			// Запись с нечитаемым временем не может считаться свободным местом
			continue
		}
		busy = append(busy, Interval{Start: appt.StartTime, End: end})
	}
	return busy
}

// FilterAvailable размечает кандидатов доступностью.
// Слот доступен, если его интервал [t, t+duration) не пересекается ни с
// одним занятым интервалом мастера, и - только для сегодняшней даты - если
// его начало СТРОГО позже now + noticeMinutes (буфер против бронирования
// слота за секунды до его начала). Слоты будущих дат буфером не ограничены.
func FilterAvailable(
	candidates []types.TimeString,
	durationMinutes int,
	busy []Interval,
	sameDay bool,
	now types.TimeString,
	noticeMinutes int,
) ([]Slot, error) {
	var minAllowed types.TimeString
	if sameDay {
		var err error
		minAllowed, err = now.AddMinutes(noticeMinutes)
		if err != nil {
			return nil, err
		}
	}

	slots := make([]Slot, 0, len(candidates))
	for _, start := range candidates {
		end, err := start.AddMinutes(durationMinutes)
		if err != nil {
			return nil, err
		}

		available := !overlapsAny(start, end, busy)
		if available && sameDay && !start.IsAfter(minAllowed) {
			available = false
		}

		slots = append(slots, Slot{
			StartTime:       start,
			DurationMinutes: durationMinutes,
			Available:       available,
		})
	}

	return slots, nil
}

func overlapsAny(start, end types.TimeString, busy []Interval) bool {
	for _, b := range busy {
		if Overlaps(start, end, b.Start, b.End) {
			return true
		}
	}
	return false
}
