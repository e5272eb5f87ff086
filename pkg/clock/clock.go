package clock

import (
	"fmt"
	"time"
)

// Clock отдает текущее время в часовом поясе бизнеса
// Все решения "этот слот уже начался?" принимаются в бизнес-времени,
// а не в локальной зоне процесса
type Clock interface {
	Now() time.Time
}

// BusinessClock реальные часы, привязанные к таймзоне салона
type BusinessClock struct {
	loc *time.Location
}

// NewBusinessClock создает часы для указанной IANA таймзоны (например "America/Sao_Paulo")
func NewBusinessClock(timezone string) (*BusinessClock, error) {
	loc, err := time.LoadLocation(timezone)
	if err != nil {
		return nil, fmt.Errorf("clock: failed to load timezone %q: %w", timezone, err)
	}
	return &BusinessClock{loc: loc}, nil
}

// Now возвращает текущее время в таймзоне бизнеса
func (c *BusinessClock) Now() time.Time {
	return time.Now().In(c.loc)
}

// Location возвращает таймзону бизнеса
func (c *BusinessClock) Location() *time.Location {
	return c.loc
}

// Fixed часы с фиксированным моментом времени для тестов
type Fixed struct {
	Instant time.Time
}

// Now возвращает фиксированный момент
func (f *Fixed) Now() time.Time {
	return f.Instant
}
