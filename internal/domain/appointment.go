package domain

import (
	"time"

	"github.com/lex4u/BSM-SchedulingService/pkg/types"
)

// AppointmentStatus represents the raw stored status of an appointment.
// The raw status alone is not trusted for display: see DeriveStatus.
type AppointmentStatus string

const (
	StatusScheduled AppointmentStatus = "scheduled"
	StatusConfirmed AppointmentStatus = "confirmed"
	StatusCompleted AppointmentStatus = "completed"
	StatusCancelled AppointmentStatus = "cancelled"
	StatusNoShow    AppointmentStatus = "no_show"
	// StatusAbsent is the deliberate zero-revenue terminal state, set only
	// through the mark-absent action once the appointment's time has passed.
	// Distinct from no_show (legacy staff-set transition) and from cancelled
	// (bookings cancelled before they occurred).
	StatusAbsent AppointmentStatus = "absent"
)

// IsTerminal reports whether no further raw-status transition is permitted.
func (s AppointmentStatus) IsTerminal() bool {
	return s == StatusCompleted || s == StatusCancelled || s == StatusNoShow || s == StatusAbsent
}

// Appointment represents a booked service for a client with a staff member.
// Service name, price and duration are captured by value at booking time:
// later edits to the service catalog must not shift already-booked end times.
type Appointment struct {
	ID        int64
	ClientID  int64
	StaffID   int64
	ServiceID int64

	Date            time.Time
	StartTime       types.TimeString
	DurationMinutes int
	Status          AppointmentStatus

	// Denormalized service data for history
	ServiceName  string
	ServicePrice float64

	Notes *string

	CancellationReason *string
	CancelledAt        *time.Time

	CreatedAt time.Time
	UpdatedAt time.Time
}

// EndTime returns the computed end of the appointment (start + duration).
func (a *Appointment) EndTime() (types.TimeString, error) {
	return a.StartTime.AddMinutes(a.DurationMinutes)
}

// OccupiesCalendar reports whether the appointment blocks its time interval.
// Cancelled and absent appointments free the calendar; everything else,
// including a historical no_show, keeps occupying its slot.
func (a *Appointment) OccupiesCalendar() bool {
	return a.Status != StatusCancelled && a.Status != StatusAbsent
}

// StartsAt returns the scheduled start instant in the given business location.
func (a *Appointment) StartsAt(loc *time.Location) (time.Time, error) {
	minutes, err := a.StartTime.Minutes()
	if err != nil {
		return time.Time{}, err
	}
	day := time.Date(a.Date.Year(), a.Date.Month(), a.Date.Day(), 0, 0, 0, 0, loc)
	return day.Add(time.Duration(minutes) * time.Minute), nil
}

// StaffDayFilter фильтр для получения записей мастера на дату
type StaffDayFilter struct {
	StaffID         int64
	Date            time.Time
	IncludeReleased bool // включать ли записи, не занимающие календарь (cancelled, absent)
}
