package domain

import "time"

// SessionStatus is the status tag on a check-in session record.
type SessionStatus string

const (
	SessionOpen      SessionStatus = "open"
	SessionCompleted SessionStatus = "completed"
)

// CheckInSession records a client's physical presence window during service
// delivery, independent of billing. Written by the POS; this service only
// reads it for status derivation.
type CheckInSession struct {
	ID            int64
	AppointmentID int64
	CheckedInAt   *time.Time
	CheckedOutAt  *time.Time
	Status        SessionStatus
	CreatedAt     time.Time
}

// IsClosed reports whether the session has been fully closed out, either by
// an explicit check-out instant or by the completed status tag.
func (s *CheckInSession) IsClosed() bool {
	return s.CheckedOutAt != nil || s.Status == SessionCompleted
}

// SaleStatus is the monetary status of a sale record.
type SaleStatus string

const (
	SaleOpen SaleStatus = "open"
	SalePaid SaleStatus = "paid"
)

// SaleRecord is a point-of-sale record attached to an appointment. A paid
// sale is authoritative evidence that service delivery completed and was
// billed.
type SaleRecord struct {
	ID            int64
	AppointmentID int64
	Status        SaleStatus
	Total         float64
	CreatedAt     time.Time
}

// IsPaid reports whether the sale has been paid.
func (s *SaleRecord) IsPaid() bool {
	return s.Status == SalePaid
}
