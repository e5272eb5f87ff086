package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func openSession() CheckInSession {
	in := time.Date(2026, 3, 10, 14, 0, 0, 0, time.UTC)
	return CheckInSession{ID: 1, AppointmentID: 1, CheckedInAt: &in, Status: SessionOpen}
}

func closedSession() CheckInSession {
	s := openSession()
	out := s.CheckedInAt.Add(45 * time.Minute)
	s.CheckedOutAt = &out
	s.Status = SessionCompleted
	return s
}

func paidSale() SaleRecord {
	return SaleRecord{ID: 1, AppointmentID: 1, Status: SalePaid, Total: 120}
}

func openSale() SaleRecord {
	return SaleRecord{ID: 2, AppointmentID: 1, Status: SaleOpen, Total: 120}
}

func TestDeriveStatus(t *testing.T) {
	tests := []struct {
		name     string
		raw      AppointmentStatus
		sessions []CheckInSession
		sales    []SaleRecord
		want     CanonicalStatus
	}{
		{
			name: "scheduled without activity stays scheduled",
			raw:  StatusScheduled,
			want: CanonicalScheduled,
		},
		{
			name: "confirmed without activity stays scheduled",
			raw:  StatusConfirmed,
			want: CanonicalScheduled,
		},
		{
			name:     "open session means checked_in",
			raw:      StatusScheduled,
			sessions: []CheckInSession{openSession()},
			want:     CanonicalCheckedIn,
		},
		{
			name:     "closed session means completed",
			raw:      StatusScheduled,
			sessions: []CheckInSession{closedSession()},
			want:     CanonicalCompleted,
		},
		{
			name:  "paid sale on scheduled appointment means completed",
			raw:   StatusScheduled,
			sales: []SaleRecord{paidSale()},
			want:  CanonicalCompleted,
		},
		{
			name:     "paid sale wins over open session",
			raw:      StatusScheduled,
			sessions: []CheckInSession{openSession()},
			sales:    []SaleRecord{paidSale()},
			want:     CanonicalCompleted,
		},
		{
			name:  "open sale is not payment evidence",
			raw:   StatusScheduled,
			sales: []SaleRecord{openSale()},
			want:  CanonicalScheduled,
		},
		{
			name:     "cancelled is returned verbatim despite paid sale",
			raw:      StatusCancelled,
			sessions: []CheckInSession{closedSession()},
			sales:    []SaleRecord{paidSale()},
			want:     CanonicalCancelled,
		},
		{
			name:     "absent is returned verbatim despite activity",
			raw:      StatusAbsent,
			sessions: []CheckInSession{openSession()},
			sales:    []SaleRecord{paidSale()},
			want:     CanonicalAbsent,
		},
		{
			name:     "no_show is returned verbatim despite activity",
			raw:      StatusNoShow,
			sessions: []CheckInSession{closedSession()},
			want:     CanonicalNoShow,
		},
		{
			name: "completed raw without activity still derives scheduled",
			raw:  StatusCompleted,
			want: CanonicalScheduled,
		},
		{
			name:     "mixed sessions with one closed mean completed",
			raw:      StatusConfirmed,
			sessions: []CheckInSession{openSession(), closedSession()},
			want:     CanonicalCompleted,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := DeriveStatus(tt.raw, tt.sessions, tt.sales)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestDeriveStatusIsDeterministic(t *testing.T) {
	sessions := []CheckInSession{openSession()}
	sales := []SaleRecord{openSale(), paidSale()}

	first := DeriveStatus(StatusScheduled, sessions, sales)
	for i := 0; i < 10; i++ {
		assert.Equal(t, first, DeriveStatus(StatusScheduled, sessions, sales))
	}
}

func TestAppointmentStatusIsTerminal(t *testing.T) {
	assert.True(t, StatusCompleted.IsTerminal())
	assert.True(t, StatusCancelled.IsTerminal())
	assert.True(t, StatusNoShow.IsTerminal())
	assert.True(t, StatusAbsent.IsTerminal())
	assert.False(t, StatusScheduled.IsTerminal())
	assert.False(t, StatusConfirmed.IsTerminal())
}

func TestOccupiesCalendar(t *testing.T) {
	tests := []struct {
		status AppointmentStatus
		want   bool
	}{
		{StatusScheduled, true},
		{StatusConfirmed, true},
		{StatusCompleted, true},
		{StatusNoShow, true},
		{StatusCancelled, false},
		{StatusAbsent, false},
	}

	for _, tt := range tests {
		t.Run(string(tt.status), func(t *testing.T) {
			a := &Appointment{Status: tt.status}
			assert.Equal(t, tt.want, a.OccupiesCalendar())
		})
	}
}
