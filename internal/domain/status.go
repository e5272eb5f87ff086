package domain

// CanonicalStatus is the single derived lifecycle state used for display and
// action gating. The raw status field can lag behind what actually happened
// on the floor (a no-show client whose status nobody updated, a paid sale on
// an appointment still marked scheduled), so every view derives its status
// through DeriveStatus instead of reading the raw field.
type CanonicalStatus string

const (
	CanonicalScheduled CanonicalStatus = "scheduled"  // check-in pending
	CanonicalCheckedIn CanonicalStatus = "checked_in" // checkout pending
	CanonicalCompleted CanonicalStatus = "completed"
	CanonicalCancelled CanonicalStatus = "cancelled"
	CanonicalNoShow    CanonicalStatus = "no_show"
	CanonicalAbsent    CanonicalStatus = "absent"
)

// statusSignal is the tagged precedence list DeriveStatus matches over.
// Ordered strongest-first; classify returns the first signal that applies.
type statusSignal int

const (
	signalCancelled statusSignal = iota
	signalAbsent
	signalNoShow
	signalPaidSale
	signalNoSession
	signalOpenSession
	signalClosedSession
)

// DeriveStatus computes the canonical status from the raw status field, the
// appointment's check-in sessions and its sale records.
//
// Precedence, first match wins:
//  1. a terminal manual state (cancelled, absent, no_show) is returned
//     verbatim; no further signals are consulted
//  2. any paid sale means completed (payment is stronger evidence than
//     session bookkeeping)
//  3. no session at all means scheduled
//  4. a session without a closed-out state means checked_in
//  5. a fully closed session means completed
//
// The function is pure: identical inputs always yield the identical status,
// and a data anomaly (paid sale on a cancelled appointment) resolves through
// the same fixed order instead of failing.
func DeriveStatus(raw AppointmentStatus, sessions []CheckInSession, sales []SaleRecord) CanonicalStatus {
	switch classify(raw, sessions, sales) {
	case signalCancelled:
		return CanonicalCancelled
	case signalAbsent:
		return CanonicalAbsent
	case signalNoShow:
		return CanonicalNoShow
	case signalPaidSale:
		return CanonicalCompleted
	case signalNoSession:
		return CanonicalScheduled
	case signalOpenSession:
		return CanonicalCheckedIn
	default:
		return CanonicalCompleted
	}
}

func classify(raw AppointmentStatus, sessions []CheckInSession, sales []SaleRecord) statusSignal {
	switch raw {
	case StatusCancelled:
		return signalCancelled
	case StatusAbsent:
		return signalAbsent
	case StatusNoShow:
		return signalNoShow
	}

	for i := range sales {
		if sales[i].IsPaid() {
			return signalPaidSale
		}
	}

	if len(sessions) == 0 {
		return signalNoSession
	}

	for i := range sessions {
		if sessions[i].IsClosed() {
			return signalClosedSession
		}
	}

	return signalOpenSession
}
