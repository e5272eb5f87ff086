package domain

import "time"

// DeleteDenialReason identifies which Action Policy condition blocked a hard
// delete. Callers must surface the specific reason, never a generic refusal.
type DeleteDenialReason string

const (
	DeleteDeniedNone        DeleteDenialReason = ""
	DeleteDeniedHasSessions DeleteDenialReason = "has_check_in_sessions"
	DeleteDeniedHasSales    DeleteDenialReason = "has_sale_records"
	DeleteDeniedFinalized   DeleteDenialReason = "status_finalized"
	DeleteDeniedCancelled   DeleteDenialReason = "cancelled_kept_for_audit"
)

// ActionSet describes which mutating actions are currently permitted for an
// appointment, given its canonical status and record flags.
type ActionSet struct {
	CanEdit       bool
	CanCancel     bool
	CanMarkAbsent bool
	CanDelete     bool

	// DeleteDeniedReason is set iff CanDelete is false.
	DeleteDeniedReason DeleteDenialReason
}

// EvaluateActions computes the enabled action set.
//
//   - Edit is allowed unless the canonical status is completed or cancelled.
//   - Cancel is allowed only while scheduled or checked_in.
//   - Mark-absent is allowed only while scheduled or checked_in AND the
//     scheduled start is strictly in the past. Marking absent is a
//     zero-revenue terminal state: it never generates a sale or commission.
//   - Delete is allowed only when no session exists, no sale exists, the raw
//     status is not finalized (completed/absent/no_show) and not cancelled
//     (cancelled records are kept for audit).
//
// now and scheduledStart must be in the business time zone.
func EvaluateActions(
	canonical CanonicalStatus,
	raw AppointmentStatus,
	hasSessions bool,
	hasSales bool,
	now time.Time,
	scheduledStart time.Time,
) ActionSet {
	pending := canonical == CanonicalScheduled || canonical == CanonicalCheckedIn

	actions := ActionSet{
		CanEdit:       canonical != CanonicalCompleted && canonical != CanonicalCancelled,
		CanCancel:     pending,
		CanMarkAbsent: pending && scheduledStart.Before(now),
	}

	actions.CanDelete, actions.DeleteDeniedReason = evaluateDelete(raw, hasSessions, hasSales)
	return actions
}

// evaluateDelete mirrors the Action Policy precedence: the first failing
// condition names the denial reason.
func evaluateDelete(raw AppointmentStatus, hasSessions, hasSales bool) (bool, DeleteDenialReason) {
	switch {
	case hasSessions:
		return false, DeleteDeniedHasSessions
	case hasSales:
		return false, DeleteDeniedHasSales
	case raw == StatusCompleted || raw == StatusAbsent || raw == StatusNoShow:
		return false, DeleteDeniedFinalized
	case raw == StatusCancelled:
		return false, DeleteDeniedCancelled
	default:
		return true, DeleteDeniedNone
	}
}
