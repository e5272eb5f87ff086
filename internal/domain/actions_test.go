package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

var (
	actionsNow   = time.Date(2026, 3, 10, 15, 0, 0, 0, time.UTC)
	pastStart    = actionsNow.Add(-30 * time.Minute)
	futureStart  = actionsNow.Add(2 * time.Hour)
	exactlyStart = actionsNow
)

func TestEvaluateActionsEdit(t *testing.T) {
	tests := []struct {
		name      string
		canonical CanonicalStatus
		want      bool
	}{
		{"scheduled is editable", CanonicalScheduled, true},
		{"checked_in is editable", CanonicalCheckedIn, true},
		{"no_show is editable", CanonicalNoShow, true},
		{"absent is editable", CanonicalAbsent, true},
		{"completed is not editable", CanonicalCompleted, false},
		{"cancelled is not editable", CanonicalCancelled, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := EvaluateActions(tt.canonical, StatusScheduled, false, false, actionsNow, futureStart)
			assert.Equal(t, tt.want, got.CanEdit)
		})
	}
}

func TestEvaluateActionsCancel(t *testing.T) {
	assert.True(t, EvaluateActions(CanonicalScheduled, StatusScheduled, false, false, actionsNow, futureStart).CanCancel)
	assert.True(t, EvaluateActions(CanonicalCheckedIn, StatusScheduled, true, false, actionsNow, pastStart).CanCancel)
	assert.False(t, EvaluateActions(CanonicalCompleted, StatusCompleted, true, true, actionsNow, pastStart).CanCancel)
	assert.False(t, EvaluateActions(CanonicalCancelled, StatusCancelled, false, false, actionsNow, futureStart).CanCancel)
	assert.False(t, EvaluateActions(CanonicalNoShow, StatusNoShow, false, false, actionsNow, pastStart).CanCancel)
}

func TestEvaluateActionsMarkAbsent(t *testing.T) {
	t.Run("pending appointment in the past can be marked absent", func(t *testing.T) {
		got := EvaluateActions(CanonicalScheduled, StatusScheduled, false, false, actionsNow, pastStart)
		assert.True(t, got.CanMarkAbsent)
	})

	t.Run("future start blocks mark absent", func(t *testing.T) {
		got := EvaluateActions(CanonicalScheduled, StatusScheduled, false, false, actionsNow, futureStart)
		assert.False(t, got.CanMarkAbsent)
	})

	t.Run("start exactly at now is not yet past", func(t *testing.T) {
		got := EvaluateActions(CanonicalScheduled, StatusScheduled, false, false, actionsNow, exactlyStart)
		assert.False(t, got.CanMarkAbsent)
	})

	t.Run("completed appointment cannot be marked absent even in the past", func(t *testing.T) {
		got := EvaluateActions(CanonicalCompleted, StatusScheduled, true, true, actionsNow, pastStart)
		assert.False(t, got.CanMarkAbsent)
	})
}

func TestEvaluateActionsDelete(t *testing.T) {
	tests := []struct {
		name        string
		raw         AppointmentStatus
		hasSessions bool
		hasSales    bool
		canDelete   bool
		reason      DeleteDenialReason
	}{
		{
			name:      "clean scheduled appointment is deletable",
			raw:       StatusScheduled,
			canDelete: true,
			reason:    DeleteDeniedNone,
		},
		{
			name:        "sessions block delete",
			raw:         StatusScheduled,
			hasSessions: true,
			reason:      DeleteDeniedHasSessions,
		},
		{
			name:     "open sale blocks delete even without sessions",
			raw:      StatusScheduled,
			hasSales: true,
			reason:   DeleteDeniedHasSales,
		},
		{
			name:        "sessions reason wins over sales reason",
			raw:         StatusCompleted,
			hasSessions: true,
			hasSales:    true,
			reason:      DeleteDeniedHasSessions,
		},
		{
			name:   "completed status blocks delete",
			raw:    StatusCompleted,
			reason: DeleteDeniedFinalized,
		},
		{
			name:   "absent status blocks delete",
			raw:    StatusAbsent,
			reason: DeleteDeniedFinalized,
		},
		{
			name:   "no_show status blocks delete",
			raw:    StatusNoShow,
			reason: DeleteDeniedFinalized,
		},
		{
			name:   "cancelled records are kept for audit",
			raw:    StatusCancelled,
			reason: DeleteDeniedCancelled,
		},
		{
			name:      "confirmed appointment without activity is deletable",
			raw:       StatusConfirmed,
			canDelete: true,
			reason:    DeleteDeniedNone,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := EvaluateActions(CanonicalScheduled, tt.raw, tt.hasSessions, tt.hasSales, actionsNow, futureStart)
			assert.Equal(t, tt.canDelete, got.CanDelete)
			assert.Equal(t, tt.reason, got.DeleteDeniedReason)
		})
	}
}
