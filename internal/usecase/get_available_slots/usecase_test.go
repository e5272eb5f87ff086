package get_available_slots

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lex4u/BSM-SchedulingService/internal/domain"
	directoryRepo "github.com/lex4u/BSM-SchedulingService/internal/infra/storage/directory"
	configRepo "github.com/lex4u/BSM-SchedulingService/internal/infra/storage/scheduleconfig"
	"github.com/lex4u/BSM-SchedulingService/internal/scheduling"
	"github.com/lex4u/BSM-SchedulingService/pkg/types"
)

// ============================================================
// FAKES
// ============================================================

type fakeAppointmentRepo struct {
	appointments []*domain.Appointment
}

func (f *fakeAppointmentRepo) GetByStaffDay(_ context.Context, filter domain.StaffDayFilter) ([]*domain.Appointment, error) {
	var out []*domain.Appointment
	for _, a := range f.appointments {
		if a.StaffID == filter.StaffID && a.Date.Equal(filter.Date) {
			if !filter.IncludeReleased && !a.OccupiesCalendar() {
				continue
			}
			out = append(out, a)
		}
	}
	return out, nil
}

type fakeDirectoryRepo struct {
	staff    map[int64]*domain.Staff
	services map[int64]*domain.Service
}

func (f *fakeDirectoryRepo) GetStaffByID(_ context.Context, id int64) (*domain.Staff, error) {
	s, ok := f.staff[id]
	if !ok {
		return nil, directoryRepo.ErrStaffNotFound
	}
	return s, nil
}

func (f *fakeDirectoryRepo) GetServiceByID(_ context.Context, id int64) (*domain.Service, error) {
	s, ok := f.services[id]
	if !ok {
		return nil, directoryRepo.ErrServiceNotFound
	}
	return s, nil
}

type fakeConfigRepo struct {
	config *domain.ScheduleConfig
	err    error
}

func (f *fakeConfigRepo) Get(_ context.Context) (*domain.ScheduleConfig, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.config, nil
}

type fakeTimeProvider struct {
	now time.Time
}

func (f *fakeTimeProvider) Now() time.Time { return f.now }

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

// ============================================================
// FIXTURE
// ============================================================

type fixture struct {
	uc       *UseCase
	apptRepo *fakeAppointmentRepo
	config   *fakeConfigRepo
	now      time.Time
}

func newFixture() *fixture {
	now := time.Date(2026, 3, 10, 10, 0, 0, 0, time.UTC) // вторник

	apptRepo := &fakeAppointmentRepo{}
	directory := &fakeDirectoryRepo{
		staff: map[int64]*domain.Staff{
			1: {ID: 1, Name: "Carlos", Active: true},
			2: {ID: 2, Name: "Inactive", Active: false},
		},
		services: map[int64]*domain.Service{
			1: {ID: 1, Name: "Corte Masculino", Price: 50, DurationMinutes: 45, Active: true},
			2: {ID: 2, Name: "Retired", Price: 30, DurationMinutes: 30, Active: false},
		},
	}
	config := &fakeConfigRepo{config: &domain.ScheduleConfig{
		ID:                      1,
		OpenTime:                "09:00",
		CloseTime:               "20:00",
		SlotGranularityMinutes:  30,
		MinBookingNoticeMinutes: 30,
		ClosedWeekdays:          []int{0},
	}}

	uc := NewUseCase(apptRepo, directory, config, &fakeTimeProvider{now: now}, nopLogger{})

	return &fixture{uc: uc, apptRepo: apptRepo, config: config, now: now}
}

func (f *fixture) request(date time.Time) *Request {
	return &Request{StaffID: 1, ServiceID: 1, Date: date}
}

func futureDate() time.Time {
	return time.Date(2026, 3, 12, 0, 0, 0, 0, time.UTC)
}

// ============================================================
// TESTS
// ============================================================

func TestGetAvailableSlots(t *testing.T) {
	t.Run("returns full grid anchored at opening", func(t *testing.T) {
		f := newFixture()

		resp, err := f.uc.Execute(context.Background(), f.request(futureDate()))
		require.NoError(t, err)
		require.NotEmpty(t, resp.Slots)

		assert.Equal(t, types.TimeString("09:00"), resp.Slots[0].StartTime)
		assert.Equal(t, types.TimeString("19:15"), resp.Slots[len(resp.Slots)-1].StartTime)
		for _, s := range resp.Slots {
			assert.Equal(t, 45, s.DurationMinutes)
			assert.True(t, s.Available)
		}
	})

	t.Run("existing appointment marks overlapping slots unavailable", func(t *testing.T) {
		f := newFixture()
		f.apptRepo.appointments = append(f.apptRepo.appointments, &domain.Appointment{
			ID: 1, StaffID: 1, Date: futureDate(),
			StartTime: "14:00", DurationMinutes: 45, Status: domain.StatusScheduled,
		})

		resp, err := f.uc.Execute(context.Background(), f.request(futureDate()))
		require.NoError(t, err)

		byStart := make(map[types.TimeString]scheduling.Slot)
		for _, s := range resp.Slots {
			byStart[s.StartTime] = s
		}

		// 13:30+45=14:15 пересекается с [14:00, 14:45)
		assert.False(t, byStart["13:30"].Available)
		assert.False(t, byStart["14:00"].Available)
		assert.False(t, byStart["14:30"].Available)
		// 15:00 начинается после освобождения
		assert.True(t, byStart["15:00"].Available)
		// слот не выброшен из сетки
		assert.Contains(t, byStart, types.TimeString("14:00"))
	})

	t.Run("same day slots within notice buffer are unavailable", func(t *testing.T) {
		f := newFixture()
		today := time.Date(2026, 3, 10, 0, 0, 0, 0, time.UTC)

		resp, err := f.uc.Execute(context.Background(), f.request(today))
		require.NoError(t, err)

		for _, s := range resp.Slots {
			// now=10:00, notice=30: доступно только строго позже 10:30
			if !s.StartTime.IsAfter("10:30") {
				assert.False(t, s.Available, "slot %s", s.StartTime)
			} else {
				assert.True(t, s.Available, "slot %s", s.StartTime)
			}
		}
	})

	t.Run("closed weekday returns empty grid without error", func(t *testing.T) {
		f := newFixture()
		sunday := time.Date(2026, 3, 15, 0, 0, 0, 0, time.UTC)

		resp, err := f.uc.Execute(context.Background(), f.request(sunday))
		require.NoError(t, err)
		assert.Empty(t, resp.Slots)
	})

	t.Run("past date is rejected", func(t *testing.T) {
		f := newFixture()
		yesterday := time.Date(2026, 3, 9, 0, 0, 0, 0, time.UTC)

		_, err := f.uc.Execute(context.Background(), f.request(yesterday))
		assert.ErrorIs(t, err, ErrInvalidDate)
	})

	t.Run("unknown staff is rejected", func(t *testing.T) {
		f := newFixture()
		req := f.request(futureDate())
		req.StaffID = 99

		_, err := f.uc.Execute(context.Background(), req)
		assert.ErrorIs(t, err, ErrStaffNotFound)
	})

	t.Run("inactive staff is rejected", func(t *testing.T) {
		f := newFixture()
		req := f.request(futureDate())
		req.StaffID = 2

		_, err := f.uc.Execute(context.Background(), req)
		assert.ErrorIs(t, err, ErrStaffInactive)
	})

	t.Run("inactive service is rejected", func(t *testing.T) {
		f := newFixture()
		req := f.request(futureDate())
		req.ServiceID = 2

		_, err := f.uc.Execute(context.Background(), req)
		assert.ErrorIs(t, err, ErrServiceInactive)
	})

	t.Run("missing config falls back to defaults", func(t *testing.T) {
		f := newFixture()
		f.config.config = nil
		f.config.err = configRepo.ErrConfigNotFound

		resp, err := f.uc.Execute(context.Background(), f.request(futureDate()))
		require.NoError(t, err)
		require.NotEmpty(t, resp.Slots)
		assert.Equal(t, types.TimeString(domain.DefaultOpenTime), resp.Slots[0].StartTime)
	})
}
