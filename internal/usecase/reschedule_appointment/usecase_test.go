package reschedule_appointment

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lex4u/BSM-SchedulingService/internal/domain"
	apptRepo "github.com/lex4u/BSM-SchedulingService/internal/infra/storage/appointment"
	directoryRepo "github.com/lex4u/BSM-SchedulingService/internal/infra/storage/directory"
	"github.com/lex4u/BSM-SchedulingService/pkg/types"
)

// ============================================================
// FAKES
// ============================================================

type fakeAppointmentRepo struct {
	appointments map[int64]*domain.Appointment

	rescheduleErr error
}

func newFakeAppointmentRepo() *fakeAppointmentRepo {
	return &fakeAppointmentRepo{appointments: make(map[int64]*domain.Appointment)}
}

func (f *fakeAppointmentRepo) GetByID(_ context.Context, id int64) (*domain.Appointment, error) {
	a, ok := f.appointments[id]
	if !ok {
		return nil, apptRepo.ErrAppointmentNotFound
	}
	copied := *a
	return &copied, nil
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

func (f *fakeAppointmentRepo) Reschedule(_ context.Context, appt *domain.Appointment) error {
	if f.rescheduleErr != nil {
		return f.rescheduleErr
	}
	stored := *appt
	stored.UpdatedAt = time.Now()
	f.appointments[appt.ID] = &stored
	return nil
}

type fakeActivityRepo struct {
	sessions map[int64][]domain.CheckInSession
	sales    map[int64][]domain.SaleRecord
}

func newFakeActivityRepo() *fakeActivityRepo {
	return &fakeActivityRepo{
		sessions: make(map[int64][]domain.CheckInSession),
		sales:    make(map[int64][]domain.SaleRecord),
	}
}

func (f *fakeActivityRepo) GetSessionsByAppointment(_ context.Context, id int64) ([]domain.CheckInSession, error) {
	return f.sessions[id], nil
}

func (f *fakeActivityRepo) GetSalesByAppointment(_ context.Context, id int64) ([]domain.SaleRecord, error) {
	return f.sales[id], nil
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
}

func (f *fakeConfigRepo) Get(_ context.Context) (*domain.ScheduleConfig, error) {
	return f.config, nil
}

type fakeTxManager struct{}

func (f *fakeTxManager) DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
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
	appts    *fakeAppointmentRepo
	activity *fakeActivityRepo
	now      time.Time
}

func newFixture() *fixture {
	now := time.Date(2026, 3, 10, 10, 0, 0, 0, time.UTC) // вторник

	appts := newFakeAppointmentRepo()
	activity := newFakeActivityRepo()
	directory := &fakeDirectoryRepo{
		staff: map[int64]*domain.Staff{
			1: {ID: 1, Name: "Carlos", Active: true},
			2: {ID: 2, Name: "Bruna", Active: true},
			3: {ID: 3, Name: "Inactive", Active: false},
		},
		services: map[int64]*domain.Service{
			1: {ID: 1, Name: "Corte Masculino", Price: 50, DurationMinutes: 45, Active: true},
			2: {ID: 2, Name: "Barba", Price: 30, DurationMinutes: 30, Active: true},
			3: {ID: 3, Name: "Retired", Price: 40, DurationMinutes: 30, Active: false},
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

	uc := NewUseCase(appts, activity, directory, config, &fakeTxManager{}, &fakeTimeProvider{now: now}, nopLogger{})

	return &fixture{uc: uc, appts: appts, activity: activity, now: now}
}

func (f *fixture) seedAppointment(id int64, staffID int64, date time.Time, start types.TimeString, status domain.AppointmentStatus) {
	f.appts.appointments[id] = &domain.Appointment{
		ID:              id,
		ClientID:        1,
		StaffID:         staffID,
		ServiceID:       1,
		Date:            date,
		StartTime:       start,
		DurationMinutes: 45,
		Status:          status,
		ServiceName:     "Corte Masculino",
		ServicePrice:    50,
	}
}

func (f *fixture) request(id int64) *Request {
	return &Request{
		AppointmentID: id,
		StaffID:       1,
		ServiceID:     1,
		Date:          time.Date(2026, 3, 12, 0, 0, 0, 0, time.UTC),
		StartTime:     "16:00",
	}
}

// ============================================================
// TESTS
// ============================================================

func TestRescheduleAppointment(t *testing.T) {
	futureDate := time.Date(2026, 3, 12, 0, 0, 0, 0, time.UTC)

	t.Run("moves appointment to a free slot", func(t *testing.T) {
		f := newFixture()
		f.seedAppointment(1, 1, futureDate, "14:00", domain.StatusScheduled)

		resp, err := f.uc.Execute(context.Background(), f.request(1))
		require.NoError(t, err)

		assert.Equal(t, types.TimeString("16:00"), resp.StartTime)
		assert.Equal(t, types.TimeString("16:00"), f.appts.appointments[1].StartTime)
	})

	t.Run("conflict check excludes the appointment itself", func(t *testing.T) {
		f := newFixture()
		f.seedAppointment(1, 1, futureDate, "14:00", domain.StatusScheduled)

		// Перенос на полчаса вперед пересекался бы со старым интервалом
		req := f.request(1)
		req.StartTime = "14:30"

		_, err := f.uc.Execute(context.Background(), req)
		assert.NoError(t, err)
	})

	t.Run("conflict with another appointment is rejected", func(t *testing.T) {
		f := newFixture()
		f.seedAppointment(1, 1, futureDate, "14:00", domain.StatusScheduled)
		f.seedAppointment(2, 1, futureDate, "16:00", domain.StatusScheduled)

		req := f.request(1)
		req.StartTime = "16:30" // пересекается с [16:00, 16:45) записи 2

		_, err := f.uc.Execute(context.Background(), req)
		assert.ErrorIs(t, err, ErrSlotNotAvailable)
	})

	t.Run("move to another staff checks the new staff calendar", func(t *testing.T) {
		f := newFixture()
		f.seedAppointment(1, 1, futureDate, "14:00", domain.StatusScheduled)
		f.seedAppointment(2, 2, futureDate, "16:00", domain.StatusScheduled)

		req := f.request(1)
		req.StaffID = 2
		req.StartTime = "16:00"

		_, err := f.uc.Execute(context.Background(), req)
		assert.ErrorIs(t, err, ErrSlotNotAvailable)
	})

	t.Run("service change refreshes denormalized data", func(t *testing.T) {
		f := newFixture()
		f.seedAppointment(1, 1, futureDate, "14:00", domain.StatusScheduled)

		req := f.request(1)
		req.ServiceID = 2

		resp, err := f.uc.Execute(context.Background(), req)
		require.NoError(t, err)

		assert.Equal(t, "Barba", resp.ServiceName)
		assert.Equal(t, 30.0, resp.ServicePrice)
		assert.Equal(t, 30, resp.DurationMinutes)
	})

	t.Run("deactivated service is rejected for a service change", func(t *testing.T) {
		f := newFixture()
		f.seedAppointment(1, 1, futureDate, "14:00", domain.StatusScheduled)

		req := f.request(1)
		req.ServiceID = 3

		_, err := f.uc.Execute(context.Background(), req)
		assert.ErrorIs(t, err, ErrServiceInactive)
	})

	t.Run("deactivated service already on the appointment is kept", func(t *testing.T) {
		f := newFixture()
		f.seedAppointment(1, 1, futureDate, "14:00", domain.StatusScheduled)
		f.appts.appointments[1].ServiceID = 3

		req := f.request(1)
		req.ServiceID = 3

		_, err := f.uc.Execute(context.Background(), req)
		assert.NoError(t, err)
	})

	t.Run("cancelled appointment is not editable", func(t *testing.T) {
		f := newFixture()
		f.seedAppointment(1, 1, futureDate, "14:00", domain.StatusCancelled)

		_, err := f.uc.Execute(context.Background(), f.request(1))
		assert.ErrorIs(t, err, ErrNotEditable)
	})

	t.Run("paid sale makes the appointment not editable", func(t *testing.T) {
		f := newFixture()
		f.seedAppointment(1, 1, futureDate, "14:00", domain.StatusScheduled)
		f.activity.sales[1] = []domain.SaleRecord{{ID: 1, AppointmentID: 1, Status: domain.SalePaid, Total: 50}}

		_, err := f.uc.Execute(context.Background(), f.request(1))
		assert.ErrorIs(t, err, ErrNotEditable)
	})

	t.Run("open check-in session keeps the appointment editable", func(t *testing.T) {
		f := newFixture()
		f.seedAppointment(1, 1, futureDate, "14:00", domain.StatusScheduled)
		in := f.now.Add(-10 * time.Minute)
		f.activity.sessions[1] = []domain.CheckInSession{
			{ID: 1, AppointmentID: 1, CheckedInAt: &in, Status: domain.SessionOpen},
		}

		_, err := f.uc.Execute(context.Background(), f.request(1))
		assert.NoError(t, err)
	})

	t.Run("unknown appointment is rejected", func(t *testing.T) {
		f := newFixture()

		_, err := f.uc.Execute(context.Background(), f.request(99))
		assert.ErrorIs(t, err, ErrAppointmentNotFound)
	})

	t.Run("inactive staff is rejected", func(t *testing.T) {
		f := newFixture()
		f.seedAppointment(1, 1, futureDate, "14:00", domain.StatusScheduled)

		req := f.request(1)
		req.StaffID = 3

		_, err := f.uc.Execute(context.Background(), req)
		assert.ErrorIs(t, err, ErrStaffInactive)
	})

	t.Run("move to a past date is rejected", func(t *testing.T) {
		f := newFixture()
		f.seedAppointment(1, 1, futureDate, "14:00", domain.StatusScheduled)

		req := f.request(1)
		req.Date = time.Date(2026, 3, 9, 0, 0, 0, 0, time.UTC)

		_, err := f.uc.Execute(context.Background(), req)
		assert.ErrorIs(t, err, ErrInvalidDate)
	})
}
