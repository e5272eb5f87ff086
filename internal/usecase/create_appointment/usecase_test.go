package create_appointment

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lex4u/BSM-SchedulingService/internal/domain"
	directoryRepo "github.com/lex4u/BSM-SchedulingService/internal/infra/storage/directory"
	configRepo "github.com/lex4u/BSM-SchedulingService/internal/infra/storage/scheduleconfig"
	"github.com/lex4u/BSM-SchedulingService/pkg/ptr"
	"github.com/lex4u/BSM-SchedulingService/pkg/types"
)

// ============================================================
// FAKES
// ============================================================

type fakeAppointmentRepo struct {
	appointments []*domain.Appointment
	nextID       int64

	createErr error
	listErr   error
}

func (f *fakeAppointmentRepo) Create(_ context.Context, appt *domain.Appointment) (*domain.Appointment, error) {
	if f.createErr != nil {
		return nil, f.createErr
	}
	f.nextID++
	created := *appt
	created.ID = f.nextID
	created.CreatedAt = time.Now()
	created.UpdatedAt = created.CreatedAt
	f.appointments = append(f.appointments, &created)
	return &created, nil
}

func (f *fakeAppointmentRepo) GetByStaffDay(_ context.Context, filter domain.StaffDayFilter) ([]*domain.Appointment, error) {
	if f.listErr != nil {
		return nil, f.listErr
	}
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
	clients  map[int64]*domain.Client
}

func newFakeDirectoryRepo() *fakeDirectoryRepo {
	return &fakeDirectoryRepo{
		staff:    make(map[int64]*domain.Staff),
		services: make(map[int64]*domain.Service),
		clients:  make(map[int64]*domain.Client),
	}
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

func (f *fakeDirectoryRepo) GetClientByID(_ context.Context, id int64) (*domain.Client, error) {
	c, ok := f.clients[id]
	if !ok {
		return nil, directoryRepo.ErrClientNotFound
	}
	return c, nil
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
	uc          *UseCase
	apptRepo    *fakeAppointmentRepo
	directory   *fakeDirectoryRepo
	config      *fakeConfigRepo
	timeOfTests time.Time
}

func newFixture() *fixture {
	now := time.Date(2026, 3, 10, 10, 0, 0, 0, time.UTC) // вторник

	apptRepo := &fakeAppointmentRepo{}
	directory := newFakeDirectoryRepo()
	directory.staff[1] = &domain.Staff{ID: 1, Name: "Carlos", Active: true}
	directory.staff[2] = &domain.Staff{ID: 2, Name: "Inactive", Active: false}
	directory.services[1] = &domain.Service{ID: 1, Name: "Corte Masculino", Price: 50, DurationMinutes: 45, Active: true}
	directory.services[2] = &domain.Service{ID: 2, Name: "Retired", Price: 30, DurationMinutes: 30, Active: false}
	directory.clients[1] = &domain.Client{ID: 1, Name: "Ana"}

	config := &fakeConfigRepo{config: &domain.ScheduleConfig{
		ID:                      1,
		OpenTime:                "09:00",
		CloseTime:               "20:00",
		SlotGranularityMinutes:  30,
		MinBookingNoticeMinutes: 30,
		ClosedWeekdays:          []int{0}, // воскресенье
	}}

	uc := NewUseCase(apptRepo, directory, config, &fakeTxManager{}, &fakeTimeProvider{now: now}, nopLogger{})

	return &fixture{
		uc:          uc,
		apptRepo:    apptRepo,
		directory:   directory,
		config:      config,
		timeOfTests: now,
	}
}

func (f *fixture) validRequest() *Request {
	return &Request{
		ClientID:  1,
		StaffID:   1,
		ServiceID: 1,
		Date:      time.Date(2026, 3, 12, 0, 0, 0, 0, time.UTC),
		StartTime: "14:00",
		Notes:     ptr.Ptr("обычная стрижка"),
	}
}

func (f *fixture) existingAppointment(start types.TimeString, duration int, status domain.AppointmentStatus) {
	f.apptRepo.nextID++
	f.apptRepo.appointments = append(f.apptRepo.appointments, &domain.Appointment{
		ID:              f.apptRepo.nextID,
		ClientID:        1,
		StaffID:         1,
		ServiceID:       1,
		Date:            time.Date(2026, 3, 12, 0, 0, 0, 0, time.UTC),
		StartTime:       start,
		DurationMinutes: duration,
		Status:          status,
	})
}

// ============================================================
// TESTS
// ============================================================

func TestCreateAppointment(t *testing.T) {
	t.Run("creates appointment with denormalized service data", func(t *testing.T) {
		f := newFixture()

		resp, err := f.uc.Execute(context.Background(), f.validRequest())
		require.NoError(t, err)

		assert.Equal(t, int64(1), resp.ID)
		assert.Equal(t, "scheduled", resp.Status)
		assert.Equal(t, "Corte Masculino", resp.ServiceName)
		assert.Equal(t, 50.0, resp.ServicePrice)
		assert.Equal(t, 45, resp.DurationMinutes)
	})

	t.Run("rejects overlap with existing appointment", func(t *testing.T) {
		f := newFixture()
		f.existingAppointment("14:00", 45, domain.StatusScheduled)

		req := f.validRequest()
		req.StartTime = "14:30" // 14:30+45 пересекается с [14:00, 14:45)

		_, err := f.uc.Execute(context.Background(), req)
		assert.ErrorIs(t, err, ErrSlotNotAvailable)
	})

	t.Run("allows booking that touches existing boundary", func(t *testing.T) {
		f := newFixture()
		f.existingAppointment("14:00", 45, domain.StatusScheduled)

		req := f.validRequest()
		req.StartTime = "14:45" // граничит, не пересекается

		_, err := f.uc.Execute(context.Background(), req)
		assert.NoError(t, err)
	})

	t.Run("cancelled appointment frees the slot", func(t *testing.T) {
		f := newFixture()
		f.existingAppointment("14:00", 45, domain.StatusCancelled)

		_, err := f.uc.Execute(context.Background(), f.validRequest())
		assert.NoError(t, err)
	})

	t.Run("no_show appointment keeps occupying the slot", func(t *testing.T) {
		f := newFixture()
		f.existingAppointment("14:00", 45, domain.StatusNoShow)

		_, err := f.uc.Execute(context.Background(), f.validRequest())
		assert.ErrorIs(t, err, ErrSlotNotAvailable)
	})

	t.Run("rejects unknown staff", func(t *testing.T) {
		f := newFixture()
		req := f.validRequest()
		req.StaffID = 99

		_, err := f.uc.Execute(context.Background(), req)
		assert.ErrorIs(t, err, ErrStaffNotFound)
	})

	t.Run("rejects inactive staff", func(t *testing.T) {
		f := newFixture()
		req := f.validRequest()
		req.StaffID = 2

		_, err := f.uc.Execute(context.Background(), req)
		assert.ErrorIs(t, err, ErrStaffInactive)
	})

	t.Run("rejects inactive service", func(t *testing.T) {
		f := newFixture()
		req := f.validRequest()
		req.ServiceID = 2

		_, err := f.uc.Execute(context.Background(), req)
		assert.ErrorIs(t, err, ErrServiceInactive)
	})

	t.Run("rejects unknown client", func(t *testing.T) {
		f := newFixture()
		req := f.validRequest()
		req.ClientID = 42

		_, err := f.uc.Execute(context.Background(), req)
		assert.ErrorIs(t, err, ErrClientNotFound)
	})

	t.Run("rejects date in the past", func(t *testing.T) {
		f := newFixture()
		req := f.validRequest()
		req.Date = time.Date(2026, 3, 9, 0, 0, 0, 0, time.UTC)

		_, err := f.uc.Execute(context.Background(), req)
		assert.ErrorIs(t, err, ErrInvalidDate)
	})

	t.Run("rejects closed weekday", func(t *testing.T) {
		f := newFixture()
		req := f.validRequest()
		req.Date = time.Date(2026, 3, 15, 0, 0, 0, 0, time.UTC) // воскресенье

		_, err := f.uc.Execute(context.Background(), req)
		assert.ErrorIs(t, err, ErrSalonClosed)
	})

	t.Run("rejects start before opening", func(t *testing.T) {
		f := newFixture()
		req := f.validRequest()
		req.StartTime = "08:30"

		_, err := f.uc.Execute(context.Background(), req)
		assert.ErrorIs(t, err, ErrOutsideBusinessHours)
	})

	t.Run("rejects appointment that ends after closing", func(t *testing.T) {
		f := newFixture()
		req := f.validRequest()
		req.StartTime = "19:30" // 19:30+45 > 20:00

		_, err := f.uc.Execute(context.Background(), req)
		assert.ErrorIs(t, err, ErrOutsideBusinessHours)
	})

	t.Run("appointment ending exactly at closing is allowed", func(t *testing.T) {
		f := newFixture()
		req := f.validRequest()
		req.StartTime = "19:15" // 19:15+45 = 20:00

		_, err := f.uc.Execute(context.Background(), req)
		assert.NoError(t, err)
	})

	t.Run("same day booking within notice buffer is rejected", func(t *testing.T) {
		f := newFixture()
		req := f.validRequest()
		req.Date = f.timeOfTests // сегодня, now=10:00, notice=30
		req.StartTime = "10:30"  // ровно now+notice, нужно строго позже

		_, err := f.uc.Execute(context.Background(), req)
		assert.ErrorIs(t, err, ErrTooLateToBook)
	})

	t.Run("same day booking strictly after the buffer is allowed", func(t *testing.T) {
		f := newFixture()
		req := f.validRequest()
		req.Date = f.timeOfTests
		req.StartTime = "10:31"

		_, err := f.uc.Execute(context.Background(), req)
		assert.NoError(t, err)
	})

	t.Run("future date ignores notice buffer", func(t *testing.T) {
		f := newFixture()
		req := f.validRequest()
		req.StartTime = "09:00" // на будущую дату буфер не действует

		_, err := f.uc.Execute(context.Background(), req)
		assert.NoError(t, err)
	})

	t.Run("missing config falls back to defaults", func(t *testing.T) {
		f := newFixture()
		f.config.config = nil
		f.config.err = configRepo.ErrConfigNotFound

		_, err := f.uc.Execute(context.Background(), f.validRequest())
		assert.NoError(t, err)
	})

	t.Run("rejects malformed start time", func(t *testing.T) {
		f := newFixture()
		req := f.validRequest()
		req.StartTime = "2pm"

		_, err := f.uc.Execute(context.Background(), req)
		assert.ErrorIs(t, err, ErrInvalidInput)
	})

	t.Run("non padded start time cannot slip past the conflict check", func(t *testing.T) {
		f := newFixture()
		f.existingAppointment("09:00", 45, domain.StatusScheduled)

		// "9:00" лексикографически больше "14:45" и прошла бы все
		// сравнения интервалов мимо занятого [09:00, 09:45)
		req := f.validRequest()
		req.StartTime = "9:00"

		_, err := f.uc.Execute(context.Background(), req)
		assert.ErrorIs(t, err, ErrInvalidInput)
		assert.Len(t, f.apptRepo.appointments, 1)
	})

	t.Run("rejects non positive ids", func(t *testing.T) {
		f := newFixture()
		req := f.validRequest()
		req.StaffID = 0

		_, err := f.uc.Execute(context.Background(), req)
		assert.ErrorIs(t, err, ErrInvalidInput)
	})
}
