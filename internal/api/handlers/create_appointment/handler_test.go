package create_appointment

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	createAppointment "github.com/lex4u/BSM-SchedulingService/internal/usecase/create_appointment"
)

type fakeUseCase struct {
	resp *createAppointment.Response
	err  error

	gotReq *createAppointment.Request
}

func (f *fakeUseCase) Execute(_ context.Context, req *createAppointment.Request) (*createAppointment.Response, error) {
	f.gotReq = req
	if f.err != nil {
		return nil, f.err
	}
	return f.resp, nil
}

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

func doRequest(t *testing.T, uc *fakeUseCase, body string) *httptest.ResponseRecorder {
	t.Helper()

	h := NewHandler(uc, nopLogger{})
	req := httptest.NewRequest(http.MethodPost, "/api/v1/appointments", strings.NewReader(body))
	rec := httptest.NewRecorder()
	h.Handle(rec, req)
	return rec
}

const validBody = `{"clientId":1,"staffId":2,"serviceId":3,"date":"2026-03-12","startTime":"14:30"}`

func TestHandle(t *testing.T) {
	t.Run("creates appointment and returns 201", func(t *testing.T) {
		uc := &fakeUseCase{resp: &createAppointment.Response{
			ID:              10,
			ClientID:        1,
			StaffID:         2,
			ServiceID:       3,
			Date:            time.Date(2026, 3, 12, 0, 0, 0, 0, time.UTC),
			StartTime:       "14:30",
			DurationMinutes: 45,
			Status:          "scheduled",
			ServiceName:     "Corte Masculino",
			ServicePrice:    50,
		}}

		rec := doRequest(t, uc, validBody)

		require.Equal(t, http.StatusCreated, rec.Code)
		require.NotNil(t, uc.gotReq)
		assert.Equal(t, int64(2), uc.gotReq.StaffID)

		var resp AppointmentResponse
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
		assert.Equal(t, int64(10), resp.ID)
		assert.Equal(t, "2026-03-12", resp.Date)
		assert.Equal(t, "14:30", resp.StartTime)
		assert.Equal(t, "scheduled", resp.Status)
	})

	t.Run("slot conflict returns 409", func(t *testing.T) {
		uc := &fakeUseCase{err: createAppointment.ErrSlotNotAvailable}

		rec := doRequest(t, uc, validBody)

		assert.Equal(t, http.StatusConflict, rec.Code)
		assert.Contains(t, rec.Body.String(), "слот недоступен")
	})

	t.Run("error mapping", func(t *testing.T) {
		tests := []struct {
			name string
			err  error
			code int
		}{
			{"staff not found", createAppointment.ErrStaffNotFound, http.StatusNotFound},
			{"staff inactive", createAppointment.ErrStaffInactive, http.StatusBadRequest},
			{"service not found", createAppointment.ErrServiceNotFound, http.StatusNotFound},
			{"service inactive", createAppointment.ErrServiceInactive, http.StatusBadRequest},
			{"client not found", createAppointment.ErrClientNotFound, http.StatusNotFound},
			{"salon closed", createAppointment.ErrSalonClosed, http.StatusBadRequest},
			{"outside business hours", createAppointment.ErrOutsideBusinessHours, http.StatusBadRequest},
			{"too late to book", createAppointment.ErrTooLateToBook, http.StatusBadRequest},
			{"date in past", createAppointment.ErrInvalidDate, http.StatusBadRequest},
			{"invalid input", createAppointment.ErrInvalidInput, http.StatusBadRequest},
			{"internal error", createAppointment.ErrInternal, http.StatusInternalServerError},
		}

		for _, tt := range tests {
			t.Run(tt.name, func(t *testing.T) {
				rec := doRequest(t, &fakeUseCase{err: tt.err}, validBody)
				assert.Equal(t, tt.code, rec.Code)
			})
		}
	})

	t.Run("malformed json returns 400", func(t *testing.T) {
		rec := doRequest(t, &fakeUseCase{}, `{"clientId":`)
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("malformed date returns 400 before reaching the use case", func(t *testing.T) {
		uc := &fakeUseCase{}
		rec := doRequest(t, uc, `{"clientId":1,"staffId":2,"serviceId":3,"date":"12.03.2026","startTime":"14:30"}`)

		assert.Equal(t, http.StatusBadRequest, rec.Code)
		assert.Nil(t, uc.gotReq)
	})

	t.Run("unknown fields are rejected", func(t *testing.T) {
		rec := doRequest(t, &fakeUseCase{}, `{"clientId":1,"bogus":true}`)
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})
}
