package mark_absent

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"

	"github.com/lex4u/BSM-SchedulingService/internal/service/appointments"
)

type fakeService struct {
	err   error
	gotID int64
}

func (f *fakeService) MarkAbsent(_ context.Context, id int64) error {
	f.gotID = id
	return f.err
}

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

func doRequest(t *testing.T, svc *fakeService, id string) *httptest.ResponseRecorder {
	t.Helper()

	h := NewHandler(svc, nopLogger{})
	r := mux.NewRouter()
	r.HandleFunc("/api/v1/appointments/{appointmentId}/absent", h.Handle).Methods(http.MethodPatch)

	req := httptest.NewRequest(http.MethodPatch, "/api/v1/appointments/"+id+"/absent", nil)
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	return rec
}

func TestHandle(t *testing.T) {
	t.Run("marks absent and returns 204", func(t *testing.T) {
		svc := &fakeService{}

		rec := doRequest(t, svc, "7")

		assert.Equal(t, http.StatusNoContent, rec.Code)
		assert.Equal(t, int64(7), svc.gotID)
	})

	t.Run("time not passed returns 409 with specific message", func(t *testing.T) {
		rec := doRequest(t, &fakeService{err: appointments.ErrTimeNotPassed}, "7")

		assert.Equal(t, http.StatusConflict, rec.Code)
		assert.Contains(t, rec.Body.String(), "время записи ещё не наступило")
	})

	t.Run("wrong status returns 409 with distinct message", func(t *testing.T) {
		rec := doRequest(t, &fakeService{err: appointments.ErrCannotMarkAbsent}, "7")

		assert.Equal(t, http.StatusConflict, rec.Code)
		assert.Contains(t, rec.Body.String(), "нельзя отметить")
	})

	t.Run("unknown appointment returns 404", func(t *testing.T) {
		rec := doRequest(t, &fakeService{err: appointments.ErrAppointmentNotFound}, "7")
		assert.Equal(t, http.StatusNotFound, rec.Code)
	})

	t.Run("non numeric id returns 400", func(t *testing.T) {
		rec := doRequest(t, &fakeService{}, "abc")
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("unexpected error returns 500", func(t *testing.T) {
		rec := doRequest(t, &fakeService{err: appointments.ErrInternal}, "7")
		assert.Equal(t, http.StatusInternalServerError, rec.Code)
	})
}
