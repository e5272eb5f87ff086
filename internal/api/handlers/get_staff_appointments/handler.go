package get_staff_appointments

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gorilla/mux"

	"github.com/lex4u/BSM-SchedulingService/internal/api/handlers"
	"github.com/lex4u/BSM-SchedulingService/internal/domain"
	"github.com/lex4u/BSM-SchedulingService/internal/service/appointments"
	"github.com/lex4u/BSM-SchedulingService/internal/service/appointments/models"
)

const (
	msgInvalidStaffID = "некорректный ID мастера"
	msgInvalidDate    = "некорректный формат даты, ожидается YYYY-MM-DD"
)

type Handler struct {
	service AppointmentService
	logger  Logger
}

func NewHandler(service AppointmentService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle GET /api/v1/staff/{staffId}/appointments?date=YYYY-MM-DD&includeReleased=true
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)

	staffID, err := strconv.ParseInt(vars["staffId"], 10, 64)
	if err != nil {
		h.logger.Warn("GET /staff/{id}/appointments - Invalid staff ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidStaffID)
		return
	}

	date, err := time.Parse(domain.DateFormat, r.URL.Query().Get("date"))
	if err != nil {
		h.logger.Warn("GET /staff/{id}/appointments - Invalid date: %v", err)
		handlers.RespondBadRequest(w, msgInvalidDate)
		return
	}

	includeReleased := r.URL.Query().Get("includeReleased") == "true"

	result, err := h.service.GetStaffDay(r.Context(), &models.GetStaffDayRequest{
		StaffID:         staffID,
		Date:            date,
		IncludeReleased: includeReleased,
	})
	if err != nil {
		switch {
		case errors.Is(err, appointments.ErrInvalidInput):
			h.logger.Warn("GET /staff/{id}/appointments - Invalid input: %v", err)
			handlers.RespondBadRequest(w, err.Error())

		default:
			h.logger.Error("GET /staff/{id}/appointments - Failed to get appointments: staff_id=%d, error=%v",
				staffID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("GET /staff/{id}/appointments - Retrieved %d appointments: staff_id=%d, date=%s",
		len(result.Appointments), staffID, date.Format(domain.DateFormat))
	handlers.RespondJSON(w, http.StatusOK, result)
}
