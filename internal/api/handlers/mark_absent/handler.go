package mark_absent

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/lex4u/BSM-SchedulingService/internal/api/handlers"
	"github.com/lex4u/BSM-SchedulingService/internal/service/appointments"
)

const (
	msgInvalidAppointmentID = "некорректный ID записи"
	msgNotFound             = "запись не найдена"
	msgTimeNotPassed        = "время записи ещё не наступило"
	msgCannotMarkAbsent     = "неявку нельзя отметить в текущем статусе"
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

// Handle PATCH /api/v1/appointments/{appointmentId}/absent
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)

	appointmentID, err := strconv.ParseInt(vars["appointmentId"], 10, 64)
	if err != nil {
		h.logger.Warn("PATCH /appointments/{id}/absent - Invalid appointment ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidAppointmentID)
		return
	}

	if err := h.service.MarkAbsent(r.Context(), appointmentID); err != nil {
		switch {
		case errors.Is(err, appointments.ErrAppointmentNotFound):
			h.logger.Warn("PATCH /appointments/{id}/absent - Appointment not found: appointment_id=%d", appointmentID)
			handlers.RespondNotFound(w, msgNotFound)

		case errors.Is(err, appointments.ErrTimeNotPassed):
			h.logger.Warn("PATCH /appointments/{id}/absent - Time not passed: appointment_id=%d", appointmentID)
			handlers.RespondError(w, http.StatusConflict, msgTimeNotPassed)

		case errors.Is(err, appointments.ErrCannotMarkAbsent):
			h.logger.Warn("PATCH /appointments/{id}/absent - Cannot mark absent: appointment_id=%d", appointmentID)
			handlers.RespondError(w, http.StatusConflict, msgCannotMarkAbsent)

		default:
			h.logger.Error("PATCH /appointments/{id}/absent - Failed to mark absent: appointment_id=%d, error=%v",
				appointmentID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("PATCH /appointments/{id}/absent - Appointment marked absent: appointment_id=%d", appointmentID)
	handlers.RespondJSON(w, http.StatusNoContent, nil)
}
