package delete_appointment

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
	msgHasSessions          = "запись нельзя удалить: по ней есть визиты"
	msgHasSales             = "запись нельзя удалить: по ней есть продажи"
	msgFinalized            = "запись нельзя удалить: статус финальный"
	msgCancelledKept        = "запись нельзя удалить: отменённые записи хранятся для аудита"
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

// Handle DELETE /api/v1/appointments/{appointmentId}
// Отказ всегда содержит конкретную причину, а не общее "нельзя"
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)

	appointmentID, err := strconv.ParseInt(vars["appointmentId"], 10, 64)
	if err != nil {
		h.logger.Warn("DELETE /appointments/{id} - Invalid appointment ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidAppointmentID)
		return
	}

	if err := h.service.Delete(r.Context(), appointmentID); err != nil {
		switch {
		case errors.Is(err, appointments.ErrAppointmentNotFound):
			h.logger.Warn("DELETE /appointments/{id} - Appointment not found: appointment_id=%d", appointmentID)
			handlers.RespondNotFound(w, msgNotFound)

		case errors.Is(err, appointments.ErrDeleteHasSessions):
			h.logger.Warn("DELETE /appointments/{id} - Has sessions: appointment_id=%d", appointmentID)
			handlers.RespondError(w, http.StatusConflict, msgHasSessions)

		case errors.Is(err, appointments.ErrDeleteHasSales):
			h.logger.Warn("DELETE /appointments/{id} - Has sales: appointment_id=%d", appointmentID)
			handlers.RespondError(w, http.StatusConflict, msgHasSales)

		case errors.Is(err, appointments.ErrDeleteFinalized):
			h.logger.Warn("DELETE /appointments/{id} - Status finalized: appointment_id=%d", appointmentID)
			handlers.RespondError(w, http.StatusConflict, msgFinalized)

		case errors.Is(err, appointments.ErrDeleteCancelledKept):
			h.logger.Warn("DELETE /appointments/{id} - Cancelled kept for audit: appointment_id=%d", appointmentID)
			handlers.RespondError(w, http.StatusConflict, msgCancelledKept)

		default:
			h.logger.Error("DELETE /appointments/{id} - Failed to delete: appointment_id=%d, error=%v",
				appointmentID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("DELETE /appointments/{id} - Appointment deleted successfully: appointment_id=%d", appointmentID)
	handlers.RespondJSON(w, http.StatusNoContent, nil)
}
