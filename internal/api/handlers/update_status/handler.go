package update_status

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/lex4u/BSM-SchedulingService/internal/api/handlers"
	"github.com/lex4u/BSM-SchedulingService/internal/service/appointments"
	"github.com/lex4u/BSM-SchedulingService/internal/service/appointments/models"
)

const (
	msgInvalidAppointmentID = "некорректный ID записи"
	msgInvalidRequestBody   = "некорректное тело запроса"
	msgNotFound             = "запись не найдена"
	msgInvalidStatus        = "недопустимый статус, ожидается confirmed, completed или no_show"
	msgStatusFinal          = "статус записи финальный и не может быть изменён"
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

// Handle PATCH /api/v1/appointments/{appointmentId}/status
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)

	appointmentID, err := strconv.ParseInt(vars["appointmentId"], 10, 64)
	if err != nil {
		h.logger.Warn("PATCH /appointments/{id}/status - Invalid appointment ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidAppointmentID)
		return
	}

	var req models.UpdateStatusRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("PATCH /appointments/{id}/status - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	if err := h.service.UpdateStatus(r.Context(), appointmentID, &req); err != nil {
		switch {
		case errors.Is(err, appointments.ErrAppointmentNotFound):
			h.logger.Warn("PATCH /appointments/{id}/status - Appointment not found: appointment_id=%d", appointmentID)
			handlers.RespondNotFound(w, msgNotFound)

		case errors.Is(err, appointments.ErrInvalidStatus):
			h.logger.Warn("PATCH /appointments/{id}/status - Invalid status=%s: appointment_id=%d", req.Status, appointmentID)
			handlers.RespondBadRequest(w, msgInvalidStatus)

		case errors.Is(err, appointments.ErrStatusFinal):
			h.logger.Warn("PATCH /appointments/{id}/status - Status is final: appointment_id=%d", appointmentID)
			handlers.RespondError(w, http.StatusConflict, msgStatusFinal)

		default:
			h.logger.Error("PATCH /appointments/{id}/status - Failed to update status: appointment_id=%d, error=%v",
				appointmentID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	// Отдаем запись с пересчитанным действующим статусом
	appointment, err := h.service.GetByID(r.Context(), appointmentID)
	if err != nil {
		h.logger.Error("PATCH /appointments/{id}/status - Failed to reload appointment: appointment_id=%d, error=%v",
			appointmentID, err)
		handlers.RespondInternalError(w)
		return
	}

	h.logger.Info("PATCH /appointments/{id}/status - Status updated successfully: appointment_id=%d, status=%s",
		appointmentID, req.Status)
	handlers.RespondJSON(w, http.StatusOK, appointment)
}
