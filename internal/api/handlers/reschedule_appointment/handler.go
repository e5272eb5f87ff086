package reschedule_appointment

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/lex4u/BSM-SchedulingService/internal/api/handlers"
	rescheduleAppointment "github.com/lex4u/BSM-SchedulingService/internal/usecase/reschedule_appointment"
)

const (
	msgInvalidAppointmentID = "некорректный ID записи"
	msgInvalidRequestBody   = "некорректное тело запроса"
	msgInvalidDateOrTime    = "некорректный формат даты или времени, ожидается YYYY-MM-DD и HH:MM"
	msgNotFound             = "запись не найдена"
	msgNotEditable          = "запись нельзя перенести в текущем статусе"
	msgSlotNotAvailable     = "выбранный временной слот недоступен"
	msgStaffNotFound        = "мастер не найден"
	msgStaffInactive        = "мастер не принимает записи"
	msgServiceNotFound      = "услуга не найдена"
	msgServiceInactive      = "услуга недоступна для записи"
	msgSalonClosed          = "салон закрыт в выбранную дату"
	msgOutsideHours         = "запись не помещается в рабочие часы салона"
	msgTooLateToBook        = "слишком поздно для переноса на этот слот"
	msgInvalidDate          = "дата не может быть в прошлом"
)

type Handler struct {
	useCase RescheduleAppointmentUseCase
	logger  Logger
}

func NewHandler(useCase RescheduleAppointmentUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle PATCH /api/v1/appointments/{appointmentId}/reschedule
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)

	appointmentID, err := strconv.ParseInt(vars["appointmentId"], 10, 64)
	if err != nil {
		h.logger.Warn("PATCH /appointments/{id}/reschedule - Invalid appointment ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidAppointmentID)
		return
	}

	var req RescheduleAppointmentRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("PATCH /appointments/{id}/reschedule - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	useCaseReq, err := req.ToUseCaseRequest(appointmentID)
	if err != nil {
		h.logger.Warn("PATCH /appointments/{id}/reschedule - Failed to parse request: %v", err)
		handlers.RespondBadRequest(w, msgInvalidDateOrTime)
		return
	}

	result, err := h.useCase.Execute(r.Context(), useCaseReq)
	if err != nil {
		switch {
		case errors.Is(err, rescheduleAppointment.ErrAppointmentNotFound):
			h.logger.Warn("PATCH /appointments/{id}/reschedule - Appointment not found: appointment_id=%d", appointmentID)
			handlers.RespondNotFound(w, msgNotFound)

		case errors.Is(err, rescheduleAppointment.ErrNotEditable):
			h.logger.Warn("PATCH /appointments/{id}/reschedule - Not editable: appointment_id=%d", appointmentID)
			handlers.RespondError(w, http.StatusConflict, msgNotEditable)

		case errors.Is(err, rescheduleAppointment.ErrSlotNotAvailable):
			h.logger.Warn("PATCH /appointments/{id}/reschedule - Slot not available: appointment_id=%d, staff_id=%d",
				appointmentID, req.StaffID)
			handlers.RespondError(w, http.StatusConflict, msgSlotNotAvailable)

		case errors.Is(err, rescheduleAppointment.ErrStaffNotFound):
			h.logger.Warn("PATCH /appointments/{id}/reschedule - Staff not found: staff_id=%d", req.StaffID)
			handlers.RespondNotFound(w, msgStaffNotFound)

		case errors.Is(err, rescheduleAppointment.ErrStaffInactive):
			h.logger.Warn("PATCH /appointments/{id}/reschedule - Staff inactive: staff_id=%d", req.StaffID)
			handlers.RespondBadRequest(w, msgStaffInactive)

		case errors.Is(err, rescheduleAppointment.ErrServiceNotFound):
			h.logger.Warn("PATCH /appointments/{id}/reschedule - Service not found: service_id=%d", req.ServiceID)
			handlers.RespondNotFound(w, msgServiceNotFound)

		case errors.Is(err, rescheduleAppointment.ErrServiceInactive):
			h.logger.Warn("PATCH /appointments/{id}/reschedule - Service inactive: service_id=%d", req.ServiceID)
			handlers.RespondBadRequest(w, msgServiceInactive)

		case errors.Is(err, rescheduleAppointment.ErrSalonClosed):
			h.logger.Warn("PATCH /appointments/{id}/reschedule - Salon closed: date=%s", req.Date)
			handlers.RespondBadRequest(w, msgSalonClosed)

		case errors.Is(err, rescheduleAppointment.ErrOutsideBusinessHours):
			h.logger.Warn("PATCH /appointments/{id}/reschedule - Outside business hours: time=%s", req.StartTime)
			handlers.RespondBadRequest(w, msgOutsideHours)

		case errors.Is(err, rescheduleAppointment.ErrTooLateToBook):
			h.logger.Warn("PATCH /appointments/{id}/reschedule - Too late to book: time=%s", req.StartTime)
			handlers.RespondBadRequest(w, msgTooLateToBook)

		case errors.Is(err, rescheduleAppointment.ErrInvalidDate):
			h.logger.Warn("PATCH /appointments/{id}/reschedule - Date in past: date=%s", req.Date)
			handlers.RespondBadRequest(w, msgInvalidDate)

		case errors.Is(err, rescheduleAppointment.ErrInvalidInput):
			h.logger.Warn("PATCH /appointments/{id}/reschedule - Invalid input: %v", err)
			handlers.RespondBadRequest(w, err.Error())

		default:
			h.logger.Error("PATCH /appointments/{id}/reschedule - Failed to reschedule: appointment_id=%d, error=%v",
				appointmentID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("PATCH /appointments/{id}/reschedule - Appointment rescheduled successfully: appointment_id=%d", result.ID)
	handlers.RespondJSON(w, http.StatusOK, FromUseCaseResponse(result))
}
