package create_appointment

import (
	"errors"
	"net/http"

	"github.com/lex4u/BSM-SchedulingService/internal/api/handlers"
	createAppointment "github.com/lex4u/BSM-SchedulingService/internal/usecase/create_appointment"
)

const (
	msgInvalidRequestBody = "некорректное тело запроса"
	msgInvalidDateOrTime  = "некорректный формат даты или времени, ожидается YYYY-MM-DD и HH:MM"
	msgSlotNotAvailable   = "выбранный временной слот недоступен"
	msgStaffNotFound      = "мастер не найден"
	msgStaffInactive      = "мастер не принимает записи"
	msgServiceNotFound    = "услуга не найдена"
	msgServiceInactive    = "услуга недоступна для записи"
	msgClientNotFound     = "клиент не найден"
	msgSalonClosed        = "салон закрыт в выбранную дату"
	msgOutsideHours       = "запись не помещается в рабочие часы салона"
	msgTooLateToBook      = "слишком поздно для записи на этот слот"
	msgInvalidDate        = "дата не может быть в прошлом"
)

type Handler struct {
	useCase CreateAppointmentUseCase
	logger  Logger
}

func NewHandler(useCase CreateAppointmentUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle POST /api/v1/appointments
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	var req CreateAppointmentRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /appointments - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	useCaseReq, err := req.ToUseCaseRequest()
	if err != nil {
		h.logger.Warn("POST /appointments - Failed to parse request: %v", err)
		handlers.RespondBadRequest(w, msgInvalidDateOrTime)
		return
	}

	result, err := h.useCase.Execute(r.Context(), useCaseReq)
	if err != nil {
		switch {
		case errors.Is(err, createAppointment.ErrSlotNotAvailable):
			h.logger.Warn("POST /appointments - Slot not available: staff_id=%d, time=%s", req.StaffID, req.StartTime)
			handlers.RespondError(w, http.StatusConflict, msgSlotNotAvailable)

		case errors.Is(err, createAppointment.ErrStaffNotFound):
			h.logger.Warn("POST /appointments - Staff not found: staff_id=%d", req.StaffID)
			handlers.RespondNotFound(w, msgStaffNotFound)

		case errors.Is(err, createAppointment.ErrStaffInactive):
			h.logger.Warn("POST /appointments - Staff inactive: staff_id=%d", req.StaffID)
			handlers.RespondBadRequest(w, msgStaffInactive)

		case errors.Is(err, createAppointment.ErrServiceNotFound):
			h.logger.Warn("POST /appointments - Service not found: service_id=%d", req.ServiceID)
			handlers.RespondNotFound(w, msgServiceNotFound)

		case errors.Is(err, createAppointment.ErrServiceInactive):
			h.logger.Warn("POST /appointments - Service inactive: service_id=%d", req.ServiceID)
			handlers.RespondBadRequest(w, msgServiceInactive)

		case errors.Is(err, createAppointment.ErrClientNotFound):
			h.logger.Warn("POST /appointments - Client not found: client_id=%d", req.ClientID)
			handlers.RespondNotFound(w, msgClientNotFound)

		case errors.Is(err, createAppointment.ErrSalonClosed):
			h.logger.Warn("POST /appointments - Salon closed: date=%s", req.Date)
			handlers.RespondBadRequest(w, msgSalonClosed)

		case errors.Is(err, createAppointment.ErrOutsideBusinessHours):
			h.logger.Warn("POST /appointments - Outside business hours: time=%s", req.StartTime)
			handlers.RespondBadRequest(w, msgOutsideHours)

		case errors.Is(err, createAppointment.ErrTooLateToBook):
			h.logger.Warn("POST /appointments - Too late to book: time=%s", req.StartTime)
			handlers.RespondBadRequest(w, msgTooLateToBook)

		case errors.Is(err, createAppointment.ErrInvalidDate):
			h.logger.Warn("POST /appointments - Date in past: date=%s", req.Date)
			handlers.RespondBadRequest(w, msgInvalidDate)

		case errors.Is(err, createAppointment.ErrInvalidInput):
			h.logger.Warn("POST /appointments - Invalid input: %v", err)
			handlers.RespondBadRequest(w, err.Error())

		default:
			h.logger.Error("POST /appointments - Failed to create appointment: client_id=%d, staff_id=%d, error=%v",
				req.ClientID, req.StaffID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /appointments - Appointment created successfully: appointment_id=%d, client_id=%d, staff_id=%d",
		result.ID, req.ClientID, req.StaffID)
	handlers.RespondJSON(w, http.StatusCreated, FromUseCaseResponse(result))
}
