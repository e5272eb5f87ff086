package get_available_slots

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gorilla/mux"

	"github.com/lex4u/BSM-SchedulingService/internal/api/handlers"
	"github.com/lex4u/BSM-SchedulingService/internal/domain"
	getAvailableSlots "github.com/lex4u/BSM-SchedulingService/internal/usecase/get_available_slots"
)

const (
	msgInvalidStaffID   = "некорректный ID мастера"
	msgInvalidServiceID = "некорректный ID услуги"
	msgInvalidDate      = "некорректный формат даты, ожидается YYYY-MM-DD"
	msgStaffNotFound    = "мастер не найден"
	msgStaffInactive    = "мастер не принимает записи"
	msgServiceNotFound  = "услуга не найдена"
	msgServiceInactive  = "услуга недоступна для записи"
	msgDateInPast       = "дата не может быть в прошлом"
)

type Handler struct {
	useCase GetAvailableSlotsUseCase
	logger  Logger
}

func NewHandler(useCase GetAvailableSlotsUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle GET /api/v1/staff/{staffId}/available-slots?serviceId={id}&date=YYYY-MM-DD
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)

	staffID, err := strconv.ParseInt(vars["staffId"], 10, 64)
	if err != nil {
		h.logger.Warn("GET /staff/{id}/available-slots - Invalid staff ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidStaffID)
		return
	}

	serviceID, err := strconv.ParseInt(r.URL.Query().Get("serviceId"), 10, 64)
	if err != nil {
		h.logger.Warn("GET /staff/{id}/available-slots - Invalid service ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidServiceID)
		return
	}

	date, err := time.Parse(domain.DateFormat, r.URL.Query().Get("date"))
	if err != nil {
		h.logger.Warn("GET /staff/{id}/available-slots - Invalid date: %v", err)
		handlers.RespondBadRequest(w, msgInvalidDate)
		return
	}

	result, err := h.useCase.Execute(r.Context(), &getAvailableSlots.Request{
		StaffID:   staffID,
		ServiceID: serviceID,
		Date:      date,
	})
	if err != nil {
		switch {
		case errors.Is(err, getAvailableSlots.ErrStaffNotFound):
			h.logger.Warn("GET /staff/{id}/available-slots - Staff not found: staff_id=%d", staffID)
			handlers.RespondNotFound(w, msgStaffNotFound)

		case errors.Is(err, getAvailableSlots.ErrStaffInactive):
			h.logger.Warn("GET /staff/{id}/available-slots - Staff inactive: staff_id=%d", staffID)
			handlers.RespondBadRequest(w, msgStaffInactive)

		case errors.Is(err, getAvailableSlots.ErrServiceNotFound):
			h.logger.Warn("GET /staff/{id}/available-slots - Service not found: service_id=%d", serviceID)
			handlers.RespondNotFound(w, msgServiceNotFound)

		case errors.Is(err, getAvailableSlots.ErrServiceInactive):
			h.logger.Warn("GET /staff/{id}/available-slots - Service inactive: service_id=%d", serviceID)
			handlers.RespondBadRequest(w, msgServiceInactive)

		case errors.Is(err, getAvailableSlots.ErrInvalidDate):
			h.logger.Warn("GET /staff/{id}/available-slots - Date in past: staff_id=%d", staffID)
			handlers.RespondBadRequest(w, msgDateInPast)

		case errors.Is(err, getAvailableSlots.ErrInvalidInput):
			h.logger.Warn("GET /staff/{id}/available-slots - Invalid input: %v", err)
			handlers.RespondBadRequest(w, err.Error())

		default:
			h.logger.Error("GET /staff/{id}/available-slots - Failed to get slots: staff_id=%d, error=%v", staffID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("GET /staff/{id}/available-slots - Retrieved %d slots: staff_id=%d, service_id=%d",
		len(result.Slots), staffID, serviceID)
	handlers.RespondJSON(w, http.StatusOK, FromUseCaseResponse(result))
}
