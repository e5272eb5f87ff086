package update_schedule_config

import (
	"errors"
	"net/http"

	"github.com/lex4u/BSM-SchedulingService/internal/api/handlers"
	"github.com/lex4u/BSM-SchedulingService/internal/service/scheduleconfig"
	"github.com/lex4u/BSM-SchedulingService/internal/service/scheduleconfig/models"
)

const (
	msgInvalidRequestBody = "некорректное тело запроса"
)

type Handler struct {
	service ScheduleConfigService
	logger  Logger
}

func NewHandler(service ScheduleConfigService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle PUT /api/v1/schedule-config
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	var req models.UpdateScheduleConfigRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("PUT /schedule-config - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	config, err := h.service.Update(r.Context(), &req)
	if err != nil {
		switch {
		case errors.Is(err, scheduleconfig.ErrInvalidInput):
			h.logger.Warn("PUT /schedule-config - Invalid input: %v", err)
			handlers.RespondBadRequest(w, err.Error())

		default:
			h.logger.Error("PUT /schedule-config - Failed to update config: error=%v", err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("PUT /schedule-config - Config updated successfully")
	handlers.RespondJSON(w, http.StatusOK, config)
}
