package get_schedule_config

import (
	"net/http"

	"github.com/lex4u/BSM-SchedulingService/internal/api/handlers"
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

// Handle GET /api/v1/schedule-config
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	config, err := h.service.Get(r.Context())
	if err != nil {
		h.logger.Error("GET /schedule-config - Failed to get config: error=%v", err)
		handlers.RespondInternalError(w)
		return
	}

	h.logger.Info("GET /schedule-config - Config retrieved successfully")
	handlers.RespondJSON(w, http.StatusOK, config)
}
