// internal/handlers/safety_handler.go
package handlers

import (
	"log/slog"
	"net/http"

	"yanindayim/internal/service"
	"yanindayim/internal/webutil"
)

type SafetyHandler struct {
	service service.ScenarioService
	logger  *slog.Logger
}

func NewSafetyHandler(s service.ScenarioService, logger *slog.Logger) *SafetyHandler {
	if logger == nil {
		logger = slog.Default()
	}
	return &SafetyHandler{service: s, logger: logger}
}

// Scenario serves one fraud drill for the safety quiz widget.
func (h *SafetyHandler) Scenario(w http.ResponseWriter, r *http.Request) {
	logger := h.logger.With(slog.String("handler", "SafetyScenario"))

	resp, err := h.service.Random(r.Context())
	if err != nil {
		webutil.HandleError(w, logger, err)
		return
	}
	webutil.RespondWithJSON(w, http.StatusOK, resp, logger)
}
