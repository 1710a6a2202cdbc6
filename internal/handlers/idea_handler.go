// internal/handlers/idea_handler.go
package handlers

import (
	"log/slog"
	"net/http"

	"yanindayim/internal/model"
	"yanindayim/internal/service"
	"yanindayim/internal/webutil"
)

type IdeaHandler struct {
	service service.IdeaService
	logger  *slog.Logger
}

func NewIdeaHandler(s service.IdeaService, logger *slog.Logger) *IdeaHandler {
	if logger == nil {
		logger = slog.Default()
	}
	return &IdeaHandler{service: s, logger: logger}
}

// Create records a guide suggestion from any visitor.
func (h *IdeaHandler) Create(w http.ResponseWriter, r *http.Request) {
	logger := h.logger.With(slog.String("handler", "CreateIdea"))

	var req model.CreateIdeaRequest
	if err := webutil.DecodeJSONBody(r, &req); err != nil {
		appErr := model.NewAppError("INVALID_REQUEST_BODY", "İstek gövdesi çözümlenemedi.", "", model.ErrInvalidInput)
		webutil.HandleError(w, logger, appErr)
		return
	}
	if appErr := webutil.ValidateStruct(req); appErr != nil {
		webutil.HandleError(w, logger, appErr)
		return
	}

	if err := h.service.Create(r.Context(), &req); err != nil {
		webutil.HandleError(w, logger, err)
		return
	}
	webutil.RespondWithJSON(w, http.StatusOK, map[string]bool{"success": true}, logger)
}
