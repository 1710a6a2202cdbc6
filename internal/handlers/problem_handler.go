// internal/handlers/problem_handler.go
package handlers

import (
	"log/slog"
	"net/http"

	"yanindayim/internal/model"
	"yanindayim/internal/service"
	"yanindayim/internal/webutil"
)

type ProblemHandler struct {
	service service.ProblemService
	logger  *slog.Logger
}

func NewProblemHandler(s service.ProblemService, logger *slog.Logger) *ProblemHandler {
	if logger == nil {
		logger = slog.Default()
	}
	return &ProblemHandler{service: s, logger: logger}
}

// Report routes a "I'm stuck" event to guidance text. Open to anonymous
// users: someone who cannot log in still deserves help.
func (h *ProblemHandler) Report(w http.ResponseWriter, r *http.Request) {
	logger := h.logger.With(slog.String("handler", "ReportProblem"))

	var req model.ReportProblemRequest
	if err := webutil.DecodeJSONBody(r, &req); err != nil {
		appErr := model.NewAppError("INVALID_REQUEST_BODY", "İstek gövdesi çözümlenemedi.", "", model.ErrInvalidInput)
		webutil.HandleError(w, logger, appErr)
		return
	}

	resp, err := h.service.Report(r.Context(), &req)
	if err != nil {
		webutil.HandleError(w, logger, err)
		return
	}
	webutil.RespondWithJSON(w, http.StatusOK, resp, logger)
}
