// internal/handlers/progress_handler.go
package handlers

import (
	"log/slog"
	"net/http"

	"yanindayim/internal/middleware"
	"yanindayim/internal/model"
	"yanindayim/internal/service"
	"yanindayim/internal/webutil"
)

type ProgressHandler struct {
	service service.ProgressService
	logger  *slog.Logger
}

func NewProgressHandler(s service.ProgressService, logger *slog.Logger) *ProgressHandler {
	if logger == nil {
		logger = slog.Default()
	}
	return &ProgressHandler{service: s, logger: logger}
}

// requireUser resolves the session or writes the not-logged-in result. The
// result is HTTP 200: for these endpoints anonymity is an expected state the
// frontend handles, not a protocol failure.
func requireUser(w http.ResponseWriter, r *http.Request, logger *slog.Logger) (model.SessionUser, bool) {
	user, ok := middleware.GetSessionUser(r.Context())
	if !ok {
		appErr := model.NewAppError("NOT_LOGGED_IN", "Oturum açmanız gerekiyor.", "", model.ErrNotLoggedIn)
		webutil.HandleError(w, logger, appErr)
		return model.SessionUser{}, false
	}
	return user, true
}

func (h *ProgressHandler) Save(w http.ResponseWriter, r *http.Request) {
	logger := h.logger.With(slog.String("handler", "SaveProgress"))

	user, ok := requireUser(w, r, logger)
	if !ok {
		return
	}

	var req model.SaveProgressRequest
	if err := webutil.DecodeJSONBody(r, &req); err != nil {
		appErr := model.NewAppError("INVALID_REQUEST_BODY", "İstek gövdesi çözümlenemedi.", "", model.ErrInvalidInput)
		webutil.HandleError(w, logger, appErr)
		return
	}
	if appErr := webutil.ValidateStruct(req); appErr != nil {
		webutil.HandleError(w, logger, appErr)
		return
	}

	if err := h.service.Save(r.Context(), user.ID, &req); err != nil {
		webutil.HandleError(w, logger, err)
		return
	}
	webutil.RespondWithJSON(w, http.StatusOK, map[string]bool{"success": true}, logger)
}

func (h *ProgressHandler) Complete(w http.ResponseWriter, r *http.Request) {
	logger := h.logger.With(slog.String("handler", "CompleteProgress"))

	user, ok := requireUser(w, r, logger)
	if !ok {
		return
	}

	var req model.CompleteProgressRequest
	if err := webutil.DecodeJSONBody(r, &req); err != nil {
		appErr := model.NewAppError("INVALID_REQUEST_BODY", "İstek gövdesi çözümlenemedi.", "", model.ErrInvalidInput)
		webutil.HandleError(w, logger, appErr)
		return
	}
	if appErr := webutil.ValidateStruct(req); appErr != nil {
		webutil.HandleError(w, logger, appErr)
		return
	}

	if err := h.service.Complete(r.Context(), user.ID, &req); err != nil {
		webutil.HandleError(w, logger, err)
		return
	}
	webutil.RespondWithJSON(w, http.StatusOK, map[string]bool{"success": true}, logger)
}

// Get reports progress for one guide. Anonymous visitors get a successful
// "logged_in: false" body so the guide page renders without a saved position.
func (h *ProgressHandler) Get(w http.ResponseWriter, r *http.Request) {
	logger := h.logger.With(slog.String("handler", "GetProgress"))

	user, ok := middleware.GetSessionUser(r.Context())
	if !ok {
		webutil.RespondWithJSON(w, http.StatusOK, model.ProgressResponse{Success: false, LoggedIn: false}, logger)
		return
	}

	guideID, err := parseIDParam(r, "guideID")
	if err != nil {
		appErr := model.NewAppError("INVALID_INPUT", "Geçersiz rehber numarası.", "guide_id", model.ErrInvalidInput)
		webutil.HandleError(w, logger, appErr)
		return
	}

	resp, err := h.service.Get(r.Context(), user.ID, guideID)
	if err != nil {
		webutil.HandleError(w, logger, err)
		return
	}
	webutil.RespondWithJSON(w, http.StatusOK, resp, logger)
}

func (h *ProgressHandler) Profile(w http.ResponseWriter, r *http.Request) {
	logger := h.logger.With(slog.String("handler", "Profile"))

	user, ok := requireUser(w, r, logger)
	if !ok {
		return
	}

	resp, err := h.service.Profile(r.Context(), user)
	if err != nil {
		webutil.HandleError(w, logger, err)
		return
	}
	webutil.RespondWithJSON(w, http.StatusOK, resp, logger)
}
