// internal/handlers/auth_handler.go
package handlers

import (
	"log/slog"
	"net/http"

	"yanindayim/internal/middleware"
	"yanindayim/internal/model"
	"yanindayim/internal/service"
	"yanindayim/internal/webutil"
)

type AuthHandler struct {
	service  service.AuthService
	sessions *middleware.SessionManager
	logger   *slog.Logger
}

func NewAuthHandler(s service.AuthService, sessions *middleware.SessionManager, logger *slog.Logger) *AuthHandler {
	if logger == nil {
		logger = slog.Default()
	}
	return &AuthHandler{service: s, sessions: sessions, logger: logger}
}

func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	logger := h.logger.With(slog.String("handler", "Register"))

	var req model.RegisterRequest
	if err := webutil.DecodeJSONBody(r, &req); err != nil {
		appErr := model.NewAppError("INVALID_REQUEST_BODY", "İstek gövdesi çözümlenemedi.", "", model.ErrInvalidInput)
		webutil.HandleError(w, logger, appErr)
		return
	}
	if appErr := webutil.ValidateStruct(req); appErr != nil {
		logger.Warn("Validation failed", slog.String("error", appErr.Error()))
		webutil.HandleError(w, logger, appErr)
		return
	}

	user, err := h.service.Register(r.Context(), &req)
	if err != nil {
		webutil.HandleError(w, logger, err)
		return
	}

	sessionUser := model.SessionUser{ID: user.ID, Name: user.Name, Email: user.Email, Role: user.Role}
	if err := h.sessions.SetUser(w, r, sessionUser); err != nil {
		logger.Error("Error saving session after register", slog.Any("error", err))
		webutil.HandleError(w, logger, model.ErrInternalServer)
		return
	}

	logger.Info("User registered", slog.Uint64("user_id", uint64(user.ID)))
	webutil.RespondWithJSON(w, http.StatusCreated, model.AuthResponse{
		Success:  true,
		LoggedIn: true,
		User:     &sessionUser,
	}, logger)
}

func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	logger := h.logger.With(slog.String("handler", "Login"))

	var req model.LoginRequest
	if err := webutil.DecodeJSONBody(r, &req); err != nil {
		appErr := model.NewAppError("INVALID_REQUEST_BODY", "İstek gövdesi çözümlenemedi.", "", model.ErrInvalidInput)
		webutil.HandleError(w, logger, appErr)
		return
	}
	if appErr := webutil.ValidateStruct(req); appErr != nil {
		webutil.HandleError(w, logger, appErr)
		return
	}

	user, err := h.service.Login(r.Context(), &req)
	if err != nil {
		webutil.HandleError(w, logger, err)
		return
	}

	sessionUser := model.SessionUser{ID: user.ID, Name: user.Name, Email: user.Email, Role: user.Role}
	if err := h.sessions.SetUser(w, r, sessionUser); err != nil {
		logger.Error("Error saving session after login", slog.Any("error", err))
		webutil.HandleError(w, logger, model.ErrInternalServer)
		return
	}

	logger.Info("User logged in", slog.Uint64("user_id", uint64(user.ID)))
	webutil.RespondWithJSON(w, http.StatusOK, model.AuthResponse{
		Success:  true,
		LoggedIn: true,
		User:     &sessionUser,
	}, logger)
}

func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	logger := h.logger.With(slog.String("handler", "Logout"))

	if err := h.sessions.Clear(w, r); err != nil {
		logger.Error("Error clearing session", slog.Any("error", err))
		webutil.HandleError(w, logger, model.ErrInternalServer)
		return
	}

	webutil.RespondWithJSON(w, http.StatusOK, map[string]bool{"success": true}, logger)
}

// Me reports the current session. An anonymous visitor is a normal result,
// not an error.
func (h *AuthHandler) Me(w http.ResponseWriter, r *http.Request) {
	logger := h.logger.With(slog.String("handler", "Me"))

	user, ok := middleware.GetSessionUser(r.Context())
	if !ok {
		webutil.RespondWithJSON(w, http.StatusOK, model.AuthResponse{Success: true, LoggedIn: false}, logger)
		return
	}

	webutil.RespondWithJSON(w, http.StatusOK, model.AuthResponse{
		Success:  true,
		LoggedIn: true,
		User:     &user,
	}, logger)
}
