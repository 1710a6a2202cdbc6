// internal/handlers/companion_handler.go
package handlers

import (
	"log/slog"
	"net/http"

	"yanindayim/internal/model"
	"yanindayim/internal/service"
	"yanindayim/internal/webutil"
)

type CompanionHandler struct {
	service service.CompanionService
	logger  *slog.Logger
}

func NewCompanionHandler(s service.CompanionService, logger *slog.Logger) *CompanionHandler {
	if logger == nil {
		logger = slog.Default()
	}
	return &CompanionHandler{service: s, logger: logger}
}

type contactListResponse struct {
	Success  bool                    `json:"success"`
	Contacts []model.ContactResponse `json:"contacts"`
}

type contactCreatedResponse struct {
	Success bool                   `json:"success"`
	Contact *model.ContactResponse `json:"contact"`
}

func (h *CompanionHandler) ListContacts(w http.ResponseWriter, r *http.Request) {
	logger := h.logger.With(slog.String("handler", "ListContacts"))

	user, ok := requireUser(w, r, logger)
	if !ok {
		return
	}

	contacts, err := h.service.ListContacts(r.Context(), user.ID)
	if err != nil {
		webutil.HandleError(w, logger, err)
		return
	}
	webutil.RespondWithJSON(w, http.StatusOK, contactListResponse{Success: true, Contacts: contacts}, logger)
}

func (h *CompanionHandler) AddContact(w http.ResponseWriter, r *http.Request) {
	logger := h.logger.With(slog.String("handler", "AddContact"))

	user, ok := requireUser(w, r, logger)
	if !ok {
		return
	}

	var req model.AddContactRequest
	if err := webutil.DecodeJSONBody(r, &req); err != nil {
		appErr := model.NewAppError("INVALID_REQUEST_BODY", "İstek gövdesi çözümlenemedi.", "", model.ErrInvalidInput)
		webutil.HandleError(w, logger, appErr)
		return
	}
	if appErr := webutil.ValidateStruct(req); appErr != nil {
		webutil.HandleError(w, logger, appErr)
		return
	}

	contact, err := h.service.AddContact(r.Context(), user.ID, &req)
	if err != nil {
		webutil.HandleError(w, logger, err)
		return
	}

	logger.Info("Trusted contact added", slog.Uint64("user_id", uint64(user.ID)), slog.Uint64("contact_id", uint64(contact.ID)))
	webutil.RespondWithJSON(w, http.StatusCreated, contactCreatedResponse{Success: true, Contact: contact}, logger)
}

func (h *CompanionHandler) DeleteContact(w http.ResponseWriter, r *http.Request) {
	logger := h.logger.With(slog.String("handler", "DeleteContact"))

	user, ok := requireUser(w, r, logger)
	if !ok {
		return
	}

	contactID, err := parseIDParam(r, "contactID")
	if err != nil {
		appErr := model.NewAppError("INVALID_INPUT", "Geçersiz kişi numarası.", "contact_id", model.ErrInvalidInput)
		webutil.HandleError(w, logger, appErr)
		return
	}

	if err := h.service.DeleteContact(r.Context(), user.ID, contactID); err != nil {
		webutil.HandleError(w, logger, err)
		return
	}
	webutil.RespondWithJSON(w, http.StatusOK, map[string]bool{"success": true}, logger)
}

type alertListResponse struct {
	Success bool                   `json:"success"`
	Alerts  []model.CompanionAlert `json:"alerts"`
}

// ListAlerts returns the user's past companion alerts, newest first.
func (h *CompanionHandler) ListAlerts(w http.ResponseWriter, r *http.Request) {
	logger := h.logger.With(slog.String("handler", "ListAlerts"))

	user, ok := requireUser(w, r, logger)
	if !ok {
		return
	}

	alerts, err := h.service.AlertHistory(r.Context(), user.ID)
	if err != nil {
		webutil.HandleError(w, logger, err)
		return
	}
	if alerts == nil {
		alerts = []model.CompanionAlert{}
	}
	webutil.RespondWithJSON(w, http.StatusOK, alertListResponse{Success: true, Alerts: alerts}, logger)
}

func (h *CompanionHandler) Notify(w http.ResponseWriter, r *http.Request) {
	logger := h.logger.With(slog.String("handler", "CompanionNotify"))

	user, ok := requireUser(w, r, logger)
	if !ok {
		return
	}

	var req model.NotifyRequest
	if err := webutil.DecodeJSONBody(r, &req); err != nil {
		appErr := model.NewAppError("INVALID_REQUEST_BODY", "İstek gövdesi çözümlenemedi.", "", model.ErrInvalidInput)
		webutil.HandleError(w, logger, appErr)
		return
	}

	resp, err := h.service.Notify(r.Context(), user, &req)
	if err != nil {
		webutil.HandleError(w, logger, err)
		return
	}

	logger.Info("Companion alert sent", slog.Uint64("user_id", uint64(user.ID)), slog.Int("contacts", len(resp.Notified)))
	webutil.RespondWithJSON(w, http.StatusOK, resp, logger)
}
