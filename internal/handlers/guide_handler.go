// internal/handlers/guide_handler.go
package handlers

import (
	"log/slog"
	"net/http"
	"strconv"

	"yanindayim/internal/middleware"
	"yanindayim/internal/model"
	"yanindayim/internal/service"
	"yanindayim/internal/webutil"

	"github.com/go-chi/chi/v5"
)

type GuideHandler struct {
	service service.GuideService
	logger  *slog.Logger
}

func NewGuideHandler(s service.GuideService, logger *slog.Logger) *GuideHandler {
	if logger == nil {
		logger = slog.Default()
	}
	return &GuideHandler{service: s, logger: logger}
}

// parseIDParam reads a positive integer URL parameter.
func parseIDParam(r *http.Request, name string) (uint, error) {
	raw := chi.URLParam(r, name)
	id, err := strconv.ParseUint(raw, 10, 64)
	if err != nil || id == 0 {
		return 0, model.ErrInvalidInput
	}
	return uint(id), nil
}

// ListHome returns the published guides shown on the landing screen.
func (h *GuideHandler) ListHome(w http.ResponseWriter, r *http.Request) {
	logger := h.logger.With(slog.String("handler", "ListHome"))

	guides, err := h.service.ListHome(r.Context())
	if err != nil {
		webutil.HandleError(w, logger, err)
		return
	}
	if guides == nil {
		guides = []*model.Guide{}
	}
	webutil.RespondWithJSON(w, http.StatusOK, guides, logger)
}

func (h *GuideHandler) GetGuide(w http.ResponseWriter, r *http.Request) {
	logger := h.logger.With(slog.String("handler", "GetGuide"))

	guideID, err := parseIDParam(r, "guideID")
	if err != nil {
		appErr := model.NewAppError("INVALID_INPUT", "Geçersiz rehber numarası.", "guide_id", model.ErrInvalidInput)
		webutil.HandleError(w, logger, appErr)
		return
	}

	guide, err := h.service.Get(r.Context(), guideID)
	if err != nil {
		webutil.HandleError(w, logger, err)
		return
	}

	// Drafts are visible to admins only; everyone else sees a plain 404 so
	// the url does not leak that an unpublished guide exists.
	if guide.Status != model.GuideStatusPublished {
		user, ok := middleware.GetSessionUser(r.Context())
		if !ok || !user.IsAdmin() {
			appErr := model.NewAppError("NOT_FOUND", "Rehber bulunamadı.", "", model.ErrNotFound)
			webutil.HandleError(w, logger, appErr)
			return
		}
	}
	webutil.RespondWithJSON(w, http.StatusOK, guide, logger)
}

// Search answers ?q= catalog queries; the response is a bare result array.
func (h *GuideHandler) Search(w http.ResponseWriter, r *http.Request) {
	logger := h.logger.With(slog.String("handler", "Search"))

	results, err := h.service.Search(r.Context(), r.URL.Query().Get("q"))
	if err != nil {
		webutil.HandleError(w, logger, err)
		return
	}
	webutil.RespondWithJSON(w, http.StatusOK, results, logger)
}

type intentRequest struct {
	Query string `json:"query"`
}

type intentResponse struct {
	Results []model.GuideSearchResult `json:"results"`
}

// Intent backs the help widget's guide suggestions.
func (h *GuideHandler) Intent(w http.ResponseWriter, r *http.Request) {
	logger := h.logger.With(slog.String("handler", "Intent"))

	var req intentRequest
	if err := webutil.DecodeJSONBody(r, &req); err != nil {
		appErr := model.NewAppError("INVALID_REQUEST_BODY", "İstek gövdesi çözümlenemedi.", "", model.ErrInvalidInput)
		webutil.HandleError(w, logger, appErr)
		return
	}

	results, err := h.service.Intent(r.Context(), req.Query)
	if err != nil {
		webutil.HandleError(w, logger, err)
		return
	}
	webutil.RespondWithJSON(w, http.StatusOK, intentResponse{Results: results}, logger)
}
