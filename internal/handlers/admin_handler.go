// internal/handlers/admin_handler.go
package handlers

import (
	"log/slog"
	"net/http"

	"yanindayim/internal/model"
	"yanindayim/internal/service"
	"yanindayim/internal/webutil"
)

// AdminHandler bundles the authoring and moderation endpoints. Routing mounts
// everything here behind the admin-role middleware.
type AdminHandler struct {
	guides    service.GuideService
	ideas     service.IdeaService
	problems  service.ProblemService
	scenarios service.ScenarioService
	logger    *slog.Logger
}

func NewAdminHandler(guides service.GuideService, ideas service.IdeaService, problems service.ProblemService, scenarios service.ScenarioService, logger *slog.Logger) *AdminHandler {
	if logger == nil {
		logger = slog.Default()
	}
	return &AdminHandler{
		guides:    guides,
		ideas:     ideas,
		problems:  problems,
		scenarios: scenarios,
		logger:    logger,
	}
}

type dashboardResponse struct {
	Success  bool                `json:"success"`
	Guides   []*model.Guide      `json:"guides"`
	Ideas    []model.Idea        `json:"ideas"`
	Problems []model.StepProblem `json:"problems"`
}

// Dashboard bundles everything the admin landing page shows into one payload:
// all guides newest first, ideas by popularity, and the step problem log.
func (h *AdminHandler) Dashboard(w http.ResponseWriter, r *http.Request) {
	logger := h.logger.With(slog.String("handler", "AdminDashboard"))

	guides, err := h.guides.ListAll(r.Context())
	if err != nil {
		webutil.HandleError(w, logger, err)
		return
	}
	ideas, err := h.ideas.List(r.Context())
	if err != nil {
		webutil.HandleError(w, logger, err)
		return
	}
	problems, err := h.problems.List(r.Context())
	if err != nil {
		webutil.HandleError(w, logger, err)
		return
	}

	if guides == nil {
		guides = []*model.Guide{}
	}
	if ideas == nil {
		ideas = []model.Idea{}
	}
	if problems == nil {
		problems = []model.StepProblem{}
	}
	webutil.RespondWithJSON(w, http.StatusOK, dashboardResponse{
		Success:  true,
		Guides:   guides,
		Ideas:    ideas,
		Problems: problems,
	}, logger)
}

// --- Guides ---

func (h *AdminHandler) ListGuides(w http.ResponseWriter, r *http.Request) {
	logger := h.logger.With(slog.String("handler", "AdminListGuides"))

	guides, err := h.guides.ListAll(r.Context())
	if err != nil {
		webutil.HandleError(w, logger, err)
		return
	}
	if guides == nil {
		guides = []*model.Guide{}
	}
	webutil.RespondWithJSON(w, http.StatusOK, guides, logger)
}

func (h *AdminHandler) GenerateGuide(w http.ResponseWriter, r *http.Request) {
	logger := h.logger.With(slog.String("handler", "GenerateGuide"))

	var req model.GenerateGuideRequest
	if err := webutil.DecodeJSONBody(r, &req); err != nil {
		appErr := model.NewAppError("INVALID_REQUEST_BODY", "İstek gövdesi çözümlenemedi.", "", model.ErrInvalidInput)
		webutil.HandleError(w, logger, appErr)
		return
	}
	if appErr := webutil.ValidateStruct(req); appErr != nil {
		webutil.HandleError(w, logger, appErr)
		return
	}

	result, err := h.guides.Generate(r.Context(), &req)
	if err != nil {
		webutil.HandleError(w, logger, err)
		return
	}

	logger.Info("Guide draft generated", slog.String("title", result.Title), slog.Int("steps", len(result.Steps)))
	webutil.RespondWithJSON(w, http.StatusOK, result, logger)
}

func (h *AdminHandler) CreateGuide(w http.ResponseWriter, r *http.Request) {
	logger := h.logger.With(slog.String("handler", "CreateGuide"))

	var req model.CreateGuideRequest
	if err := webutil.DecodeJSONBody(r, &req); err != nil {
		appErr := model.NewAppError("INVALID_REQUEST_BODY", "İstek gövdesi çözümlenemedi.", "", model.ErrInvalidInput)
		webutil.HandleError(w, logger, appErr)
		return
	}
	if appErr := webutil.ValidateStruct(req); appErr != nil {
		webutil.HandleError(w, logger, appErr)
		return
	}

	guide, err := h.guides.Create(r.Context(), &req)
	if err != nil {
		webutil.HandleError(w, logger, err)
		return
	}

	logger.Info("Guide created", slog.Uint64("guide_id", uint64(guide.ID)), slog.String("title", guide.Title))
	webutil.RespondWithJSON(w, http.StatusCreated, guide, logger)
}

func (h *AdminHandler) CreateStructuredGuide(w http.ResponseWriter, r *http.Request) {
	logger := h.logger.With(slog.String("handler", "CreateStructuredGuide"))

	var req model.CreateStructuredGuideRequest
	if err := webutil.DecodeJSONBody(r, &req); err != nil {
		appErr := model.NewAppError("INVALID_REQUEST_BODY", "İstek gövdesi çözümlenemedi.", "", model.ErrInvalidInput)
		webutil.HandleError(w, logger, appErr)
		return
	}
	if appErr := webutil.ValidateStruct(req); appErr != nil {
		webutil.HandleError(w, logger, appErr)
		return
	}

	guide, err := h.guides.CreateStructured(r.Context(), &req)
	if err != nil {
		webutil.HandleError(w, logger, err)
		return
	}

	logger.Info("Structured guide created", slog.Uint64("guide_id", uint64(guide.ID)), slog.String("title", guide.Title))
	webutil.RespondWithJSON(w, http.StatusCreated, guide, logger)
}

func (h *AdminHandler) UpdateGuide(w http.ResponseWriter, r *http.Request) {
	logger := h.logger.With(slog.String("handler", "UpdateGuide"))

	guideID, err := parseIDParam(r, "guideID")
	if err != nil {
		appErr := model.NewAppError("INVALID_INPUT", "Geçersiz rehber numarası.", "guide_id", model.ErrInvalidInput)
		webutil.HandleError(w, logger, appErr)
		return
	}

	var req model.UpdateGuideRequest
	if err := webutil.DecodeJSONBody(r, &req); err != nil {
		appErr := model.NewAppError("INVALID_REQUEST_BODY", "İstek gövdesi çözümlenemedi.", "", model.ErrInvalidInput)
		webutil.HandleError(w, logger, appErr)
		return
	}
	if appErr := webutil.ValidateStruct(req); appErr != nil {
		webutil.HandleError(w, logger, appErr)
		return
	}

	guide, err := h.guides.Update(r.Context(), guideID, &req)
	if err != nil {
		webutil.HandleError(w, logger, err)
		return
	}
	webutil.RespondWithJSON(w, http.StatusOK, guide, logger)
}

func (h *AdminHandler) DeleteGuide(w http.ResponseWriter, r *http.Request) {
	logger := h.logger.With(slog.String("handler", "DeleteGuide"))

	guideID, err := parseIDParam(r, "guideID")
	if err != nil {
		appErr := model.NewAppError("INVALID_INPUT", "Geçersiz rehber numarası.", "guide_id", model.ErrInvalidInput)
		webutil.HandleError(w, logger, appErr)
		return
	}

	if err := h.guides.Delete(r.Context(), guideID); err != nil {
		webutil.HandleError(w, logger, err)
		return
	}

	logger.Info("Guide deleted", slog.Uint64("guide_id", uint64(guideID)))
	webutil.RespondWithJSON(w, http.StatusOK, map[string]bool{"success": true}, logger)
}

// TestGuide returns the guide with steps for the admin's dry-run preview.
func (h *AdminHandler) TestGuide(w http.ResponseWriter, r *http.Request) {
	logger := h.logger.With(slog.String("handler", "TestGuide"))

	guideID, err := parseIDParam(r, "guideID")
	if err != nil {
		appErr := model.NewAppError("INVALID_INPUT", "Geçersiz rehber numarası.", "guide_id", model.ErrInvalidInput)
		webutil.HandleError(w, logger, appErr)
		return
	}

	guide, err := h.guides.Get(r.Context(), guideID)
	if err != nil {
		webutil.HandleError(w, logger, err)
		return
	}
	webutil.RespondWithJSON(w, http.StatusOK, guide, logger)
}

// --- Ideas ---

func (h *AdminHandler) ListIdeas(w http.ResponseWriter, r *http.Request) {
	logger := h.logger.With(slog.String("handler", "ListIdeas"))

	ideas, err := h.ideas.List(r.Context())
	if err != nil {
		webutil.HandleError(w, logger, err)
		return
	}
	if ideas == nil {
		ideas = []model.Idea{}
	}
	webutil.RespondWithJSON(w, http.StatusOK, ideas, logger)
}

func (h *AdminHandler) DeleteIdea(w http.ResponseWriter, r *http.Request) {
	logger := h.logger.With(slog.String("handler", "DeleteIdea"))

	ideaID, err := parseIDParam(r, "ideaID")
	if err != nil {
		appErr := model.NewAppError("INVALID_INPUT", "Geçersiz öneri numarası.", "idea_id", model.ErrInvalidInput)
		webutil.HandleError(w, logger, appErr)
		return
	}

	if err := h.ideas.Delete(r.Context(), ideaID); err != nil {
		webutil.HandleError(w, logger, err)
		return
	}
	webutil.RespondWithJSON(w, http.StatusOK, map[string]bool{"success": true}, logger)
}

// --- Step problems ---

func (h *AdminHandler) ListProblems(w http.ResponseWriter, r *http.Request) {
	logger := h.logger.With(slog.String("handler", "ListProblems"))

	problems, err := h.problems.List(r.Context())
	if err != nil {
		webutil.HandleError(w, logger, err)
		return
	}
	if problems == nil {
		problems = []model.StepProblem{}
	}
	webutil.RespondWithJSON(w, http.StatusOK, problems, logger)
}

func (h *AdminHandler) DeleteProblem(w http.ResponseWriter, r *http.Request) {
	logger := h.logger.With(slog.String("handler", "DeleteProblem"))

	problemID, err := parseIDParam(r, "problemID")
	if err != nil {
		appErr := model.NewAppError("INVALID_INPUT", "Geçersiz kayıt numarası.", "problem_id", model.ErrInvalidInput)
		webutil.HandleError(w, logger, appErr)
		return
	}

	if err := h.problems.Delete(r.Context(), problemID); err != nil {
		webutil.HandleError(w, logger, err)
		return
	}
	webutil.RespondWithJSON(w, http.StatusOK, map[string]bool{"success": true}, logger)
}

func (h *AdminHandler) ClearProblems(w http.ResponseWriter, r *http.Request) {
	logger := h.logger.With(slog.String("handler", "ClearProblems"))

	if err := h.problems.Clear(r.Context()); err != nil {
		webutil.HandleError(w, logger, err)
		return
	}

	logger.Info("Step problem log cleared")
	webutil.RespondWithJSON(w, http.StatusOK, map[string]bool{"success": true}, logger)
}

// ExportProblems downloads the telemetry log as a spreadsheet.
func (h *AdminHandler) ExportProblems(w http.ResponseWriter, r *http.Request) {
	logger := h.logger.With(slog.String("handler", "ExportProblems"))

	data, err := h.problems.ExportXLSX(r.Context())
	if err != nil {
		webutil.HandleError(w, logger, err)
		return
	}

	w.Header().Set("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	w.Header().Set("Content-Disposition", `attachment; filename="sorunlar.xlsx"`)
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write(data); err != nil {
		logger.Error("Error writing xlsx response", slog.Any("error", err))
	}
}

// --- Fraud scenarios ---

func (h *AdminHandler) ListScenarios(w http.ResponseWriter, r *http.Request) {
	logger := h.logger.With(slog.String("handler", "ListScenarios"))

	scenarios, err := h.scenarios.List(r.Context())
	if err != nil {
		webutil.HandleError(w, logger, err)
		return
	}
	if scenarios == nil {
		scenarios = []model.FraudScenario{}
	}
	webutil.RespondWithJSON(w, http.StatusOK, scenarios, logger)
}

func (h *AdminHandler) CreateScenario(w http.ResponseWriter, r *http.Request) {
	logger := h.logger.With(slog.String("handler", "CreateScenario"))

	var req model.CreateScenarioRequest
	if err := webutil.DecodeJSONBody(r, &req); err != nil {
		appErr := model.NewAppError("INVALID_REQUEST_BODY", "İstek gövdesi çözümlenemedi.", "", model.ErrInvalidInput)
		webutil.HandleError(w, logger, appErr)
		return
	}
	if appErr := webutil.ValidateStruct(req); appErr != nil {
		webutil.HandleError(w, logger, appErr)
		return
	}

	scenario, err := h.scenarios.Create(r.Context(), &req)
	if err != nil {
		webutil.HandleError(w, logger, err)
		return
	}

	logger.Info("Fraud scenario created", slog.Uint64("scenario_id", uint64(scenario.ID)))
	webutil.RespondWithJSON(w, http.StatusCreated, scenario, logger)
}

func (h *AdminHandler) DeleteScenario(w http.ResponseWriter, r *http.Request) {
	logger := h.logger.With(slog.String("handler", "DeleteScenario"))

	scenarioID, err := parseIDParam(r, "scenarioID")
	if err != nil {
		appErr := model.NewAppError("INVALID_INPUT", "Geçersiz senaryo numarası.", "scenario_id", model.ErrInvalidInput)
		webutil.HandleError(w, logger, appErr)
		return
	}

	if err := h.scenarios.Delete(r.Context(), scenarioID); err != nil {
		webutil.HandleError(w, logger, err)
		return
	}
	webutil.RespondWithJSON(w, http.StatusOK, map[string]bool{"success": true}, logger)
}
