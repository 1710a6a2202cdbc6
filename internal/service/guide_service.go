// internal/service/guide_service.go
package service

import (
	"context"
	"encoding/json"
	"errors"
	"strings"

	"yanindayim/internal/ai"
	"yanindayim/internal/config"
	"yanindayim/internal/middleware"
	"yanindayim/internal/model"
	"yanindayim/internal/repository"

	"gorm.io/gorm"
)

// GenerateGuideResult is the AI-drafting payload handed back to the admin UI.
// StepsJSON/HelpOptionsJSON are the same data pre-serialized so the form can
// post them straight back through CreateStructured.
type GenerateGuideResult struct {
	Success         bool               `json:"success"`
	Title           string             `json:"title"`
	Steps           []ai.GeneratedStep `json:"steps"`
	HelpOptions     []string           `json:"help_options"`
	StepsJSON       string             `json:"steps_json"`
	HelpOptionsJSON string             `json:"help_options_json"`
	Prompt          string             `json:"prompt"`
}

type GuideService interface {
	ListHome(ctx context.Context) ([]*model.Guide, error)
	Get(ctx context.Context, guideID uint) (*model.Guide, error)
	Search(ctx context.Context, query string) ([]model.GuideSearchResult, error)
	Intent(ctx context.Context, query string) ([]model.GuideSearchResult, error)

	ListAll(ctx context.Context) ([]*model.Guide, error)
	Generate(ctx context.Context, req *model.GenerateGuideRequest) (*GenerateGuideResult, error)
	Create(ctx context.Context, req *model.CreateGuideRequest) (*model.Guide, error)
	CreateStructured(ctx context.Context, req *model.CreateStructuredGuideRequest) (*model.Guide, error)
	Update(ctx context.Context, guideID uint, req *model.UpdateGuideRequest) (*model.Guide, error)
	Delete(ctx context.Context, guideID uint) error
}

type guideService struct {
	db        *gorm.DB
	guideRepo repository.GuideRepository
	gateway   ai.Gateway
	appCfg    config.AppConfig
}

func NewGuideService(db *gorm.DB, guideRepo repository.GuideRepository, gateway ai.Gateway, appCfg config.AppConfig) GuideService {
	return &guideService{
		db:        db,
		guideRepo: guideRepo,
		gateway:   gateway,
		appCfg:    appCfg,
	}
}

func (s *guideService) ListHome(ctx context.Context) ([]*model.Guide, error) {
	guides, err := s.guideRepo.List(ctx, s.db, true, s.appCfg.HomeGuideLimit)
	if err != nil {
		middleware.GetLogger(ctx).Error("Error listing home guides", "error", err)
		return nil, model.ErrInternalServer
	}
	return guides, nil
}

func (s *guideService) Get(ctx context.Context, guideID uint) (*model.Guide, error) {
	return s.guideRepo.FindByID(ctx, s.db, guideID)
}

// Search returns published guides matching the query; an empty query returns
// an empty list rather than the whole catalog.
func (s *guideService) Search(ctx context.Context, query string) ([]model.GuideSearchResult, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return []model.GuideSearchResult{}, nil
	}

	guides, err := s.guideRepo.Search(ctx, s.db, query, true, s.appCfg.SearchLimit)
	if err != nil {
		middleware.GetLogger(ctx).Error("Error searching guides", "error", err, "query", query)
		return nil, model.ErrInternalServer
	}

	results := make([]model.GuideSearchResult, 0, len(guides))
	for _, g := range guides {
		results = append(results, model.GuideSearchResult{
			ID:       g.ID,
			Title:    g.Title,
			Content:  g.Content,
			ImageURL: g.ImageURL,
		})
	}
	return results, nil
}

// Intent is the help widget's "did you mean this guide" lookup: top three
// published matches for a free-text query.
func (s *guideService) Intent(ctx context.Context, query string) ([]model.GuideSearchResult, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return []model.GuideSearchResult{}, nil
	}

	guides, err := s.guideRepo.Search(ctx, s.db, query, true, 3)
	if err != nil {
		middleware.GetLogger(ctx).Error("Error searching guide intent", "error", err, "query", query)
		return nil, model.ErrInternalServer
	}

	results := make([]model.GuideSearchResult, 0, len(guides))
	for _, g := range guides {
		results = append(results, model.GuideSearchResult{
			ID:    g.ID,
			Title: g.Title,
			Type:  "guide",
		})
	}
	return results, nil
}

func (s *guideService) ListAll(ctx context.Context) ([]*model.Guide, error) {
	guides, err := s.guideRepo.ListNewestFirst(ctx, s.db)
	if err != nil {
		middleware.GetLogger(ctx).Error("Error listing all guides", "error", err)
		return nil, model.ErrInternalServer
	}
	return guides, nil
}

// Generate drafts a guide with the AI gateway. Gateway failure degrades to
// the deterministic demo guide so the authoring flow keeps working offline.
func (s *guideService) Generate(ctx context.Context, req *model.GenerateGuideRequest) (*GenerateGuideResult, error) {
	logger := middleware.GetLogger(ctx)

	generated, err := s.gateway.GenerateGuide(ctx, req.Prompt)
	if err != nil {
		logger.Warn("AI guide generation unavailable, using demo guide", "error", err)
		generated = ai.MockGuide(req.Prompt)
	}

	stepsJSON, err := json.Marshal(generated.Steps)
	if err != nil {
		logger.Error("Error marshalling generated steps", "error", err)
		return nil, model.ErrInternalServer
	}
	helpOptionsJSON, err := json.Marshal(generated.HelpOptions)
	if err != nil {
		logger.Error("Error marshalling generated help options", "error", err)
		return nil, model.ErrInternalServer
	}

	return &GenerateGuideResult{
		Success:         true,
		Title:           generated.Title,
		Steps:           generated.Steps,
		HelpOptions:     generated.HelpOptions,
		StepsJSON:       string(stepsJSON),
		HelpOptionsJSON: string(helpOptionsJSON),
		Prompt:          req.Prompt,
	}, nil
}

// buildStepsFromArrays assembles steps from the admin form's parallel arrays.
// Missing step numbers default to position order; a missing image may be
// filled by the AI generator when the toggle is on.
func (s *guideService) buildStepsFromArrays(ctx context.Context, guideTitle string, titles, descriptions, images []string, numbers []int, generateImages bool) []model.GuideStep {
	logger := middleware.GetLogger(ctx)

	steps := make([]model.GuideStep, 0, len(titles))
	for i, stepTitle := range titles {
		description := ""
		if i < len(descriptions) {
			description = descriptions[i]
		}
		imageURL := ""
		if i < len(images) {
			imageURL = images[i]
		}
		stepNumber := i + 1
		if i < len(numbers) {
			stepNumber = numbers[i]
		}

		if imageURL == "" && generateImages {
			url, err := s.gateway.StepImage(ctx, ai.StepImageRequest{
				GuideTitle:      guideTitle,
				StepTitle:       stepTitle,
				StepDescription: description,
			})
			if err != nil {
				logger.Warn("Step image generation failed, leaving image empty", "step", stepTitle, "error", err)
			} else {
				imageURL = url
			}
		}

		steps = append(steps, model.GuideStep{
			StepNumber:  stepNumber,
			Title:       stepTitle,
			Description: description,
			ImageURL:    imageURL,
		})
	}
	return steps
}

func (s *guideService) Create(ctx context.Context, req *model.CreateGuideRequest) (*model.Guide, error) {
	logger := middleware.GetLogger(ctx)

	status := req.Status
	if status == "" {
		status = model.GuideStatusPublished
	}

	guide := &model.Guide{
		Title:       req.Title,
		Content:     req.Content,
		Status:      status,
		ImageURL:    req.ImageURL,
		Priority:    req.Priority,
		HelpOptions: req.HelpOptions,
	}
	// Image generation calls the network, so it happens before the transaction
	// opens; only the inserts run inside it.
	guide.Steps = s.buildStepsFromArrays(ctx, req.Title, req.StepTitles, req.StepDescriptions, req.StepImages, req.StepNumbers, req.GenerateAIImages)

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return s.guideRepo.Create(ctx, tx, guide)
	})
	if err != nil {
		logger.Error("Transaction failed for Create guide", "error", err)
		return nil, model.ErrInternalServer
	}
	return guide, nil
}

// CreateStructured creates a guide from a JSON step blob, the round trip of
// the AI generator. A malformed blob fails the whole request; no partial
// guide is left behind.
func (s *guideService) CreateStructured(ctx context.Context, req *model.CreateStructuredGuideRequest) (*model.Guide, error) {
	logger := middleware.GetLogger(ctx)

	var stepInputs []ai.GeneratedStep
	if err := json.Unmarshal([]byte(req.StepsJSON), &stepInputs); err != nil {
		logger.Warn("Structured guide creation got malformed steps JSON", "error", err)
		return nil, model.NewAppError("INVALID_INPUT", "Adım listesi çözümlenemedi", "steps_json", model.ErrInvalidInput)
	}

	status := req.Status
	if status == "" {
		status = model.GuideStatusPublished
	}

	steps := make([]model.GuideStep, 0, len(stepInputs))
	for _, in := range stepInputs {
		imageURL := in.ImageURL
		// Placeholders count as missing for regeneration purposes.
		if (imageURL == "" || strings.Contains(imageURL, "static/img/ui_")) && req.GenerateAIImages {
			url, err := s.gateway.StepImage(ctx, ai.StepImageRequest{
				GuideTitle:      req.Title,
				StepTitle:       in.Title,
				StepDescription: in.Description,
			})
			if err != nil {
				logger.Warn("Step image generation failed, keeping placeholder", "step", in.Title, "error", err)
			} else {
				imageURL = url
			}
		}
		steps = append(steps, model.GuideStep{
			StepNumber:  in.StepNumber,
			Title:       in.Title,
			Description: in.Description,
			ImageURL:    imageURL,
		})
	}

	guide := &model.Guide{
		Title:       req.Title,
		Status:      status,
		HelpOptions: req.HelpOptionsJSON,
		Steps:       steps,
	}

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return s.guideRepo.Create(ctx, tx, guide)
	})
	if err != nil {
		logger.Error("Transaction failed for CreateStructured guide", "error", err)
		return nil, model.ErrInternalServer
	}
	return guide, nil
}

// Update rewrites the guide's own fields; steps are replaced only when the
// request actually carries a new step list, otherwise the existing ones stay.
func (s *guideService) Update(ctx context.Context, guideID uint, req *model.UpdateGuideRequest) (*model.Guide, error) {
	logger := middleware.GetLogger(ctx)

	status := req.Status
	if status == "" {
		status = model.GuideStatusPublished
	}

	var steps []model.GuideStep
	if len(req.StepTitles) > 0 {
		steps = s.buildStepsFromArrays(ctx, req.Title, req.StepTitles, req.StepDescriptions, req.StepImages, req.StepNumbers, req.GenerateAIImages)
	}

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		guide := &model.Guide{
			ID:          guideID,
			Title:       req.Title,
			Content:     req.Content,
			Status:      status,
			ImageURL:    req.ImageURL,
			Priority:    req.Priority,
			HelpOptions: req.HelpOptions,
		}
		if err := s.guideRepo.Update(ctx, tx, guide); err != nil {
			return err
		}
		if len(steps) > 0 {
			if err := s.guideRepo.ReplaceSteps(ctx, tx, guideID, steps); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		if errors.Is(err, model.ErrNotFound) {
			return nil, model.ErrNotFound
		}
		logger.Error("Transaction failed for Update guide", "error", err, "guide_id", guideID)
		return nil, model.ErrInternalServer
	}

	return s.guideRepo.FindByID(ctx, s.db, guideID)
}

func (s *guideService) Delete(ctx context.Context, guideID uint) error {
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return s.guideRepo.Delete(ctx, tx, guideID)
	})
	if err != nil {
		if errors.Is(err, model.ErrNotFound) {
			return model.ErrNotFound
		}
		middleware.GetLogger(ctx).Error("Transaction failed for Delete guide", "error", err, "guide_id", guideID)
		return model.ErrInternalServer
	}
	return nil
}
