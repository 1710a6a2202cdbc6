// internal/service/scenario_service.go
package service

import (
	"context"
	"errors"
	"math/rand/v2"

	"yanindayim/internal/ai"
	"yanindayim/internal/middleware"
	"yanindayim/internal/model"
	"yanindayim/internal/repository"

	"gorm.io/gorm"
)

type ScenarioService interface {
	Random(ctx context.Context) (*model.ScenarioResponse, error)
	List(ctx context.Context) ([]model.FraudScenario, error)
	Create(ctx context.Context, req *model.CreateScenarioRequest) (*model.FraudScenario, error)
	Delete(ctx context.Context, scenarioID uint) error
}

type scenarioService struct {
	db           *gorm.DB
	scenarioRepo repository.ScenarioRepository
	gateway      ai.Gateway
}

func NewScenarioService(db *gorm.DB, scenarioRepo repository.ScenarioRepository, gateway ai.Gateway) ScenarioService {
	return &scenarioService{db: db, scenarioRepo: scenarioRepo, gateway: gateway}
}

// Random serves one fraud drill. Stored scenarios win: a uniform random row
// is picked by offset. Only an empty store falls through to the AI generator,
// and a generator failure degrades to the fixed scenario, so this endpoint
// never errors out on the quiz widget.
func (s *scenarioService) Random(ctx context.Context) (*model.ScenarioResponse, error) {
	logger := middleware.GetLogger(ctx)

	count, err := s.scenarioRepo.Count(ctx, s.db)
	if err != nil {
		logger.Error("Error counting fraud scenarios", "error", err)
		return nil, model.ErrInternalServer
	}

	if count > 0 {
		scenario, err := s.scenarioRepo.FindByOffset(ctx, s.db, rand.IntN(int(count)))
		if err == nil {
			return &model.ScenarioResponse{
				Scenario:      scenario.Scenario,
				CorrectAction: scenario.CorrectAction,
				Explanation:   scenario.Explanation,
			}, nil
		}
		// A concurrent delete can shrink the table under us; fall through to
		// the generator rather than failing the quiz.
		logger.Warn("Error picking stored scenario, falling back to generator", "error", err)
	}

	generated, err := s.gateway.FraudScenario(ctx)
	if err != nil {
		logger.Warn("AI fraud scenario unavailable, using fixed fallback", "error", err)
		fallback := ai.FallbackScenario()
		return &model.ScenarioResponse{
			Scenario:      fallback.Scenario,
			CorrectAction: fallback.CorrectAction,
			Explanation:   fallback.Explanation,
		}, nil
	}

	return &model.ScenarioResponse{
		Scenario:      generated.Scenario,
		CorrectAction: generated.CorrectAction,
		Explanation:   generated.Explanation,
	}, nil
}

func (s *scenarioService) List(ctx context.Context) ([]model.FraudScenario, error) {
	scenarios, err := s.scenarioRepo.ListNewestFirst(ctx, s.db)
	if err != nil {
		middleware.GetLogger(ctx).Error("Error listing fraud scenarios", "error", err)
		return nil, model.ErrInternalServer
	}
	return scenarios, nil
}

func (s *scenarioService) Create(ctx context.Context, req *model.CreateScenarioRequest) (*model.FraudScenario, error) {
	difficulty := req.Difficulty
	if difficulty < 1 {
		difficulty = 1
	}

	scenario := &model.FraudScenario{
		Scenario:      req.Scenario,
		CorrectAction: req.CorrectAction,
		Explanation:   req.Explanation,
		Difficulty:    difficulty,
	}

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return s.scenarioRepo.Create(ctx, tx, scenario)
	})
	if err != nil {
		middleware.GetLogger(ctx).Error("Transaction failed for Create scenario", "error", err)
		return nil, model.ErrInternalServer
	}
	return scenario, nil
}

func (s *scenarioService) Delete(ctx context.Context, scenarioID uint) error {
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return s.scenarioRepo.Delete(ctx, tx, scenarioID)
	})
	if err != nil {
		if errors.Is(err, model.ErrNotFound) {
			return model.ErrNotFound
		}
		middleware.GetLogger(ctx).Error("Transaction failed for Delete scenario", "error", err, "scenario_id", scenarioID)
		return model.ErrInternalServer
	}
	return nil
}
