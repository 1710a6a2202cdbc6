// internal/service/scenario_service_test.go
package service

import (
	"context"
	"testing"

	"yanindayim/internal/ai"
	"yanindayim/internal/model"
	"yanindayim/internal/repository"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func newScenarioService(db *gorm.DB, gateway ai.Gateway) ScenarioService {
	return NewScenarioService(db, repository.NewGormScenarioRepository(), gateway)
}

func TestScenarioService_RandomPrefersStoredScenarios(t *testing.T) {
	db := setupTestDB(t)
	gateway := &stubGateway{scenario: &ai.FraudScenarioResult{Scenario: "AI senaryosu", CorrectAction: "hangup", Explanation: "x"}}
	svc := newScenarioService(db, gateway)

	stored := []model.FraudScenario{
		{Scenario: "Senaryo 1", CorrectAction: model.ScenarioActionHangup, Explanation: "Açıklama 1", Difficulty: 1},
		{Scenario: "Senaryo 2", CorrectAction: model.ScenarioActionBelieve, Explanation: "Açıklama 2", Difficulty: 2},
		{Scenario: "Senaryo 3", CorrectAction: model.ScenarioActionHangup, Explanation: "Açıklama 3", Difficulty: 1},
	}
	require.NoError(t, db.Create(&stored).Error)

	want := map[string]bool{"Senaryo 1": true, "Senaryo 2": true, "Senaryo 3": true}
	for i := 0; i < 10; i++ {
		resp, err := svc.Random(context.Background())
		require.NoError(t, err)
		assert.True(t, want[resp.Scenario], "picked scenario must come from the store, got %q", resp.Scenario)
	}
	assert.Zero(t, gateway.scenarioCalls, "the generator must not run while the store has rows")
}

func TestScenarioService_RandomEmptyStoreUsesGenerator(t *testing.T) {
	db := setupTestDB(t)
	gateway := &stubGateway{scenario: &ai.FraudScenarioResult{
		Scenario:      "Kargo firması arıyor, ödeme bekliyor.",
		CorrectAction: "hangup",
		Explanation:   "Kargo firmaları telefonda ödeme istemez.",
	}}
	svc := newScenarioService(db, gateway)

	resp, err := svc.Random(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 1, gateway.scenarioCalls)
	assert.Equal(t, "Kargo firması arıyor, ödeme bekliyor.", resp.Scenario)
	assert.Equal(t, "hangup", resp.CorrectAction)
}

func TestScenarioService_RandomGeneratorFailureUsesFixedFallback(t *testing.T) {
	db := setupTestDB(t)
	gateway := &stubGateway{scenarioErr: ai.ErrUnavailable}
	svc := newScenarioService(db, gateway)

	resp, err := svc.Random(context.Background())
	require.NoError(t, err, "the quiz endpoint must never fail outright")

	fallback := ai.FallbackScenario()
	assert.Equal(t, fallback.Scenario, resp.Scenario)
	assert.Equal(t, fallback.CorrectAction, resp.CorrectAction)
	assert.Equal(t, fallback.Explanation, resp.Explanation)
}

func TestScenarioService_CreateDefaultsDifficulty(t *testing.T) {
	db := setupTestDB(t)
	svc := newScenarioService(db, &stubGateway{})

	scenario, err := svc.Create(context.Background(), &model.CreateScenarioRequest{
		Scenario:      "Banka güvenlik birimi arıyor.",
		CorrectAction: model.ScenarioActionHangup,
		Explanation:   "Bankalar telefonda şifre istemez.",
	})
	require.NoError(t, err)
	require.NotZero(t, scenario.ID)
	assert.Equal(t, 1, scenario.Difficulty)
}

func TestScenarioService_Delete(t *testing.T) {
	db := setupTestDB(t)
	svc := newScenarioService(db, &stubGateway{})
	ctx := context.Background()

	scenario, err := svc.Create(ctx, &model.CreateScenarioRequest{
		Scenario:      "Senaryo",
		CorrectAction: model.ScenarioActionBelieve,
		Explanation:   "Açıklama",
		Difficulty:    2,
	})
	require.NoError(t, err)

	require.NoError(t, svc.Delete(ctx, scenario.ID))
	assert.ErrorIs(t, svc.Delete(ctx, scenario.ID), model.ErrNotFound)

	scenarios, err := svc.List(ctx)
	require.NoError(t, err)
	assert.Empty(t, scenarios)
}
