// internal/service/testutil_test.go
package service

import (
	"context"
	"fmt"
	"strings"
	"testing"

	"yanindayim/internal/ai"
	"yanindayim/internal/repository"

	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// setupTestDB opens a fresh in-memory sqlite database per test. The DSN is
// derived from the test name so parallel tests never share state.
func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", strings.ReplaceAll(t.Name(), "/", "_"))
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Silent),
		TranslateError: true,
	})
	require.NoError(t, err)
	require.NoError(t, repository.AutoMigrate(db))
	return db
}

// stubGateway is a scriptable ai.Gateway for service tests. It records the
// help requests it receives so tests can assert on escalation decisions.
type stubGateway struct {
	guide       *ai.GeneratedGuide
	guideErr    error
	helpText    string
	helpErr     error
	scenario    *ai.FraudScenarioResult
	scenarioErr error
	imageURL    string
	imageErr    error

	helpCalls     []ai.HelpRequest
	scenarioCalls int
	imageCalls    []ai.StepImageRequest
}

func (s *stubGateway) GenerateGuide(ctx context.Context, prompt string) (*ai.GeneratedGuide, error) {
	if s.guideErr != nil {
		return nil, s.guideErr
	}
	return s.guide, nil
}

func (s *stubGateway) HelpResponse(ctx context.Context, req ai.HelpRequest) (string, error) {
	s.helpCalls = append(s.helpCalls, req)
	if s.helpErr != nil {
		return "", s.helpErr
	}
	return s.helpText, nil
}

func (s *stubGateway) FraudScenario(ctx context.Context) (*ai.FraudScenarioResult, error) {
	s.scenarioCalls++
	if s.scenarioErr != nil {
		return nil, s.scenarioErr
	}
	return s.scenario, nil
}

func (s *stubGateway) StepImage(ctx context.Context, req ai.StepImageRequest) (string, error) {
	s.imageCalls = append(s.imageCalls, req)
	if s.imageErr != nil {
		return "", s.imageErr
	}
	return s.imageURL, nil
}
