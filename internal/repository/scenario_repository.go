// internal/repository/scenario_repository.go
package repository

import (
	"context"
	"errors"
	"fmt"

	"yanindayim/internal/model"

	"gorm.io/gorm"
)

type ScenarioRepository interface {
	Count(ctx context.Context, db *gorm.DB) (int64, error)
	FindByOffset(ctx context.Context, db *gorm.DB, offset int) (*model.FraudScenario, error)
	ListNewestFirst(ctx context.Context, db *gorm.DB) ([]model.FraudScenario, error)
	Create(ctx context.Context, tx *gorm.DB, scenario *model.FraudScenario) error
	Delete(ctx context.Context, tx *gorm.DB, scenarioID uint) error
}

type gormScenarioRepository struct{}

func NewGormScenarioRepository() ScenarioRepository {
	return &gormScenarioRepository{}
}

func (r *gormScenarioRepository) Count(ctx context.Context, db *gorm.DB) (int64, error) {
	var count int64
	result := db.WithContext(ctx).Model(&model.FraudScenario{}).Count(&count)
	if result.Error != nil {
		return 0, fmt.Errorf("gormScenarioRepository.Count: %w", result.Error)
	}
	return count, nil
}

// FindByOffset reads the row at the given offset in id order; combined with a
// random offset in [0, count) this yields a uniform pick.
func (r *gormScenarioRepository) FindByOffset(ctx context.Context, db *gorm.DB, offset int) (*model.FraudScenario, error) {
	var scenario model.FraudScenario
	result := db.WithContext(ctx).Order("id ASC").Offset(offset).First(&scenario)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, model.ErrNotFound
		}
		return nil, fmt.Errorf("gormScenarioRepository.FindByOffset: %w", result.Error)
	}
	return &scenario, nil
}

func (r *gormScenarioRepository) ListNewestFirst(ctx context.Context, db *gorm.DB) ([]model.FraudScenario, error) {
	var scenarios []model.FraudScenario
	result := db.WithContext(ctx).Order("id DESC").Find(&scenarios)
	if result.Error != nil {
		return nil, fmt.Errorf("gormScenarioRepository.ListNewestFirst: %w", result.Error)
	}
	return scenarios, nil
}

func (r *gormScenarioRepository) Create(ctx context.Context, tx *gorm.DB, scenario *model.FraudScenario) error {
	result := tx.WithContext(ctx).Create(scenario)
	if result.Error != nil {
		return fmt.Errorf("gormScenarioRepository.Create: %w", result.Error)
	}
	return nil
}

func (r *gormScenarioRepository) Delete(ctx context.Context, tx *gorm.DB, scenarioID uint) error {
	result := tx.WithContext(ctx).Delete(&model.FraudScenario{}, scenarioID)
	if result.Error != nil {
		return fmt.Errorf("gormScenarioRepository.Delete: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return model.ErrNotFound
	}
	return nil
}
