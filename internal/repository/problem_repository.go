// internal/repository/problem_repository.go
package repository

import (
	"context"
	"fmt"

	"yanindayim/internal/model"

	"gorm.io/gorm"
)

type ProblemRepository interface {
	Create(ctx context.Context, tx *gorm.DB, problem *model.StepProblem) error
	ListNewestFirst(ctx context.Context, db *gorm.DB) ([]model.StepProblem, error)
	Delete(ctx context.Context, tx *gorm.DB, problemID uint) error
	Clear(ctx context.Context, tx *gorm.DB) error
}

type gormProblemRepository struct{}

func NewGormProblemRepository() ProblemRepository {
	return &gormProblemRepository{}
}

func (r *gormProblemRepository) Create(ctx context.Context, tx *gorm.DB, problem *model.StepProblem) error {
	result := tx.WithContext(ctx).Create(problem)
	if result.Error != nil {
		return fmt.Errorf("gormProblemRepository.Create: %w", result.Error)
	}
	return nil
}

func (r *gormProblemRepository) ListNewestFirst(ctx context.Context, db *gorm.DB) ([]model.StepProblem, error) {
	var problems []model.StepProblem
	result := db.WithContext(ctx).Order("id DESC").Find(&problems)
	if result.Error != nil {
		return nil, fmt.Errorf("gormProblemRepository.ListNewestFirst: %w", result.Error)
	}
	return problems, nil
}

func (r *gormProblemRepository) Delete(ctx context.Context, tx *gorm.DB, problemID uint) error {
	result := tx.WithContext(ctx).Delete(&model.StepProblem{}, problemID)
	if result.Error != nil {
		return fmt.Errorf("gormProblemRepository.Delete: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return model.ErrNotFound
	}
	return nil
}

// Clear drops the whole telemetry log.
func (r *gormProblemRepository) Clear(ctx context.Context, tx *gorm.DB) error {
	result := tx.WithContext(ctx).Where("1 = 1").Delete(&model.StepProblem{})
	if result.Error != nil {
		return fmt.Errorf("gormProblemRepository.Clear: %w", result.Error)
	}
	return nil
}
