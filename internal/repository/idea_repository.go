// internal/repository/idea_repository.go
package repository

import (
	"context"
	"errors"
	"fmt"

	"yanindayim/internal/model"

	"gorm.io/gorm"
)

type IdeaRepository interface {
	FindByTitle(ctx context.Context, db *gorm.DB, title string) (*model.Idea, error)
	Create(ctx context.Context, tx *gorm.DB, idea *model.Idea) error
	IncrementCount(ctx context.Context, tx *gorm.DB, ideaID uint) error
	ListByCount(ctx context.Context, db *gorm.DB) ([]model.Idea, error)
	Delete(ctx context.Context, tx *gorm.DB, ideaID uint) error
}

type gormIdeaRepository struct{}

func NewGormIdeaRepository() IdeaRepository {
	return &gormIdeaRepository{}
}

func (r *gormIdeaRepository) FindByTitle(ctx context.Context, db *gorm.DB, title string) (*model.Idea, error) {
	var idea model.Idea
	result := db.WithContext(ctx).Where("title = ?", title).First(&idea)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, model.ErrNotFound
		}
		return nil, fmt.Errorf("gormIdeaRepository.FindByTitle: %w", result.Error)
	}
	return &idea, nil
}

func (r *gormIdeaRepository) Create(ctx context.Context, tx *gorm.DB, idea *model.Idea) error {
	result := tx.WithContext(ctx).Create(idea)
	if result.Error != nil {
		return fmt.Errorf("gormIdeaRepository.Create: %w", result.Error)
	}
	return nil
}

func (r *gormIdeaRepository) IncrementCount(ctx context.Context, tx *gorm.DB, ideaID uint) error {
	result := tx.WithContext(ctx).Model(&model.Idea{}).
		Where("id = ?", ideaID).
		Update("count", gorm.Expr("count + 1"))
	if result.Error != nil {
		return fmt.Errorf("gormIdeaRepository.IncrementCount: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return model.ErrNotFound
	}
	return nil
}

func (r *gormIdeaRepository) ListByCount(ctx context.Context, db *gorm.DB) ([]model.Idea, error) {
	var ideas []model.Idea
	result := db.WithContext(ctx).Order("count DESC, id ASC").Find(&ideas)
	if result.Error != nil {
		return nil, fmt.Errorf("gormIdeaRepository.ListByCount: %w", result.Error)
	}
	return ideas, nil
}

func (r *gormIdeaRepository) Delete(ctx context.Context, tx *gorm.DB, ideaID uint) error {
	result := tx.WithContext(ctx).Delete(&model.Idea{}, ideaID)
	if result.Error != nil {
		return fmt.Errorf("gormIdeaRepository.Delete: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return model.ErrNotFound
	}
	return nil
}
