//go:generate mockery --name GuideRepository --output ./mocks --outpkg mocks --case=underscore
package repository

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"yanindayim/internal/middleware"
	"yanindayim/internal/model"

	"gorm.io/gorm"
)

type GuideRepository interface {
	Create(ctx context.Context, tx *gorm.DB, guide *model.Guide) error
	FindByID(ctx context.Context, db *gorm.DB, guideID uint) (*model.Guide, error)
	List(ctx context.Context, db *gorm.DB, publishedOnly bool, limit int) ([]*model.Guide, error)
	ListNewestFirst(ctx context.Context, db *gorm.DB) ([]*model.Guide, error)
	Search(ctx context.Context, db *gorm.DB, query string, publishedOnly bool, limit int) ([]*model.Guide, error)
	Update(ctx context.Context, tx *gorm.DB, guide *model.Guide) error
	ReplaceSteps(ctx context.Context, tx *gorm.DB, guideID uint, steps []model.GuideStep) error
	Delete(ctx context.Context, tx *gorm.DB, guideID uint) error
	FindUnstartedPublished(ctx context.Context, db *gorm.DB, startedGuideIDs []uint) ([]model.Guide, error)
}

type gormGuideRepository struct{}

func NewGormGuideRepository() GuideRepository {
	return &gormGuideRepository{}
}

func (r *gormGuideRepository) Create(ctx context.Context, tx *gorm.DB, guide *model.Guide) error {
	logger := middleware.GetLogger(ctx)
	result := tx.WithContext(ctx).Create(guide)
	if result.Error != nil {
		logger.Error("Error creating guide in DB", "error", result.Error, "title", guide.Title)
		return fmt.Errorf("gormGuideRepository.Create: %w", result.Error)
	}
	return nil
}

// FindByID loads the guide with its steps in ascending step_number order.
func (r *gormGuideRepository) FindByID(ctx context.Context, db *gorm.DB, guideID uint) (*model.Guide, error) {
	var guide model.Guide
	result := db.WithContext(ctx).
		Preload("Steps", func(db *gorm.DB) *gorm.DB {
			return db.Order("guide_steps.step_number ASC")
		}).
		First(&guide, guideID)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, model.ErrNotFound
		}
		return nil, fmt.Errorf("gormGuideRepository.FindByID: %w", result.Error)
	}
	return &guide, nil
}

func (r *gormGuideRepository) List(ctx context.Context, db *gorm.DB, publishedOnly bool, limit int) ([]*model.Guide, error) {
	var guides []*model.Guide
	query := db.WithContext(ctx).Order("priority DESC, id ASC")
	if publishedOnly {
		query = query.Where("status = ?", model.GuideStatusPublished)
	}
	if limit > 0 {
		query = query.Limit(limit)
	}
	if result := query.Find(&guides); result.Error != nil {
		return nil, fmt.Errorf("gormGuideRepository.List: %w", result.Error)
	}
	return guides, nil
}

func (r *gormGuideRepository) ListNewestFirst(ctx context.Context, db *gorm.DB) ([]*model.Guide, error) {
	var guides []*model.Guide
	if result := db.WithContext(ctx).Order("id DESC").Find(&guides); result.Error != nil {
		return nil, fmt.Errorf("gormGuideRepository.ListNewestFirst: %w", result.Error)
	}
	return guides, nil
}

// Search matches title or content case-insensitively. LOWER(...) LIKE keeps
// the query portable between postgres and the sqlite test driver.
func (r *gormGuideRepository) Search(ctx context.Context, db *gorm.DB, query string, publishedOnly bool, limit int) ([]*model.Guide, error) {
	var guides []*model.Guide
	pattern := "%" + strings.ToLower(query) + "%"
	q := db.WithContext(ctx).
		Where("LOWER(title) LIKE ? OR LOWER(content) LIKE ?", pattern, pattern).
		Order("priority DESC, id ASC")
	if publishedOnly {
		q = q.Where("status = ?", model.GuideStatusPublished)
	}
	if limit > 0 {
		q = q.Limit(limit)
	}
	if result := q.Find(&guides); result.Error != nil {
		return nil, fmt.Errorf("gormGuideRepository.Search: %w", result.Error)
	}
	return guides, nil
}

func (r *gormGuideRepository) Update(ctx context.Context, tx *gorm.DB, guide *model.Guide) error {
	logger := middleware.GetLogger(ctx)
	result := tx.WithContext(ctx).Model(&model.Guide{}).Where("id = ?", guide.ID).Updates(map[string]interface{}{
		"title":        guide.Title,
		"content":      guide.Content,
		"status":       guide.Status,
		"image_url":    guide.ImageURL,
		"priority":     guide.Priority,
		"help_options": guide.HelpOptions,
	})
	if result.Error != nil {
		logger.Error("Error updating guide in DB", "error", result.Error, "guide_id", guide.ID)
		return fmt.Errorf("gormGuideRepository.Update: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return model.ErrNotFound
	}
	return nil
}

// ReplaceSteps drops the guide's current steps and inserts the new set.
func (r *gormGuideRepository) ReplaceSteps(ctx context.Context, tx *gorm.DB, guideID uint, steps []model.GuideStep) error {
	if result := tx.WithContext(ctx).Where("guide_id = ?", guideID).Delete(&model.GuideStep{}); result.Error != nil {
		return fmt.Errorf("gormGuideRepository.ReplaceSteps(delete): %w", result.Error)
	}
	for i := range steps {
		steps[i].GuideID = guideID
	}
	if len(steps) == 0 {
		return nil
	}
	if result := tx.WithContext(ctx).Create(&steps); result.Error != nil {
		return fmt.Errorf("gormGuideRepository.ReplaceSteps(create): %w", result.Error)
	}
	return nil
}

// Delete removes the guide; its steps go with it via the FK cascade. The step
// delete is issued here as well so the behavior holds on the sqlite test
// driver, which does not always enforce foreign keys.
func (r *gormGuideRepository) Delete(ctx context.Context, tx *gorm.DB, guideID uint) error {
	logger := middleware.GetLogger(ctx)
	if result := tx.WithContext(ctx).Where("guide_id = ?", guideID).Delete(&model.GuideStep{}); result.Error != nil {
		logger.Error("Error deleting guide steps in DB", "error", result.Error, "guide_id", guideID)
		return fmt.Errorf("gormGuideRepository.Delete(steps): %w", result.Error)
	}
	result := tx.WithContext(ctx).Delete(&model.Guide{}, guideID)
	if result.Error != nil {
		logger.Error("Error deleting guide in DB", "error", result.Error, "guide_id", guideID)
		return fmt.Errorf("gormGuideRepository.Delete: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return model.ErrNotFound
	}
	return nil
}

func (r *gormGuideRepository) FindUnstartedPublished(ctx context.Context, db *gorm.DB, startedGuideIDs []uint) ([]model.Guide, error) {
	var guides []model.Guide
	q := db.WithContext(ctx).
		Where("status = ?", model.GuideStatusPublished).
		Order("priority DESC, id ASC")
	if len(startedGuideIDs) > 0 {
		q = q.Where("id NOT IN ?", startedGuideIDs)
	}
	if result := q.Find(&guides); result.Error != nil {
		return nil, fmt.Errorf("gormGuideRepository.FindUnstartedPublished: %w", result.Error)
	}
	return guides, nil
}
