// internal/repository/progress_repository.go
package repository

import (
	"context"
	"errors"
	"fmt"

	"yanindayim/internal/model"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type ProgressRepository interface {
	Upsert(ctx context.Context, tx *gorm.DB, progress *model.UserGuideProgress) error
	MarkCompleted(ctx context.Context, tx *gorm.DB, progress *model.UserGuideProgress) error
	FindByUserAndGuide(ctx context.Context, db *gorm.DB, userID, guideID uint) (*model.UserGuideProgress, error)
	ListByUser(ctx context.Context, db *gorm.DB, userID uint) ([]model.UserGuideProgress, error)
}

type gormProgressRepository struct{}

func NewGormProgressRepository() ProgressRepository {
	return &gormProgressRepository{}
}

// Upsert writes the user's position for one guide as a single statement.
// ON CONFLICT on the (user_id, guide_id) index makes concurrent saves safe on
// postgres: the losing statement turns into the update instead of aborting the
// transaction, so last write wins. Only the step counters are touched; a
// completed row stays completed.
func (r *gormProgressRepository) Upsert(ctx context.Context, tx *gorm.DB, progress *model.UserGuideProgress) error {
	result := tx.WithContext(ctx).Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "user_id"}, {Name: "guide_id"}},
		DoUpdates: clause.Assignments(map[string]interface{}{
			"current_step": progress.CurrentStep,
			"total_steps":  progress.TotalSteps,
		}),
	}).Create(progress)
	if result.Error != nil {
		return fmt.Errorf("gormProgressRepository.Upsert: %w", result.Error)
	}
	return nil
}

// MarkCompleted inserts the row in the completed state or flips an existing
// one. COALESCE keeps the first completion timestamp on repeat calls.
func (r *gormProgressRepository) MarkCompleted(ctx context.Context, tx *gorm.DB, progress *model.UserGuideProgress) error {
	result := tx.WithContext(ctx).Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "user_id"}, {Name: "guide_id"}},
		DoUpdates: clause.Assignments(map[string]interface{}{
			"completed":    true,
			"completed_at": gorm.Expr("COALESCE(user_guide_progress.completed_at, excluded.completed_at)"),
		}),
	}).Create(progress)
	if result.Error != nil {
		return fmt.Errorf("gormProgressRepository.MarkCompleted: %w", result.Error)
	}
	return nil
}

func (r *gormProgressRepository) FindByUserAndGuide(ctx context.Context, db *gorm.DB, userID, guideID uint) (*model.UserGuideProgress, error) {
	var progress model.UserGuideProgress
	result := db.WithContext(ctx).Where("user_id = ? AND guide_id = ?", userID, guideID).First(&progress)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, model.ErrNotFound
		}
		return nil, fmt.Errorf("gormProgressRepository.FindByUserAndGuide: %w", result.Error)
	}
	return &progress, nil
}

func (r *gormProgressRepository) ListByUser(ctx context.Context, db *gorm.DB, userID uint) ([]model.UserGuideProgress, error) {
	var progresses []model.UserGuideProgress
	result := db.WithContext(ctx).Where("user_id = ?", userID).Order("started_at ASC").Find(&progresses)
	if result.Error != nil {
		return nil, fmt.Errorf("gormProgressRepository.ListByUser: %w", result.Error)
	}
	return progresses, nil
}
