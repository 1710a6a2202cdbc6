// internal/repository/contact_repository.go
package repository

import (
	"context"
	"fmt"

	"yanindayim/internal/middleware"
	"yanindayim/internal/model"

	"gorm.io/gorm"
)

type ContactRepository interface {
	Create(ctx context.Context, tx *gorm.DB, contact *model.TrustedContact) error
	FindActiveByUser(ctx context.Context, db *gorm.DB, userID uint) ([]model.TrustedContact, error)
	CountActiveByUser(ctx context.Context, db *gorm.DB, userID uint) (int64, error)
	Deactivate(ctx context.Context, tx *gorm.DB, userID, contactID uint) error
}

type AlertRepository interface {
	CreateBatch(ctx context.Context, tx *gorm.DB, alerts []model.CompanionAlert) error
	ListByUser(ctx context.Context, db *gorm.DB, userID uint) ([]model.CompanionAlert, error)
}

type gormContactRepository struct{}

func NewGormContactRepository() ContactRepository {
	return &gormContactRepository{}
}

func (r *gormContactRepository) Create(ctx context.Context, tx *gorm.DB, contact *model.TrustedContact) error {
	logger := middleware.GetLogger(ctx)
	result := tx.WithContext(ctx).Create(contact)
	if result.Error != nil {
		logger.Error("Error creating trusted contact in DB", "error", result.Error, "user_id", contact.UserID)
		return fmt.Errorf("gormContactRepository.Create: %w", result.Error)
	}
	return nil
}

func (r *gormContactRepository) FindActiveByUser(ctx context.Context, db *gorm.DB, userID uint) ([]model.TrustedContact, error) {
	var contacts []model.TrustedContact
	result := db.WithContext(ctx).
		Where("user_id = ? AND is_active = ?", userID, true).
		Order("created_at ASC, id ASC").
		Find(&contacts)
	if result.Error != nil {
		return nil, fmt.Errorf("gormContactRepository.FindActiveByUser: %w", result.Error)
	}
	return contacts, nil
}

func (r *gormContactRepository) CountActiveByUser(ctx context.Context, db *gorm.DB, userID uint) (int64, error) {
	var count int64
	result := db.WithContext(ctx).Model(&model.TrustedContact{}).
		Where("user_id = ? AND is_active = ?", userID, true).
		Count(&count)
	if result.Error != nil {
		return 0, fmt.Errorf("gormContactRepository.CountActiveByUser: %w", result.Error)
	}
	return count, nil
}

// Deactivate soft-deletes so past alerts keep their contact reference.
func (r *gormContactRepository) Deactivate(ctx context.Context, tx *gorm.DB, userID, contactID uint) error {
	result := tx.WithContext(ctx).Model(&model.TrustedContact{}).
		Where("id = ? AND user_id = ?", contactID, userID).
		Update("is_active", false)
	if result.Error != nil {
		return fmt.Errorf("gormContactRepository.Deactivate: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return model.ErrNotFound
	}
	return nil
}

type gormAlertRepository struct{}

func NewGormAlertRepository() AlertRepository {
	return &gormAlertRepository{}
}

func (r *gormAlertRepository) CreateBatch(ctx context.Context, tx *gorm.DB, alerts []model.CompanionAlert) error {
	if len(alerts) == 0 {
		return nil
	}
	result := tx.WithContext(ctx).Create(&alerts)
	if result.Error != nil {
		return fmt.Errorf("gormAlertRepository.CreateBatch: %w", result.Error)
	}
	return nil
}

func (r *gormAlertRepository) ListByUser(ctx context.Context, db *gorm.DB, userID uint) ([]model.CompanionAlert, error) {
	var alerts []model.CompanionAlert
	result := db.WithContext(ctx).Where("user_id = ?", userID).Order("id DESC").Find(&alerts)
	if result.Error != nil {
		return nil, fmt.Errorf("gormAlertRepository.ListByUser: %w", result.Error)
	}
	return alerts, nil
}
