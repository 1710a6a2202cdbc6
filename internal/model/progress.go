// internal/model/progress.go
package model

import "time"

// UserGuideProgress tracks one user's position inside one guide.
// The (user_id, guide_id) pair is unique; repeated saves upsert into the same
// row and the storage engine's row-level transaction decides the winner under
// concurrent writes (last write wins).
type UserGuideProgress struct {
	ID          uint       `gorm:"primaryKey" json:"id"`
	UserID      uint       `gorm:"not null;uniqueIndex:idx_user_guide" json:"user_id"`
	GuideID     uint       `gorm:"not null;uniqueIndex:idx_user_guide" json:"guide_id"`
	CurrentStep int        `gorm:"not null;default:1" json:"current_step"`
	TotalSteps  int        `gorm:"not null;default:1" json:"total_steps"`
	Completed   bool       `gorm:"not null;default:false" json:"completed"`
	StartedAt   time.Time  `gorm:"autoCreateTime" json:"started_at"`
	CompletedAt *time.Time `json:"completed_at,omitempty"`
}

func (UserGuideProgress) TableName() string {
	return "user_guide_progress"
}

// SaveProgressRequest records the user's current position.
type SaveProgressRequest struct {
	GuideID     uint `json:"guide_id" validate:"required"`
	CurrentStep int  `json:"current_step"`
	TotalSteps  int  `json:"total_steps"`
}

// CompleteProgressRequest marks a guide as finished.
type CompleteProgressRequest struct {
	GuideID uint `json:"guide_id" validate:"required"`
}

// ProgressResponse reports progress for one guide. CurrentStep is nil when
// the guide was never started (the "not started" sentinel).
type ProgressResponse struct {
	Success     bool  `json:"success"`
	LoggedIn    bool  `json:"logged_in"`
	CurrentStep *int  `json:"current_step"`
	TotalSteps  *int  `json:"total_steps,omitempty"`
	Completed   *bool `json:"completed,omitempty"`
}

// ProfileResponse summarizes a user's progress across the catalog.
type ProfileResponse struct {
	Success         bool                `json:"success"`
	User            *SessionUser        `json:"user"`
	Completed       []UserGuideProgress `json:"completed"`
	InProgress      []UserGuideProgress `json:"in_progress"`
	AvailableGuides []Guide             `json:"available_guides"`
	TotalCompleted  int                 `json:"total_completed"`
	WeeklyCount     int                 `json:"weekly_count"`
}
