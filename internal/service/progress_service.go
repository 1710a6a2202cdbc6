// internal/service/progress_service.go
package service

import (
	"context"
	"errors"
	"time"

	"yanindayim/internal/middleware"
	"yanindayim/internal/model"
	"yanindayim/internal/repository"

	"gorm.io/gorm"
)

type ProgressService interface {
	Save(ctx context.Context, userID uint, req *model.SaveProgressRequest) error
	Complete(ctx context.Context, userID uint, req *model.CompleteProgressRequest) error
	Get(ctx context.Context, userID, guideID uint) (*model.ProgressResponse, error)
	Profile(ctx context.Context, user model.SessionUser) (*model.ProfileResponse, error)
}

type progressService struct {
	db        *gorm.DB
	progRepo  repository.ProgressRepository
	guideRepo repository.GuideRepository
}

func NewProgressService(db *gorm.DB, progRepo repository.ProgressRepository, guideRepo repository.GuideRepository) ProgressService {
	return &progressService{db: db, progRepo: progRepo, guideRepo: guideRepo}
}

// Save upserts the user's position for one guide. The write is a single
// ON CONFLICT statement, so concurrent saves for the same (user, guide) never
// abort each other's transaction; last write wins. A completed row keeps its
// completion state, only the step counters move.
func (s *progressService) Save(ctx context.Context, userID uint, req *model.SaveProgressRequest) error {
	logger := middleware.GetLogger(ctx)

	currentStep := req.CurrentStep
	if currentStep < 1 {
		currentStep = 1
	}
	totalSteps := req.TotalSteps
	if totalSteps < 1 {
		totalSteps = 1
	}

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return s.progRepo.Upsert(ctx, tx, &model.UserGuideProgress{
			UserID:      userID,
			GuideID:     req.GuideID,
			CurrentStep: currentStep,
			TotalSteps:  totalSteps,
		})
	})
	if err != nil {
		logger.Error("Transaction failed for Save progress", "error", err, "user_id", userID, "guide_id", req.GuideID)
		return model.ErrInternalServer
	}
	return nil
}

// Complete marks a guide finished. Completing an unstarted guide creates the
// row directly in the completed state; completing twice keeps the first
// CompletedAt timestamp (COALESCE in the upsert).
func (s *progressService) Complete(ctx context.Context, userID uint, req *model.CompleteProgressRequest) error {
	logger := middleware.GetLogger(ctx)

	now := time.Now().UTC()
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return s.progRepo.MarkCompleted(ctx, tx, &model.UserGuideProgress{
			UserID:      userID,
			GuideID:     req.GuideID,
			Completed:   true,
			CompletedAt: &now,
		})
	})
	if err != nil {
		logger.Error("Transaction failed for Complete progress", "error", err, "user_id", userID, "guide_id", req.GuideID)
		return model.ErrInternalServer
	}
	return nil
}

// Get reports progress for one guide. Never started is not an error: the
// response succeeds with a nil current_step.
func (s *progressService) Get(ctx context.Context, userID, guideID uint) (*model.ProgressResponse, error) {
	progress, err := s.progRepo.FindByUserAndGuide(ctx, s.db, userID, guideID)
	if err != nil {
		if errors.Is(err, model.ErrNotFound) {
			return &model.ProgressResponse{Success: true, LoggedIn: true}, nil
		}
		middleware.GetLogger(ctx).Error("Error fetching progress", "error", err, "user_id", userID, "guide_id", guideID)
		return nil, model.ErrInternalServer
	}

	return &model.ProgressResponse{
		Success:     true,
		LoggedIn:    true,
		CurrentStep: &progress.CurrentStep,
		TotalSteps:  &progress.TotalSteps,
		Completed:   &progress.Completed,
	}, nil
}

// Profile aggregates the user's whole journey: finished guides, guides in
// flight, published guides never started, and a weekly count of completions
// in the last seven days.
func (s *progressService) Profile(ctx context.Context, user model.SessionUser) (*model.ProfileResponse, error) {
	logger := middleware.GetLogger(ctx)

	allProgress, err := s.progRepo.ListByUser(ctx, s.db, user.ID)
	if err != nil {
		logger.Error("Error listing user progress", "error", err, "user_id", user.ID)
		return nil, model.ErrInternalServer
	}

	completed := make([]model.UserGuideProgress, 0)
	inProgress := make([]model.UserGuideProgress, 0)
	startedIDs := make([]uint, 0, len(allProgress))
	weekAgo := time.Now().UTC().AddDate(0, 0, -7)
	weeklyCount := 0

	for _, p := range allProgress {
		startedIDs = append(startedIDs, p.GuideID)
		if p.Completed {
			completed = append(completed, p)
			if p.CompletedAt != nil && !p.CompletedAt.Before(weekAgo) {
				weeklyCount++
			}
		} else {
			inProgress = append(inProgress, p)
		}
	}

	available, err := s.guideRepo.FindUnstartedPublished(ctx, s.db, startedIDs)
	if err != nil {
		logger.Error("Error listing available guides", "error", err, "user_id", user.ID)
		return nil, model.ErrInternalServer
	}

	return &model.ProfileResponse{
		Success:         true,
		User:            &user,
		Completed:       completed,
		InProgress:      inProgress,
		AvailableGuides: available,
		TotalCompleted:  len(completed),
		WeeklyCount:     weeklyCount,
	}, nil
}
