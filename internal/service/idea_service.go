// internal/service/idea_service.go
package service

import (
	"context"
	"errors"
	"strings"

	"yanindayim/internal/middleware"
	"yanindayim/internal/model"
	"yanindayim/internal/repository"

	"gorm.io/gorm"
)

type IdeaService interface {
	Create(ctx context.Context, req *model.CreateIdeaRequest) error
	List(ctx context.Context) ([]model.Idea, error)
	Delete(ctx context.Context, ideaID uint) error
}

type ideaService struct {
	db       *gorm.DB
	ideaRepo repository.IdeaRepository
}

func NewIdeaService(db *gorm.DB, ideaRepo repository.IdeaRepository) IdeaService {
	return &ideaService{db: db, ideaRepo: ideaRepo}
}

// Create records a guide suggestion. Title is the dedup key: a repeat
// submission bumps the existing row's count instead of inserting another.
func (s *ideaService) Create(ctx context.Context, req *model.CreateIdeaRequest) error {
	title := strings.TrimSpace(req.Title)
	if title == "" {
		return model.ErrInvalidInput
	}

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		idea, err := s.ideaRepo.FindByTitle(ctx, tx, title)
		if err == nil {
			return s.ideaRepo.IncrementCount(ctx, tx, idea.ID)
		}
		if !errors.Is(err, model.ErrNotFound) {
			return err
		}
		return s.ideaRepo.Create(ctx, tx, &model.Idea{Title: title, Count: 1})
	})
	if err != nil {
		middleware.GetLogger(ctx).Error("Transaction failed for Create idea", "error", err, "title", title)
		return model.ErrInternalServer
	}
	return nil
}

func (s *ideaService) List(ctx context.Context) ([]model.Idea, error) {
	ideas, err := s.ideaRepo.ListByCount(ctx, s.db)
	if err != nil {
		middleware.GetLogger(ctx).Error("Error listing ideas", "error", err)
		return nil, model.ErrInternalServer
	}
	return ideas, nil
}

func (s *ideaService) Delete(ctx context.Context, ideaID uint) error {
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return s.ideaRepo.Delete(ctx, tx, ideaID)
	})
	if err != nil {
		if errors.Is(err, model.ErrNotFound) {
			return model.ErrNotFound
		}
		middleware.GetLogger(ctx).Error("Transaction failed for Delete idea", "error", err, "idea_id", ideaID)
		return model.ErrInternalServer
	}
	return nil
}
