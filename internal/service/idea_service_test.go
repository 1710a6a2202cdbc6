// internal/service/idea_service_test.go
package service

import (
	"context"
	"testing"

	"yanindayim/internal/model"
	"yanindayim/internal/repository"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIdeaService_CreateDeduplicatesByTitle(t *testing.T) {
	db := setupTestDB(t)
	svc := NewIdeaService(db, repository.NewGormIdeaRepository())
	ctx := context.Background()

	require.NoError(t, svc.Create(ctx, &model.CreateIdeaRequest{Title: "Kargo Takibi"}))
	require.NoError(t, svc.Create(ctx, &model.CreateIdeaRequest{Title: "  Kargo Takibi  "}))
	require.NoError(t, svc.Create(ctx, &model.CreateIdeaRequest{Title: "Randevu Alma"}))

	ideas, err := svc.List(ctx)
	require.NoError(t, err)
	require.Len(t, ideas, 2)

	// Sorted by popularity.
	assert.Equal(t, "Kargo Takibi", ideas[0].Title)
	assert.Equal(t, 2, ideas[0].Count)
	assert.Equal(t, "Randevu Alma", ideas[1].Title)
	assert.Equal(t, 1, ideas[1].Count)
}

func TestIdeaService_CreateRejectsBlankTitle(t *testing.T) {
	db := setupTestDB(t)
	svc := NewIdeaService(db, repository.NewGormIdeaRepository())

	err := svc.Create(context.Background(), &model.CreateIdeaRequest{Title: "   "})
	assert.ErrorIs(t, err, model.ErrInvalidInput)
}

func TestIdeaService_Delete(t *testing.T) {
	db := setupTestDB(t)
	svc := NewIdeaService(db, repository.NewGormIdeaRepository())
	ctx := context.Background()

	require.NoError(t, svc.Create(ctx, &model.CreateIdeaRequest{Title: "Kargo Takibi"}))
	ideas, err := svc.List(ctx)
	require.NoError(t, err)
	require.Len(t, ideas, 1)

	require.NoError(t, svc.Delete(ctx, ideas[0].ID))
	assert.ErrorIs(t, svc.Delete(ctx, ideas[0].ID), model.ErrNotFound)
}
