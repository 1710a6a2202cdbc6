// internal/repository/progress_repository_test.go
package repository

import (
	"context"
	"fmt"
	"strings"
	"testing"
	"time"

	"yanindayim/internal/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func setupRepoTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", strings.ReplaceAll(t.Name(), "/", "_"))
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Silent),
		TranslateError: true,
	})
	require.NoError(t, err)
	require.NoError(t, AutoMigrate(db))
	return db
}

// Two writers racing for the same (user, guide) row: the second statement
// hits the unique index and must resolve into an update, not an error. This
// is the branch a read-then-insert implementation gets wrong on postgres,
// where a failed insert aborts the whole transaction.
func TestProgressRepository_UpsertConflictResolvesToUpdate(t *testing.T) {
	db := setupRepoTestDB(t)
	repo := NewGormProgressRepository()
	ctx := context.Background()

	// Writer A commits first.
	err := db.Transaction(func(tx *gorm.DB) error {
		return repo.Upsert(ctx, tx, &model.UserGuideProgress{UserID: 1, GuideID: 10, CurrentStep: 2, TotalSteps: 5})
	})
	require.NoError(t, err)

	// Writer B arrives with the row already in place.
	err = db.Transaction(func(tx *gorm.DB) error {
		return repo.Upsert(ctx, tx, &model.UserGuideProgress{UserID: 1, GuideID: 10, CurrentStep: 4, TotalSteps: 5})
	})
	require.NoError(t, err, "the losing writer must win the update, not fail")

	var rows []model.UserGuideProgress
	require.NoError(t, db.Find(&rows).Error)
	require.Len(t, rows, 1)
	assert.Equal(t, 4, rows[0].CurrentStep)
}

func TestProgressRepository_UpsertKeepsCompletionColumns(t *testing.T) {
	db := setupRepoTestDB(t)
	repo := NewGormProgressRepository()
	ctx := context.Background()

	now := time.Now().UTC()
	require.NoError(t, repo.MarkCompleted(ctx, db, &model.UserGuideProgress{
		UserID: 1, GuideID: 10, Completed: true, CompletedAt: &now,
	}))

	require.NoError(t, repo.Upsert(ctx, db, &model.UserGuideProgress{
		UserID: 1, GuideID: 10, CurrentStep: 3, TotalSteps: 5,
	}))

	var row model.UserGuideProgress
	require.NoError(t, db.First(&row).Error)
	assert.Equal(t, 3, row.CurrentStep)
	assert.True(t, row.Completed)
	require.NotNil(t, row.CompletedAt)
}

func TestProgressRepository_MarkCompletedKeepsFirstTimestamp(t *testing.T) {
	db := setupRepoTestDB(t)
	repo := NewGormProgressRepository()
	ctx := context.Background()

	first := time.Now().UTC().Add(-time.Hour)
	require.NoError(t, repo.MarkCompleted(ctx, db, &model.UserGuideProgress{
		UserID: 1, GuideID: 10, Completed: true, CompletedAt: &first,
	}))

	second := time.Now().UTC()
	require.NoError(t, repo.MarkCompleted(ctx, db, &model.UserGuideProgress{
		UserID: 1, GuideID: 10, Completed: true, CompletedAt: &second,
	}))

	var row model.UserGuideProgress
	require.NoError(t, db.First(&row).Error)
	require.NotNil(t, row.CompletedAt)
	assert.True(t, row.CompletedAt.Equal(first), "COALESCE must keep the first completion time")
}
