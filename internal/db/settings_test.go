package db

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupSettingsRepo(t *testing.T) *SettingsRepository {
	t.Helper()

	tmpFile := filepath.Join(t.TempDir(), "test.db")
	database, err := New(tmpFile)
	require.NoError(t, err)
	t.Cleanup(func() { _ = database.Close() })

	sqlDB, err := database.GetSQLDB()
	require.NoError(t, err)
	require.NoError(t, RunMigrations(sqlDB, "file://../../migrations"))

	return NewSettingsRepository(database)
}

func TestSettings_SetAndGet(t *testing.T) {
	repo := setupSettingsRepo(t)
	ctx := context.Background()

	require.NoError(t, repo.Set(ctx, "slideshow_title", "Summer 2026"))

	setting, err := repo.Get(ctx, "slideshow_title")
	require.NoError(t, err)
	assert.Equal(t, "Summer 2026", setting.Value)

	// Set replaces on conflict
	require.NoError(t, repo.Set(ctx, "slideshow_title", "Autumn 2026"))
	setting, err = repo.Get(ctx, "slideshow_title")
	require.NoError(t, err)
	assert.Equal(t, "Autumn 2026", setting.Value)
}

func TestSettings_GetMissing(t *testing.T) {
	repo := setupSettingsRepo(t)

	_, err := repo.Get(context.Background(), "nope")
	assert.True(t, IsNotFound(err))
}

func TestSettings_All(t *testing.T) {
	repo := setupSettingsRepo(t)
	ctx := context.Background()

	require.NoError(t, repo.Set(ctx, "b_key", "2"))
	require.NoError(t, repo.Set(ctx, "a_key", "1"))

	settings, err := repo.All(ctx)
	require.NoError(t, err)
	require.Len(t, settings, 2)
	assert.Equal(t, "a_key", settings[0].Key)
	assert.Equal(t, "b_key", settings[1].Key)
}
