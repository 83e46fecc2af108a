package sqlite

import (
	"context"
	"errors"
	"testing"

	"github.com/rvoss/chronotrack/internal/repository"
	"github.com/stretchr/testify/require"
)

func TestSettingsGetMissing(t *testing.T) {
	db := NewTestDB(t)
	repo := NewSettingsRepository(db)

	_, err := repo.Get(context.Background(), "merge_gap")
	require.True(t, errors.Is(err, repository.ErrNotFound))
}

func TestSettingsSetAndGet(t *testing.T) {
	db := NewTestDB(t)
	repo := NewSettingsRepository(db)
	ctx := context.Background()

	require.NoError(t, repo.Set(ctx, "merge_gap", "90"))
	value, err := repo.Get(ctx, "merge_gap")
	require.NoError(t, err)
	require.Equal(t, "90", value)

	require.NoError(t, repo.Set(ctx, "merge_gap", "120"))
	value, err = repo.Get(ctx, "merge_gap")
	require.NoError(t, err)
	require.Equal(t, "120", value)
}

func TestSettingsGetDefault(t *testing.T) {
	db := NewTestDB(t)
	repo := NewSettingsRepository(db)
	ctx := context.Background()

	value, err := repo.GetDefault(ctx, "merge_gap", "60")
	require.NoError(t, err)
	require.Equal(t, "60", value)

	require.NoError(t, repo.Set(ctx, "merge_gap", "45"))
	value, err = repo.GetDefault(ctx, "merge_gap", "60")
	require.NoError(t, err)
	require.Equal(t, "45", value)
}
