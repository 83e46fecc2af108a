package sqlite

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/rvoss/chronotrack/internal/domain/project"
	"github.com/rvoss/chronotrack/internal/repository"
	"github.com/stretchr/testify/require"
)

func createProject(t *testing.T, repo *ProjectRepository, name, color string) *project.Project {
	t.Helper()
	proj := &project.Project{Name: name, Color: color}
	require.NoError(t, repo.Create(context.Background(), proj))
	return proj
}

func TestProjectCreate(t *testing.T) {
	db := NewTestDB(t)
	repo := NewProjectRepository(db)

	proj := createProject(t, repo, "Work", "#111111")
	require.NotZero(t, proj.ID)
	require.False(t, proj.CreatedAt.IsZero())

	got, err := repo.Get(context.Background(), proj.ID)
	require.NoError(t, err)
	require.Equal(t, "Work", got.Name)
	require.Equal(t, "#111111", got.Color)
	require.Nil(t, got.LastUsed)
}

func TestProjectCreateDuplicateName(t *testing.T) {
	db := NewTestDB(t)
	repo := NewProjectRepository(db)

	createProject(t, repo, "Work", "#111111")
	err := repo.Create(context.Background(), &project.Project{Name: "Work", Color: "#222222"})
	require.True(t, errors.Is(err, repository.ErrDuplicate))
}

func TestProjectGetNotFound(t *testing.T) {
	db := NewTestDB(t)
	repo := NewProjectRepository(db)

	_, err := repo.Get(context.Background(), 9999)
	require.True(t, errors.Is(err, repository.ErrNotFound))

	_, err = repo.GetByName(context.Background(), "nope")
	require.True(t, errors.Is(err, repository.ErrNotFound))
}

func TestProjectListOrderedByName(t *testing.T) {
	db := NewTestDB(t)
	repo := NewProjectRepository(db)

	createProject(t, repo, "Zulu", "#111111")
	createProject(t, repo, "Alpha", "#222222")

	projects, err := repo.List(context.Background())
	require.NoError(t, err)
	// "Social Media" is seeded at migration time.
	require.Len(t, projects, 3)
	require.Equal(t, "Alpha", projects[0].Name)
	require.Equal(t, "Social Media", projects[1].Name)
	require.Equal(t, "Zulu", projects[2].Name)
}

func TestProjectRecentlyUsed(t *testing.T) {
	db := NewTestDB(t)
	repo := NewProjectRepository(db)

	older := createProject(t, repo, "Older", "#111111")
	newer := createProject(t, repo, "Newer", "#222222")
	createProject(t, repo, "Unused", "#333333")

	now := time.Now().UTC()
	_, err := db.Exec(`UPDATE projects SET last_used = ? WHERE id = ?`, now.Add(-time.Hour), older.ID)
	require.NoError(t, err)
	_, err = db.Exec(`UPDATE projects SET last_used = ? WHERE id = ?`, now, newer.ID)
	require.NoError(t, err)

	recent, err := repo.RecentlyUsed(context.Background(), 10)
	require.NoError(t, err)
	require.Len(t, recent, 2, "projects never used are excluded")
	require.Equal(t, "Newer", recent[0].Name)
	require.Equal(t, "Older", recent[1].Name)

	limited, err := repo.RecentlyUsed(context.Background(), 1)
	require.NoError(t, err)
	require.Len(t, limited, 1)
	require.Equal(t, "Newer", limited[0].Name)
}
