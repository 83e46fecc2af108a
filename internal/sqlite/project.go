package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/rvoss/chronotrack/internal/domain/project"
	"github.com/rvoss/chronotrack/internal/repository"
)

// ProjectRepository implements project persistence for SQLite.
type ProjectRepository struct {
	db *DB
}

// NewProjectRepository creates a new ProjectRepository.
func NewProjectRepository(db *DB) *ProjectRepository {
	return &ProjectRepository{db: db}
}

// Create inserts a new project and fills in its assigned id.
func (r *ProjectRepository) Create(ctx context.Context, proj *project.Project) error {
	r.db.writeMu.Lock()
	defer r.db.writeMu.Unlock()

	if proj.CreatedAt.IsZero() {
		proj.CreatedAt = time.Now().UTC()
	}

	result, err := r.db.ExecContext(ctx,
		`INSERT INTO projects (name, color, created_at) VALUES (?, ?, ?)`,
		proj.Name, proj.Color, proj.CreatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return repository.ErrDuplicate
		}
		return fmt.Errorf("failed to create project: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return fmt.Errorf("failed to get inserted id: %w", err)
	}
	proj.ID = id
	return nil
}

// Get retrieves a project by id.
func (r *ProjectRepository) Get(ctx context.Context, id int64) (*project.Project, error) {
	return r.getOne(ctx,
		`SELECT id, name, color, created_at, last_used FROM projects WHERE id = ?`, id)
}

// GetByName retrieves a project by its unique name.
func (r *ProjectRepository) GetByName(ctx context.Context, name string) (*project.Project, error) {
	return r.getOne(ctx,
		`SELECT id, name, color, created_at, last_used FROM projects WHERE name = ?`, name)
}

// List returns all projects ordered by name.
func (r *ProjectRepository) List(ctx context.Context) ([]project.Project, error) {
	return r.list(ctx,
		`SELECT id, name, color, created_at, last_used FROM projects ORDER BY name`)
}

// RecentlyUsed returns projects with a last_used stamp, most recent first.
func (r *ProjectRepository) RecentlyUsed(ctx context.Context, limit int) ([]project.Project, error) {
	return r.list(ctx,
		`SELECT id, name, color, created_at, last_used FROM projects
		 WHERE last_used IS NOT NULL ORDER BY last_used DESC LIMIT ?`, limit)
}

func (r *ProjectRepository) getOne(ctx context.Context, query string, args ...any) (*project.Project, error) {
	var proj project.Project
	var lastUsed sql.NullTime

	err := r.db.QueryRowContext(ctx, query, args...).Scan(
		&proj.ID, &proj.Name, &proj.Color, &proj.CreatedAt, &lastUsed)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, repository.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get project: %w", err)
	}
	if lastUsed.Valid {
		proj.LastUsed = &lastUsed.Time
	}
	return &proj, nil
}

func (r *ProjectRepository) list(ctx context.Context, query string, args ...any) ([]project.Project, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list projects: %w", err)
	}
	defer rows.Close()

	var projects []project.Project
	for rows.Next() {
		var proj project.Project
		var lastUsed sql.NullTime
		if err := rows.Scan(&proj.ID, &proj.Name, &proj.Color, &proj.CreatedAt, &lastUsed); err != nil {
			return nil, fmt.Errorf("failed to scan project: %w", err)
		}
		if lastUsed.Valid {
			proj.LastUsed = &lastUsed.Time
		}
		projects = append(projects, proj)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating project rows: %w", err)
	}
	return projects, nil
}
