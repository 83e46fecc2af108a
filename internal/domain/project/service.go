package project

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/rvoss/chronotrack/internal/repository"
)

// Service handles project operations.
type Service struct {
	repo   Repository
	logger *slog.Logger
}

// NewService creates a new project service.
func NewService(repo Repository, logger *slog.Logger) *Service {
	return &Service{repo: repo, logger: logger}
}

// Create creates a new project. An empty color falls back to DefaultColor and
// a missing leading '#' is added.
func (s *Service) Create(ctx context.Context, name, color string) (*Project, error) {
	if strings.TrimSpace(name) == "" {
		return nil, ErrInvalidInput
	}

	proj := &Project{
		Name:      name,
		Color:     NormalizeColor(color),
		CreatedAt: time.Now(),
	}

	if err := s.repo.Create(ctx, proj); err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return nil, ErrProjectExists
		}
		return nil, fmt.Errorf("creating project: %w", err)
	}

	return proj, nil
}

// Get fetches a project by ID.
func (s *Service) Get(ctx context.Context, id int64) (*Project, error) {
	proj, err := s.repo.Get(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrProjectNotFound
		}
		return nil, fmt.Errorf("getting project: %w", err)
	}
	return proj, nil
}

// List returns all projects ordered by name.
func (s *Service) List(ctx context.Context) ([]Project, error) {
	return s.repo.List(ctx)
}

// RecentlyUsed returns projects ordered by last bulk assignment, most recent
// first. Projects never used are excluded.
func (s *Service) RecentlyUsed(ctx context.Context, limit int) ([]Project, error) {
	if limit <= 0 {
		limit = 10
	}
	return s.repo.RecentlyUsed(ctx, limit)
}

// NormalizeColor ensures a display color is a hex string with a leading '#'.
func NormalizeColor(color string) string {
	if color == "" {
		return DefaultColor
	}
	if !strings.HasPrefix(color, "#") {
		return "#" + color
	}
	return color
}
