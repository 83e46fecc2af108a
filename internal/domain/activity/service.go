package activity

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"time"

	"github.com/rvoss/chronotrack/internal/domain/project"
	"github.com/rvoss/chronotrack/internal/repository"
)

// Service handles activity business logic on top of the store boundary.
type Service struct {
	repo     Repository
	projects ProjectDirectory
	logger   *slog.Logger
}

// NewService creates a new activity service.
func NewService(repo Repository, projects ProjectDirectory, logger *slog.Logger) *Service {
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return &Service{repo: repo, projects: projects, logger: logger}
}

// Save stores a tracked activity. Overlapping stored activities are resolved
// by the repository before insertion; an exact duplicate is silently dropped
// and id 0 is returned. Non-idle activities matching a social media platform
// are assigned to the sentinel project after saving.
func (s *Service) Save(ctx context.Context, req SaveRequest) (int64, error) {
	id, err := s.repo.Save(ctx, req)
	if err != nil {
		return 0, fmt.Errorf("saving activity: %w", err)
	}
	if id == 0 {
		return 0, nil
	}

	if !req.IsIdle && IsSocialMedia(req.AppName, req.WindowTitle) {
		if err := s.assignSocialMedia(ctx, id); err != nil {
			s.logger.Warn("social media auto-assignment failed",
				"activity_id", id, "app", req.AppName, "error", err)
		}
	}

	return id, nil
}

func (s *Service) assignSocialMedia(ctx context.Context, activityID int64) error {
	proj, err := s.projects.GetByName(ctx, project.SocialMediaName)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil
		}
		return fmt.Errorf("looking up sentinel project: %w", err)
	}
	if err := s.repo.AssignProject(ctx, activityID, proj.ID); err != nil {
		return fmt.Errorf("assigning sentinel project: %w", err)
	}
	return nil
}

// List returns activities matching the options, newest first.
func (s *Service) List(ctx context.Context, opts ListOptions) ([]Activity, error) {
	return s.repo.List(ctx, opts)
}

// ListDay returns all activities whose timestamp falls on the given calendar
// day in the timestamp's location.
func (s *Service) ListDay(ctx context.Context, day time.Time) ([]Activity, error) {
	start := time.Date(day.Year(), day.Month(), day.Day(), 0, 0, 0, 0, day.Location())
	end := start.Add(24*time.Hour - time.Second)
	return s.repo.List(ctx, ListOptions{Start: &start, End: &end})
}

// AssignToProject assigns a single activity to a project.
func (s *Service) AssignToProject(ctx context.Context, activityID, projectID int64) error {
	if err := s.repo.AssignProject(ctx, activityID, projectID); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrActivityNotFound
		}
		return fmt.Errorf("assigning activity %d: %w", activityID, err)
	}
	return nil
}

// AssignBlock assigns every activity of one app inside [start, end] to a
// project and touches the project's last-used timestamp. Merged timeline
// blocks are not addressable by id, so block-level assignment goes through
// the underlying time range.
func (s *Service) AssignBlock(ctx context.Context, start, end time.Time, appName string, projectID int64) (int64, error) {
	count, err := s.repo.AssignByTimeRange(ctx, start, end, appName, projectID)
	if err != nil {
		return 0, fmt.Errorf("assigning block: %w", err)
	}
	s.logger.Info("assigned block to project",
		"app", appName, "project_id", projectID, "activities", count)
	return count, nil
}

// DeleteBlock deletes every activity of one app inside [start, end].
func (s *Service) DeleteBlock(ctx context.Context, start, end time.Time, appName string) (int64, error) {
	count, err := s.repo.DeleteByTimeRange(ctx, start, end, appName)
	if err != nil {
		return 0, fmt.Errorf("deleting block: %w", err)
	}
	s.logger.Info("deleted block", "app", appName, "activities", count)
	return count, nil
}
