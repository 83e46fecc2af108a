package assign

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"sort"
	"time"

	"github.com/google/uuid"
	"github.com/rvoss/chronotrack/internal/domain/activity"
	"github.com/rvoss/chronotrack/internal/domain/project"
)

// Service learns project associations from history and applies or surfaces
// suggestions for unassigned activities. It never mutates data unless an
// auto-assign run is executed without dry-run.
type Service struct {
	activities ActivityRepository
	projects   ProjectRepository
	learnDays  int
	logger     *slog.Logger
}

// NewService creates a new assigner service. learnDays bounds the trailing
// history window used for learning; values <= 0 fall back to 90 days.
func NewService(activities ActivityRepository, projects ProjectRepository, learnDays int, logger *slog.Logger) *Service {
	if learnDays <= 0 {
		learnDays = 90
	}
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return &Service{
		activities: activities,
		projects:   projects,
		learnDays:  learnDays,
		logger:     logger,
	}
}

// Learn builds a fresh model from the trailing history window. Learning is
// O(n) over history and should be kept off latency-sensitive paths.
func (s *Service) Learn(ctx context.Context) (Model, error) {
	start := time.Now().AddDate(0, 0, -s.learnDays)
	history, err := s.activities.List(ctx, activity.ListOptions{Start: &start})
	if err != nil {
		return Model{}, fmt.Errorf("loading history: %w", err)
	}

	model := Learn(history)
	s.logger.Debug("learned assignment model",
		"history", len(history),
		"app_patterns", len(model.AppProjects),
		"keyword_patterns", len(model.KeywordProjects))
	return model, nil
}

// AutoAssignUnassigned suggests a project for every unassigned activity in
// range and applies assignments whose confidence reaches MinConfidence. With
// DryRun the would-be assignments are reported but nothing is written.
func (s *Service) AutoAssignUnassigned(ctx context.Context, opts AutoAssignOptions) (Stats, error) {
	runID := uuid.NewString()

	model, err := s.Learn(ctx)
	if err != nil {
		return Stats{}, err
	}

	candidates, err := s.activities.List(ctx, activity.ListOptions{Start: opts.Start, End: opts.End})
	if err != nil {
		return Stats{}, fmt.Errorf("loading activities: %w", err)
	}

	names, err := s.projectNames(ctx)
	if err != nil {
		return Stats{}, err
	}

	var stats Stats
	for _, act := range candidates {
		if act.IsAssigned() {
			continue
		}
		stats.TotalUnassigned++

		projectID, ok := model.Suggest(act)
		if !ok {
			continue
		}

		confidence := model.Confidence(act, projectID)
		if confidence < opts.MinConfidence {
			stats.SkippedLowConfidence++
			continue
		}

		if !opts.DryRun {
			if err := s.activities.AssignProject(ctx, act.ID, projectID); err != nil {
				return stats, fmt.Errorf("assigning activity %d: %w", act.ID, err)
			}
		}

		stats.Assigned++
		stats.Assignments = append(stats.Assignments, Assignment{
			ActivityID:  act.ID,
			AppName:     act.AppName,
			WindowTitle: act.WindowTitle,
			ProjectID:   projectID,
			ProjectName: names[projectID],
			Confidence:  confidence,
		})
	}

	s.logger.Info("auto-assign run finished",
		"run_id", runID,
		"dry_run", opts.DryRun,
		"unassigned", stats.TotalUnassigned,
		"assigned", stats.Assigned,
		"skipped_low_confidence", stats.SkippedLowConfidence)

	return stats, nil
}

// SuggestionsForReview returns suggestions for unassigned activities in
// range without writing anything. Activities shorter than MinDuration are
// skipped to avoid surfacing noise. Results are sorted by descending
// confidence and capped to Limit.
func (s *Service) SuggestionsForReview(ctx context.Context, opts ReviewOptions) ([]Suggestion, error) {
	if opts.Limit <= 0 {
		opts.Limit = 50
	}
	if opts.MinDuration <= 0 {
		opts.MinDuration = 60
	}

	model, err := s.Learn(ctx)
	if err != nil {
		return nil, err
	}

	candidates, err := s.activities.List(ctx, activity.ListOptions{Start: opts.Start, End: opts.End})
	if err != nil {
		return nil, fmt.Errorf("loading activities: %w", err)
	}

	projects, err := s.projects.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("loading projects: %w", err)
	}
	byID := make(map[int64]project.Project, len(projects))
	for _, p := range projects {
		byID[p.ID] = p
	}

	var suggestions []Suggestion
	for _, act := range candidates {
		if act.IsAssigned() || act.Duration < opts.MinDuration {
			continue
		}
		if len(suggestions) >= opts.Limit {
			break
		}

		projectID, ok := model.Suggest(act)
		if !ok {
			continue
		}

		sug := Suggestion{
			Activity:     act,
			ProjectID:    projectID,
			ProjectName:  "Unknown",
			ProjectColor: "#999",
			Confidence:   model.Confidence(act, projectID),
		}
		if proj, ok := byID[projectID]; ok {
			sug.ProjectName = proj.Name
			sug.ProjectColor = proj.Color
		}
		suggestions = append(suggestions, sug)
	}

	sort.SliceStable(suggestions, func(i, j int) bool {
		return suggestions[i].Confidence > suggestions[j].Confidence
	})

	return suggestions, nil
}

func (s *Service) projectNames(ctx context.Context) (map[int64]string, error) {
	projects, err := s.projects.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("loading projects: %w", err)
	}
	names := make(map[int64]string, len(projects))
	for _, p := range projects {
		names[p.ID] = p.Name
	}
	return names, nil
}
