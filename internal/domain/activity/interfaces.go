package activity

import (
	"context"
	"time"

	"github.com/rvoss/chronotrack/internal/domain/project"
)

// Repository provides persistence for activities. Save performs overlap
// resolution before inserting: existing activities conflicting with the new
// interval are truncated or deleted so that the stored set stays pairwise
// non-overlapping. An exact duplicate insert is a silent no-op returning 0.
type Repository interface {
	Save(ctx context.Context, req SaveRequest) (int64, error)
	List(ctx context.Context, opts ListOptions) ([]Activity, error)
	AssignProject(ctx context.Context, activityID, projectID int64) error
	AssignByTimeRange(ctx context.Context, start, end time.Time, appName string, projectID int64) (int64, error)
	DeleteByTimeRange(ctx context.Context, start, end time.Time, appName string) (int64, error)
}

// ProjectDirectory resolves projects by name, used for the social media
// sentinel lookup.
type ProjectDirectory interface {
	GetByName(ctx context.Context, name string) (*project.Project, error)
}
