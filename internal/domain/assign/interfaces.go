package assign

import (
	"context"

	"github.com/rvoss/chronotrack/internal/domain/activity"
	"github.com/rvoss/chronotrack/internal/domain/project"
)

// ActivityRepository provides the activity data the assigner learns from and
// writes assignments to.
type ActivityRepository interface {
	List(ctx context.Context, opts activity.ListOptions) ([]activity.Activity, error)
	AssignProject(ctx context.Context, activityID, projectID int64) error
}

// ProjectRepository provides project metadata for suggestion display.
type ProjectRepository interface {
	List(ctx context.Context) ([]project.Project, error)
}
