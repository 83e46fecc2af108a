package assign

import (
	"time"

	"github.com/rvoss/chronotrack/internal/domain/activity"
)

// AutoAssignOptions controls a bulk auto-assignment run.
type AutoAssignOptions struct {
	Start         *time.Time
	End           *time.Time
	MinConfidence float64
	DryRun        bool
}

// ReviewOptions controls a suggestions-for-review query.
type ReviewOptions struct {
	Start       *time.Time
	End         *time.Time
	Limit       int
	MinDuration int // seconds; activities shorter than this are not surfaced
}

// Stats summarizes a bulk auto-assignment run.
type Stats struct {
	TotalUnassigned      int
	Assigned             int
	SkippedLowConfidence int
	Assignments          []Assignment
}

// Assignment describes one applied (or would-be, in dry-run) assignment.
type Assignment struct {
	ActivityID  int64
	AppName     string
	WindowTitle string
	ProjectID   int64
	ProjectName string
	Confidence  float64
}

// Suggestion pairs an unassigned activity with a suggested project and a
// confidence score in [0, 1]. Suggestions are ephemeral and never persisted.
type Suggestion struct {
	Activity     activity.Activity
	ProjectID    int64
	ProjectName  string
	ProjectColor string
	Confidence   float64
}
