package assign

import (
	"context"
	"testing"

	"github.com/rvoss/chronotrack/internal/domain/activity"
	"github.com/rvoss/chronotrack/internal/domain/project"
	"github.com/rvoss/chronotrack/internal/repository/mocks"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// learnCall matches the history query, which has no upper bound.
var learnCall = mock.MatchedBy(func(opts activity.ListOptions) bool {
	return opts.End == nil
})

// candidateCall matches the bounded candidate query.
var candidateCall = mock.MatchedBy(func(opts activity.ListOptions) bool {
	return opts.End != nil
})

func withID(act activity.Activity, id int64) activity.Activity {
	act.ID = id
	return act
}

func TestAutoAssignUnassigned(t *testing.T) {
	activities := new(mocks.ActivityRepository)
	projects := new(mocks.ProjectRepository)
	svc := NewService(activities, projects, 90, nil)

	history := []activity.Activity{assigned("code", "", 300, 1)}
	candidates := []activity.Activity{
		withID(unassigned("code", "", 60), 10),
		withID(unassigned("chrome", "something unknown", 60), 11),
		withID(assigned("code", "", 60, 1), 12),
	}

	activities.On("List", mock.Anything, learnCall).Return(history, nil)
	activities.On("List", mock.Anything, candidateCall).Return(candidates, nil)
	projects.On("List", mock.Anything).Return([]project.Project{{ID: 1, Name: "Work"}}, nil)
	activities.On("AssignProject", mock.Anything, int64(10), int64(1)).Return(nil)

	start, end := base.AddDate(0, 0, -7), base
	stats, err := svc.AutoAssignUnassigned(context.Background(), AutoAssignOptions{
		Start:         &start,
		End:           &end,
		MinConfidence: 0.5,
	})
	require.NoError(t, err)

	require.Equal(t, 2, stats.TotalUnassigned, "already assigned activities are not counted")
	require.Equal(t, 1, stats.Assigned)
	require.Zero(t, stats.SkippedLowConfidence)
	require.Len(t, stats.Assignments, 1)
	require.Equal(t, int64(10), stats.Assignments[0].ActivityID)
	require.Equal(t, "Work", stats.Assignments[0].ProjectName)
	require.InDelta(t, 0.6, stats.Assignments[0].Confidence, 1e-9)

	activities.AssertExpectations(t)
}

func TestAutoAssignDryRunWritesNothing(t *testing.T) {
	activities := new(mocks.ActivityRepository)
	projects := new(mocks.ProjectRepository)
	svc := NewService(activities, projects, 90, nil)

	activities.On("List", mock.Anything, learnCall).
		Return([]activity.Activity{assigned("code", "", 300, 1)}, nil)
	activities.On("List", mock.Anything, candidateCall).
		Return([]activity.Activity{withID(unassigned("code", "", 60), 10)}, nil)
	projects.On("List", mock.Anything).Return([]project.Project{{ID: 1, Name: "Work"}}, nil)

	start, end := base.AddDate(0, 0, -7), base
	stats, err := svc.AutoAssignUnassigned(context.Background(), AutoAssignOptions{
		Start:         &start,
		End:           &end,
		MinConfidence: 0.5,
		DryRun:        true,
	})
	require.NoError(t, err)
	require.Equal(t, 1, stats.Assigned)
	require.Len(t, stats.Assignments, 1)

	activities.AssertNotCalled(t, "AssignProject", mock.Anything, mock.Anything, mock.Anything)
}

func TestAutoAssignSkipsLowConfidence(t *testing.T) {
	activities := new(mocks.ActivityRepository)
	projects := new(mocks.ProjectRepository)
	svc := NewService(activities, projects, 90, nil)

	activities.On("List", mock.Anything, learnCall).
		Return([]activity.Activity{assigned("code", "", 300, 1)}, nil)
	activities.On("List", mock.Anything, candidateCall).
		Return([]activity.Activity{withID(unassigned("code", "", 60), 10)}, nil)
	projects.On("List", mock.Anything).Return([]project.Project{{ID: 1, Name: "Work"}}, nil)

	start, end := base.AddDate(0, 0, -7), base
	stats, err := svc.AutoAssignUnassigned(context.Background(), AutoAssignOptions{
		Start:         &start,
		End:           &end,
		MinConfidence: 0.7,
	})
	require.NoError(t, err)
	require.Zero(t, stats.Assigned)
	require.Equal(t, 1, stats.SkippedLowConfidence)

	activities.AssertNotCalled(t, "AssignProject", mock.Anything, mock.Anything, mock.Anything)
}

func TestSuggestionsForReview(t *testing.T) {
	activities := new(mocks.ActivityRepository)
	projects := new(mocks.ProjectRepository)
	svc := NewService(activities, projects, 90, nil)

	// "invoice" maps cleanly to project 1, so a title hit boosts confidence.
	history := []activity.Activity{assigned("code", "invoice", 300, 1)}
	candidates := []activity.Activity{
		withID(unassigned("code", "random", 120), 10),  // 0.6
		withID(unassigned("code", "invoice", 120), 11), // 1.0
		withID(unassigned("code", "invoice", 30), 12),  // too short
		withID(assigned("code", "invoice", 120, 1), 13),
	}

	activities.On("List", mock.Anything, learnCall).Return(history, nil)
	activities.On("List", mock.Anything, candidateCall).Return(candidates, nil)
	projects.On("List", mock.Anything).
		Return([]project.Project{{ID: 1, Name: "Work", Color: "#111111"}}, nil)

	start, end := base.AddDate(0, 0, -7), base
	suggestions, err := svc.SuggestionsForReview(context.Background(), ReviewOptions{
		Start: &start,
		End:   &end,
	})
	require.NoError(t, err)
	require.Len(t, suggestions, 2)

	require.Equal(t, int64(11), suggestions[0].Activity.ID, "highest confidence first")
	require.InDelta(t, 1.0, suggestions[0].Confidence, 1e-9)
	require.Equal(t, "Work", suggestions[0].ProjectName)
	require.Equal(t, "#111111", suggestions[0].ProjectColor)
	require.Equal(t, int64(10), suggestions[1].Activity.ID)
}

func TestSuggestionsUnknownProjectFallback(t *testing.T) {
	activities := new(mocks.ActivityRepository)
	projects := new(mocks.ProjectRepository)
	svc := NewService(activities, projects, 90, nil)

	activities.On("List", mock.Anything, learnCall).
		Return([]activity.Activity{assigned("code", "", 300, 42)}, nil)
	activities.On("List", mock.Anything, candidateCall).
		Return([]activity.Activity{withID(unassigned("code", "", 120), 10)}, nil)
	projects.On("List", mock.Anything).Return([]project.Project{}, nil)

	start, end := base.AddDate(0, 0, -7), base
	suggestions, err := svc.SuggestionsForReview(context.Background(), ReviewOptions{
		Start: &start,
		End:   &end,
	})
	require.NoError(t, err)
	require.Len(t, suggestions, 1)
	require.Equal(t, "Unknown", suggestions[0].ProjectName)
	require.Equal(t, "#999", suggestions[0].ProjectColor)
}
