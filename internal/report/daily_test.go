package report

import (
	"testing"
	"time"

	"github.com/rvoss/chronotrack/internal/domain/project"
	"github.com/rvoss/chronotrack/internal/domain/timeline"
	"github.com/stretchr/testify/require"
)

var day = time.Date(2026, 3, 14, 0, 0, 0, 0, time.UTC)

func block(app string, seconds int, idle bool, projectID *int64) timeline.Block {
	return timeline.Block{
		AppName:   app,
		Duration:  seconds,
		IsIdle:    idle,
		ProjectID: projectID,
	}
}

func TestBuildDaily(t *testing.T) {
	work, play := int64(1), int64(2)
	projects := map[int64]project.Project{
		1: {ID: 1, Name: "Work", Color: "#111111"},
		2: {ID: 2, Name: "Play", Color: "#222222"},
	}

	blocks := []timeline.Block{
		block("code", 600, false, &work),
		block("chrome", 300, false, &play),
		block("code", 300, false, &work),
		block("idle", 120, true, nil),
		block("slack", 60, false, nil),
	}

	daily := BuildDaily(day, blocks, projects)

	require.Equal(t, 120, daily.IdleSeconds)
	require.Equal(t, 1260, daily.TrackedSeconds, "idle time is not tracked time")
	require.Len(t, daily.Totals, 3)

	require.Equal(t, "Work", daily.Totals[0].Name)
	require.Equal(t, 900, daily.Totals[0].Seconds)
	require.Equal(t, 2, daily.Totals[0].Blocks)

	require.Equal(t, "Play", daily.Totals[1].Name)
	require.Equal(t, 300, daily.Totals[1].Seconds)

	require.Empty(t, daily.Totals[2].Name, "unassigned bucket has no name")
	require.Nil(t, daily.Totals[2].ProjectID)
	require.Equal(t, 60, daily.Totals[2].Seconds)
}

func TestBuildDailyUnknownProject(t *testing.T) {
	gone := int64(99)
	daily := BuildDaily(day, []timeline.Block{block("code", 60, false, &gone)}, nil)

	require.Len(t, daily.Totals, 1)
	require.Equal(t, "Unknown", daily.Totals[0].Name)
}

func TestBuildDailyEmpty(t *testing.T) {
	daily := BuildDaily(day, nil, nil)
	require.Empty(t, daily.Totals)
	require.Zero(t, daily.IdleSeconds)
	require.Zero(t, daily.TrackedSeconds)
}
