// Package report aggregates a day's merged timeline into per-project totals
// for text rendering. File formats are intentionally out of scope; rendering
// is left to the caller.
package report

import (
	"sort"
	"time"

	"github.com/rvoss/chronotrack/internal/domain/project"
	"github.com/rvoss/chronotrack/internal/domain/timeline"
)

// ProjectTotal is the aggregated time for one project (or for the
// unassigned bucket when Name is empty).
type ProjectTotal struct {
	ProjectID *int64
	Name      string
	Color     string
	Seconds   int
	Blocks    int
}

// Daily is one day's aggregated timeline.
type Daily struct {
	Date           time.Time
	Totals         []ProjectTotal
	IdleSeconds    int
	TrackedSeconds int // active, non-idle time
}

// BuildDaily aggregates merged blocks into per-project totals. Idle blocks
// are counted separately and excluded from project totals. Totals come back
// sorted by descending time.
func BuildDaily(date time.Time, blocks []timeline.Block, projects map[int64]project.Project) Daily {
	daily := Daily{Date: date}

	type key struct {
		assigned bool
		id       int64
	}
	totals := make(map[key]*ProjectTotal)
	var order []key

	for _, block := range blocks {
		if block.IsIdle {
			daily.IdleSeconds += block.Duration
			continue
		}
		daily.TrackedSeconds += block.Duration

		k := key{}
		if block.ProjectID != nil {
			k = key{assigned: true, id: *block.ProjectID}
		}

		total, ok := totals[k]
		if !ok {
			total = &ProjectTotal{}
			if block.ProjectID != nil {
				id := *block.ProjectID
				total.ProjectID = &id
				if proj, found := projects[id]; found {
					total.Name = proj.Name
					total.Color = proj.Color
				} else {
					total.Name = "Unknown"
				}
			}
			totals[k] = total
			order = append(order, k)
		}
		total.Seconds += block.Duration
		total.Blocks++
	}

	for _, k := range order {
		daily.Totals = append(daily.Totals, *totals[k])
	}
	sort.SliceStable(daily.Totals, func(i, j int) bool {
		return daily.Totals[i].Seconds > daily.Totals[j].Seconds
	})

	return daily
}
