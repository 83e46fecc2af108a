package timeline

import (
	"sort"
	"time"

	"github.com/rvoss/chronotrack/internal/domain/activity"
)

// Block is an ephemeral, derived view of one or more contiguous stored
// activities coalesced for display and block-level assignment. Blocks are
// never persisted.
type Block struct {
	AppName     string
	WindowTitle string
	Timestamp   time.Time
	Duration    int // seconds
	IsIdle      bool
	ProjectID   *int64
	EndTime     time.Time
}

// Merge coalesces a raw activity list into timeline blocks.
//
// Activities shorter than MinActivityDuration are dropped, the rest are
// sorted ascending by timestamp and folded left. Two adjacent activities
// merge when neither is idle and either they share app and assigned project
// within ProjectMergeGap, or they share app within MergeGap. A non-positive
// gap (inputs already touching or overlapping) always passes the gap test.
// On merge the most recent non-empty window title wins.
//
// Merging by app name alone turns a day into one giant browser block;
// merging by a single small gap splits every idle blip into its own block.
// The three-tier rule keeps an actively assigned session together while
// still separating distinct work.
func Merge(activities []activity.Activity, opts Options) []Block {
	if len(activities) == 0 {
		return nil
	}

	filtered := make([]activity.Activity, 0, len(activities))
	for _, act := range activities {
		if act.Duration >= opts.MinActivityDuration {
			filtered = append(filtered, act)
		}
	}
	if len(filtered) == 0 {
		return nil
	}

	sort.SliceStable(filtered, func(i, j int) bool {
		return filtered[i].Timestamp.Before(filtered[j].Timestamp)
	})

	var merged []Block
	current := newBlock(filtered[0])

	for _, act := range filtered[1:] {
		actEnd := act.EndTime()
		gap := act.Timestamp.Sub(current.EndTime).Seconds()

		if shouldMerge(current, act, gap, opts) {
			current.EndTime = actEnd
			current.Duration = int(current.EndTime.Sub(current.Timestamp).Seconds())
			if act.WindowTitle != "" {
				current.WindowTitle = act.WindowTitle
			}
		} else {
			merged = append(merged, current)
			current = newBlock(act)
		}
	}

	return append(merged, current)
}

func shouldMerge(current Block, act activity.Activity, gap float64, opts Options) bool {
	// Idle and active periods stay visually distinct regardless of app or gap.
	if current.IsIdle || act.IsIdle {
		return false
	}
	if current.ProjectID != nil && act.ProjectID != nil &&
		*current.ProjectID == *act.ProjectID &&
		current.AppName == act.AppName {
		return gap <= float64(opts.ProjectMergeGap)
	}
	if current.AppName == act.AppName {
		return gap <= float64(opts.MergeGap)
	}
	return false
}

func newBlock(act activity.Activity) Block {
	return Block{
		AppName:     act.AppName,
		WindowTitle: act.WindowTitle,
		Timestamp:   act.Timestamp,
		Duration:    act.Duration,
		IsIdle:      act.IsIdle,
		ProjectID:   act.ProjectID,
		EndTime:     act.EndTime(),
	}
}

// Filter removes activities matching the ignore predicate, typically system
// shells and empty windows that carry no timeline signal.
func Filter(activities []activity.Activity, ignore func(appName, windowTitle string) bool) []activity.Activity {
	if ignore == nil {
		return activities
	}
	kept := make([]activity.Activity, 0, len(activities))
	for _, act := range activities {
		if !ignore(act.AppName, act.WindowTitle) {
			kept = append(kept, act)
		}
	}
	return kept
}
