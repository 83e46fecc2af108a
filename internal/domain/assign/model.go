package assign

import (
	"regexp"
	"strings"

	"github.com/rvoss/chronotrack/internal/domain/activity"
)

// keywordRe extracts lowercase words of at least 4 characters from window
// titles. The fixed threshold and absence of stemming are load-bearing:
// changing tokenization changes confidence scores.
var keywordRe = regexp.MustCompile(`\b\w{4,}\b`)

// keywordShareThreshold is the duration share a project must exceed for a
// keyword to map to it. A strict majority avoids noisy one-off associations.
const keywordShareThreshold = 0.6

// Model holds associations learned from previously assigned activities. It
// is a value object: Learn builds a fresh model each call and suggestion
// methods never mutate it, so a model can be shared across concurrent reads.
type Model struct {
	// AppProjects maps an app name to the project that accumulated the most
	// total duration under that app.
	AppProjects map[string]int64
	// KeywordProjects maps a window-title keyword to a project, only when
	// that project accounts for more than 60% of the keyword's observed
	// duration.
	KeywordProjects map[string]int64
}

// durationTally accumulates per-project durations while preserving the order
// in which projects were first seen, so argmax ties resolve to the project
// observed first.
type durationTally struct {
	seconds map[int64]int
	order   []int64
}

func newDurationTally() *durationTally {
	return &durationTally{seconds: make(map[int64]int)}
}

func (t *durationTally) add(projectID int64, seconds int) {
	if _, ok := t.seconds[projectID]; !ok {
		t.order = append(t.order, projectID)
	}
	t.seconds[projectID] += seconds
}

func (t *durationTally) best() (int64, int, int) {
	var bestID int64
	bestSeconds := -1
	total := 0
	for _, id := range t.order {
		s := t.seconds[id]
		total += s
		if s > bestSeconds {
			bestID = id
			bestSeconds = s
		}
	}
	return bestID, bestSeconds, total
}

// Learn builds a fresh model from the assigned subset of the given
// activities. Unassigned activities contribute nothing. An empty history
// produces empty maps, after which every suggestion deterministically comes
// back empty.
func Learn(activities []activity.Activity) Model {
	model := Model{
		AppProjects:     make(map[string]int64),
		KeywordProjects: make(map[string]int64),
	}

	appTallies := make(map[string]*durationTally)
	appOrder := []string{}
	keywordTallies := make(map[string]*durationTally)
	keywordOrder := []string{}

	for _, act := range activities {
		if !act.IsAssigned() {
			continue
		}
		projectID := *act.ProjectID

		tally, ok := appTallies[act.AppName]
		if !ok {
			tally = newDurationTally()
			appTallies[act.AppName] = tally
			appOrder = append(appOrder, act.AppName)
		}
		tally.add(projectID, act.Duration)

		for _, keyword := range Tokenize(act.WindowTitle) {
			kt, ok := keywordTallies[keyword]
			if !ok {
				kt = newDurationTally()
				keywordTallies[keyword] = kt
				keywordOrder = append(keywordOrder, keyword)
			}
			kt.add(projectID, act.Duration)
		}
	}

	for _, app := range appOrder {
		best, _, _ := appTallies[app].best()
		model.AppProjects[app] = best
	}

	for _, keyword := range keywordOrder {
		best, bestSeconds, total := keywordTallies[keyword].best()
		if total > 0 && float64(bestSeconds)/float64(total) > keywordShareThreshold {
			model.KeywordProjects[keyword] = best
		}
	}

	return model
}

// Tokenize extracts keywords from a window title.
func Tokenize(windowTitle string) []string {
	return keywordRe.FindAllString(strings.ToLower(windowTitle), -1)
}

// Suggest returns the most likely project for an activity. An app-level
// match always wins outright; otherwise keywords from the window title vote
// and the project with the most votes is returned. Vote ties resolve to the
// project whose winning count was reached first while scanning the title
// tokens in order.
func (m Model) Suggest(act activity.Activity) (int64, bool) {
	if projectID, ok := m.AppProjects[act.AppName]; ok {
		return projectID, true
	}

	votes := make(map[int64]int)
	var voteOrder []int64
	for _, keyword := range Tokenize(act.WindowTitle) {
		projectID, ok := m.KeywordProjects[keyword]
		if !ok {
			continue
		}
		if _, seen := votes[projectID]; !seen {
			voteOrder = append(voteOrder, projectID)
		}
		votes[projectID]++
	}

	var bestID int64
	bestVotes := 0
	for _, id := range voteOrder {
		if votes[id] > bestVotes {
			bestID = id
			bestVotes = votes[id]
		}
	}
	if bestVotes == 0 {
		return 0, false
	}
	return bestID, true
}

// Confidence scores an (activity, project) pair in [0, 1]. App agreement
// contributes 0.6 and keyword agreement up to 0.4, proportional to the share
// of title keywords mapping to the project. The blend means an app-matched
// suggestion can still be boosted by keyword agreement, capped at 1.0.
func (m Model) Confidence(act activity.Activity, projectID int64) float64 {
	confidence := 0.0

	if mapped, ok := m.AppProjects[act.AppName]; ok && mapped == projectID {
		confidence += 0.6
	}

	keywords := Tokenize(act.WindowTitle)
	if len(keywords) > 0 {
		matching := 0
		for _, keyword := range keywords {
			if mapped, ok := m.KeywordProjects[keyword]; ok && mapped == projectID {
				matching++
			}
		}
		confidence += 0.4 * float64(matching) / float64(len(keywords))
	}

	return min(confidence, 1.0)
}
