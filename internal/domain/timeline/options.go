package timeline

import (
	"context"
	"strconv"
)

// Settings keys under which merge thresholds are persisted across sessions.
const (
	SettingMinActivityDuration = "min_activity_duration"
	SettingMergeGap            = "merge_gap"
	SettingProjectMergeGap     = "project_merge_gap"
)

// Options holds the merge thresholds, all in seconds.
//
// MinActivityDuration drops activities shorter than the threshold before
// merging. MergeGap is the largest gap bridged between two same-app
// activities. ProjectMergeGap applies instead when both activities share the
// same app and the same assigned project, allowing a work session to survive
// short interruptions.
type Options struct {
	MinActivityDuration int
	MergeGap            int
	ProjectMergeGap     int
}

// DefaultOptions returns the stock thresholds.
func DefaultOptions() Options {
	return Options{
		MinActivityDuration: 10,
		MergeGap:            60,
		ProjectMergeGap:     180,
	}
}

// SettingsReader provides access to the persisted key-value settings store.
type SettingsReader interface {
	Get(ctx context.Context, key string) (string, error)
}

// OptionsFromSettings loads persisted threshold overrides on top of the given
// defaults. Missing or malformed settings leave the default in place.
func OptionsFromSettings(ctx context.Context, settings SettingsReader, defaults Options) Options {
	opts := defaults
	if v, ok := readInt(ctx, settings, SettingMinActivityDuration); ok {
		opts.MinActivityDuration = v
	}
	if v, ok := readInt(ctx, settings, SettingMergeGap); ok {
		opts.MergeGap = v
	}
	if v, ok := readInt(ctx, settings, SettingProjectMergeGap); ok {
		opts.ProjectMergeGap = v
	}
	return opts
}

func readInt(ctx context.Context, settings SettingsReader, key string) (int, bool) {
	raw, err := settings.Get(ctx, key)
	if err != nil {
		return 0, false
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return 0, false
	}
	return v, true
}
