package timeline

import (
	"context"
	"testing"

	"github.com/rvoss/chronotrack/internal/repository"
	"github.com/stretchr/testify/require"
)

type fakeSettings map[string]string

func (f fakeSettings) Get(ctx context.Context, key string) (string, error) {
	value, ok := f[key]
	if !ok {
		return "", repository.ErrNotFound
	}
	return value, nil
}

func TestOptionsFromSettings(t *testing.T) {
	settings := fakeSettings{
		SettingMergeGap:        "90",
		SettingProjectMergeGap: "not-a-number",
	}

	opts := OptionsFromSettings(context.Background(), settings, DefaultOptions())
	require.Equal(t, 90, opts.MergeGap)
	require.Equal(t, 180, opts.ProjectMergeGap, "malformed value leaves the default")
	require.Equal(t, 10, opts.MinActivityDuration, "missing value leaves the default")
}
