package repair_test

import (
	"context"
	"testing"
	"time"

	"github.com/rvoss/chronotrack/internal/domain/repair"
	"github.com/rvoss/chronotrack/internal/repository/mocks"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

var base = time.Date(2026, 3, 14, 10, 0, 0, 0, time.UTC)

func side(id int64, app string, offset, seconds int, idle bool) repair.Side {
	return repair.Side{
		ID:       id,
		Start:    base.Add(time.Duration(offset) * time.Second),
		Duration: seconds,
		AppName:  app,
		IsIdle:   idle,
	}
}

func TestResolveIdleSideIsDeleted(t *testing.T) {
	pair := repair.OverlapPair{
		First:  side(1, "idle", 0, 60, true),
		Second: side(2, "code", 30, 60, false),
	}
	actions := repair.Resolve(pair)
	require.Len(t, actions, 1)
	require.Equal(t, repair.OpDelete, actions[0].Op)
	require.Equal(t, int64(1), actions[0].ActivityID)

	pair = repair.OverlapPair{
		First:  side(1, "code", 0, 60, false),
		Second: side(2, "idle", 30, 60, true),
	}
	actions = repair.Resolve(pair)
	require.Len(t, actions, 1)
	require.Equal(t, repair.OpDelete, actions[0].Op)
	require.Equal(t, int64(2), actions[0].ActivityID)
}

func TestResolveContainedSecondIsDeleted(t *testing.T) {
	pair := repair.OverlapPair{
		First:  side(1, "code", 0, 120, false),
		Second: side(2, "chrome", 30, 30, false),
	}
	actions := repair.Resolve(pair)
	require.Len(t, actions, 1)
	require.Equal(t, repair.OpDelete, actions[0].Op)
	require.Equal(t, int64(2), actions[0].ActivityID)
}

func TestResolveContainedFirstIsDeleted(t *testing.T) {
	// Same start, second runs longer, so the first is fully contained.
	pair := repair.OverlapPair{
		First:  side(1, "code", 0, 30, false),
		Second: side(2, "chrome", 0, 120, false),
	}
	actions := repair.Resolve(pair)
	require.Len(t, actions, 1)
	require.Equal(t, repair.OpDelete, actions[0].Op)
	require.Equal(t, int64(1), actions[0].ActivityID)
}

func TestResolveSameAppMerges(t *testing.T) {
	pair := repair.OverlapPair{
		First:  side(1, "code", 0, 60, false),
		Second: side(2, "code", 30, 60, false),
	}
	actions := repair.Resolve(pair)
	require.Len(t, actions, 2)
	require.Equal(t, repair.OpSetDuration, actions[0].Op)
	require.Equal(t, int64(1), actions[0].ActivityID)
	require.Equal(t, 90, actions[0].NewDuration, "first extends to cover both")
	require.Equal(t, repair.OpDelete, actions[1].Op)
	require.Equal(t, int64(2), actions[1].ActivityID)
}

func TestResolveShortensFirstOtherwise(t *testing.T) {
	pair := repair.OverlapPair{
		First:  side(1, "code", 0, 60, false),
		Second: side(2, "chrome", 30, 60, false),
	}
	actions := repair.Resolve(pair)
	require.Len(t, actions, 1)
	require.Equal(t, repair.OpSetDuration, actions[0].Op)
	require.Equal(t, int64(1), actions[0].ActivityID)
	require.Equal(t, 30, actions[0].NewDuration, "first ends where second starts")
}

func TestResolveBothIdleTreatedAsContainmentOrMerge(t *testing.T) {
	// Two idle records of the same app fall through to the same-app merge.
	pair := repair.OverlapPair{
		First:  side(1, "idle", 0, 60, true),
		Second: side(2, "idle", 30, 60, true),
	}
	actions := repair.Resolve(pair)
	require.Len(t, actions, 2)
	require.Equal(t, repair.OpSetDuration, actions[0].Op)
}

func TestCleanupDryRunPlansWithoutWriting(t *testing.T) {
	repo := new(mocks.RepairRepository)
	svc := repair.NewService(repo, nil)

	pairs := []repair.OverlapPair{
		{First: side(1, "code", 0, 60, false), Second: side(2, "code", 30, 60, false)},
		{First: side(3, "idle", 200, 60, true), Second: side(4, "code", 230, 60, false)},
	}
	repo.On("FindOverlapPairs", mock.Anything).Return(pairs, nil)

	actions, err := svc.Cleanup(context.Background(), true)
	require.NoError(t, err)
	require.Len(t, actions, 3)

	repo.AssertNotCalled(t, "SetDuration", mock.Anything, mock.Anything, mock.Anything)
	repo.AssertNotCalled(t, "Delete", mock.Anything, mock.Anything)
}

func TestCleanupAppliesUntilNoOverlapsRemain(t *testing.T) {
	repo := new(mocks.RepairRepository)
	svc := repair.NewService(repo, nil)

	pair := repair.OverlapPair{
		First:  side(1, "code", 0, 60, false),
		Second: side(2, "chrome", 30, 60, false),
	}
	repo.On("FindOverlapPairs", mock.Anything).Return([]repair.OverlapPair{pair}, nil).Once()
	repo.On("SetDuration", mock.Anything, int64(1), 30).Return(nil).Once()
	repo.On("FindOverlapPairs", mock.Anything).Return(nil, nil).Once()

	actions, err := svc.Cleanup(context.Background(), false)
	require.NoError(t, err)
	require.Len(t, actions, 1)
	repo.AssertExpectations(t)
}
