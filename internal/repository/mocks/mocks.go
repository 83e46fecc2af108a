package mocks

import (
	"context"
	"time"

	"github.com/rvoss/chronotrack/internal/domain/activity"
	"github.com/rvoss/chronotrack/internal/domain/project"
	"github.com/rvoss/chronotrack/internal/domain/repair"
	"github.com/stretchr/testify/mock"
)

// ActivityRepository is a mock for activity.Repository.
type ActivityRepository struct {
	mock.Mock
}

func (m *ActivityRepository) Save(ctx context.Context, req activity.SaveRequest) (int64, error) {
	args := m.Called(ctx, req)
	return args.Get(0).(int64), args.Error(1)
}

func (m *ActivityRepository) List(ctx context.Context, opts activity.ListOptions) ([]activity.Activity, error) {
	args := m.Called(ctx, opts)
	if list, ok := args.Get(0).([]activity.Activity); ok {
		return list, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *ActivityRepository) AssignProject(ctx context.Context, activityID, projectID int64) error {
	args := m.Called(ctx, activityID, projectID)
	return args.Error(0)
}

func (m *ActivityRepository) AssignByTimeRange(ctx context.Context, start, end time.Time, appName string, projectID int64) (int64, error) {
	args := m.Called(ctx, start, end, appName, projectID)
	return args.Get(0).(int64), args.Error(1)
}

func (m *ActivityRepository) DeleteByTimeRange(ctx context.Context, start, end time.Time, appName string) (int64, error) {
	args := m.Called(ctx, start, end, appName)
	return args.Get(0).(int64), args.Error(1)
}

// ProjectRepository is a mock for project.Repository.
type ProjectRepository struct {
	mock.Mock
}

func (m *ProjectRepository) Create(ctx context.Context, proj *project.Project) error {
	args := m.Called(ctx, proj)
	return args.Error(0)
}

func (m *ProjectRepository) Get(ctx context.Context, id int64) (*project.Project, error) {
	args := m.Called(ctx, id)
	if proj, ok := args.Get(0).(*project.Project); ok {
		return proj, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *ProjectRepository) GetByName(ctx context.Context, name string) (*project.Project, error) {
	args := m.Called(ctx, name)
	if proj, ok := args.Get(0).(*project.Project); ok {
		return proj, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *ProjectRepository) List(ctx context.Context) ([]project.Project, error) {
	args := m.Called(ctx)
	if list, ok := args.Get(0).([]project.Project); ok {
		return list, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *ProjectRepository) RecentlyUsed(ctx context.Context, limit int) ([]project.Project, error) {
	args := m.Called(ctx, limit)
	if list, ok := args.Get(0).([]project.Project); ok {
		return list, args.Error(1)
	}
	return nil, args.Error(1)
}

// RepairRepository is a mock for repair.Repository.
type RepairRepository struct {
	mock.Mock
}

func (m *RepairRepository) FindOverlapPairs(ctx context.Context) ([]repair.OverlapPair, error) {
	args := m.Called(ctx)
	if pairs, ok := args.Get(0).([]repair.OverlapPair); ok {
		return pairs, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *RepairRepository) SetDuration(ctx context.Context, activityID int64, seconds int) error {
	args := m.Called(ctx, activityID, seconds)
	return args.Error(0)
}

func (m *RepairRepository) Delete(ctx context.Context, activityID int64) error {
	args := m.Called(ctx, activityID)
	return args.Error(0)
}

// SettingsRepository is a mock for the key-value settings store.
type SettingsRepository struct {
	mock.Mock
}

func (m *SettingsRepository) Get(ctx context.Context, key string) (string, error) {
	args := m.Called(ctx, key)
	return args.String(0), args.Error(1)
}

func (m *SettingsRepository) Set(ctx context.Context, key, value string) error {
	args := m.Called(ctx, key, value)
	return args.Error(0)
}
