package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/rvoss/chronotrack/internal/config"
	"github.com/rvoss/chronotrack/internal/domain/activity"
	"github.com/rvoss/chronotrack/internal/domain/assign"
	"github.com/rvoss/chronotrack/internal/domain/project"
	"github.com/rvoss/chronotrack/internal/domain/repair"
	"github.com/rvoss/chronotrack/internal/sqlite"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

// app wires configuration, storage and services for one command invocation.
type app struct {
	cfg    config.Config
	logger *slog.Logger
	db     *sqlite.DB

	activities *activity.Service
	projects   *project.Service
	assigner   *assign.Service
	repairer   *repair.Service
	settings   *sqlite.SettingsRepository
}

func newApp() (*app, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: parseLogLevel(cfg.Log.Level),
	}))

	db, err := sqlite.New(cfg.DB.Path)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	if err := db.RunMigrations(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to run migrations: %w", err)
	}

	activityRepo := sqlite.NewActivityRepository(db)
	projectRepo := sqlite.NewProjectRepository(db)
	repairRepo := sqlite.NewRepairRepository(db)
	settingsRepo := sqlite.NewSettingsRepository(db)

	return &app{
		cfg:        cfg,
		logger:     logger,
		db:         db,
		activities: activity.NewService(activityRepo, projectRepo, logger),
		projects:   project.NewService(projectRepo, logger),
		assigner:   assign.NewService(activityRepo, projectRepo, cfg.Assign.LearnDays, logger),
		repairer:   repair.NewService(repairRepo, logger),
		settings:   settingsRepo,
	}, nil
}

func (a *app) Close() {
	if a.db != nil {
		a.db.Close()
	}
}

func parseLogLevel(level string) slog.Level {
	switch level {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
