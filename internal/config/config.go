package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"
)

// Config defines application configuration.
type Config struct {
	DB       DBConfig       `yaml:"db"`
	Log      LogConfig      `yaml:"log"`
	Timeline TimelineConfig `yaml:"timeline"`
	Assign   AssignConfig   `yaml:"assign"`
	Ignore   IgnoreConfig   `yaml:"ignore"`
}

type DBConfig struct {
	Path string `yaml:"path"`
}

type LogConfig struct {
	Level string `yaml:"level"`
}

// TimelineConfig holds merge thresholds in seconds.
type TimelineConfig struct {
	MinActivityDuration int `yaml:"min_activity_duration"`
	MergeGap            int `yaml:"merge_gap"`
	ProjectMergeGap     int `yaml:"project_merge_gap"`
}

// AssignConfig holds defaults for the smart project assigner.
type AssignConfig struct {
	MinConfidence     float64 `yaml:"min_confidence"`
	LearnDays         int     `yaml:"learn_days"`
	ReviewMinDuration int     `yaml:"review_min_duration"`
}

// IgnoreConfig lists processes and window titles excluded from timelines
// and reports. System shells and the tracker itself produce no useful signal.
type IgnoreConfig struct {
	Processes []string `yaml:"processes"`
	Titles    []string `yaml:"titles"`
}

// ShouldIgnore reports whether an activity from the given process and window
// title should be excluded. Process matching is case-insensitive, title
// matching is exact.
func (c IgnoreConfig) ShouldIgnore(appName, windowTitle string) bool {
	for _, p := range c.Processes {
		if strings.EqualFold(p, appName) {
			return true
		}
	}
	for _, t := range c.Titles {
		if t == windowTitle {
			return true
		}
	}
	return false
}

func defaultIgnoredProcesses() []string {
	return []string{
		"explorer.exe",
		"SearchHost.exe",
		"ShellExperienceHost.exe",
		"ApplicationFrameHost.exe",
		"SystemSettings.exe",
		"Taskmgr.exe",
		"dwm.exe",
		"SearchUI.exe",
		"StartMenuExperienceHost.exe",
		"LockApp.exe",
		"TextInputHost.exe",
		"SecurityHealthSystray.exe",
		"RuntimeBroker.exe",
		"sihost.exe",
		"ctfmon.exe",
	}
}

func defaultIgnoredTitles() []string {
	return []string{
		"",
		"Program Manager",
		"Task Switching",
		"Windows Shell Experience Host",
	}
}

// Load reads configuration from an optional YAML file and environment variables.
func Load() (Config, error) {
	cfg := Config{
		DB: DBConfig{
			Path: defaultDBPath(),
		},
		Log: LogConfig{
			Level: "info",
		},
		Timeline: TimelineConfig{
			MinActivityDuration: 10,
			MergeGap:            60,
			ProjectMergeGap:     180,
		},
		Assign: AssignConfig{
			MinConfidence:     0.7,
			LearnDays:         90,
			ReviewMinDuration: 60,
		},
		Ignore: IgnoreConfig{
			Processes: defaultIgnoredProcesses(),
			Titles:    defaultIgnoredTitles(),
		},
	}

	if path := os.Getenv("CHRONO_CONFIG_PATH"); path != "" {
		if err := loadFromFile(path, &cfg); err != nil {
			return Config{}, err
		}
	}

	if dbPath := os.Getenv("CHRONO_DB_PATH"); dbPath != "" {
		cfg.DB.Path = dbPath
	}
	if level := os.Getenv("CHRONO_LOG_LEVEL"); level != "" {
		cfg.Log.Level = level
	}
	if confStr := os.Getenv("CHRONO_MIN_CONFIDENCE"); confStr != "" {
		conf, err := strconv.ParseFloat(confStr, 64)
		if err != nil {
			return Config{}, fmt.Errorf("invalid CHRONO_MIN_CONFIDENCE: %w", err)
		}
		cfg.Assign.MinConfidence = conf
	}

	return cfg, nil
}

func loadFromFile(path string, cfg *Config) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read config file: %w", err)
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return fmt.Errorf("parse config file: %w", err)
	}
	return nil
}

func defaultDBPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return "chronotrack.db"
	}
	return filepath.Join(home, ".chronotrack", "chronotrack.db")
}
