package sqlite

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	_ "modernc.org/sqlite"
)

// DB wraps a SQLite database connection. The mutex serializes mutating
// operations so that multi-step sequences such as overlap resolution are
// atomic with respect to other writers; reads run without it.
type DB struct {
	*sql.DB
	writeMu sync.Mutex
}

// New creates a new SQLite database connection, creating the parent
// directory when needed.
func New(dataSourceName string) (*DB, error) {
	if dataSourceName != ":memory:" {
		if dir := filepath.Dir(dataSourceName); dir != "." {
			if err := os.MkdirAll(dir, 0o755); err != nil {
				return nil, fmt.Errorf("failed to create database directory: %w", err)
			}
		}
	}

	db, err := sql.Open("sqlite", dataSourceName)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	pragmas := []string{
		"PRAGMA foreign_keys = ON",
		"PRAGMA journal_mode = WAL",
		"PRAGMA busy_timeout = 5000",
	}
	for _, pragma := range pragmas {
		if _, err := db.Exec(pragma); err != nil {
			db.Close()
			return nil, fmt.Errorf("failed to exec %q: %w", pragma, err)
		}
	}

	return &DB{DB: db}, nil
}

// RunMigrations creates the schema and seeds the sentinel project.
func (db *DB) RunMigrations() error {
	migration := `
-- Projects table
CREATE TABLE IF NOT EXISTS projects (
    id INTEGER PRIMARY KEY AUTOINCREMENT,
    name TEXT NOT NULL UNIQUE,
    color TEXT NOT NULL DEFAULT '#3498db',
    created_at TIMESTAMP NOT NULL,
    last_used TIMESTAMP
);

-- Activities table; timestamp is Unix seconds (activities carry second
-- precision)
CREATE TABLE IF NOT EXISTS activities (
    id INTEGER PRIMARY KEY AUTOINCREMENT,
    timestamp INTEGER NOT NULL,
    app_name TEXT NOT NULL,
    window_title TEXT NOT NULL DEFAULT '',
    duration INTEGER NOT NULL,
    is_idle INTEGER NOT NULL DEFAULT 0,
    process_path TEXT,
    project_id INTEGER REFERENCES projects(id) ON DELETE SET NULL
);
CREATE INDEX IF NOT EXISTS idx_activities_timestamp ON activities(timestamp);
CREATE INDEX IF NOT EXISTS idx_activities_project ON activities(project_id);

-- Duplicate polling samples are dropped via this index
CREATE UNIQUE INDEX IF NOT EXISTS idx_unique_activity
    ON activities(timestamp, app_name, window_title, duration);

-- Settings table
CREATE TABLE IF NOT EXISTS settings (
    key TEXT PRIMARY KEY,
    value TEXT NOT NULL
);
`

	if _, err := db.Exec(migration); err != nil {
		return fmt.Errorf("failed to run migrations: %w", err)
	}

	return db.ensureSocialMediaProject()
}

// ensureSocialMediaProject creates the "Social Media" sentinel project once.
func (db *DB) ensureSocialMediaProject() error {
	_, err := db.Exec(
		`INSERT INTO projects (name, color, created_at)
		 SELECT ?, ?, ? WHERE NOT EXISTS (SELECT 1 FROM projects WHERE name = ?)`,
		"Social Media", "#e74c3c", time.Now().UTC(), "Social Media",
	)
	if err != nil {
		return fmt.Errorf("failed to seed sentinel project: %w", err)
	}
	return nil
}
