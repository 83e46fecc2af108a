package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/rvoss/chronotrack/internal/repository"
)

// SettingsRepository implements the opaque key-value settings store used to
// persist merge thresholds and other knobs across sessions.
type SettingsRepository struct {
	db *DB
}

// NewSettingsRepository creates a new SettingsRepository.
func NewSettingsRepository(db *DB) *SettingsRepository {
	return &SettingsRepository{db: db}
}

// Get returns the value for a key, or repository.ErrNotFound.
func (r *SettingsRepository) Get(ctx context.Context, key string) (string, error) {
	var value string
	err := r.db.QueryRowContext(ctx,
		`SELECT value FROM settings WHERE key = ?`, key).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return "", repository.ErrNotFound
	}
	if err != nil {
		return "", fmt.Errorf("failed to get setting %q: %w", key, err)
	}
	return value, nil
}

// GetDefault returns the value for a key, or the given default when unset.
func (r *SettingsRepository) GetDefault(ctx context.Context, key, def string) (string, error) {
	value, err := r.Get(ctx, key)
	if errors.Is(err, repository.ErrNotFound) {
		return def, nil
	}
	return value, err
}

// Set stores a value, replacing any previous one.
func (r *SettingsRepository) Set(ctx context.Context, key, value string) error {
	r.db.writeMu.Lock()
	defer r.db.writeMu.Unlock()

	_, err := r.db.ExecContext(ctx,
		`INSERT INTO settings (key, value) VALUES (?, ?)
		 ON CONFLICT(key) DO UPDATE SET value = excluded.value`,
		key, value,
	)
	if err != nil {
		return fmt.Errorf("failed to set setting %q: %w", key, err)
	}
	return nil
}
