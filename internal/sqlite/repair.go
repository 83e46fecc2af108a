package sqlite

import (
	"context"
	"fmt"
	"time"

	"github.com/rvoss/chronotrack/internal/domain/repair"
	"github.com/rvoss/chronotrack/internal/repository"
)

// RepairRepository implements the store access for batch overlap cleanup.
type RepairRepository struct {
	db *DB
}

// NewRepairRepository creates a new RepairRepository.
func NewRepairRepository(db *DB) *RepairRepository {
	return &RepairRepository{db: db}
}

// FindOverlapPairs returns every pair of activities whose intervals overlap,
// earlier side first, ordered by start time.
func (r *RepairRepository) FindOverlapPairs(ctx context.Context) ([]repair.OverlapPair, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT
			a1.id, a1.timestamp, a1.duration, a1.app_name, a1.is_idle,
			a2.id, a2.timestamp, a2.duration, a2.app_name, a2.is_idle
		FROM activities a1
		JOIN activities a2 ON a1.id < a2.id
		WHERE a1.timestamp <= a2.timestamp
		  AND a1.timestamp + a1.duration > a2.timestamp
		ORDER BY a1.timestamp`)
	if err != nil {
		return nil, fmt.Errorf("failed to find overlaps: %w", err)
	}
	defer rows.Close()

	var pairs []repair.OverlapPair
	for rows.Next() {
		var pair repair.OverlapPair
		var ts1, ts2 int64
		if err := rows.Scan(
			&pair.First.ID, &ts1, &pair.First.Duration, &pair.First.AppName, &pair.First.IsIdle,
			&pair.Second.ID, &ts2, &pair.Second.Duration, &pair.Second.AppName, &pair.Second.IsIdle,
		); err != nil {
			return nil, fmt.Errorf("failed to scan overlap pair: %w", err)
		}
		pair.First.Start = time.Unix(ts1, 0)
		pair.Second.Start = time.Unix(ts2, 0)
		pairs = append(pairs, pair)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating overlap rows: %w", err)
	}
	return pairs, nil
}

// SetDuration updates one activity's duration.
func (r *RepairRepository) SetDuration(ctx context.Context, activityID int64, seconds int) error {
	r.db.writeMu.Lock()
	defer r.db.writeMu.Unlock()

	result, err := r.db.ExecContext(ctx,
		`UPDATE activities SET duration = ? WHERE id = ?`, seconds, activityID)
	if err != nil {
		return fmt.Errorf("failed to update duration: %w", err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if affected == 0 {
		return repository.ErrNotFound
	}
	return nil
}

// Delete removes one activity.
func (r *RepairRepository) Delete(ctx context.Context, activityID int64) error {
	r.db.writeMu.Lock()
	defer r.db.writeMu.Unlock()

	result, err := r.db.ExecContext(ctx,
		`DELETE FROM activities WHERE id = ?`, activityID)
	if err != nil {
		return fmt.Errorf("failed to delete activity: %w", err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if affected == 0 {
		return repository.ErrNotFound
	}
	return nil
}
