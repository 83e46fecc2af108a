package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/rvoss/chronotrack/internal/domain/activity"
	"github.com/rvoss/chronotrack/internal/repository"
)

// ActivityRepository implements activity persistence with write-time overlap
// resolution.
type ActivityRepository struct {
	db *DB
}

// NewActivityRepository creates a new ActivityRepository.
func NewActivityRepository(db *DB) *ActivityRepository {
	return &ActivityRepository{db: db}
}

// Save inserts a new activity, first truncating or deleting every stored
// activity that would overlap it. The whole find-overlaps, truncate/delete,
// insert sequence runs under the write lock in a single transaction so
// readers never observe a partially resolved overlap.
//
// Resolution is deliberately asymmetric: only activities starting before the
// new interval's end are scanned (timestamp < end AND timestamp + duration >
// start), and survivors are truncated to end exactly where the new activity
// starts. Activities arrive from a single linear polling stream, so the
// newest observation wins over whatever it collides with. This is not a
// general interval-intersection resolver and must not become one.
//
// An insert hitting the duplicate index is dropped as an idempotent no-op:
// 0 is returned and no error is raised, since duplicate polling samples are
// expected.
func (r *ActivityRepository) Save(ctx context.Context, req activity.SaveRequest) (int64, error) {
	duration := int(req.End.Sub(req.Start).Seconds())
	start := req.Start.Unix()
	end := req.End.Unix()

	r.db.writeMu.Lock()
	defer r.db.writeMu.Unlock()

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	rows, err := tx.QueryContext(ctx,
		`SELECT id, timestamp FROM activities
		 WHERE timestamp < ? AND timestamp + duration > ?`,
		end, start,
	)
	if err != nil {
		return 0, fmt.Errorf("failed to find overlaps: %w", err)
	}

	type overlap struct {
		id    int64
		start int64
	}
	var overlaps []overlap
	for rows.Next() {
		var o overlap
		if err := rows.Scan(&o.id, &o.start); err != nil {
			rows.Close()
			return 0, fmt.Errorf("failed to scan overlap: %w", err)
		}
		overlaps = append(overlaps, o)
	}
	if err := rows.Err(); err != nil {
		rows.Close()
		return 0, fmt.Errorf("error iterating overlaps: %w", err)
	}
	rows.Close()

	for _, o := range overlaps {
		newDuration := start - o.start
		if newDuration > 0 {
			_, err = tx.ExecContext(ctx,
				`UPDATE activities SET duration = ? WHERE id = ?`, newDuration, o.id)
		} else {
			_, err = tx.ExecContext(ctx,
				`DELETE FROM activities WHERE id = ?`, o.id)
		}
		if err != nil {
			return 0, fmt.Errorf("failed to resolve overlap with activity %d: %w", o.id, err)
		}
	}

	result, err := tx.ExecContext(ctx,
		`INSERT INTO activities (timestamp, app_name, window_title, duration, is_idle, process_path)
		 VALUES (?, ?, ?, ?, ?, ?)`,
		start, req.AppName, req.WindowTitle, duration, req.IsIdle, req.ProcessPath,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return 0, nil
		}
		return 0, fmt.Errorf("failed to insert activity: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("failed to get inserted id: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("failed to commit: %w", err)
	}

	return id, nil
}

// List returns activities matching the options, ordered by timestamp
// descending. Range bounds are inclusive.
func (r *ActivityRepository) List(ctx context.Context, opts activity.ListOptions) ([]activity.Activity, error) {
	query := `SELECT id, timestamp, app_name, window_title, duration, is_idle, process_path, project_id
		FROM activities`

	var conditions []string
	var args []any

	if opts.Start != nil {
		conditions = append(conditions, "timestamp >= ?")
		args = append(args, opts.Start.Unix())
	}
	if opts.End != nil {
		conditions = append(conditions, "timestamp <= ?")
		args = append(args, opts.End.Unix())
	}
	if opts.ProjectID != nil {
		conditions = append(conditions, "project_id = ?")
		args = append(args, *opts.ProjectID)
	}

	if len(conditions) > 0 {
		query += " WHERE " + strings.Join(conditions, " AND ")
	}
	query += " ORDER BY timestamp DESC"

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list activities: %w", err)
	}
	defer rows.Close()

	var activities []activity.Activity
	for rows.Next() {
		act, err := scanActivity(rows)
		if err != nil {
			return nil, err
		}
		activities = append(activities, act)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating activity rows: %w", err)
	}

	return activities, nil
}

// AssignProject assigns one activity to a project.
func (r *ActivityRepository) AssignProject(ctx context.Context, activityID, projectID int64) error {
	r.db.writeMu.Lock()
	defer r.db.writeMu.Unlock()

	result, err := r.db.ExecContext(ctx,
		`UPDATE activities SET project_id = ? WHERE id = ?`, projectID, activityID)
	if err != nil {
		if isForeignKeyViolation(err) {
			return repository.ErrForeignKeyViolation
		}
		return fmt.Errorf("failed to assign activity: %w", err)
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

// AssignByTimeRange assigns every activity of one app whose timestamp falls
// in [start, end] to a project, and stamps the project's last_used. Merged
// timeline blocks are addressed this way since they have no id of their own.
func (r *ActivityRepository) AssignByTimeRange(ctx context.Context, start, end time.Time, appName string, projectID int64) (int64, error) {
	r.db.writeMu.Lock()
	defer r.db.writeMu.Unlock()

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	result, err := tx.ExecContext(ctx,
		`UPDATE activities SET project_id = ?
		 WHERE timestamp >= ? AND timestamp <= ? AND app_name = ?`,
		projectID, start.Unix(), end.Unix(), appName,
	)
	if err != nil {
		if isForeignKeyViolation(err) {
			return 0, repository.ErrForeignKeyViolation
		}
		return 0, fmt.Errorf("failed to assign activities: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("failed to get rows affected: %w", err)
	}

	if _, err := tx.ExecContext(ctx,
		`UPDATE projects SET last_used = ? WHERE id = ?`, time.Now().UTC(), projectID); err != nil {
		return 0, fmt.Errorf("failed to touch project: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("failed to commit: %w", err)
	}

	return affected, nil
}

// DeleteByTimeRange deletes every activity of one app whose timestamp falls
// in [start, end].
func (r *ActivityRepository) DeleteByTimeRange(ctx context.Context, start, end time.Time, appName string) (int64, error) {
	r.db.writeMu.Lock()
	defer r.db.writeMu.Unlock()

	result, err := r.db.ExecContext(ctx,
		`DELETE FROM activities
		 WHERE timestamp >= ? AND timestamp <= ? AND app_name = ?`,
		start.Unix(), end.Unix(), appName,
	)
	if err != nil {
		return 0, fmt.Errorf("failed to delete activities: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("failed to get rows affected: %w", err)
	}
	return affected, nil
}

func scanActivity(rows *sql.Rows) (activity.Activity, error) {
	var act activity.Activity
	var ts int64
	var processPath sql.NullString
	var projectID sql.NullInt64

	if err := rows.Scan(
		&act.ID,
		&ts,
		&act.AppName,
		&act.WindowTitle,
		&act.Duration,
		&act.IsIdle,
		&processPath,
		&projectID,
	); err != nil {
		return activity.Activity{}, fmt.Errorf("failed to scan activity: %w", err)
	}

	act.Timestamp = time.Unix(ts, 0)
	if processPath.Valid {
		act.ProcessPath = &processPath.String
	}
	if projectID.Valid {
		act.ProjectID = &projectID.Int64
	}
	return act, nil
}
