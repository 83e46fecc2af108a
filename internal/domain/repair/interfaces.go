package repair

import "context"

// Repository provides the store access the batch repair needs.
type Repository interface {
	// FindOverlapPairs returns all pairs of stored activities whose
	// intervals overlap, earlier activity first, ordered by start time.
	FindOverlapPairs(ctx context.Context) ([]OverlapPair, error)
	SetDuration(ctx context.Context, activityID int64, seconds int) error
	Delete(ctx context.Context, activityID int64) error
}
