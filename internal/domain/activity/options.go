package activity

import "time"

// ListOptions provides filtering options for listing activities. Start and
// End are inclusive bounds on the activity timestamp. Results are ordered by
// timestamp descending.
type ListOptions struct {
	Start     *time.Time
	End       *time.Time
	ProjectID *int64
}
