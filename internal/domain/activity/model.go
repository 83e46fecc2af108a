package activity

import "time"

// Activity is a stored, timestamped record of app/window usage with a
// duration. The stored set is kept free of temporal overlap by the
// write-time resolver in the store.
type Activity struct {
	ID          int64     `json:"id"`
	AppName     string    `json:"app_name"`
	WindowTitle string    `json:"window_title"`
	Timestamp   time.Time `json:"timestamp"`
	Duration    int       `json:"duration"` // seconds
	IsIdle      bool      `json:"is_idle"`
	ProcessPath *string   `json:"process_path,omitempty"`
	ProjectID   *int64    `json:"project_id,omitempty"`
}

// EndTime returns the instant the activity ends.
func (a Activity) EndTime() time.Time {
	return a.Timestamp.Add(time.Duration(a.Duration) * time.Second)
}

// IsAssigned reports whether the activity belongs to a project.
func (a Activity) IsAssigned() bool {
	return a.ProjectID != nil
}

// SaveRequest describes a new activity to store. Duration is derived from
// the start and end instants in whole seconds.
type SaveRequest struct {
	AppName     string
	WindowTitle string
	Start       time.Time
	End         time.Time
	IsIdle      bool
	ProcessPath *string
}
