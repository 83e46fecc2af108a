package project

import "time"

// SocialMediaName is the sentinel project created at store initialization.
// Activities matching a known social platform are routed to it automatically.
const SocialMediaName = "Social Media"

// DefaultColor is used when a project is created without an explicit color.
const DefaultColor = "#3498db"

// Project represents a user-defined category that activities are assigned to
// for time reporting.
type Project struct {
	ID        int64      `json:"id"`
	Name      string     `json:"name"`
	Color     string     `json:"color"`
	CreatedAt time.Time  `json:"created_at"`
	LastUsed  *time.Time `json:"last_used,omitempty"`
}
