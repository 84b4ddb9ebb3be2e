package activity

import (
	"fmt"
	"time"
)

// ActivityType represents the type of activity event
type ActivityType string

const (
	TypeProjectsLoaded  ActivityType = "projects_loaded"
	TypeFileDropped     ActivityType = "file_dropped"
	TypeSearchPerformed ActivityType = "search_performed"
	TypeRecordViewed    ActivityType = "record_viewed"
)

// ParseActivityType returns the ActivityType named by s.
func ParseActivityType(s string) (ActivityType, error) {
	switch t := ActivityType(s); t {
	case TypeProjectsLoaded, TypeFileDropped, TypeSearchPerformed, TypeRecordViewed:
		return t, nil
	}
	return "", fmt.Errorf("%w: unknown activity type %q", ErrInvalidInput, s)
}

// ActivityEntry represents an event in the activity log
type ActivityEntry struct {
	ID           int64        `json:"id"`
	ActivityType ActivityType `json:"type"`
	Project      string       `json:"project,omitempty"`
	SourcePath   *string      `json:"source_path,omitempty"`
	Query        *string      `json:"query,omitempty"`
	Summary      string       `json:"summary"`
	Details      string       `json:"details,omitempty"` // JSON string
	ItemCount    int          `json:"item_count"`
	CreatedAt    time.Time    `json:"created_at"`
}
