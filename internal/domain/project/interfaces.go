package project

import (
	"context"

	"github.com/rpggio/ccsearch/internal/domain/activity"
)

// Source produces snapshots of the log tree.
type Source interface {
	Scan(ctx context.Context, limit int) (*Snapshot, error)
}

// ActivityRepository persists activity entries.
type ActivityRepository interface {
	Log(ctx context.Context, entry *activity.ActivityEntry) error
}
