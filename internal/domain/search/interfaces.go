package search

import (
	"context"

	"github.com/rpggio/ccsearch/internal/domain/activity"
	"github.com/rpggio/ccsearch/internal/domain/project"
)

// ProjectSource selects the projects to search.
type ProjectSource interface {
	Select(ctx context.Context, name string) ([]project.Project, error)
}

// ActivityRepository persists activity entries.
type ActivityRepository interface {
	Log(ctx context.Context, entry *activity.ActivityEntry) error
}
