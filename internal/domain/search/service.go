package search

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"strings"

	"github.com/rpggio/ccsearch/internal/domain/activity"
)

// Service runs searches against the current project snapshot.
type Service struct {
	projects   ProjectSource
	activities ActivityRepository
	logger     *slog.Logger
}

// NewService creates a new search service.
func NewService(projects ProjectSource, activities ActivityRepository, logger *slog.Logger) *Service {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Service{projects: projects, activities: activities, logger: logger}
}

// Search runs req against the selected projects. A blank query is rejected
// with ErrEmptyQuery.
func (s *Service) Search(ctx context.Context, req Request) (*Result, error) {
	if strings.TrimSpace(req.Query) == "" {
		return nil, ErrEmptyQuery
	}
	if req.MaxPerProject < 0 {
		return nil, fmt.Errorf("%w: max per project must not be negative", ErrInvalidInput)
	}

	projects, err := s.projects.Select(ctx, req.Project)
	if err != nil {
		return nil, fmt.Errorf("selecting projects: %w", err)
	}

	groups := Search(projects, req.Query)
	result := &Result{
		Query:    req.Query,
		Groups:   make([]GroupResult, 0, len(groups)),
		Projects: len(projects),
	}
	for _, g := range groups {
		total := len(g.Records)
		result.TotalMatches += total
		if req.MaxPerProject > 0 && total > req.MaxPerProject {
			g.Records = g.Records[:req.MaxPerProject]
		}
		result.Groups = append(result.Groups, GroupResult{Group: g, Total: total})
	}

	s.logger.Debug("search complete",
		"query", req.Query,
		"project", req.Project,
		"groups", len(result.Groups),
		"matches", result.TotalMatches,
	)
	s.logSearch(ctx, req, result)
	return result, nil
}

func (s *Service) logSearch(ctx context.Context, req Request, result *Result) {
	if s.activities == nil {
		return
	}
	details, _ := json.Marshal(map[string]any{
		"projects_searched": result.Projects,
		"groups":            len(result.Groups),
		"max_per_project":   req.MaxPerProject,
	})
	entry := &activity.ActivityEntry{
		ActivityType: activity.TypeSearchPerformed,
		Project:      req.Project,
		Query:        &req.Query,
		Summary:      fmt.Sprintf("Found %d records in %d projects", result.TotalMatches, len(result.Groups)),
		Details:      string(details),
		ItemCount:    result.TotalMatches,
	}
	if err := s.activities.Log(ctx, entry); err != nil {
		s.logger.Warn("failed to log activity", "type", entry.ActivityType, "error", err)
	}
}
