package project

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"strings"
	"sync"
	"sync/atomic"

	"github.com/rpggio/ccsearch/internal/domain/activity"
	"github.com/rpggio/ccsearch/internal/domain/record"
)

// Service owns the current project snapshot.
type Service struct {
	source     Source
	limit      int
	activities ActivityRepository
	logger     *slog.Logger

	loadMu  sync.Mutex
	current atomic.Pointer[Snapshot]
}

// NewService creates a new project service that loads at most limit files
// per snapshot.
func NewService(source Source, limit int, activities ActivityRepository, logger *slog.Logger) *Service {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Service{source: source, limit: limit, activities: activities, logger: logger}
}

// Load scans the log tree and publishes the result as the current snapshot.
// Concurrent calls are serialized; readers keep seeing the previous snapshot
// until the new one is complete.
func (s *Service) Load(ctx context.Context) (*Snapshot, error) {
	return s.load(ctx, true)
}

func (s *Service) load(ctx context.Context, force bool) (*Snapshot, error) {
	s.loadMu.Lock()
	defer s.loadMu.Unlock()

	if !force {
		if snap := s.current.Load(); snap != nil {
			return snap, nil
		}
	}

	snap, err := s.source.Scan(ctx, s.limit)
	if err != nil {
		return nil, fmt.Errorf("loading projects: %w", err)
	}
	s.current.Store(snap)

	failed := snap.Failed()
	s.logger.Info("projects loaded",
		"root", snap.Root,
		"projects", len(snap.Projects),
		"records", snap.RecordCount(),
		"failed", len(failed),
	)
	s.logLoad(ctx, snap, failed)
	return snap, nil
}

// Current returns the last published snapshot, or nil before the first Load.
func (s *Service) Current() *Snapshot {
	return s.current.Load()
}

// Snapshot returns the current snapshot, loading one if none exists yet.
func (s *Service) Snapshot(ctx context.Context) (*Snapshot, error) {
	if snap := s.current.Load(); snap != nil {
		return snap, nil
	}
	return s.load(ctx, false)
}

// List returns summaries of the current projects. A non-empty filter keeps
// only projects whose display name fuzzily matches it, best match first.
func (s *Service) List(ctx context.Context, filter string) ([]ProjectSummary, error) {
	snap, err := s.Snapshot(ctx)
	if err != nil {
		return nil, err
	}
	projects := FilterByName(snap.Projects, filter)
	out := make([]ProjectSummary, 0, len(projects))
	for _, p := range projects {
		out = append(out, p.Summary())
	}
	return out, nil
}

// Select returns the projects whose display name or source path equals name,
// in snapshot order. An empty name selects every project.
func (s *Service) Select(ctx context.Context, name string) ([]Project, error) {
	snap, err := s.Snapshot(ctx)
	if err != nil {
		return nil, err
	}
	name = strings.TrimSpace(name)
	if name == "" {
		return snap.Projects, nil
	}
	var out []Project
	for _, p := range snap.Projects {
		if p.DisplayName == name || p.SourcePath == name {
			out = append(out, p)
		}
	}
	if len(out) == 0 {
		return nil, fmt.Errorf("%w: %s", ErrProjectNotFound, name)
	}
	return out, nil
}

// FindRecord looks up a record by id within the projects selected by name.
func (s *Service) FindRecord(ctx context.Context, name, id string) (Project, record.Record, error) {
	if strings.TrimSpace(id) == "" {
		return Project{}, nil, ErrInvalidInput
	}
	projects, err := s.Select(ctx, name)
	if err != nil {
		return Project{}, nil, err
	}
	for _, p := range projects {
		for _, r := range p.Records {
			if record.IDOf(r) == id {
				s.logActivity(ctx, &activity.ActivityEntry{
					ActivityType: activity.TypeRecordViewed,
					Project:      p.DisplayName,
					SourcePath:   &p.SourcePath,
					Summary:      fmt.Sprintf("Viewed %s record %s", r.Kind(), id),
					ItemCount:    1,
				})
				return p, r, nil
			}
		}
	}
	return Project{}, nil, fmt.Errorf("%w: %s", ErrRecordNotFound, id)
}

func (s *Service) logLoad(ctx context.Context, snap *Snapshot, failed []Project) {
	if s.activities == nil {
		return
	}
	failedPaths := make([]string, 0, len(failed))
	for _, p := range failed {
		failedPaths = append(failedPaths, p.SourcePath)
		s.logActivity(ctx, &activity.ActivityEntry{
			ActivityType: activity.TypeFileDropped,
			Project:      p.DisplayName,
			SourcePath:   &p.SourcePath,
			Summary:      fmt.Sprintf("Could not read %s", p.SourcePath),
			Details:      encodeDetails(map[string]string{"error": p.LoadErr.Error()}),
		})
	}
	s.logActivity(ctx, &activity.ActivityEntry{
		ActivityType: activity.TypeProjectsLoaded,
		Summary:      fmt.Sprintf("Loaded %d of %d log files", len(snap.Projects), snap.Candidates),
		ItemCount:    len(snap.Projects),
		Details: encodeDetails(map[string]any{
			"root":       snap.Root,
			"limit":      snap.Limit,
			"candidates": snap.Candidates,
			"records":    snap.RecordCount(),
			"failed":     failedPaths,
		}),
	})
}

func (s *Service) logActivity(ctx context.Context, entry *activity.ActivityEntry) {
	if s.activities == nil {
		return
	}
	if err := s.activities.Log(ctx, entry); err != nil {
		s.logger.Warn("failed to log activity", "type", entry.ActivityType, "error", err)
	}
}

func encodeDetails(v any) string {
	raw, err := json.Marshal(v)
	if err != nil {
		return ""
	}
	return string(raw)
}
