package mcp

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	sdkmcp "github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/rpggio/ccsearch/internal/domain/activity"
	"github.com/rpggio/ccsearch/internal/domain/project"
	"github.com/rpggio/ccsearch/internal/domain/record"
	"github.com/rpggio/ccsearch/internal/domain/search"
)

const (
	previewRunes  = 120
	snippetWindow = 60
)

func registerTools(server *sdkmcp.Server, svc Services) {
	// Projects
	sdkmcp.AddTool(server, &sdkmcp.Tool{
		Name:        "list_projects",
		Description: "List the loaded conversation logs, most recently modified first",
	}, func(ctx context.Context, _ *sdkmcp.CallToolRequest, in ListProjectsParams) (*sdkmcp.CallToolResult, ListProjectsResult, error) {
		snap, err := svc.Projects.Snapshot(ctx)
		if err != nil {
			return nil, ListProjectsResult{}, MapError(err)
		}
		summaries, err := svc.Projects.List(ctx, in.Name)
		if err != nil {
			return nil, ListProjectsResult{}, MapError(err)
		}
		out := ListProjectsResult{
			Root:     snap.Root,
			LoadedAt: formatTime(snap.LoadedAt),
			Projects: make([]ProjectItem, 0, len(summaries)),
		}
		for _, s := range summaries {
			out.Projects = append(out.Projects, projectItem(s))
		}
		return nil, out, nil
	})

	sdkmcp.AddTool(server, &sdkmcp.Tool{
		Name:        "reload_projects",
		Description: "Rescan the log directory and replace the loaded projects",
	}, func(ctx context.Context, _ *sdkmcp.CallToolRequest, _ ReloadProjectsParams) (*sdkmcp.CallToolResult, ReloadProjectsResult, error) {
		snap, err := svc.Projects.Load(ctx)
		if err != nil {
			return nil, ReloadProjectsResult{}, MapError(err)
		}
		out := ReloadProjectsResult{
			Root:       snap.Root,
			Candidates: snap.Candidates,
			Loaded:     len(snap.Projects),
			Records:    snap.RecordCount(),
			LoadedAt:   formatTime(snap.LoadedAt),
		}
		for _, p := range snap.Failed() {
			out.Failed = append(out.Failed, FailedFile{SourcePath: p.SourcePath, Error: p.LoadErr.Error()})
		}
		return nil, out, nil
	})

	// Records
	sdkmcp.AddTool(server, &sdkmcp.Tool{
		Name:        "search_records",
		Description: "Find records whose text contains the query, ignoring case, grouped by project",
	}, func(ctx context.Context, _ *sdkmcp.CallToolRequest, in SearchRecordsParams) (*sdkmcp.CallToolResult, SearchRecordsResult, error) {
		result, err := svc.Search.Search(ctx, search.Request{
			Query:         in.Query,
			Project:       in.Project,
			MaxPerProject: in.MaxPerProject,
		})
		if err != nil {
			return nil, SearchRecordsResult{}, MapError(err)
		}
		return nil, searchResult(result), nil
	})

	sdkmcp.AddTool(server, &sdkmcp.Tool{
		Name:        "get_record",
		Description: "Get one record by uuid with its text and its original log line shape",
	}, func(ctx context.Context, _ *sdkmcp.CallToolRequest, in GetRecordParams) (*sdkmcp.CallToolResult, GetRecordResult, error) {
		id, err := uuid.Parse(strings.TrimSpace(in.ID))
		if err != nil {
			return nil, GetRecordResult{}, invalidInput("id %q is not a uuid", in.ID)
		}
		p, rec, err := svc.Projects.FindRecord(ctx, in.Project, id.String())
		if err != nil {
			return nil, GetRecordResult{}, MapError(err)
		}
		raw, err := record.Encode(rec)
		if err != nil {
			return nil, GetRecordResult{}, MapError(err)
		}
		ts, _ := rec.Timestamp()
		fragments := rec.TextFragments()
		if fragments == nil {
			fragments = []string{}
		}
		return nil, GetRecordResult{
			Project:    p.DisplayName,
			SourcePath: p.SourcePath,
			Kind:       string(rec.Kind()),
			ID:         record.IDOf(rec),
			Timestamp:  ts,
			Fragments:  fragments,
			Raw:        string(raw),
		}, nil
	})

	// Activity
	sdkmcp.AddTool(server, &sdkmcp.Tool{
		Name:        "get_recent_activity",
		Description: "List recent loads, searches and record views, newest first",
	}, func(ctx context.Context, _ *sdkmcp.CallToolRequest, in GetRecentActivityParams) (*sdkmcp.CallToolResult, GetRecentActivityResult, error) {
		if in.Limit < 0 {
			return nil, GetRecentActivityResult{}, invalidInput("limit must not be negative")
		}
		opts := activity.ListActivityOptions{Project: in.Project, Limit: in.Limit}
		if in.Type != "" {
			typ, err := activity.ParseActivityType(in.Type)
			if err != nil {
				return nil, GetRecentActivityResult{}, MapError(err)
			}
			opts.ActivityType = &typ
		}
		entries, err := svc.Activity.GetRecentActivity(ctx, opts)
		if err != nil {
			return nil, GetRecentActivityResult{}, MapError(err)
		}
		out := GetRecentActivityResult{Activities: make([]ActivityItem, 0, len(entries))}
		for _, e := range entries {
			out.Activities = append(out.Activities, activityItem(e))
		}
		return nil, out, nil
	})
}

func projectItem(s project.ProjectSummary) ProjectItem {
	item := ProjectItem{
		DisplayName: s.DisplayName,
		SourcePath:  s.SourcePath,
		ModifiedAt:  formatTime(s.ModTime),
		RecordCount: s.RecordCount,
		LoadError:   s.LoadError,
	}
	if len(s.Kinds) > 0 {
		item.Kinds = make(map[string]int, len(s.Kinds))
		for k, n := range s.Kinds {
			item.Kinds[string(k)] = n
		}
	}
	return item
}

func searchResult(result *search.Result) SearchRecordsResult {
	out := SearchRecordsResult{
		Query:            result.Query,
		TotalMatches:     result.TotalMatches,
		ProjectsSearched: result.Projects,
		Groups:           make([]ProjectHits, 0, len(result.Groups)),
	}
	needle := strings.ToLower(result.Query)
	for _, g := range result.Groups {
		hits := ProjectHits{
			DisplayName: g.DisplayName,
			SourcePath:  g.SourcePath,
			Total:       g.Total,
			Records:     make([]RecordHit, 0, len(g.Records)),
		}
		for _, r := range g.Records {
			fragment, _ := search.MatchingFragment(r, needle)
			ts, _ := r.Timestamp()
			hits.Records = append(hits.Records, RecordHit{
				Kind:      string(r.Kind()),
				ID:        record.IDOf(r),
				Timestamp: ts,
				Preview:   record.Preview(r, previewRunes),
				Snippet:   search.Snippet(fragment, result.Query, snippetWindow),
			})
		}
		out.Groups = append(out.Groups, hits)
	}
	return out
}

func activityItem(e activity.ActivityEntry) ActivityItem {
	item := ActivityItem{
		ID:        e.ID,
		Type:      string(e.ActivityType),
		Project:   e.Project,
		Summary:   e.Summary,
		Details:   e.Details,
		ItemCount: e.ItemCount,
		CreatedAt: formatTime(e.CreatedAt),
	}
	if e.SourcePath != nil {
		item.SourcePath = *e.SourcePath
	}
	if e.Query != nil {
		item.Query = *e.Query
	}
	return item
}

func formatTime(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.UTC().Format(time.RFC3339Nano)
}
