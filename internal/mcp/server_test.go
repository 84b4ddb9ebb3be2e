package mcp_test

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	sdkmcp "github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/rpggio/ccsearch/internal/mcp"
	"github.com/rpggio/ccsearch/internal/testserver"
	"github.com/stretchr/testify/require"
)

const (
	userA      = "11111111-1111-4111-8111-111111111111"
	assistantA = "22222222-2222-4222-8222-222222222222"
	leafA      = "55555555-5555-4555-8555-555555555555"
	userB      = "33333333-3333-4333-8333-333333333333"
	assistantB = "44444444-4444-4444-8444-444444444444"
)

type fixture struct {
	ts      *testserver.TestServer
	session *sdkmcp.ClientSession
	badPath string
}

func newFixture(t *testing.T) fixture {
	t.Helper()
	root := t.TempDir()
	now := time.Now()

	testserver.WriteLog(t, root, "-home-alice-proj-a/s1.jsonl", now.Add(-time.Minute),
		testserver.UserLine(userA, "How do I parse JSON in Go?"),
		testserver.AssistantLine(assistantA, "Use encoding/json and Unmarshal."),
		`not json at all`,
		testserver.SummaryLine(leafA, "Parsing JSON"),
	)
	testserver.WriteLog(t, root, "-home-alice-proj-b/s2.jsonl", now.Add(-time.Hour),
		testserver.UserLine(userB, "deploy the service"),
		testserver.AssistantLine(assistantB, "The JSON config is loaded at startup"),
	)
	badPath := filepath.Join(root, "bad", "s3.jsonl")
	require.NoError(t, os.MkdirAll(filepath.Dir(badPath), 0o755))
	require.NoError(t, os.WriteFile(badPath, []byte("\xff\xfe\n"), 0o644))
	old := now.Add(-2 * time.Hour)
	require.NoError(t, os.Chtimes(badPath, old, old))

	ts := testserver.New(t, root, testserver.Options{})
	return fixture{ts: ts, session: ts.Connect(t), badPath: badPath}
}

func TestServer_ListTools(t *testing.T) {
	f := newFixture(t)

	tools, err := f.session.ListTools(context.Background(), nil)
	require.NoError(t, err)

	var names []string
	for _, tool := range tools.Tools {
		names = append(names, tool.Name)
	}
	require.ElementsMatch(t, []string{
		"list_projects",
		"reload_projects",
		"search_records",
		"get_record",
		"get_recent_activity",
	}, names)

	initResult := f.session.InitializeResult()
	require.NotNil(t, initResult)
	require.Equal(t, "ccsearch", initResult.ServerInfo.Name)
}

func TestServer_ListProjects(t *testing.T) {
	f := newFixture(t)

	out := testserver.CallTool[mcp.ListProjectsResult](t, f.session, "list_projects", nil)
	require.Len(t, out.Projects, 3)
	require.Equal(t, "-home-alice-proj-a", out.Projects[0].DisplayName)
	require.Equal(t, 3, out.Projects[0].RecordCount)
	require.Equal(t, map[string]int{"user": 1, "assistant": 1, "summary": 1}, out.Projects[0].Kinds)
	require.Equal(t, "-home-alice-proj-b", out.Projects[1].DisplayName)
	require.Equal(t, "bad", out.Projects[2].DisplayName)
	require.Zero(t, out.Projects[2].RecordCount)
	require.NotEmpty(t, out.Projects[2].LoadError)

	filtered := testserver.CallTool[mcp.ListProjectsResult](t, f.session, "list_projects", map[string]any{"name": "projb"})
	require.Len(t, filtered.Projects, 1)
	require.Equal(t, "-home-alice-proj-b", filtered.Projects[0].DisplayName)
}

func TestServer_SearchRecords(t *testing.T) {
	f := newFixture(t)

	out := testserver.CallTool[mcp.SearchRecordsResult](t, f.session, "search_records", map[string]any{"query": "JSON"})
	require.Equal(t, 4, out.TotalMatches)
	require.Equal(t, 3, out.ProjectsSearched)
	require.Len(t, out.Groups, 2)

	first := out.Groups[0]
	require.Equal(t, "-home-alice-proj-a", first.DisplayName)
	require.Equal(t, 3, first.Total)
	require.Len(t, first.Records, 3)
	require.Equal(t, "user", first.Records[0].Kind)
	require.Equal(t, userA, first.Records[0].ID)
	require.Equal(t, "2025-06-01T10:00:00Z", first.Records[0].Timestamp)
	require.Equal(t, "How do I parse JSON in Go?", first.Records[0].Snippet)
	require.Equal(t, "assistant", first.Records[1].Kind)
	require.Equal(t, "summary", first.Records[2].Kind)
	require.Equal(t, leafA, first.Records[2].ID)
	require.Empty(t, first.Records[2].Timestamp)

	require.Equal(t, "-home-alice-proj-b", out.Groups[1].DisplayName)
	require.Equal(t, assistantB, out.Groups[1].Records[0].ID)
}

func TestServer_SearchRecords_Options(t *testing.T) {
	f := newFixture(t)

	capped := testserver.CallTool[mcp.SearchRecordsResult](t, f.session, "search_records", map[string]any{
		"query":           "json",
		"max_per_project": 1,
	})
	require.Len(t, capped.Groups[0].Records, 1)
	require.Equal(t, 3, capped.Groups[0].Total)
	require.Equal(t, 4, capped.TotalMatches)

	scoped := testserver.CallTool[mcp.SearchRecordsResult](t, f.session, "search_records", map[string]any{
		"query":   "json",
		"project": "-home-alice-proj-b",
	})
	require.Len(t, scoped.Groups, 1)
	require.Equal(t, 1, scoped.ProjectsSearched)

	none := testserver.CallTool[mcp.SearchRecordsResult](t, f.session, "search_records", map[string]any{"query": "kubernetes"})
	require.Empty(t, none.Groups)
	require.Zero(t, none.TotalMatches)
}

func TestServer_SearchRecords_Errors(t *testing.T) {
	f := newFixture(t)

	msg := testserver.CallToolError(t, f.session, "search_records", map[string]any{"query": "   "})
	require.Contains(t, msg, mcp.CodeInvalidInput)

	msg = testserver.CallToolError(t, f.session, "search_records", map[string]any{"query": "json", "project": "nope"})
	require.Contains(t, msg, mcp.CodeNotFound)
}

func TestServer_GetRecord(t *testing.T) {
	f := newFixture(t)

	out := testserver.CallTool[mcp.GetRecordResult](t, f.session, "get_record", map[string]any{
		"project": "-home-alice-proj-a",
		"id":      strings.ToUpper(assistantA),
	})
	require.Equal(t, "assistant", out.Kind)
	require.Equal(t, assistantA, out.ID)
	require.Equal(t, "-home-alice-proj-a", out.Project)
	require.Equal(t, []string{"Use encoding/json and Unmarshal."}, out.Fragments)
	require.Contains(t, out.Raw, `"uuid":"`+assistantA+`"`)
	require.Contains(t, out.Raw, `"type":"assistant"`)

	summary := testserver.CallTool[mcp.GetRecordResult](t, f.session, "get_record", map[string]any{"id": leafA})
	require.Equal(t, "summary", summary.Kind)
	require.Equal(t, []string{"Parsing JSON"}, summary.Fragments)
}

func TestServer_GetRecord_Errors(t *testing.T) {
	f := newFixture(t)

	msg := testserver.CallToolError(t, f.session, "get_record", map[string]any{"id": "not-a-uuid"})
	require.Contains(t, msg, mcp.CodeInvalidInput)

	msg = testserver.CallToolError(t, f.session, "get_record", map[string]any{"id": "99999999-9999-4999-8999-999999999999"})
	require.Contains(t, msg, mcp.CodeNotFound)

	msg = testserver.CallToolError(t, f.session, "get_record", map[string]any{"project": "-home-alice-proj-b", "id": userA})
	require.Contains(t, msg, mcp.CodeNotFound)
}

func TestServer_RecentActivity(t *testing.T) {
	f := newFixture(t)

	testserver.CallTool[mcp.SearchRecordsResult](t, f.session, "search_records", map[string]any{"query": "deploy"})
	testserver.CallTool[mcp.GetRecordResult](t, f.session, "get_record", map[string]any{"id": userB})

	out := testserver.CallTool[mcp.GetRecentActivityResult](t, f.session, "get_recent_activity", nil)
	types := make([]string, 0, len(out.Activities))
	for _, a := range out.Activities {
		types = append(types, a.Type)
	}
	require.Equal(t, []string{"record_viewed", "search_performed", "projects_loaded", "file_dropped"}, types)
	require.Equal(t, "deploy", out.Activities[1].Query)
	require.Equal(t, 1, out.Activities[1].ItemCount)

	dropped := testserver.CallTool[mcp.GetRecentActivityResult](t, f.session, "get_recent_activity", map[string]any{"type": "file_dropped"})
	require.Len(t, dropped.Activities, 1)
	require.Equal(t, f.badPath, dropped.Activities[0].SourcePath)

	msg := testserver.CallToolError(t, f.session, "get_recent_activity", map[string]any{"type": "record_created"})
	require.Contains(t, msg, mcp.CodeInvalidInput)
}

func TestServer_ReloadProjects(t *testing.T) {
	f := newFixture(t)

	before := testserver.CallTool[mcp.ListProjectsResult](t, f.session, "list_projects", nil)
	require.Len(t, before.Projects, 3)

	testserver.WriteLog(t, f.ts.Root, "-home-alice-proj-c/s4.jsonl", time.Now(),
		testserver.UserLine("66666666-6666-4666-8666-666666666666", "fresh session"),
	)

	stale := testserver.CallTool[mcp.ListProjectsResult](t, f.session, "list_projects", nil)
	require.Len(t, stale.Projects, 3)

	out := testserver.CallTool[mcp.ReloadProjectsResult](t, f.session, "reload_projects", nil)
	require.Equal(t, 4, out.Candidates)
	require.Equal(t, 4, out.Loaded)
	require.Equal(t, 6, out.Records)
	require.Len(t, out.Failed, 1)
	require.Equal(t, f.badPath, out.Failed[0].SourcePath)

	after := testserver.CallTool[mcp.ListProjectsResult](t, f.session, "list_projects", nil)
	require.Equal(t, "-home-alice-proj-c", after.Projects[0].DisplayName)
}

func TestServer_MissingRoot(t *testing.T) {
	ts := testserver.New(t, filepath.Join(t.TempDir(), "absent"), testserver.Options{})
	session := ts.Connect(t)

	msg := testserver.CallToolError(t, session, "list_projects", nil)
	require.Contains(t, msg, mcp.CodeUnavailable)
}

func TestServer_DocResource(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	list, err := f.session.ListResources(ctx, nil)
	require.NoError(t, err)
	require.Len(t, list.Resources, 1)
	require.Equal(t, "ccsearch://docs/records", list.Resources[0].URI)

	res, err := f.session.ReadResource(ctx, &sdkmcp.ReadResourceParams{URI: "ccsearch://docs/records"})
	require.NoError(t, err)
	require.Len(t, res.Contents, 1)
	require.Contains(t, res.Contents[0].Text, "# Records")
}

func TestServer_HTTPAuth(t *testing.T) {
	root := t.TempDir()
	testserver.WriteLog(t, root, "proj/s.jsonl", time.Now(), testserver.UserLine(userA, "hello over http"))
	ts := testserver.New(t, root, testserver.Options{Token: "s3cret"})

	_, err := ts.ConnectHTTP(t, "wrong")
	require.Error(t, err)

	session, err := ts.ConnectHTTP(t, "s3cret")
	require.NoError(t, err)

	out := testserver.CallTool[mcp.SearchRecordsResult](t, session, "search_records", map[string]any{"query": "HTTP"})
	require.Equal(t, 1, out.TotalMatches)
	require.Equal(t, "proj", out.Groups[0].DisplayName)
}
