package testserver

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	sdkmcp "github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/rpggio/ccsearch/internal/domain/activity"
	"github.com/rpggio/ccsearch/internal/domain/project"
	"github.com/rpggio/ccsearch/internal/domain/search"
	"github.com/rpggio/ccsearch/internal/mcp"
	"github.com/rpggio/ccsearch/internal/sqlite"
	"github.com/rpggio/ccsearch/internal/transport"
	"github.com/stretchr/testify/require"
)

type TestServer struct {
	Root     string
	DB       *sqlite.DB
	Projects *project.Service
	MCP      *sdkmcp.Server
	HTTP     *httptest.Server
	Token    string
}

type Options struct {
	// Limit is the project limit; zero means 30.
	Limit int
	// Token enables bearer auth on the HTTP endpoint when set.
	Token string
}

// New wires the full stack over the log tree at root.
func New(t *testing.T, root string, opts Options) *TestServer {
	t.Helper()

	if opts.Limit == 0 {
		opts.Limit = 30
	}

	db, err := sqlite.New(":memory:")
	require.NoError(t, err)
	require.NoError(t, db.RunMigrations())

	activityRepo := sqlite.NewActivityRepository(db)
	loader := project.NewLoader(project.LoaderConfig{Root: root}, nil)

	projectSvc := project.NewService(loader, opts.Limit, activityRepo, nil)
	searchSvc := search.NewService(projectSvc, activityRepo, nil)
	activitySvc := activity.NewService(activityRepo, nil)

	mcpServer := mcp.NewServer(mcp.Config{
		Services: mcp.Services{
			Projects: projectSvc,
			Search:   searchSvc,
			Activity: activitySvc,
		},
		Version: "test",
	})

	var auth func(http.Handler) http.Handler
	if opts.Token != "" {
		auth = transport.AuthMiddleware(transport.NewStaticToken(opts.Token))
	}
	handler := sdkmcp.NewStreamableHTTPHandler(
		func(*http.Request) *sdkmcp.Server { return mcpServer },
		&sdkmcp.StreamableHTTPOptions{SessionTimeout: time.Minute},
	)
	server := httptest.NewServer(transport.NewRouter(transport.RouterConfig{MCP: handler, Auth: auth}))

	t.Cleanup(func() {
		server.Close()
		_ = db.Close()
	})

	return &TestServer{
		Root:     root,
		DB:       db,
		Projects: projectSvc,
		MCP:      mcpServer,
		HTTP:     server,
		Token:    opts.Token,
	}
}

// Connect opens an in-process client session.
func (ts *TestServer) Connect(t *testing.T) *sdkmcp.ClientSession {
	t.Helper()
	ctx := context.Background()

	clientTransport, serverTransport := sdkmcp.NewInMemoryTransports()
	_, err := ts.MCP.Connect(ctx, serverTransport, nil)
	require.NoError(t, err)

	session, err := newClient().Connect(ctx, clientTransport, nil)
	require.NoError(t, err)
	t.Cleanup(func() { _ = session.Close() })
	return session
}

// ConnectHTTP opens a client session over the streamable HTTP endpoint,
// sending token as a bearer token when non-empty.
func (ts *TestServer) ConnectHTTP(t *testing.T, token string) (*sdkmcp.ClientSession, error) {
	t.Helper()

	httpClient := &http.Client{Transport: bearerTransport{token: token, next: http.DefaultTransport}}
	session, err := newClient().Connect(context.Background(), &sdkmcp.StreamableClientTransport{
		Endpoint:   ts.HTTP.URL + "/mcp",
		HTTPClient: httpClient,
		MaxRetries: -1,
	}, nil)
	if err != nil {
		return nil, err
	}
	t.Cleanup(func() { _ = session.Close() })
	return session, nil
}

func newClient() *sdkmcp.Client {
	return sdkmcp.NewClient(&sdkmcp.Implementation{Name: "test-client", Version: "1.0.0"}, nil)
}

type bearerTransport struct {
	token string
	next  http.RoundTripper
}

func (b bearerTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	if b.token != "" {
		req = req.Clone(req.Context())
		req.Header.Set("Authorization", "Bearer "+b.token)
	}
	return b.next.RoundTrip(req)
}

// CallTool calls a tool that must succeed and decodes its structured output.
func CallTool[T any](t *testing.T, session *sdkmcp.ClientSession, name string, args map[string]any) T {
	t.Helper()

	res := call(t, session, name, args)
	require.False(t, res.IsError, "tool %s failed: %s", name, resultText(res))

	var out T
	raw, err := json.Marshal(res.StructuredContent)
	require.NoError(t, err)
	if res.StructuredContent == nil {
		raw = []byte(resultText(res))
	}
	require.NoError(t, json.Unmarshal(raw, &out))
	return out
}

// CallToolError calls a tool that must fail and returns its error text.
func CallToolError(t *testing.T, session *sdkmcp.ClientSession, name string, args map[string]any) string {
	t.Helper()

	res := call(t, session, name, args)
	require.True(t, res.IsError, "tool %s unexpectedly succeeded", name)
	return resultText(res)
}

func call(t *testing.T, session *sdkmcp.ClientSession, name string, args map[string]any) *sdkmcp.CallToolResult {
	t.Helper()
	if args == nil {
		args = map[string]any{}
	}
	res, err := session.CallTool(context.Background(), &sdkmcp.CallToolParams{Name: name, Arguments: args})
	require.NoError(t, err)
	return res
}

func resultText(res *sdkmcp.CallToolResult) string {
	var parts []string
	for _, c := range res.Content {
		if text, ok := c.(*sdkmcp.TextContent); ok {
			parts = append(parts, text.Text)
		}
	}
	return strings.Join(parts, "\n")
}

const baseFields = `"parentUuid":null,"isSidechain":false,"userType":"external","cwd":"/work","sessionId":"s1","version":"1.0.0","timestamp":"2025-06-01T10:00:00Z"`

// UserLine returns a user log line with plain string content.
func UserLine(id, text string) string {
	return `{"type":"user",` + baseFields + `,"uuid":"` + id + `","message":{"role":"user","content":` + quote(text) + `}}`
}

// AssistantLine returns an assistant log line with one text block.
func AssistantLine(id, text string) string {
	return `{"type":"assistant",` + baseFields + `,"uuid":"` + id + `","message":{"id":"msg_1","type":"message","role":"assistant","model":"model-x","content":[{"type":"text","text":` + quote(text) + `}],"stop_reason":"end_turn","stop_sequence":null,"usage":{"input_tokens":3,"cache_creation_input_tokens":0,"cache_read_input_tokens":0,"output_tokens":5}}}`
}

// SummaryLine returns a summary log line.
func SummaryLine(leafID, text string) string {
	return `{"type":"summary","summary":` + quote(text) + `,"leafUuid":"` + leafID + `"}`
}

// WriteLog writes lines to root/rel and sets its modification time.
func WriteLog(t *testing.T, root, rel string, mtime time.Time, lines ...string) string {
	t.Helper()
	path := filepath.Join(root, filepath.FromSlash(rel))
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(strings.Join(lines, "\n")+"\n"), 0o644))
	require.NoError(t, os.Chtimes(path, mtime, mtime))
	return path
}

func quote(s string) string {
	raw, _ := json.Marshal(s)
	return string(raw)
}
