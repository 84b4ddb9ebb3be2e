package transport

import (
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestRouter_MCPRequiresToken(t *testing.T) {
	var hits int
	mcpHandler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits++
		w.WriteHeader(http.StatusAccepted)
	})
	server := httptest.NewServer(NewRouter(RouterConfig{
		MCP:  mcpHandler,
		Auth: AuthMiddleware(NewStaticToken("token")),
	}))
	t.Cleanup(server.Close)

	resp, err := http.Post(server.URL+"/mcp", "application/json", nil)
	require.NoError(t, err)
	resp.Body.Close()
	require.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	require.Zero(t, hits)

	req, err := http.NewRequest(http.MethodPost, server.URL+"/mcp", nil)
	require.NoError(t, err)
	req.Header.Set("Authorization", "Bearer token")
	resp, err = http.DefaultClient.Do(req)
	require.NoError(t, err)
	resp.Body.Close()
	require.Equal(t, http.StatusAccepted, resp.StatusCode)
	require.Equal(t, 1, hits)
}

func TestRouter_Health(t *testing.T) {
	server := httptest.NewServer(NewRouter(RouterConfig{
		MCP:  http.NotFoundHandler(),
		Auth: AuthMiddleware(NewStaticToken("token")),
	}))
	t.Cleanup(server.Close)

	resp, err := http.Get(server.URL + "/health")
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)
	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	require.Equal(t, "ok", string(body))
}

func TestRouter_NoAuth(t *testing.T) {
	server := httptest.NewServer(NewRouter(RouterConfig{
		MCP: http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			w.WriteHeader(http.StatusOK)
		}),
	}))
	t.Cleanup(server.Close)

	resp, err := http.Post(server.URL+"/mcp/", "application/json", nil)
	require.NoError(t, err)
	resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)
}
