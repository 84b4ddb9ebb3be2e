package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func clearEnv(t *testing.T) {
	t.Helper()
	for _, key := range []string{
		"CCSEARCH_CONFIG_PATH", "CCSEARCH_PROJECTS_ROOT", "CCSEARCH_PROJECT_LIMIT",
		"CCSEARCH_WORKERS", "CCSEARCH_TRANSPORT", "CCSEARCH_SERVER_HOST",
		"CCSEARCH_SERVER_PORT", "CCSEARCH_AUTH_TOKEN", "CCSEARCH_DB_PATH",
		"CCSEARCH_LOG_LEVEL", "CCSEARCH_LOG_PATH",
	} {
		t.Setenv(key, "")
	}
}

func TestLoad_Defaults(t *testing.T) {
	clearEnv(t)

	cfg, err := Load()
	require.NoError(t, err)
	require.Equal(t, Default(), cfg)
	require.Equal(t, "~/.claude/projects", cfg.Projects.Root)
	require.Equal(t, 30, cfg.Projects.Limit)
	require.Equal(t, TransportStdio, cfg.Transport.Mode)
}

func TestLoad_FileThenEnv(t *testing.T) {
	clearEnv(t)
	path := filepath.Join(t.TempDir(), "ccsearch.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
projects:
  root: /data/logs
  limit: 10
transport:
  mode: http
server:
  port: 9090
log:
  level: debug
`), 0o644))

	t.Setenv("CCSEARCH_CONFIG_PATH", path)
	t.Setenv("CCSEARCH_PROJECT_LIMIT", "5")
	t.Setenv("CCSEARCH_DB_PATH", "/tmp/history.db")

	cfg, err := Load()
	require.NoError(t, err)
	require.Equal(t, "/data/logs", cfg.Projects.Root)
	require.Equal(t, 5, cfg.Projects.Limit)
	require.Equal(t, 4, cfg.Projects.Workers)
	require.Equal(t, TransportHTTP, cfg.Transport.Mode)
	require.Equal(t, 9090, cfg.Server.Port)
	require.Equal(t, "127.0.0.1", cfg.Server.Host)
	require.Equal(t, "/tmp/history.db", cfg.DB.Path)
	require.Equal(t, "debug", cfg.Log.Level)
}

func TestLoad_InvalidEnv(t *testing.T) {
	clearEnv(t)
	t.Setenv("CCSEARCH_SERVER_PORT", "eighty")
	_, err := Load()
	require.Error(t, err)

	clearEnv(t)
	t.Setenv("CCSEARCH_PROJECT_LIMIT", "-1")
	_, err = Load()
	require.Error(t, err)

	clearEnv(t)
	t.Setenv("CCSEARCH_TRANSPORT", "grpc")
	_, err = Load()
	require.Error(t, err)
}

func TestLoad_MissingFile(t *testing.T) {
	clearEnv(t)
	t.Setenv("CCSEARCH_CONFIG_PATH", filepath.Join(t.TempDir(), "absent.yaml"))
	_, err := Load()
	require.ErrorIs(t, err, os.ErrNotExist)
}

func TestExpandHome(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)

	got, err := ExpandHome("~/.claude/projects")
	require.NoError(t, err)
	require.Equal(t, filepath.Join(home, ".claude", "projects"), got)

	got, err = ExpandHome("~")
	require.NoError(t, err)
	require.Equal(t, home, got)

	got, err = ExpandHome("/abs/path")
	require.NoError(t, err)
	require.Equal(t, "/abs/path", got)

	got, err = ExpandHome("~other/dir")
	require.NoError(t, err)
	require.Equal(t, "~other/dir", got)
}

func TestExpandHome_Unavailable(t *testing.T) {
	if _, ok := os.LookupEnv("USERPROFILE"); ok {
		t.Skip("home directory falls back to USERPROFILE")
	}
	t.Setenv("HOME", "")

	_, err := ExpandHome("~/.claude/projects")
	require.ErrorIs(t, err, ErrHomeDirUnavailable)
}
