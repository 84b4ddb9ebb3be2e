package project_test

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

const baseFields = `"parentUuid":null,"isSidechain":false,"userType":"external","cwd":"/work","sessionId":"s","version":"1.0.0","timestamp":"2025-06-01T10:00:00Z"`

func userLine(id, text string) string {
	return `{"type":"user",` + baseFields + `,"uuid":"` + id + `","message":{"role":"user","content":"` + text + `"}}`
}

func assistantLine(id, text string) string {
	return `{"type":"assistant",` + baseFields + `,"uuid":"` + id + `","message":{"id":"m","type":"message","role":"assistant","model":"x","content":[{"type":"text","text":"` + text + `"}],"stop_reason":null,"stop_sequence":null,"usage":{"input_tokens":1,"cache_creation_input_tokens":0,"cache_read_input_tokens":0,"output_tokens":1}}}`
}

// writeLog writes lines to root/rel and sets its modification time.
func writeLog(t *testing.T, root, rel string, mtime time.Time, lines ...string) string {
	t.Helper()
	path := filepath.Join(root, filepath.FromSlash(rel))
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(strings.Join(lines, "\n")), 0o644))
	require.NoError(t, os.Chtimes(path, mtime, mtime))
	return path
}
