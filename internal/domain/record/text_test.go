package record_test

import (
	"testing"

	"github.com/rpggio/ccsearch/internal/domain/record"
	"github.com/stretchr/testify/require"
)

func TestTextFragments_SkipsNonTextBlocks(t *testing.T) {
	rec := record.Assistant{
		Message: record.AssistantMessage{
			Content: []record.ContentBlock{
				record.ThinkingBlock{Thinking: "internal", Signature: "sig"},
				record.ToolUseBlock{ID: "t1", Name: "Read"},
				record.ImageBlock{Source: record.ImageSource{Kind: "base64"}},
			},
		},
	}
	require.Empty(t, rec.TextFragments())
}

func TestTextFragments_UserBlocksInOrder(t *testing.T) {
	rec := record.User{
		Message: record.UserMessage{
			Role: "user",
			Content: record.UserBlocks{
				record.TextBlock{Text: "one"},
				record.ToolResultBlock{ToolUseID: "t", Content: record.ToolResultText("hidden")},
				record.TextBlock{Text: "two"},
			},
		},
	}
	require.Equal(t, []string{"one", "two"}, rec.TextFragments())
}

func TestTextFragments_SystemAndSummary(t *testing.T) {
	require.Equal(t, []string{"hook output"}, record.System{Content: "hook output"}.TextFragments())
	require.Equal(t, []string{""}, record.Summary{}.TextFragments())
}

func TestPreview(t *testing.T) {
	rec := record.User{Message: record.UserMessage{Content: record.UserText("  multi\nline   text  ")}}
	require.Equal(t, "multi line text", record.Preview(rec, 0))
	require.Equal(t, "multi line text", record.Preview(rec, 15))
	require.Equal(t, "multi...", record.Preview(rec, 5))

	wide := record.System{Content: "日本語のテキスト"}
	require.Equal(t, "日本語...", record.Preview(wide, 3))

	require.Empty(t, record.Preview(record.Assistant{}, 10))
}
