package record

import (
	"encoding/json"
	"fmt"
)

// Encode renders a record in the log's wire shape. Decoding the result yields
// an equal record.
func Encode(r Record) ([]byte, error) {
	switch v := r.(type) {
	case Summary:
		return json.Marshal(wireSummary{
			Type:     string(KindSummary),
			Summary:  ptr(v.Summary),
			LeafUUID: ptr(v.LeafID),
		})

	case System:
		return json.Marshal(wireSystem{
			Type:      string(KindSystem),
			wireBase:  encodeBase(v.Base),
			Content:   ptr(v.Content),
			IsMeta:    ptr(v.IsMeta),
			ToolUseID: v.ToolUseID,
			Level:     v.Level,
			GitBranch: v.Branch,
			RequestID: v.RequestID,
		})

	case User:
		content, err := encodeUserContent(v.Message.Content)
		if err != nil {
			return nil, err
		}
		return json.Marshal(wireUser{
			Type:     string(KindUser),
			wireBase: encodeBase(v.Base),
			Message: &wireUserMessage{
				Role:    ptr(v.Message.Role),
				Content: content,
			},
			GitBranch:        v.Branch,
			IsMeta:           v.IsMeta,
			IsCompactSummary: v.IsCompactSummary,
			ToolUseResult:    v.ToolUseResult,
		})

	case Assistant:
		blocks, err := encodeBlocks(v.Message.Content)
		if err != nil {
			return nil, err
		}
		return json.Marshal(wireAssistant{
			Type:     string(KindAssistant),
			wireBase: encodeBase(v.Base),
			Message: &wireAssistantMessage{
				ID:           ptr(v.Message.ID),
				Type:         ptr(v.Message.Kind),
				Role:         ptr(v.Message.Role),
				Model:        ptr(v.Message.Model),
				Content:      blocks,
				StopReason:   v.Message.StopReason,
				StopSequence: v.Message.StopSequence,
				Usage:        encodeUsage(v.Message.Usage),
			},
			RequestID:         v.RequestID,
			GitBranch:         v.Branch,
			IsAPIErrorMessage: v.IsAPIError,
		})

	default:
		return nil, fmt.Errorf("%w: %T", ErrUnsupportedRecord, r)
	}
}

func ptr[T any](v T) *T { return &v }

func encodeBase(b Base) wireBase {
	return wireBase{
		ParentUUID:  b.ParentID,
		IsSidechain: ptr(b.IsSidechain),
		UserType:    ptr(b.UserType),
		Cwd:         ptr(b.WorkingDir),
		SessionID:   ptr(b.SessionID),
		Version:     ptr(b.SchemaVersion),
		UUID:        ptr(b.ID),
		Timestamp:   ptr(b.Timestamp),
	}
}

func encodeUsage(u Usage) *wireUsage {
	w := &wireUsage{
		InputTokens:              ptr(u.InputTokens),
		CacheCreationInputTokens: ptr(u.CacheCreationTokens),
		CacheReadInputTokens:     ptr(u.CacheReadTokens),
		OutputTokens:             ptr(u.OutputTokens),
		ServiceTier:              u.ServiceTier,
	}
	if u.WebSearchRequests != nil {
		w.ServerToolUse = &wireServerToolUse{WebSearchRequests: u.WebSearchRequests}
	}
	return w
}

func encodeUserContent(c UserContent) (json.RawMessage, error) {
	switch v := c.(type) {
	case UserText:
		return json.Marshal(string(v))
	case UserBlocks:
		blocks, err := encodeBlocks(v)
		if err != nil {
			return nil, err
		}
		return json.Marshal(blocks)
	default:
		return nil, fmt.Errorf("%w: message.content", ErrMissingField)
	}
}

func encodeBlocks(blocks []ContentBlock) ([]json.RawMessage, error) {
	out := make([]json.RawMessage, 0, len(blocks))
	for i, b := range blocks {
		raw, err := encodeBlock(b)
		if err != nil {
			return nil, fmt.Errorf("block %d: %w", i, err)
		}
		out = append(out, raw)
	}
	return out, nil
}

func encodeBlock(b ContentBlock) (json.RawMessage, error) {
	switch v := b.(type) {
	case TextBlock:
		return json.Marshal(wireTextBlock{Type: string(BlockText), Text: ptr(v.Text)})
	case ToolUseBlock:
		input := v.Input
		if input == nil {
			input = map[string]json.RawMessage{}
		}
		return json.Marshal(wireToolUseBlock{
			Type:  string(BlockToolUse),
			ID:    ptr(v.ID),
			Name:  ptr(v.Name),
			Input: input,
		})
	case ToolResultBlock:
		content, err := encodePayload(v.Content)
		if err != nil {
			return nil, err
		}
		return json.Marshal(wireToolResultBlock{
			Type:      string(BlockToolResult),
			ToolUseID: ptr(v.ToolUseID),
			Content:   content,
			IsError:   v.IsError,
		})
	case ThinkingBlock:
		return json.Marshal(wireThinkingBlock{
			Type:      string(BlockThinking),
			Thinking:  ptr(v.Thinking),
			Signature: ptr(v.Signature),
		})
	case ImageBlock:
		return json.Marshal(wireImageBlock{Type: string(BlockImage), Source: encodeImageSource(v.Source)})
	default:
		return nil, fmt.Errorf("%w: block %T", ErrUnknownKind, b)
	}
}

func encodePayload(p ToolResultPayload) (json.RawMessage, error) {
	switch v := p.(type) {
	case nil:
		return nil, nil
	case ToolResultText:
		return json.Marshal(string(v))
	case ToolResultTexts:
		items := make([]wireTextItem, 0, len(v))
		for _, item := range v {
			items = append(items, wireTextItem{Type: ptr(item.Kind), Text: ptr(item.Text)})
		}
		return json.Marshal(items)
	case ToolResultImages:
		items := make([]wireImageItem, 0, len(v))
		for _, item := range v {
			items = append(items, wireImageItem{Type: ptr(item.Kind), Source: encodeImageSource(item.Source)})
		}
		return json.Marshal(items)
	default:
		return nil, fmt.Errorf("%w: tool result %T", ErrNoMatchingShape, p)
	}
}

func encodeImageSource(s ImageSource) *wireImageSource {
	return &wireImageSource{Type: ptr(s.Kind), Data: s.Data, MediaType: s.MediaType}
}
