package record

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// Decode parses a single log line. It reports false when the line is blank,
// is not valid JSON, or does not satisfy the record schema; callers drop such
// lines.
func Decode(line string) (Record, bool) {
	return DecodeBytes([]byte(line))
}

// DecodeBytes is Decode for a byte slice. The slice is not retained.
func DecodeBytes(line []byte) (Record, bool) {
	rec, err := Parse(line)
	if err != nil {
		return nil, false
	}
	return rec, true
}

// Parse decodes a single log line and returns the reason when it is rejected.
func Parse(line []byte) (Record, error) {
	line = bytes.TrimSpace(line)
	if len(line) == 0 {
		return nil, ErrBlankLine
	}

	var env wireEnvelope
	if err := json.Unmarshal(line, &env); err != nil {
		return nil, fmt.Errorf("decoding envelope: %w", err)
	}
	if env.Type == nil {
		return nil, ErrMissingDiscriminant
	}

	switch Kind(*env.Type) {
	case KindSummary:
		return parseSummary(line)
	case KindSystem:
		return parseSystem(line)
	case KindUser:
		return parseUser(line)
	case KindAssistant:
		return parseAssistant(line)
	default:
		return nil, fmt.Errorf("%w: record %q", ErrUnknownKind, *env.Type)
	}
}

func parseSummary(line []byte) (Record, error) {
	var w wireSummary
	if err := json.Unmarshal(line, &w); err != nil {
		return nil, fmt.Errorf("decoding summary: %w", err)
	}
	summary, err := required("summary", w.Summary)
	if err != nil {
		return nil, err
	}
	leaf, err := required("leafUuid", w.LeafUUID)
	if err != nil {
		return nil, err
	}
	return Summary{Summary: summary, LeafID: leaf}, nil
}

func parseSystem(line []byte) (Record, error) {
	var w wireSystem
	if err := json.Unmarshal(line, &w); err != nil {
		return nil, fmt.Errorf("decoding system: %w", err)
	}
	base, err := validateBase(w.wireBase)
	if err != nil {
		return nil, err
	}
	content, err := required("content", w.Content)
	if err != nil {
		return nil, err
	}
	isMeta, err := required("isMeta", w.IsMeta)
	if err != nil {
		return nil, err
	}
	return System{
		Base:      base,
		Content:   content,
		IsMeta:    isMeta,
		ToolUseID: w.ToolUseID,
		Level:     w.Level,
		Branch:    w.GitBranch,
		RequestID: w.RequestID,
	}, nil
}

func parseUser(line []byte) (Record, error) {
	var w wireUser
	if err := json.Unmarshal(line, &w); err != nil {
		return nil, fmt.Errorf("decoding user: %w", err)
	}
	base, err := validateBase(w.wireBase)
	if err != nil {
		return nil, err
	}
	if w.Message == nil {
		return nil, fmt.Errorf("%w: message", ErrMissingField)
	}
	role, err := required("message.role", w.Message.Role)
	if err != nil {
		return nil, err
	}
	if isAbsent(w.Message.Content) {
		return nil, fmt.Errorf("%w: message.content", ErrMissingField)
	}
	content, err := firstOf(w.Message.Content, userTextShape, userBlocksShape)
	if err != nil {
		return nil, fmt.Errorf("message.content: %w", err)
	}

	rec := User{
		Base:             base,
		Message:          UserMessage{Role: role, Content: content},
		Branch:           w.GitBranch,
		IsMeta:           w.IsMeta,
		IsCompactSummary: w.IsCompactSummary,
	}
	if !isAbsent(w.ToolUseResult) {
		rec.ToolUseResult = w.ToolUseResult
	}
	return rec, nil
}

func parseAssistant(line []byte) (Record, error) {
	var w wireAssistant
	if err := json.Unmarshal(line, &w); err != nil {
		return nil, fmt.Errorf("decoding assistant: %w", err)
	}
	base, err := validateBase(w.wireBase)
	if err != nil {
		return nil, err
	}
	msg, err := parseAssistantMessage(w.Message)
	if err != nil {
		return nil, err
	}
	return Assistant{
		Base:       base,
		Message:    msg,
		RequestID:  w.RequestID,
		Branch:     w.GitBranch,
		IsAPIError: w.IsAPIErrorMessage,
	}, nil
}

func parseAssistantMessage(w *wireAssistantMessage) (AssistantMessage, error) {
	if w == nil {
		return AssistantMessage{}, fmt.Errorf("%w: message", ErrMissingField)
	}
	var (
		msg AssistantMessage
		err error
	)
	if msg.ID, err = required("message.id", w.ID); err != nil {
		return AssistantMessage{}, err
	}
	if msg.Kind, err = required("message.type", w.Type); err != nil {
		return AssistantMessage{}, err
	}
	if msg.Role, err = required("message.role", w.Role); err != nil {
		return AssistantMessage{}, err
	}
	if msg.Model, err = required("message.model", w.Model); err != nil {
		return AssistantMessage{}, err
	}
	// An empty array decodes to a non-nil slice; nil means absent or null.
	if w.Content == nil {
		return AssistantMessage{}, fmt.Errorf("%w: message.content", ErrMissingField)
	}
	if msg.Content, err = decodeBlocks(w.Content); err != nil {
		return AssistantMessage{}, fmt.Errorf("message.content: %w", err)
	}
	if msg.Usage, err = validateUsage(w.Usage); err != nil {
		return AssistantMessage{}, err
	}
	msg.StopReason = w.StopReason
	msg.StopSequence = w.StopSequence
	return msg, nil
}

func decodeBlocks(raws []json.RawMessage) ([]ContentBlock, error) {
	blocks := make([]ContentBlock, 0, len(raws))
	for i, raw := range raws {
		block, err := decodeBlock(raw)
		if err != nil {
			return nil, fmt.Errorf("block %d: %w", i, err)
		}
		blocks = append(blocks, block)
	}
	return blocks, nil
}

func decodeBlock(raw json.RawMessage) (ContentBlock, error) {
	var env wireEnvelope
	if err := json.Unmarshal(raw, &env); err != nil {
		return nil, err
	}
	if env.Type == nil {
		return nil, ErrMissingDiscriminant
	}

	switch BlockType(*env.Type) {
	case BlockText:
		var w wireTextBlock
		if err := json.Unmarshal(raw, &w); err != nil {
			return nil, err
		}
		text, err := required("text", w.Text)
		if err != nil {
			return nil, err
		}
		return TextBlock{Text: text}, nil

	case BlockToolUse:
		var w wireToolUseBlock
		if err := json.Unmarshal(raw, &w); err != nil {
			return nil, err
		}
		id, err := required("id", w.ID)
		if err != nil {
			return nil, err
		}
		name, err := required("name", w.Name)
		if err != nil {
			return nil, err
		}
		if w.Input == nil {
			return nil, fmt.Errorf("%w: input", ErrMissingField)
		}
		return ToolUseBlock{ID: id, Name: name, Input: w.Input}, nil

	case BlockToolResult:
		var w wireToolResultBlock
		if err := json.Unmarshal(raw, &w); err != nil {
			return nil, err
		}
		toolUseID, err := required("tool_use_id", w.ToolUseID)
		if err != nil {
			return nil, err
		}
		block := ToolResultBlock{ToolUseID: toolUseID, IsError: w.IsError}
		if !isAbsent(w.Content) {
			payload, err := firstOf(w.Content, resultTextShape, resultTextsShape, resultImagesShape)
			if err != nil {
				return nil, fmt.Errorf("content: %w", err)
			}
			block.Content = payload
		}
		return block, nil

	case BlockThinking:
		var w wireThinkingBlock
		if err := json.Unmarshal(raw, &w); err != nil {
			return nil, err
		}
		thinking, err := required("thinking", w.Thinking)
		if err != nil {
			return nil, err
		}
		signature, err := required("signature", w.Signature)
		if err != nil {
			return nil, err
		}
		return ThinkingBlock{Thinking: thinking, Signature: signature}, nil

	case BlockImage:
		var w wireImageBlock
		if err := json.Unmarshal(raw, &w); err != nil {
			return nil, err
		}
		source, err := validateImageSource("source", w.Source)
		if err != nil {
			return nil, err
		}
		return ImageBlock{Source: source}, nil

	default:
		return nil, fmt.Errorf("%w: block %q", ErrUnknownKind, *env.Type)
	}
}

// firstOf tries each shape in order and returns the first successful decode.
// Callers must rule out null beforehand: decoding null into a string or slice
// is not an error in encoding/json.
func firstOf[T any](raw []byte, shapes ...func([]byte) (T, error)) (T, error) {
	for _, shape := range shapes {
		if v, err := shape(raw); err == nil {
			return v, nil
		}
	}
	var zero T
	return zero, ErrNoMatchingShape
}

func userTextShape(raw []byte) (UserContent, error) {
	var s string
	if err := json.Unmarshal(raw, &s); err != nil {
		return nil, err
	}
	return UserText(s), nil
}

func userBlocksShape(raw []byte) (UserContent, error) {
	var raws []json.RawMessage
	if err := json.Unmarshal(raw, &raws); err != nil {
		return nil, err
	}
	blocks, err := decodeBlocks(raws)
	if err != nil {
		return nil, err
	}
	return UserBlocks(blocks), nil
}

func resultTextShape(raw []byte) (ToolResultPayload, error) {
	var s string
	if err := json.Unmarshal(raw, &s); err != nil {
		return nil, err
	}
	return ToolResultText(s), nil
}

func resultTextsShape(raw []byte) (ToolResultPayload, error) {
	var ws []wireTextItem
	if err := json.Unmarshal(raw, &ws); err != nil {
		return nil, err
	}
	items := make(ToolResultTexts, 0, len(ws))
	for _, w := range ws {
		kind, err := required("type", w.Type)
		if err != nil {
			return nil, err
		}
		text, err := required("text", w.Text)
		if err != nil {
			return nil, err
		}
		items = append(items, TextItem{Kind: kind, Text: text})
	}
	return items, nil
}

func resultImagesShape(raw []byte) (ToolResultPayload, error) {
	var ws []wireImageItem
	if err := json.Unmarshal(raw, &ws); err != nil {
		return nil, err
	}
	items := make(ToolResultImages, 0, len(ws))
	for _, w := range ws {
		kind, err := required("type", w.Type)
		if err != nil {
			return nil, err
		}
		source, err := validateImageSource("source", w.Source)
		if err != nil {
			return nil, err
		}
		items = append(items, ImageItem{Kind: kind, Source: source})
	}
	return items, nil
}
