package record

import "encoding/json"

// Wire shapes mirror the camelCase JSON written by the logging tool. Required
// fields are pointers so that absence and null can be told apart from zero
// values; see validation.go.

type wireEnvelope struct {
	Type *string `json:"type"`
}

type wireBase struct {
	ParentUUID  *string `json:"parentUuid"`
	IsSidechain *bool   `json:"isSidechain"`
	UserType    *string `json:"userType"`
	Cwd         *string `json:"cwd"`
	SessionID   *string `json:"sessionId"`
	Version     *string `json:"version"`
	UUID        *string `json:"uuid"`
	Timestamp   *string `json:"timestamp"`
}

type wireSummary struct {
	Type     string  `json:"type"`
	Summary  *string `json:"summary"`
	LeafUUID *string `json:"leafUuid"`
}

type wireSystem struct {
	Type string `json:"type"`
	wireBase
	Content   *string `json:"content"`
	IsMeta    *bool   `json:"isMeta"`
	ToolUseID *string `json:"toolUseID,omitempty"`
	Level     *string `json:"level,omitempty"`
	GitBranch *string `json:"gitBranch,omitempty"`
	RequestID *string `json:"requestId,omitempty"`
}

type wireUser struct {
	Type string `json:"type"`
	wireBase
	Message          *wireUserMessage `json:"message"`
	GitBranch        *string          `json:"gitBranch,omitempty"`
	IsMeta           *bool            `json:"isMeta,omitempty"`
	IsCompactSummary *bool            `json:"isCompactSummary,omitempty"`
	ToolUseResult    json.RawMessage  `json:"toolUseResult,omitempty"`
}

type wireAssistant struct {
	Type string `json:"type"`
	wireBase
	Message           *wireAssistantMessage `json:"message"`
	RequestID         *string               `json:"requestId,omitempty"`
	GitBranch         *string               `json:"gitBranch,omitempty"`
	IsAPIErrorMessage *bool                 `json:"isApiErrorMessage,omitempty"`
}

type wireUserMessage struct {
	Role    *string         `json:"role"`
	Content json.RawMessage `json:"content"`
}

type wireAssistantMessage struct {
	ID           *string           `json:"id"`
	Type         *string           `json:"type"`
	Role         *string           `json:"role"`
	Model        *string           `json:"model"`
	Content      []json.RawMessage `json:"content"`
	StopReason   *string           `json:"stop_reason"`
	StopSequence *string           `json:"stop_sequence"`
	Usage        *wireUsage        `json:"usage"`
}

type wireUsage struct {
	InputTokens              *uint64            `json:"input_tokens"`
	CacheCreationInputTokens *uint64            `json:"cache_creation_input_tokens"`
	CacheReadInputTokens     *uint64            `json:"cache_read_input_tokens"`
	OutputTokens             *uint64            `json:"output_tokens"`
	ServiceTier              *string            `json:"service_tier,omitempty"`
	ServerToolUse            *wireServerToolUse `json:"server_tool_use,omitempty"`
}

type wireServerToolUse struct {
	WebSearchRequests *uint64 `json:"web_search_requests"`
}

type wireTextBlock struct {
	Type string  `json:"type"`
	Text *string `json:"text"`
}

type wireToolUseBlock struct {
	Type  string                     `json:"type"`
	ID    *string                    `json:"id"`
	Name  *string                    `json:"name"`
	Input map[string]json.RawMessage `json:"input"`
}

type wireToolResultBlock struct {
	Type      string          `json:"type"`
	ToolUseID *string         `json:"tool_use_id"`
	Content   json.RawMessage `json:"content,omitempty"`
	IsError   *bool           `json:"is_error,omitempty"`
}

type wireThinkingBlock struct {
	Type      string  `json:"type"`
	Thinking  *string `json:"thinking"`
	Signature *string `json:"signature"`
}

type wireImageBlock struct {
	Type   string           `json:"type"`
	Source *wireImageSource `json:"source"`
}

type wireImageSource struct {
	Type      *string `json:"type"`
	Data      *string `json:"data,omitempty"`
	MediaType *string `json:"media_type,omitempty"`
}

type wireTextItem struct {
	Type *string `json:"type"`
	Text *string `json:"text"`
}

type wireImageItem struct {
	Type   *string          `json:"type"`
	Source *wireImageSource `json:"source"`
}
