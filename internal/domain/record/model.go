package record

import "encoding/json"

// Kind identifies the variant of a Record.
type Kind string

const (
	KindSummary   Kind = "summary"
	KindSystem    Kind = "system"
	KindUser      Kind = "user"
	KindAssistant Kind = "assistant"
)

// Record is one decoded log entry. The set of implementations is closed:
// Summary, System, User and Assistant.
type Record interface {
	Kind() Kind
	// Timestamp returns the raw ISO-8601 timestamp. Summary records have none.
	Timestamp() (string, bool)
	// TextFragments returns the displayable text of the record in order.
	TextFragments() []string

	isRecord()
}

// Base holds the fields shared by every conversational record.
type Base struct {
	ParentID      *string `json:"parent_id,omitempty"`
	IsSidechain   bool    `json:"is_sidechain"`
	UserType      string  `json:"user_type"`
	WorkingDir    string  `json:"working_dir"`
	SessionID     string  `json:"session_id"`
	SchemaVersion string  `json:"schema_version"`
	ID            string  `json:"id"`
	Timestamp     string  `json:"timestamp"`
}

// Summary is a terminal metadata record written when a conversation is
// compacted. It is not part of a conversation turn.
type Summary struct {
	Summary string `json:"summary"`
	LeafID  string `json:"leaf_id"`
}

// System is a record emitted by the tool itself rather than a participant.
type System struct {
	Base
	Content   string  `json:"content"`
	IsMeta    bool    `json:"is_meta"`
	ToolUseID *string `json:"tool_use_id,omitempty"`
	Level     *string `json:"level,omitempty"`
	Branch    *string `json:"branch,omitempty"`
	RequestID *string `json:"request_id,omitempty"`
}

// User is a user turn, including tool results fed back to the model.
type User struct {
	Base
	Message          UserMessage `json:"message"`
	Branch           *string     `json:"branch,omitempty"`
	IsMeta           *bool       `json:"is_meta,omitempty"`
	IsCompactSummary *bool       `json:"is_compact_summary,omitempty"`
	// ToolUseResult is kept opaque; nil when absent or null on the wire.
	ToolUseResult json.RawMessage `json:"tool_use_result,omitempty"`
}

// Assistant is a model turn.
type Assistant struct {
	Base
	Message    AssistantMessage `json:"message"`
	RequestID  *string          `json:"request_id,omitempty"`
	Branch     *string          `json:"branch,omitempty"`
	IsAPIError *bool            `json:"is_api_error,omitempty"`
}

// UserMessage is the body of a user turn.
type UserMessage struct {
	Role    string      `json:"role"`
	Content UserContent `json:"content"`
}

// AssistantMessage is the body of a model turn.
type AssistantMessage struct {
	ID           string         `json:"id"`
	Kind         string         `json:"kind"`
	Role         string         `json:"role"`
	Model        string         `json:"model"`
	Content      []ContentBlock `json:"content"`
	StopReason   *string        `json:"stop_reason,omitempty"`
	StopSequence *string        `json:"stop_sequence,omitempty"`
	Usage        Usage          `json:"usage"`
}

// Usage reports token accounting for one assistant turn. Optional fields are
// nil when absent, which is distinct from zero.
type Usage struct {
	InputTokens         uint64  `json:"input_tokens"`
	CacheCreationTokens uint64  `json:"cache_creation_tokens"`
	CacheReadTokens     uint64  `json:"cache_read_tokens"`
	OutputTokens        uint64  `json:"output_tokens"`
	ServiceTier         *string `json:"service_tier,omitempty"`
	WebSearchRequests   *uint64 `json:"web_search_requests,omitempty"`
}

func (Summary) Kind() Kind   { return KindSummary }
func (System) Kind() Kind    { return KindSystem }
func (User) Kind() Kind      { return KindUser }
func (Assistant) Kind() Kind { return KindAssistant }

func (Summary) Timestamp() (string, bool)     { return "", false }
func (r System) Timestamp() (string, bool)    { return r.Base.Timestamp, true }
func (r User) Timestamp() (string, bool)      { return r.Base.Timestamp, true }
func (r Assistant) Timestamp() (string, bool) { return r.Base.Timestamp, true }

func (Summary) isRecord()   {}
func (System) isRecord()    {}
func (User) isRecord()      {}
func (Assistant) isRecord() {}

// BaseOf returns the shared conversational fields of r, or false for Summary.
func BaseOf(r Record) (Base, bool) {
	switch v := r.(type) {
	case System:
		return v.Base, true
	case User:
		return v.Base, true
	case Assistant:
		return v.Base, true
	default:
		return Base{}, false
	}
}

// IDOf returns the record identifier: the uuid for conversational records and
// the leaf id for summaries.
func IDOf(r Record) string {
	if s, ok := r.(Summary); ok {
		return s.LeafID
	}
	base, _ := BaseOf(r)
	return base.ID
}
