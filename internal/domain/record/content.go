package record

import "encoding/json"

// UserContent is either UserText or UserBlocks.
type UserContent interface {
	isUserContent()
}

// UserText is a user message body sent as a plain string.
type UserText string

// UserBlocks is a user message body sent as a sequence of content blocks.
type UserBlocks []ContentBlock

func (UserText) isUserContent()   {}
func (UserBlocks) isUserContent() {}

// BlockType is the wire discriminant of a content block.
type BlockType string

const (
	BlockText       BlockType = "text"
	BlockToolUse    BlockType = "tool_use"
	BlockToolResult BlockType = "tool_result"
	BlockThinking   BlockType = "thinking"
	BlockImage      BlockType = "image"
)

// ContentBlock is one typed fragment of a message body. The set of
// implementations is closed.
type ContentBlock interface {
	BlockType() BlockType
	isContentBlock()
}

type TextBlock struct {
	Text string `json:"text"`
}

type ToolUseBlock struct {
	ID    string                     `json:"id"`
	Name  string                     `json:"name"`
	Input map[string]json.RawMessage `json:"input"`
}

type ToolResultBlock struct {
	ToolUseID string            `json:"tool_use_id"`
	Content   ToolResultPayload `json:"content,omitempty"`
	IsError   *bool             `json:"is_error,omitempty"`
}

type ThinkingBlock struct {
	Thinking  string `json:"thinking"`
	Signature string `json:"signature"`
}

type ImageBlock struct {
	Source ImageSource `json:"source"`
}

func (TextBlock) BlockType() BlockType       { return BlockText }
func (ToolUseBlock) BlockType() BlockType    { return BlockToolUse }
func (ToolResultBlock) BlockType() BlockType { return BlockToolResult }
func (ThinkingBlock) BlockType() BlockType   { return BlockThinking }
func (ImageBlock) BlockType() BlockType      { return BlockImage }

func (TextBlock) isContentBlock()       {}
func (ToolUseBlock) isContentBlock()    {}
func (ToolResultBlock) isContentBlock() {}
func (ThinkingBlock) isContentBlock()   {}
func (ImageBlock) isContentBlock()      {}

// ImageSource describes inline or referenced image data.
type ImageSource struct {
	Kind      string  `json:"kind"`
	Data      *string `json:"data,omitempty"`
	MediaType *string `json:"media_type,omitempty"`
}

// ToolResultPayload is the body of a tool result. The wire format carries no
// tag for it, so it is one of ToolResultText, ToolResultTexts or
// ToolResultImages depending on which shape the JSON value fits first.
type ToolResultPayload interface {
	isToolResultPayload()
}

type ToolResultText string

type ToolResultTexts []TextItem

type ToolResultImages []ImageItem

func (ToolResultText) isToolResultPayload()   {}
func (ToolResultTexts) isToolResultPayload()  {}
func (ToolResultImages) isToolResultPayload() {}

// TextItem is an element of a ToolResultTexts payload.
type TextItem struct {
	Kind string `json:"kind"`
	Text string `json:"text"`
}

// ImageItem is an element of a ToolResultImages payload.
type ImageItem struct {
	Kind   string      `json:"kind"`
	Source ImageSource `json:"source"`
}
