package types

import "time"

// ImagePart is an inline image attached to a user message. Data is the raw
// base64 payload without a data-URL prefix; providers add their own framing.
type ImagePart struct {
	MIMEType string `json:"mime_type"`
	Data     string `json:"data"`
}

// Message is one entry in a conversation transcript. Transcripts are
// append-only; a message is never mutated after it is added.
//
// Image parts are only legal on user-role messages: the chat-completion
// calling convention does not accept image content on tool-role turns, which
// is why screenshot results are split into a tool message plus a synthetic
// user message carrying the image.
type Message struct {
	ID      string `json:"id"`
	Role    string `json:"role"` // system/user/assistant/tool
	Content string `json:"content"`

	// User: inline images
	Images []ImagePart `json:"images,omitempty"`

	// Assistant: Tool Calls
	ToolCalls []ToolCall `json:"tool_calls,omitempty"`

	// Tool: Result
	ToolCallID string `json:"tool_call_id,omitempty"`
	ToolName   string `json:"tool_name,omitempty"` // Required for Gemini

	Timestamp time.Time `json:"timestamp"`
}

func SystemMessage(content string) Message {
	return Message{ID: GenerateMessageID(), Role: RoleSystem, Content: content, Timestamp: time.Now()}
}

func UserMessage(content string) Message {
	return Message{ID: GenerateMessageID(), Role: RoleUser, Content: content, Timestamp: time.Now()}
}

// UserImageMessage builds the synthetic user turn that carries an image so
// the model can inspect it on its next call.
func UserImageMessage(content string, img ImagePart) Message {
	m := UserMessage(content)
	m.Images = []ImagePart{img}
	return m
}

func AssistantMessage(content string, calls []ToolCall) Message {
	return Message{ID: GenerateMessageID(), Role: RoleAssistant, Content: content, ToolCalls: calls, Timestamp: time.Now()}
}

func ToolResultMessage(callID, toolName, content string) Message {
	return Message{
		ID:         GenerateMessageID(),
		Role:       RoleTool,
		Content:    content,
		ToolCallID: callID,
		ToolName:   toolName,
		Timestamp:  time.Now(),
	}
}
