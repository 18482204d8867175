package types

import (
	"github.com/oklog/ulid/v2"
)

// Role of a conversation message.
const (
	RoleSystem    = "system"
	RoleUser      = "user"
	RoleAssistant = "assistant"
	RoleTool      = "tool"
)

// JSONSchema represents a JSON Schema definition
type JSONSchema map[string]any

// Usage reports token accounting returned by a provider.
type Usage struct {
	PromptTokens     int `json:"prompt_tokens"`
	CompletionTokens int `json:"completion_tokens"`
	TotalTokens      int `json:"total_tokens"`
}

// ID Generation Helpers

func GenerateID(prefix string) string {
	return prefix + "_" + ulid.Make().String()
}

func GenerateVideoID() string    { return GenerateID("vid") }
func GenerateMessageID() string  { return GenerateID("msg") }
func GenerateToolCallID() string { return GenerateID("call") }
