package llm

import (
	"context"

	"github.com/reelpilot-org/reelpilot/pkg/types"
)

// Provider defines the interface for an LLM provider (e.g., OpenAI, Gemini)
type Provider interface {
	// ID returns the unique identifier of the provider
	ID() string

	// Call executes a synchronous chat request
	Call(ctx context.Context, req *ProviderRequest) (*ProviderResponse, error)
}

type ProviderRequest struct {
	Model       string
	Messages    []types.Message
	Tools       []types.Tool
	ToolChoice  string // "auto" or empty
	JSONMode    bool   // ask the provider for a JSON-object response format
	MaxTokens   int
	Temperature float64
}

type ProviderResponse struct {
	ID           string
	Model        string
	Content      string
	ToolCalls    []types.ToolCall
	FinishReason string
	Usage        types.Usage
}
