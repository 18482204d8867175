package factory

import (
	"context"
	"fmt"

	"github.com/reelpilot-org/reelpilot/pkg/config"
	"github.com/reelpilot-org/reelpilot/pkg/llm"
	"github.com/reelpilot-org/reelpilot/pkg/llm/gemini"
	"github.com/reelpilot-org/reelpilot/pkg/llm/openai"
)

// New constructs the provider named by providerID with the given options.
// OpenAI-compatible backends (deepseek and friends) share the openai
// implementation via BaseURL.
func New(ctx context.Context, providerID string, opts config.ProviderOptions) (llm.Provider, error) {
	switch providerID {
	case "openai", "deepseek":
		return openai.New(openai.Config{
			APIKey:  opts.APIKey,
			BaseURL: opts.BaseURL,
		}), nil
	case "gemini":
		return gemini.New(ctx, gemini.Config{
			APIKey:    opts.APIKey,
			ProjectID: opts.ProjectID,
			Location:  opts.Location,
			Model:     opts.Model,
		})
	default:
		return nil, fmt.Errorf("unknown provider: %q", providerID)
	}
}
