// Package ideas proposes tutorial-video ideas from a coarse scan of an app's
// codebase: directory layout and source-file names go into one JSON-mode
// model call that returns candidate VideoIdeas.
package ideas

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/reelpilot-org/reelpilot/pkg/llm"
	"github.com/reelpilot-org/reelpilot/pkg/types"
)

const ideasSystemPrompt = `You are a content strategist for short mobile app tutorial videos.

You are given the directory layout and source file names of a mobile app's codebase. Infer what user-facing features the app has, and propose tutorial video ideas that demonstrate them. Each idea must cover one concrete workflow a user would actually perform.

Respond with ONLY a JSON object of this shape:
{
  "ideas": [
    {
      "title": "short video title",
      "description": "one or two sentences on what the video shows",
      "feature": "the app feature being demonstrated",
      "recordingSteps": ["high level step 1", "high level step 2"]
    }
  ]
}`

type Generator struct {
	client *llm.Client
	log    *slog.Logger
}

func NewGenerator(client *llm.Client, logger *slog.Logger) *Generator {
	if logger == nil {
		logger = slog.Default()
	}
	return &Generator{client: client, log: logger}
}

// GenerateRequest bounds the scan and the output size.
type GenerateRequest struct {
	Root     string
	MaxDepth int
	Count    int
}

// Generate scans the codebase at req.Root and asks the model for up to
// req.Count video ideas.
func (g *Generator) Generate(ctx context.Context, req GenerateRequest) ([]types.VideoIdea, error) {
	count := req.Count
	if count <= 0 {
		count = 5
	}

	scan, err := Scan(req.Root, req.MaxDepth)
	if err != nil {
		return nil, err
	}
	if len(scan.Files) == 0 {
		return nil, errors.New("ideas: no source files found under scan root")
	}

	g.log.Info("codebase scanned",
		"root", req.Root,
		"dirs", len(scan.Dirs),
		"files", len(scan.Files),
	)

	var user strings.Builder
	fmt.Fprintf(&user, "Propose up to %d tutorial video ideas for the app with this codebase:\n\n", count)
	user.WriteString(scan.Summary(0))

	messages := []types.Message{
		types.SystemMessage(ideasSystemPrompt),
		types.UserMessage(user.String()),
	}

	var resp struct {
		Ideas []types.VideoIdea `json:"ideas"`
	}
	if err := g.client.ChatJSON(ctx, messages, &resp); err != nil {
		return nil, fmt.Errorf("ideas: %w", err)
	}
	if len(resp.Ideas) == 0 {
		return nil, errors.New("ideas: model returned no ideas")
	}
	if len(resp.Ideas) > count {
		resp.Ideas = resp.Ideas[:count]
	}

	return resp.Ideas, nil
}
