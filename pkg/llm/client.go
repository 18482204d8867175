package llm

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/reelpilot-org/reelpilot/pkg/types"
)

const DefaultRequestTimeout = 120 * time.Second

// Options is the immutable per-client configuration. Model and timeouts are
// threaded in here once; nothing downstream reads the environment.
type Options struct {
	Model          string
	RequestTimeout time.Duration
	Temperature    float64
	MaxTokens      int
}

// Client is a stateless request/response wrapper around a Provider. It owns
// the per-request deadline and the error taxonomy; conversation state lives
// entirely with the caller.
type Client struct {
	provider Provider
	opts     Options
	log      *slog.Logger
}

func NewClient(provider Provider, opts Options, logger *slog.Logger) *Client {
	if logger == nil {
		logger = slog.Default()
	}
	if opts.RequestTimeout <= 0 {
		opts.RequestTimeout = DefaultRequestTimeout
	}
	return &Client{provider: provider, opts: opts, log: logger}
}

type Request struct {
	Messages   []types.Message
	Tools      []types.Tool
	ToolChoice string
	JSONMode   bool
}

type Response struct {
	Content      string
	ToolCalls    []types.ToolCall
	FinishReason string
	Usage        types.Usage
}

// Complete performs one chat-completion round trip under the client's
// deadline. Deadline expiry surfaces as ErrTimeout; provider failures pass
// through untouched (transport errors are never retried here).
func (c *Client) Complete(ctx context.Context, req Request) (*Response, error) {
	ctx, cancel := context.WithTimeout(ctx, c.opts.RequestTimeout)
	defer cancel()

	resp, err := c.provider.Call(ctx, &ProviderRequest{
		Model:       c.opts.Model,
		Messages:    req.Messages,
		Tools:       req.Tools,
		ToolChoice:  req.ToolChoice,
		JSONMode:    req.JSONMode,
		MaxTokens:   c.opts.MaxTokens,
		Temperature: c.opts.Temperature,
	})
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) {
			return nil, fmt.Errorf("%w after %s", ErrTimeout, c.opts.RequestTimeout)
		}
		return nil, err
	}

	c.log.Debug("completion",
		"model", resp.Model,
		"finish_reason", resp.FinishReason,
		"tool_calls", len(resp.ToolCalls),
		"tokens", resp.Usage.TotalTokens,
	)

	return &Response{
		Content:      resp.Content,
		ToolCalls:    resp.ToolCalls,
		FinishReason: resp.FinishReason,
		Usage:        resp.Usage,
	}, nil
}

// Chat is the convenience wrapper for plain text turns. A response without
// text content (e.g. tool calls only) is ErrNoContent.
func (c *Client) Chat(ctx context.Context, messages []types.Message) (string, error) {
	resp, err := c.Complete(ctx, Request{Messages: messages})
	if err != nil {
		return "", err
	}
	if resp.Content == "" {
		return "", ErrNoContent
	}
	return resp.Content, nil
}

// ChatJSON runs a JSON-mode completion and decodes the extracted object into
// out. Extraction order: fenced code block, first brace-balanced span, the
// whole trimmed text; the first candidate that parses wins. A parse failure
// is a hard error, never swallowed.
func (c *Client) ChatJSON(ctx context.Context, messages []types.Message, out any) error {
	resp, err := c.Complete(ctx, Request{Messages: messages, JSONMode: true})
	if err != nil {
		return err
	}
	if resp.Content == "" {
		return ErrNoContent
	}

	raw, err := ExtractJSONObject(resp.Content)
	if err != nil {
		return err
	}
	if err := json.Unmarshal([]byte(raw), out); err != nil {
		return fmt.Errorf("llm: decode json response: %w", err)
	}
	return nil
}
