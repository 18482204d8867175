package llm

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/reelpilot-org/reelpilot/pkg/types"
)

// stubProvider scripts responses for the client tests.
type stubProvider struct {
	resp     *ProviderResponse
	err      error
	lastReq  *ProviderRequest
	blockCtx bool // block until the request context expires
}

func (s *stubProvider) ID() string { return "stub" }

func (s *stubProvider) Call(ctx context.Context, req *ProviderRequest) (*ProviderResponse, error) {
	s.lastReq = req
	if s.blockCtx {
		<-ctx.Done()
		return nil, ctx.Err()
	}
	if s.err != nil {
		return nil, s.err
	}
	return s.resp, nil
}

func TestCompleteTimeout(t *testing.T) {
	p := &stubProvider{blockCtx: true}
	c := NewClient(p, Options{Model: "m", RequestTimeout: 20 * time.Millisecond}, nil)

	start := time.Now()
	_, err := c.Complete(context.Background(), Request{Messages: []types.Message{types.UserMessage("hi")}})
	if !errors.Is(err, ErrTimeout) {
		t.Fatalf("expected ErrTimeout, got %v", err)
	}
	if time.Since(start) > time.Second {
		t.Error("deadline not enforced")
	}
}

func TestCompletePassesThroughAPIError(t *testing.T) {
	apiErr := &APIError{StatusCode: 500, Body: "boom"}
	p := &stubProvider{err: apiErr}
	c := NewClient(p, Options{Model: "m"}, nil)

	_, err := c.Complete(context.Background(), Request{})
	var got *APIError
	if !errors.As(err, &got) || got.StatusCode != 500 {
		t.Fatalf("expected APIError passthrough, got %v", err)
	}
}

func TestChatNoContent(t *testing.T) {
	p := &stubProvider{resp: &ProviderResponse{
		ToolCalls: []types.ToolCall{{ID: "1", Name: "take_screenshot", Arguments: "{}"}},
	}}
	c := NewClient(p, Options{Model: "m"}, nil)

	_, err := c.Chat(context.Background(), []types.Message{types.UserMessage("hi")})
	if !errors.Is(err, ErrNoContent) {
		t.Fatalf("expected ErrNoContent, got %v", err)
	}
}

func TestChatJSON(t *testing.T) {
	p := &stubProvider{resp: &ProviderResponse{
		Content: "Sure:\n```json\n{\"name\": \"demo\", \"count\": 3}\n```",
	}}
	c := NewClient(p, Options{Model: "m"}, nil)

	var out struct {
		Name  string `json:"name"`
		Count int    `json:"count"`
	}
	if err := c.ChatJSON(context.Background(), []types.Message{types.UserMessage("go")}, &out); err != nil {
		t.Fatalf("ChatJSON: %v", err)
	}
	if out.Name != "demo" || out.Count != 3 {
		t.Errorf("decoded %+v", out)
	}
	if !p.lastReq.JSONMode {
		t.Error("expected JSONMode to be set on the provider request")
	}
}

func TestChatJSONParseFailureIsHard(t *testing.T) {
	p := &stubProvider{resp: &ProviderResponse{Content: "not even close to json"}}
	c := NewClient(p, Options{Model: "m"}, nil)

	var out map[string]any
	if err := c.ChatJSON(context.Background(), nil, &out); err == nil {
		t.Fatal("expected error for unparseable output")
	}
}
