package scriptwriter

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/reelpilot-org/reelpilot/pkg/llm"
	"github.com/reelpilot-org/reelpilot/pkg/types"
)

type stubProvider struct {
	content string
	lastReq *llm.ProviderRequest
}

func (s *stubProvider) ID() string { return "stub" }

func (s *stubProvider) Call(ctx context.Context, req *llm.ProviderRequest) (*llm.ProviderResponse, error) {
	s.lastReq = req
	return &llm.ProviderResponse{Content: s.content}, nil
}

func newTestWriter(content string) (*Scriptwriter, *stubProvider) {
	p := &stubProvider{content: content}
	client := llm.NewClient(p, llm.Options{Model: "test-model"}, nil)
	return New(client, nil), p
}

func threeSteps() []types.ActionStep {
	return []types.ActionStep{
		{Type: types.ActionTap, Description: "open settings", Target: &types.Point{X: 40, Y: 700}},
		{Type: types.ActionSwipe, Description: "scroll down", Direction: "up"},
		{Type: types.ActionTap, Description: "enable dark mode", Target: &types.Point{X: 350, Y: 420}},
	}
}

func TestGenerateScriptAlignsActionsInOrder(t *testing.T) {
	w, p := newTestWriter(`{
		"script": "First, open settings. [pause 1s] Scroll down, then enable dark mode.",
		"totalDurationMs": 12000,
		"timestampedActions": [
			{"actionIndex": 0, "startTimeMs": 0, "endTimeMs": 3000},
			{"actionIndex": 1, "startTimeMs": 4000, "endTimeMs": 7000},
			{"actionIndex": 2, "startTimeMs": 8000, "endTimeMs": 12000}
		]
	}`)

	steps := threeSteps()
	script, err := w.GenerateScript(context.Background(), ScriptRequest{
		RecordingSteps: steps,
		VideoTitle:     "Dark Mode in 30 Seconds",
	})
	if err != nil {
		t.Fatalf("GenerateScript: %v", err)
	}

	if script.TotalDurationMS != 12000 {
		t.Errorf("totalDurationMs = %d", script.TotalDurationMS)
	}
	if len(script.TimestampedActions) != 3 {
		t.Fatalf("actions = %d", len(script.TimestampedActions))
	}
	for i, ta := range script.TimestampedActions {
		if ta.Action.Description != steps[i].Description {
			t.Errorf("action %d = %q, want %q", i, ta.Action.Description, steps[i].Description)
		}
		if ta.EndTimeMS <= ta.StartTimeMS {
			t.Errorf("action %d interval [%d, %d)", i, ta.StartTimeMS, ta.EndTimeMS)
		}
	}

	if !p.lastReq.JSONMode {
		t.Error("request must use json mode")
	}
	user := p.lastReq.Messages[len(p.lastReq.Messages)-1]
	if !strings.Contains(user.Content, "0. tap at (40, 700): open settings") {
		t.Errorf("prompt missing numbered action list: %q", user.Content)
	}
}

func TestGenerateScriptOutOfRangeIndex(t *testing.T) {
	w, _ := newTestWriter(`{
		"script": "x",
		"totalDurationMs": 1000,
		"timestampedActions": [{"actionIndex": 5, "startTimeMs": 0, "endTimeMs": 1000}]
	}`)

	_, err := w.GenerateScript(context.Background(), ScriptRequest{
		RecordingSteps: threeSteps()[:2],
	})
	if !errors.Is(err, ErrInvalidActionIndex) {
		t.Fatalf("expected ErrInvalidActionIndex, got %v", err)
	}
	if !strings.Contains(err.Error(), "index 5") || !strings.Contains(err.Error(), "2 steps") {
		t.Errorf("message = %q", err.Error())
	}
}

func TestGenerateScriptNegativeIndex(t *testing.T) {
	w, _ := newTestWriter(`{
		"script": "x",
		"totalDurationMs": 1000,
		"timestampedActions": [{"actionIndex": -1, "startTimeMs": 0, "endTimeMs": 1000}]
	}`)

	_, err := w.GenerateScript(context.Background(), ScriptRequest{RecordingSteps: threeSteps()})
	if !errors.Is(err, ErrInvalidActionIndex) {
		t.Fatalf("expected ErrInvalidActionIndex, got %v", err)
	}
}

func TestGenerateScriptInvertedInterval(t *testing.T) {
	w, _ := newTestWriter(`{
		"script": "x",
		"totalDurationMs": 1000,
		"timestampedActions": [{"actionIndex": 0, "startTimeMs": 1000, "endTimeMs": 500}]
	}`)

	_, err := w.GenerateScript(context.Background(), ScriptRequest{RecordingSteps: threeSteps()[:1]})
	if !errors.Is(err, ErrInvalidInterval) {
		t.Fatalf("expected ErrInvalidInterval, got %v", err)
	}
	if !strings.Contains(err.Error(), "[1000, 500)") {
		t.Errorf("message = %q", err.Error())
	}
}

func TestGenerateScriptZeroLengthInterval(t *testing.T) {
	w, _ := newTestWriter(`{
		"script": "x",
		"totalDurationMs": 1000,
		"timestampedActions": [{"actionIndex": 0, "startTimeMs": 500, "endTimeMs": 500}]
	}`)

	_, err := w.GenerateScript(context.Background(), ScriptRequest{RecordingSteps: threeSteps()[:1]})
	if !errors.Is(err, ErrInvalidInterval) {
		t.Fatalf("expected ErrInvalidInterval, got %v", err)
	}
}

func TestGenerateScriptCountMismatchIsNotFatal(t *testing.T) {
	// Two intervals for three steps: warn and carry on.
	w, _ := newTestWriter(`{
		"script": "short",
		"totalDurationMs": 5000,
		"timestampedActions": [
			{"actionIndex": 0, "startTimeMs": 0, "endTimeMs": 2000},
			{"actionIndex": 2, "startTimeMs": 2000, "endTimeMs": 5000}
		]
	}`)

	script, err := w.GenerateScript(context.Background(), ScriptRequest{RecordingSteps: threeSteps()})
	if err != nil {
		t.Fatalf("GenerateScript: %v", err)
	}
	if len(script.TimestampedActions) != 2 {
		t.Fatalf("actions = %d", len(script.TimestampedActions))
	}
	if script.TimestampedActions[1].Action.Description != "enable dark mode" {
		t.Errorf("action 1 = %+v", script.TimestampedActions[1].Action)
	}
}

func TestGenerateScriptFencedResponse(t *testing.T) {
	w, _ := newTestWriter("Here you go:\n```json\n" + `{
		"script": "tap it",
		"totalDurationMs": 2000,
		"timestampedActions": [{"actionIndex": 0, "startTimeMs": 0, "endTimeMs": 2000}]
	}` + "\n```")

	script, err := w.GenerateScript(context.Background(), ScriptRequest{RecordingSteps: threeSteps()[:1]})
	if err != nil {
		t.Fatalf("GenerateScript: %v", err)
	}
	if script.Script != "tap it" {
		t.Errorf("script = %q", script.Script)
	}
}

func TestGenerateScriptNoSteps(t *testing.T) {
	w, _ := newTestWriter(`{}`)
	if _, err := w.GenerateScript(context.Background(), ScriptRequest{}); err == nil {
		t.Fatal("expected an error for an empty step list")
	}
}
