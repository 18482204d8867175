// Package scriptwriter generates a narration script time-aligned to the
// actions of a recording plan. One JSON-mode model call, no conversation
// loop: the model gets a numbered action list and returns narration plus a
// millisecond interval per action index.
package scriptwriter

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/reelpilot-org/reelpilot/pkg/llm"
	"github.com/reelpilot-org/reelpilot/pkg/types"
)

// ErrInvalidActionIndex means the model referenced an action index outside
// the input range. The interval content can't be trusted at that point, so
// the whole script is rejected rather than clamped.
var ErrInvalidActionIndex = errors.New("scriptwriter: action index out of range")

// ErrInvalidInterval means an action's end time does not come after its
// start. Rejected like a bad index, never clamped.
var ErrInvalidInterval = errors.New("scriptwriter: action interval end must be after start")

type Scriptwriter struct {
	client *llm.Client
	log    *slog.Logger
}

func New(client *llm.Client, logger *slog.Logger) *Scriptwriter {
	if logger == nil {
		logger = slog.Default()
	}
	return &Scriptwriter{client: client, log: logger}
}

// ScriptRequest carries the plan actions to narrate plus optional context
// that shapes the tone of the narration.
type ScriptRequest struct {
	RecordingSteps   []types.ActionStep
	VideoTitle       string
	VideoDescription string
	Prompt           string
}

// scriptResponse is the wire shape the model is asked to return. Actions
// come back as indices into the request's step list, not as full objects.
type scriptResponse struct {
	Script             string `json:"script"`
	TotalDurationMS    int    `json:"totalDurationMs"`
	TimestampedActions []struct {
		ActionIndex int `json:"actionIndex"`
		StartTimeMS int `json:"startTimeMs"`
		EndTimeMS   int `json:"endTimeMs"`
	} `json:"timestampedActions"`
}

// GenerateScript produces the voiceover script for the given steps. Every
// returned actionIndex is resolved against the input slice; an out-of-range
// index or an interval whose end does not come after its start fails the
// whole call. A count mismatch between input steps and returned intervals is
// only a warning, since each entry is checked on its own.
func (s *Scriptwriter) GenerateScript(ctx context.Context, req ScriptRequest) (*types.VoiceoverScript, error) {
	if len(req.RecordingSteps) == 0 {
		return nil, errors.New("scriptwriter: no recording steps to narrate")
	}

	messages := []types.Message{
		types.SystemMessage(scriptSystemPrompt),
		types.UserMessage(buildScriptPrompt(req)),
	}

	var resp scriptResponse
	if err := s.client.ChatJSON(ctx, messages, &resp); err != nil {
		return nil, fmt.Errorf("scriptwriter: %w", err)
	}

	if len(resp.TimestampedActions) != len(req.RecordingSteps) {
		s.log.Warn("timestamped action count differs from input steps",
			"input", len(req.RecordingSteps),
			"returned", len(resp.TimestampedActions),
		)
	}

	actions := make([]types.TimestampedAction, 0, len(resp.TimestampedActions))
	for _, ta := range resp.TimestampedActions {
		if ta.ActionIndex < 0 || ta.ActionIndex >= len(req.RecordingSteps) {
			return nil, fmt.Errorf("%w: index %d with %d steps",
				ErrInvalidActionIndex, ta.ActionIndex, len(req.RecordingSteps))
		}
		if ta.EndTimeMS <= ta.StartTimeMS {
			return nil, fmt.Errorf("%w: index %d has [%d, %d)",
				ErrInvalidInterval, ta.ActionIndex, ta.StartTimeMS, ta.EndTimeMS)
		}
		actions = append(actions, types.TimestampedAction{
			Action:      req.RecordingSteps[ta.ActionIndex],
			StartTimeMS: ta.StartTimeMS,
			EndTimeMS:   ta.EndTimeMS,
		})
	}

	s.log.Info("script generated",
		"actions", len(actions),
		"total_duration_ms", resp.TotalDurationMS,
	)

	return &types.VoiceoverScript{
		Script:             resp.Script,
		TotalDurationMS:    resp.TotalDurationMS,
		TimestampedActions: actions,
	}, nil
}
