// Package planner drives the bounded tool-calling conversation that produces
// a verified recording plan: the model exercises the device through the
// Capability Port until it can emit a coordinate-exact action sequence.
package planner

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/reelpilot-org/reelpilot/pkg/device"
	"github.com/reelpilot-org/reelpilot/pkg/llm"
	"github.com/reelpilot-org/reelpilot/pkg/types"
)

const DefaultMaxIterations = 100

type Options struct {
	MaxIterations int
}

type Planner struct {
	client *llm.Client
	opts   Options
	log    *slog.Logger
}

func New(client *llm.Client, opts Options, logger *slog.Logger) *Planner {
	if logger == nil {
		logger = slog.Default()
	}
	if opts.MaxIterations <= 0 {
		opts.MaxIterations = DefaultMaxIterations
	}
	return &Planner{client: client, opts: opts, log: logger}
}

// PlanRequest is the caller's input: which device to exercise and the
// high-level idea the plan should realize.
type PlanRequest struct {
	DeviceID string
	Idea     types.VideoIdea
}

// GeneratePlan runs the conversation loop to completion. Each iteration is
// one model call with the full accumulated transcript. Tool calls are
// dispatched sequentially in emission order, since later calls may depend on
// UI state changed by earlier ones, and every reply lands in the transcript
// before the next model call. Failure is always an error, never a nil plan.
func (p *Planner) GeneratePlan(ctx context.Context, req PlanRequest, port device.Port) (*types.RecordingPlan, error) {
	d := newDispatcher(port, req.DeviceID, p.log)

	messages := []types.Message{
		types.SystemMessage(systemPrompt),
		types.UserMessage(buildUserPrompt(req.DeviceID, req.Idea)),
	}

	for iter := 0; iter < p.opts.MaxIterations; iter++ {
		resp, err := p.client.Complete(ctx, llm.Request{
			Messages:   messages,
			Tools:      Definitions(),
			ToolChoice: "auto",
		})
		if err != nil {
			return nil, err
		}

		if len(resp.ToolCalls) > 0 {
			p.log.Info("agent turn", "iteration", iter, "tool_calls", len(resp.ToolCalls))
			messages = append(messages, types.AssistantMessage(resp.Content, resp.ToolCalls))

			for _, call := range resp.ToolCalls {
				replies, err := d.Execute(ctx, call)
				if err != nil {
					return nil, err
				}
				messages = append(messages, replies...)
			}
			continue
		}

		// Final text answer. If it doesn't look like a plan object, issue a
		// single forced JSON-mode follow-up: one extra round trip, not a
		// retry loop.
		text := resp.Content
		if !looksLikePlan(text) {
			p.log.Info("final answer not plan-shaped, forcing json mode", "iteration", iter, "chars", len(text))
			followUp := append(append([]types.Message{}, messages...),
				types.AssistantMessage(text, nil),
				types.UserMessage(forceJSONPrompt),
			)
			jresp, err := p.client.Complete(ctx, llm.Request{Messages: followUp, JSONMode: true})
			if err != nil {
				return nil, err
			}
			text = jresp.Content
		}

		plan, err := ExtractPlan(text)
		if err != nil {
			return nil, err
		}
		if err := ValidatePlan(plan); err != nil {
			return nil, err
		}

		p.cleanup(ctx, port, req.DeviceID)
		p.log.Info("plan generated",
			"title", plan.Title,
			"setup_steps", len(plan.SetupSteps),
			"recording_steps", len(plan.RecordingSteps),
			"iterations", iter+1,
		)
		return plan, nil
	}

	return nil, fmt.Errorf("%w: no final answer after %d iterations", ErrMaxIterations, p.opts.MaxIterations)
}

// cleanup leaves the device in a deterministic state for the separate
// recording pass. Failures here never invalidate the plan.
func (p *Planner) cleanup(ctx context.Context, port device.Port, deviceID string) {
	if err := port.TerminateAllApps(ctx, deviceID); err != nil {
		p.log.Warn("cleanup: terminate apps failed", "error", err)
	}
	if err := port.PressButton(ctx, deviceID, device.ButtonHome); err != nil {
		p.log.Warn("cleanup: press home failed", "error", err)
	}
}

// looksLikePlan is the cheap heuristic for "the model already emitted the
// JSON object": starts with a brace and mentions a title key.
func looksLikePlan(text string) bool {
	t := strings.TrimSpace(text)
	return strings.HasPrefix(t, "{") && strings.Contains(t, `"title"`)
}
