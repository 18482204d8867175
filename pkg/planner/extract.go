package planner

import (
	"encoding/json"
	"fmt"
	"regexp"
	"strings"

	"github.com/reelpilot-org/reelpilot/pkg/types"
)

var (
	planFenceRe = regexp.MustCompile("```(?:json)?\\s*([\\s\\S]*?)```")

	// planSpanRe grabs from the first brace through a region carrying both
	// keys a plan must have. Greedy so nested objects stay inside the span.
	planSpanRe = regexp.MustCompile(`(?s)\{.*"title".*"recordingSteps".*\}`)
)

// ExtractPlan parses a recording plan out of the model's final answer.
// Strategies, in order: fenced code block, the plan-shaped span, the raw
// trimmed text. The first candidate that unmarshals wins; if none does, the
// parse error propagates unmodified; there is no silent fallback to an
// empty plan.
func ExtractPlan(text string) (*types.RecordingPlan, error) {
	var candidates []string
	if m := planFenceRe.FindStringSubmatch(text); m != nil {
		candidates = append(candidates, strings.TrimSpace(m[1]))
	}
	if m := planSpanRe.FindString(text); m != "" {
		candidates = append(candidates, m)
	}
	candidates = append(candidates, strings.TrimSpace(text))

	var lastErr error
	for _, cand := range candidates {
		if cand == "" {
			continue
		}
		var plan types.RecordingPlan
		if err := json.Unmarshal([]byte(cand), &plan); err != nil {
			lastErr = err
			continue
		}
		return &plan, nil
	}

	return nil, fmt.Errorf("planner: no parseable plan in final answer (%d chars): %w", len(text), lastErr)
}

// ValidatePlan applies the business-rule gate. A plan that parsed but tested
// nothing is rejected outright, not retried, not repaired.
func ValidatePlan(plan *types.RecordingPlan) error {
	if len(plan.RecordingSteps) == 0 {
		return fmt.Errorf("%w: recordingSteps is empty, the agent finished without testing any workflow actions", ErrEmptyPlan)
	}
	return nil
}
