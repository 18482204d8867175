package planner

import (
	"errors"
	"reflect"
	"strings"
	"testing"

	"github.com/reelpilot-org/reelpilot/pkg/types"
)

func TestExtractPlanRawJSON(t *testing.T) {
	plan, err := ExtractPlan(finalPlanJSON)
	if err != nil {
		t.Fatalf("ExtractPlan: %v", err)
	}
	if plan.Title != "T" || len(plan.RecordingSteps) != 1 {
		t.Errorf("plan = %+v", plan)
	}
}

func TestExtractPlanFencedBlock(t *testing.T) {
	text := "I tested everything, here is the result:\n\n```json\n" + finalPlanJSON + "\n```\n\nLet me know if you need changes."
	plan, err := ExtractPlan(text)
	if err != nil {
		t.Fatalf("ExtractPlan: %v", err)
	}
	if plan.Title != "T" {
		t.Errorf("plan = %+v", plan)
	}
}

func TestExtractPlanEmbeddedInProse(t *testing.T) {
	text := "Here is the plan. " + finalPlanJSON + " That concludes the session."
	plan, err := ExtractPlan(text)
	if err != nil {
		t.Fatalf("ExtractPlan: %v", err)
	}
	if plan.Title != "T" {
		t.Errorf("plan = %+v", plan)
	}
}

// The same payload must decode identically no matter which strategy finds it.
func TestExtractPlanStrategyAgreement(t *testing.T) {
	inputs := []string{
		finalPlanJSON,
		"```json\n" + finalPlanJSON + "\n```",
		"prose before " + finalPlanJSON + " prose after",
	}
	var plans []*types.RecordingPlan
	for _, in := range inputs {
		plan, err := ExtractPlan(in)
		if err != nil {
			t.Fatalf("ExtractPlan(%q): %v", in[:20], err)
		}
		plans = append(plans, plan)
	}
	for i := 1; i < len(plans); i++ {
		if !reflect.DeepEqual(plans[0], plans[i]) {
			t.Errorf("strategy %d produced a different plan: %+v vs %+v", i, plans[0], plans[i])
		}
	}
}

func TestExtractPlanNoJSON(t *testing.T) {
	_, err := ExtractPlan("I could not complete the task, the app kept crashing.")
	if err == nil {
		t.Fatal("expected an error for a plain-text answer")
	}
	if !strings.Contains(err.Error(), "no parseable plan") {
		t.Errorf("message = %q", err.Error())
	}
}

func TestValidatePlan(t *testing.T) {
	ok := &types.RecordingPlan{
		Title:          "T",
		RecordingSteps: []types.ActionStep{{Type: types.ActionWait, Description: "settle"}},
	}
	if err := ValidatePlan(ok); err != nil {
		t.Errorf("ValidatePlan: %v", err)
	}

	empty := &types.RecordingPlan{Title: "T"}
	err := ValidatePlan(empty)
	if !errors.Is(err, ErrEmptyPlan) {
		t.Fatalf("expected ErrEmptyPlan, got %v", err)
	}
	if !strings.Contains(err.Error(), "recordingSteps is empty") {
		t.Errorf("message = %q", err.Error())
	}
}
