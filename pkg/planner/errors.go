package planner

import "errors"

var (
	// ErrUnknownTool means the model invoked a tool outside the closed set.
	ErrUnknownTool = errors.New("planner: unknown tool")

	// ErrMaxIterations means the conversation never produced a final answer
	// within the iteration budget.
	ErrMaxIterations = errors.New("planner: max iterations exceeded")

	// ErrEmptyPlan is the business-rule gate: a syntactically valid plan with
	// no recording steps means the agent never tested the workflow. Distinct
	// from extraction errors so callers can tell "the agent gave up" apart
	// from "the transport broke".
	ErrEmptyPlan = errors.New("plan validation failed")
)
