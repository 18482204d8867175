package types

// VideoIdea is the high-level hint the caller supplies to the planner: what
// the tutorial should cover, in prose rather than coordinates.
type VideoIdea struct {
	Title          string   `json:"title"`
	Description    string   `json:"description"`
	Feature        string   `json:"feature,omitempty"`
	SetupSteps     []string `json:"setupSteps,omitempty"`
	RecordingSteps []string `json:"recordingSteps,omitempty"`
}

// RecordingPlan is the validated, coordinate-exact action sequence for one
// tutorial video segment. RecordingSteps must be non-empty: an empty list
// means the agent never actually tested the workflow, and such a plan is
// rejected outright rather than repaired.
type RecordingPlan struct {
	Title                    string       `json:"title"`
	Description              string       `json:"description"`
	SetupSteps               []ActionStep `json:"setupSteps"`
	RecordingSteps           []ActionStep `json:"recordingSteps"`
	EstimatedDurationSeconds int          `json:"estimatedDurationSeconds"`
	Screenshots              []string     `json:"screenshots"`
}

// TimestampedAction pairs one recording step with its narration interval.
// EndTimeMS > StartTimeMS; the sequence is produced in the same order as the
// input recording steps.
type TimestampedAction struct {
	Action      ActionStep `json:"action"`
	StartTimeMS int        `json:"startTimeMs"`
	EndTimeMS   int        `json:"endTimeMs"`
}

// VoiceoverScript is narration text plus per-action timing. Script may embed
// pause directives such as "[pause 500ms]".
type VoiceoverScript struct {
	Script             string              `json:"script"`
	TotalDurationMS    int                 `json:"totalDurationMs"`
	TimestampedActions []TimestampedAction `json:"timestampedActions"`
}
