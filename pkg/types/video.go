package types

import "time"

// VideoStage tracks how far a video record has progressed through the
// pipeline.
type VideoStage string

const (
	StageIdea   VideoStage = "idea"
	StagePlan   VideoStage = "plan"
	StageScript VideoStage = "script"
)

// Video is the persisted record a plan and script are attached to. The
// pipelines themselves never read or write these; ownership sits with the
// store and its callers.
type Video struct {
	ID    string     `json:"id"`
	Idea  VideoIdea  `json:"idea"`
	Stage VideoStage `json:"stage"`

	Plan   *RecordingPlan   `json:"plan,omitempty"`
	Script *VoiceoverScript `json:"script,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func NewVideo(idea VideoIdea) *Video {
	now := time.Now()
	return &Video{
		ID:        GenerateVideoID(),
		Idea:      idea,
		Stage:     StageIdea,
		CreatedAt: now,
		UpdatedAt: now,
	}
}
