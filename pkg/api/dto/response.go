package dto

import (
	"time"

	"github.com/reelpilot-org/reelpilot/pkg/types"
)

// VideoResponse is the response for a single video.
type VideoResponse struct {
	ID        string                 `json:"id"`
	Stage     types.VideoStage       `json:"stage"`
	Idea      types.VideoIdea        `json:"idea"`
	Plan      *types.RecordingPlan   `json:"plan,omitempty"`
	Script    *types.VoiceoverScript `json:"script,omitempty"`
	CreatedAt time.Time              `json:"created_at"`
	UpdatedAt time.Time              `json:"updated_at"`
}

// VideoListResponse is the response for listing videos.
type VideoListResponse struct {
	Videos []VideoResponse `json:"videos"`
}

// HealthResponse is the response for health check.
type HealthResponse struct {
	Status  string `json:"status"`
	Version string `json:"version"`
}

// ErrorResponse is a standard error response.
type ErrorResponse struct {
	Error string `json:"error"`
}

// DeleteResponse is the response for delete operations.
type DeleteResponse struct {
	Deleted bool `json:"deleted"`
}

// FromVideo maps a stored video record onto the wire shape.
func FromVideo(v *types.Video) VideoResponse {
	return VideoResponse{
		ID:        v.ID,
		Stage:     v.Stage,
		Idea:      v.Idea,
		Plan:      v.Plan,
		Script:    v.Script,
		CreatedAt: v.CreatedAt,
		UpdatedAt: v.UpdatedAt,
	}
}
