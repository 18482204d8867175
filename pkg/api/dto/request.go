package dto

// CreateVideoRequest creates a new video record from an idea.
type CreateVideoRequest struct {
	Title          string   `json:"title" binding:"required"`
	Description    string   `json:"description"`
	Feature        string   `json:"feature"`
	SetupSteps     []string `json:"setupSteps"`
	RecordingSteps []string `json:"recordingSteps"`
}

// GeneratePlanRequest starts plan generation for a video against a device.
type GeneratePlanRequest struct {
	DeviceID string `json:"deviceId" binding:"required"`
}

// GenerateScriptRequest starts script generation for a planned video.
type GenerateScriptRequest struct {
	Prompt string `json:"prompt"`
}
