package scriptwriter

import (
	"fmt"
	"strings"
)

const scriptSystemPrompt = `You are a professional voiceover writer for short mobile app tutorial videos.

You receive a numbered list of UI actions that will be performed on screen, in order. Write a natural, friendly narration that guides the viewer through what is happening, and assign each action a start and end time in milliseconds.

Pacing rules:
- Assume a speaking rate of about 140 words per minute, roughly 430 milliseconds per word. Budget each action's interval to fit the words spoken over it.
- Where the app needs time to load or transition, insert an explicit pause directive into the script, written as [pause Xs], and stretch the surrounding intervals to cover it.
- Intervals must be in the same order as the actions and must not overlap. Every endTimeMs must be greater than its startTimeMs.

Respond with ONLY a JSON object of this exact shape:
{
  "script": "full narration text, with [pause Xs] directives where needed",
  "totalDurationMs": 45000,
  "timestampedActions": [
    {"actionIndex": 0, "startTimeMs": 0, "endTimeMs": 3000}
  ]
}

actionIndex refers to the zero-based number of the action in the list you were given. Include one entry per action.`

func buildScriptPrompt(req ScriptRequest) string {
	var b strings.Builder

	if req.VideoTitle != "" {
		fmt.Fprintf(&b, "Video title: %s\n", req.VideoTitle)
	}
	if req.VideoDescription != "" {
		fmt.Fprintf(&b, "Video description: %s\n", req.VideoDescription)
	}
	if req.Prompt != "" {
		fmt.Fprintf(&b, "Additional direction: %s\n", req.Prompt)
	}

	b.WriteString("\nActions, in order:\n")
	for i, step := range req.RecordingSteps {
		fmt.Fprintf(&b, "%d. %s\n", i, step.Describe())
	}

	b.WriteString("\nWrite the narration and timing for these actions.")
	return b.String()
}
