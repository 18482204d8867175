package planner

import (
	"fmt"
	"strings"

	"github.com/reelpilot-org/reelpilot/pkg/types"
)

const systemPrompt = `You are a mobile UI automation agent preparing a tutorial video recording.

Your job: physically test the workflow on the device using your tools, then produce a recording plan with EXACT coordinates taken from what you observed. Never invent coordinates.

Work like this:
1. take_screenshot to see the current state.
2. list_elements to get exact coordinates of what you want to touch.
3. Perform the workflow step by step (tap_at, swipe, type_keys), screenshotting after significant actions to verify they worked.
4. When you have tested the complete workflow end to end, reply with ONLY a JSON object (no prose, no markdown fence) in this exact shape:

{
  "title": "...",
  "description": "...",
  "setupSteps": [ <steps to reach the starting state> ],
  "recordingSteps": [ <steps performed on camera> ],
  "estimatedDurationSeconds": <number>,
  "screenshots": []
}

Each step is one of:
  {"type": "tap", "description": "...", "target": {"x": <int>, "y": <int>}}
  {"type": "swipe", "description": "...", "direction": "up|down|left|right"}
  {"type": "type", "description": "...", "text": "...", "submit": true|false}
  {"type": "wait", "description": "...", "durationMs": <int>}
  {"type": "press_button", "description": "...", "button": "home|back"}
  {"type": "verify", "assertion": "..."}

recordingSteps must contain every on-camera action you verified. An empty recordingSteps list is a failure.`

// buildUserPrompt turns the caller's idea into the opening user turn.
func buildUserPrompt(deviceID string, idea types.VideoIdea) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Prepare a recording plan on device %s.\n\n", deviceID)
	fmt.Fprintf(&b, "Video title: %s\n", idea.Title)
	if idea.Description != "" {
		fmt.Fprintf(&b, "Description: %s\n", idea.Description)
	}
	if idea.Feature != "" {
		fmt.Fprintf(&b, "Feature to demonstrate: %s\n", idea.Feature)
	}
	if len(idea.SetupSteps) > 0 {
		b.WriteString("\nSuggested setup:\n")
		for _, s := range idea.SetupSteps {
			fmt.Fprintf(&b, "- %s\n", s)
		}
	}
	if len(idea.RecordingSteps) > 0 {
		b.WriteString("\nSuggested recording flow:\n")
		for _, s := range idea.RecordingSteps {
			fmt.Fprintf(&b, "- %s\n", s)
		}
	}
	b.WriteString("\nTest the workflow now, then emit the JSON plan.")
	return b.String()
}

const forceJSONPrompt = `Respond now with ONLY the JSON recording plan object described in your instructions. No explanation, no markdown, just the JSON object.`
