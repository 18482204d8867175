package planner

import (
	"bytes"
	"encoding/json"
	"reflect"

	"github.com/reelpilot-org/reelpilot/pkg/types"
)

// ToolID enumerates the closed set of tools the agent may call. Dispatch is
// keyed on this type, so an unknown identifier cannot be constructed past the
// name lookup.
type ToolID int

const (
	ToolTakeScreenshot ToolID = iota
	ToolListElements
	ToolTapAt
	ToolSwipe
	ToolTypeKeys
)

var toolNames = map[ToolID]string{
	ToolTakeScreenshot: "take_screenshot",
	ToolListElements:   "list_elements",
	ToolTapAt:          "tap_at",
	ToolSwipe:          "swipe",
	ToolTypeKeys:       "type_keys",
}

var toolIDsByName = func() map[string]ToolID {
	m := make(map[string]ToolID, len(toolNames))
	for id, name := range toolNames {
		m[name] = id
	}
	return m
}()

func (id ToolID) Name() string { return toolNames[id] }

// LookupTool resolves a model-emitted tool name to its identifier.
func LookupTool(name string) (ToolID, bool) {
	id, ok := toolIDsByName[name]
	return id, ok
}

// Per-tool argument shapes. Padded payloads decode leniently; malformed
// payloads degrade to the zero value rather than aborting the conversation.

type tapArgs struct {
	X int `json:"x"`
	Y int `json:"y"`
}

type swipeArgs struct {
	Direction string `json:"direction"`
}

type typeKeysArgs struct {
	Text   string `json:"text"`
	Submit bool   `json:"submit"`
}

// decodeArgs parses a tool-call argument string into out. Unknown fields are
// tolerated on a payload that otherwise parses, since models routinely pad
// arguments; only genuinely malformed JSON degrades, leaving out at its zero
// value and reporting false. The call still proceeds as a no-arg invocation
// so one sloppy tool call can't take down the whole conversation.
func decodeArgs(raw string, out any) bool {
	if raw == "" {
		return true
	}
	dec := json.NewDecoder(bytes.NewReader([]byte(raw)))
	dec.DisallowUnknownFields()
	if dec.Decode(out) == nil {
		return true
	}

	// Strict decode may have partially filled out before failing.
	reflect.ValueOf(out).Elem().SetZero()
	if json.Unmarshal([]byte(raw), out) == nil {
		return true
	}
	reflect.ValueOf(out).Elem().SetZero()
	return false
}

// Definitions returns the tool schema advertised to the model.
func Definitions() []types.Tool {
	return []types.Tool{
		{
			Name:        toolNames[ToolTakeScreenshot],
			Description: "Capture the device screen. Use this to see the current UI state before and after actions.",
			Parameters: types.JSONSchema{
				"type":       "object",
				"properties": map[string]any{},
			},
		},
		{
			Name:        toolNames[ToolListElements],
			Description: "List the accessibility elements on the current screen with their exact coordinates and sizes.",
			Parameters: types.JSONSchema{
				"type":       "object",
				"properties": map[string]any{},
			},
		},
		{
			Name:        toolNames[ToolTapAt],
			Description: "Tap the screen at exact coordinates. Get coordinates from list_elements, never guess.",
			Parameters: types.JSONSchema{
				"type": "object",
				"properties": map[string]any{
					"x": map[string]any{
						"type":        "integer",
						"description": "X coordinate in points.",
					},
					"y": map[string]any{
						"type":        "integer",
						"description": "Y coordinate in points.",
					},
				},
				"required": []string{"x", "y"},
			},
		},
		{
			Name:        toolNames[ToolSwipe],
			Description: "Swipe the screen in a direction.",
			Parameters: types.JSONSchema{
				"type": "object",
				"properties": map[string]any{
					"direction": map[string]any{
						"type":        "string",
						"description": "Swipe direction.",
						"enum":        []string{"up", "down", "left", "right"},
					},
				},
				"required": []string{"direction"},
			},
		},
		{
			Name:        toolNames[ToolTypeKeys],
			Description: "Type text into the focused input field.",
			Parameters: types.JSONSchema{
				"type": "object",
				"properties": map[string]any{
					"text": map[string]any{
						"type":        "string",
						"description": "The text to type.",
					},
					"submit": map[string]any{
						"type":        "boolean",
						"description": "Press return after typing.",
					},
				},
				"required": []string{"text"},
			},
		},
	}
}
