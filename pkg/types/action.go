package types

import "fmt"

// ActionType tags an ActionStep variant.
type ActionType string

const (
	ActionTap         ActionType = "tap"
	ActionSwipe       ActionType = "swipe"
	ActionTypeText    ActionType = "type"
	ActionWait        ActionType = "wait"
	ActionPressButton ActionType = "press_button"
	ActionVerify      ActionType = "verify"
)

// Point is a screen coordinate in points.
type Point struct {
	X int `json:"x"`
	Y int `json:"y"`
}

// ActionStep is one atomic UI interaction. It is a tagged variant: only the
// fields belonging to the step's Type are meaningful, everything else is
// noise and must not be relied upon.
type ActionStep struct {
	Type        ActionType `json:"type"`
	Description string     `json:"description,omitempty"`

	// tap
	Target *Point `json:"target,omitempty"`

	// swipe
	Direction string `json:"direction,omitempty"`

	// type
	Text   string `json:"text,omitempty"`
	Submit bool   `json:"submit,omitempty"`

	// wait
	DurationMS int `json:"durationMs,omitempty"`

	// press_button
	Button string `json:"button,omitempty"`

	// verify
	Assertion string `json:"assertion,omitempty"`
}

// Describe renders the step as a single human-readable line, used when
// numbering actions for the scriptwriter prompt.
func (s ActionStep) Describe() string {
	switch s.Type {
	case ActionTap:
		if s.Target != nil {
			return fmt.Sprintf("tap at (%d, %d): %s", s.Target.X, s.Target.Y, s.Description)
		}
		return "tap: " + s.Description
	case ActionSwipe:
		return fmt.Sprintf("swipe %s: %s", s.Direction, s.Description)
	case ActionTypeText:
		return fmt.Sprintf("type %q: %s", s.Text, s.Description)
	case ActionWait:
		return fmt.Sprintf("wait %dms: %s", s.DurationMS, s.Description)
	case ActionPressButton:
		return fmt.Sprintf("press %s button: %s", s.Button, s.Description)
	case ActionVerify:
		return "verify: " + s.Assertion
	default:
		return string(s.Type) + ": " + s.Description
	}
}
