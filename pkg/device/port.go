// Package device declares the Capability Port: the caller-supplied interface
// through which the planner performs physical device actions. The core never
// implements it; tests script it and production callers bring an adapter to
// whatever automation surface controls their simulator or handset.
package device

import "context"

// Button is a hardware button the port can press.
type Button string

const (
	ButtonHome Button = "home"
	ButtonBack Button = "back"
)

// Screenshot is the result of a capture. Data is the base64 image payload.
type Screenshot struct {
	Data   string `json:"screenshot"`
	Format string `json:"format"`
	Width  int    `json:"width"`
	Height int    `json:"height"`
}

// Element is one accessibility node on the current screen.
type Element struct {
	Type    string `json:"type"`
	Label   string `json:"label,omitempty"`
	X       int    `json:"x"`
	Y       int    `json:"y"`
	Width   int    `json:"width"`
	Height  int    `json:"height"`
	Enabled bool   `json:"enabled"`
	Visible bool   `json:"visible"`
}

// Port exposes the physical actions the agent may take plus the two
// lifecycle actions used to reset the device after planning. Calls are
// expected to carry their own timeout discipline; the core does not impose
// one. The device behind a port is a single mutable resource: callers must
// not run two planning conversations against the same device concurrently.
type Port interface {
	TakeScreenshot(ctx context.Context, deviceID string) (*Screenshot, error)
	ListElements(ctx context.Context, deviceID string) ([]Element, error)
	TapAt(ctx context.Context, deviceID string, x, y int) error
	Swipe(ctx context.Context, deviceID string, direction string) error
	TypeText(ctx context.Context, deviceID string, text string, submit bool) error

	TerminateAllApps(ctx context.Context, deviceID string) error
	PressButton(ctx context.Context, deviceID string, button Button) error
}
