package device

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"
)

// Bridge is a Port adapter over an HTTP automation bridge: a small sidecar
// process that owns the actual simulator tooling and exposes each capability
// as a POST endpoint. It exists so the CLI can drive real hardware without
// this module linking any platform automation stack.
type Bridge struct {
	baseURL string
	client  *http.Client
}

func NewBridge(baseURL string, timeout time.Duration) *Bridge {
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	return &Bridge{
		baseURL: baseURL,
		client:  &http.Client{Timeout: timeout},
	}
}

func (b *Bridge) post(ctx context.Context, path string, payload any, out any) error {
	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("bridge: marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, b.baseURL+path, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("bridge: build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := b.client.Do(req)
	if err != nil {
		return fmt.Errorf("bridge: %s: %w", path, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		raw, _ := io.ReadAll(resp.Body)
		return fmt.Errorf("bridge: %s: status %d: %s", path, resp.StatusCode, raw)
	}

	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("bridge: %s: decode response: %w", path, err)
	}
	return nil
}

type deviceRequest struct {
	DeviceID  string `json:"deviceId"`
	X         int    `json:"x,omitempty"`
	Y         int    `json:"y,omitempty"`
	Direction string `json:"direction,omitempty"`
	Text      string `json:"text,omitempty"`
	Submit    bool   `json:"submit,omitempty"`
	Button    string `json:"button,omitempty"`
}

func (b *Bridge) TakeScreenshot(ctx context.Context, deviceID string) (*Screenshot, error) {
	var shot Screenshot
	if err := b.post(ctx, "/screenshot", deviceRequest{DeviceID: deviceID}, &shot); err != nil {
		return nil, err
	}
	return &shot, nil
}

func (b *Bridge) ListElements(ctx context.Context, deviceID string) ([]Element, error) {
	var res struct {
		Elements []Element `json:"elements"`
	}
	if err := b.post(ctx, "/elements", deviceRequest{DeviceID: deviceID}, &res); err != nil {
		return nil, err
	}
	return res.Elements, nil
}

func (b *Bridge) TapAt(ctx context.Context, deviceID string, x, y int) error {
	return b.post(ctx, "/tap", deviceRequest{DeviceID: deviceID, X: x, Y: y}, nil)
}

func (b *Bridge) Swipe(ctx context.Context, deviceID string, direction string) error {
	return b.post(ctx, "/swipe", deviceRequest{DeviceID: deviceID, Direction: direction}, nil)
}

func (b *Bridge) TypeText(ctx context.Context, deviceID string, text string, submit bool) error {
	return b.post(ctx, "/type", deviceRequest{DeviceID: deviceID, Text: text, Submit: submit}, nil)
}

func (b *Bridge) TerminateAllApps(ctx context.Context, deviceID string) error {
	return b.post(ctx, "/terminate-all", deviceRequest{DeviceID: deviceID}, nil)
}

func (b *Bridge) PressButton(ctx context.Context, deviceID string, button Button) error {
	return b.post(ctx, "/press-button", deviceRequest{DeviceID: deviceID, Button: string(button)}, nil)
}

var _ Port = (*Bridge)(nil)
