package planner

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/reelpilot-org/reelpilot/pkg/device"
	"github.com/reelpilot-org/reelpilot/pkg/types"
)

// handler executes one tool against the port and returns the reply messages
// to append to the transcript, in order.
type handler func(ctx context.Context, d *dispatcher, call types.ToolCall) []types.Message

// handlers is the closed dispatch table. Adding a tool means adding a ToolID,
// a name, a schema in Definitions and an entry here; there is no string
// switch to fall through.
var handlers = map[ToolID]handler{
	ToolTakeScreenshot: execScreenshot,
	ToolListElements:   execListElements,
	ToolTapAt:          execTap,
	ToolSwipe:          execSwipe,
	ToolTypeKeys:       execTypeKeys,
}

type dispatcher struct {
	port     device.Port
	deviceID string
	log      *slog.Logger
}

func newDispatcher(port device.Port, deviceID string, log *slog.Logger) *dispatcher {
	if log == nil {
		log = slog.Default()
	}
	return &dispatcher{port: port, deviceID: deviceID, log: log}
}

// Execute runs one tool call. Unknown tool names are fatal; a port failure is
// not: it is reported back to the model as the tool result so the agent can
// react (retry, pick another element, give up explicitly).
func (d *dispatcher) Execute(ctx context.Context, call types.ToolCall) ([]types.Message, error) {
	id, ok := LookupTool(call.Name)
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownTool, call.Name)
	}

	d.log.Debug("dispatch tool", "tool", call.Name, "args", call.Arguments)
	return handlers[id](ctx, d, call), nil
}

// execScreenshot produces two messages: a tool-role summary with the payload
// stripped (to keep the transcript small), and a synthetic user-role message
// carrying the image itself; image content is only accepted on user turns.
func execScreenshot(ctx context.Context, d *dispatcher, call types.ToolCall) []types.Message {
	shot, err := d.port.TakeScreenshot(ctx, d.deviceID)
	if err != nil {
		return []types.Message{errorResult(call, err)}
	}

	summary := fmt.Sprintf("Screenshot captured (%s, %dx%d). The image follows in the next message.",
		shot.Format, shot.Width, shot.Height)

	mime := "image/" + shot.Format
	if shot.Format == "" {
		mime = "image/png"
	}

	return []types.Message{
		types.ToolResultMessage(call.ID, call.Name, summary),
		types.UserImageMessage("Here is the current screen:", types.ImagePart{
			MIMEType: mime,
			Data:     shot.Data,
		}),
	}
}

func execListElements(ctx context.Context, d *dispatcher, call types.ToolCall) []types.Message {
	elements, err := d.port.ListElements(ctx, d.deviceID)
	if err != nil {
		return []types.Message{errorResult(call, err)}
	}

	var b strings.Builder
	fmt.Fprintf(&b, "%d elements on screen:\n", len(elements))
	for _, el := range elements {
		fmt.Fprintf(&b, "- %s", el.Type)
		if el.Label != "" {
			fmt.Fprintf(&b, " %q", el.Label)
		}
		fmt.Fprintf(&b, " at (%d, %d) size %dx%d", el.X, el.Y, el.Width, el.Height)
		if !el.Enabled {
			b.WriteString(" [disabled]")
		}
		if !el.Visible {
			b.WriteString(" [hidden]")
		}
		b.WriteString("\n")
	}

	return []types.Message{types.ToolResultMessage(call.ID, call.Name, b.String())}
}

func execTap(ctx context.Context, d *dispatcher, call types.ToolCall) []types.Message {
	var args tapArgs
	if !decodeArgs(call.Arguments, &args) {
		d.log.Warn("malformed tap_at arguments, proceeding with empty object", "args", call.Arguments)
	}
	if err := d.port.TapAt(ctx, d.deviceID, args.X, args.Y); err != nil {
		return []types.Message{errorResult(call, err)}
	}
	return []types.Message{types.ToolResultMessage(call.ID, call.Name,
		fmt.Sprintf("Tapped at (%d, %d).", args.X, args.Y))}
}

func execSwipe(ctx context.Context, d *dispatcher, call types.ToolCall) []types.Message {
	var args swipeArgs
	if !decodeArgs(call.Arguments, &args) {
		d.log.Warn("malformed swipe arguments, proceeding with empty object", "args", call.Arguments)
	}
	if err := d.port.Swipe(ctx, d.deviceID, args.Direction); err != nil {
		return []types.Message{errorResult(call, err)}
	}
	return []types.Message{types.ToolResultMessage(call.ID, call.Name,
		fmt.Sprintf("Swiped %s.", args.Direction))}
}

func execTypeKeys(ctx context.Context, d *dispatcher, call types.ToolCall) []types.Message {
	var args typeKeysArgs
	if !decodeArgs(call.Arguments, &args) {
		d.log.Warn("malformed type_keys arguments, proceeding with empty object", "args", call.Arguments)
	}
	if err := d.port.TypeText(ctx, d.deviceID, args.Text, args.Submit); err != nil {
		return []types.Message{errorResult(call, err)}
	}
	result := fmt.Sprintf("Typed %q.", args.Text)
	if args.Submit {
		result = fmt.Sprintf("Typed %q and pressed return.", args.Text)
	}
	return []types.Message{types.ToolResultMessage(call.ID, call.Name, result)}
}

func errorResult(call types.ToolCall, err error) types.Message {
	return types.ToolResultMessage(call.ID, call.Name, fmt.Sprintf("Error: %v", err))
}
