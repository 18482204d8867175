package gemini

import (
	"testing"

	"github.com/reelpilot-org/reelpilot/pkg/types"
	"google.golang.org/genai"
)

func TestConvertMessageToolResult(t *testing.T) {
	msg := types.ToolResultMessage("call_1", "tap_at", "Tapped at (10, 20).")
	content, err := convertMessage(msg)
	if err != nil {
		t.Fatalf("convertMessage: %v", err)
	}
	if content.Role != "user" {
		t.Errorf("tool results must ride on the user role, got %q", content.Role)
	}
	if len(content.Parts) != 1 || content.Parts[0].FunctionResponse == nil {
		t.Fatalf("expected one FunctionResponse part, got %+v", content.Parts)
	}
	fr := content.Parts[0].FunctionResponse
	if fr.Name != "tap_at" || fr.Response["result"] != "Tapped at (10, 20)." {
		t.Errorf("unexpected function response: %+v", fr)
	}
}

func TestConvertMessageImage(t *testing.T) {
	msg := types.UserImageMessage("screen", types.ImagePart{MIMEType: "image/png", Data: "aGVsbG8="})
	content, err := convertMessage(msg)
	if err != nil {
		t.Fatalf("convertMessage: %v", err)
	}
	var blob *genai.Blob
	for _, p := range content.Parts {
		if p.InlineData != nil {
			blob = p.InlineData
		}
	}
	if blob == nil {
		t.Fatal("expected an inline data part")
	}
	if blob.MIMEType != "image/png" || string(blob.Data) != "hello" {
		t.Errorf("unexpected blob: %s %q", blob.MIMEType, blob.Data)
	}
}

func TestConvertSchema(t *testing.T) {
	schema := types.JSONSchema{
		"type": "object",
		"properties": map[string]any{
			"x": map[string]any{"type": "integer", "description": "x coordinate"},
			"y": map[string]any{"type": "integer"},
		},
		"required": []string{"x", "y"},
	}
	s := convertSchema(schema)
	if s.Type != genai.TypeObject {
		t.Errorf("type = %v", s.Type)
	}
	if len(s.Properties) != 2 || s.Properties["x"].Type != genai.TypeInteger {
		t.Errorf("properties = %+v", s.Properties)
	}
	if len(s.Required) != 2 {
		t.Errorf("required = %v", s.Required)
	}
}
