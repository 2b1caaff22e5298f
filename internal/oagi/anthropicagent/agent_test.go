package anthropicagent

import (
	"encoding/json"
	"testing"

	"github.com/anthropics/anthropic-sdk-go"

	"github.com/openagi/lux-go/internal/oagi"
)

func TestNew_RequiresKey(t *testing.T) {
	if _, err := New(Config{}); err == nil {
		t.Fatal("expected error without API key")
	}
}

func TestNew_Defaults(t *testing.T) {
	a, err := New(Config{APIKey: "sk-ant-test", Agent: oagi.AgentConfig{Model: oagi.ModelThinker}})
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	if a.model != DefaultClaudeModel {
		t.Errorf("model = %q, want default", a.model)
	}
	if a.cfg.MaxSteps != 50 {
		t.Errorf("max steps = %d, want thinker default 50", a.cfg.MaxSteps)
	}
}

func TestComputerTool(t *testing.T) {
	tool, err := computerTool()
	if err != nil {
		t.Fatalf("computerTool: %v", err)
	}
	if tool.OfTool == nil || tool.OfTool.Name != "computer" {
		t.Errorf("tool should be named computer: %+v", tool)
	}
}

func TestDecodeAction(t *testing.T) {
	block := anthropic.ToolUseBlock{
		ID:    "tu_1",
		Name:  "computer",
		Input: json.RawMessage(`{"type":"click","x":12,"y":34}`),
	}

	action, err := decodeAction(block)
	if err != nil {
		t.Fatalf("decodeAction: %v", err)
	}
	if action.Type != "click" || action.X != 12 || action.Y != 34 {
		t.Errorf("action = %+v", action)
	}
}

func TestDecodeAction_MissingType(t *testing.T) {
	block := anthropic.ToolUseBlock{ID: "tu_1", Input: json.RawMessage(`{"x":1}`)}
	if _, err := decodeAction(block); err == nil {
		t.Fatal("expected error for input without a type")
	}
}
