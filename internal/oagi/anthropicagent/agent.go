// Package anthropicagent implements the oagi.Agent interface on top of
// Anthropic's Claude models, for running the same automation flows without a
// Lux API key.
//
// The adapter exposes a single "computer" tool to the model. Each tool call
// is translated into an oagi.Action and applied through the injected
// ActionHandler; the resulting screenshot goes back as the tool result. The
// model signals completion by answering with plain text.
package anthropicagent

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/anthropics/anthropic-sdk-go"
	"github.com/anthropics/anthropic-sdk-go/option"

	"github.com/openagi/lux-go/internal/oagi"
)

// DefaultClaudeModel is used when Config leaves the model unset.
const DefaultClaudeModel = "claude-sonnet-4-20250514"

const systemPrompt = `You are a computer-use automation agent. You control a
browser through the "computer" tool. Work through the user's instruction one
action at a time: request an action, inspect the screenshot that comes back,
then decide the next action.

When the task is fully complete, reply with plain text starting with
"TASK COMPLETE". If the task cannot be completed, reply with plain text
starting with "TASK FAILED" followed by the reason.`

// computerToolSchema describes the single tool exposed to the model. Its
// fields mirror oagi.Action.
const computerToolSchema = `{
	"type": "object",
	"properties": {
		"type": {
			"type": "string",
			"enum": ["navigate", "click", "double_click", "move", "type", "key", "scroll", "wait"],
			"description": "The action to perform"
		},
		"x": {"type": "integer", "description": "X coordinate for pointer actions"},
		"y": {"type": "integer", "description": "Y coordinate for pointer actions"},
		"text": {"type": "string", "description": "Text to type, key name, or URL to navigate to"},
		"scroll_direction": {"type": "string", "enum": ["up", "down", "left", "right"]},
		"scroll_amount": {"type": "integer", "description": "Number of scroll ticks"},
		"duration_ms": {"type": "integer", "description": "Wait duration in milliseconds"}
	},
	"required": ["type"]
}`

// Config tunes the adapter.
type Config struct {
	// APIKey is the Anthropic API key.
	APIKey string
	// ClaudeModel overrides DefaultClaudeModel.
	ClaudeModel string
	// Agent carries the shared step budget and timeouts; the Lux model
	// variant only contributes its defaults here.
	Agent oagi.AgentConfig
	// Logger defaults to slog.Default.
	Logger *slog.Logger
}

// Agent drives Claude through the computer tool loop.
type Agent struct {
	client anthropic.Client
	model  string
	cfg    oagi.AgentConfig
	logger *slog.Logger
}

// New builds the adapter.
func New(cfg Config) (*Agent, error) {
	if strings.TrimSpace(cfg.APIKey) == "" {
		return nil, fmt.Errorf("anthropic API key is required")
	}
	model := cfg.ClaudeModel
	if model == "" {
		model = DefaultClaudeModel
	}
	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}
	return &Agent{
		client: anthropic.NewClient(option.WithAPIKey(cfg.APIKey)),
		model:  model,
		cfg:    cfg.Agent.WithDefaults(),
		logger: logger,
	}, nil
}

// Execute implements oagi.Agent.
func (a *Agent) Execute(ctx context.Context, instruction string, handler oagi.ActionHandler, images oagi.ImageProvider) (*oagi.Result, error) {
	start := time.Now()

	tool, err := computerTool()
	if err != nil {
		return nil, err
	}

	messages := []anthropic.MessageParam{
		anthropic.NewUserMessage(anthropic.NewTextBlock(instruction)),
	}

	res := &oagi.Result{}
	for step := 1; step <= a.cfg.MaxSteps; step++ {
		stepCtx, cancel := context.WithTimeout(ctx, a.cfg.StepTimeout)
		msg, err := a.client.Messages.New(stepCtx, anthropic.MessageNewParams{
			Model:     anthropic.Model(a.model),
			MaxTokens: 1024,
			System:    []anthropic.TextBlockParam{{Text: systemPrompt}},
			Messages:  messages,
			Tools:     []anthropic.ToolUnionParam{tool},
		})
		cancel()
		if err != nil {
			res.ExecutionTime = time.Since(start)
			res.Errors = append(res.Errors, err.Error())
			return res, fmt.Errorf("claude request: %w", err)
		}

		res.StepsCompleted = step
		messages = append(messages, msg.ToParam())

		toolUse, text := splitBlocks(msg.Content)
		if toolUse == nil {
			// No more actions requested: the model is reporting the
			// terminal state.
			res.ExecutionTime = time.Since(start)
			res.FinalState = strings.TrimSpace(text)
			res.Success = strings.HasPrefix(res.FinalState, "TASK COMPLETE")
			if !res.Success {
				res.Errors = append(res.Errors, res.FinalState)
			}
			return res, nil
		}

		reply, err := a.applyAndObserve(ctx, *toolUse, handler, images)
		if err != nil {
			res.ExecutionTime = time.Since(start)
			res.Errors = append(res.Errors, err.Error())
			return res, err
		}
		messages = append(messages, reply)
	}

	res.ExecutionTime = time.Since(start)
	res.Errors = append(res.Errors, fmt.Sprintf("step budget of %d exhausted", a.cfg.MaxSteps))
	return res, nil
}

// applyAndObserve runs one requested action and packages the new screenshot
// as the tool result.
func (a *Agent) applyAndObserve(ctx context.Context, toolUse anthropic.ToolUseBlock, handler oagi.ActionHandler, images oagi.ImageProvider) (anthropic.MessageParam, error) {
	action, err := decodeAction(toolUse)
	if err != nil {
		// Tell the model what went wrong instead of aborting the session.
		return anthropic.NewUserMessage(
			anthropic.NewToolResultBlock(toolUse.ID, err.Error(), true),
		), nil
	}

	a.logger.DebugContext(ctx, "computer action", "type", action.Type, "x", action.X, "y", action.Y)

	if err := handler.Apply(ctx, action); err != nil {
		return anthropic.MessageParam{}, fmt.Errorf("apply %s: %w", action.Type, err)
	}

	shot, err := images.Capture(ctx)
	if err != nil {
		return anthropic.MessageParam{}, fmt.Errorf("capture screen: %w", err)
	}

	blocks := []anthropic.ContentBlockParamUnion{
		anthropic.NewToolResultBlock(toolUse.ID, "action applied; current screen attached", false),
	}
	if len(shot.Data) > 0 {
		mediaType := "image/png"
		if shot.Format == "jpeg" {
			mediaType = "image/jpeg"
		}
		blocks = append(blocks, anthropic.NewImageBlockBase64(mediaType, base64.StdEncoding.EncodeToString(shot.Data)))
	}
	return anthropic.NewUserMessage(blocks...), nil
}

// splitBlocks pulls the first tool_use block and the concatenated text out
// of a response.
func splitBlocks(content []anthropic.ContentBlockUnion) (*anthropic.ToolUseBlock, string) {
	var toolUse *anthropic.ToolUseBlock
	var text strings.Builder
	for _, block := range content {
		switch variant := block.AsAny().(type) {
		case anthropic.TextBlock:
			text.WriteString(variant.Text)
		case anthropic.ToolUseBlock:
			if toolUse == nil {
				v := variant
				toolUse = &v
			}
		}
	}
	return toolUse, text.String()
}

func decodeAction(toolUse anthropic.ToolUseBlock) (oagi.Action, error) {
	raw, err := json.Marshal(toolUse.Input)
	if err != nil {
		return oagi.Action{}, fmt.Errorf("encode tool input: %w", err)
	}
	var action oagi.Action
	if err := json.Unmarshal(raw, &action); err != nil {
		return oagi.Action{}, fmt.Errorf("invalid computer tool input: %w", err)
	}
	if action.Type == "" {
		return oagi.Action{}, fmt.Errorf("computer tool input is missing the action type")
	}
	return action, nil
}

func computerTool() (anthropic.ToolUnionParam, error) {
	var schema anthropic.ToolInputSchemaParam
	if err := json.Unmarshal([]byte(computerToolSchema), &schema); err != nil {
		return anthropic.ToolUnionParam{}, fmt.Errorf("invalid computer tool schema: %w", err)
	}
	tool := anthropic.ToolUnionParamOfTool(schema, "computer")
	if tool.OfTool == nil {
		return anthropic.ToolUnionParam{}, fmt.Errorf("computer tool definition is missing")
	}
	tool.OfTool.Description = anthropic.String("Perform one input action on the controlled browser: navigate, click, type, key, scroll, or wait.")
	return tool, nil
}
