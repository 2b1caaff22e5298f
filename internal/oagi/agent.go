// Package oagi defines the boundary to the Lux computer-use automation
// service: the Agent interface that executes a natural-language instruction,
// the ActionHandler and ImageProvider collaborators it drives, and the
// plain-data records describing one invocation's outcome.
//
// Everything behind the Agent interface — model inference, perception, input
// synthesis — is the external service's concern. This package only composes
// instructions, hands them across the boundary, and structures what comes
// back.
package oagi

import (
	"context"
	"time"
)

// Action is one concrete input-device action requested by the model.
type Action struct {
	// Type is the action kind: "navigate", "click", "double_click",
	// "move", "type", "key", "scroll", "wait", "done", "fail".
	Type string `json:"type"`
	// X, Y are screen coordinates for pointer actions.
	X int `json:"x,omitempty"`
	Y int `json:"y,omitempty"`
	// Text carries typed text, key chords, URLs, or failure detail
	// depending on Type.
	Text string `json:"text,omitempty"`
	// ScrollDirection is "up", "down", "left", or "right".
	ScrollDirection string `json:"scroll_direction,omitempty"`
	// ScrollAmount is the number of scroll ticks.
	ScrollAmount int `json:"scroll_amount,omitempty"`
	// DurationMs is the wait duration for "wait" actions.
	DurationMs int `json:"duration_ms,omitempty"`
}

// Screenshot is one captured frame of visual state.
type Screenshot struct {
	Data   []byte `json:"-"`
	Format string `json:"format"` // "png" or "jpeg"
	Width  int    `json:"width"`
	Height int    `json:"height"`
}

// ActionHandler translates model decisions into concrete input-device
// actions. Implementations own the real side effects (mouse, keyboard,
// browser navigation).
type ActionHandler interface {
	Apply(ctx context.Context, action Action) error
}

// ImageProvider supplies the current visual state to the model.
type ImageProvider interface {
	Capture(ctx context.Context) (*Screenshot, error)
}

// Result is what an Agent reports for one completed execution.
type Result struct {
	Success        bool
	StepsCompleted int
	ExecutionTime  time.Duration
	Errors         []string
	// FinalState is a short model-supplied description of where the
	// session ended up, when the service provides one.
	FinalState string
}

// Agent executes one natural-language instruction against a live desktop or
// browser session, driving the supplied collaborators until the task
// completes, fails, or the step budget runs out.
type Agent interface {
	Execute(ctx context.Context, instruction string, handler ActionHandler, images ImageProvider) (*Result, error)
}

// AgentConfig tunes one Agent. Zero fields fall back to the model's defaults.
type AgentConfig struct {
	Model       Model
	MaxSteps    int
	StepTimeout time.Duration
	MaxRetries  int
	Verbose     bool
}

// WithDefaults fills unset fields from the model's defaults.
func (c AgentConfig) WithDefaults() AgentConfig {
	if c.MaxSteps <= 0 {
		c.MaxSteps = c.Model.DefaultMaxSteps()
	}
	if c.StepTimeout <= 0 {
		c.StepTimeout = c.Model.DefaultStepTimeout()
	}
	if c.MaxRetries < 0 {
		c.MaxRetries = 0
	}
	return c
}
