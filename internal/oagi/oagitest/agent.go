// Package oagitest provides test doubles for the oagi agent boundary.
package oagitest

import (
	"context"
	"sync"

	"github.com/openagi/lux-go/internal/oagi"
)

// FakeAgent is a scripted Agent for tests. Each Execute call consumes the
// next queued step; when the script runs out, the last step repeats.
type FakeAgent struct {
	mu sync.Mutex

	// Script is consumed one entry per Execute call.
	Script []Step
	// Instructions records every instruction passed to Execute, in order.
	Instructions []string

	calls int
}

// Step is one scripted Execute outcome.
type Step struct {
	Result *oagi.Result
	Err    error
}

// Succeed returns an agent that completes every instruction.
func Succeed() *FakeAgent {
	return &FakeAgent{Script: []Step{{Result: &oagi.Result{Success: true, StepsCompleted: 1}}}}
}

// Fail returns an agent whose executions always error.
func Fail(err error) *FakeAgent {
	return &FakeAgent{Script: []Step{{Err: err}}}
}

// Execute implements oagi.Agent.
func (f *FakeAgent) Execute(ctx context.Context, instruction string, _ oagi.ActionHandler, _ oagi.ImageProvider) (*oagi.Result, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	f.Instructions = append(f.Instructions, instruction)
	idx := f.calls
	f.calls++
	if idx >= len(f.Script) {
		idx = len(f.Script) - 1
	}
	if idx < 0 {
		return &oagi.Result{Success: true}, nil
	}
	step := f.Script[idx]
	return step.Result, step.Err
}

// Calls reports how many times Execute ran.
func (f *FakeAgent) Calls() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.calls
}

// NoopHandler discards every action.
type NoopHandler struct{}

// Apply implements oagi.ActionHandler.
func (NoopHandler) Apply(context.Context, oagi.Action) error { return nil }

// BlankProvider returns an empty screenshot.
type BlankProvider struct{}

// Capture implements oagi.ImageProvider.
func (BlankProvider) Capture(context.Context) (*oagi.Screenshot, error) {
	return &oagi.Screenshot{Format: "png"}, nil
}
