package oagi

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
)

// Outcome is the local record of one agent invocation. It is created after
// the external call returns and never mutated again.
type Outcome struct {
	// ID uniquely identifies this invocation.
	ID string `json:"id"`
	// Name labels the task for reports and summaries.
	Name string `json:"name"`
	// Success reports whether the agent completed the instruction.
	Success bool `json:"success"`
	// StepsCompleted is the number of steps the agent took, when known.
	StepsCompleted int `json:"steps_completed"`
	// Elapsed is the wall-clock duration of the invocation.
	Elapsed time.Duration `json:"elapsed"`
	// Error is empty on success and non-empty on failure.
	Error string `json:"error,omitempty"`
	// FinalState is the agent's closing description, when provided.
	FinalState string `json:"final_state,omitempty"`
}

// Invoke runs one instruction through the agent and wraps whatever happens
// into an Outcome. It never returns an error: any failure from the external
// call becomes a failure Outcome carrying the stringified error.
func Invoke(ctx context.Context, agent Agent, name, instruction string, handler ActionHandler, images ImageProvider) Outcome {
	start := time.Now()
	out := Outcome{
		ID:   uuid.NewString(),
		Name: name,
	}

	res, err := agent.Execute(ctx, instruction, handler, images)
	out.Elapsed = time.Since(start)

	switch {
	case err != nil:
		out.Error = err.Error()
	case res == nil:
		out.Error = "agent returned no result"
	default:
		out.Success = res.Success
		out.StepsCompleted = res.StepsCompleted
		out.FinalState = res.FinalState
		if res.ExecutionTime > 0 {
			out.Elapsed = res.ExecutionTime
		}
		if !res.Success {
			out.Error = firstNonEmpty(res.Errors, "task did not complete")
		}
	}
	return out
}

// InvokeWithRetry repeats Invoke up to maxAttempts times with a flat pause
// between attempts, returning the first successful Outcome. When every
// attempt fails, the returned Outcome reports that the attempts were
// exhausted along with the last error.
func InvokeWithRetry(ctx context.Context, agent Agent, name, instruction string, handler ActionHandler, images ImageProvider, maxAttempts int, pause time.Duration) Outcome {
	if maxAttempts <= 0 {
		maxAttempts = 1
	}

	var last Outcome
	for attempt := 1; attempt <= maxAttempts; attempt++ {
		last = Invoke(ctx, agent, name, instruction, handler, images)
		if last.Success {
			return last
		}
		if attempt < maxAttempts {
			select {
			case <-ctx.Done():
				last.Error = ctx.Err().Error()
				return last
			case <-time.After(pause):
			}
		}
	}
	last.Error = fmt.Sprintf("retry attempts exhausted after %d attempts: %s", maxAttempts, last.Error)
	return last
}

func firstNonEmpty(values []string, fallback string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return fallback
}
