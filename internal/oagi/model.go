package oagi

import (
	"fmt"
	"time"
)

// Model selects the Lux model variant driving an automation session.
//
// The variants trade speed for deliberation: Actor executes direct,
// well-defined tasks at roughly one second per step, Thinker reasons through
// open-ended tasks, and Tasker works through explicit step sequences.
type Model int

const (
	// ModelActor is the fast variant for direct, well-defined tasks.
	ModelActor Model = iota
	// ModelThinker is the deliberate variant for open-ended tasks.
	ModelThinker
	// ModelTasker executes explicit step-by-step task sequences.
	ModelTasker
)

// APIName returns the wire name sent to the Lux API.
func (m Model) APIName() string {
	switch m {
	case ModelActor:
		return "lux-actor-1"
	case ModelThinker:
		return "lux-thinker-1"
	case ModelTasker:
		return "lux-tasker-1"
	default:
		return "lux-actor-1"
	}
}

// String implements fmt.Stringer.
func (m Model) String() string { return m.APIName() }

// DefaultMaxSteps is the step budget used when AgentConfig leaves it unset.
func (m Model) DefaultMaxSteps() int {
	switch m {
	case ModelThinker:
		return 50
	case ModelTasker:
		return 30
	default:
		return 15
	}
}

// DefaultStepTimeout is the per-step timeout used when AgentConfig leaves it unset.
func (m Model) DefaultStepTimeout() time.Duration {
	switch m {
	case ModelThinker:
		return 60 * time.Second
	case ModelTasker:
		return 30 * time.Second
	default:
		return 15 * time.Second
	}
}

// ParseModel converts a user-supplied name ("actor", "thinker", "tasker", or
// a full wire name) into a Model. Unknown names are an error rather than a
// silent pass-through to the service.
func ParseModel(name string) (Model, error) {
	switch name {
	case "actor", "lux-actor-1":
		return ModelActor, nil
	case "thinker", "lux-thinker-1":
		return ModelThinker, nil
	case "tasker", "lux-tasker-1":
		return ModelTasker, nil
	default:
		return ModelActor, fmt.Errorf("unknown model %q: want actor, thinker, or tasker", name)
	}
}
