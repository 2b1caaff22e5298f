package instruction

import (
	"fmt"
	"strings"
)

// Task is a generic task descriptor: a name and an ordered sequence of
// textual steps. It is created by the caller, rendered once, and discarded.
type Task struct {
	Name        string
	Description string
	Steps       []string
}

// Instruction renders the task into one instruction string. It fails only
// when required fields are missing.
func (t Task) Instruction() (string, error) {
	if strings.TrimSpace(t.Name) == "" {
		return "", fmt.Errorf("%w: name is required", ErrIncompleteTask)
	}
	if len(t.Steps) == 0 {
		return "", fmt.Errorf("%w: at least one step is required", ErrIncompleteTask)
	}

	var b Builder
	b.Linef("Task: %s", t.Name)
	if t.Description != "" {
		b.Linef("Description: %s", t.Description)
	}
	b.Blank()
	for _, step := range t.Steps {
		b.Step(step)
	}
	return b.String(), nil
}
