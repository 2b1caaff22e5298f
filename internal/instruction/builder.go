// Package instruction renders structured task descriptions into the
// natural-language instruction strings sent to the Lux model.
//
// Rendering is deterministic: the same inputs always produce byte-identical
// output. The rendered text is opaque to this toolkit — only the external
// model interprets it.
package instruction

import (
	"errors"
	"fmt"
	"strings"
)

// ErrIncompleteTask is returned when a task description is missing required
// fields.
var ErrIncompleteTask = errors.New("incomplete task description")

// Builder accumulates instruction lines. The zero value is ready to use.
type Builder struct {
	lines []string
	steps int
}

// Line appends a raw line.
func (b *Builder) Line(s string) *Builder {
	b.lines = append(b.lines, s)
	return b
}

// Linef appends a formatted line.
func (b *Builder) Linef(format string, args ...any) *Builder {
	return b.Line(fmt.Sprintf(format, args...))
}

// LineIf appends the line only when cond holds. Optional clauses (an "Add to
// Bag" step, a save-to-file step) are included this way.
func (b *Builder) LineIf(cond bool, s string) *Builder {
	if cond {
		b.Line(s)
	}
	return b
}

// Blank appends an empty separator line.
func (b *Builder) Blank() *Builder {
	return b.Line("")
}

// Step appends a numbered step, continuing from the previous one.
func (b *Builder) Step(s string) *Builder {
	b.steps++
	return b.Linef("%d. %s", b.steps, s)
}

// Stepf appends a formatted numbered step.
func (b *Builder) Stepf(format string, args ...any) *Builder {
	return b.Step(fmt.Sprintf(format, args...))
}

// StepIf appends a numbered step only when cond holds. Skipped steps do not
// consume a number.
func (b *Builder) StepIf(cond bool, s string) *Builder {
	if cond {
		b.Step(s)
	}
	return b
}

// Detail appends an indented sub-line under the current step.
func (b *Builder) Detail(s string) *Builder {
	return b.Linef("   %s", s)
}

// Detailf appends a formatted indented sub-line.
func (b *Builder) Detailf(format string, args ...any) *Builder {
	return b.Detail(fmt.Sprintf(format, args...))
}

// String renders the accumulated instruction.
func (b *Builder) String() string {
	return strings.Join(b.lines, "\n")
}

// NumberedList renders items as "1. …\n2. …".
func NumberedList(items []string) string {
	var b Builder
	for _, item := range items {
		b.Step(item)
	}
	return b.String()
}

// BulletList renders items as "   - …" lines.
func BulletList(items []string) string {
	lines := make([]string, len(items))
	for i, item := range items {
		lines[i] = "   - " + item
	}
	return strings.Join(lines, "\n")
}
