// Package batch runs a sequence of automation tasks one at a time and folds
// the per-item outcomes into an aggregate report.
//
// Items are processed strictly in input order with a fixed pause between
// them. A failing item is recorded and the run continues, unless
// StopOnFailure is set. There is no resumability: an interrupted run starts
// over.
package batch

import (
	"context"
	"time"

	"github.com/openagi/lux-go/internal/oagi"
)

// Status classifies one item's outcome.
type Status string

const (
	StatusPassed  Status = "passed"
	StatusFailed  Status = "failed"
	StatusError   Status = "error"
	StatusSkipped Status = "skipped"
)

// StatusOf derives the report status for an outcome.
func StatusOf(out oagi.Outcome) Status {
	if out.Success {
		return StatusPassed
	}
	if out.StepsCompleted == 0 && out.Error != "" {
		return StatusError
	}
	return StatusFailed
}

// Options tunes a run.
type Options struct {
	// Delay is the pause inserted between items (not after the last).
	Delay time.Duration
	// StopOnFailure halts the run after the first failing item.
	StopOnFailure bool
}

// Aggregate is the rolled-up result of a multi-item run.
type Aggregate struct {
	Total    int            `json:"total"`
	Passed   int            `json:"passed"`
	Failed   int            `json:"failed"`
	Errored  int            `json:"errored"`
	Skipped  int            `json:"skipped"`
	Outcomes []oagi.Outcome `json:"outcomes"`
}

// Success reports whether every processed item passed.
func (a Aggregate) Success() bool {
	return a.Failed == 0 && a.Errored == 0 && a.Skipped == 0
}

// add folds one outcome into the aggregate.
func (a *Aggregate) add(out oagi.Outcome) {
	a.Total++
	a.Outcomes = append(a.Outcomes, out)
	switch StatusOf(out) {
	case StatusPassed:
		a.Passed++
	case StatusError:
		a.Errored++
	default:
		a.Failed++
	}
}

// skip records an item that was never attempted.
func (a *Aggregate) skip(out oagi.Outcome) {
	a.Total++
	a.Skipped++
	a.Outcomes = append(a.Outcomes, out)
}

// Run processes items in order, calling fn once per item. Cancellation marks
// the remaining items skipped.
func Run[T any](ctx context.Context, items []T, opts Options, fn func(ctx context.Context, item T) oagi.Outcome) Aggregate {
	var agg Aggregate

	for i, item := range items {
		if err := ctx.Err(); err != nil {
			agg.skip(oagi.Outcome{Error: err.Error()})
			continue
		}

		out := fn(ctx, item)
		agg.add(out)

		if opts.StopOnFailure && !out.Success {
			break
		}
		if opts.Delay > 0 && i < len(items)-1 {
			select {
			case <-ctx.Done():
			case <-time.After(opts.Delay):
			}
		}
	}
	return agg
}
