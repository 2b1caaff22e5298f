// Package qa executes UI test cases through a Lux agent and rolls the
// results up into reports. Test cases can be defined in code or loaded from
// YAML suite files.
package qa

import (
	"context"
	"fmt"
	"strings"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/openagi/lux-go/internal/batch"
	"github.com/openagi/lux-go/internal/instruction"
	"github.com/openagi/lux-go/internal/oagi"
)

// TestStep is a single step in a test case.
type TestStep struct {
	Description    string `yaml:"description"`
	Action         string `yaml:"action"`
	ExpectedResult string `yaml:"expected_result,omitempty"`
}

// TestCase is a complete test case.
type TestCase struct {
	Name        string     `yaml:"name"`
	Description string     `yaml:"description,omitempty"`
	Steps       []TestStep `yaml:"steps"`
	Setup       string     `yaml:"setup,omitempty"`
	Teardown    string     `yaml:"teardown,omitempty"`
	Tags        []string   `yaml:"tags,omitempty"`
}

// TestResult is the outcome of one test execution.
type TestResult struct {
	oagi.Outcome
	TestName    string
	StepsPassed int
	StepsTotal  int
}

// SuiteOptions tunes a suite run.
type SuiteOptions struct {
	// BaseURL is navigated to before each test when set.
	BaseURL string
	// StopOnFailure halts a sequential run after the first failing test.
	StopOnFailure bool
	// Parallel fires all tests concurrently. Concurrent runs need fully
	// independent agent sessions; nothing here coordinates shared
	// browser state.
	Parallel bool
	// Delay is the pause between sequential tests.
	Delay time.Duration
}

// Runner executes UI tests.
type Runner struct {
	Agent   oagi.Agent
	Handler oagi.ActionHandler
	Images  oagi.ImageProvider
}

// BuildTestInstruction renders one test case into an instruction. Pure.
func BuildTestInstruction(test TestCase, baseURL string) (string, error) {
	if strings.TrimSpace(test.Name) == "" {
		return "", fmt.Errorf("%w: test name is required", instruction.ErrIncompleteTask)
	}
	if len(test.Steps) == 0 {
		return "", fmt.Errorf("%w: test %q has no steps", instruction.ErrIncompleteTask, test.Name)
	}

	var b instruction.Builder
	b.Linef("Test: %s", test.Name)
	if test.Description != "" {
		b.Linef("Description: %s", test.Description)
	}
	b.Blank()

	if baseURL != "" {
		b.Linef("Navigate to: %s", baseURL)
		b.Blank()
	}
	if test.Setup != "" {
		b.Line("Setup:")
		b.Line(test.Setup)
		b.Blank()
	}

	b.Line("Test Steps:")
	for _, step := range test.Steps {
		b.Step(step.Description)
		b.Detailf("Action: %s", step.Action)
		if step.ExpectedResult != "" {
			b.Detailf("Verify: %s", step.ExpectedResult)
		}
	}

	if test.Teardown != "" {
		b.Blank()
		b.Line("Teardown:")
		b.Line(test.Teardown)
	}
	return b.String(), nil
}

// RunTest executes one test case.
func (r *Runner) RunTest(ctx context.Context, test TestCase, baseURL string) TestResult {
	result := TestResult{TestName: test.Name, StepsTotal: len(test.Steps)}

	instr, err := BuildTestInstruction(test, baseURL)
	if err != nil {
		result.Outcome = oagi.Outcome{Name: test.Name, Error: err.Error()}
		return result
	}

	result.Outcome = oagi.Invoke(ctx, r.Agent, test.Name, instr, r.Handler, r.Images)
	if result.Success {
		result.StepsPassed = len(test.Steps)
	}
	return result
}

// RunSuite executes a set of tests and folds the outcomes into an
// aggregate. Sequential by default; see SuiteOptions.
func (r *Runner) RunSuite(ctx context.Context, tests []TestCase, opts SuiteOptions) ([]TestResult, batch.Aggregate) {
	if opts.Parallel {
		return r.runParallel(ctx, tests, opts)
	}

	results := make([]TestResult, 0, len(tests))
	agg := batch.Run(ctx, tests, batch.Options{Delay: opts.Delay, StopOnFailure: opts.StopOnFailure}, func(ctx context.Context, test TestCase) oagi.Outcome {
		result := r.RunTest(ctx, test, opts.BaseURL)
		results = append(results, result)
		return result.Outcome
	})
	return results, agg
}

// runParallel fires every test at once. Result order still matches input
// order.
func (r *Runner) runParallel(ctx context.Context, tests []TestCase, opts SuiteOptions) ([]TestResult, batch.Aggregate) {
	results := make([]TestResult, len(tests))

	g, gctx := errgroup.WithContext(ctx)
	for i, test := range tests {
		g.Go(func() error {
			results[i] = r.RunTest(gctx, test, opts.BaseURL)
			return nil
		})
	}
	// RunTest never returns an error; the group only propagates ctx.
	_ = g.Wait()

	var agg batch.Aggregate
	for _, result := range results {
		agg.Total++
		agg.Outcomes = append(agg.Outcomes, result.Outcome)
		switch batch.StatusOf(result.Outcome) {
		case batch.StatusPassed:
			agg.Passed++
		case batch.StatusError:
			agg.Errored++
		default:
			agg.Failed++
		}
	}
	return results, agg
}

// FilterByTag keeps the tests carrying the given tag. An empty tag keeps
// everything.
func FilterByTag(tests []TestCase, tag string) []TestCase {
	if tag == "" {
		return tests
	}
	var out []TestCase
	for _, test := range tests {
		for _, t := range test.Tags {
			if t == tag {
				out = append(out, test)
				break
			}
		}
	}
	return out
}
