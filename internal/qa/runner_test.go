package qa

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/openagi/lux-go/internal/instruction"
	"github.com/openagi/lux-go/internal/oagi"
	"github.com/openagi/lux-go/internal/oagi/oagitest"
)

func loginTest() TestCase {
	return TestCase{
		Name:        "login flow",
		Description: "Valid credentials reach the dashboard",
		Setup:       "Ensure no user is signed in",
		Teardown:    "Sign out",
		Steps: []TestStep{
			{Description: "Open the login form", Action: "Click the 'Sign In' link", ExpectedResult: "The login form is shown"},
			{Description: "Submit credentials", Action: "Type the username and password and click Submit", ExpectedResult: "The dashboard loads"},
		},
	}
}

func TestBuildTestInstruction(t *testing.T) {
	instr, err := BuildTestInstruction(loginTest(), "https://app.example.com")
	if err != nil {
		t.Fatalf("BuildTestInstruction: %v", err)
	}

	for _, want := range []string{
		"Test: login flow",
		"Description: Valid credentials reach the dashboard",
		"Navigate to: https://app.example.com",
		"Setup:\nEnsure no user is signed in",
		"Test Steps:",
		"1. Open the login form",
		"Action: Click the 'Sign In' link",
		"Verify: The login form is shown",
		"2. Submit credentials",
		"Teardown:\nSign out",
	} {
		if !strings.Contains(instr, want) {
			t.Errorf("instruction missing %q:\n%s", want, instr)
		}
	}
}

func TestBuildTestInstructionOmitsEmptySections(t *testing.T) {
	test := TestCase{
		Name:  "smoke",
		Steps: []TestStep{{Description: "Load the page", Action: "Navigate to the home page"}},
	}
	instr, err := BuildTestInstruction(test, "")
	if err != nil {
		t.Fatalf("BuildTestInstruction: %v", err)
	}
	for _, absent := range []string{"Navigate to:", "Setup:", "Teardown:", "Verify:", "Description:"} {
		if strings.Contains(instr, absent) {
			t.Errorf("instruction should not contain %q:\n%s", absent, instr)
		}
	}
}

func TestBuildTestInstructionIncomplete(t *testing.T) {
	cases := []struct {
		name string
		test TestCase
	}{
		{"no name", TestCase{Steps: []TestStep{{Description: "x", Action: "y"}}}},
		{"no steps", TestCase{Name: "empty"}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if _, err := BuildTestInstruction(tc.test, ""); !errors.Is(err, instruction.ErrIncompleteTask) {
				t.Errorf("err = %v, want ErrIncompleteTask", err)
			}
		})
	}
}

func TestRunTest(t *testing.T) {
	r := &Runner{Agent: oagitest.Succeed(), Handler: oagitest.NoopHandler{}, Images: oagitest.BlankProvider{}}

	result := r.RunTest(context.Background(), loginTest(), "https://app.example.com")
	if !result.Success {
		t.Fatalf("result.Success = false, error %q", result.Error)
	}
	if result.TestName != "login flow" {
		t.Errorf("TestName = %q", result.TestName)
	}
	if result.StepsPassed != 2 || result.StepsTotal != 2 {
		t.Errorf("steps = %d/%d, want 2/2", result.StepsPassed, result.StepsTotal)
	}
}

func TestRunTestFailureCountsNoSteps(t *testing.T) {
	r := &Runner{Agent: oagitest.Fail(errors.New("element not found")), Handler: oagitest.NoopHandler{}, Images: oagitest.BlankProvider{}}

	result := r.RunTest(context.Background(), loginTest(), "")
	if result.Success {
		t.Fatal("result.Success = true, want false")
	}
	if result.StepsPassed != 0 {
		t.Errorf("StepsPassed = %d, want 0", result.StepsPassed)
	}
	if !strings.Contains(result.Error, "element not found") {
		t.Errorf("Error = %q", result.Error)
	}
}

func TestRunSuiteSequential(t *testing.T) {
	agent := &oagitest.FakeAgent{Script: []oagitest.Step{
		{Result: &oagi.Result{Success: true, StepsCompleted: 1}},
		{Result: &oagi.Result{Success: false, StepsCompleted: 1, Errors: []string{"banner missing"}}},
		{Result: &oagi.Result{Success: true, StepsCompleted: 1}},
	}}
	r := &Runner{Agent: agent, Handler: oagitest.NoopHandler{}, Images: oagitest.BlankProvider{}}

	tests := []TestCase{
		{Name: "one", Steps: []TestStep{{Description: "a", Action: "do a"}}},
		{Name: "two", Steps: []TestStep{{Description: "b", Action: "do b"}}},
		{Name: "three", Steps: []TestStep{{Description: "c", Action: "do c"}}},
	}

	results, agg := r.RunSuite(context.Background(), tests, SuiteOptions{})
	if len(results) != 3 {
		t.Fatalf("len(results) = %d, want 3", len(results))
	}
	for i, want := range []string{"one", "two", "three"} {
		if results[i].TestName != want {
			t.Errorf("results[%d].TestName = %q, want %q", i, results[i].TestName, want)
		}
	}
	if agg.Total != 3 || agg.Passed != 2 || agg.Failed != 1 {
		t.Errorf("agg = %+v, want 2 passed 1 failed of 3", agg)
	}
	if agg.Success() {
		t.Error("agg.Success() = true with a failed test")
	}
}

func TestRunSuiteStopOnFailure(t *testing.T) {
	agent := oagitest.Fail(errors.New("boom"))
	r := &Runner{Agent: agent, Handler: oagitest.NoopHandler{}, Images: oagitest.BlankProvider{}}

	tests := []TestCase{
		{Name: "one", Steps: []TestStep{{Description: "a", Action: "do a"}}},
		{Name: "two", Steps: []TestStep{{Description: "b", Action: "do b"}}},
	}

	results, agg := r.RunSuite(context.Background(), tests, SuiteOptions{StopOnFailure: true})
	if len(results) != 1 {
		t.Fatalf("len(results) = %d, want 1", len(results))
	}
	if agg.Total != 1 {
		t.Errorf("agg.Total = %d, want run halted after first test", agg.Total)
	}
	if agent.Calls() != 1 {
		t.Errorf("agent ran %d times, want 1", agent.Calls())
	}
}

func TestRunSuiteParallelPreservesOrder(t *testing.T) {
	r := &Runner{Agent: oagitest.Succeed(), Handler: oagitest.NoopHandler{}, Images: oagitest.BlankProvider{}}

	tests := []TestCase{
		{Name: "alpha", Steps: []TestStep{{Description: "a", Action: "do a"}}},
		{Name: "beta", Steps: []TestStep{{Description: "b", Action: "do b"}}},
		{Name: "gamma", Steps: []TestStep{{Description: "c", Action: "do c"}}},
	}

	results, agg := r.RunSuite(context.Background(), tests, SuiteOptions{Parallel: true})
	if len(results) != 3 {
		t.Fatalf("len(results) = %d, want 3", len(results))
	}
	for i, want := range []string{"alpha", "beta", "gamma"} {
		if results[i].TestName != want {
			t.Errorf("results[%d].TestName = %q, want %q", i, results[i].TestName, want)
		}
	}
	if !agg.Success() || agg.Passed != 3 {
		t.Errorf("agg = %+v, want all passed", agg)
	}
}

func TestFilterByTag(t *testing.T) {
	tests := []TestCase{
		{Name: "one", Tags: []string{"smoke", "auth"}},
		{Name: "two", Tags: []string{"regression"}},
		{Name: "three", Tags: []string{"smoke"}},
	}

	got := FilterByTag(tests, "smoke")
	if len(got) != 2 || got[0].Name != "one" || got[1].Name != "three" {
		t.Errorf("FilterByTag(smoke) = %v", got)
	}
	if got := FilterByTag(tests, ""); len(got) != 3 {
		t.Errorf("FilterByTag(\"\") kept %d, want 3", len(got))
	}
	if got := FilterByTag(tests, "missing"); len(got) != 0 {
		t.Errorf("FilterByTag(missing) kept %d, want 0", len(got))
	}
}
