package finance

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/openagi/lux-go/internal/instruction"
	"github.com/openagi/lux-go/internal/oagi"
	"github.com/openagi/lux-go/internal/oagi/oagitest"
)

func TestBuildActivityInstruction(t *testing.T) {
	instr, err := BuildActivityInstruction(ActivityConfig{}, "aapl")
	if err != nil {
		t.Fatalf("BuildActivityInstruction: %v", err)
	}

	for _, want := range []string{
		"Look up insider trading activity for AAPL.",
		"1. Navigate to https://www.nasdaq.com",
		"2. Search for the stock symbol 'AAPL'",
		"3. Open the 'Insider Activity' section",
		"latest 10 transactions",
	} {
		if !strings.Contains(instr, want) {
			t.Errorf("instruction missing %q:\n%s", want, instr)
		}
	}
}

func TestBuildActivityInstructionOverrides(t *testing.T) {
	cfg := ActivityConfig{SiteURL: "https://finance.example.com", MaxTransactions: 25}
	instr, err := BuildActivityInstruction(cfg, "MSFT")
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(instr, "https://finance.example.com") || !strings.Contains(instr, "latest 25 transactions") {
		t.Errorf("overrides not applied:\n%s", instr)
	}
}

func TestBuildActivityInstructionRequiresSymbol(t *testing.T) {
	if _, err := BuildActivityInstruction(ActivityConfig{}, "  "); !errors.Is(err, instruction.ErrIncompleteTask) {
		t.Errorf("err = %v, want ErrIncompleteTask", err)
	}
}

func TestFetch(t *testing.T) {
	agent := oagitest.Succeed()
	tr := &Tracker{Agent: agent, Handler: oagitest.NoopHandler{}, Images: oagitest.BlankProvider{}}

	result := tr.Fetch(context.Background(), ActivityConfig{}, "aapl")
	if !result.Success {
		t.Fatalf("result.Success = false, error %q", result.Error)
	}
	if result.Symbol != "AAPL" {
		t.Errorf("Symbol = %q, want AAPL", result.Symbol)
	}
}

func TestFetchAllOrderAndAggregate(t *testing.T) {
	agent := oagitest.Succeed()
	tr := &Tracker{Agent: agent, Handler: oagitest.NoopHandler{}, Images: oagitest.BlankProvider{}}

	symbols := []string{"AAPL", "MSFT", "GOOG"}
	results, agg := tr.FetchAll(context.Background(), ActivityConfig{}, symbols)

	if len(results) != 3 {
		t.Fatalf("len(results) = %d, want 3", len(results))
	}
	for i, want := range symbols {
		if results[i].Symbol != want {
			t.Errorf("results[%d].Symbol = %q, want %q", i, results[i].Symbol, want)
		}
	}
	if agg.Total != 3 || agg.Passed != 3 || !agg.Success() {
		t.Errorf("agg = %+v, want 3/3 passed", agg)
	}
	if agent.Calls() != 3 {
		t.Errorf("agent ran %d times, want 3", agent.Calls())
	}
}

func TestFetchAllContinuesPastFailure(t *testing.T) {
	agent := &oagitest.FakeAgent{Script: []oagitest.Step{
		{Result: &oagi.Result{Success: true, StepsCompleted: 4}},
		{Result: &oagi.Result{Success: false, StepsCompleted: 2, Errors: []string{"quote page blocked"}}},
		{Result: &oagi.Result{Success: true, StepsCompleted: 4}},
	}}
	tr := &Tracker{Agent: agent, Handler: oagitest.NoopHandler{}, Images: oagitest.BlankProvider{}}

	results, agg := tr.FetchAll(context.Background(), ActivityConfig{}, []string{"AAPL", "MSFT", "GOOG"})

	if len(results) != 3 {
		t.Fatalf("len(results) = %d, want all symbols attempted", len(results))
	}
	if agg.Passed != 2 || agg.Failed != 1 {
		t.Errorf("agg = %+v, want 2 passed 1 failed", agg)
	}
	if results[1].Error != "quote page blocked" {
		t.Errorf("failed symbol error = %q", results[1].Error)
	}
}
