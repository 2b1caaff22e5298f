package qa

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/openagi/lux-go/internal/batch"
	"github.com/openagi/lux-go/internal/oagi"
)

func sampleResults() ([]TestResult, batch.Aggregate) {
	results := []TestResult{
		{
			Outcome:  oagi.Outcome{Name: "login", Success: true, Elapsed: 1200 * time.Millisecond},
			TestName: "login", StepsPassed: 3, StepsTotal: 3,
		},
		{
			Outcome:  oagi.Outcome{Name: "checkout", Success: false, StepsCompleted: 1, Error: "cart badge missing", Elapsed: 800 * time.Millisecond},
			TestName: "checkout", StepsPassed: 0, StepsTotal: 4,
		},
	}
	var agg batch.Aggregate
	for _, result := range results {
		agg.Total++
		switch batch.StatusOf(result.Outcome) {
		case batch.StatusPassed:
			agg.Passed++
		default:
			agg.Failed++
		}
	}
	return results, agg
}

func TestReport(t *testing.T) {
	results, agg := sampleResults()
	report := Report("smoke", results, agg)

	for _, want := range []string{
		"# Test Report: smoke",
		"- Total: 2",
		"- Passed: 1",
		"- Failed: 1",
		"- Pass Rate: 50.0%",
		"- Duration: 2s",
		"### [PASS] login",
		"- Steps: 3/3",
		"### [FAIL] checkout",
		"- Steps: 0/4",
		"- Error: cart badge missing",
	} {
		if !strings.Contains(report, want) {
			t.Errorf("report missing %q:\n%s", want, report)
		}
	}
	if strings.Contains(report, "- Skipped:") {
		t.Error("report lists skipped tests when none were skipped")
	}
}

func TestReportEmpty(t *testing.T) {
	report := Report("empty", nil, batch.Aggregate{})
	if !strings.Contains(report, "- Pass Rate: n/a") {
		t.Errorf("empty report pass rate:\n%s", report)
	}
}

func TestWriteReport(t *testing.T) {
	results, agg := sampleResults()
	path := filepath.Join(t.TempDir(), "report.md")

	if err := WriteReport(path, "smoke", results, agg); err != nil {
		t.Fatalf("WriteReport: %v", err)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(string(data), "# Test Report: smoke") {
		t.Errorf("written report:\n%s", data)
	}
}
