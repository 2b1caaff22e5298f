package qa

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/openagi/lux-go/internal/batch"
)

// Report renders suite results as a markdown test report.
func Report(suiteName string, results []TestResult, agg batch.Aggregate) string {
	var sb strings.Builder

	fmt.Fprintf(&sb, "# Test Report: %s\n\n", suiteName)
	fmt.Fprintf(&sb, "Generated: %s\n\n", time.Now().Format("2006-01-02 15:04:05"))

	sb.WriteString("## Summary\n\n")
	fmt.Fprintf(&sb, "- Total: %d\n", agg.Total)
	fmt.Fprintf(&sb, "- Passed: %d\n", agg.Passed)
	fmt.Fprintf(&sb, "- Failed: %d\n", agg.Failed+agg.Errored)
	if agg.Skipped > 0 {
		fmt.Fprintf(&sb, "- Skipped: %d\n", agg.Skipped)
	}
	fmt.Fprintf(&sb, "- Pass Rate: %s\n", passRate(agg))
	fmt.Fprintf(&sb, "- Duration: %s\n\n", totalDuration(results).Round(time.Millisecond))

	sb.WriteString("## Results\n\n")
	for _, result := range results {
		fmt.Fprintf(&sb, "### %s %s\n\n", statusIcon(result), result.TestName)
		fmt.Fprintf(&sb, "- Steps: %d/%d\n", result.StepsPassed, result.StepsTotal)
		fmt.Fprintf(&sb, "- Duration: %s\n", result.Elapsed.Round(time.Millisecond))
		if result.Error != "" {
			fmt.Fprintf(&sb, "- Error: %s\n", result.Error)
		}
		sb.WriteString("\n")
	}
	return sb.String()
}

// WriteReport renders the report and writes it to path.
func WriteReport(path, suiteName string, results []TestResult, agg batch.Aggregate) error {
	if err := os.WriteFile(path, []byte(Report(suiteName, results, agg)), 0o644); err != nil {
		return fmt.Errorf("write report: %w", err)
	}
	return nil
}

func passRate(agg batch.Aggregate) string {
	if agg.Total == 0 {
		return "n/a"
	}
	return fmt.Sprintf("%.1f%%", float64(agg.Passed)/float64(agg.Total)*100)
}

func totalDuration(results []TestResult) time.Duration {
	var total time.Duration
	for _, result := range results {
		total += result.Elapsed
	}
	return total
}

func statusIcon(result TestResult) string {
	if result.Success {
		return "[PASS]"
	}
	return "[FAIL]"
}
