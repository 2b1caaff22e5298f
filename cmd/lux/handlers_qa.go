// Package main provides the lux CLI.
//
// handlers_qa.go implements the UI testing commands.
package main

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/openagi/lux-go/internal/oagi"
	"github.com/openagi/lux-go/internal/qa"
)

// =============================================================================
// QA Run Command Handler
// =============================================================================

func runQASuite(cmd *cobra.Command, suitePath, baseURL, tag, reportPath string, stopOnFailure, parallel bool, delay time.Duration) error {
	suite, err := qa.LoadSuite(suitePath)
	if err != nil {
		return err
	}

	tests := qa.FilterByTag(suite.Tests, tag)
	if len(tests) == 0 {
		return fmt.Errorf("no tests in %s carry the tag %q", suitePath, tag)
	}

	rt, err := newRuntime(cmd.Context(), cmd, oagi.ModelThinker)
	if err != nil {
		return err
	}
	defer rt.Close()

	if baseURL == "" {
		baseURL = suite.BaseURL
	}

	runner := &qa.Runner{Agent: rt.agent, Handler: rt.handler, Images: rt.images}
	results, agg := runner.RunSuite(cmd.Context(), tests, qa.SuiteOptions{
		BaseURL:       baseURL,
		StopOnFailure: stopOnFailure,
		Parallel:      parallel,
		Delay:         delay,
	})

	for _, result := range results {
		printOutcome(cmd, result.Outcome)
	}
	printAggregate(cmd, agg)

	if reportPath != "" {
		if err := qa.WriteReport(reportPath, suite.Name, results, agg); err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Report written to %s\n", reportPath)
	}
	return aggFailure(agg)
}

// =============================================================================
// QA Validate Command Handler
// =============================================================================

// parseCheck parses a TYPE:TARGET[:EXPECTED] flag value.
func parseCheck(raw string) (qa.Validation, error) {
	parts := strings.SplitN(raw, ":", 3)
	if len(parts) < 2 {
		return qa.Validation{}, fmt.Errorf("invalid check %q: want TYPE:TARGET[:EXPECTED]", raw)
	}
	check := qa.Validation{
		Type:   qa.ValidationType(strings.TrimSpace(parts[0])),
		Target: strings.TrimSpace(parts[1]),
	}
	if len(parts) == 3 {
		check.Expected = strings.TrimSpace(parts[2])
	}
	// page_title and url_contains take only an expected value.
	if check.Expected == "" && (check.Type == qa.PageTitle || check.Type == qa.URLContains) {
		check.Expected = check.Target
		check.Target = ""
	}
	if _, err := check.Phrase(); err != nil {
		return qa.Validation{}, err
	}
	return check, nil
}

func runQAValidate(cmd *cobra.Command, url string, rawChecks []string) error {
	checks := make([]qa.Validation, 0, len(rawChecks))
	for _, raw := range rawChecks {
		check, err := parseCheck(raw)
		if err != nil {
			return err
		}
		checks = append(checks, check)
	}

	rt, err := newRuntime(cmd.Context(), cmd, oagi.ModelThinker)
	if err != nil {
		return err
	}
	defer rt.Close()

	validator := &qa.Validator{Agent: rt.agent, Handler: rt.handler, Images: rt.images}
	out := validator.Validate(cmd.Context(), url, checks)
	printOutcome(cmd, out)
	return failure(out)
}
