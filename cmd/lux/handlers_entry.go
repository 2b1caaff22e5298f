// Package main provides the lux CLI.
//
// handlers_entry.go implements the bulk data-entry and report commands.
package main

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/openagi/lux-go/internal/dataentry"
	"github.com/openagi/lux-go/internal/oagi"
)

// =============================================================================
// Entry Command Handler
// =============================================================================

func runEntry(cmd *cobra.Command, url, csvPath string, rawMappings []string, newButton, submitButton, confirmation string, delay time.Duration, stopOnFailure bool) error {
	mapping := make(dataentry.ColumnMapping, len(rawMappings))
	for _, raw := range rawMappings {
		col, field, err := parsePair(raw, "mapping")
		if err != nil {
			return err
		}
		mapping[col] = field
	}

	rt, err := newRuntime(cmd.Context(), cmd, oagi.ModelActor)
	if err != nil {
		return err
	}
	defer rt.Close()

	keyer := &dataentry.Keyer{Agent: rt.agent, Handler: rt.handler, Images: rt.images}
	spec := dataentry.EntrySpec{
		URL:             url,
		NewRecordButton: newButton,
		SubmitButton:    submitButton,
		Confirmation:    confirmation,
		Delay:           delay,
		StopOnFailure:   stopOnFailure,
	}

	result, err := keyer.EnterFromCSV(cmd.Context(), spec, csvPath, mapping)
	if err != nil {
		return err
	}
	for _, out := range result.Outcomes {
		printOutcome(cmd, out)
	}
	printAggregate(cmd, result.Aggregate)
	return aggFailure(result.Aggregate)
}

// =============================================================================
// Report Command Handler
// =============================================================================

// parseSource parses a NAME|URL|INSTRUCTIONS flag value.
func parseSource(raw string) (dataentry.DataSource, error) {
	parts := strings.SplitN(raw, "|", 3)
	if len(parts) != 3 {
		return dataentry.DataSource{}, fmt.Errorf("invalid source %q: want NAME|URL|INSTRUCTIONS", raw)
	}
	return dataentry.DataSource{
		Name:                   strings.TrimSpace(parts[0]),
		URL:                    strings.TrimSpace(parts[1]),
		ExtractionInstructions: strings.TrimSpace(parts[2]),
	}, nil
}

func runReport(cmd *cobra.Command, title string, rawSources []string, format, dateRange string, screenshots bool, saveTo string) error {
	sources := make([]dataentry.DataSource, 0, len(rawSources))
	for _, raw := range rawSources {
		src, err := parseSource(raw)
		if err != nil {
			return err
		}
		sources = append(sources, src)
	}

	rt, err := newRuntime(cmd.Context(), cmd, oagi.ModelThinker)
	if err != nil {
		return err
	}
	defer rt.Close()

	generator := &dataentry.ReportGenerator{Agent: rt.agent, Handler: rt.handler, Images: rt.images}
	out := generator.Generate(cmd.Context(), dataentry.ReportConfig{
		Title:              title,
		Sources:            sources,
		Format:             dataentry.ReportFormat(format),
		DateRange:          dateRange,
		IncludeScreenshots: screenshots,
		SaveTo:             saveTo,
	})

	printOutcome(cmd, out)
	return failure(out)
}
