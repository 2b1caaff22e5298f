// Package main provides the lux CLI.
//
// handlers_web.go implements the form, scrape, and research commands.
package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/openagi/lux-go/internal/export"
	"github.com/openagi/lux-go/internal/oagi"
	"github.com/openagi/lux-go/internal/webautomation"
)

// =============================================================================
// Form Command Handler
// =============================================================================

// parsePair splits a NAME=VALUE flag value.
func parsePair(raw, what string) (string, string, error) {
	name, value, ok := strings.Cut(raw, "=")
	if !ok || strings.TrimSpace(name) == "" {
		return "", "", fmt.Errorf("invalid %s %q: want NAME=VALUE", what, raw)
	}
	return strings.TrimSpace(name), value, nil
}

func runForm(cmd *cobra.Command, url string, rawFields []string, submit bool, submitButton string) error {
	fields := make([]webautomation.FormField, 0, len(rawFields))
	for _, raw := range rawFields {
		name, value, err := parsePair(raw, "field")
		if err != nil {
			return err
		}
		fields = append(fields, webautomation.FormField{Name: name, Value: value, Type: webautomation.FieldText})
	}

	rt, err := newRuntime(cmd.Context(), cmd, oagi.ModelActor)
	if err != nil {
		return err
	}
	defer rt.Close()

	filler := &webautomation.FormFiller{Agent: rt.agent, Handler: rt.handler, Images: rt.images}
	result := filler.FillForm(cmd.Context(), webautomation.FormSpec{
		URL:          url,
		Fields:       fields,
		Submit:       submit,
		SubmitButton: submitButton,
	})

	printOutcome(cmd, result.Outcome)
	if result.Success {
		fmt.Fprintf(cmd.OutOrStdout(), "Filled %d fields\n", result.FieldsFilled)
	}
	return failure(result.Outcome)
}

// =============================================================================
// Scrape Command Handler
// =============================================================================

func runScrape(cmd *cobra.Command, url string, rawTargets []string, table string, headers, wait bool, output string) error {
	if len(rawTargets) == 0 && table == "" {
		return fmt.Errorf("nothing to extract: pass --target or --table")
	}
	if len(rawTargets) > 0 && table != "" {
		return fmt.Errorf("--target and --table are mutually exclusive")
	}

	rt, err := newRuntime(cmd.Context(), cmd, oagi.ModelActor)
	if err != nil {
		return err
	}
	defer rt.Close()

	scraper := &webautomation.Scraper{Agent: rt.agent, Handler: rt.handler, Images: rt.images}

	var result webautomation.ScrapeResult
	if table != "" {
		result = scraper.ScrapeTable(cmd.Context(), url, table, headers)
	} else {
		targets := make([]webautomation.ScrapeTarget, 0, len(rawTargets))
		for _, raw := range rawTargets {
			name, desc, err := parsePair(raw, "target")
			if err != nil {
				return err
			}
			targets = append(targets, webautomation.ScrapeTarget{Name: name, Description: desc, Type: webautomation.TargetText})
		}
		result = scraper.Scrape(cmd.Context(), url, targets, wait)
	}

	printOutcome(cmd, result.Outcome)
	if output != "" {
		if err := export.WriteJSON(output, result.Data); err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Data written to %s\n", output)
	}
	return failure(result.Outcome)
}

// =============================================================================
// Research Command Handler
// =============================================================================

func runResearch(cmd *cobra.Command, topic string, numSources int, engine, format, saveTo string) error {
	rt, err := newRuntime(cmd.Context(), cmd, oagi.ModelThinker)
	if err != nil {
		return err
	}
	defer rt.Close()

	researcher := &webautomation.Researcher{Agent: rt.agent, Handler: rt.handler, Images: rt.images}
	result := researcher.Research(cmd.Context(), webautomation.ResearchSpec{
		Topic:        topic,
		NumSources:   numSources,
		SearchEngine: engine,
		OutputFormat: format,
		SaveTo:       saveTo,
	})

	printOutcome(cmd, result.Outcome)
	return failure(result.Outcome)
}
