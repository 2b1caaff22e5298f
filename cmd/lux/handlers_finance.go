// Package main provides the lux CLI.
//
// handlers_finance.go implements the market-data commands.
package main

import (
	"time"

	"github.com/spf13/cobra"

	"github.com/openagi/lux-go/internal/finance"
	"github.com/openagi/lux-go/internal/oagi"
)

// =============================================================================
// Insider Command Handler
// =============================================================================

func runInsider(cmd *cobra.Command, symbols []string, site string, max int, delay time.Duration) error {
	rt, err := newRuntime(cmd.Context(), cmd, oagi.ModelActor)
	if err != nil {
		return err
	}
	defer rt.Close()

	tracker := &finance.Tracker{Agent: rt.agent, Handler: rt.handler, Images: rt.images}
	cfg := finance.ActivityConfig{SiteURL: site, MaxTransactions: max, Delay: delay}

	results, agg := tracker.FetchAll(cmd.Context(), cfg, symbols)
	for _, result := range results {
		printOutcome(cmd, result.Outcome)
	}
	printAggregate(cmd, agg)
	return aggFailure(agg)
}
