// Package main provides the lux CLI, a toolkit of computer-use automation
// tasks driven by the Lux action models.
//
// Every command follows the same shape: build a natural-language instruction
// from CLI flags, hand it to the configured agent along with a browser
// action handler and screenshot provider, and print a summary of the
// outcome.
//
// # Basic Usage
//
// Look up insider trading activity:
//
//	lux insider AAPL MSFT GOOG
//
// Search a store for products:
//
//	lux search "usb-c hub" --sort price_low_to_high --prime
//
// Run a UI test suite:
//
//	lux qa run suite.yaml --report report.md
//
// # Environment Variables
//
//   - OAGI_API_KEY: Lux API key (required; a .env file is honored)
//   - OAGI_BASE_URL: Lux API endpoint override
//   - OAGI_TIMEOUT: per-request timeout in seconds
//   - OAGI_MAX_RETRIES: retry budget for transient API failures
//   - ANTHROPIC_API_KEY: only with --backend anthropic
package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"
)

// Build information - populated by ldflags during build.
//
// Example build command:
//
//	go build -ldflags "-X main.version=v1.0.0 -X main.commit=$(git rev-parse HEAD) -X main.date=$(date -u +%Y-%m-%dT%H:%M:%SZ)"
var (
	version = "dev"     // Semantic version (e.g., "v1.0.0")
	commit  = "none"    // Git commit SHA
	date    = "unknown" // Build timestamp
)

// Global flags shared by every command.
var (
	flagVerbose   bool
	flagModel     string
	flagBackend   string
	flagDryRun    bool
	flagChromeURL string
)

func main() {
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	}))
	slog.SetDefault(logger)

	rootCmd := buildRootCmd()

	if err := rootCmd.Execute(); err != nil {
		slog.Error("command failed", "error", err)
		os.Exit(1)
	}
}

// buildRootCmd creates the root command with all subcommands attached.
// Separated from main() to facilitate testing.
func buildRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "lux",
		Short: "Lux - computer-use automation toolkit",
		Long: `Lux drives websites through a computer-use action model.

Commands cover product search, shopping, appointment booking, market-data
lookups, form filling, scraping, research, UI testing, and bulk data entry.`,
		Version:      fmt.Sprintf("%s (commit: %s, built: %s)", version, commit, date),
		SilenceUsage: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			if flagVerbose {
				slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
					Level: slog.LevelDebug,
				})))
			}
		},
	}

	pf := rootCmd.PersistentFlags()
	pf.BoolVarP(&flagVerbose, "verbose", "v", false, "Enable debug logging")
	pf.StringVarP(&flagModel, "model", "m", "actor", "Lux model variant: actor, thinker, or tasker")
	pf.StringVar(&flagBackend, "backend", "lux", "Agent backend: lux (hosted API) or anthropic")
	pf.BoolVar(&flagDryRun, "dry-run", false, "Log actions instead of performing them")
	pf.StringVar(&flagChromeURL, "chrome-url", "", "Chrome DevTools debug URL (default http://localhost:9222)")

	rootCmd.AddCommand(
		buildInsiderCmd(),
		buildSearchCmd(),
		buildShopCmd(),
		buildBookCmd(),
		buildPlansCmd(),
		buildQACmd(),
		buildFormCmd(),
		buildScrapeCmd(),
		buildResearchCmd(),
		buildEntryCmd(),
		buildReportCmd(),
	)

	return rootCmd
}
