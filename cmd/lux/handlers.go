// Package main provides the lux CLI.
//
// handlers.go contains the shared runtime plumbing used by every command
// handler: configuration loading, agent selection, and the browser driver.
package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/openagi/lux-go/internal/batch"
	"github.com/openagi/lux-go/internal/config"
	"github.com/openagi/lux-go/internal/driver"
	"github.com/openagi/lux-go/internal/oagi"
	"github.com/openagi/lux-go/internal/oagi/anthropicagent"
	"github.com/openagi/lux-go/internal/oagi/lux"
)

// runtime bundles the collaborators every task handler needs.
type runtime struct {
	cfg     *config.Config
	agent   oagi.Agent
	handler oagi.ActionHandler
	images  oagi.ImageProvider

	relay *driver.ChromeRelay
}

// selectModel resolves the model for a command: the --model flag when the
// user set it, otherwise the command's preferred variant.
func selectModel(cmd *cobra.Command, preferred oagi.Model) (oagi.Model, error) {
	if cmd.Flags().Changed("model") || cmd.InheritedFlags().Changed("model") {
		return oagi.ParseModel(flagModel)
	}
	return preferred, nil
}

// newRuntime loads configuration and wires the agent and browser driver for
// one command invocation. Close must be called when the handler is done.
func newRuntime(ctx context.Context, cmd *cobra.Command, preferred oagi.Model) (*runtime, error) {
	cfg, err := config.FromEnv()
	if err != nil {
		return nil, err
	}
	if flagVerbose {
		cfg.Verbose = true
	}

	model, err := selectModel(cmd, preferred)
	if err != nil {
		return nil, err
	}
	agentCfg := oagi.AgentConfig{
		Model:      model,
		MaxRetries: cfg.MaxRetries,
		Verbose:    cfg.Verbose,
	}

	rt := &runtime{cfg: cfg}

	if flagDryRun {
		rt.handler = driver.NoopHandler{Logger: slog.Default()}
		rt.images = driver.StaticProvider{Shot: oagi.Screenshot{Format: "png"}}
	} else {
		debugURL := flagChromeURL
		if debugURL == "" {
			debugURL = driver.DefaultDebugURL
		}
		relay := driver.NewChromeRelay(debugURL)
		if err := relay.Connect(ctx); err != nil {
			return nil, fmt.Errorf("connect to Chrome at %s: %w (start Chrome with --remote-debugging-port, or use --dry-run)", debugURL, err)
		}
		rt.relay = relay
		rt.handler = relay
		rt.images = relay
	}

	switch strings.ToLower(flagBackend) {
	case "", "lux":
		rt.agent, err = lux.New(cfg, agentCfg)
	case "anthropic":
		rt.agent, err = anthropicagent.New(anthropicagent.Config{
			APIKey: os.Getenv("ANTHROPIC_API_KEY"),
			Agent:  agentCfg,
		})
	default:
		err = fmt.Errorf("unknown backend %q: want lux or anthropic", flagBackend)
	}
	if err != nil {
		rt.Close()
		return nil, err
	}
	return rt, nil
}

// Close releases the browser session, if any.
func (rt *runtime) Close() {
	if rt.relay != nil {
		rt.relay.Close()
	}
}

// printOutcome writes one task summary line.
func printOutcome(cmd *cobra.Command, out oagi.Outcome) {
	status := "FAILED"
	if out.Success {
		status = "OK"
	}
	fmt.Fprintf(cmd.OutOrStdout(), "%-7s %s (%s, %d steps)\n",
		status, out.Name, out.Elapsed.Round(10*time.Millisecond), out.StepsCompleted)
	if out.Error != "" {
		fmt.Fprintf(cmd.OutOrStdout(), "        %s\n", out.Error)
	}
}

// printAggregate writes the rolled-up summary of a multi-item run.
func printAggregate(cmd *cobra.Command, agg batch.Aggregate) {
	fmt.Fprintf(cmd.OutOrStdout(), "\n%d/%d passed", agg.Passed, agg.Total)
	if agg.Errored > 0 {
		fmt.Fprintf(cmd.OutOrStdout(), ", %d errored", agg.Errored)
	}
	if agg.Skipped > 0 {
		fmt.Fprintf(cmd.OutOrStdout(), ", %d skipped", agg.Skipped)
	}
	fmt.Fprintln(cmd.OutOrStdout())
}

// failure converts an unsuccessful outcome into the command error that sets
// the process exit code.
func failure(out oagi.Outcome) error {
	if out.Success {
		return nil
	}
	return fmt.Errorf("%s: %s", out.Name, out.Error)
}

// aggFailure is failure for multi-item runs.
func aggFailure(agg batch.Aggregate) error {
	if agg.Success() {
		return nil
	}
	return fmt.Errorf("%d of %d tasks did not pass", agg.Total-agg.Passed, agg.Total)
}
