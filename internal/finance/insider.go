// Package finance automates market-data lookups, currently insider trading
// activity for listed symbols.
package finance

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/openagi/lux-go/internal/batch"
	"github.com/openagi/lux-go/internal/instruction"
	"github.com/openagi/lux-go/internal/oagi"
)

// InsiderTransaction is one insider trade row.
type InsiderTransaction struct {
	Insider  string  `json:"insider"`
	Relation string  `json:"relation,omitempty"`
	Date     string  `json:"date"`
	Type     string  `json:"type"`
	Shares   int64   `json:"shares"`
	Price    float64 `json:"price,omitempty"`
}

// ActivityResult reports the insider-activity lookup for one symbol.
type ActivityResult struct {
	oagi.Outcome
	Symbol       string
	Transactions []InsiderTransaction
}

// ActivityConfig describes an insider-activity lookup.
type ActivityConfig struct {
	// SiteURL defaults to https://www.nasdaq.com.
	SiteURL string
	// MaxTransactions caps how many rows to record. Defaults to 10.
	MaxTransactions int
	// Delay is the pause between symbols in a multi-symbol run.
	Delay time.Duration
}

func (c ActivityConfig) withDefaults() ActivityConfig {
	if c.SiteURL == "" {
		c.SiteURL = "https://www.nasdaq.com"
	}
	if c.MaxTransactions <= 0 {
		c.MaxTransactions = 10
	}
	return c
}

// BuildActivityInstruction renders an insider-activity lookup for one
// symbol. Pure.
func BuildActivityInstruction(cfg ActivityConfig, symbol string) (string, error) {
	symbol = strings.ToUpper(strings.TrimSpace(symbol))
	if symbol == "" {
		return "", fmt.Errorf("%w: stock symbol is required", instruction.ErrIncompleteTask)
	}
	cfg = cfg.withDefaults()

	var b instruction.Builder
	b.Linef("Look up insider trading activity for %s.", symbol)
	b.Blank()
	b.Stepf("Navigate to %s", cfg.SiteURL)
	b.Stepf("Search for the stock symbol '%s' and open its quote page", symbol)
	b.Step("Open the 'Insider Activity' section")
	b.Stepf("Record the insider name, transaction date, transaction type, and share count for the latest %d transactions", cfg.MaxTransactions)
	return b.String(), nil
}

// Tracker runs insider-activity lookups. Lookups are short point-and-read
// flows; an actor-class agent fits.
type Tracker struct {
	Agent   oagi.Agent
	Handler oagi.ActionHandler
	Images  oagi.ImageProvider
}

// Fetch looks up insider activity for one symbol.
func (t *Tracker) Fetch(ctx context.Context, cfg ActivityConfig, symbol string) ActivityResult {
	result := ActivityResult{Symbol: strings.ToUpper(strings.TrimSpace(symbol))}

	instr, err := BuildActivityInstruction(cfg, symbol)
	if err != nil {
		result.Outcome = oagi.Outcome{Name: symbol, Error: err.Error()}
		return result
	}

	result.Outcome = oagi.Invoke(ctx, t.Agent, result.Symbol, instr, t.Handler, t.Images)
	return result
}

// FetchAll looks up every symbol in order with cfg.Delay between them. One
// symbol failing does not stop the rest.
func (t *Tracker) FetchAll(ctx context.Context, cfg ActivityConfig, symbols []string) ([]ActivityResult, batch.Aggregate) {
	results := make([]ActivityResult, 0, len(symbols))
	agg := batch.Run(ctx, symbols, batch.Options{Delay: cfg.Delay}, func(ctx context.Context, symbol string) oagi.Outcome {
		result := t.Fetch(ctx, cfg, symbol)
		results = append(results, result)
		return result.Outcome
	})
	return results, agg
}
