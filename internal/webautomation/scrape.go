package webautomation

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/openagi/lux-go/internal/batch"
	"github.com/openagi/lux-go/internal/clipboard"
	"github.com/openagi/lux-go/internal/instruction"
	"github.com/openagi/lux-go/internal/oagi"
)

// TargetType hints how a scraped value should be extracted.
type TargetType string

const (
	TargetText   TargetType = "text"
	TargetNumber TargetType = "number"
	TargetList   TargetType = "list"
	TargetTable  TargetType = "table"
)

// ScrapeTarget names one piece of data to extract from a page.
type ScrapeTarget struct {
	Name        string
	Description string
	Type        TargetType
}

// ScrapeResult is the outcome of one scrape. Data holds the values parsed
// from the clipboard payload; targets the model did not deliver stay nil.
type ScrapeResult struct {
	oagi.Outcome
	URL  string
	Data map[string]any
}

// Scraper extracts structured data from web pages.
type Scraper struct {
	Agent   oagi.Agent
	Handler oagi.ActionHandler
	Images  oagi.ImageProvider
	// Clipboard is where extracted data is read back from after a
	// successful run. Defaults to the system clipboard.
	Clipboard clipboard.Reader
	Logger    *slog.Logger
}

func (s *Scraper) clip() clipboard.Reader {
	if s.Clipboard != nil {
		return s.Clipboard
	}
	return clipboard.SystemReader{}
}

func (s *Scraper) logger() *slog.Logger {
	if s.Logger != nil {
		return s.Logger
	}
	return slog.Default()
}

// BuildScrapeInstruction renders the extraction instruction. Pure.
func BuildScrapeInstruction(url string, targets []ScrapeTarget, waitForLoad bool) (string, error) {
	if strings.TrimSpace(url) == "" {
		return "", fmt.Errorf("%w: scrape URL is required", instruction.ErrIncompleteTask)
	}
	if len(targets) == 0 {
		return "", fmt.Errorf("%w: at least one scrape target is required", instruction.ErrIncompleteTask)
	}

	var b instruction.Builder
	b.Linef("Navigate to %s", url)
	b.LineIf(waitForLoad, "Wait for the page to fully load.")
	b.Blank()
	b.Line("Extract the following information:")
	for _, target := range targets {
		b.Stepf("%s: %s%s", target.Name, target.Description, typeHint(target.Type))
	}
	b.Blank()
	b.Line("After extracting all data, copy it to clipboard in JSON format keyed by the field names above.")
	return b.String(), nil
}

func typeHint(t TargetType) string {
	switch t {
	case TargetNumber:
		return " (extract as a number)"
	case TargetList:
		return " (extract as a list of items)"
	case TargetTable:
		return " (extract as tabular data)"
	default:
		return ""
	}
}

// Scrape extracts the targets from one URL.
func (s *Scraper) Scrape(ctx context.Context, url string, targets []ScrapeTarget, waitForLoad bool) ScrapeResult {
	instr, err := BuildScrapeInstruction(url, targets, waitForLoad)
	if err != nil {
		return ScrapeResult{Outcome: oagi.Outcome{Name: url, Error: err.Error()}, URL: url, Data: map[string]any{}}
	}

	out := oagi.Invoke(ctx, s.Agent, url, instr, s.Handler, s.Images)
	result := ScrapeResult{Outcome: out, URL: url, Data: emptyData(targets)}
	if out.Success {
		s.readBack(ctx, &result)
	}
	return result
}

// readBack best-effort fills result.Data from the clipboard. A missing or
// malformed payload leaves the empty defaults; it is not a failure.
func (s *Scraper) readBack(ctx context.Context, result *ScrapeResult) {
	var data map[string]any
	if err := clipboard.ReadJSON(s.clip(), &data); err != nil {
		s.logger().DebugContext(ctx, "clipboard read-back skipped", "url", result.URL, "error", err)
		return
	}
	for name, value := range data {
		result.Data[name] = value
	}
}

func emptyData(targets []ScrapeTarget) map[string]any {
	data := make(map[string]any, len(targets))
	for _, t := range targets {
		data[t.Name] = nil
	}
	return data
}

// ScrapeTable extracts one table identified by its description.
func (s *Scraper) ScrapeTable(ctx context.Context, url, tableDescription string, includeHeaders bool) ScrapeResult {
	if strings.TrimSpace(url) == "" || strings.TrimSpace(tableDescription) == "" {
		return ScrapeResult{
			Outcome: oagi.Outcome{Name: url, Error: instruction.ErrIncompleteTask.Error()},
			URL:     url,
			Data:    map[string]any{},
		}
	}

	var b instruction.Builder
	b.Linef("Navigate to %s", url)
	b.Blank()
	b.Linef("Find the table: %s", tableDescription)
	b.Blank()
	b.Line("Extract all data from the table:")
	if includeHeaders {
		b.Step("Include the header row")
	} else {
		b.Step("Skip the header row")
	}
	b.Step("Extract each row as a separate record")
	b.Step("Format as JSON array under the key \"table\"")
	b.Blank()
	b.Line("Copy the extracted data to clipboard.")

	out := oagi.Invoke(ctx, s.Agent, url, b.String(), s.Handler, s.Images)
	result := ScrapeResult{Outcome: out, URL: url, Data: map[string]any{"table": nil}}
	if out.Success {
		s.readBack(ctx, &result)
	}
	return result
}

// ScrapeMultiple extracts the same targets from several URLs in order.
func (s *Scraper) ScrapeMultiple(ctx context.Context, urls []string, targets []ScrapeTarget) ([]ScrapeResult, batch.Aggregate) {
	results := make([]ScrapeResult, 0, len(urls))
	agg := batch.Run(ctx, urls, batch.Options{}, func(ctx context.Context, url string) oagi.Outcome {
		r := s.Scrape(ctx, url, targets, true)
		results = append(results, r)
		return r.Outcome
	})
	return results, agg
}
