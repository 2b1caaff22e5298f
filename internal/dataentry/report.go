package dataentry

import (
	"context"
	"fmt"
	"strings"

	"github.com/openagi/lux-go/internal/instruction"
	"github.com/openagi/lux-go/internal/oagi"
)

// ReportFormat is the requested output document format.
type ReportFormat string

const (
	FormatMarkdown ReportFormat = "markdown"
	FormatHTML     ReportFormat = "html"
	FormatPDF      ReportFormat = "pdf"
	FormatDocx     ReportFormat = "docx"
	FormatJSON     ReportFormat = "json"
)

// Valid reports whether f is a known format.
func (f ReportFormat) Valid() bool {
	switch f {
	case FormatMarkdown, FormatHTML, FormatPDF, FormatDocx, FormatJSON:
		return true
	}
	return false
}

// DataSource is one place to collect report data from.
type DataSource struct {
	Name string
	URL  string
	// ExtractionInstructions tells the agent what to pull from the page.
	ExtractionInstructions string
}

// ReportConfig describes a data-collection report job.
type ReportConfig struct {
	Title   string
	Sources []DataSource
	Format  ReportFormat
	// DateRange scopes the collected data, e.g. "last 30 days".
	DateRange string
	// IncludeScreenshots asks for a capture of each source page.
	IncludeScreenshots bool
	// SaveTo is where the finished document goes.
	SaveTo string
}

func (c ReportConfig) withDefaults() ReportConfig {
	if c.Format == "" {
		c.Format = FormatMarkdown
	}
	return c
}

// BuildReportInstruction renders a two-phase collect-then-compile
// instruction. Pure.
func BuildReportInstruction(cfg ReportConfig) (string, error) {
	cfg = cfg.withDefaults()
	if strings.TrimSpace(cfg.Title) == "" {
		return "", fmt.Errorf("%w: report title is required", instruction.ErrIncompleteTask)
	}
	if len(cfg.Sources) == 0 {
		return "", fmt.Errorf("%w: at least one data source is required", instruction.ErrIncompleteTask)
	}
	if !cfg.Format.Valid() {
		return "", fmt.Errorf("unknown report format %q", cfg.Format)
	}

	var b instruction.Builder
	b.Linef("Compile a report: %s", cfg.Title)
	b.LineIf(cfg.DateRange != "", fmt.Sprintf("Date range: %s", cfg.DateRange))
	b.Blank()

	b.Line("PHASE 1 - DATA COLLECTION")
	for _, src := range cfg.Sources {
		b.Stepf("Navigate to %s (%s)", src.URL, src.Name)
		b.Detail(src.ExtractionInstructions)
		if cfg.IncludeScreenshots {
			b.Detail("Capture a screenshot of the page for the report")
		}
	}
	b.Blank()

	b.Line("PHASE 2 - REPORT GENERATION")
	b.Stepf("Combine the collected data into a single %s document titled '%s'", cfg.Format, cfg.Title)
	b.Step("Include a summary section followed by one section per source")
	b.StepIf(cfg.SaveTo != "", fmt.Sprintf("Save the document to %s", cfg.SaveTo))
	return b.String(), nil
}

// ReportGenerator runs report jobs through an agent.
type ReportGenerator struct {
	Agent   oagi.Agent
	Handler oagi.ActionHandler
	Images  oagi.ImageProvider
}

// Generate collects data from every source and compiles the report as one
// task.
func (g *ReportGenerator) Generate(ctx context.Context, cfg ReportConfig) oagi.Outcome {
	instr, err := BuildReportInstruction(cfg)
	if err != nil {
		return oagi.Outcome{Name: cfg.Title, Error: err.Error()}
	}
	return oagi.Invoke(ctx, g.Agent, cfg.Title, instr, g.Handler, g.Images)
}
