package webautomation

import (
	"context"
	"fmt"
	"strings"

	"github.com/openagi/lux-go/internal/instruction"
	"github.com/openagi/lux-go/internal/oagi"
)

// ResearchSpec describes one research task.
type ResearchSpec struct {
	Topic string
	// NumSources is the number of sources to consult; 3 when zero.
	NumSources int
	// SearchEngine is "google", "bing", or "duckduckgo"; google when empty.
	SearchEngine string
	// OutputFormat is "markdown", "text", or "json"; markdown when empty.
	OutputFormat string
	// SaveTo optionally names a file the agent should save the summary to.
	SaveTo string
}

func (s ResearchSpec) withDefaults() ResearchSpec {
	if s.NumSources <= 0 {
		s.NumSources = 3
	}
	if s.SearchEngine == "" {
		s.SearchEngine = "google"
	}
	if s.OutputFormat == "" {
		s.OutputFormat = "markdown"
	}
	return s
}

// ResearchResult is the outcome of one research run.
type ResearchResult struct {
	oagi.Outcome
	Topic          string
	SourcesVisited int
	// Summary stays empty unless the agent left one on the clipboard; the
	// compiled research itself lives wherever SaveTo pointed.
	Summary    string
	OutputPath string
}

// Researcher conducts multi-step research across websites.
type Researcher struct {
	Agent   oagi.Agent
	Handler oagi.ActionHandler
	Images  oagi.ImageProvider
}

// BuildResearchInstruction renders the instruction for one research spec. Pure.
func BuildResearchInstruction(spec ResearchSpec) (string, error) {
	if strings.TrimSpace(spec.Topic) == "" {
		return "", fmt.Errorf("%w: research topic is required", instruction.ErrIncompleteTask)
	}
	spec = spec.withDefaults()

	var b instruction.Builder
	b.Linef("Research Topic: %q", spec.Topic)
	b.Blank()
	b.Line("Steps:")
	b.Stepf("Go to %s.com and search for %q", spec.SearchEngine, spec.Topic)
	b.Stepf("Visit %d reputable sources from the search results", spec.NumSources)
	b.Step("For each source:")
	b.Detail("- Read the main content")
	b.Detail("- Note key points and findings")
	b.Detail("- Record the source URL")
	b.Step("Compile all findings into a comprehensive summary")
	b.Stepf("Format the summary as %s", spec.OutputFormat)
	b.StepIf(spec.SaveTo != "", fmt.Sprintf("Save the compiled research to: %s", spec.SaveTo))
	return b.String(), nil
}

// Research runs one research task.
func (r *Researcher) Research(ctx context.Context, spec ResearchSpec) ResearchResult {
	instr, err := BuildResearchInstruction(spec)
	if err != nil {
		return ResearchResult{Outcome: oagi.Outcome{Name: spec.Topic, Error: err.Error()}, Topic: spec.Topic}
	}
	spec = spec.withDefaults()

	out := oagi.Invoke(ctx, r.Agent, spec.Topic, instr, r.Handler, r.Images)
	result := ResearchResult{Outcome: out, Topic: spec.Topic, OutputPath: spec.SaveTo}
	if out.Success {
		result.SourcesVisited = spec.NumSources
	}
	return result
}

// CompareSources compares specific sources against the given criteria.
func (r *Researcher) CompareSources(ctx context.Context, topic string, sources, criteria []string) ResearchResult {
	if strings.TrimSpace(topic) == "" || len(sources) == 0 || len(criteria) == 0 {
		return ResearchResult{
			Outcome: oagi.Outcome{Name: topic, Error: instruction.ErrIncompleteTask.Error()},
			Topic:   topic,
		}
	}

	var b instruction.Builder
	b.Linef("Compare information about %q across these sources:", topic)
	b.Line(instruction.BulletList(sources))
	b.Blank()
	b.Line("For each source, extract information about:")
	b.Line(instruction.BulletList(criteria))
	b.Blank()
	b.Line("Then create a comparison table showing how each source differs.")

	out := oagi.Invoke(ctx, r.Agent, topic, b.String(), r.Handler, r.Images)
	result := ResearchResult{Outcome: out, Topic: topic}
	if out.Success {
		result.SourcesVisited = len(sources)
	}
	return result
}

// FactCheck verifies a claim against multiple sources.
func (r *Researcher) FactCheck(ctx context.Context, claim string, numSources int) ResearchResult {
	topic := fmt.Sprintf("Fact-check: %s", claim)
	if strings.TrimSpace(claim) == "" {
		return ResearchResult{
			Outcome: oagi.Outcome{Name: topic, Error: instruction.ErrIncompleteTask.Error()},
			Topic:   topic,
		}
	}
	if numSources <= 0 {
		numSources = 3
	}

	var b instruction.Builder
	b.Linef("Fact-check the following claim: %q", claim)
	b.Blank()
	b.Line("Steps:")
	b.Step("Search for information related to this claim")
	b.Stepf("Visit %d reputable sources", numSources)
	b.Step("For each source, note:")
	b.Detail("- Whether it supports, refutes, or is neutral on the claim")
	b.Detail("- Key evidence provided")
	b.Step("Compile a summary indicating the overall verdict")

	out := oagi.Invoke(ctx, r.Agent, topic, b.String(), r.Handler, r.Images)
	result := ResearchResult{Outcome: out, Topic: topic}
	if out.Success {
		result.SourcesVisited = numSources
	}
	return result
}
