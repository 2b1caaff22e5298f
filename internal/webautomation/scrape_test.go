package webautomation

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/openagi/lux-go/internal/clipboard"
	"github.com/openagi/lux-go/internal/instruction"
	"github.com/openagi/lux-go/internal/oagi/oagitest"
)

var productTargets = []ScrapeTarget{
	{Name: "product_name", Description: "The main product title", Type: TargetText},
	{Name: "price", Description: "The product price", Type: TargetNumber},
	{Name: "features", Description: "List of product features", Type: TargetList},
}

func TestBuildScrapeInstruction(t *testing.T) {
	got, err := BuildScrapeInstruction("https://example.com/product/123", productTargets, true)
	if err != nil {
		t.Fatalf("BuildScrapeInstruction: %v", err)
	}

	wants := []string{
		"Navigate to https://example.com/product/123",
		"Wait for the page to fully load.",
		"1. product_name: The main product title",
		"2. price: The product price (extract as a number)",
		"3. features: List of product features (extract as a list of items)",
		"copy it to clipboard in JSON format",
	}
	for _, want := range wants {
		if !strings.Contains(got, want) {
			t.Errorf("instruction missing %q:\n%s", want, got)
		}
	}
}

func TestBuildScrapeInstruction_Incomplete(t *testing.T) {
	if _, err := BuildScrapeInstruction("", productTargets, true); !errors.Is(err, instruction.ErrIncompleteTask) {
		t.Errorf("missing URL: got %v", err)
	}
	if _, err := BuildScrapeInstruction("https://x", nil, true); !errors.Is(err, instruction.ErrIncompleteTask) {
		t.Errorf("missing targets: got %v", err)
	}
}

func TestScrape_ClipboardReadBack(t *testing.T) {
	s := &Scraper{
		Agent:     oagitest.Succeed(),
		Handler:   oagitest.NoopHandler{},
		Images:    oagitest.BlankProvider{},
		Clipboard: clipboard.StaticReader{Content: `{"product_name":"Widget","price":9.99}`},
	}

	result := s.Scrape(context.Background(), "https://example.com", productTargets, true)
	if !result.Success {
		t.Fatalf("expected success: %+v", result)
	}
	if result.Data["product_name"] != "Widget" {
		t.Errorf("product_name = %v, want Widget", result.Data["product_name"])
	}
	if result.Data["price"] != 9.99 {
		t.Errorf("price = %v, want 9.99", result.Data["price"])
	}
	// Target the payload did not include keeps its empty default.
	if result.Data["features"] != nil {
		t.Errorf("features = %v, want nil", result.Data["features"])
	}
}

func TestScrape_MalformedClipboardIsNotAFailure(t *testing.T) {
	s := &Scraper{
		Agent:     oagitest.Succeed(),
		Handler:   oagitest.NoopHandler{},
		Images:    oagitest.BlankProvider{},
		Clipboard: clipboard.StaticReader{Content: "not json at all"},
	}

	result := s.Scrape(context.Background(), "https://example.com", productTargets, false)
	if !result.Success {
		t.Fatal("malformed clipboard payload must not fail the run")
	}
	for _, target := range productTargets {
		if result.Data[target.Name] != nil {
			t.Errorf("%s = %v, want empty default", target.Name, result.Data[target.Name])
		}
	}
}

func TestScrape_FailureLeavesEmptyData(t *testing.T) {
	s := &Scraper{
		Agent:     oagitest.Fail(errors.New("no session")),
		Handler:   oagitest.NoopHandler{},
		Images:    oagitest.BlankProvider{},
		Clipboard: clipboard.StaticReader{Content: `{"product_name":"stale"}`},
	}

	result := s.Scrape(context.Background(), "https://example.com", productTargets, false)
	if result.Success || result.Error == "" {
		t.Fatalf("expected failure outcome, got %+v", result)
	}
	if result.Data["product_name"] != nil {
		t.Error("failed scrape must not read the clipboard")
	}
}

func TestScrapeTable(t *testing.T) {
	s := &Scraper{
		Agent:     oagitest.Succeed(),
		Handler:   oagitest.NoopHandler{},
		Images:    oagitest.BlankProvider{},
		Clipboard: clipboard.StaticReader{Content: `{"table":[["a","b"]]}`},
	}

	result := s.ScrapeTable(context.Background(), "https://example.com/stats", "quarterly revenue table", true)
	if !result.Success {
		t.Fatalf("expected success: %+v", result)
	}
	if result.Data["table"] == nil {
		t.Error("table data should be populated from the clipboard")
	}

	agent := s.Agent.(*oagitest.FakeAgent)
	instr := agent.Instructions[0]
	if !strings.Contains(instr, "Include the header row") {
		t.Errorf("instruction missing header clause:\n%s", instr)
	}
}

func TestScrapeMultiple_Order(t *testing.T) {
	s := &Scraper{
		Agent:     oagitest.Succeed(),
		Handler:   oagitest.NoopHandler{},
		Images:    oagitest.BlankProvider{},
		Clipboard: clipboard.StaticReader{Content: `{}`},
	}
	urls := []string{"https://a.example", "https://b.example", "https://c.example"}

	results, agg := s.ScrapeMultiple(context.Background(), urls, productTargets)
	if agg.Total != 3 || agg.Passed != 3 {
		t.Fatalf("aggregate = %+v, want 3 passed", agg)
	}
	for i, r := range results {
		if r.URL != urls[i] {
			t.Errorf("result %d = %q, want input order %q", i, r.URL, urls[i])
		}
	}
}
