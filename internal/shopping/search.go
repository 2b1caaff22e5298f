// Package shopping builds and runs e-commerce automation tasks: product
// search with filters and sort orders, and cart-placement flows.
package shopping

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/openagi/lux-go/internal/export"
	"github.com/openagi/lux-go/internal/instruction"
	"github.com/openagi/lux-go/internal/oagi"
)

// SortOrder selects how search results are ordered.
type SortOrder string

const (
	SortRelevance SortOrder = "relevance"
	SortPriceAsc  SortOrder = "price_low_to_high"
	SortPriceDesc SortOrder = "price_high_to_low"
	SortReviews   SortOrder = "avg_review"
	SortNewest    SortOrder = "newest"
)

// paramValue maps the sort order onto the retailer's s= query parameter.
func (s SortOrder) paramValue() (string, bool) {
	switch s {
	case SortRelevance:
		return "relevanceblender", true
	case SortPriceAsc:
		return "price-asc-rank", true
	case SortPriceDesc:
		return "price-desc-rank", true
	case SortReviews:
		return "review-rank", true
	case SortNewest:
		return "date-desc-rank", true
	}
	return "", false
}

// SearchConfig describes one product search.
type SearchConfig struct {
	Query string
	// StoreURL defaults to https://www.amazon.com.
	StoreURL string
	SortBy   SortOrder
	// PrimeOnly applies the Prime shipping filter.
	PrimeOnly bool
	// MinRating filters to products rated at least this many stars (1-4).
	MinRating int
	// MaxPrice caps the unit price, in whole dollars. Zero means no cap.
	MaxPrice int
	// MaxResults caps how many products to record. Defaults to 10.
	MaxResults int
}

func (c SearchConfig) withDefaults() SearchConfig {
	if c.StoreURL == "" {
		c.StoreURL = "https://www.amazon.com"
	}
	if c.SortBy == "" {
		c.SortBy = SortRelevance
	}
	if c.MaxResults <= 0 {
		c.MaxResults = 10
	}
	return c
}

// Product is one recorded search hit.
type Product struct {
	Title  string  `json:"title"`
	Price  float64 `json:"price"`
	Rating float64 `json:"rating,omitempty"`
	URL    string  `json:"url,omitempty"`
	Prime  bool    `json:"prime,omitempty"`
}

// SearchResult reports one product search.
type SearchResult struct {
	oagi.Outcome
	Query        string
	Products     []Product
	TotalResults int
}

// searchExport is the JSON document written by SaveJSON.
type searchExport struct {
	SearchQuery   string    `json:"search_query"`
	Success       bool      `json:"success"`
	TotalResults  int       `json:"total_results"`
	ExecutionTime float64   `json:"execution_time"`
	Timestamp     string    `json:"timestamp"`
	Products      []Product `json:"products"`
	Errors        []string  `json:"errors"`
}

// SaveJSON writes the result to path. Empty product and error lists are
// written as [], not null.
func (r SearchResult) SaveJSON(path string) error {
	doc := searchExport{
		SearchQuery:   r.Query,
		Success:       r.Success,
		TotalResults:  r.TotalResults,
		ExecutionTime: r.Elapsed.Seconds(),
		Timestamp:     export.Timestamp(time.Now()),
		Products:      r.Products,
		Errors:        []string{},
	}
	if doc.Products == nil {
		doc.Products = []Product{}
	}
	if r.Error != "" {
		doc.Errors = append(doc.Errors, r.Error)
	}
	return export.WriteJSON(path, doc)
}

// BuildSearchInstruction renders one product search. Pure.
func BuildSearchInstruction(cfg SearchConfig) (string, error) {
	if strings.TrimSpace(cfg.Query) == "" {
		return "", fmt.Errorf("%w: search query is required", instruction.ErrIncompleteTask)
	}
	cfg = cfg.withDefaults()
	sortParam, ok := cfg.SortBy.paramValue()
	if !ok {
		return "", fmt.Errorf("unknown sort order %q", cfg.SortBy)
	}

	var b instruction.Builder
	b.Linef("Search for '%s' and record the top results.", cfg.Query)
	b.Blank()
	b.Stepf("Navigate to %s", cfg.StoreURL)
	b.Stepf("Type '%s' into the search box and press Enter", cfg.Query)
	b.StepIf(cfg.SortBy != SortRelevance, fmt.Sprintf("Sort the results by selecting the '%s' option (s=%s)", cfg.SortBy, sortParam))
	b.StepIf(cfg.PrimeOnly, "Apply the 'Prime' shipping filter in the left sidebar")
	b.StepIf(cfg.MinRating > 0, fmt.Sprintf("Apply the '%d Stars & Up' rating filter", cfg.MinRating))
	b.StepIf(cfg.MaxPrice > 0, fmt.Sprintf("Set the maximum price filter to $%d", cfg.MaxPrice))
	b.Stepf("Record the title, price, and rating of the first %d products", cfg.MaxResults)
	return b.String(), nil
}

// Searcher runs product searches through an agent. Searches are routine
// multi-step navigation; a tasker-class agent fits.
type Searcher struct {
	Agent   oagi.Agent
	Handler oagi.ActionHandler
	Images  oagi.ImageProvider
}

// Search runs one product search.
func (s *Searcher) Search(ctx context.Context, cfg SearchConfig) SearchResult {
	result := SearchResult{Query: cfg.Query}

	instr, err := BuildSearchInstruction(cfg)
	if err != nil {
		result.Outcome = oagi.Outcome{Name: cfg.Query, Error: err.Error()}
		return result
	}

	result.Outcome = oagi.Invoke(ctx, s.Agent, cfg.Query, instr, s.Handler, s.Images)
	return result
}
