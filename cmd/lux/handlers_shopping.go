// Package main provides the lux CLI.
//
// handlers_shopping.go implements the product search and cart commands.
package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/openagi/lux-go/internal/oagi"
	"github.com/openagi/lux-go/internal/shopping"
)

// =============================================================================
// Search Command Handler
// =============================================================================

func runSearch(cmd *cobra.Command, query, store, sortBy string, prime bool, minRating, maxPrice, maxResults int, output string) error {
	rt, err := newRuntime(cmd.Context(), cmd, oagi.ModelTasker)
	if err != nil {
		return err
	}
	defer rt.Close()

	searcher := &shopping.Searcher{Agent: rt.agent, Handler: rt.handler, Images: rt.images}
	cfg := shopping.SearchConfig{
		Query:      query,
		StoreURL:   store,
		SortBy:     shopping.SortOrder(sortBy),
		PrimeOnly:  prime,
		MinRating:  minRating,
		MaxPrice:   maxPrice,
		MaxResults: maxResults,
	}

	result := searcher.Search(cmd.Context(), cfg)
	printOutcome(cmd, result.Outcome)

	if output != "" {
		if err := result.SaveJSON(output); err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Results written to %s\n", output)
	}
	return failure(result.Outcome)
}

// =============================================================================
// Shop Command Handler
// =============================================================================

func runShop(cmd *cobra.Command, product, store, size, color string, addToCart bool, cartButton string) error {
	rt, err := newRuntime(cmd.Context(), cmd, oagi.ModelTasker)
	if err != nil {
		return err
	}
	defer rt.Close()

	shopper := &shopping.Shopper{Agent: rt.agent, Handler: rt.handler, Images: rt.images}
	cfg := shopping.CartConfig{
		StoreURL:   store,
		Product:    product,
		Size:       size,
		Color:      color,
		AddToCart:  addToCart,
		CartButton: cartButton,
	}

	out := shopper.Shop(cmd.Context(), cfg)
	printOutcome(cmd, out)
	return failure(out)
}
