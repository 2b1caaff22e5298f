package shopping

import (
	"context"
	"fmt"
	"strings"

	"github.com/openagi/lux-go/internal/instruction"
	"github.com/openagi/lux-go/internal/oagi"
)

// CartConfig describes a find-a-product shopping flow, optionally ending
// with the product placed in the cart.
type CartConfig struct {
	// StoreURL is the shop's landing page.
	StoreURL string
	// Product is what to search for.
	Product string
	// Size and Color narrow the variant selection when set.
	Size  string
	Color string
	// AddToCart places the item in the bag. When false the flow stops at
	// the product page.
	AddToCart bool
	// CartButton is the label of the add control. Defaults to "Add to Bag".
	CartButton string
}

func (c CartConfig) withDefaults() CartConfig {
	if c.CartButton == "" {
		c.CartButton = "Add to Bag"
	}
	return c
}

// BuildCartInstruction renders a shopping flow. Pure.
func BuildCartInstruction(cfg CartConfig) (string, error) {
	if strings.TrimSpace(cfg.StoreURL) == "" || strings.TrimSpace(cfg.Product) == "" {
		return "", fmt.Errorf("%w: store url and product are required", instruction.ErrIncompleteTask)
	}
	cfg = cfg.withDefaults()

	var b instruction.Builder
	b.Linef("Shop for '%s'.", cfg.Product)
	b.Blank()
	b.Stepf("Navigate to %s", cfg.StoreURL)
	b.Stepf("Search for '%s' and open the first matching product page", cfg.Product)
	b.StepIf(cfg.Size != "", fmt.Sprintf("Select size '%s'", cfg.Size))
	b.StepIf(cfg.Color != "", fmt.Sprintf("Select the '%s' color option", cfg.Color))
	b.StepIf(cfg.AddToCart, fmt.Sprintf("Click the '%s' button and confirm the item was added", cfg.CartButton))
	b.StepIf(!cfg.AddToCart, "Record the product name and price from the product page")
	return b.String(), nil
}

// Shopper runs shopping flows through an agent.
type Shopper struct {
	Agent   oagi.Agent
	Handler oagi.ActionHandler
	Images  oagi.ImageProvider
}

// Shop runs one shopping flow.
func (s *Shopper) Shop(ctx context.Context, cfg CartConfig) oagi.Outcome {
	instr, err := BuildCartInstruction(cfg)
	if err != nil {
		return oagi.Outcome{Name: cfg.Product, Error: err.Error()}
	}
	return oagi.Invoke(ctx, s.Agent, cfg.Product, instr, s.Handler, s.Images)
}
