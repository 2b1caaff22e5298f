package shopping

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/openagi/lux-go/internal/instruction"
	"github.com/openagi/lux-go/internal/oagi/oagitest"
)

func TestBuildCartInstructionAddToCart(t *testing.T) {
	cfg := CartConfig{
		StoreURL:  "https://www.nike.com",
		Product:   "Air Zoom Pegasus",
		Size:      "10",
		Color:     "black",
		AddToCart: true,
	}
	instr, err := BuildCartInstruction(cfg)
	if err != nil {
		t.Fatalf("BuildCartInstruction: %v", err)
	}

	for _, want := range []string{
		"Shop for 'Air Zoom Pegasus'",
		"1. Navigate to https://www.nike.com",
		"2. Search for 'Air Zoom Pegasus' and open the first matching product page",
		"3. Select size '10'",
		"4. Select the 'black' color option",
		"5. Click the 'Add to Bag' button and confirm the item was added",
	} {
		if !strings.Contains(instr, want) {
			t.Errorf("instruction missing %q:\n%s", want, instr)
		}
	}
	if strings.Contains(instr, "Record the product name") {
		t.Errorf("browse-only step present in add-to-cart flow:\n%s", instr)
	}
}

func TestBuildCartInstructionBrowseOnly(t *testing.T) {
	cfg := CartConfig{StoreURL: "https://www.nike.com", Product: "Air Zoom Pegasus"}
	instr, err := BuildCartInstruction(cfg)
	if err != nil {
		t.Fatalf("BuildCartInstruction: %v", err)
	}

	// The cart step only appears when asked for.
	if strings.Contains(instr, "Add to Bag") {
		t.Errorf("cart step present without AddToCart:\n%s", instr)
	}
	if !strings.Contains(instr, "3. Record the product name and price") {
		t.Errorf("skipped variant steps must not consume numbers:\n%s", instr)
	}
}

func TestBuildCartInstructionCustomButton(t *testing.T) {
	cfg := CartConfig{StoreURL: "https://shop.example.com", Product: "mug", AddToCart: true, CartButton: "Add to Cart"}
	instr, err := BuildCartInstruction(cfg)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(instr, "'Add to Cart' button") {
		t.Errorf("custom button label:\n%s", instr)
	}
}

func TestBuildCartInstructionIncomplete(t *testing.T) {
	if _, err := BuildCartInstruction(CartConfig{Product: "mug"}); !errors.Is(err, instruction.ErrIncompleteTask) {
		t.Errorf("missing store url: err = %v", err)
	}
	if _, err := BuildCartInstruction(CartConfig{StoreURL: "https://x"}); !errors.Is(err, instruction.ErrIncompleteTask) {
		t.Errorf("missing product: err = %v", err)
	}
}

func TestShop(t *testing.T) {
	agent := oagitest.Succeed()
	s := &Shopper{Agent: agent, Handler: oagitest.NoopHandler{}, Images: oagitest.BlankProvider{}}

	out := s.Shop(context.Background(), CartConfig{StoreURL: "https://www.nike.com", Product: "Air Zoom Pegasus", AddToCart: true})
	if !out.Success {
		t.Fatalf("out.Success = false, error %q", out.Error)
	}
	if len(agent.Instructions) != 1 || !strings.Contains(agent.Instructions[0], "Add to Bag") {
		t.Errorf("agent saw %v", agent.Instructions)
	}
}
