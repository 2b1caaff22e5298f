package qa

import (
	"context"
	"fmt"
	"strings"

	"github.com/openagi/lux-go/internal/instruction"
	"github.com/openagi/lux-go/internal/oagi"
)

// ValidationType names a UI check.
type ValidationType string

const (
	ElementExists  ValidationType = "element_exists"
	ElementVisible ValidationType = "element_visible"
	ElementEnabled ValidationType = "element_enabled"
	TextContains   ValidationType = "text_contains"
	TextEquals     ValidationType = "text_equals"
	ElementCount   ValidationType = "element_count"
	PageTitle      ValidationType = "page_title"
	URLContains    ValidationType = "url_contains"
)

// Validation is one check to perform against the current page.
type Validation struct {
	Type     ValidationType `yaml:"type"`
	Target   string         `yaml:"target"`
	Expected string         `yaml:"expected,omitempty"`
}

// Phrase renders the validation as a verification sentence the agent can
// act on.
func (v Validation) Phrase() (string, error) {
	switch v.Type {
	case ElementExists:
		return fmt.Sprintf("Verify that '%s' exists on the page", v.Target), nil
	case ElementVisible:
		return fmt.Sprintf("Verify that '%s' is visible", v.Target), nil
	case ElementEnabled:
		return fmt.Sprintf("Verify that '%s' is enabled and clickable", v.Target), nil
	case TextContains:
		return fmt.Sprintf("Verify that '%s' contains the text '%s'", v.Target, v.Expected), nil
	case TextEquals:
		return fmt.Sprintf("Verify that '%s' shows exactly '%s'", v.Target, v.Expected), nil
	case ElementCount:
		return fmt.Sprintf("Count the '%s' elements and verify there are %s", v.Target, v.Expected), nil
	case PageTitle:
		return fmt.Sprintf("Verify that the page title is '%s'", v.Expected), nil
	case URLContains:
		return fmt.Sprintf("Verify that the current URL contains '%s'", v.Expected), nil
	}
	return "", fmt.Errorf("unknown validation type %q", v.Type)
}

// Validator runs standalone page validations.
type Validator struct {
	Agent   oagi.Agent
	Handler oagi.ActionHandler
	Images  oagi.ImageProvider
}

// BuildValidationInstruction renders a batch of checks against one page.
// Pure.
func BuildValidationInstruction(url string, checks []Validation) (string, error) {
	if strings.TrimSpace(url) == "" {
		return "", fmt.Errorf("%w: url is required", instruction.ErrIncompleteTask)
	}
	if len(checks) == 0 {
		return "", fmt.Errorf("%w: at least one validation is required", instruction.ErrIncompleteTask)
	}

	var b instruction.Builder
	b.Linef("Navigate to %s and perform the following checks:", url)
	b.Blank()
	for _, check := range checks {
		phrase, err := check.Phrase()
		if err != nil {
			return "", err
		}
		b.Step(phrase)
	}
	b.Blank()
	b.Line("Report failure if any check does not pass.")
	return b.String(), nil
}

// Validate runs the checks against the page as one task.
func (v *Validator) Validate(ctx context.Context, url string, checks []Validation) oagi.Outcome {
	name := fmt.Sprintf("validate %s", url)
	instr, err := BuildValidationInstruction(url, checks)
	if err != nil {
		return oagi.Outcome{Name: name, Error: err.Error()}
	}
	return oagi.Invoke(ctx, v.Agent, name, instr, v.Handler, v.Images)
}
