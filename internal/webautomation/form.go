// Package webautomation automates browser flows through a Lux agent: form
// filling, page scraping, and multi-source research. Each operation renders
// a deterministic instruction, hands it across the agent boundary, and wraps
// the outcome in a plain result record.
package webautomation

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/openagi/lux-go/internal/batch"
	"github.com/openagi/lux-go/internal/instruction"
	"github.com/openagi/lux-go/internal/oagi"
)

// FieldType classifies a form field.
type FieldType string

const (
	FieldText     FieldType = "text"
	FieldDropdown FieldType = "dropdown"
	FieldCheckbox FieldType = "checkbox"
	FieldRadio    FieldType = "radio"
	FieldTextarea FieldType = "textarea"
)

// FormField is one field to fill. For checkboxes, Value "true" checks the
// box and anything else unchecks it.
type FormField struct {
	Name  string
	Value string
	Type  FieldType
}

// FormSpec describes one form-fill task.
type FormSpec struct {
	URL    string
	Fields []FormField
	// Submit controls whether the submit button is clicked at the end.
	Submit bool
	// SubmitButton is the button label; "Submit" when empty.
	SubmitButton string
}

// FormResult is the outcome of one form fill.
type FormResult struct {
	oagi.Outcome
	FieldsFilled int
}

// FormFiller fills forms across websites.
type FormFiller struct {
	Agent   oagi.Agent
	Handler oagi.ActionHandler
	Images  oagi.ImageProvider
	// Delay between forms in FillMany.
	Delay time.Duration
}

// BuildFormInstruction renders the instruction for one form spec. Pure.
func BuildFormInstruction(spec FormSpec) (string, error) {
	if strings.TrimSpace(spec.URL) == "" {
		return "", fmt.Errorf("%w: form URL is required", instruction.ErrIncompleteTask)
	}
	if len(spec.Fields) == 0 {
		return "", fmt.Errorf("%w: at least one form field is required", instruction.ErrIncompleteTask)
	}

	submitButton := spec.SubmitButton
	if submitButton == "" {
		submitButton = "Submit"
	}

	var b instruction.Builder
	b.Linef("Navigate to %s and fill out the form:", spec.URL)
	b.Blank()
	for _, field := range spec.Fields {
		b.Step(fieldClause(field))
	}
	if spec.Submit {
		b.Blank()
		b.Linef("After filling all fields, click the '%s' button.", submitButton)
	}
	return b.String(), nil
}

// fieldClause renders one field's instruction line.
func fieldClause(field FormField) string {
	switch field.Type {
	case FieldCheckbox:
		if strings.EqualFold(field.Value, "true") {
			return fmt.Sprintf("Check the '%s' checkbox", field.Name)
		}
		return fmt.Sprintf("Uncheck the '%s' checkbox", field.Name)
	case FieldDropdown:
		return fmt.Sprintf("Select '%s' from the '%s' dropdown", field.Value, field.Name)
	case FieldRadio:
		return fmt.Sprintf("Select the '%s' radio option for '%s'", field.Value, field.Name)
	default:
		return fmt.Sprintf("Enter '%s' in the '%s' field", field.Value, field.Name)
	}
}

// FillForm fills one form.
func (f *FormFiller) FillForm(ctx context.Context, spec FormSpec) FormResult {
	instr, err := BuildFormInstruction(spec)
	if err != nil {
		return FormResult{Outcome: oagi.Outcome{Name: spec.URL, Error: err.Error()}}
	}

	out := oagi.Invoke(ctx, f.Agent, spec.URL, instr, f.Handler, f.Images)
	result := FormResult{Outcome: out}
	if out.Success {
		result.FieldsFilled = len(spec.Fields)
	}
	return result
}

// FillMany fills several forms sequentially with a fixed pause between them.
func (f *FormFiller) FillMany(ctx context.Context, specs []FormSpec) ([]FormResult, batch.Aggregate) {
	results := make([]FormResult, 0, len(specs))
	agg := batch.Run(ctx, specs, batch.Options{Delay: f.Delay}, func(ctx context.Context, spec FormSpec) oagi.Outcome {
		r := f.FillForm(ctx, spec)
		results = append(results, r)
		return r.Outcome
	})
	return results, agg
}
