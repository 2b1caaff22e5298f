// Package dataentry drives repetitive form-based record entry through a Lux
// agent. Records can come from code or CSV files, and a batch of entries is
// reported with per-record outcomes.
package dataentry

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/openagi/lux-go/internal/batch"
	"github.com/openagi/lux-go/internal/instruction"
	"github.com/openagi/lux-go/internal/oagi"
)

// Field is one named value of a record. Records keep their fields ordered so
// rendered instructions are deterministic.
type Field struct {
	Name  string
	Value string
}

// EntryRecord is one record to key into the target system.
type EntryRecord struct {
	Fields []Field
}

// Get returns the value of the named field, if present.
func (r EntryRecord) Get(name string) (string, bool) {
	for _, f := range r.Fields {
		if f.Name == name {
			return f.Value, true
		}
	}
	return "", false
}

// EntrySpec describes a record-entry job against one form.
type EntrySpec struct {
	// URL is the entry form. Only the first record navigates there; later
	// records assume the form is reachable via NewRecordButton.
	URL string
	// NewRecordButton is clicked before each record after the first.
	// Defaults to "Add New".
	NewRecordButton string
	// SubmitButton saves the record. Defaults to "Save".
	SubmitButton string
	// Confirmation is waited for after submitting, when set.
	Confirmation string
	// Delay is the pause between records.
	Delay time.Duration
	// StopOnFailure halts the batch after the first failed record.
	StopOnFailure bool
}

func (s EntrySpec) withDefaults() EntrySpec {
	if s.NewRecordButton == "" {
		s.NewRecordButton = "Add New"
	}
	if s.SubmitButton == "" {
		s.SubmitButton = "Save"
	}
	return s
}

// BulkEntryResult reports a record-entry batch.
type BulkEntryResult struct {
	batch.Aggregate
	URL string
}

// Keyer enters records through an agent.
type Keyer struct {
	Agent   oagi.Agent
	Handler oagi.ActionHandler
	Images  oagi.ImageProvider
}

// BuildEntryInstruction renders the instruction for record index (0-based) of
// total. Pure.
func BuildEntryInstruction(spec EntrySpec, record EntryRecord, index, total int) (string, error) {
	if strings.TrimSpace(spec.URL) == "" {
		return "", fmt.Errorf("%w: url is required", instruction.ErrIncompleteTask)
	}
	if len(record.Fields) == 0 {
		return "", fmt.Errorf("%w: record %d has no fields", instruction.ErrIncompleteTask, index+1)
	}
	spec = spec.withDefaults()

	var b instruction.Builder
	b.Linef("Data Entry - Record %d of %d", index+1, total)
	b.Blank()
	if index == 0 {
		b.Stepf("Navigate to %s", spec.URL)
	} else {
		b.Stepf("Click the '%s' button to open a blank record form", spec.NewRecordButton)
	}
	for _, f := range record.Fields {
		b.Stepf("Enter '%s' in the '%s' field", f.Value, f.Name)
	}
	b.Stepf("Click the '%s' button to submit the record", spec.SubmitButton)
	b.StepIf(spec.Confirmation != "", fmt.Sprintf("Wait until '%s' is shown", spec.Confirmation))
	return b.String(), nil
}

// EnterRecords keys the records in order.
func (k *Keyer) EnterRecords(ctx context.Context, spec EntrySpec, records []EntryRecord) BulkEntryResult {
	result := BulkEntryResult{URL: spec.URL}

	index := 0
	result.Aggregate = batch.Run(ctx, records, batch.Options{Delay: spec.Delay, StopOnFailure: spec.StopOnFailure}, func(ctx context.Context, record EntryRecord) oagi.Outcome {
		name := fmt.Sprintf("record %d of %d", index+1, len(records))
		instr, err := BuildEntryInstruction(spec, record, index, len(records))
		index++
		if err != nil {
			return oagi.Outcome{Name: name, Error: err.Error()}
		}
		return oagi.Invoke(ctx, k.Agent, name, instr, k.Handler, k.Images)
	})
	return result
}

// UpdateSpec describes an update job: locate an existing record by a search
// value, then change a set of fields.
type UpdateSpec struct {
	// URL is the page with the record search.
	URL string
	// SearchField is the field used to locate the record.
	SearchField string
	// SubmitButton saves the changes. Defaults to "Save".
	SubmitButton string
	// Delay is the pause between records.
	Delay time.Duration
	// StopOnFailure halts the batch after the first failed update.
	StopOnFailure bool
}

// Update is one record update. SearchValue locates the record; Changes are
// applied in order.
type Update struct {
	SearchValue string
	Changes     []Field
}

// BuildUpdateInstruction renders the instruction for one update. Pure.
func BuildUpdateInstruction(spec UpdateSpec, upd Update) (string, error) {
	if strings.TrimSpace(spec.URL) == "" {
		return "", fmt.Errorf("%w: url is required", instruction.ErrIncompleteTask)
	}
	if strings.TrimSpace(spec.SearchField) == "" || strings.TrimSpace(upd.SearchValue) == "" {
		return "", fmt.Errorf("%w: search field and value are required", instruction.ErrIncompleteTask)
	}
	if len(upd.Changes) == 0 {
		return "", fmt.Errorf("%w: update for %q has no changes", instruction.ErrIncompleteTask, upd.SearchValue)
	}
	submit := spec.SubmitButton
	if submit == "" {
		submit = "Save"
	}

	var b instruction.Builder
	b.Linef("Update the record where '%s' is '%s'", spec.SearchField, upd.SearchValue)
	b.Blank()
	b.Stepf("Navigate to %s", spec.URL)
	b.Stepf("Search for '%s' in the '%s' field and open the matching record", upd.SearchValue, spec.SearchField)
	for _, f := range upd.Changes {
		b.Stepf("Change the '%s' field to '%s'", f.Name, f.Value)
	}
	b.Stepf("Click the '%s' button to save the changes", submit)
	return b.String(), nil
}

// UpdateRecords applies the updates in order. Updates need more reasoning
// than blind entry; pair this with a thinker-class agent.
func (k *Keyer) UpdateRecords(ctx context.Context, spec UpdateSpec, updates []Update) BulkEntryResult {
	result := BulkEntryResult{URL: spec.URL}
	result.Aggregate = batch.Run(ctx, updates, batch.Options{Delay: spec.Delay, StopOnFailure: spec.StopOnFailure}, func(ctx context.Context, upd Update) oagi.Outcome {
		name := fmt.Sprintf("update %s", upd.SearchValue)
		instr, err := BuildUpdateInstruction(spec, upd)
		if err != nil {
			return oagi.Outcome{Name: name, Error: err.Error()}
		}
		return oagi.Invoke(ctx, k.Agent, name, instr, k.Handler, k.Images)
	})
	return result
}
