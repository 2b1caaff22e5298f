package dataentry

import (
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"os"
)

// ColumnMapping renames CSV columns to form field names. Keys are CSV header
// names; values are the field names used in the instruction. Columns without
// a mapping keep their header name.
type ColumnMapping map[string]string

// ReadRecordsCSV parses CSV input into entry records. The first row is the
// header; field order follows column order.
func ReadRecordsCSV(r io.Reader, mapping ColumnMapping) ([]EntryRecord, error) {
	cr := csv.NewReader(r)

	header, err := cr.Read()
	if err == io.EOF {
		return nil, fmt.Errorf("read csv: no header row")
	}
	if err != nil {
		return nil, fmt.Errorf("read csv header: %w", err)
	}

	names := make([]string, len(header))
	for i, col := range header {
		if mapped, ok := mapping[col]; ok {
			names[i] = mapped
		} else {
			names[i] = col
		}
	}

	var records []EntryRecord
	for {
		row, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("read csv row %d: %w", len(records)+2, err)
		}
		fields := make([]Field, len(row))
		for i, val := range row {
			fields[i] = Field{Name: names[i], Value: val}
		}
		records = append(records, EntryRecord{Fields: fields})
	}
	if len(records) == 0 {
		return nil, fmt.Errorf("read csv: no data rows")
	}
	return records, nil
}

// LoadRecordsCSV reads entry records from a CSV file.
func LoadRecordsCSV(path string, mapping ColumnMapping) ([]EntryRecord, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open csv: %w", err)
	}
	defer f.Close()
	return ReadRecordsCSV(f, mapping)
}

// EnterFromCSV loads records from a CSV file and keys them in.
func (k *Keyer) EnterFromCSV(ctx context.Context, spec EntrySpec, path string, mapping ColumnMapping) (BulkEntryResult, error) {
	records, err := LoadRecordsCSV(path, mapping)
	if err != nil {
		return BulkEntryResult{URL: spec.URL}, err
	}
	return k.EnterRecords(ctx, spec, records), nil
}
