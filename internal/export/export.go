// Package export writes run results to JSON files. Exports are one-shot
// terminal writes; nothing reads them back.
package export

import (
	"encoding/json"
	"fmt"
	"os"
	"time"
)

// TimeFormat is the timestamp layout used in exported documents.
const TimeFormat = time.RFC3339

// Timestamp renders t for an export document.
func Timestamp(t time.Time) string {
	return t.UTC().Format(TimeFormat)
}

// WriteJSON marshals v with indentation and writes it to path.
func WriteJSON(path string, v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal export: %w", err)
	}
	data = append(data, '\n')
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write export: %w", err)
	}
	return nil
}
