package export

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func TestTimestamp(t *testing.T) {
	at := time.Date(2025, 3, 14, 9, 26, 53, 0, time.FixedZone("PST", -8*3600))
	if got := Timestamp(at); got != "2025-03-14T17:26:53Z" {
		t.Errorf("Timestamp = %q", got)
	}
}

func TestWriteJSON(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out.json")
	doc := map[string]any{"query": "usb-c hub", "count": 3}

	if err := WriteJSON(path, doc); err != nil {
		t.Fatalf("WriteJSON: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	var got map[string]any
	if err := json.Unmarshal(data, &got); err != nil {
		t.Fatalf("exported file is not valid JSON: %v", err)
	}
	if got["query"] != "usb-c hub" {
		t.Errorf("query = %v", got["query"])
	}
	if !strings.HasSuffix(string(data), "\n") {
		t.Error("export missing trailing newline")
	}
}

func TestWriteJSONBadPath(t *testing.T) {
	if err := WriteJSON(filepath.Join(t.TempDir(), "missing", "out.json"), 1); err == nil {
		t.Error("WriteJSON succeeded into a missing directory")
	}
}
