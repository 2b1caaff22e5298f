package clipboard

import (
	"errors"
	"testing"
)

func TestStripFence(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"plain", `{"a":1}`, `{"a":1}`},
		{"fenced", "```json\n{\"a\":1}\n```", `{"a":1}`},
		{"fenced no lang", "```\n[1,2]\n```", `[1,2]`},
		{"whitespace", "  {\"a\":1}\n", `{"a":1}`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := StripFence(tt.in); got != tt.want {
				t.Errorf("StripFence(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

func TestReadJSON(t *testing.T) {
	var payload struct {
		Products []string `json:"products"`
	}
	r := StaticReader{Content: "```json\n{\"products\":[\"a\",\"b\"]}\n```"}

	if err := ReadJSON(r, &payload); err != nil {
		t.Fatalf("ReadJSON: %v", err)
	}
	if len(payload.Products) != 2 {
		t.Errorf("products = %v, want 2 entries", payload.Products)
	}
}

func TestReadJSON_ReaderError(t *testing.T) {
	r := StaticReader{Err: errors.New("no display")}
	var v any
	if err := ReadJSON(r, &v); err == nil {
		t.Fatal("expected reader error to propagate")
	}
}

func TestApplicableTools(t *testing.T) {
	linux := applicableTools("linux")
	for _, tool := range linux {
		if tool.platform != "" && tool.platform != "linux" {
			t.Errorf("tool %s should not apply on linux", tool.name)
		}
	}
	if len(applicableTools("darwin")) == 0 {
		t.Error("darwin should have at least pbpaste")
	}
}
