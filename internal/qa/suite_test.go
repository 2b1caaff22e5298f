package qa

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

const suiteYAML = `name: checkout smoke
base_url: https://shop.example.com
tests:
  - name: add to cart
    description: A product can be added to the cart
    tags: [smoke, cart]
    steps:
      - description: Open a product page
        action: Click the first product tile
        expected_result: The product detail page loads
      - description: Add the product
        action: Click 'Add to Cart'
        expected_result: The cart badge shows 1
  - name: empty cart message
    steps:
      - description: Open the cart
        action: Click the cart icon
        expected_result: The cart page shows 'Your cart is empty'
`

func TestParseSuite(t *testing.T) {
	suite, err := ParseSuite([]byte(suiteYAML))
	if err != nil {
		t.Fatalf("ParseSuite: %v", err)
	}
	if suite.Name != "checkout smoke" {
		t.Errorf("Name = %q", suite.Name)
	}
	if suite.BaseURL != "https://shop.example.com" {
		t.Errorf("BaseURL = %q", suite.BaseURL)
	}
	if len(suite.Tests) != 2 {
		t.Fatalf("len(Tests) = %d, want 2", len(suite.Tests))
	}

	first := suite.Tests[0]
	if first.Name != "add to cart" || len(first.Steps) != 2 {
		t.Errorf("first test = %+v", first)
	}
	if len(first.Tags) != 2 || first.Tags[0] != "smoke" {
		t.Errorf("first test tags = %v", first.Tags)
	}
	if first.Steps[1].ExpectedResult != "The cart badge shows 1" {
		t.Errorf("step expected_result = %q", first.Steps[1].ExpectedResult)
	}
}

func TestParseSuiteRejectsInvalid(t *testing.T) {
	cases := []struct {
		name string
		yaml string
		want string
	}{
		{"bad yaml", "name: [", "parse suite"},
		{"no name", "tests:\n  - name: t\n    steps:\n      - description: d\n        action: a\n", "name is required"},
		{"no tests", "name: empty\n", "no tests defined"},
		{"unnamed test", "name: s\ntests:\n  - steps:\n      - description: d\n        action: a\n", "has no name"},
		{"stepless test", "name: s\ntests:\n  - name: t\n", "has no steps"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := ParseSuite([]byte(tc.yaml))
			if err == nil {
				t.Fatal("ParseSuite accepted invalid input")
			}
			if !strings.Contains(err.Error(), tc.want) {
				t.Errorf("err = %v, want mention of %q", err, tc.want)
			}
		})
	}
}

func TestLoadSuite(t *testing.T) {
	path := filepath.Join(t.TempDir(), "suite.yaml")
	if err := os.WriteFile(path, []byte(suiteYAML), 0o644); err != nil {
		t.Fatal(err)
	}

	suite, err := LoadSuite(path)
	if err != nil {
		t.Fatalf("LoadSuite: %v", err)
	}
	if suite.Name != "checkout smoke" {
		t.Errorf("Name = %q", suite.Name)
	}
}

func TestLoadSuiteMissingFile(t *testing.T) {
	if _, err := LoadSuite(filepath.Join(t.TempDir(), "absent.yaml")); err == nil {
		t.Error("LoadSuite succeeded for a missing file")
	}
}
