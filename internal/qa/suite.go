package qa

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Suite is a named collection of test cases, typically loaded from YAML.
type Suite struct {
	Name    string     `yaml:"name"`
	BaseURL string     `yaml:"base_url,omitempty"`
	Tests   []TestCase `yaml:"tests"`
}

// LoadSuite reads a suite definition from a YAML file.
func LoadSuite(path string) (*Suite, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read suite file: %w", err)
	}
	return ParseSuite(data)
}

// ParseSuite decodes a YAML suite definition.
func ParseSuite(data []byte) (*Suite, error) {
	var suite Suite
	if err := yaml.Unmarshal(data, &suite); err != nil {
		return nil, fmt.Errorf("parse suite: %w", err)
	}
	if suite.Name == "" {
		return nil, fmt.Errorf("parse suite: name is required")
	}
	if len(suite.Tests) == 0 {
		return nil, fmt.Errorf("parse suite %q: no tests defined", suite.Name)
	}
	for i, test := range suite.Tests {
		if test.Name == "" {
			return nil, fmt.Errorf("parse suite %q: test %d has no name", suite.Name, i+1)
		}
		if len(test.Steps) == 0 {
			return nil, fmt.Errorf("parse suite %q: test %q has no steps", suite.Name, test.Name)
		}
	}
	return &suite, nil
}
