package harness

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/roach88/typedsql/internal/ir"
	"github.com/roach88/typedsql/internal/querydoc"
)

// Scenario defines a query scenario.
type Scenario struct {
	// Name uniquely identifies this scenario. It also names the golden file.
	Name string `yaml:"name"`

	// Description explains what this scenario validates.
	Description string `yaml:"description"`

	// Schema is an optional directory of CUE table definitions.
	// Empty means the built-in catalog (Users, Products).
	Schema string `yaml:"schema,omitempty"`

	// Params renders with placeholders and records the parameter list.
	Params bool `yaml:"params,omitempty"`

	// Query is the query under test.
	Query querydoc.Document `yaml:"query"`

	// Assertions validate the outcome.
	// Supported types: sql_equals, sql_contains, error_code, params
	Assertions []Assertion `yaml:"assertions"`

	// Path is the file the scenario was loaded from, if any.
	Path string `yaml:"-"`
}

// Assertion validates the rendered SQL or the build error.
type Assertion struct {
	// Type specifies the assertion type:
	// - "sql_equals": SQL text matches Value exactly
	// - "sql_contains": SQL text contains Value
	// - "error_code": the build failed with Code
	// - "params": the parameter list equals Params
	Type string `yaml:"type"`

	// Value is the expected SQL text (sql_equals, sql_contains).
	Value string `yaml:"value,omitempty"`

	// Code is the expected error code (error_code).
	Code string `yaml:"code,omitempty"`

	// Params is the expected parameter list (params).
	Params []any `yaml:"params,omitempty"`
}

// Assertion type constants.
const (
	AssertSQLEquals   = "sql_equals"
	AssertSQLContains = "sql_contains"
	AssertErrorCode   = "error_code"
	AssertParams      = "params"
)

// knownCodes lists the error codes an error_code assertion may name.
var knownCodes = map[ir.Code]bool{
	ir.ErrCodeTypeMismatch:        true,
	ir.ErrCodeColumnNotInScope:    true,
	ir.ErrCodeColumnNotInTable:    true,
	ir.ErrCodeAlreadySelected:     true,
	ir.ErrCodeAlreadyBound:        true,
	ir.ErrCodeAlreadyFiltered:     true,
	ir.ErrCodeNoTableBound:        true,
	ir.ErrCodeIncompleteQuery:     true,
	ir.ErrCodeEmptySelection:      true,
	ir.ErrCodeUnsupportedOperator: true,
	ir.ErrCodeInvalidValue:        true,
	ir.ErrCodeUnknownTable:        true,
	ir.ErrCodeUnknownColumn:       true,
}

// LoadScenario reads and parses a scenario YAML file.
// Returns an error if the file doesn't exist, is malformed,
// contains unknown fields (typos), or is missing required fields.
// A relative schema path is resolved against the scenario's directory.
func LoadScenario(path string) (*Scenario, error) {
	return LoadScenarioWithBasePath(path, filepath.Dir(path))
}

// LoadScenarioWithBasePath reads and parses a scenario YAML file,
// resolving a relative schema path against basePath.
func LoadScenarioWithBasePath(path, basePath string) (*Scenario, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read scenario file: %w", err)
	}

	scenario, err := ParseScenario(data)
	if err != nil {
		return nil, err
	}
	scenario.Path = path

	if scenario.Schema == "" {
		scenario.Schema = scenario.Query.Schema
	}
	if scenario.Schema != "" && !filepath.IsAbs(scenario.Schema) && basePath != "" {
		scenario.Schema = filepath.Join(basePath, scenario.Schema)
	}
	if scenario.Schema != "" {
		if _, err := os.Stat(scenario.Schema); os.IsNotExist(err) {
			return nil, fmt.Errorf("invalid scenario: schema directory not found: %s", scenario.Schema)
		}
	}

	return scenario, nil
}

// ParseScenario decodes and validates scenario YAML.
func ParseScenario(data []byte) (*Scenario, error) {
	// Parse YAML with strict field validation (catches typos like "assertion:" vs "assertions:")
	var scenario Scenario
	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true)
	if err := decoder.Decode(&scenario); err != nil {
		return nil, fmt.Errorf("failed to parse YAML: %w", err)
	}

	if err := validateScenario(&scenario); err != nil {
		return nil, fmt.Errorf("invalid scenario: %w", err)
	}

	return &scenario, nil
}

// validateScenario checks that required fields are present and valid.
func validateScenario(s *Scenario) error {
	if s.Name == "" {
		return fmt.Errorf("name is required")
	}

	if s.Description == "" {
		return fmt.Errorf("description is required")
	}

	if err := s.Query.Validate(); err != nil {
		return fmt.Errorf("query: %w", err)
	}

	if len(s.Assertions) == 0 {
		return fmt.Errorf("assertions list is required and must be non-empty")
	}

	for i, assertion := range s.Assertions {
		if err := validateAssertion(i, &assertion, s.Params); err != nil {
			return err
		}
	}

	return nil
}

// validateAssertion validates a single assertion based on its type.
func validateAssertion(index int, a *Assertion, params bool) error {
	if a.Type == "" {
		return fmt.Errorf("assertions[%d]: type is required", index)
	}

	switch a.Type {
	case AssertSQLEquals, AssertSQLContains:
		if a.Value == "" {
			return fmt.Errorf("assertions[%d]: %s requires 'value' field", index, a.Type)
		}
	case AssertErrorCode:
		if a.Code == "" {
			return fmt.Errorf("assertions[%d]: error_code requires 'code' field", index)
		}
		if !knownCodes[ir.Code(a.Code)] {
			return fmt.Errorf("assertions[%d]: unknown error code %q", index, a.Code)
		}
	case AssertParams:
		if !params {
			return fmt.Errorf("assertions[%d]: params requires 'params: true' on the scenario", index)
		}
	default:
		return fmt.Errorf("assertions[%d]: unknown assertion type %q (valid types: sql_equals, sql_contains, error_code, params)", index, a.Type)
	}

	return nil
}
