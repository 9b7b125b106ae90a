package harness

import (
	"fmt"
	"strings"
	"testing"

	"github.com/sebdah/goldie/v2"

	"github.com/roach88/typedsql/internal/ir"
)

// Snapshot is the golden-file form of a scenario outcome.
type Snapshot struct {
	Scenario  string
	SQL       string
	Params    []any
	ErrorCode string
	Error     string
}

// NewSnapshot captures the parts of a result that golden files compare.
// Assertion failures are excluded; they are reported separately.
func NewSnapshot(name string, result *Result) Snapshot {
	return Snapshot{
		Scenario:  name,
		SQL:       result.SQL,
		Params:    result.Params,
		ErrorCode: result.ErrorCode,
		Error:     result.ErrorMessage,
	}
}

// Marshal renders the snapshot as "key: value" lines in a fixed order.
// Parameters are written as SQL literals so that 50 and 50.0 stay distinct.
//
//	scenario: products_cheap_stock
//	sql: SELECT product_id FROM Products WHERE price > ? AND stock_count < ?
//	params: 50.0, 10
func (s Snapshot) Marshal() ([]byte, error) {
	var buf strings.Builder
	fmt.Fprintf(&buf, "scenario: %s\n", s.Scenario)
	if s.SQL != "" {
		fmt.Fprintf(&buf, "sql: %s\n", s.SQL)
	}
	if len(s.Params) > 0 {
		literals := make([]string, len(s.Params))
		for i, p := range s.Params {
			v, err := ir.FromGo(p)
			if err != nil {
				return nil, fmt.Errorf("params[%d]: %w", i, err)
			}
			literals[i] = v.SQL()
		}
		fmt.Fprintf(&buf, "params: %s\n", strings.Join(literals, ", "))
	}
	if s.ErrorCode != "" {
		fmt.Fprintf(&buf, "error_code: %s\n", s.ErrorCode)
	}
	if s.Error != "" {
		fmt.Fprintf(&buf, "error: %s\n", s.Error)
	}
	return []byte(buf.String()), nil
}

// RunWithGolden executes a scenario and compares its snapshot against a
// golden file stored in testdata/golden/{scenario.Name}.golden
//
// To regenerate golden files, run:
//
//	go test ./internal/harness -update
//
// Returns error if scenario execution fails.
// Test failure (via goldie) occurs if the snapshot doesn't match.
func RunWithGolden(t *testing.T, scenario *Scenario) (*Result, error) {
	t.Helper()

	result, err := Run(scenario)
	if err != nil {
		return nil, err
	}

	if err := AssertGolden(t, scenario.Name, result); err != nil {
		return nil, err
	}
	return result, nil
}

// AssertGolden compares the given result against a golden file.
// This is useful when you've already run a scenario and want to compare
// the result against a golden file without re-running.
func AssertGolden(t *testing.T, scenarioName string, result *Result) error {
	t.Helper()

	data, err := NewSnapshot(scenarioName, result).Marshal()
	if err != nil {
		return err
	}

	g := goldie.New(t,
		goldie.WithFixtureDir("testdata/golden"),
		goldie.WithNameSuffix(".golden"),
	)
	g.Assert(t, scenarioName, data)

	return nil
}
