package harness

import (
	"fmt"
	"reflect"
	"strings"
)

// AssertionError is returned when an assertion fails.
// It includes detailed context to help debug the failure.
type AssertionError struct {
	Type     string // Assertion type for categorization
	Expected string // Human-readable expected outcome
	Actual   string // Human-readable actual outcome
	SQL      string // Rendered SQL, if any
	BuildErr string // Build error, if any
}

// Error implements the error interface.
func (e *AssertionError) Error() string {
	var buf strings.Builder

	fmt.Fprintf(&buf, "Assertion failed: %s\n", e.Type)
	fmt.Fprintf(&buf, "  Expected: %s\n", e.Expected)
	fmt.Fprintf(&buf, "  Actual: %s\n", e.Actual)

	if e.SQL != "" {
		fmt.Fprintf(&buf, "\nRendered SQL:\n  %s\n", e.SQL)
	}
	if e.BuildErr != "" {
		fmt.Fprintf(&buf, "\nBuild error:\n  %s\n", e.BuildErr)
	}

	return buf.String()
}

func newAssertionError(result *Result, typ, expected, actual string) *AssertionError {
	return &AssertionError{
		Type:     typ,
		Expected: expected,
		Actual:   actual,
		SQL:      result.SQL,
		BuildErr: result.ErrorMessage,
	}
}

// assertSQLEquals checks the rendered SQL text exactly.
func assertSQLEquals(result *Result, assertion Assertion) error {
	if result.Failed() {
		return newAssertionError(result, AssertSQLEquals, fmt.Sprintf("SQL %q", assertion.Value), "build failed")
	}
	if result.SQL != assertion.Value {
		return newAssertionError(result, AssertSQLEquals, fmt.Sprintf("SQL %q", assertion.Value), fmt.Sprintf("SQL %q", result.SQL))
	}
	return nil
}

// assertSQLContains checks that the rendered SQL contains a substring.
func assertSQLContains(result *Result, assertion Assertion) error {
	if result.Failed() {
		return newAssertionError(result, AssertSQLContains, fmt.Sprintf("SQL containing %q", assertion.Value), "build failed")
	}
	if !strings.Contains(result.SQL, assertion.Value) {
		return newAssertionError(result, AssertSQLContains, fmt.Sprintf("SQL containing %q", assertion.Value), "not found")
	}
	return nil
}

// assertErrorCode checks that the build failed with the given code.
func assertErrorCode(result *Result, assertion Assertion) error {
	if !result.Failed() {
		return newAssertionError(result, AssertErrorCode, "error "+assertion.Code, "build succeeded")
	}
	if result.ErrorCode != assertion.Code {
		actual := result.ErrorCode
		if actual == "" {
			actual = "uncoded error"
		}
		return newAssertionError(result, AssertErrorCode, "error "+assertion.Code, "error "+actual)
	}
	return nil
}

// assertParams checks the placeholder values in order.
func assertParams(result *Result, assertion Assertion) error {
	expected := fmt.Sprintf("params %v", assertion.Params)
	if result.Failed() {
		return newAssertionError(result, AssertParams, expected, "build failed")
	}
	if len(result.Params) != len(assertion.Params) {
		return newAssertionError(result, AssertParams, expected,
			fmt.Sprintf("%d params %v", len(result.Params), result.Params))
	}
	for i := range assertion.Params {
		if !paramValuesEqual(assertion.Params[i], result.Params[i]) {
			return newAssertionError(result, AssertParams, expected,
				fmt.Sprintf("params %v (position %d differs)", result.Params, i))
		}
	}
	return nil
}

// paramValuesEqual compares a YAML-decoded expected value with a rendered
// parameter. YAML integers decode as int, parameters are always int64.
func paramValuesEqual(expected, actual any) bool {
	if expected == nil || actual == nil {
		return expected == nil && actual == nil
	}

	switch exp := expected.(type) {
	case int:
		if actualInt, ok := actual.(int64); ok {
			return int64(exp) == actualInt
		}
		return false
	case uint64:
		if actualInt, ok := actual.(int64); ok {
			return actualInt >= 0 && uint64(actualInt) == exp
		}
		return false
	}

	return reflect.DeepEqual(expected, actual)
}

// EvaluateAssertions evaluates all assertions against the result.
// Returns a slice of error messages for failed assertions.
func EvaluateAssertions(result *Result, assertions []Assertion) []string {
	var errors []string

	for i, assertion := range assertions {
		var err error

		switch assertion.Type {
		case AssertSQLEquals:
			err = assertSQLEquals(result, assertion)
		case AssertSQLContains:
			err = assertSQLContains(result, assertion)
		case AssertErrorCode:
			err = assertErrorCode(result, assertion)
		case AssertParams:
			err = assertParams(result, assertion)
		default:
			err = fmt.Errorf("assertion[%d]: unknown assertion type %q", i, assertion.Type)
		}

		if err != nil {
			errors = append(errors, err.Error())
		}
	}

	return errors
}
