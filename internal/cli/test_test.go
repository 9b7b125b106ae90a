package cli

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const passingScenario = `name: users_by_age
description: age filter renders inline
query:
  steps:
    - from: Users
    - select: [name]
    - where: {column: age, op: ">", value: 30}
assertions:
  - type: sql_equals
    value: "SELECT name FROM Users WHERE age > 30"
`

const failingScenario = `name: wrong_expectation
description: expectation does not match
query:
  steps:
    - from: Users
    - select: [id]
assertions:
  - type: sql_equals
    value: "SELECT name FROM Users"
`

const errorScenario = `name: where_first
description: where before from is rejected
query:
  steps:
    - select: [Users.id]
    - where: {column: Users.id, op: "=", value: 1}
assertions:
  - type: error_code
    code: NO_TABLE_BOUND
`

func TestTestCommandMissingArgs(t *testing.T) {
	_, _, err := execute(t, "test")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "accepts 1 arg")
}

func TestTestCommandNonExistentScenariosDir(t *testing.T) {
	_, _, err := execute(t, "test", "/nonexistent/scenarios")
	require.Error(t, err)
	assert.Equal(t, ExitCommandError, GetExitCode(err))
	assert.Contains(t, err.Error(), "scenarios directory not found")
}

func TestTestCommandEmptyScenariosDir(t *testing.T) {
	out, _, err := execute(t, "test", t.TempDir())
	require.NoError(t, err)
	assert.Contains(t, out, "No scenarios found")
}

func TestTestCommandEmptyScenariosDirJSON(t *testing.T) {
	out, _, err := execute(t, "test", t.TempDir(), "--format", "json")
	require.NoError(t, err)

	var resp CLIResponse
	require.NoError(t, json.Unmarshal([]byte(out), &resp))
	assert.Equal(t, "ok", resp.Status)
}

func TestTestCommandInvalidScenario(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "bad.yaml", "name: bad\n")

	_, _, err := execute(t, "test", dir)
	require.Error(t, err)
	assert.Equal(t, ExitCommandError, GetExitCode(err))
	assert.Contains(t, err.Error(), "failed to load scenarios")
}

func TestTestCommandPassing(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "users_by_age.yaml", passingScenario)
	writeFile(t, dir, "where_first.yaml", errorScenario)

	out, _, err := execute(t, "test", dir, "--workers", "2")
	require.NoError(t, err)
	assert.Contains(t, out, "✓ users_by_age")
	assert.Contains(t, out, "✓ where_first")
	assert.Contains(t, out, "Test Summary: 2 passed, 0 failed, 2 total")
}

func TestTestCommandFailing(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "users_by_age.yaml", passingScenario)
	writeFile(t, dir, "wrong_expectation.yaml", failingScenario)

	out, _, err := execute(t, "test", dir, "--format", "json")
	require.Error(t, err)
	assert.Equal(t, ExitFailure, GetExitCode(err))

	var resp struct {
		Status string     `json:"status"`
		Data   TestResult `json:"data"`
		Error  *CLIError  `json:"error"`
	}
	require.NoError(t, json.Unmarshal([]byte(out), &resp))
	assert.Equal(t, "error", resp.Status)
	assert.Equal(t, 1, resp.Data.Passed)
	assert.Equal(t, 1, resp.Data.Failed)
	require.NotNil(t, resp.Error)
	assert.Equal(t, "E_TEST_FAILED", resp.Error.Code)

	// Outcomes keep file order.
	require.Len(t, resp.Data.Scenarios, 2)
	assert.Equal(t, "users_by_age", resp.Data.Scenarios[0].Name)
	assert.Equal(t, "wrong_expectation", resp.Data.Scenarios[1].Name)
	assert.Equal(t, "SELECT id FROM Users", resp.Data.Scenarios[1].SQL)
}

func TestTestCommandFilter(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "users_by_age.yaml", passingScenario)
	writeFile(t, dir, "wrong_expectation.yaml", failingScenario)

	out, _, err := execute(t, "test", dir, "--filter", "users_*")
	require.NoError(t, err)
	assert.Contains(t, out, "1 passed, 0 failed, 1 total")
}

func TestTestCommandGoldenUpdateAndCompare(t *testing.T) {
	dir := t.TempDir()
	scenario := writeFile(t, dir, "users_by_age.yaml", passingScenario)
	goldenPath := filepath.Join(dir, "golden", "users_by_age.golden")

	out, _, err := execute(t, "test", dir, "--update")
	require.NoError(t, err)
	assert.Contains(t, out, "✓ users_by_age (golden updated)")

	data, err := os.ReadFile(goldenPath)
	require.NoError(t, err)
	assert.Equal(t, "scenario: users_by_age\nsql: SELECT name FROM Users WHERE age > 30\n", string(data))

	// Matches the golden file.
	_, _, err = execute(t, "test", dir)
	require.NoError(t, err)

	// Change the query and its assertion but not the golden file.
	changed := bytes.ReplaceAll([]byte(passingScenario), []byte("30"), []byte("40"))
	require.NoError(t, os.WriteFile(scenario, changed, 0644))

	out, _, err = execute(t, "test", dir)
	require.Error(t, err)
	assert.Equal(t, ExitFailure, GetExitCode(err))
	assert.Contains(t, out, "golden file mismatch")
}

func TestTestCommandGoldenWriteFailed(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "users_by_age.yaml", passingScenario)
	// A file where the golden directory should be.
	writeFile(t, dir, "golden", "not a directory")

	out, _, err := execute(t, "test", dir, "--update", "--format", "json")
	require.Error(t, err)
	assert.Equal(t, ExitFailure, GetExitCode(err))

	var resp struct {
		Data TestResult `json:"data"`
	}
	require.NoError(t, json.Unmarshal([]byte(out), &resp))
	require.Len(t, resp.Data.Scenarios, 1)
	got := resp.Data.Scenarios[0]
	assert.False(t, got.Pass)
	assert.Equal(t, ErrCodeWriteFailed, got.Code)
	require.Len(t, got.Errors, 1)
	assert.Contains(t, got.Errors[0], "failed to update golden file")

	out, _, err = execute(t, "test", dir, "--update")
	require.Error(t, err)
	assert.Contains(t, out, "✗ users_by_age [E007]")
}
