// Package harness runs query scenarios: YAML files that describe a query as
// builder steps together with the outcome it must produce.
//
// # Scenario Format
//
//	name: nested_or
//	description: "AND with a nested OR is parenthesized on the right"
//	schema: ../schema            # optional; defaults to the built-in catalog
//	params: false                # render with ? placeholders
//	query:
//	  steps:
//	    - select: [Users.name, Users.age]
//	    - from: Users
//	    - where:
//	        and:
//	          - {column: age, op: ">", value: 25}
//	          - or:
//	              - {column: name, op: "=", value: Alice}
//	              - {column: name, op: "=", value: Bob}
//	assertions:
//	  - type: sql_equals
//	    value: "SELECT name, age FROM Users WHERE age > 25 AND (name = 'Alice' OR name = 'Bob')"
//
// The query block uses the querydoc format.
//
// # Assertion Types
//
//   - sql_equals: the rendered SQL equals value
//   - sql_contains: the rendered SQL contains value
//   - error_code: building failed with code (e.g. TYPE_MISMATCH)
//   - params: the parameter list equals params (requires params: true)
//
// # Golden Files
//
// RunWithGolden compares a scenario's snapshot (SQL, parameters or error)
// against testdata/golden/<name>.golden. Regenerate with:
//
//	go test ./internal/harness -update
//
// # Concurrency
//
// Scenarios are independent. RunAll executes them on a bounded worker pool;
// schemas loaded from CUE are cached and shared read-only between workers.
package harness
