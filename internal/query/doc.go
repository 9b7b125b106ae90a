// Package query provides the typed SELECT builders.
//
// Query[C, T, P] is a state machine whose state lives in its type
// arguments. Each stage function accepts only the states in which it is
// legal and returns the next state:
//
//	q0 := query.New()                                   // Query[NoColumns, NoTable, NoFilter]
//	q1, err := query.Select(q0, users.Name, users.Age)  // Query[Columns, NoTable, NoFilter]
//	q2, err := query.From(q1, users.Table)              // Query[Columns, Bound, NoFilter]
//	q3, err := query.Where(q2, func(s *queryir.Scope) queryir.Fragment {
//		return queryir.Gt(s, users.Age, 18)
//	})                                                  // Query[Columns, Bound, Filtered]
//	sql := query.Build(q3)                              // SELECT name, age FROM Users WHERE age > 18
//
// Calling Select twice, From twice, Where before From, Where twice, or Build
// without columns and a table does not compile. The stages are free
// functions because a Go method cannot narrow its receiver's type arguments.
//
// Query values are immutable: every stage returns a new value and leaves its
// input usable, so a partially built query can be branched.
//
// Errors that depend on data rather than call order (a column that is not
// part of the bound table, a literal of the wrong type) are returned from
// the stage that detects them.
//
// Dynamic is the runtime-checked counterpart for queries assembled from
// data such as YAML files. It enforces the same protocol with ordering
// errors (ALREADY_SELECTED, NO_TABLE_BOUND, INCOMPLETE_QUERY, ...).
package query
