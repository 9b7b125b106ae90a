// Package querydoc reads query documents: YAML descriptions of a query as
// an ordered list of builder steps.
//
// # Format
//
//	schema: ./schema          # optional CUE schema directory
//	steps:
//	  - select: [Users.name, Users.age]
//	  - from: Users
//	  - where:
//	      and:
//	        - {column: age, op: ">", value: 25}
//	        - or:
//	            - {column: name, op: "=", value: Alice}
//	            - {column: name, op: "=", value: Bob}
//
// Each step holds exactly one of select, from or where. Steps are applied
// in order to a query.Dynamic, so an out-of-order document fails with the
// same ordering errors as the builder itself.
//
// Column references are "Table.column" or a bare column name. A bare name
// in select resolves against the bound table (From must come first); a bare
// name in where always resolves against the bound table.
//
// Conditions take one of four forms:
//
//	{column, op, value}   op is "=", "<" or ">"; value may be null
//	{column, in: [...]}
//	{and: [left, right]}
//	{or: [left, right]}
//
// YAML scalars keep their types: 50 is an integer and 50.0 a float, so a
// float column must be compared with a float literal.
package querydoc
