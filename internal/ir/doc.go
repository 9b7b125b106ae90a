// Package ir provides the foundational value and error types for typedsql.
//
// This package contains type definitions only. All other internal packages
// import ir; ir imports nothing internal. This keeps literal values, column
// types and error kinds at the bottom of the dependency graph.
//
// Key design constraints:
//   - Value is a sealed sum type: Int, Float, Text, Bool, Null. Nothing else
//     can reach the SQL renderer as a literal.
//   - Type is the closed set of declared column types.
//   - Every failure a query can produce is an *Error carrying a Code, so
//     callers branch on codes instead of message text.
package ir
