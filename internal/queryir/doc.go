// Package queryir provides the intermediate representation of a typed
// SELECT query: the predicate expression tree and the Select descriptor.
//
// ARCHITECTURE:
//
// The IR sits between the builders and the SQL renderer:
//
//	[query.Query / query.Dynamic] → [queryir.Select] → [querysql]
//
// Builders own the call protocol (which stage may run next). The IR owns
// the data: which columns, which table, which predicate, and whether every
// column reference is in scope.
//
// FRAGMENTS:
//
// Fragment is a sealed interface using the marker method pattern. Only
// types in this package implement it:
//   - Comparison: column = value, column < value, column > value
//   - InList: column IN (v1, v2, ...)
//   - Composite: left AND right, left OR right
//
// Fragments are immutable. And/Or return a new Composite that refers to its
// children; the children are never copied or changed, so one fragment can
// take part in any number of compositions.
//
// Each fragment knows whether it is composite. The renderer wraps a child in
// parentheses iff the child is composite, which gives minimal output that is
// still unambiguous for mixed AND/OR nesting:
//
//	age > 25 AND (name = 'Alice' OR name = 'Bob')
//
// SCOPE:
//
// A Scope is the builder context handed to where callbacks. It is bound to
// one *schema.Table instance and rejects columns of any other table, even
// one with an identically named column.
package queryir
