package query

import (
	"github.com/roach88/typedsql/internal/queryir"
	"github.com/roach88/typedsql/internal/querysql"
	"github.com/roach88/typedsql/internal/schema"
)

// Stage tags. They carry no data and only appear as type arguments.
type (
	NoColumns struct{}
	Columns   struct{}

	NoTable struct{}
	Bound   struct{}

	NoFilter struct{}
	Filtered struct{}
)

// Query is an immutable SELECT under construction.
// C tracks the column stage, T the table stage and P the predicate stage.
type Query[C, T, P any] struct {
	sel queryir.Select
}

// New starts an empty query.
func New() Query[NoColumns, NoTable, NoFilter] {
	return Query[NoColumns, NoTable, NoFilter]{}
}

// Descriptor returns a copy of the accumulated state.
func (q Query[C, T, P]) Descriptor() queryir.Select {
	sel := q.sel
	sel.Columns = append([]schema.ColumnRef(nil), q.sel.Columns...)
	return sel
}

// Select chooses the output columns. Allowed once.
//
// Fails with EMPTY_SELECTION if cols is empty and, when a table is already
// bound, with COLUMN_NOT_IN_TABLE for the first column it does not own.
func Select[T, P any](q Query[NoColumns, T, P], cols ...schema.ColumnRef) (Query[Columns, T, P], error) {
	sel, err := withColumns(q.sel, cols)
	if err != nil {
		return Query[Columns, T, P]{}, err
	}
	return Query[Columns, T, P]{sel: sel}, nil
}

// From binds the source table. Allowed once.
//
// Fails with COLUMN_NOT_IN_TABLE if a selected column belongs to another
// table.
func From[C, P any](q Query[C, NoTable, P], table *schema.Table) (Query[C, Bound, P], error) {
	sel, err := withTable(q.sel, table)
	if err != nil {
		return Query[C, Bound, P]{}, err
	}
	return Query[C, Bound, P]{sel: sel}, nil
}

// Where attaches a predicate built against the bound table. Allowed once,
// after From.
//
// The first leaf error recorded by the scope is returned; no query is
// produced in that case.
func Where[C any](q Query[C, Bound, NoFilter], fn WhereFunc) (Query[C, Bound, Filtered], error) {
	sel, err := withFilter(q.sel, fn)
	if err != nil {
		return Query[C, Bound, Filtered]{}, err
	}
	return Query[C, Bound, Filtered]{sel: sel}, nil
}

// Build renders the SQL text. Only complete queries type-check.
//
// Build panics on a zero Query value, which is not reachable from New.
func Build[P any](q Query[Columns, Bound, P]) string {
	sql, err := querysql.Render(q.sel)
	if err != nil {
		panic("query: render of a complete query failed: " + err.Error())
	}
	return sql
}

// BuildParams renders parameterized SQL and its arguments.
func BuildParams[P any](q Query[Columns, Bound, P]) (string, []any) {
	sql, params, err := querysql.NewSQLCompiler().CompileParams(q.sel)
	if err != nil {
		panic("query: render of a complete query failed: " + err.Error())
	}
	return sql, params
}
