package query

import (
	"fmt"
	"slices"

	"github.com/roach88/typedsql/internal/ir"
	"github.com/roach88/typedsql/internal/queryir"
	"github.com/roach88/typedsql/internal/schema"
)

// WhereFunc builds a predicate against the table in scope.
type WhereFunc func(s *queryir.Scope) queryir.Fragment

// withColumns returns sel with cols selected.
// If a table is already bound every column must belong to it.
func withColumns(sel queryir.Select, cols []schema.ColumnRef) (queryir.Select, error) {
	if len(cols) == 0 {
		return sel, ir.NewEmptySelection()
	}
	for i, col := range cols {
		if col == nil {
			return sel, fmt.Errorf("select: nil column at position %d", i)
		}
	}

	next := sel
	next.Columns = slices.Clone(cols)
	if next.From != nil {
		if err := checkColumns(next.Columns, next.From); err != nil {
			return sel, err
		}
	}
	return next, nil
}

// withTable returns sel bound to table.
// Every previously selected column must belong to it.
func withTable(sel queryir.Select, table *schema.Table) (queryir.Select, error) {
	if table == nil {
		return sel, fmt.Errorf("from: nil table")
	}
	if err := checkColumns(sel.Columns, table); err != nil {
		return sel, err
	}
	next := sel
	next.From = table
	return next, nil
}

// withFilter runs fn against a scope for the bound table and attaches the
// resulting predicate.
func withFilter(sel queryir.Select, fn WhereFunc) (queryir.Select, error) {
	if sel.From == nil {
		return sel, ir.NewNoTableBound()
	}
	if fn == nil {
		return sel, fmt.Errorf("where: nil predicate builder")
	}

	scope := queryir.NewScope(sel.From)
	frag := fn(scope)
	if err := scope.Err(); err != nil {
		return sel, err
	}
	if frag == nil {
		return sel, fmt.Errorf("where: predicate builder returned nil")
	}

	next := sel
	next.Filter = frag
	if err := queryir.Validate(next).Err(); err != nil {
		return sel, err
	}
	return next, nil
}

func checkColumns(cols []schema.ColumnRef, table *schema.Table) error {
	for _, col := range cols {
		if !table.Has(col) {
			return ir.NewColumnNotInTable(col.Name(), table.Name())
		}
	}
	return nil
}
