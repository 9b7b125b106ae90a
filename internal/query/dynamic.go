package query

import (
	"github.com/roach88/typedsql/internal/ir"
	"github.com/roach88/typedsql/internal/queryir"
	"github.com/roach88/typedsql/internal/querysql"
	"github.com/roach88/typedsql/internal/schema"
)

// Dynamic is a runtime-checked builder for queries whose shape is only
// known at run time.
//
// It follows the same protocol as Query but reports misuse as ordering
// errors. The first failure poisons the builder: every later call returns
// that same error, and the builder should be discarded.
//
// A Dynamic is not safe for concurrent use.
type Dynamic struct {
	sel queryir.Select
	err error
}

// NewDynamic starts an empty runtime-checked query.
func NewDynamic() *Dynamic {
	return &Dynamic{}
}

// Err returns the error that poisoned the builder, if any.
func (d *Dynamic) Err() error { return d.err }

// Select chooses the output columns.
// Fails with ALREADY_SELECTED on a second call.
func (d *Dynamic) Select(cols ...schema.ColumnRef) error {
	if d.err != nil {
		return d.err
	}
	if d.sel.HasColumns() {
		return d.fail(ir.NewAlreadySelected())
	}
	sel, err := withColumns(d.sel, cols)
	if err != nil {
		return d.fail(err)
	}
	d.sel = sel
	return nil
}

// From binds the source table.
// Fails with ALREADY_BOUND on a second call.
func (d *Dynamic) From(table *schema.Table) error {
	if d.err != nil {
		return d.err
	}
	if d.sel.HasTable() {
		return d.fail(ir.NewAlreadyBound(d.sel.From.Name()))
	}
	sel, err := withTable(d.sel, table)
	if err != nil {
		return d.fail(err)
	}
	d.sel = sel
	return nil
}

// Where attaches a predicate built against the bound table.
// Fails with NO_TABLE_BOUND before From and ALREADY_FILTERED on a second
// call.
func (d *Dynamic) Where(fn WhereFunc) error {
	if d.err != nil {
		return d.err
	}
	if !d.sel.HasTable() {
		return d.fail(ir.NewNoTableBound())
	}
	if d.sel.HasFilter() {
		return d.fail(ir.NewAlreadyFiltered())
	}
	sel, err := withFilter(d.sel, fn)
	if err != nil {
		return d.fail(err)
	}
	d.sel = sel
	return nil
}

// Build renders the SQL text.
// Fails with INCOMPLETE_QUERY naming every missing stage.
func (d *Dynamic) Build() (string, error) {
	sel, err := d.complete()
	if err != nil {
		return "", err
	}
	sql, err := querysql.Render(sel)
	if err != nil {
		return "", d.fail(err)
	}
	return sql, nil
}

// BuildParams renders parameterized SQL and its arguments.
func (d *Dynamic) BuildParams() (string, []any, error) {
	sel, err := d.complete()
	if err != nil {
		return "", nil, err
	}
	sql, params, err := querysql.NewSQLCompiler().CompileParams(sel)
	if err != nil {
		return "", nil, d.fail(err)
	}
	return sql, params, nil
}

// Descriptor returns a copy of the accumulated state.
func (d *Dynamic) Descriptor() queryir.Select {
	sel := d.sel
	sel.Columns = append([]schema.ColumnRef(nil), d.sel.Columns...)
	return sel
}

func (d *Dynamic) complete() (queryir.Select, error) {
	if d.err != nil {
		return queryir.Select{}, d.err
	}
	if missing := d.sel.MissingStages(); len(missing) > 0 {
		return queryir.Select{}, d.fail(ir.NewIncompleteQuery(missing...))
	}
	return d.sel, nil
}

func (d *Dynamic) fail(err error) error {
	d.err = err
	return err
}
