package schema

import (
	"fmt"

	"golang.org/x/text/unicode/norm"

	"github.com/roach88/typedsql/internal/ir"
)

// Table is a named, ordered set of typed columns.
// Identity is the *Table instance; the name is unique inside a Registry.
type Table struct {
	name    string
	columns []ColumnRef
	byName  map[string]ColumnRef
	sealed  bool
}

// Name returns the table name as it appears in FROM clauses.
func (t *Table) Name() string { return t.name }

// String implements fmt.Stringer.
func (t *Table) String() string { return t.name }

// Columns returns the columns in definition order.
// The returned slice is a copy.
func (t *Table) Columns() []ColumnRef {
	out := make([]ColumnRef, len(t.columns))
	copy(out, t.columns)
	return out
}

// Column looks a column up by name.
func (t *Table) Column(name string) (ColumnRef, bool) {
	c, ok := t.byName[normalize(name)]
	return c, ok
}

// Sealed reports whether the table definition is frozen.
func (t *Table) Sealed() bool { return t.sealed }

// Has reports whether col is a column of this table instance.
//
// A column with the same name and type but owned by a different Table is
// not a member: scope is checked against the instance, not the name.
func (t *Table) Has(col ColumnRef) bool {
	if t == nil || col == nil || col.Table() != t {
		return false
	}
	c, ok := t.byName[col.Name()]
	return ok && c.Type() == col.Type()
}

// Definer builds a Table column by column.
// Not safe for concurrent use; tables are defined during startup.
type Definer struct {
	table *Table
}

// NewDefiner starts the definition of a table.
func NewDefiner(name string) *Definer {
	return &Definer{
		table: &Table{
			name:   normalize(name),
			byName: make(map[string]ColumnRef),
		},
	}
}

// Add appends a column whose type is known only at run time.
// Returns an error if the name is empty or already used, the type is not
// one of the column types, or the table is sealed.
func (d *Definer) Add(name string, typ ir.Type) (ColumnRef, error) {
	if !typ.Valid() {
		return nil, fmt.Errorf("column %q: unknown type %q", name, typ)
	}
	c := column{table: d.table, name: normalize(name), typ: typ}
	if err := d.add(c); err != nil {
		return nil, err
	}
	return c, nil
}

// Seal freezes the table and returns it. Later Add calls fail.
func (d *Definer) Seal() *Table {
	d.table.sealed = true
	return d.table
}

func (d *Definer) add(c ColumnRef) error {
	t := d.table
	if t.sealed {
		return fmt.Errorf("table %s is sealed: cannot add column %q", t.name, c.Name())
	}
	if c.Name() == "" {
		return fmt.Errorf("table %s: column name is required", t.name)
	}
	if _, dup := t.byName[c.Name()]; dup {
		return fmt.Errorf("table %s: duplicate column %q", t.name, c.Name())
	}
	t.columns = append(t.columns, c)
	t.byName[c.Name()] = c
	return nil
}

// Int defines an integer column.
func Int(d *Definer, name string) Column[int64] { return define[int64](d, name) }

// Float defines a floating-point column.
func Float(d *Definer, name string) Column[float64] { return define[float64](d, name) }

// String defines a string column.
func String(d *Definer, name string) Column[string] { return define[string](d, name) }

// Bool defines a boolean column.
func Bool(d *Definer, name string) Column[bool] { return define[bool](d, name) }

// define panics on an invalid column: typed columns are static
// configuration written in Go source, so a duplicate is a programming error.
func define[V ir.Scalar](d *Definer, name string) Column[V] {
	c := Column[V]{table: d.table, name: normalize(name)}
	if err := d.add(c); err != nil {
		panic(err)
	}
	return c
}

// normalize puts identifiers in Unicode NFC so that visually identical
// names typed in different normal forms resolve to the same column.
func normalize(name string) string {
	return norm.NFC.String(name)
}
