package schema

import "github.com/roach88/typedsql/internal/ir"

// ColumnRef is the untyped view of a column: its name, declared type and
// owning table. Both typed handles (Column[V]) and columns loaded at run
// time implement it.
type ColumnRef interface {
	Name() string
	Type() ir.Type
	Table() *Table
}

// Column is a typed handle to a column whose values are Go type V.
//
// Predicates built from a Column[V] can only accept V literals, so a type
// mismatch is a compile error rather than a runtime fault.
type Column[V ir.Scalar] struct {
	table *Table
	name  string
}

func (c Column[V]) Name() string   { return c.name }
func (c Column[V]) Type() ir.Type  { return ir.TypeFor[V]() }
func (c Column[V]) Table() *Table  { return c.table }
func (c Column[V]) String() string { return qualified(c) }

// column is a ColumnRef whose type is only known at run time.
type column struct {
	table *Table
	name  string
	typ   ir.Type
}

func (c column) Name() string   { return c.name }
func (c column) Type() ir.Type  { return c.typ }
func (c column) Table() *Table  { return c.table }
func (c column) String() string { return qualified(c) }

// Typed converts ref to a typed handle. It returns false if the declared
// type of ref is not V.
func Typed[V ir.Scalar](ref ColumnRef) (Column[V], bool) {
	if ref == nil || ref.Type() != ir.TypeFor[V]() {
		return Column[V]{}, false
	}
	return Column[V]{table: ref.Table(), name: ref.Name()}, true
}

// SameColumn reports whether a and b name the same column of the same table
// instance, regardless of which handle type carries them.
func SameColumn(a, b ColumnRef) bool {
	if a == nil || b == nil {
		return false
	}
	return a.Table() == b.Table() && a.Name() == b.Name() && a.Type() == b.Type()
}

// qualified returns "Table.column", or just the column name for a column
// without an owner.
func qualified(c ColumnRef) string {
	if c.Table() == nil {
		return c.Name()
	}
	return c.Table().Name() + "." + c.Name()
}
