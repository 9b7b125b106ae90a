package queryir

import (
	"github.com/roach88/typedsql/internal/ir"
	"github.com/roach88/typedsql/internal/schema"
)

// Scope is the where-builder context for one bound table.
//
// Leaf constructors never panic. The first failure is recorded and returned
// by Err; the failed leaf is replaced by a placeholder that carries the
// error through And/Or so it cannot be lost.
//
// A Scope is used by one where callback at a time and is not safe for
// concurrent use.
type Scope struct {
	table *schema.Table
	err   error
}

// NewScope creates a scope for table.
func NewScope(table *schema.Table) *Scope {
	return &Scope{table: table}
}

// Table returns the table in scope.
func (s *Scope) Table() *schema.Table { return s.table }

// Err returns the first error recorded by a leaf constructor.
func (s *Scope) Err() error { return s.err }

// Compare builds "column op value". value may be a Go scalar, an ir.Value or
// nil for NULL.
func (s *Scope) Compare(column schema.ColumnRef, op Operator, value any) Fragment {
	v, err := ir.FromGo(value)
	if err != nil {
		return s.fail(err)
	}
	f, err := Compare(s.table, column, op, v)
	if err != nil {
		return s.fail(err)
	}
	return f
}

// Eq builds "column = value".
func (s *Scope) Eq(column schema.ColumnRef, value any) Fragment {
	return s.Compare(column, OpEq, value)
}

// Lt builds "column < value".
func (s *Scope) Lt(column schema.ColumnRef, value any) Fragment {
	return s.Compare(column, OpLt, value)
}

// Gt builds "column > value".
func (s *Scope) Gt(column schema.ColumnRef, value any) Fragment {
	return s.Compare(column, OpGt, value)
}

// In builds "column IN (values...)".
func (s *Scope) In(column schema.ColumnRef, values ...any) Fragment {
	list := make([]ir.Value, len(values))
	for i, raw := range values {
		v, err := ir.FromGo(raw)
		if err != nil {
			return s.fail(err)
		}
		list[i] = v
	}
	f, err := InSet(s.table, column, list)
	if err != nil {
		return s.fail(err)
	}
	return f
}

// And joins two fragments with AND.
func (s *Scope) And(left, right Fragment) Fragment { return And(left, right) }

// Or joins two fragments with OR.
func (s *Scope) Or(left, right Fragment) Fragment { return Or(left, right) }

// Fail records err as a leaf failure and returns a placeholder leaf that
// carries it. Loaders use it for leaves that could not be resolved at all.
func (s *Scope) Fail(err error) Fragment {
	return s.fail(err)
}

func (s *Scope) fail(err error) Fragment {
	if s.err == nil {
		s.err = err
	}
	return invalid{err: err}
}

// Eq builds "column = value" from a typed column. The literal type is fixed
// by the column at compile time.
func Eq[V ir.Scalar](s *Scope, column schema.Column[V], value V) Fragment {
	return s.Compare(column, OpEq, value)
}

// Lt builds "column < value" from a typed column.
func Lt[V ir.Scalar](s *Scope, column schema.Column[V], value V) Fragment {
	return s.Compare(column, OpLt, value)
}

// Gt builds "column > value" from a typed column.
func Gt[V ir.Scalar](s *Scope, column schema.Column[V], value V) Fragment {
	return s.Compare(column, OpGt, value)
}

// In builds "column IN (values...)" from a typed column.
func In[V ir.Scalar](s *Scope, column schema.Column[V], values ...V) Fragment {
	list := make([]any, len(values))
	for i, v := range values {
		list[i] = v
	}
	return s.In(column, list...)
}
