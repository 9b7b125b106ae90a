package queryir

import (
	"fmt"

	"github.com/roach88/typedsql/internal/ir"
	"github.com/roach88/typedsql/internal/schema"
)

// Fragment represents a node of a WHERE predicate.
//
// This is a sealed interface - only types in this package implement it.
// The marker method pattern enables exhaustive type switches in the
// renderer and validator.
type Fragment interface {
	fragmentNode() // Marker method - seals interface to this package

	// IsComposite reports whether the node joins two fragments with a
	// connective. Composite children are parenthesized when nested.
	IsComposite() bool
}

// Operator is a leaf comparison operator.
type Operator string

const (
	OpEq Operator = "="
	OpLt Operator = "<"
	OpGt Operator = ">"
	OpIn Operator = "IN"
)

// ParseOperator converts operator text to an Operator.
// Only "=", "<" and ">" are comparison operators; IN has its own leaf.
func ParseOperator(s string) (Operator, error) {
	switch op := Operator(s); op {
	case OpEq, OpLt, OpGt:
		return op, nil
	default:
		return "", ir.NewUnsupportedOperator(s)
	}
}

// Logic is a boolean connective.
type Logic string

const (
	LogicAnd Logic = "AND"
	LogicOr  Logic = "OR"
)

// Comparison represents a column-operator-literal predicate.
//
// Semantics:
//
//	<column> <op> <value>
//
// Example:
//
//	Comparison{Column: users.Age, Op: OpGt, Value: ir.Int(25)}
//
// Renders as:
//
//	age > 25
type Comparison struct {
	Column schema.ColumnRef
	Op     Operator
	Value  ir.Value
}

func (Comparison) fragmentNode()     {}
func (Comparison) IsComposite() bool { return false }

// InList represents set membership.
//
// Semantics:
//
//	<column> IN (<v1>, <v2>, ...)
//
// An empty list is accepted and renders as "IN ()".
type InList struct {
	Column schema.ColumnRef
	Values []ir.Value
}

func (InList) fragmentNode()     {}
func (InList) IsComposite() bool { return false }

// Composite joins two fragments with AND or OR.
type Composite struct {
	Left  Fragment
	Logic Logic
	Right Fragment
}

func (Composite) fragmentNode()     {}
func (Composite) IsComposite() bool { return true }

// invalid stands in for a leaf whose construction failed inside a Scope.
// It carries the error so that validation reports it even if the caller
// ignored Scope.Err.
type invalid struct {
	err error
}

func (invalid) fragmentNode()     {}
func (invalid) IsComposite() bool { return false }

// FailedLeaf returns the error carried by f if f stands in for a leaf whose
// construction failed, or nil.
func FailedLeaf(f Fragment) error {
	if inv, ok := f.(invalid); ok {
		return inv.err
	}
	return nil
}

// Select is the accumulated state of a query.
//
// Semantics:
//
//	SELECT <columns> FROM <from> [WHERE <filter>]
//
// A nil/empty field means the stage has not run. Select values are never
// modified in place; builders derive a new Select per stage.
type Select struct {
	Columns []schema.ColumnRef // Selected columns, in request order
	From    *schema.Table      // Source table (nil = not bound)
	Filter  Fragment           // WHERE predicate (nil = no filter)
}

// HasColumns reports whether the columns stage is complete.
func (s Select) HasColumns() bool { return len(s.Columns) > 0 }

// HasTable reports whether the table stage is complete.
func (s Select) HasTable() bool { return s.From != nil }

// HasFilter reports whether the predicate stage is complete.
func (s Select) HasFilter() bool { return s.Filter != nil }

// MissingStages lists the stages required by build that are not complete.
func (s Select) MissingStages() []ir.Stage {
	var missing []ir.Stage
	if !s.HasColumns() {
		missing = append(missing, ir.StageColumns)
	}
	if !s.HasTable() {
		missing = append(missing, ir.StageTable)
	}
	return missing
}

// Compare builds a comparison leaf against the table in scope.
//
// Fails with COLUMN_NOT_IN_SCOPE if column is not a member of table (the
// instance, not just the name), UNSUPPORTED_OPERATOR for anything but
// =, < and >, and TYPE_MISMATCH if the literal's type differs from the
// column's declared type. NULL is accepted for every column type.
func Compare(table *schema.Table, column schema.ColumnRef, op Operator, value ir.Value) (Fragment, error) {
	if err := checkScope(table, column); err != nil {
		return nil, err
	}
	if _, err := ParseOperator(string(op)); err != nil {
		return nil, err
	}
	if value == nil {
		value = ir.Null{}
	}
	if !ir.IsNull(value) && value.Type() != column.Type() {
		return nil, ir.NewTypeMismatch(column.Name(), column.Type(), value.Type())
	}
	return Comparison{Column: column, Op: op, Value: value}, nil
}

// InSet builds an IN leaf against the table in scope.
// Every element must match the column's declared type.
func InSet(table *schema.Table, column schema.ColumnRef, values []ir.Value) (Fragment, error) {
	if err := checkScope(table, column); err != nil {
		return nil, err
	}
	list := make([]ir.Value, len(values))
	for i, v := range values {
		if v == nil {
			v = ir.Null{}
		}
		if !ir.IsNull(v) && v.Type() != column.Type() {
			return nil, ir.NewListTypeMismatch(column.Name(), column.Type(), v.Type(), i)
		}
		list[i] = v
	}
	return InList{Column: column, Values: list}, nil
}

// And joins two fragments with AND. Neither input is modified.
func And(left, right Fragment) Fragment {
	return Composite{Left: left, Logic: LogicAnd, Right: right}
}

// Or joins two fragments with OR. Neither input is modified.
func Or(left, right Fragment) Fragment {
	return Composite{Left: left, Logic: LogicOr, Right: right}
}

// checkScope verifies that column belongs to table.
func checkScope(table *schema.Table, column schema.ColumnRef) error {
	if column == nil {
		return fmt.Errorf("nil column")
	}
	if table == nil {
		return ir.NewNoTableBound()
	}
	if !table.Has(column) {
		return ir.NewColumnNotInScope(column.Name(), table.Name())
	}
	return nil
}
