package queryir

import (
	"fmt"

	"github.com/roach88/typedsql/internal/ir"
)

// ValidationResult contains every problem found in a Select.
type ValidationResult struct {
	// Valid is true when Problems is empty.
	Valid bool

	// Problems lists the failures in traversal order: selected columns
	// first, then the filter tree left to right.
	Problems []error
}

// Err returns the first problem, or nil.
func (r ValidationResult) Err() error {
	if len(r.Problems) == 0 {
		return nil
	}
	return r.Problems[0]
}

// Validate checks that every column reference in sel is in scope.
//
// Rules:
//  1. Selected columns belong to the FROM table (COLUMN_NOT_IN_TABLE)
//  2. Predicate columns belong to the FROM table (COLUMN_NOT_IN_SCOPE)
//  3. Predicate literals match their column's type (TYPE_MISMATCH)
//  4. A filter requires a bound table (NO_TABLE_BOUND)
//  5. Failed where-builder leaves surface their recorded error
//
// Stage completeness is not checked here; see Select.MissingStages.
//
// Validate is a pure function with no side effects.
func Validate(sel Select) ValidationResult {
	v := &validator{sel: sel}
	v.validateColumns()
	if sel.Filter != nil {
		if sel.From == nil {
			v.add(ir.NewNoTableBound())
		} else {
			v.validateFragment(sel.Filter)
		}
	}
	return ValidationResult{
		Valid:    len(v.problems) == 0,
		Problems: v.problems,
	}
}

// validator accumulates problems during traversal.
type validator struct {
	sel      Select
	problems []error
}

func (v *validator) add(err error) {
	v.problems = append(v.problems, err)
}

func (v *validator) validateColumns() {
	if v.sel.From == nil {
		return
	}
	for _, col := range v.sel.Columns {
		if col == nil {
			v.add(fmt.Errorf("nil column in selection"))
			continue
		}
		if !v.sel.From.Has(col) {
			v.add(ir.NewColumnNotInTable(col.Name(), v.sel.From.Name()))
		}
	}
}

func (v *validator) validateFragment(f Fragment) {
	switch frag := f.(type) {
	case nil:
		v.add(fmt.Errorf("nil predicate fragment"))
	case Comparison:
		if _, err := Compare(v.sel.From, frag.Column, frag.Op, frag.Value); err != nil {
			v.add(err)
		}
	case InList:
		if _, err := InSet(v.sel.From, frag.Column, frag.Values); err != nil {
			v.add(err)
		}
	case Composite:
		if frag.Logic != LogicAnd && frag.Logic != LogicOr {
			v.add(ir.NewUnsupportedOperator(string(frag.Logic)))
		}
		v.validateFragment(frag.Left)
		v.validateFragment(frag.Right)
	case invalid:
		v.add(frag.err)
	default:
		v.add(fmt.Errorf("unknown fragment type: %T", f))
	}
}
