package querydoc

import (
	"fmt"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/roach88/typedsql/internal/ir"
	"github.com/roach88/typedsql/internal/queryir"
	"github.com/roach88/typedsql/internal/schema"
)

// predicate is a condition whose column names are resolved. A leaf that
// could not be resolved keeps its error and becomes a failed leaf when
// built, so the scope records it alongside scope and literal errors.
type predicate struct {
	column schema.ColumnRef
	op     queryir.Operator
	value  any
	in     []any
	isIn   bool
	err    error

	logic       queryir.Logic
	left, right *predicate
}

func (p *predicate) build(s *queryir.Scope) queryir.Fragment {
	switch {
	case p.err != nil:
		return s.Fail(p.err)
	case p.logic == queryir.LogicAnd:
		return s.And(p.left.build(s), p.right.build(s))
	case p.logic == queryir.LogicOr:
		return s.Or(p.left.build(s), p.right.build(s))
	case p.isIn:
		return s.In(p.column, p.in...)
	default:
		return s.Compare(p.column, p.op, p.value)
	}
}

// firstErr returns the leftmost resolution error in the tree, or nil.
func (p *predicate) firstErr() error {
	if p.err != nil {
		return p.err
	}
	if p.left == nil {
		return nil
	}
	if err := p.left.firstErr(); err != nil {
		return err
	}
	return p.right.firstErr()
}

// resolveCondition resolves every leaf of c. It never stops early; see
// predicate.firstErr.
func resolveCondition(reg *schema.Registry, bound *schema.Table, c *Condition) *predicate {
	switch {
	case c.And != nil || c.Or != nil:
		pair, logic := c.And, queryir.LogicAnd
		if c.Or != nil {
			pair, logic = c.Or, queryir.LogicOr
		}
		return &predicate{
			logic: logic,
			left:  resolveCondition(reg, bound, &pair[0]),
			right: resolveCondition(reg, bound, &pair[1]),
		}

	case c.In != nil:
		col, err := resolveColumn(reg, bound, c.Column)
		if err != nil {
			return &predicate{err: err}
		}
		return &predicate{column: col, in: c.In, isIn: true}

	default:
		col, err := resolveColumn(reg, bound, c.Column)
		if err != nil {
			return &predicate{err: err}
		}
		op, err := queryir.ParseOperator(c.Op)
		if err != nil {
			return &predicate{err: err}
		}
		value, err := decodeScalar(&c.Value)
		if err != nil {
			return &predicate{err: err}
		}
		return &predicate{column: col, op: op, value: value}
	}
}

// resolveColumn finds a "Table.column" reference in the registry or a bare
// name in the bound table.
func resolveColumn(reg *schema.Registry, bound *schema.Table, ref string) (schema.ColumnRef, error) {
	if strings.Contains(ref, ".") {
		return reg.Resolve(ref)
	}
	if bound == nil {
		return nil, fmt.Errorf("column %q must be qualified as Table.%s before from", ref, ref)
	}
	return schema.ResolveIn(bound, ref)
}

// decodeScalar turns a YAML scalar node into a Go value. A null node gives
// nil.
func decodeScalar(node *yaml.Node) (any, error) {
	if node.Kind != yaml.ScalarNode {
		return nil, ir.NewInvalidValue(fmt.Sprintf("line %d: value must be a scalar", node.Line))
	}
	var v any
	if err := node.Decode(&v); err != nil {
		return nil, ir.NewInvalidValue(fmt.Sprintf("line %d: %v", node.Line, err))
	}
	return v, nil
}
