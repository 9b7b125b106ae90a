package queryir

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roach88/typedsql/internal/catalog"
	"github.com/roach88/typedsql/internal/ir"
	"github.com/roach88/typedsql/internal/schema"
)

func TestValidate_ValidQuery(t *testing.T) {
	users := catalog.Users
	s := NewScope(users.Table)
	sel := Select{
		Columns: []schema.ColumnRef{users.Name, users.Age},
		From:    users.Table,
		Filter:  s.And(s.Gt(users.Age, 25), s.Or(s.Eq(users.Name, "Alice"), s.Eq(users.Name, "Bob"))),
	}

	result := Validate(sel)

	assert.True(t, result.Valid)
	assert.Empty(t, result.Problems)
	assert.NoError(t, result.Err())
}

func TestValidate_NoTableIsNotAProblem(t *testing.T) {
	result := Validate(Select{Columns: []schema.ColumnRef{catalog.Products.Name}})
	assert.True(t, result.Valid)
}

func TestValidate_ColumnNotInTable(t *testing.T) {
	sel := Select{
		Columns: []schema.ColumnRef{catalog.Users.Name, catalog.Products.Price},
		From:    catalog.Users.Table,
	}

	result := Validate(sel)

	require.False(t, result.Valid)
	require.Len(t, result.Problems, 1)
	var e *ir.Error
	require.ErrorAs(t, result.Err(), &e)
	assert.Equal(t, ir.ErrCodeColumnNotInTable, e.Code)
	assert.Equal(t, "price", e.Column)
	assert.Equal(t, "Users", e.Table)
}

func TestValidate_FilterOutOfScope(t *testing.T) {
	products := catalog.Products
	sel := Select{
		Columns: []schema.ColumnRef{catalog.Users.Name},
		From:    catalog.Users.Table,
		Filter:  Comparison{Column: products.Price, Op: OpGt, Value: ir.Float(1)},
	}

	result := Validate(sel)

	assert.True(t, ir.IsCode(result.Err(), ir.ErrCodeColumnNotInScope))
}

func TestValidate_CollectsAllProblems(t *testing.T) {
	users := catalog.Users
	sel := Select{
		Columns: []schema.ColumnRef{catalog.Products.Price},
		From:    users.Table,
		Filter: Composite{
			Left:  Comparison{Column: users.Age, Op: OpGt, Value: ir.Text("x")},
			Logic: LogicAnd,
			Right: InList{Column: catalog.Products.ProductID, Values: []ir.Value{ir.Int(1)}},
		},
	}

	result := Validate(sel)

	require.Len(t, result.Problems, 3)
	assert.True(t, ir.IsCode(result.Problems[0], ir.ErrCodeColumnNotInTable))
	assert.True(t, ir.IsCode(result.Problems[1], ir.ErrCodeTypeMismatch))
	assert.True(t, ir.IsCode(result.Problems[2], ir.ErrCodeColumnNotInScope))
}

func TestValidate_FilterWithoutTable(t *testing.T) {
	sel := Select{Filter: Comparison{Column: catalog.Users.ID, Op: OpEq, Value: ir.Int(1)}}
	assert.True(t, ir.IsCode(Validate(sel).Err(), ir.ErrCodeNoTableBound))
}

func TestValidate_BadConnective(t *testing.T) {
	users := catalog.Users
	leaf := Comparison{Column: users.ID, Op: OpEq, Value: ir.Int(1)}
	sel := Select{From: users.Table, Filter: Composite{Left: leaf, Logic: "XOR", Right: leaf}}

	assert.True(t, ir.IsCode(Validate(sel).Err(), ir.ErrCodeUnsupportedOperator))
}

func TestValidate_NilChild(t *testing.T) {
	users := catalog.Users
	sel := Select{From: users.Table, Filter: And(nil, Comparison{Column: users.ID, Op: OpEq, Value: ir.Int(1)})}
	assert.ErrorContains(t, Validate(sel).Err(), "nil predicate fragment")
}
