package queryir

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roach88/typedsql/internal/catalog"
	"github.com/roach88/typedsql/internal/ir"
)

func TestFragment_IsComposite(t *testing.T) {
	users := catalog.Users
	eq, err := Compare(users.Table, users.ID, OpEq, ir.Int(1))
	require.NoError(t, err)
	in, err := InSet(users.Table, users.ID, []ir.Value{ir.Int(1)})
	require.NoError(t, err)

	assert.False(t, eq.IsComposite())
	assert.False(t, in.IsComposite())
	assert.True(t, And(eq, in).IsComposite())
	assert.True(t, Or(eq, in).IsComposite())
}

func TestFragment_SealedSwitch(t *testing.T) {
	var f Fragment = Comparison{}

	switch f.(type) {
	case Comparison:
		// Expected
	case InList, Composite:
		t.Fatal("unexpected type")
	}
}

func TestParseOperator(t *testing.T) {
	for _, s := range []string{"=", "<", ">"} {
		op, err := ParseOperator(s)
		require.NoError(t, err)
		assert.Equal(t, Operator(s), op)
	}

	for _, s := range []string{"<=", "!=", "LIKE", "IN", ""} {
		_, err := ParseOperator(s)
		assert.True(t, ir.IsCode(err, ir.ErrCodeUnsupportedOperator), "operator %q", s)
	}
}

func TestCompare_TypeMismatch(t *testing.T) {
	users := catalog.Users
	_, err := Compare(users.Table, users.Age, OpGt, ir.Text("x"))
	require.Error(t, err)

	var e *ir.Error
	require.ErrorAs(t, err, &e)
	assert.Equal(t, ir.ErrCodeTypeMismatch, e.Code)
	assert.Equal(t, "age", e.Column)
}

func TestCompare_ColumnNotInScope(t *testing.T) {
	_, err := Compare(catalog.Users.Table, catalog.Products.Name, OpEq, ir.Text("x"))
	require.Error(t, err)

	var e *ir.Error
	require.ErrorAs(t, err, &e)
	assert.Equal(t, ir.ErrCodeColumnNotInScope, e.Code)
	assert.Equal(t, "name", e.Column)
	assert.Equal(t, "Users", e.Table)
}

func TestCompare_NullAcceptedForAnyType(t *testing.T) {
	users := catalog.Users
	f, err := Compare(users.Table, users.Age, OpEq, ir.Null{})
	require.NoError(t, err)
	assert.Equal(t, ir.Null{}, f.(Comparison).Value)

	f, err = Compare(users.Table, users.Name, OpEq, nil)
	require.NoError(t, err)
	assert.True(t, ir.IsNull(f.(Comparison).Value))
}

func TestCompare_InIsNotAComparison(t *testing.T) {
	users := catalog.Users
	_, err := Compare(users.Table, users.ID, OpIn, ir.Int(1))
	assert.True(t, ir.IsCode(err, ir.ErrCodeUnsupportedOperator))
}

func TestInSet(t *testing.T) {
	users := catalog.Users

	f, err := InSet(users.Table, users.ID, []ir.Value{ir.Int(1), ir.Int(2), ir.Int(3)})
	require.NoError(t, err)
	assert.Len(t, f.(InList).Values, 3)

	empty, err := InSet(users.Table, users.ID, nil)
	require.NoError(t, err)
	assert.Empty(t, empty.(InList).Values)
}

func TestInSet_ElementTypeMismatch(t *testing.T) {
	users := catalog.Users
	_, err := InSet(users.Table, users.ID, []ir.Value{ir.Int(1), ir.Text("2")})
	require.Error(t, err)
	assert.True(t, ir.IsCode(err, ir.ErrCodeTypeMismatch))
	assert.Contains(t, err.Error(), "element 1 is string")
}

func TestInSet_DoesNotAliasInput(t *testing.T) {
	users := catalog.Users
	values := []ir.Value{ir.Int(1), ir.Int(2)}
	f, err := InSet(users.Table, users.ID, values)
	require.NoError(t, err)

	values[0] = ir.Int(99)
	assert.Equal(t, ir.Int(1), f.(InList).Values[0])
}

func TestAndOr_InputsUnchanged(t *testing.T) {
	users := catalog.Users
	a, err := Compare(users.Table, users.Age, OpGt, ir.Int(25))
	require.NoError(t, err)
	b, err := Compare(users.Table, users.Name, OpEq, ir.Text("Alice"))
	require.NoError(t, err)

	both := And(a, b)
	either := Or(a, b)

	assert.Equal(t, Composite{Left: a, Logic: LogicAnd, Right: b}, both)
	assert.Equal(t, Composite{Left: a, Logic: LogicOr, Right: b}, either)
	assert.Equal(t, Comparison{Column: users.Age, Op: OpGt, Value: ir.Int(25)}, a)
}

func TestSelect_MissingStages(t *testing.T) {
	assert.Equal(t, []ir.Stage{ir.StageColumns, ir.StageTable}, Select{}.MissingStages())

	sel := Select{From: catalog.Users.Table}
	assert.Equal(t, []ir.Stage{ir.StageColumns}, sel.MissingStages())
	assert.True(t, sel.HasTable())
	assert.False(t, sel.HasFilter())

	sel.Columns = append(sel.Columns, catalog.Users.Name)
	assert.Empty(t, sel.MissingStages())
}
