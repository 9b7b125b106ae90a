package schema

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roach88/typedsql/internal/ir"
)

func TestDefiner_TypedColumns(t *testing.T) {
	d := NewDefiner("Users")
	id := Int(d, "id")
	name := String(d, "name")
	score := Float(d, "score")
	active := Bool(d, "active")
	users := d.Seal()

	assert.Equal(t, "Users", users.Name())
	assert.Equal(t, ir.TypeInt, id.Type())
	assert.Equal(t, ir.TypeString, name.Type())
	assert.Equal(t, ir.TypeFloat, score.Type())
	assert.Equal(t, ir.TypeBool, active.Type())
	assert.Same(t, users, id.Table())
	assert.Equal(t, "Users.name", name.String())

	cols := users.Columns()
	require.Len(t, cols, 4)
	assert.Equal(t, "id", cols[0].Name())
	assert.Equal(t, "active", cols[3].Name())
}

func TestDefiner_DuplicateColumnPanics(t *testing.T) {
	d := NewDefiner("Users")
	Int(d, "id")
	assert.Panics(t, func() { String(d, "id") })
}

func TestDefiner_Add(t *testing.T) {
	d := NewDefiner("Events")
	ref, err := d.Add("kind", ir.TypeString)
	require.NoError(t, err)
	assert.Equal(t, "kind", ref.Name())
	assert.Equal(t, ir.TypeString, ref.Type())

	_, err = d.Add("kind", ir.TypeInt)
	assert.ErrorContains(t, err, "duplicate column")

	_, err = d.Add("", ir.TypeInt)
	assert.ErrorContains(t, err, "column name is required")

	_, err = d.Add("blob", ir.Type("bytes"))
	assert.ErrorContains(t, err, "unknown type")
}

func TestDefiner_SealedRejectsAdd(t *testing.T) {
	d := NewDefiner("Events")
	_, err := d.Add("kind", ir.TypeString)
	require.NoError(t, err)
	events := d.Seal()
	assert.True(t, events.Sealed())

	_, err = d.Add("late", ir.TypeInt)
	assert.ErrorContains(t, err, "sealed")
	assert.Len(t, events.Columns(), 1)
}

func TestTable_ColumnsIsCopy(t *testing.T) {
	d := NewDefiner("T")
	Int(d, "a")
	table := d.Seal()

	cols := table.Columns()
	cols[0] = nil
	assert.NotNil(t, table.Columns()[0])
}

func TestTable_Has(t *testing.T) {
	du := NewDefiner("Users")
	userName := String(du, "name")
	users := du.Seal()

	dp := NewDefiner("Products")
	productName := String(dp, "name")
	products := dp.Seal()

	assert.True(t, users.Has(userName))
	assert.False(t, users.Has(productName), "same name on another table is not a member")
	assert.True(t, products.Has(productName))
	assert.False(t, users.Has(nil))

	var none *Table
	assert.False(t, none.Has(userName))
}

func TestTable_HasChecksType(t *testing.T) {
	d := NewDefiner("Users")
	String(d, "name")
	users := d.Seal()

	forged := Column[int64]{table: users, name: "name"}
	assert.False(t, users.Has(forged))
}

func TestTyped(t *testing.T) {
	d := NewDefiner("Users")
	ref, err := d.Add("age", ir.TypeInt)
	require.NoError(t, err)
	d.Seal()

	age, ok := Typed[int64](ref)
	require.True(t, ok)
	assert.True(t, SameColumn(ref, age))

	_, ok = Typed[string](ref)
	assert.False(t, ok)
}

func TestNormalize_NFC(t *testing.T) {
	d := NewDefiner("Cafe\u0301")
	String(d, "na\u0308me")
	table := d.Seal()

	assert.Equal(t, "Caf\u00e9", table.Name())
	_, ok := table.Column("n\u00e4me")
	assert.True(t, ok)
}
