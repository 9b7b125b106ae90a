package querysql

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roach88/typedsql/internal/catalog"
	"github.com/roach88/typedsql/internal/ir"
	"github.com/roach88/typedsql/internal/queryir"
	"github.com/roach88/typedsql/internal/schema"
)

func cols(c ...schema.ColumnRef) []schema.ColumnRef { return c }

func TestCompile_Scenarios(t *testing.T) {
	users := catalog.Users
	products := catalog.Products

	tests := []struct {
		name   string
		table  *schema.Table
		cols   []schema.ColumnRef
		filter func(s *queryir.Scope) queryir.Fragment
		want   string
	}{
		{
			name:  "no filter",
			table: users.Table,
			cols:  cols(users.Name, users.Age),
			want:  "SELECT name, age FROM Users",
		},
		{
			name:   "integer equality",
			table:  users.Table,
			cols:   cols(users.Name),
			filter: func(s *queryir.Scope) queryir.Fragment { return queryir.Eq(s, users.ID, 100) },
			want:   "SELECT name FROM Users WHERE id = 100",
		},
		{
			name:   "string equality",
			table:  users.Table,
			cols:   cols(users.ID, users.Age),
			filter: func(s *queryir.Scope) queryir.Fragment { return queryir.Eq(s, users.Name, "Alice") },
			want:   "SELECT id, age FROM Users WHERE name = 'Alice'",
		},
		{
			name:  "range",
			table: users.Table,
			cols:  cols(users.Name),
			filter: func(s *queryir.Scope) queryir.Fragment {
				return s.And(queryir.Gt(s, users.Age, 18), queryir.Lt(s, users.Age, 65))
			},
			want: "SELECT name FROM Users WHERE age > 18 AND age < 65",
		},
		{
			name:  "nested or",
			table: users.Table,
			cols:  cols(users.Name, users.Age),
			filter: func(s *queryir.Scope) queryir.Fragment {
				return s.And(
					queryir.Gt(s, users.Age, 25),
					s.Or(queryir.Eq(s, users.Name, "Alice"), queryir.Eq(s, users.Name, "Bob")),
				)
			},
			want: "SELECT name, age FROM Users WHERE age > 25 AND (name = 'Alice' OR name = 'Bob')",
		},
		{
			name:  "composite on both sides",
			table: users.Table,
			cols:  cols(users.ID),
			filter: func(s *queryir.Scope) queryir.Fragment {
				return s.Or(
					s.And(queryir.Gt(s, users.Age, 18), queryir.Lt(s, users.Age, 30)),
					s.And(queryir.Gt(s, users.Age, 60), queryir.Lt(s, users.Age, 70)),
				)
			},
			want: "SELECT id FROM Users WHERE (age > 18 AND age < 30) OR (age > 60 AND age < 70)",
		},
		{
			name:   "integer IN",
			table:  users.Table,
			cols:   cols(users.Name),
			filter: func(s *queryir.Scope) queryir.Fragment { return queryir.In(s, users.ID, 1, 2, 3) },
			want:   "SELECT name FROM Users WHERE id IN (1, 2, 3)",
		},
		{
			name:   "string IN",
			table:  users.Table,
			cols:   cols(users.ID),
			filter: func(s *queryir.Scope) queryir.Fragment { return queryir.In(s, users.Name, "Alice", "Bob") },
			want:   "SELECT id FROM Users WHERE name IN ('Alice', 'Bob')",
		},
		{
			name:   "empty IN",
			table:  users.Table,
			cols:   cols(users.ID),
			filter: func(s *queryir.Scope) queryir.Fragment { return queryir.In[int64](s, users.ID) },
			want:   "SELECT id FROM Users WHERE id IN ()",
		},
		{
			name:  "products float and int",
			table: products.Table,
			cols:  cols(products.ProductID, products.Price),
			filter: func(s *queryir.Scope) queryir.Fragment {
				return s.And(queryir.Gt(s, products.Price, 50.0), queryir.Lt(s, products.StockCount, 10))
			},
			want: "SELECT product_id, price FROM Products WHERE price > 50.0 AND stock_count < 10",
		},
		{
			name:   "fractional float",
			table:  products.Table,
			cols:   cols(products.Name),
			filter: func(s *queryir.Scope) queryir.Fragment { return queryir.Lt(s, products.Price, 99.99) },
			want:   "SELECT name FROM Products WHERE price < 99.99",
		},
		{
			name:   "quote escaping",
			table:  users.Table,
			cols:   cols(users.ID),
			filter: func(s *queryir.Scope) queryir.Fragment { return queryir.Eq(s, users.Name, "O'Brien") },
			want:   "SELECT id FROM Users WHERE name = 'O''Brien'",
		},
		{
			name:   "null",
			table:  users.Table,
			cols:   cols(users.ID),
			filter: func(s *queryir.Scope) queryir.Fragment { return s.Eq(users.Name, nil) },
			want:   "SELECT id FROM Users WHERE name = NULL",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sel := queryir.Select{Columns: tt.cols, From: tt.table}
			if tt.filter != nil {
				s := queryir.NewScope(tt.table)
				sel.Filter = tt.filter(s)
				require.NoError(t, s.Err())
			}

			sql, err := Render(sel)
			require.NoError(t, err)
			assert.Equal(t, tt.want, sql)
		})
	}
}

func TestCompile_BoolLiteral(t *testing.T) {
	d := schema.NewDefiner("Flags")
	id := schema.Int(d, "id")
	enabled := schema.Bool(d, "enabled")
	flags := d.Seal()

	s := queryir.NewScope(flags)
	sel := queryir.Select{
		Columns: cols(id),
		From:    flags,
		Filter:  s.Or(queryir.Eq(s, enabled, true), queryir.Eq(s, enabled, false)),
	}

	sql, err := Render(sel)
	require.NoError(t, err)
	assert.Equal(t, "SELECT id FROM Flags WHERE enabled = true OR enabled = false", sql)
}

func TestCompile_Incomplete(t *testing.T) {
	users := catalog.Users

	_, err := Render(queryir.Select{From: users.Table})
	var e *ir.Error
	require.ErrorAs(t, err, &e)
	assert.Equal(t, ir.ErrCodeIncompleteQuery, e.Code)
	assert.Equal(t, []ir.Stage{ir.StageColumns}, e.Stages)

	_, err = Render(queryir.Select{Columns: cols(users.Name)})
	require.ErrorAs(t, err, &e)
	assert.Equal(t, []ir.Stage{ir.StageTable}, e.Stages)

	_, err = Render(queryir.Select{})
	require.ErrorAs(t, err, &e)
	assert.Equal(t, []ir.Stage{ir.StageColumns, ir.StageTable}, e.Stages)
}

func TestCompile_FailedLeafSurfaces(t *testing.T) {
	users := catalog.Users
	s := queryir.NewScope(users.Table)
	sel := queryir.Select{
		Columns: cols(users.Name),
		From:    users.Table,
		Filter:  s.And(s.Eq(users.ID, 1), s.Eq(users.ID, "one")),
	}

	sql, err := Render(sel)
	assert.Empty(t, sql)
	assert.True(t, ir.IsCode(err, ir.ErrCodeTypeMismatch))
}

func TestCompile_NilChild(t *testing.T) {
	users := catalog.Users
	sel := queryir.Select{
		Columns: cols(users.Name),
		From:    users.Table,
		Filter:  queryir.Or(nil, queryir.Comparison{Column: users.ID, Op: queryir.OpEq, Value: ir.Int(1)}),
	}

	_, err := Render(sel)
	assert.ErrorContains(t, err, "nil predicate fragment")
}

func TestCompileParams(t *testing.T) {
	products := catalog.Products
	s := queryir.NewScope(products.Table)
	sel := queryir.Select{
		Columns: cols(products.ProductID, products.Price),
		From:    products.Table,
		Filter: s.And(
			queryir.Gt(s, products.Price, 50.0),
			s.Or(queryir.In(s, products.Name, "a", "b"), s.Eq(products.Name, nil)),
		),
	}
	require.NoError(t, s.Err())

	sql, params, err := NewSQLCompiler().CompileParams(sel)
	require.NoError(t, err)

	assert.Equal(t, "SELECT product_id, price FROM Products WHERE price > ? AND (name IN (?, ?) OR name = ?)", sql)
	assert.Equal(t, []any{50.0, "a", "b", nil}, params)
	assert.NotContains(t, sql, "'a'")
}

func TestCompileParams_CustomPlaceholder(t *testing.T) {
	users := catalog.Users
	sel := queryir.Select{
		Columns: cols(users.Name),
		From:    users.Table,
		Filter:  queryir.Comparison{Column: users.ID, Op: queryir.OpEq, Value: ir.Int(7)},
	}

	c := &SQLCompiler{Placeholder: "$?"}
	sql, params, err := c.CompileParams(sel)
	require.NoError(t, err)
	assert.Equal(t, "SELECT name FROM Users WHERE id = $?", sql)
	assert.Equal(t, []any{int64(7)}, params)
}

func TestCompileParams_NoFilter(t *testing.T) {
	users := catalog.Users
	sql, params, err := NewSQLCompiler().CompileParams(queryir.Select{Columns: cols(users.Name), From: users.Table})
	require.NoError(t, err)
	assert.Equal(t, "SELECT name FROM Users", sql)
	assert.Nil(t, params)
}

func TestCompiler_SharedAcrossCalls(t *testing.T) {
	users := catalog.Users
	c := NewSQLCompiler()
	sel := queryir.Select{
		Columns: cols(users.Name),
		From:    users.Table,
		Filter:  queryir.Comparison{Column: users.ID, Op: queryir.OpEq, Value: ir.Int(1)},
	}

	_, first, err := c.CompileParams(sel)
	require.NoError(t, err)
	_, second, err := c.CompileParams(sel)
	require.NoError(t, err)
	assert.Equal(t, first, second)
	assert.Len(t, second, 1)
}
