// Package querysql renders queryir.Select descriptors to SQL text.
//
// Two modes share one traversal:
//   - Compile inlines every literal using its own rendering rule
//     (strings quoted, floats with a decimal point, NULL).
//   - CompileParams emits "?" placeholders and returns the literal values
//     in order, ready for database/sql.
//
// Output shape:
//
//	SELECT <c1, c2, ...> FROM <table>[ WHERE <predicate>]
//
// Identifiers are emitted verbatim. A composite child of AND/OR is wrapped in
// parentheses; leaves never are.
package querysql

import (
	"fmt"
	"strings"

	"github.com/roach88/typedsql/internal/ir"
	"github.com/roach88/typedsql/internal/queryir"
)

// SQLCompiler compiles queryir.Select to SQL.
type SQLCompiler struct {
	// Placeholder is the parameter marker used by CompileParams.
	// Defaults to "?".
	Placeholder string
}

// NewSQLCompiler creates a new SQLCompiler.
func NewSQLCompiler() *SQLCompiler {
	return &SQLCompiler{Placeholder: "?"}
}

// Render compiles sel with literals inlined using a default compiler.
func Render(sel queryir.Select) (string, error) {
	return NewSQLCompiler().Compile(sel)
}

// Compile converts sel to SQL with every literal inlined.
//
// Fails with INCOMPLETE_QUERY if columns or table are missing. No partial
// SQL is ever returned.
func (c *SQLCompiler) Compile(sel queryir.Select) (string, error) {
	w := &writer{compiler: c}
	sql, err := w.compileSelect(sel)
	if err != nil {
		return "", err
	}
	return sql, nil
}

// CompileParams converts sel to parameterized SQL.
// Returns (sql, params, error); params holds one Go value per placeholder.
func (c *SQLCompiler) CompileParams(sel queryir.Select) (string, []any, error) {
	w := &writer{compiler: c, parameterize: true}
	sql, err := w.compileSelect(sel)
	if err != nil {
		return "", nil, err
	}
	return sql, w.params, nil
}

// writer carries per-call state so a SQLCompiler can be shared.
type writer struct {
	compiler     *SQLCompiler
	parameterize bool
	params       []any
}

func (w *writer) compileSelect(sel queryir.Select) (string, error) {
	if missing := sel.MissingStages(); len(missing) > 0 {
		return "", ir.NewIncompleteQuery(missing...)
	}

	names := make([]string, len(sel.Columns))
	for i, col := range sel.Columns {
		if col == nil {
			return "", fmt.Errorf("nil column at position %d", i)
		}
		names[i] = col.Name()
	}

	parts := []string{
		"SELECT " + strings.Join(names, ", "),
		"FROM " + sel.From.Name(),
	}
	if sel.Filter != nil {
		where, err := w.compileFragment(sel.Filter)
		if err != nil {
			return "", fmt.Errorf("compile filter: %w", err)
		}
		parts = append(parts, "WHERE "+where)
	}

	return strings.TrimSpace(strings.Join(parts, " ")), nil
}

// compileFragment compiles a predicate node to its SQL text.
func (w *writer) compileFragment(f queryir.Fragment) (string, error) {
	switch frag := f.(type) {
	case nil:
		return "", fmt.Errorf("nil predicate fragment")
	case queryir.Comparison:
		return fmt.Sprintf("%s %s %s", frag.Column.Name(), frag.Op, w.literal(frag.Value)), nil
	case queryir.InList:
		items := make([]string, len(frag.Values))
		for i, v := range frag.Values {
			items[i] = w.literal(v)
		}
		return fmt.Sprintf("%s IN (%s)", frag.Column.Name(), strings.Join(items, ", ")), nil
	case queryir.Composite:
		left, err := w.compileChild(frag.Left)
		if err != nil {
			return "", err
		}
		right, err := w.compileChild(frag.Right)
		if err != nil {
			return "", err
		}
		return fmt.Sprintf("%s %s %s", left, frag.Logic, right), nil
	default:
		if err := queryir.FailedLeaf(f); err != nil {
			return "", err
		}
		return "", fmt.Errorf("unsupported fragment type: %T", f)
	}
}

// compileChild parenthesizes composite children.
func (w *writer) compileChild(f queryir.Fragment) (string, error) {
	sql, err := w.compileFragment(f)
	if err != nil {
		return "", err
	}
	if f.IsComposite() {
		return "(" + sql + ")", nil
	}
	return sql, nil
}

// literal renders v inline or records it as a parameter.
func (w *writer) literal(v ir.Value) string {
	if v == nil {
		v = ir.Null{}
	}
	if !w.parameterize {
		return v.SQL()
	}
	w.params = append(w.params, ir.Native(v))
	return w.compiler.placeholder()
}

func (c *SQLCompiler) placeholder() string {
	if c == nil || c.Placeholder == "" {
		return "?"
	}
	return c.Placeholder
}
