package schema

import (
	"fmt"
	"os"
	"path/filepath"

	"cuelang.org/go/cue"
	"cuelang.org/go/cue/cuecontext"
	"cuelang.org/go/cue/errors"
	"cuelang.org/go/cue/load"
	"cuelang.org/go/cue/token"

	"github.com/roach88/typedsql/internal/ir"
)

// LoadCUE loads every .cue file in dir and registers the tables declared
// under the top-level "table" field.
func LoadCUE(dir string) (*Registry, error) {
	info, err := os.Stat(dir)
	if err != nil {
		return nil, fmt.Errorf("schema directory: %w", err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("not a directory: %s", dir)
	}

	files, err := FindCUEFiles(dir)
	if err != nil {
		return nil, fmt.Errorf("scanning %s: %w", dir, err)
	}
	if len(files) == 0 {
		return nil, fmt.Errorf("no CUE files found in %s", dir)
	}

	ctx := cuecontext.New()
	instances := load.Instances([]string{"."}, &load.Config{Dir: dir})
	if len(instances) == 0 {
		return nil, fmt.Errorf("no CUE instances loaded from %s", dir)
	}
	inst := instances[0]
	if inst.Err != nil {
		return nil, formatCUEError(inst.Err)
	}

	value := ctx.BuildInstance(inst)
	if err := value.Err(); err != nil {
		return nil, formatCUEError(err)
	}

	tables, err := CompileTables(value)
	if err != nil {
		return nil, err
	}
	return NewRegistry(tables...)
}

// CompileTables extracts table definitions from a CUE value.
//
// The value should contain a "table" struct whose fields are tables and
// whose nested fields are typed columns:
//
//	ctx := cuecontext.New()
//	v := ctx.CompileString(`table: Users: { id: int, name: string }`)
//	tables, err := CompileTables(v)
func CompileTables(v cue.Value) ([]*Table, error) {
	if err := v.Err(); err != nil {
		return nil, formatCUEError(err)
	}

	tablesVal := v.LookupPath(cue.ParsePath("table"))
	if !tablesVal.Exists() {
		return nil, &CompileError{
			Field:   "table",
			Message: "no tables declared",
			Pos:     v.Pos(),
		}
	}

	iter, err := tablesVal.Fields()
	if err != nil {
		return nil, formatCUEError(err)
	}

	var tables []*Table
	for iter.Next() {
		t, err := compileTable(iter.Label(), iter.Value())
		if err != nil {
			return nil, err
		}
		tables = append(tables, t)
	}
	return tables, nil
}

// compileTable builds one table from its CUE struct.
func compileTable(name string, v cue.Value) (*Table, error) {
	fields, err := v.Fields()
	if err != nil {
		return nil, formatCUEError(err)
	}

	d := NewDefiner(name)
	for fields.Next() {
		columnName := fields.Label()
		typ, err := extractType(fields.Value())
		if err != nil {
			return nil, err
		}
		if _, err := d.Add(columnName, typ); err != nil {
			return nil, &CompileError{
				Field:   fmt.Sprintf("table.%s.%s", name, columnName),
				Message: err.Error(),
				Pos:     fields.Value().Pos(),
			}
		}
	}

	t := d.Seal()
	if len(t.columns) == 0 {
		return nil, &CompileError{
			Field:   "table." + name,
			Message: "at least one column is required",
			Pos:     v.Pos(),
		}
	}
	return t, nil
}

// extractType converts a CUE kind to a column type.
// "number" (int | float) maps to float since it admits fractional values.
func extractType(v cue.Value) (ir.Type, error) {
	switch v.IncompleteKind() {
	case cue.IntKind:
		return ir.TypeInt, nil
	case cue.FloatKind, cue.NumberKind:
		return ir.TypeFloat, nil
	case cue.StringKind:
		return ir.TypeString, nil
	case cue.BoolKind:
		return ir.TypeBool, nil
	default:
		return "", &CompileError{
			Field:   "type",
			Message: fmt.Sprintf("unsupported column kind: %v", v.IncompleteKind()),
			Pos:     v.Pos(),
		}
	}
}

// FindCUEFiles returns the .cue files directly in dir, sorted. Files in
// subdirectories are not part of the package LoadCUE loads and are skipped.
func FindCUEFiles(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, err
	}
	var files []string
	for _, e := range entries {
		if !e.IsDir() && filepath.Ext(e.Name()) == ".cue" {
			files = append(files, filepath.Join(dir, e.Name()))
		}
	}
	return files, nil
}

// CompileError represents a schema compilation error with source position.
type CompileError struct {
	Field   string
	Message string
	Pos     token.Pos
}

func (e *CompileError) Error() string {
	if e.Pos.IsValid() {
		return fmt.Sprintf("%s:%d:%d: %s: %s",
			e.Pos.Filename(), e.Pos.Line(), e.Pos.Column(),
			e.Field, e.Message)
	}
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// formatCUEError extracts position info from CUE errors.
func formatCUEError(err error) error {
	if err == nil {
		return nil
	}

	errs := errors.Errors(err)
	if len(errs) == 0 {
		return err
	}

	first := errs[0]
	positions := errors.Positions(first)
	if len(positions) > 0 {
		return &CompileError{
			Field:   "cue",
			Message: first.Error(),
			Pos:     positions[0],
		}
	}
	return err
}
