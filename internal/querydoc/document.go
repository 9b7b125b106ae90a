package querydoc

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/roach88/typedsql/internal/query"
	"github.com/roach88/typedsql/internal/schema"
)

// Document is a parsed query document.
type Document struct {
	// Schema is an optional directory of CUE table definitions.
	// Relative paths are resolved against the document's directory by Load.
	Schema string `yaml:"schema,omitempty"`

	// Steps are the builder calls, in order.
	Steps []Step `yaml:"steps"`
}

// Step is one builder call. Exactly one field is set.
type Step struct {
	Select []string   `yaml:"select,omitempty"`
	From   string     `yaml:"from,omitempty"`
	Where  *Condition `yaml:"where,omitempty"`
}

// Condition is a where predicate in document form.
type Condition struct {
	Column string      `yaml:"column,omitempty"`
	Op     string      `yaml:"op,omitempty"`
	Value  yaml.Node   `yaml:"value,omitempty"` // Kind 0 when absent; "null" is a scalar
	In     []any       `yaml:"in,omitempty"`
	And    []Condition `yaml:"and,omitempty"`
	Or     []Condition `yaml:"or,omitempty"`
}

// Parse decodes a document. Unknown fields are rejected.
func Parse(r io.Reader) (*Document, error) {
	var doc Document
	decoder := yaml.NewDecoder(r)
	decoder.KnownFields(true)
	if err := decoder.Decode(&doc); err != nil {
		return nil, fmt.Errorf("failed to parse YAML: %w", err)
	}
	if err := doc.Validate(); err != nil {
		return nil, fmt.Errorf("invalid query document: %w", err)
	}
	return &doc, nil
}

// Load reads and parses the document at path.
func Load(path string) (*Document, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read query file: %w", err)
	}
	doc, err := Parse(bytes.NewReader(data))
	if err != nil {
		return nil, err
	}
	doc.Schema = resolveRelative(path, doc.Schema)
	return doc, nil
}

// Validate checks the document's shape. It does not resolve names.
func (d *Document) Validate() error {
	if len(d.Steps) == 0 {
		return fmt.Errorf("steps list is required and must be non-empty")
	}
	for i, step := range d.Steps {
		if err := step.validate(); err != nil {
			return fmt.Errorf("steps[%d]: %w", i, err)
		}
	}
	return nil
}

func (s Step) validate() error {
	set := 0
	if s.Select != nil {
		set++
	}
	if s.From != "" {
		set++
	}
	if s.Where != nil {
		set++
	}
	if set != 1 {
		return fmt.Errorf("exactly one of select, from or where is required")
	}
	if s.Where != nil {
		return s.Where.validate("where")
	}
	return nil
}

func (c *Condition) validate(path string) error {
	forms := 0
	if c.Op != "" || c.hasValue() {
		forms++
	}
	if c.In != nil {
		forms++
	}
	if c.And != nil {
		forms++
	}
	if c.Or != nil {
		forms++
	}
	if forms != 1 {
		return fmt.Errorf("%s: exactly one of op/value, in, and, or is required", path)
	}

	switch {
	case c.And != nil:
		return validatePair(path+".and", c.And, c.Column)
	case c.Or != nil:
		return validatePair(path+".or", c.Or, c.Column)
	case c.Column == "":
		return fmt.Errorf("%s: column is required", path)
	case c.In == nil && (c.Op == "" || !c.hasValue()):
		return fmt.Errorf("%s: op and value are both required", path)
	}
	return nil
}

func (c *Condition) hasValue() bool { return c.Value.Kind != 0 }

func validatePair(path string, pair []Condition, column string) error {
	if column != "" {
		return fmt.Errorf("%s: column is not allowed on a connective", path)
	}
	if len(pair) != 2 {
		return fmt.Errorf("%s: exactly two conditions are required, got %d", path, len(pair))
	}
	for i := range pair {
		if err := pair[i].validate(fmt.Sprintf("%s[%d]", path, i)); err != nil {
			return err
		}
	}
	return nil
}

// Apply runs the document's steps against d in order.
// It stops at the first failure and returns it.
func (d *Document) Apply(reg *schema.Registry, q *query.Dynamic) error {
	for i, step := range d.Steps {
		if err := applyStep(reg, q, step); err != nil {
			return fmt.Errorf("steps[%d]: %w", i, err)
		}
	}
	return nil
}

// Render applies the document to a fresh builder and renders inline SQL.
func (d *Document) Render(reg *schema.Registry) (string, error) {
	q := query.NewDynamic()
	if err := d.Apply(reg, q); err != nil {
		return "", err
	}
	return q.Build()
}

// RenderParams applies the document to a fresh builder and renders
// parameterized SQL.
func (d *Document) RenderParams(reg *schema.Registry) (string, []any, error) {
	q := query.NewDynamic()
	if err := d.Apply(reg, q); err != nil {
		return "", nil, err
	}
	return q.BuildParams()
}

func applyStep(reg *schema.Registry, q *query.Dynamic, step Step) error {
	sel := q.Descriptor()

	// Ordering errors are reported by the builder before any name is
	// resolved, so a misplaced step fails the same way in code and in YAML.
	switch {
	case step.Select != nil:
		if q.Err() != nil || sel.HasColumns() {
			return q.Select()
		}
		cols := make([]schema.ColumnRef, len(step.Select))
		for i, ref := range step.Select {
			col, err := resolveColumn(reg, sel.From, ref)
			if err != nil {
				return err
			}
			cols[i] = col
		}
		return q.Select(cols...)

	case step.From != "":
		if q.Err() != nil || sel.HasTable() {
			return q.From(nil)
		}
		table, err := reg.Table(step.From)
		if err != nil {
			return err
		}
		return q.From(table)

	default:
		if q.Err() != nil || !sel.HasTable() || sel.HasFilter() {
			return q.Where(nil)
		}
		pred := resolveCondition(reg, sel.From, step.Where)
		if err := pred.firstErr(); err != nil {
			return err
		}
		return q.Where(pred.build)
	}
}

// resolveRelative joins a relative dir onto the directory holding file.
func resolveRelative(file, dir string) string {
	if dir == "" || filepath.IsAbs(dir) {
		return dir
	}
	return filepath.Join(filepath.Dir(file), dir)
}
