package schema

import (
	"fmt"
	"strings"
	"sync"

	"github.com/roach88/typedsql/internal/ir"
)

// Registry maps table names to their definitions.
//
// Registration happens at startup; afterwards the registry is only read and
// may be shared by any number of goroutines.
type Registry struct {
	mu     sync.RWMutex
	tables []*Table
	byName map[string]*Table
}

// NewRegistry creates a registry holding the given tables.
func NewRegistry(tables ...*Table) (*Registry, error) {
	r := &Registry{byName: make(map[string]*Table)}
	for _, t := range tables {
		if err := r.Register(t); err != nil {
			return nil, err
		}
	}
	return r, nil
}

// Register adds a table. The table is sealed if it was not already.
// Returns an error if a table with the same name is registered.
func (r *Registry) Register(t *Table) error {
	if t == nil {
		return fmt.Errorf("cannot register nil table")
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if r.byName == nil {
		r.byName = make(map[string]*Table)
	}
	if _, dup := r.byName[t.name]; dup {
		return fmt.Errorf("duplicate table name: %s", t.name)
	}
	t.sealed = true
	r.tables = append(r.tables, t)
	r.byName[t.name] = t
	return nil
}

// MustNewRegistry is like NewRegistry but panics on failure.
// Intended for package-level static schemas.
func MustNewRegistry(tables ...*Table) *Registry {
	r, err := NewRegistry(tables...)
	if err != nil {
		panic(err)
	}
	return r
}

// Lookup returns the table with the given name.
func (r *Registry) Lookup(name string) (*Table, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	t, ok := r.byName[normalize(name)]
	return t, ok
}

// Table returns the table with the given name or an UNKNOWN_TABLE error.
func (r *Registry) Table(name string) (*Table, error) {
	t, ok := r.Lookup(name)
	if !ok {
		return nil, ir.NewUnknownTable(name)
	}
	return t, nil
}

// Tables returns all tables in registration order.
func (r *Registry) Tables() []*Table {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]*Table, len(r.tables))
	copy(out, r.tables)
	return out
}

// ColumnsOf returns the ordered columns of t.
// Returns an UNKNOWN_TABLE error if t is not the instance registered under
// its name.
func (r *Registry) ColumnsOf(t *Table) ([]ColumnRef, error) {
	if t == nil {
		return nil, ir.NewUnknownTable("")
	}
	registered, ok := r.Lookup(t.name)
	if !ok || registered != t {
		return nil, ir.NewUnknownTable(t.name)
	}
	return t.Columns(), nil
}

// Resolve finds a column from a qualified "Table.column" reference.
func (r *Registry) Resolve(ref string) (ColumnRef, error) {
	tableName, columnName, ok := strings.Cut(ref, ".")
	if !ok || tableName == "" || columnName == "" {
		return nil, ir.NewUnknownColumn(ref, "")
	}
	t, err := r.Table(tableName)
	if err != nil {
		return nil, err
	}
	return ResolveIn(t, columnName)
}

// ResolveIn finds a column of t by its bare name.
func ResolveIn(t *Table, name string) (ColumnRef, error) {
	c, ok := t.Column(name)
	if !ok {
		return nil, ir.NewUnknownColumn(name, t.Name())
	}
	return c, nil
}
