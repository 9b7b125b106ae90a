// Package schema provides the static description of tables and their typed
// columns.
//
// Tables are defined once at startup and never change afterwards:
//
//	d := schema.NewDefiner("Users")
//	id := schema.Int(d, "id")
//	name := schema.String(d, "name")
//	users := d.Seal()
//
// Every column keeps a back-reference to the *Table that owns it, so
// membership is a pointer comparison plus a name/type lookup. No reflection
// is involved.
//
// A Registry maps table names to tables for code that only has names to
// go on (query files, the CLI). Registries are read-only once populated and
// safe for concurrent readers.
//
// Tables can also be loaded from CUE:
//
//	table: Users: {
//		id:   int
//		name: string
//		age:  int
//	}
//
// Field order in the CUE source is the column order of the table.
package schema
