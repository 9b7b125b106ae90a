// Package catalog declares the static demo schema: a Users table and a
// Products table with typed column handles, registered in one Registry.
//
// Usage:
//
//	q, _ := query.Select(query.New(), catalog.Users.Name, catalog.Users.Age)
//	q2, _ := query.From(q, catalog.Users.Table)
//	sql := query.Build(q2) // SELECT name, age FROM Users
package catalog

import "github.com/roach88/typedsql/internal/schema"

// UsersTable holds the typed columns of Users.
type UsersTable struct {
	Table *schema.Table
	ID    schema.Column[int64]
	Name  schema.Column[string]
	Age   schema.Column[int64]
}

// ProductsTable holds the typed columns of Products.
type ProductsTable struct {
	Table      *schema.Table
	ProductID  schema.Column[int64]
	Name       schema.Column[string]
	StockCount schema.Column[int64]
	Price      schema.Column[float64]
}

var (
	Users    = newUsers()
	Products = newProducts()

	registry = schema.MustNewRegistry(Users.Table, Products.Table)
)

// Registry returns the registry holding Users and Products.
func Registry() *schema.Registry { return registry }

func newUsers() UsersTable {
	d := schema.NewDefiner("Users")
	u := UsersTable{
		ID:   schema.Int(d, "id"),
		Name: schema.String(d, "name"),
		Age:  schema.Int(d, "age"),
	}
	u.Table = d.Seal()
	return u
}

func newProducts() ProductsTable {
	d := schema.NewDefiner("Products")
	p := ProductsTable{
		ProductID:  schema.Int(d, "product_id"),
		Name:       schema.String(d, "name"),
		StockCount: schema.Int(d, "stock_count"),
		Price:      schema.Float(d, "price"),
	}
	p.Table = d.Seal()
	return p
}
