package ir

import "fmt"

// Type is the declared value type of a column.
type Type string

const (
	TypeInt    Type = "int"
	TypeFloat  Type = "float"
	TypeString Type = "string"
	TypeBool   Type = "bool"
)

// Types lists every column type in declaration order.
var Types = []Type{TypeInt, TypeFloat, TypeString, TypeBool}

// Valid reports whether t is one of the closed set of column types.
func (t Type) Valid() bool {
	switch t {
	case TypeInt, TypeFloat, TypeString, TypeBool:
		return true
	default:
		return false
	}
}

// ParseType converts a type name ("int", "float", "string", "bool") to a Type.
func ParseType(name string) (Type, error) {
	t := Type(name)
	if !t.Valid() {
		return "", fmt.Errorf("unknown column type %q: must be one of %v", name, Types)
	}
	return t, nil
}

// Scalar is the set of Go types a typed column can hold.
// It mirrors Type one to one: int64, float64, string, bool.
type Scalar interface {
	int64 | float64 | string | bool
}

// TypeFor returns the column Type that corresponds to the Go type V.
func TypeFor[V Scalar]() Type {
	var zero V
	switch any(zero).(type) {
	case int64:
		return TypeInt
	case float64:
		return TypeFloat
	case string:
		return TypeString
	default:
		return TypeBool
	}
}
