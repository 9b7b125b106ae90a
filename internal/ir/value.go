package ir

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

// Value is a sealed interface representing a SQL literal.
// Only Null, Int, Float, Text and Bool implement it, and each variant
// carries its own rendering rule in SQL().
type Value interface {
	value() // Sealed - only these types implement it

	// Type returns the column type this literal is compatible with.
	// Null has no type and returns the empty Type.
	Type() Type

	// SQL renders the literal as SQL text.
	SQL() string
}

// Null represents the SQL NULL literal.
type Null struct{}

func (Null) value()      {}
func (Null) Type() Type  { return "" }
func (Null) SQL() string { return "NULL" }

// Int represents an integer literal. Always int64.
type Int int64

func (Int) value()     {}
func (Int) Type() Type { return TypeInt }

// SQL renders the integer in decimal.
func (v Int) SQL() string { return strconv.FormatInt(int64(v), 10) }

// Float represents a floating-point literal.
// NaN and infinities have no SQL literal form and are rejected by FromGo.
type Float float64

func (Float) value()     {}
func (Float) Type() Type { return TypeFloat }

// SQL renders the shortest decimal form that round-trips, always with a
// decimal point so that 50 stays distinguishable from the integer 50.
func (v Float) SQL() string {
	s := strconv.FormatFloat(float64(v), 'f', -1, 64)
	if !strings.Contains(s, ".") {
		s += ".0"
	}
	return s
}

// Text represents a string literal.
type Text string

func (Text) value()     {}
func (Text) Type() Type { return TypeString }

// SQL single-quotes the string, doubling embedded single quotes.
func (v Text) SQL() string {
	return "'" + strings.ReplaceAll(string(v), "'", "''") + "'"
}

// Bool represents a boolean literal.
type Bool bool

func (Bool) value()     {}
func (Bool) Type() Type { return TypeBool }

// SQL renders true or false.
func (v Bool) SQL() string { return strconv.FormatBool(bool(v)) }

// IsNull reports whether v is the NULL literal.
func IsNull(v Value) bool {
	_, ok := v.(Null)
	return ok
}

// ValueOf wraps a typed Go scalar as a Value.
func ValueOf[V Scalar](v V) Value {
	switch val := any(v).(type) {
	case int64:
		return Int(val)
	case float64:
		return Float(val)
	case string:
		return Text(val)
	default:
		return Bool(val.(bool))
	}
}

// FromGo converts a dynamic Go value into a Value.
//
// Accepted inputs: nil (Null), every signed and unsigned integer kind that
// fits in int64, float32/float64 (finite only), string, bool, and Value
// itself. Anything else is an INVALID_VALUE error.
func FromGo(v any) (Value, error) {
	switch val := v.(type) {
	case nil:
		return Null{}, nil
	case Value:
		return val, nil
	case int:
		return Int(val), nil
	case int8:
		return Int(val), nil
	case int16:
		return Int(val), nil
	case int32:
		return Int(val), nil
	case int64:
		return Int(val), nil
	case uint:
		return uintValue(uint64(val))
	case uint8:
		return Int(val), nil
	case uint16:
		return Int(val), nil
	case uint32:
		return Int(val), nil
	case uint64:
		return uintValue(val)
	case float32:
		return floatValue(float64(val))
	case float64:
		return floatValue(val)
	case string:
		return Text(val), nil
	case bool:
		return Bool(val), nil
	default:
		return nil, NewInvalidValue(fmt.Sprintf("unsupported literal type %T", v))
	}
}

func uintValue(n uint64) (Value, error) {
	if n > math.MaxInt64 {
		return nil, NewInvalidValue(fmt.Sprintf("integer %d overflows int64", n))
	}
	return Int(int64(n)), nil
}

func floatValue(f float64) (Value, error) {
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return nil, NewInvalidValue(fmt.Sprintf("float %v has no SQL literal form", f))
	}
	return Float(f), nil
}

// Native converts a Value back to the Go value a database/sql driver expects
// as a query argument. Null becomes nil.
func Native(v Value) any {
	switch val := v.(type) {
	case Int:
		return int64(val)
	case Float:
		return float64(val)
	case Text:
		return string(val)
	case Bool:
		return bool(val)
	default:
		return nil
	}
}
