package generic

import (
	"fmt"
	"strconv"
)

// Mapper converts one value into another.
type Mapper[A, B any] interface {
	Map(input A) (B, error)
}

// StringToIntMapper parses decimal integers.
type StringToIntMapper struct{}

func (StringToIntMapper) Map(input string) (int, error) {
	return strconv.Atoi(input)
}

// MapperFunc adapts a function to Mapper.
type MapperFunc[A, B any] func(A) (B, error)

func (f MapperFunc[A, B]) Map(input A) (B, error) { return f(input) }

// ApplyMapper maps every element of list in order. It stops at the first
// failure and reports its index.
func ApplyMapper[A, B any](list []A, mapper Mapper[A, B]) ([]B, error) {
	out := make([]B, len(list))
	for i, item := range list {
		v, err := mapper.Map(item)
		if err != nil {
			return nil, fmt.Errorf("element %d: %w", i, err)
		}
		out[i] = v
	}
	return out, nil
}
