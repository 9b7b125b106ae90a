package generic

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFindMaximum(t *testing.T) {
	_, ok := FindMaximum([]int{})
	assert.False(t, ok)

	n, ok := FindMaximum([]int{1, 5, 2, -3})
	assert.True(t, ok)
	assert.Equal(t, 5, n)

	s, _ := FindMaximum([]string{"Apple", "Banana", "Zebra", "Cat"})
	assert.Equal(t, "Zebra", s)

	f, _ := FindMaximum([]float64{1.0, 3.14, 2.5, 0.99})
	assert.Equal(t, 3.14, f)

	single, ok := FindMaximum([]string{"Only"})
	assert.True(t, ok)
	assert.Equal(t, "Only", single)
}

func TestFilterByType(t *testing.T) {
	mixed := []any{1, "go", 2.5, true, 3, "generics", int64(4)}

	assert.Equal(t, []int{1, 3}, FilterByType[int](mixed))
	assert.Equal(t, []string{"go", "generics"}, FilterByType[string](mixed))
	assert.Equal(t, []float64{2.5}, FilterByType[float64](mixed))
	assert.Equal(t, []bool{true}, FilterByType[bool](mixed))
	assert.Equal(t, []int64{4}, FilterByType[int64](mixed))
	assert.Empty(t, FilterByType[rune](mixed))
	assert.Empty(t, FilterByType[int](nil))
}

type named interface{ Name() string }

type dog struct{}

func (dog) Name() string { return "dog" }

func TestFilterByType_Interface(t *testing.T) {
	got := FilterByType[named]([]any{dog{}, "cat", dog{}})
	assert.Len(t, got, 2)
}
