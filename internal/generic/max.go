package generic

import (
	"cmp"
	"slices"
)

// FindMaximum returns the largest item. It reports false for an empty list.
func FindMaximum[T cmp.Ordered](items []T) (T, bool) {
	if len(items) == 0 {
		var zero T
		return zero, false
	}
	return slices.Max(items), true
}
