package generic

// FilterByType returns the items whose dynamic type is T, in order.
// When T is an interface type, every item implementing it is kept.
func FilterByType[T any](items []any) []T {
	out := make([]T, 0)
	for _, item := range items {
		if v, ok := item.(T); ok {
			out = append(out, v)
		}
	}
	return out
}
