package generic

// Container holds at most one value of type T.
// The zero value is an empty container.
type Container[T any] struct {
	item T
	set  bool
}

// Put stores item, replacing any previous value.
func (c *Container[T]) Put(item T) {
	c.item = item
	c.set = true
}

// Get returns the stored value and whether one has been put.
func (c *Container[T]) Get() (T, bool) {
	return c.item, c.set
}

// ProcessItem applies fn to the stored value. It reports false, without
// calling fn, when the container is empty. The container is not modified.
func ProcessItem[T, R any](c *Container[T], fn func(T) R) (R, bool) {
	item, ok := c.Get()
	if !ok {
		var zero R
		return zero, false
	}
	return fn(item), true
}
