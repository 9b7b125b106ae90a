package generic

import (
	"fmt"
	"io"
)

// DataSource produces a list of values.
type DataSource[T any] interface {
	Data() []T
}

// StringDataSource is a fixed source of "a", "b", "c".
type StringDataSource struct{}

func (StringDataSource) Data() []string { return []string{"a", "b", "c"} }

// SliceSource serves a fixed slice.
type SliceSource[T any] []T

func (s SliceSource[T]) Data() []T { return s }

// PrintData writes every item of src to w, one per line.
func PrintData[T any](w io.Writer, src DataSource[T]) error {
	for _, item := range src.Data() {
		if _, err := fmt.Fprintln(w, item); err != nil {
			return err
		}
	}
	return nil
}
