package generic

import (
	"encoding/json"
	"fmt"
	"io"
)

// Describable has a human-readable description.
type Describable interface {
	Description() string
}

// DescribableMarshaler is both Describable and JSON-serializable.
type DescribableMarshaler interface {
	Describable
	json.Marshaler
}

// DebugDescription returns the description of an item that also knows how
// to serialize itself.
func DebugDescription[T DescribableMarshaler](item T) string {
	return item.Description()
}

// PrintListSize writes "List size: N" for a list of any element type.
func PrintListSize[T any](w io.Writer, list []T) error {
	_, err := fmt.Fprintf(w, "List size: %d\n", len(list))
	return err
}
