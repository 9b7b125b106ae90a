package generic

import (
	"fmt"
	"io"
)

// DataSink consumes values one at a time.
type DataSink[T any] interface {
	Consume(item T)
}

// SinkFunc adapts a function to DataSink.
type SinkFunc[T any] func(item T)

func (f SinkFunc[T]) Consume(item T) { f(item) }

// IntDataSink prints each consumed integer to W without a separator.
// Consume cannot return an error, so the first write error is kept and
// reported by Err; later items are dropped.
type IntDataSink struct {
	W   io.Writer
	err error
}

func (s *IntDataSink) Consume(item int) {
	if s.err != nil {
		return
	}
	_, s.err = fmt.Fprint(s.W, item)
}

// Err returns the first write error, or nil.
func (s *IntDataSink) Err() error { return s.err }

// ProcessAndConsume hands n to sink.
func ProcessAndConsume(n int, sink DataSink[int]) {
	sink.Consume(n)
}

// Contramap adapts a sink of a wider type B into a sink of A by converting
// every item with fn first. A sink that accepts any number can then be used
// where a DataSink[int] is expected:
//
//	ProcessAndConsume(42, Contramap(numbers, func(n int) float64 { return float64(n) }))
func Contramap[A, B any](sink DataSink[B], fn func(A) B) DataSink[A] {
	return SinkFunc[A](func(item A) { sink.Consume(fn(item)) })
}
