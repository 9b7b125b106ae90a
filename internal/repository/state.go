// Package repository streams the loading state of a value over a channel.
//
// A stream emits DataState values: Loading while the value is being
// fetched, Success once it is available, Error when fetching failed.
// Streams end when the producer is done or the context is cancelled.
package repository

import (
	"context"
)

// DataState is one of Loading, Success or Error.
// This is a sealed interface - only types in this package implement it.
type DataState[T any] interface {
	dataState()
}

// Loading means the value is not available yet.
type Loading[T any] struct{}

// Success carries a fetched value.
type Success[T any] struct {
	Data T
}

// Error describes a failed fetch.
type Error[T any] struct {
	Message string
}

func (Loading[T]) dataState() {}
func (Success[T]) dataState() {}
func (Error[T]) dataState()   {}

func (e Error[T]) Error() string { return e.Message }

// Repository produces a stream of states for values of type T.
type Repository[T any] interface {
	// Stream starts a new stream. The channel is closed when the producer
	// is done or ctx is cancelled.
	Stream(ctx context.Context) <-chan DataState[T]
}

// staticRepository replays a fixed list of states.
type staticRepository[T any] struct {
	states []DataState[T]
}

// FromStates returns a Repository whose streams emit states in order and
// then close.
func FromStates[T any](states ...DataState[T]) Repository[T] {
	return &staticRepository[T]{states: append([]DataState[T](nil), states...)}
}

func (r *staticRepository[T]) Stream(ctx context.Context) <-chan DataState[T] {
	ch := make(chan DataState[T])
	go func() {
		defer close(ch)
		for _, s := range r.states {
			if !send(ctx, ch, s) {
				return
			}
		}
	}()
	return ch
}

// Collect drains a stream until it closes or ctx is cancelled.
func Collect[T any](ctx context.Context, repo Repository[T]) []DataState[T] {
	var states []DataState[T]
	for s := range repo.Stream(ctx) {
		states = append(states, s)
	}
	return states
}

// send delivers s unless ctx is cancelled first.
func send[T any](ctx context.Context, ch chan<- DataState[T], s DataState[T]) bool {
	select {
	case ch <- s:
		return true
	case <-ctx.Done():
		return false
	}
}
