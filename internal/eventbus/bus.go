// Package eventbus delivers events to listeners keyed by event type.
//
// A listener subscribed for type K receives every event dispatched as type T
// where T is assignable to K. Subscribing for an interface type therefore
// receives all events that implement it. Listeners run synchronously on the
// dispatching goroutine, grouped by the order in which their event types
// were first subscribed and then in subscription order.
package eventbus

import (
	"reflect"
	"slices"
	"sync"
)

// Listener receives events of type T.
type Listener[T any] interface {
	OnEvent(event T)
}

// ListenerFunc adapts a function to Listener.
// Function values are not comparable, so a ListenerFunc can only be removed
// with the cancel function returned by Subscribe.
type ListenerFunc[T any] func(event T)

func (f ListenerFunc[T]) OnEvent(event T) { f(event) }

// Bus is a type-keyed event bus. The zero value is ready to use.
// It is safe for concurrent use.
type Bus struct {
	mu     sync.RWMutex
	order  []reflect.Type // key types in first-subscription order
	byType map[reflect.Type][]*subscription
	nextID uint64
}

// subscription is one registered listener.
type subscription struct {
	id       uint64
	listener any // the Listener[K] as registered, for Unsubscribe
	deliver  func(event any) bool
}

// New creates an empty Bus.
func New() *Bus {
	return &Bus{}
}

// Subscribe registers l for events assignable to T. It returns a function
// that removes this registration; calling it more than once is a no-op.
func Subscribe[T any](b *Bus, l Listener[T]) (cancel func()) {
	key := reflect.TypeFor[T]()
	sub := &subscription{
		listener: l,
		deliver: func(event any) bool {
			e, ok := event.(T)
			if ok {
				l.OnEvent(e)
			}
			return ok
		},
	}

	b.mu.Lock()
	defer b.mu.Unlock()
	if b.byType == nil {
		b.byType = make(map[reflect.Type][]*subscription)
	}
	b.nextID++
	sub.id = b.nextID
	if _, seen := b.byType[key]; !seen {
		b.order = append(b.order, key)
	}
	b.byType[key] = append(b.byType[key], sub)

	var once sync.Once
	return func() {
		once.Do(func() { b.remove(key, func(s *subscription) bool { return s.id == sub.id }) })
	}
}

// Unsubscribe removes the first registration of l for T and reports whether
// one was found. Listeners whose dynamic type is not comparable (such as
// ListenerFunc) are never found; use the cancel function from Subscribe.
func Unsubscribe[T any](b *Bus, l Listener[T]) bool {
	if l == nil || !reflect.TypeOf(l).Comparable() {
		return false
	}
	return b.remove(reflect.TypeFor[T](), func(s *subscription) bool {
		return s.listener == any(l)
	})
}

func (b *Bus) remove(key reflect.Type, match func(*subscription) bool) bool {
	b.mu.Lock()
	defer b.mu.Unlock()

	subs := b.byType[key]
	for i, s := range subs {
		if match(s) {
			b.byType[key] = slices.Delete(subs, i, i+1)
			return true
		}
	}
	return false
}

// Dispatch delivers event to every listener subscribed for T or for a type
// T is assignable to, and returns the number of listeners called.
// Listeners added or removed during delivery take effect on the next
// Dispatch.
func Dispatch[T any](b *Bus, event T) int {
	eventType := reflect.TypeFor[T]()

	b.mu.RLock()
	var targets []*subscription
	for _, key := range b.order {
		if eventType.AssignableTo(key) {
			targets = append(targets, b.byType[key]...)
		}
	}
	b.mu.RUnlock()

	delivered := 0
	for _, s := range targets {
		if s.deliver(event) {
			delivered++
		}
	}
	return delivered
}

// Len returns the number of listeners subscribed for exactly T.
func Len[T any](b *Bus) int {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return len(b.byType[reflect.TypeFor[T]()])
}
