// Package testutil provides deterministic stand-ins for time-driven code.
package testutil

import (
	"sync"
	"time"
)

// ManualTicker is a ticker that only fires when Tick is called.
//
// It satisfies repository.Ticker, so periodic producers can be stepped one
// tick at a time in tests.
//
// Thread-safety: All methods are safe for concurrent use.
type ManualTicker struct {
	mu      sync.Mutex
	c       chan time.Time
	now     time.Time
	stopped bool
}

// NewManualTicker creates a ticker whose first tick reports start.
func NewManualTicker(start time.Time) *ManualTicker {
	return &ManualTicker{c: make(chan time.Time), now: start}
}

// C returns the tick channel.
func (t *ManualTicker) C() <-chan time.Time { return t.c }

// Tick delivers one tick and blocks until the consumer receives it.
// It reports false if the ticker was stopped or the tick was not received
// within timeout.
func (t *ManualTicker) Tick(timeout time.Duration) bool {
	t.mu.Lock()
	if t.stopped {
		t.mu.Unlock()
		return false
	}
	now := t.now
	t.now = t.now.Add(time.Second)
	t.mu.Unlock()

	select {
	case t.c <- now:
		return true
	case <-time.After(timeout):
		return false
	}
}

// Stop prevents further ticks. The channel is not closed, matching
// time.Ticker.
func (t *ManualTicker) Stop() {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.stopped = true
}

// Stopped reports whether Stop has been called.
func (t *ManualTicker) Stopped() bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.stopped
}
