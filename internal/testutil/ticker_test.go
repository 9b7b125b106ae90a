package testutil

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestManualTicker(t *testing.T) {
	start := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	ticker := NewManualTicker(start)

	got := make(chan time.Time, 2)
	go func() {
		for i := 0; i < 2; i++ {
			got <- <-ticker.C()
		}
	}()

	assert.True(t, ticker.Tick(time.Second))
	assert.True(t, ticker.Tick(time.Second))
	assert.Equal(t, start, <-got)
	assert.Equal(t, start.Add(time.Second), <-got)
}

func TestManualTicker_NoReceiver(t *testing.T) {
	ticker := NewManualTicker(time.Now())
	assert.False(t, ticker.Tick(10*time.Millisecond))
}

func TestManualTicker_Stop(t *testing.T) {
	ticker := NewManualTicker(time.Now())
	assert.False(t, ticker.Stopped())
	ticker.Stop()
	assert.True(t, ticker.Stopped())
	assert.False(t, ticker.Tick(time.Second))
}
