package cluster

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestFlasher_StartsBright(t *testing.T) {
	f := NewFlasher(500 * time.Millisecond)
	assert.True(t, f.Bright())
	assert.True(t, f.Advance(time.Now()))
}

func TestFlasher_TogglesAfterInterval(t *testing.T) {
	f := NewFlasher(500 * time.Millisecond)
	base := time.Now()

	assert.True(t, f.Advance(base))
	assert.True(t, f.Advance(base.Add(499*time.Millisecond)))
	// Exactly one interval is not enough; the comparison is strict.
	assert.True(t, f.Advance(base.Add(500*time.Millisecond)))
	assert.False(t, f.Advance(base.Add(501*time.Millisecond)))
	// Still dark until a full interval elapses from the toggle.
	assert.False(t, f.Advance(base.Add(900*time.Millisecond)))
	assert.True(t, f.Advance(base.Add(1002*time.Millisecond)))
}

func TestFlasher_IdempotentWithinInterval(t *testing.T) {
	f := NewFlasher(500 * time.Millisecond)
	base := time.Now()

	f.Advance(base)
	for i := 0; i < 10; i++ {
		assert.True(t, f.Advance(base.Add(100*time.Millisecond)))
	}
}

// TestFlasher_SingleTogglePerInterval polls far faster than the blink rate
// and checks the phase still flips on wall time alone.
func TestFlasher_SingleTogglePerInterval(t *testing.T) {
	f := NewFlasher(100 * time.Millisecond)
	base := time.Now()

	f.Advance(base)

	toggles := 0
	prev := true
	for ms := 1; ms <= 1000; ms++ {
		got := f.Advance(base.Add(time.Duration(ms) * time.Millisecond))
		if got != prev {
			toggles++
			prev = got
		}
	}

	// Toggles land at 101ms, 202ms, ... 909ms: nine in one second.
	assert.Equal(t, 9, toggles)
}
