package cluster

import "time"

// Flasher is the wall-clock square wave behind every blinking element. The
// phase flips when more than the interval has elapsed since the last flip,
// so the blink rate depends on elapsed time, not on how often Advance is
// polled.
type Flasher struct {
	interval   time.Duration
	bright     bool
	lastToggle time.Time
}

// NewFlasher creates a flasher starting in the bright phase.
func NewFlasher(interval time.Duration) *Flasher {
	return &Flasher{interval: interval, bright: true}
}

// Advance updates the phase for the given instant and returns it.
func (f *Flasher) Advance(now time.Time) bool {
	if f.lastToggle.IsZero() {
		f.lastToggle = now
		return f.bright
	}
	if now.Sub(f.lastToggle) > f.interval {
		f.bright = !f.bright
		f.lastToggle = now
	}
	return f.bright
}

// Bright returns the current phase without advancing it.
func (f *Flasher) Bright() bool {
	return f.bright
}
