package cluster

import (
	"time"

	"github.com/itohio/govic/pkg/calib"
)

// GlowState is what the rest of the system sees of the countdown.
type GlowState struct {
	Active    bool
	Remaining int  // Whole seconds left, never negative
	Started   bool // Output edge: assert the glow pin this tick
	Stopped   bool // Output edge: drop the glow pin this tick
}

// Glow is the glow plug countdown state machine. It stays idle until a
// button press arms it; the duration comes from the coolant temperature at
// the press instant. A press while active is a no-op, the timer never
// re-arms or extends mid-cycle.
type Glow struct {
	durations calib.Map

	active   bool
	started  time.Time
	duration time.Duration
}

// NewGlow creates an idle countdown with the given temperature-to-seconds map.
func NewGlow(durations calib.Map) *Glow {
	return &Glow{durations: durations}
}

// Advance updates the machine for one tick. pressed is the button edge,
// coolantC the calibrated coolant temperature.
func (g *Glow) Advance(now time.Time, pressed bool, coolantC int) GlowState {
	if !g.active {
		if !pressed {
			return GlowState{}
		}
		g.active = true
		g.started = now
		g.duration = time.Duration(g.durations.Apply(coolantC)) * time.Second
		return GlowState{
			Active:    true,
			Remaining: int(g.duration / time.Second),
			Started:   true,
		}
	}

	elapsed := now.Sub(g.started)
	if elapsed >= g.duration {
		g.active = false
		return GlowState{Stopped: true}
	}

	remaining := int(g.duration/time.Second) - int(elapsed/time.Second)
	if remaining < 0 {
		remaining = 0
	}
	return GlowState{Active: true, Remaining: remaining}
}

// Active reports whether the countdown is running.
func (g *Glow) Active() bool {
	return g.active
}
