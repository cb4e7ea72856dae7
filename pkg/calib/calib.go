// Package calib implements the integer calibration mapping that turns raw
// sender ADC counts into physical units. The arithmetic is the classic AVR
// map()/constrain() pair: linear interpolation with truncating integer
// division, then clamping into the output interval.
package calib

import (
	"errors"
	"fmt"
)

// ErrEmptyRange is returned by Validate when a map's input interval is empty.
var ErrEmptyRange = errors.New("calibration input range is empty")

// Map is a linear calibration from an input interval to an output interval.
// A reversed output interval (OutMin > OutMax) is valid and produces an
// inverse relationship, e.g. mapping coolant temperature to glow seconds.
type Map struct {
	InMin  int
	InMax  int
	OutMin int
	OutMax int
}

// Validate reports whether the map can be applied. A map whose input bounds
// coincide would divide by zero and is rejected before any loop starts.
func (m Map) Validate() error {
	if m.InMin == m.InMax {
		return fmt.Errorf("map [%d,%d]->[%d,%d]: %w", m.InMin, m.InMax, m.OutMin, m.OutMax, ErrEmptyRange)
	}
	return nil
}

// Apply maps x through the calibration and clamps the result into the output
// interval. Division truncates toward zero. Inputs outside the input interval
// are legal; the clamp bounds whatever they extrapolate to.
func (m Map) Apply(x int) int {
	out := (x-m.InMin)*(m.OutMax-m.OutMin)/(m.InMax-m.InMin) + m.OutMin
	return clamp(out, m.OutMin, m.OutMax)
}

// clamp bounds v into the inclusive interval spanned by a and b in either order.
func clamp(v, a, b int) int {
	lo, hi := a, b
	if lo > hi {
		lo, hi = hi, lo
	}
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
