package ecu

import (
	"sync"
)

// Conditioner transforms a stream of raw frames.
type Conditioner func(in <-chan RawFrame) <-chan RawFrame

// Averaged returns a Conditioner that smooths the analog senders with a
// sliding window over the last windowSize frames. Digital fields (oil switch,
// glow button) pass through from the newest frame so edges are never averaged
// away.
func Averaged(windowSize, bufSize int) Conditioner {
	if windowSize <= 0 {
		windowSize = 1 // No averaging if invalid
	}
	if bufSize <= 0 {
		bufSize = DefaultBufferSize
	}

	return func(in <-chan RawFrame) <-chan RawFrame {
		out := make(chan RawFrame, bufSize)

		go func() {
			defer close(out)

			window := make([]RawFrame, 0, windowSize)
			for raw := range in {
				window = append(window, raw)
				if len(window) > windowSize {
					window = window[1:] // Remove oldest
				}

				select {
				case out <- averageFrames(window):
				default:
					// Output channel full, drop
				}
			}
		}()

		return out
	}
}

// averageFrames averages the analog readings of a window of frames. The
// timestamp and digital states come from the most recent frame.
func averageFrames(frames []RawFrame) RawFrame {
	if len(frames) == 0 {
		return RawFrame{}
	}

	var sumCoolant, sumFuel uint32
	last := frames[len(frames)-1]

	for _, f := range frames {
		sumCoolant += uint32(f.Coolant)
		sumFuel += uint32(f.Fuel)
	}

	n := float64(len(frames))
	return RawFrame{
		Timestamp:  last.Timestamp,
		OilLevel:   last.OilLevel,
		Coolant:    uint16((float64(sumCoolant) / n) + 0.5), // Round to nearest
		Fuel:       uint16((float64(sumFuel) / n) + 0.5),
		GlowButton: last.GlowButton,
	}
}

// conditioned decorates a Device, passing its frames through a Conditioner.
type conditioned struct {
	Device
	c    Conditioner
	out  <-chan RawFrame
	once sync.Once
}

// WithConditioner wraps dev so that Frames() yields conditioned frames.
// A nil Conditioner returns dev unchanged.
func WithConditioner(dev Device, c Conditioner) Device {
	if c == nil {
		return dev
	}
	return &conditioned{Device: dev, c: c}
}

func (d *conditioned) Frames() <-chan RawFrame {
	d.once.Do(func() {
		d.out = d.c(d.Device.Frames())
	})
	return d.out
}
