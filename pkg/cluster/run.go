package cluster

import (
	"context"
	"time"

	"github.com/itohio/govic/pkg/ecu"
)

// Run drives the engine against a device at the configured frame period
// until ctx is cancelled or the device's frame channel closes. Each tick
// advances on the newest available sensor frame (stale frames are dropped),
// writes the glow output only on countdown edges, and hands the result to
// render. The tick cadence never changes with dashboard state.
func (e *Engine) Run(ctx context.Context, dev ecu.Device, render func(Frame)) {
	ticker := time.NewTicker(e.cfg.Display.FramePeriod)
	defer ticker.Stop()

	frames := dev.Frames()

	var (
		last ecu.RawFrame
		have bool
	)

	for {
		select {
		case <-ctx.Done():
			return

		case f, ok := <-frames:
			if !ok {
				return
			}
			last, have = f, true

		case now := <-ticker.C:
			// Drain to the newest frame; the gauges only ever want the
			// latest reading.
		drain:
			for {
				select {
				case f, ok := <-frames:
					if !ok {
						return
					}
					last, have = f, true
				default:
					break drain
				}
			}

			if !have {
				// Nothing received from the MCU yet
				continue
			}

			frame := e.Advance(now, SampleFrom(last))

			if frame.Glow.Started {
				if err := dev.SetGlow(true); err != nil {
					e.log.Warnw("failed to assert glow output", "err", err)
				}
			}
			if frame.Glow.Stopped {
				if err := dev.SetGlow(false); err != nil {
					e.log.Warnw("failed to drop glow output", "err", err)
				}
			}

			render(frame)
		}
	}
}
