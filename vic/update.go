package main

import (
	"fyne.io/fyne/v2"

	"github.com/itohio/govic/pkg/cluster"
)

// newFrameCallback returns the render hook for the engine run loop.
// Frames arrive on the loop goroutine; the widget update is scheduled on the
// main Fyne thread. The loop already ticks at the display frame period
// (20 Hz by default), so no extra throttling is needed here.
func newFrameCallback(state *appState) func(cluster.Frame) {
	return func(f cluster.Frame) {
		updateGlowFromFrame(state, f)

		fyne.Do(func() {
			state.clusterWidget.SetFrame(f)
		})
	}
}
