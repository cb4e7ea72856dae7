package main

import (
	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/widget"

	"github.com/itohio/govic/pkg/cluster"
)

// handleGlowPress handles the glow plug button click.
func handleGlowPress(state *appState) {
	if state.engine == nil || state.device == nil || !state.device.IsConnected() {
		return
	}

	// The press is consumed on the next engine tick. Pressing while the
	// countdown already runs is ignored there, so no guard is needed here.
	state.engine.PressGlow()
}

// updateGlowFromFrame mirrors the countdown state onto the glow button.
// Only updates UI when the state actually changes.
// Uses fyne.Do() to ensure thread-safe UI updates from the loop goroutine.
func updateGlowFromFrame(state *appState, f cluster.Frame) {
	if state.glowActive == f.Glow.Active {
		// No change, skip update
		return
	}
	state.glowActive = f.Glow.Active

	active := f.Glow.Active
	fyne.Do(func() {
		updateGlowButton(state.glowBtn, active)
	})
}

// updateGlowButton updates the glow button's visual state.
func updateGlowButton(btn *widget.Button, active bool) {
	if active {
		btn.Importance = widget.HighImportance
	} else {
		btn.Importance = widget.MediumImportance
	}
	btn.Refresh()
}
