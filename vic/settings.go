package main

import (
	"fmt"
	"strconv"
	"time"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/widget"

	"github.com/itohio/govic/pkg/config"
	"github.com/itohio/govic/pkg/ecu"
)

// showSettingsDialog displays a settings dialog with tabs for all configuration options.
// Edits take effect on the next connect; a running engine keeps the
// calibration it started with.
func showSettingsDialog(state *appState) {
	// Create tabs
	tabs := container.NewAppTabs(
		createSerialTab(state),
		createCoolantTab(state),
		createFuelTab(state),
		createGlowTab(state),
		createDisplayTab(state),
		createMockTab(state),
	)

	// Create dialog with tabs as content
	content := container.NewBorder(nil, nil, nil, nil, tabs)
	content.Resize(fyne.NewSize(600, 500))

	d := dialog.NewCustom("Settings", "Close", content, state.window)
	d.Resize(fyne.NewSize(600, 500))
	d.Show()
}

// applyConfig validates edited settings, persists them, and makes them
// current. Invalid edits are rejected with a dialog and the old values stay.
func applyConfig(state *appState, next config.Config) bool {
	if err := next.Validate(); err != nil {
		dialog.ShowError(fmt.Errorf("invalid settings: %w", err), state.window)
		return false
	}

	*state.cfg = next
	if err := state.cfg.Save(state.configPath); err != nil {
		dialog.ShowError(fmt.Errorf("failed to save config: %w", err), state.window)
		return false
	}
	return true
}

// createSerialTab creates the Serial configuration tab.
func createSerialTab(state *appState) *container.TabItem {
	// Get available serial ports
	ports, err := ecu.Ports()
	portOptions := []string{}
	portMap := make(map[string]string) // Map display name to actual port name

	if err == nil {
		for _, port := range ports {
			displayName := port.Name
			if port.Description != "" && port.Description != port.Name {
				displayName = fmt.Sprintf("%s (%s)", port.Name, port.Description)
			}
			portOptions = append(portOptions, displayName)
			portMap[displayName] = port.Name
		}
	}

	// Add current port if not in list
	currentPort := state.cfg.Serial.Port
	currentDisplay := currentPort
	found := false
	for _, opt := range portOptions {
		if portMap[opt] == currentPort {
			currentDisplay = opt
			found = true
			break
		}
	}
	if !found && currentPort != "" {
		portOptions = append(portOptions, currentPort)
		portMap[currentPort] = currentPort
		currentDisplay = currentPort
	}

	portSelect := widget.NewSelect(portOptions, func(selected string) {
		// Selection handler - will be called on submit
	})
	if currentDisplay != "" {
		portSelect.SetSelected(currentDisplay)
	}

	averageFramesEntry := widget.NewEntry()
	averageFramesEntry.SetText(fmt.Sprintf("%d", state.cfg.Serial.AverageFrames))

	form := &widget.Form{
		Items: []*widget.FormItem{
			{Text: "Serial Port", Widget: portSelect},
			{Text: "Average Frames (0=disabled)", Widget: averageFramesEntry},
		},
		OnSubmit: func() {
			next := *state.cfg

			if portSelect.Selected != "" {
				selectedPort := portMap[portSelect.Selected]
				if selectedPort == "" {
					selectedPort = portSelect.Selected // Fallback to selected text
				}
				next.Serial.Port = selectedPort
			}
			if v, err := strconv.Atoi(averageFramesEntry.Text); err == nil && v >= 0 {
				next.Serial.AverageFrames = v
			}

			// Check if port changed and device is connected
			portChanged := state.cfg.Serial.Port != next.Serial.Port
			wasConnected := state.device != nil && state.device.IsConnected()

			if !applyConfig(state, next) {
				return
			}

			// If port changed and device was connected, restart the chain
			if portChanged && wasConnected {
				// Gracefully close old chain
				closeClusterChain(state.chain)
				state.chain = nil
				state.device = nil
				state.engine = nil

				// Reconnect with new port
				handleConnect(state)
			}
		},
	}

	return container.NewTabItem("Serial", form)
}

// createCoolantTab creates the coolant sender configuration tab.
func createCoolantTab(state *appState) *container.TabItem {
	adcMinEntry := widget.NewEntry()
	adcMinEntry.SetText(fmt.Sprintf("%d", state.cfg.Coolant.ADCMin))

	adcMaxEntry := widget.NewEntry()
	adcMaxEntry.SetText(fmt.Sprintf("%d", state.cfg.Coolant.ADCMax))

	minCEntry := widget.NewEntry()
	minCEntry.SetText(fmt.Sprintf("%d", state.cfg.Coolant.MinC))

	maxCEntry := widget.NewEntry()
	maxCEntry.SetText(fmt.Sprintf("%d", state.cfg.Coolant.MaxC))

	normalMinEntry := widget.NewEntry()
	normalMinEntry.SetText(fmt.Sprintf("%d", state.cfg.Coolant.NormalMinC))

	criticalEntry := widget.NewEntry()
	criticalEntry.SetText(fmt.Sprintf("%d", state.cfg.Coolant.CriticalC))

	form := &widget.Form{
		Items: []*widget.FormItem{
			{Text: "ADC Min (counts)", Widget: adcMinEntry},
			{Text: "ADC Max (counts)", Widget: adcMaxEntry},
			{Text: "Scale Min (C)", Widget: minCEntry},
			{Text: "Scale Max (C)", Widget: maxCEntry},
			{Text: "Normal Above (C)", Widget: normalMinEntry},
			{Text: "Critical Above (C)", Widget: criticalEntry},
		},
		OnSubmit: func() {
			next := *state.cfg
			if v, err := strconv.Atoi(adcMinEntry.Text); err == nil {
				next.Coolant.ADCMin = v
			}
			if v, err := strconv.Atoi(adcMaxEntry.Text); err == nil {
				next.Coolant.ADCMax = v
			}
			if v, err := strconv.Atoi(minCEntry.Text); err == nil {
				next.Coolant.MinC = v
			}
			if v, err := strconv.Atoi(maxCEntry.Text); err == nil {
				next.Coolant.MaxC = v
			}
			if v, err := strconv.Atoi(normalMinEntry.Text); err == nil {
				next.Coolant.NormalMinC = v
			}
			if v, err := strconv.Atoi(criticalEntry.Text); err == nil {
				next.Coolant.CriticalC = v
			}
			applyConfig(state, next)
		},
	}

	return container.NewTabItem("Coolant", form)
}

// createFuelTab creates the fuel sender configuration tab.
func createFuelTab(state *appState) *container.TabItem {
	adcMinEntry := widget.NewEntry()
	adcMinEntry.SetText(fmt.Sprintf("%d", state.cfg.Fuel.ADCMin))

	adcMaxEntry := widget.NewEntry()
	adcMaxEntry.SetText(fmt.Sprintf("%d", state.cfg.Fuel.ADCMax))

	minLitersEntry := widget.NewEntry()
	minLitersEntry.SetText(fmt.Sprintf("%d", state.cfg.Fuel.MinLiters))

	maxLitersEntry := widget.NewEntry()
	maxLitersEntry.SetText(fmt.Sprintf("%d", state.cfg.Fuel.MaxLiters))

	reserveEntry := widget.NewEntry()
	reserveEntry.SetText(fmt.Sprintf("%d", state.cfg.Fuel.ReserveLiters))

	criticalEntry := widget.NewEntry()
	criticalEntry.SetText(fmt.Sprintf("%d", state.cfg.Fuel.CriticalLiters))

	form := &widget.Form{
		Items: []*widget.FormItem{
			{Text: "ADC Min (counts)", Widget: adcMinEntry},
			{Text: "ADC Max (counts)", Widget: adcMaxEntry},
			{Text: "Scale Min (L)", Widget: minLitersEntry},
			{Text: "Scale Max (L)", Widget: maxLitersEntry},
			{Text: "Reserve At (L)", Widget: reserveEntry},
			{Text: "Critical At (L)", Widget: criticalEntry},
		},
		OnSubmit: func() {
			next := *state.cfg
			if v, err := strconv.Atoi(adcMinEntry.Text); err == nil {
				next.Fuel.ADCMin = v
			}
			if v, err := strconv.Atoi(adcMaxEntry.Text); err == nil {
				next.Fuel.ADCMax = v
			}
			if v, err := strconv.Atoi(minLitersEntry.Text); err == nil {
				next.Fuel.MinLiters = v
			}
			if v, err := strconv.Atoi(maxLitersEntry.Text); err == nil {
				next.Fuel.MaxLiters = v
			}
			if v, err := strconv.Atoi(reserveEntry.Text); err == nil {
				next.Fuel.ReserveLiters = v
			}
			if v, err := strconv.Atoi(criticalEntry.Text); err == nil {
				next.Fuel.CriticalLiters = v
			}
			applyConfig(state, next)
		},
	}

	return container.NewTabItem("Fuel", form)
}

// createGlowTab creates the glow plug timing configuration tab.
func createGlowTab(state *appState) *container.TabItem {
	tempMinEntry := widget.NewEntry()
	tempMinEntry.SetText(fmt.Sprintf("%d", state.cfg.Glow.TempMinC))

	tempMaxEntry := widget.NewEntry()
	tempMaxEntry.SetText(fmt.Sprintf("%d", state.cfg.Glow.TempMaxC))

	maxSecondsEntry := widget.NewEntry()
	maxSecondsEntry.SetText(fmt.Sprintf("%d", state.cfg.Glow.MaxSeconds))

	minSecondsEntry := widget.NewEntry()
	minSecondsEntry.SetText(fmt.Sprintf("%d", state.cfg.Glow.MinSeconds))

	form := &widget.Form{
		Items: []*widget.FormItem{
			{Text: "Coldest (C)", Widget: tempMinEntry},
			{Text: "Warmest (C)", Widget: tempMaxEntry},
			{Text: "Glow When Cold (s)", Widget: maxSecondsEntry},
			{Text: "Glow When Warm (s)", Widget: minSecondsEntry},
		},
		OnSubmit: func() {
			next := *state.cfg
			if v, err := strconv.Atoi(tempMinEntry.Text); err == nil {
				next.Glow.TempMinC = v
			}
			if v, err := strconv.Atoi(tempMaxEntry.Text); err == nil {
				next.Glow.TempMaxC = v
			}
			if v, err := strconv.Atoi(maxSecondsEntry.Text); err == nil {
				next.Glow.MaxSeconds = v
			}
			if v, err := strconv.Atoi(minSecondsEntry.Text); err == nil {
				next.Glow.MinSeconds = v
			}
			applyConfig(state, next)
		},
	}

	return container.NewTabItem("Glow", form)
}

// createDisplayTab creates the display timing configuration tab.
func createDisplayTab(state *appState) *container.TabItem {
	flashIntervalEntry := widget.NewEntry()
	flashIntervalEntry.SetText(state.cfg.Display.FlashInterval.String())

	framePeriodEntry := widget.NewEntry()
	framePeriodEntry.SetText(state.cfg.Display.FramePeriod.String())

	form := &widget.Form{
		Items: []*widget.FormItem{
			{Text: "Flash Interval", Widget: flashIntervalEntry},
			{Text: "Frame Period", Widget: framePeriodEntry},
		},
		OnSubmit: func() {
			next := *state.cfg
			if d, err := time.ParseDuration(flashIntervalEntry.Text); err == nil {
				next.Display.FlashInterval = d
			}
			if d, err := time.ParseDuration(framePeriodEntry.Text); err == nil {
				next.Display.FramePeriod = d
			}
			applyConfig(state, next)
		},
	}

	return container.NewTabItem("Display", form)
}

// createMockTab creates the simulated engine configuration tab.
func createMockTab(state *appState) *container.TabItem {
	ambientEntry := widget.NewEntry()
	ambientEntry.SetText(fmt.Sprintf("%.1f", state.cfg.Mock.AmbientC))

	runningEntry := widget.NewEntry()
	runningEntry.SetText(fmt.Sprintf("%.1f", state.cfg.Mock.RunningC))

	warmupEntry := widget.NewEntry()
	warmupEntry.SetText(fmt.Sprintf("%.1f", state.cfg.Mock.WarmupSeconds))

	fuelEntry := widget.NewEntry()
	fuelEntry.SetText(fmt.Sprintf("%.1f", state.cfg.Mock.FullLiters))

	drainEntry := widget.NewEntry()
	drainEntry.SetText(fmt.Sprintf("%.2f", state.cfg.Mock.DrainLitersPerMin))

	oilOkAfterEntry := widget.NewEntry()
	oilOkAfterEntry.SetText(state.cfg.Mock.OilOkAfter.String())

	glowPressAtEntry := widget.NewEntry()
	glowPressAtEntry.SetText(state.cfg.Mock.GlowPressAt.String())

	noiseEntry := widget.NewEntry()
	noiseEntry.SetText(fmt.Sprintf("%.1f", state.cfg.Mock.NoiseCounts))

	sampleRateEntry := widget.NewEntry()
	sampleRateEntry.SetText(state.cfg.Mock.SampleRate.String())

	form := &widget.Form{
		Items: []*widget.FormItem{
			{Text: "Ambient (C)", Widget: ambientEntry},
			{Text: "Running (C)", Widget: runningEntry},
			{Text: "Warmup (s)", Widget: warmupEntry},
			{Text: "Full Tank (L)", Widget: fuelEntry},
			{Text: "Drain (L/min)", Widget: drainEntry},
			{Text: "Oil OK After", Widget: oilOkAfterEntry},
			{Text: "Glow Press At (0=never)", Widget: glowPressAtEntry},
			{Text: "Noise (counts)", Widget: noiseEntry},
			{Text: "Sample Rate", Widget: sampleRateEntry},
		},
		OnSubmit: func() {
			next := *state.cfg
			if v, err := strconv.ParseFloat(ambientEntry.Text, 64); err == nil {
				next.Mock.AmbientC = v
			}
			if v, err := strconv.ParseFloat(runningEntry.Text, 64); err == nil {
				next.Mock.RunningC = v
			}
			if v, err := strconv.ParseFloat(warmupEntry.Text, 64); err == nil {
				next.Mock.WarmupSeconds = v
			}
			if v, err := strconv.ParseFloat(fuelEntry.Text, 64); err == nil {
				next.Mock.FullLiters = v
			}
			if v, err := strconv.ParseFloat(drainEntry.Text, 64); err == nil {
				next.Mock.DrainLitersPerMin = v
			}
			if d, err := time.ParseDuration(oilOkAfterEntry.Text); err == nil {
				next.Mock.OilOkAfter = d
			}
			if d, err := time.ParseDuration(glowPressAtEntry.Text); err == nil {
				next.Mock.GlowPressAt = d
			}
			if v, err := strconv.ParseFloat(noiseEntry.Text, 64); err == nil {
				next.Mock.NoiseCounts = v
			}
			if d, err := time.ParseDuration(sampleRateEntry.Text); err == nil {
				next.Mock.SampleRate = d
			}
			applyConfig(state, next)
		},
	}

	return container.NewTabItem("Mock", form)
}
