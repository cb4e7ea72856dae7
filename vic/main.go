package main

import (
	"context"
	"flag"
	"fmt"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/app"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/theme"
	"fyne.io/fyne/v2/widget"

	"github.com/itohio/govic/pkg/cluster"
	"github.com/itohio/govic/pkg/config"
	"github.com/itohio/govic/pkg/ecu"
	"github.com/itohio/govic/pkg/logger"
	"github.com/itohio/govic/pkg/screen"
)

func main() {
	var (
		portFlag     = flag.String("p", "", "Serial port override (e.g., COM3 or /dev/ttyACM0)")
		configFlag   = flag.String("config", "config.yaml", "Configuration file path")
		mockFlag     = flag.Bool("mock", false, "Use simulated engine instead of serial port")
		logLevelFlag = flag.String("log-level", logger.InfoLevel, "Log level (debug, info, warn, error)")
	)
	flag.Parse()

	log := logger.Get(*logLevelFlag)

	// Load configuration
	cfg, err := config.Load(*configFlag)
	if err != nil {
		log.Fatalw("failed to load configuration", "err", err)
	}

	// Override serial port if provided via command line
	if *portFlag != "" {
		cfg.Serial.Port = *portFlag
	}

	// A broken sender calibration must never reach the tick loop
	if err := cfg.Validate(); err != nil {
		log.Fatalw("invalid configuration", "err", err)
	}

	// Create Fyne application
	application := app.NewWithID("com.itohio.govic")

	// Create main window
	window := application.NewWindow("Vehicle Instrument Cluster")
	window.Resize(fyne.NewSize(640, 520))
	window.CenterOnScreen()

	// Create application state
	state := &appState{
		cfg:        cfg,
		log:        log,
		configPath: *configFlag,
		window:     window,
		useMock:    *mockFlag,
	}

	// Create toolbar
	toolbar := createToolbar(state)

	// Create cluster widget for the dashboard display
	clusterWidget := screen.New(cfg)
	state.clusterWidget = clusterWidget

	// Create border layout with toolbar at top and cluster widget as content
	content := container.NewBorder(
		toolbar,
		nil,
		nil,
		nil,
		clusterWidget,
	)

	window.SetContent(content)
	window.ShowAndRun()

	// Window closed; stop the tick loop and release the device
	closeClusterChain(state.chain)
}

// clusterChain tracks the running engine loop and its device for graceful shutdown.
type clusterChain struct {
	device  ecu.Device
	cancel  context.CancelFunc
	runDone chan struct{} // Closed when the engine run loop exits
}

// appState holds the application state.
type appState struct {
	cfg           *config.Config
	log           *logger.Logger
	configPath    string
	device        ecu.Device
	engine        *cluster.Engine
	clusterWidget *screen.ClusterWidget
	window        fyne.Window
	connectBtn    *widget.Button
	glowBtn       *widget.Button
	useMock       bool
	chain         *clusterChain // Current engine chain (nil if not connected)

	glowActive bool // Last glow state mirrored onto the button
}

// createToolbar creates the application toolbar with Connect, Settings, and Glow buttons.
func createToolbar(state *appState) fyne.CanvasObject {
	// Connect button with icon
	connectBtn := widget.NewButtonWithIcon("", theme.LoginIcon(), func() {
		handleConnect(state)
	})
	state.connectBtn = connectBtn

	// Settings button with icon
	settingsBtn := widget.NewButtonWithIcon("", theme.SettingsIcon(), func() {
		showSettingsDialog(state)
	})

	// Glow plug button, enabled only while connected
	glowBtn := widget.NewButton("GLOW", func() {
		handleGlowPress(state)
	})
	glowBtn.Disable()
	state.glowBtn = glowBtn

	// Create toolbar with buttons on left and the glow button aligned to the right
	return container.NewBorder(
		nil, // top
		nil, // bottom
		container.NewHBox(connectBtn, settingsBtn), // left
		glowBtn, // right
		nil,     // center (spacer)
	)
}

// closeClusterChain gracefully stops the engine loop and closes the device.
func closeClusterChain(chain *clusterChain) {
	if chain == nil {
		return
	}

	// Stop the tick loop first so no glow write lands on a closing device
	if chain.cancel != nil {
		chain.cancel()
	}
	if chain.runDone != nil {
		<-chain.runDone
	}

	// Close device - this also closes the frames channel
	if chain.device != nil {
		chain.device.Close()
	}
}

// handleConnect handles the connect/disconnect button click.
func handleConnect(state *appState) {
	if state.device != nil && state.device.IsConnected() {
		// Disconnect - gracefully close the engine chain
		closeClusterChain(state.chain)
		state.chain = nil
		state.device = nil
		state.engine = nil
		state.glowBtn.Disable()
		state.glowActive = false
		updateGlowButton(state.glowBtn, false)
		state.clusterWidget.ClearFrame()
		if state.useMock {
			state.log.Infow("disconnected from simulated engine")
		} else {
			state.log.Infow("disconnected from serial port")
		}
		return
	}

	// Connect
	var device ecu.Device
	if state.useMock {
		device = ecu.NewMock(state.cfg)
	} else {
		device = ecu.New(state.cfg.Serial.Port, ecu.DefaultBaudRate, ecu.DefaultBufferSize, state.log)
	}

	// Host-side smoothing of the raw sender readings when enabled
	if state.cfg.Serial.AverageFrames > 0 {
		device = ecu.WithConditioner(device, ecu.Averaged(state.cfg.Serial.AverageFrames, ecu.DefaultBufferSize))
	}

	if err := device.Connect(); err != nil {
		if state.useMock {
			dialog.ShowError(fmt.Errorf("failed to connect to simulated engine: %w", err), state.window)
		} else {
			dialog.ShowError(fmt.Errorf("failed to connect to %s: %w", state.cfg.Serial.Port, err), state.window)
		}
		return
	}

	// A fresh engine per connection so flash and glow state start clean
	engine, err := cluster.New(state.cfg, state.log)
	if err != nil {
		device.Close()
		dialog.ShowError(fmt.Errorf("failed to start cluster engine: %w", err), state.window)
		return
	}

	state.device = device
	state.engine = engine
	state.glowBtn.Enable()
	if state.useMock {
		state.log.Infow("connected to simulated engine")
	} else {
		state.log.Infow("connected to serial port", "port", state.cfg.Serial.Port)
	}

	// Drive the engine loop; it returns when cancelled or the device closes
	ctx, cancel := context.WithCancel(context.Background())
	runDone := make(chan struct{})
	render := newFrameCallback(state)

	go func() {
		defer close(runDone)
		engine.Run(ctx, device, render)
	}()

	// Store chain for graceful shutdown
	state.chain = &clusterChain{
		device:  device,
		cancel:  cancel,
		runDone: runDone,
	}
}
