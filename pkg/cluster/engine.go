// Package cluster turns raw sensor frames into display frames: sender
// calibration, threshold classification, the alert flash phase, and the glow
// plug countdown all advance together on a single clock.
package cluster

import (
	"sync"
	"time"

	"github.com/itohio/govic/pkg/calib"
	"github.com/itohio/govic/pkg/config"
	"github.com/itohio/govic/pkg/ecu"
	"github.com/itohio/govic/pkg/logger"
)

// Sample is one set of sensor inputs for a tick.
type Sample struct {
	OilLevel   bool
	CoolantRaw int
	FuelRaw    int
	GlowButton bool
}

// SampleFrom extracts engine inputs from a raw device frame.
func SampleFrom(f ecu.RawFrame) Sample {
	return Sample{
		OilLevel:   f.OilLevel,
		CoolantRaw: int(f.Coolant),
		FuelRaw:    int(f.Fuel),
		GlowButton: f.GlowButton,
	}
}

// Reading holds the calibrated physical values of one tick.
type Reading struct {
	CoolantC   int
	FuelLiters int
}

// Frame is everything the display needs for one tick.
type Frame struct {
	At      time.Time
	Reading Reading

	Oil     Severity
	Coolant Severity
	Fuel    Severity

	AnyCritical bool
	FlashBright bool

	Glow GlowState
}

// Engine owns all mutable dashboard state. A single goroutine advances it;
// PressGlow may be called from any goroutine.
type Engine struct {
	cfg *config.Config
	log *logger.Logger

	coolantCal calib.Map
	fuelCal    calib.Map
	flash      *Flasher
	glow       *Glow

	lastButton bool // Previous hardware button level, for edge detection

	mu      sync.Mutex
	pressed bool // UI button press waiting for the next tick
}

// New creates an engine from the configuration. A configuration that fails
// validation is rejected here, before any loop starts.
func New(cfg *config.Config, log *logger.Logger) (*Engine, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if log == nil {
		log = logger.Nop()
	}

	return &Engine{
		cfg:        cfg,
		log:        log.Named("cluster"),
		coolantCal: cfg.Coolant.Map(),
		fuelCal:    cfg.Fuel.Map(),
		flash:      NewFlasher(cfg.Display.FlashInterval),
		glow:       NewGlow(cfg.Glow.DurationMap()),
	}, nil
}

// PressGlow queues a glow button press for the next tick. The UI button
// arrives here; the hardware button arrives inside the sensor frame.
func (e *Engine) PressGlow() {
	e.mu.Lock()
	e.pressed = true
	e.mu.Unlock()
}

// Advance computes one display frame for the given instant and inputs.
func (e *Engine) Advance(now time.Time, s Sample) Frame {
	e.mu.Lock()
	pressed := e.pressed
	e.pressed = false
	e.mu.Unlock()

	// The hardware button is a level; arm only on its rising edge so a held
	// button cannot immediately restart a finished countdown.
	if s.GlowButton && !e.lastButton {
		pressed = true
	}
	e.lastButton = s.GlowButton

	reading := Reading{
		CoolantC:   e.coolantCal.Apply(s.CoolantRaw),
		FuelLiters: e.fuelCal.Apply(s.FuelRaw),
	}

	oil := classifyOil(s.OilLevel, e.cfg.Oil)
	coolant := classifyCoolant(reading.CoolantC, e.cfg.Coolant)
	fuel := classifyFuel(reading.FuelLiters, e.cfg.Fuel)

	return Frame{
		At:          now,
		Reading:     reading,
		Oil:         oil,
		Coolant:     coolant,
		Fuel:        fuel,
		AnyCritical: oil.Critical() || coolant.Critical() || fuel.Critical(),
		FlashBright: e.flash.Advance(now),
		Glow:        e.glow.Advance(now, pressed, reading.CoolantC),
	}
}
