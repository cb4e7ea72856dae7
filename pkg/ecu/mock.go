package ecu

import (
	"context"
	"fmt"
	"math"
	"sync"
	"time"

	"github.com/itohio/govic/pkg/calib"
	"github.com/itohio/govic/pkg/config"
)

// pressHold is how long the simulated glow button stays down once pressed.
const pressHold = 150 * time.Millisecond

// Mock simulates the engine senders for testing and development.
// The simulated oil switch pulls the line high while pressure is lost,
// matching the default active_high wiring.
type Mock struct {
	cfg        *config.Config
	coolantCal calib.Map
	fuelCal    calib.Map

	frames    chan RawFrame
	mu        sync.RWMutex
	ctx       context.Context
	cancel    context.CancelFunc
	connected bool

	// Glow output state, set by the host
	glowOn bool

	// Simulation state
	startTime time.Time
	coolantC  float64 // Simulated coolant temperature (C)
	fuelL     float64 // Simulated fuel level (L)
}

// NewMock creates a new mocked device instance.
func NewMock(cfg *config.Config) *Mock {
	if cfg == nil {
		cfg = config.Default()
	}

	ctx, cancel := context.WithCancel(context.Background())

	return &Mock{
		cfg:        cfg,
		coolantCal: cfg.Coolant.Map(),
		fuelCal:    cfg.Fuel.Map(),
		frames:     make(chan RawFrame, DefaultBufferSize),
		ctx:        ctx,
		cancel:     cancel,
		connected:  false,
	}
}

// Connect simulates connecting to the device.
func (m *Mock) Connect() error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.connected {
		return fmt.Errorf("already connected")
	}

	m.connected = true
	m.startTime = time.Now()
	m.coolantC = m.cfg.Mock.AmbientC
	m.fuelL = m.cfg.Mock.FullLiters

	// Start generating frames
	go m.generateFrames()

	return nil
}

// Close stops the mocked device.
func (m *Mock) Close() error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if !m.connected {
		return nil
	}

	m.cancel()
	m.connected = false
	close(m.frames)

	return nil
}

// Frames returns the channel for reading sensor frames.
func (m *Mock) Frames() <-chan RawFrame {
	return m.frames
}

// SetGlow sets the simulated glow plug output.
func (m *Mock) SetGlow(on bool) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if !m.connected {
		return fmt.Errorf("not connected")
	}

	m.glowOn = on

	return nil
}

// GlowOn reports the current simulated glow plug output.
func (m *Mock) GlowOn() bool {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.glowOn
}

// IsConnected returns whether the device is currently connected.
func (m *Mock) IsConnected() bool {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.connected
}

// generateFrames generates simulated frames.
func (m *Mock) generateFrames() {
	ticker := time.NewTicker(m.cfg.Mock.SampleRate)
	defer ticker.Stop()

	for {
		select {
		case <-m.ctx.Done():
			return
		case <-ticker.C:
			frame := m.generateFrame()
			select {
			case m.frames <- frame:
			case <-m.ctx.Done():
				return
			default:
				// Channel full, skip
			}
		}
	}
}

// generateFrame generates a single simulated frame.
func (m *Mock) generateFrame() RawFrame {
	m.mu.RLock()
	now := time.Now()
	elapsed := now.Sub(m.startTime)
	glowOn := m.glowOn
	m.mu.RUnlock()

	mc := m.cfg.Mock
	dt := mc.SampleRate.Seconds()

	// Coolant warms toward operating temperature with a first-order lag.
	// An asserted glow plug adds a little extra heat while cranking cold.
	target := mc.RunningC
	if glowOn {
		target += 10
	}
	if mc.WarmupSeconds > 0 {
		alpha := dt / mc.WarmupSeconds
		m.coolantC += alpha * (target - m.coolantC)
	}

	// Fuel drains at a steady rate.
	m.fuelL -= mc.DrainLitersPerMin * dt / 60
	if m.fuelL < 0 {
		m.fuelL = 0
	}

	// Oil pressure builds shortly after start; the switch line is high
	// while pressure is lost.
	oilLost := elapsed < mc.OilOkAfter

	// Scripted one-shot glow button press.
	button := mc.GlowPressAt > 0 &&
		elapsed >= mc.GlowPressAt &&
		elapsed < mc.GlowPressAt+pressHold

	// Sinusoidal pseudo-noise in ADC counts.
	noise := (math.Sin(float64(elapsed.Nanoseconds())*0.001) +
		math.Cos(float64(elapsed.Nanoseconds())*0.0013)) *
		mc.NoiseCounts * 0.5

	return RawFrame{
		Timestamp:  now,
		OilLevel:   oilLost,
		Coolant:    toCounts(m.coolantCal, m.coolantC, noise),
		Fuel:       toCounts(m.fuelCal, m.fuelL, noise),
		GlowButton: button,
	}
}

// toCounts runs a physical value backwards through a sender calibration and
// quantizes it to ADC counts.
func toCounts(cal calib.Map, v, noise float64) uint16 {
	counts := float64(cal.InMin) +
		(v-float64(cal.OutMin))*float64(cal.InMax-cal.InMin)/float64(cal.OutMax-cal.OutMin)
	counts += noise

	if counts < 0 {
		counts = 0
	} else if counts > MaxCount {
		counts = MaxCount
	}
	return uint16(counts)
}
