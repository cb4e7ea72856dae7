package cluster

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/itohio/govic/pkg/config"
	"github.com/itohio/govic/pkg/ecu"
)

func TestNew_RejectsBrokenCalibration(t *testing.T) {
	cfg := config.Default()
	cfg.Coolant.ADCMin = cfg.Coolant.ADCMax

	eng, err := New(cfg, nil)
	assert.Error(t, err)
	assert.Nil(t, eng)
}

func TestEngine_Advance_ColdWithEmptyTank(t *testing.T) {
	// A cold engine with a dry tank: oil fine, coolant in the cold band,
	// fuel critical, so the cluster flashes for fuel alone.
	eng, err := New(config.Default(), nil)
	require.NoError(t, err)

	frame := eng.Advance(time.Now(), Sample{
		OilLevel:   false, // Pressure present on the default active-high switch
		CoolantRaw: 500,
		FuelRaw:    80,
	})

	assert.Equal(t, 60, frame.Reading.CoolantC)
	assert.Equal(t, 0, frame.Reading.FuelLiters)
	assert.Equal(t, SeverityNormal, frame.Oil)
	assert.Equal(t, SeverityWarning, frame.Coolant)
	assert.Equal(t, SeverityCritical, frame.Fuel)
	assert.True(t, frame.AnyCritical)
	assert.True(t, frame.FlashBright)
	assert.False(t, frame.Glow.Active)
}

func TestEngine_Advance_AllNormal(t *testing.T) {
	eng, err := New(config.Default(), nil)
	require.NoError(t, err)

	frame := eng.Advance(time.Now(), Sample{
		OilLevel:   false,
		CoolantRaw: 700, // 90 C
		FuelRaw:    900, // 50 L
	})

	assert.Equal(t, 90, frame.Reading.CoolantC)
	assert.Equal(t, 50, frame.Reading.FuelLiters)
	assert.Equal(t, SeverityNormal, frame.Oil)
	assert.Equal(t, SeverityNormal, frame.Coolant)
	assert.Equal(t, SeverityNormal, frame.Fuel)
	assert.False(t, frame.AnyCritical)
}

func TestEngine_Advance_OutOfRangeReadingsClamp(t *testing.T) {
	eng, err := New(config.Default(), nil)
	require.NoError(t, err)

	frame := eng.Advance(time.Now(), Sample{
		CoolantRaw: 1023, // Shorted sender, beyond the calibrated range
		FuelRaw:    0,    // Floating sender
	})

	assert.Equal(t, 120, frame.Reading.CoolantC)
	assert.Equal(t, 0, frame.Reading.FuelLiters)
	assert.Equal(t, SeverityCritical, frame.Coolant)
	assert.Equal(t, SeverityCritical, frame.Fuel)
}

func TestEngine_Advance_OilSwitchPolarity(t *testing.T) {
	cfg := config.Default()
	cfg.Oil.ActiveHigh = false

	eng, err := New(cfg, nil)
	require.NoError(t, err)

	frame := eng.Advance(time.Now(), Sample{OilLevel: false, CoolantRaw: 700, FuelRaw: 900})
	assert.Equal(t, SeverityCritical, frame.Oil)

	frame = eng.Advance(time.Now(), Sample{OilLevel: true, CoolantRaw: 700, FuelRaw: 900})
	assert.Equal(t, SeverityNormal, frame.Oil)
}

func TestEngine_PressGlow(t *testing.T) {
	eng, err := New(config.Default(), nil)
	require.NoError(t, err)

	base := time.Now()
	warm := Sample{CoolantRaw: 500, FuelRaw: 900} // 60 C

	frame := eng.Advance(base, warm)
	require.False(t, frame.Glow.Active)

	eng.PressGlow()
	frame = eng.Advance(base.Add(50*time.Millisecond), warm)
	assert.True(t, frame.Glow.Started)
	assert.Equal(t, 4, frame.Glow.Remaining) // 60 C maps to a 4 second glow

	// The press was consumed; the next tick only counts down.
	frame = eng.Advance(base.Add(100*time.Millisecond), warm)
	assert.True(t, frame.Glow.Active)
	assert.False(t, frame.Glow.Started)
}

func TestEngine_HardwareButtonEdge(t *testing.T) {
	eng, err := New(config.Default(), nil)
	require.NoError(t, err)

	base := time.Now()
	held := Sample{CoolantRaw: 700, FuelRaw: 900, GlowButton: true}

	frame := eng.Advance(base, held)
	require.True(t, frame.Glow.Started)
	require.Equal(t, 3, frame.Glow.Remaining) // Warm engine clamps to the minimum

	// Holding the button through the whole cycle must not re-arm it.
	for i := 1; i <= 70; i++ {
		frame = eng.Advance(base.Add(time.Duration(i)*50*time.Millisecond), held)
	}
	assert.False(t, frame.Glow.Active)
	assert.False(t, frame.Glow.Started)

	// Release, then press again: a fresh edge arms a new cycle.
	released := held
	released.GlowButton = false
	eng.Advance(base.Add(4*time.Second), released)

	frame = eng.Advance(base.Add(4*time.Second+50*time.Millisecond), held)
	assert.True(t, frame.Glow.Started)
}

func TestSampleFrom(t *testing.T) {
	raw := ecu.RawFrame{
		Timestamp:  time.Now(),
		OilLevel:   true,
		Coolant:    512,
		Fuel:       300,
		GlowButton: true,
	}

	s := SampleFrom(raw)
	assert.True(t, s.OilLevel)
	assert.Equal(t, 512, s.CoolantRaw)
	assert.Equal(t, 300, s.FuelRaw)
	assert.True(t, s.GlowButton)
}
