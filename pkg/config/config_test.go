package config

import (
	"errors"
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/itohio/govic/pkg/calib"
)

func TestDefault(t *testing.T) {
	cfg := Default()

	assert.NotNil(t, cfg)
	assert.Equal(t, "COM3", cfg.Serial.Port)
	assert.True(t, cfg.Oil.ActiveHigh)
	assert.Equal(t, 100, cfg.Coolant.ADCMin)
	assert.Equal(t, 900, cfg.Coolant.ADCMax)
	assert.Equal(t, 120, cfg.Coolant.MaxC)
	assert.Equal(t, 70, cfg.Coolant.NormalMinC)
	assert.Equal(t, 100, cfg.Coolant.CriticalC)
	assert.Equal(t, 80, cfg.Fuel.ADCMin)
	assert.Equal(t, 50, cfg.Fuel.MaxLiters)
	assert.Equal(t, 10, cfg.Fuel.ReserveLiters)
	assert.Equal(t, 5, cfg.Fuel.CriticalLiters)
	assert.Equal(t, 8, cfg.Glow.MaxSeconds)
	assert.Equal(t, 3, cfg.Glow.MinSeconds)
	assert.Equal(t, 500*time.Millisecond, cfg.Display.FlashInterval)
	assert.Equal(t, 50*time.Millisecond, cfg.Display.FramePeriod)
	assert.NoError(t, cfg.Validate())
}

func TestLoad_FileNotExists(t *testing.T) {
	cfg, err := Load("nonexistent.yaml")
	require.NoError(t, err)
	assert.NotNil(t, cfg)
	assert.Equal(t, "COM3", cfg.Serial.Port)
}

func TestLoad_ValidYAML(t *testing.T) {
	tmpfile, err := os.CreateTemp("", "test_config_*.yaml")
	require.NoError(t, err)
	defer os.Remove(tmpfile.Name())

	yamlContent := `
serial:
  port: "/dev/ttyACM0"
  average_frames: 4

oil:
  active_high: false

coolant:
  adc_min: 120
  adc_max: 880
  max_c: 130
  normal_min_c: 60
  critical_c: 105

fuel:
  adc_min: 90
  adc_max: 910
  max_liters: 60
  reserve_liters: 12
  critical_liters: 6

glow:
  temp_max_c: 80
  max_seconds: 10
  min_seconds: 2

display:
  flash_interval: 250ms
  frame_period: 100ms
`

	_, err = tmpfile.WriteString(yamlContent)
	require.NoError(t, err)
	require.NoError(t, tmpfile.Close())

	cfg, err := Load(tmpfile.Name())
	require.NoError(t, err)
	assert.NotNil(t, cfg)

	assert.Equal(t, "/dev/ttyACM0", cfg.Serial.Port)
	assert.Equal(t, 4, cfg.Serial.AverageFrames)
	assert.False(t, cfg.Oil.ActiveHigh)
	assert.Equal(t, 120, cfg.Coolant.ADCMin)
	assert.Equal(t, 880, cfg.Coolant.ADCMax)
	assert.Equal(t, 105, cfg.Coolant.CriticalC)
	assert.Equal(t, 60, cfg.Fuel.MaxLiters)
	assert.Equal(t, 6, cfg.Fuel.CriticalLiters)
	assert.Equal(t, 10, cfg.Glow.MaxSeconds)
	assert.Equal(t, 250*time.Millisecond, cfg.Display.FlashInterval)
	assert.Equal(t, 100*time.Millisecond, cfg.Display.FramePeriod)
}

func TestLoad_InvalidYAML(t *testing.T) {
	tmpfile, err := os.CreateTemp("", "test_config_*.yaml")
	require.NoError(t, err)
	defer os.Remove(tmpfile.Name())

	_, err = tmpfile.WriteString("invalid: yaml: content: [")
	require.NoError(t, err)
	require.NoError(t, tmpfile.Close())

	cfg, err := Load(tmpfile.Name())
	assert.Error(t, err)
	assert.Nil(t, cfg)
}

func TestLoad_PartialYAML(t *testing.T) {
	tmpfile, err := os.CreateTemp("", "test_config_*.yaml")
	require.NoError(t, err)
	defer os.Remove(tmpfile.Name())

	yamlContent := `
serial:
  port: "/dev/ttyACM0"
`

	_, err = tmpfile.WriteString(yamlContent)
	require.NoError(t, err)
	require.NoError(t, tmpfile.Close())

	cfg, err := Load(tmpfile.Name())
	require.NoError(t, err)
	assert.NotNil(t, cfg)

	// Should use defaults for missing fields
	assert.Equal(t, "/dev/ttyACM0", cfg.Serial.Port)
	assert.Equal(t, 900, cfg.Coolant.ADCMax)
	assert.Equal(t, 500*time.Millisecond, cfg.Display.FlashInterval)
}

func TestSave(t *testing.T) {
	cfg := Default()
	cfg.Serial.Port = "/dev/ttyUSB0"
	cfg.Fuel.ReserveLiters = 8

	tmpfile, err := os.CreateTemp("", "test_save_*.yaml")
	require.NoError(t, err)
	defer os.Remove(tmpfile.Name())

	err = cfg.Save(tmpfile.Name())
	require.NoError(t, err)

	// Load it back and verify
	loaded, err := Load(tmpfile.Name())
	require.NoError(t, err)
	assert.Equal(t, "/dev/ttyUSB0", loaded.Serial.Port)
	assert.Equal(t, 8, loaded.Fuel.ReserveLiters)
}

func TestConfig_Maps(t *testing.T) {
	cfg := Default()

	coolant := cfg.Coolant.Map()
	assert.Equal(t, 60, coolant.Apply(500))

	fuel := cfg.Fuel.Map()
	assert.Equal(t, 0, fuel.Apply(80))
	assert.Equal(t, 50, fuel.Apply(900))

	glow := cfg.Glow.DurationMap()
	assert.Equal(t, 8, glow.Apply(0))
	assert.Equal(t, 3, glow.Apply(70))
}

func TestConfig_Validate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr bool
	}{
		{"defaults are valid", func(c *Config) {}, false},
		{"empty coolant range", func(c *Config) { c.Coolant.ADCMin, c.Coolant.ADCMax = 512, 512 }, true},
		{"empty fuel range", func(c *Config) { c.Fuel.ADCMin, c.Fuel.ADCMax = 80, 80 }, true},
		{"empty glow range", func(c *Config) { c.Glow.TempMinC, c.Glow.TempMaxC = 40, 40 }, true},
		{"zero flash interval", func(c *Config) { c.Display.FlashInterval = 0 }, true},
		{"negative frame period", func(c *Config) { c.Display.FramePeriod = -time.Second }, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.mutate(cfg)
			err := cfg.Validate()
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestConfig_Validate_WrapsEmptyRange(t *testing.T) {
	cfg := Default()
	cfg.Coolant.ADCMin = cfg.Coolant.ADCMax
	err := cfg.Validate()
	require.Error(t, err)
	assert.True(t, errors.Is(err, calib.ErrEmptyRange))
}
