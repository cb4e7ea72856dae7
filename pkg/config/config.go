package config

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/itohio/govic/pkg/calib"
)

// Config represents the application configuration.
type Config struct {
	Serial  SerialConfig  `yaml:"serial"`
	Oil     OilConfig     `yaml:"oil"`
	Coolant CoolantConfig `yaml:"coolant"`
	Fuel    FuelConfig    `yaml:"fuel"`
	Glow    GlowConfig    `yaml:"glow"`
	Display DisplayConfig `yaml:"display"`
	Mock    MockConfig    `yaml:"mock"`
}

// SerialConfig contains serial port configuration.
type SerialConfig struct {
	Port          string `yaml:"port"`
	AverageFrames int    `yaml:"average_frames"` // Sliding window over raw frames (0 = disabled, default)
}

// OilConfig describes the oil pressure switch.
type OilConfig struct {
	ActiveHigh bool `yaml:"active_high"` // Pin level that means pressure lost
}

// CoolantConfig contains the coolant sender calibration and thresholds.
type CoolantConfig struct {
	ADCMin     int `yaml:"adc_min"`
	ADCMax     int `yaml:"adc_max"`
	MinC       int `yaml:"min_c"`
	MaxC       int `yaml:"max_c"`
	NormalMinC int `yaml:"normal_min_c"` // Below this the engine is still cold
	CriticalC  int `yaml:"critical_c"`   // Strictly above this is overheat
}

// Map returns the ADC-to-Celsius calibration.
func (c CoolantConfig) Map() calib.Map {
	return calib.Map{InMin: c.ADCMin, InMax: c.ADCMax, OutMin: c.MinC, OutMax: c.MaxC}
}

// FuelConfig contains the fuel sender calibration and thresholds.
type FuelConfig struct {
	ADCMin         int `yaml:"adc_min"`
	ADCMax         int `yaml:"adc_max"`
	MinLiters      int `yaml:"min_liters"`
	MaxLiters      int `yaml:"max_liters"`
	ReserveLiters  int `yaml:"reserve_liters"`  // At or below: reserve warning
	CriticalLiters int `yaml:"critical_liters"` // At or below: critical
}

// Map returns the ADC-to-liters calibration.
func (f FuelConfig) Map() calib.Map {
	return calib.Map{InMin: f.ADCMin, InMax: f.ADCMax, OutMin: f.MinLiters, OutMax: f.MaxLiters}
}

// GlowConfig maps coolant temperature at ignition to glow plug duration.
// The mapping is inverse: a cold engine glows MaxSeconds, a warm one MinSeconds.
type GlowConfig struct {
	TempMinC   int `yaml:"temp_min_c"`
	TempMaxC   int `yaml:"temp_max_c"`
	MaxSeconds int `yaml:"max_seconds"`
	MinSeconds int `yaml:"min_seconds"`
}

// DurationMap returns the temperature-to-seconds calibration.
func (g GlowConfig) DurationMap() calib.Map {
	return calib.Map{InMin: g.TempMinC, InMax: g.TempMaxC, OutMin: g.MaxSeconds, OutMax: g.MinSeconds}
}

// DisplayConfig contains frame timing parameters.
type DisplayConfig struct {
	FlashInterval time.Duration `yaml:"flash_interval"` // Alert blink half-period
	FramePeriod   time.Duration `yaml:"frame_period"`   // Tick and redraw period
}

// MockConfig contains simulated engine configuration.
type MockConfig struct {
	AmbientC          float64       `yaml:"ambient_c"`            // Coolant temperature at startup (C)
	RunningC          float64       `yaml:"running_c"`            // Operating temperature the engine approaches (C)
	WarmupSeconds     float64       `yaml:"warmup_seconds"`       // Thermal time constant
	FullLiters        float64       `yaml:"full_liters"`          // Fuel at startup
	DrainLitersPerMin float64       `yaml:"drain_liters_per_min"` // Fuel consumption
	OilOkAfter        time.Duration `yaml:"oil_ok_after"`         // Oil pressure builds this long after start
	GlowPressAt       time.Duration `yaml:"glow_press_at"`        // Scripted glow button press (0 = never)
	NoiseCounts       float64       `yaml:"noise_counts"`         // ADC noise amplitude (counts)
	SampleRate        time.Duration `yaml:"sample_rate"`
}

// Default returns a default configuration with sensible values.
func Default() *Config {
	return &Config{
		Serial: SerialConfig{
			Port:          "COM3", // Default for Windows, should be "/dev/ttyACM0" on Linux/Mac
			AverageFrames: 0,      // No host-side averaging by default, the MCU already averages
		},
		Oil: OilConfig{
			ActiveHigh: true, // Pressure switch pulls the line high when pressure is lost
		},
		Coolant: CoolantConfig{
			ADCMin:     100,
			ADCMax:     900,
			MinC:       0,
			MaxC:       120,
			NormalMinC: 70,
			CriticalC:  100,
		},
		Fuel: FuelConfig{
			ADCMin:         80,
			ADCMax:         900,
			MinLiters:      0,
			MaxLiters:      50,
			ReserveLiters:  10,
			CriticalLiters: 5,
		},
		Glow: GlowConfig{
			TempMinC:   0,
			TempMaxC:   70,
			MaxSeconds: 8,
			MinSeconds: 3,
		},
		Display: DisplayConfig{
			FlashInterval: 500 * time.Millisecond,
			FramePeriod:   50 * time.Millisecond, // 20 Hz
		},
		Mock: MockConfig{
			AmbientC:          15.0,
			RunningC:          90.0,
			WarmupSeconds:     20.0,
			FullLiters:        12.0,
			DrainLitersPerMin: 1.0,
			OilOkAfter:        1500 * time.Millisecond,
			GlowPressAt:       0,
			NoiseCounts:       2.0,
			SampleRate:        50 * time.Millisecond,
		},
	}
}

// Load loads configuration from a YAML file. If the file doesn't exist or
// fields are missing, it uses default values.
func Load(filename string) (*Config, error) {
	cfg := Default()

	data, err := os.ReadFile(filename)
	if err != nil {
		if os.IsNotExist(err) {
			// File doesn't exist, return defaults
			return cfg, nil
		}
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	// Ensure minimum required fields are set (use defaults if missing)
	cfg.ensureDefaults()

	return cfg, nil
}

// Save saves the configuration to a YAML file.
func (c *Config) Save(filename string) error {
	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.WriteFile(filename, data, 0644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}

// Validate checks that every calibration map can be applied and the timing
// parameters are usable. A broken calibration is fatal at startup; nothing
// downstream guards against an empty input range.
func (c *Config) Validate() error {
	if err := c.Coolant.Map().Validate(); err != nil {
		return fmt.Errorf("coolant sender: %w", err)
	}
	if err := c.Fuel.Map().Validate(); err != nil {
		return fmt.Errorf("fuel sender: %w", err)
	}
	if err := c.Glow.DurationMap().Validate(); err != nil {
		return fmt.Errorf("glow duration: %w", err)
	}
	if c.Display.FlashInterval <= 0 {
		return fmt.Errorf("display: flash_interval must be positive, got %v", c.Display.FlashInterval)
	}
	if c.Display.FramePeriod <= 0 {
		return fmt.Errorf("display: frame_period must be positive, got %v", c.Display.FramePeriod)
	}
	return nil
}

// ensureDefaults ensures that all required fields have default values if missing.
// Fields where zero is meaningful (average_frames, glow_press_at, noise,
// range minimums) are left alone.
func (c *Config) ensureDefaults() {
	def := Default()

	if c.Serial.Port == "" {
		c.Serial.Port = def.Serial.Port
	}

	if c.Coolant.ADCMin == 0 {
		c.Coolant.ADCMin = def.Coolant.ADCMin
	}
	if c.Coolant.ADCMax == 0 {
		c.Coolant.ADCMax = def.Coolant.ADCMax
	}
	if c.Coolant.MaxC == 0 {
		c.Coolant.MaxC = def.Coolant.MaxC
	}
	if c.Coolant.NormalMinC == 0 {
		c.Coolant.NormalMinC = def.Coolant.NormalMinC
	}
	if c.Coolant.CriticalC == 0 {
		c.Coolant.CriticalC = def.Coolant.CriticalC
	}

	if c.Fuel.ADCMin == 0 {
		c.Fuel.ADCMin = def.Fuel.ADCMin
	}
	if c.Fuel.ADCMax == 0 {
		c.Fuel.ADCMax = def.Fuel.ADCMax
	}
	if c.Fuel.MaxLiters == 0 {
		c.Fuel.MaxLiters = def.Fuel.MaxLiters
	}
	if c.Fuel.ReserveLiters == 0 {
		c.Fuel.ReserveLiters = def.Fuel.ReserveLiters
	}
	if c.Fuel.CriticalLiters == 0 {
		c.Fuel.CriticalLiters = def.Fuel.CriticalLiters
	}

	if c.Glow.TempMaxC == 0 {
		c.Glow.TempMaxC = def.Glow.TempMaxC
	}
	if c.Glow.MaxSeconds == 0 {
		c.Glow.MaxSeconds = def.Glow.MaxSeconds
	}
	if c.Glow.MinSeconds == 0 {
		c.Glow.MinSeconds = def.Glow.MinSeconds
	}

	if c.Display.FlashInterval == 0 {
		c.Display.FlashInterval = def.Display.FlashInterval
	}
	if c.Display.FramePeriod == 0 {
		c.Display.FramePeriod = def.Display.FramePeriod
	}

	if c.Mock.RunningC == 0 {
		c.Mock.RunningC = def.Mock.RunningC
	}
	if c.Mock.WarmupSeconds == 0 {
		c.Mock.WarmupSeconds = def.Mock.WarmupSeconds
	}
	if c.Mock.FullLiters == 0 {
		c.Mock.FullLiters = def.Mock.FullLiters
	}
	if c.Mock.SampleRate == 0 {
		c.Mock.SampleRate = def.Mock.SampleRate
	}
}
