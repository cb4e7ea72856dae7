package cluster

import (
	"github.com/itohio/govic/pkg/config"
)

// Severity grades a reading against its thresholds.
type Severity int

const (
	SeverityNormal Severity = iota
	SeverityWarning
	SeverityCritical
)

func (s Severity) String() string {
	switch s {
	case SeverityWarning:
		return "warning"
	case SeverityCritical:
		return "critical"
	default:
		return "normal"
	}
}

// Critical reports whether the severity demands the alert treatment.
func (s Severity) Critical() bool {
	return s == SeverityCritical
}

// classifyOil grades the oil switch level. The switch is binary: pressure is
// either present or lost, there is no warning band.
func classifyOil(level bool, cfg config.OilConfig) Severity {
	if level == cfg.ActiveHigh {
		return SeverityCritical
	}
	return SeverityNormal
}

// classifyCoolant grades the coolant temperature. Overheat is strictly above
// the critical threshold; below the normal band the engine is merely cold,
// which warns but never flashes.
func classifyCoolant(c int, cfg config.CoolantConfig) Severity {
	switch {
	case c > cfg.CriticalC:
		return SeverityCritical
	case c < cfg.NormalMinC:
		return SeverityWarning
	default:
		return SeverityNormal
	}
}

// classifyFuel grades the fuel level. Reaching the critical threshold counts
// as critical (inclusive); the reserve band warns first.
func classifyFuel(l int, cfg config.FuelConfig) Severity {
	switch {
	case l <= cfg.CriticalLiters:
		return SeverityCritical
	case l <= cfg.ReserveLiters:
		return SeverityWarning
	default:
		return SeverityNormal
	}
}
