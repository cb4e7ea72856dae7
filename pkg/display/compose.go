package display

import (
	"strconv"

	"github.com/itohio/govic/pkg/calib"
	"github.com/itohio/govic/pkg/cluster"
	"github.com/itohio/govic/pkg/config"
)

// Row layout. Each sensor occupies one row: icon, gauge, readout.
const (
	oilRowY     = 10
	coolantRowY = 30
	fuelRowY    = 50

	iconX    = 0
	labelX   = 15
	gaugeX   = 20
	gaugeW   = 42
	gaugeH   = 10
	barMaxW  = gaugeW - 2
	readoutX = 70

	// Logical font cell width used to place the degree mark after a number.
	charW = 6
)

// Composer turns one cluster frame into draw calls. The bar and hue ramps are
// derived from the sender calibration once at construction.
type Composer struct {
	coolantBar calib.Map
	fuelBar    calib.Map
	coolantHue calib.Map
	fuelHue    calib.Map
}

// NewComposer builds a composer for the configured gauge ranges.
func NewComposer(cfg *config.Config) *Composer {
	return &Composer{
		coolantBar: calib.Map{InMin: cfg.Coolant.MinC, InMax: cfg.Coolant.MaxC, OutMax: barMaxW},
		fuelBar:    calib.Map{InMin: cfg.Fuel.MinLiters, InMax: cfg.Fuel.MaxLiters, OutMax: barMaxW},
		coolantHue: calib.Map{
			InMin:  cfg.Coolant.NormalMinC,
			InMax:  cfg.Coolant.CriticalC,
			OutMin: int(HueGreen),
			OutMax: int(HueRed),
		},
		fuelHue: calib.Map{
			InMin:  cfg.Fuel.CriticalLiters,
			InMax:  cfg.Fuel.ReserveLiters + 10,
			OutMin: int(HueRed),
			OutMax: int(HueGreen),
		},
	}
}

// Compose draws a full frame: background first, then either the glow
// countdown screen or the three sensor rows. Text drawn over the bright alert
// background swaps to the dark luma so it stays legible.
func (c *Composer) Compose(s Surface, f cluster.Frame) {
	bg := Backdrop
	textLuma := LumaBright
	if f.AnyCritical && f.FlashBright {
		bg = Alert
		textLuma = LumaDark
	}
	s.Fill(bg)

	if f.Glow.Active {
		c.drawGlow(s, f, textLuma)
		return
	}

	c.drawOil(s, f, textLuma)
	c.drawCoolant(s, f, textLuma)
	c.drawFuel(s, f, textLuma)
}

func (c *Composer) drawOil(s Surface, f cluster.Frame, textLuma uint8) {
	s.DrawBitmap(iconX, oilRowY, IconOil, Color{Hue: HueNeutral, Luma: LumaBright})

	label, hue := "OIL OK", HueGreen
	if f.Oil.Critical() {
		label, hue = "OIL LOW", HueRed
	}
	s.DrawText(labelX, oilRowY, label, Color{Hue: hue, Luma: textLuma})
}

func (c *Composer) drawCoolant(s Surface, f cluster.Frame, textLuma uint8) {
	s.DrawBitmap(iconX, coolantRowY, IconCoolant, Color{Hue: HueNeutral, Luma: LumaBright})
	s.StrokeRect(gaugeX, coolantRowY, gaugeW, gaugeH, Color{Hue: HueNeutral, Luma: LumaBright})

	hue := uint8(c.coolantHue.Apply(f.Reading.CoolantC))
	if f.Coolant == cluster.SeverityWarning {
		hue = HueCold
	}
	width := c.coolantBar.Apply(f.Reading.CoolantC)
	s.FillRect(gaugeX+1, coolantRowY+1, width, gaugeH-2, Color{Hue: hue, Luma: LumaBright})

	text := Color{Hue: HueNeutral, Luma: textLuma}
	value := strconv.Itoa(f.Reading.CoolantC)
	s.DrawText(readoutX, coolantRowY, value, text)

	degX := readoutX + charW*len(value)
	s.FillRect(degX, coolantRowY, 2, 2, text)
	s.DrawText(degX+4, coolantRowY, "C", text)
}

func (c *Composer) drawFuel(s Surface, f cluster.Frame, textLuma uint8) {
	icon := Color{Hue: HueNeutral, Luma: LumaBright}
	if f.Fuel != cluster.SeverityNormal {
		icon.Hue = HueAmber // Reserve or below
	}
	s.DrawBitmap(iconX, fuelRowY, IconFuel, icon)
	s.StrokeRect(gaugeX, fuelRowY, gaugeW, gaugeH, Color{Hue: HueNeutral, Luma: LumaBright})

	hue := uint8(c.fuelHue.Apply(f.Reading.FuelLiters))
	width := c.fuelBar.Apply(f.Reading.FuelLiters)
	s.FillRect(gaugeX+1, fuelRowY+1, width, gaugeH-2, Color{Hue: hue, Luma: LumaBright})

	text := Color{Hue: HueNeutral, Luma: textLuma}
	s.DrawText(readoutX, fuelRowY, strconv.Itoa(f.Reading.FuelLiters)+" L", text)
}

func (c *Composer) drawGlow(s Surface, f cluster.Frame, textLuma uint8) {
	w, h := s.Size()
	cx, cy := w/2, h/2-4

	s.DrawBitmap(cx-14, cy, IconGlow, Color{Hue: HueAmber, Luma: LumaBright})
	s.DrawText(cx+2, cy, strconv.Itoa(f.Glow.Remaining), Color{Hue: HueNeutral, Luma: textLuma})
}
