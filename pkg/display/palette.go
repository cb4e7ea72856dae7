package display

// Hue slots. The gauge ramps interpolate across 1..5 from red to green, so
// the cold slot sits outside that range on purpose.
const (
	HueNeutral uint8 = 0
	HueRed     uint8 = 1
	HueAmber   uint8 = 2
	HueGreen   uint8 = 5
	HueCold    uint8 = 6
)

// Luma levels. Two are enough: the backdrop and everything drawn on it.
const (
	LumaDark   uint8 = 0
	LumaBright uint8 = 40
)

// Fixed colors used by the composer.
var (
	// Backdrop is the normal dark background.
	Backdrop = Color{Hue: HueNeutral, Luma: LumaDark}
	// Alert is the bright flashing background while anything is critical.
	Alert = Color{Hue: HueRed, Luma: LumaBright}
)
