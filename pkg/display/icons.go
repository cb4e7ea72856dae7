package display

// 8x8 monochrome icons, one byte per row.
var (
	// IconOil is an oil droplet.
	IconOil = Bitmap{W: 8, H: 8, Pix: []byte{
		0b00011000,
		0b00111100,
		0b01111110,
		0b00111100,
		0b01111110,
		0b00111100,
		0b00011000,
		0b00000000,
	}}

	// IconCoolant is a thermometer.
	IconCoolant = Bitmap{W: 8, H: 8, Pix: []byte{
		0b00011000,
		0b00011000,
		0b00011000,
		0b00011000,
		0b00111100,
		0b00111100,
		0b00011000,
		0b00000000,
	}}

	// IconFuel is a fuel pump.
	IconFuel = Bitmap{W: 8, H: 8, Pix: []byte{
		0b00111100,
		0b01111110,
		0b01000010,
		0b01011010,
		0b01011010,
		0b01000010,
		0b01111110,
		0b00111100,
	}}

	// IconGlow is a glow plug with its heating coil.
	IconGlow = Bitmap{W: 8, H: 8, Pix: []byte{
		0b00011000,
		0b00011000,
		0b00111100,
		0b00111100,
		0b01011010,
		0b00100100,
		0b01011010,
		0b00111100,
	}}
)
