// Package display composes cluster frames into ordered draw calls against an
// abstract surface. The logical canvas is a 128x96 indexed-palette screen in
// the style of a composite video output; concrete surfaces (the fyne screen
// widget, the recording surface used in tests) decide how hue and luma become
// actual pixels.
package display

// Logical canvas dimensions.
const (
	Width  = 128
	Height = 96
)

// Color is an indexed palette entry: a hue slot plus a luma level.
type Color struct {
	Hue  uint8
	Luma uint8
}

// Bitmap is a monochrome icon, one bit per pixel, rows packed MSB-first.
type Bitmap struct {
	W, H int
	Pix  []byte
}

// At reports whether the pixel at (x, y) is set. Out-of-bounds reads are
// false so surfaces can iterate without guarding.
func (b Bitmap) At(x, y int) bool {
	if x < 0 || y < 0 || x >= b.W || y >= b.H {
		return false
	}
	stride := (b.W + 7) / 8
	octet := b.Pix[y*stride+x/8]
	return octet&(0x80>>uint(x%8)) != 0
}

// Surface is the drawing boundary the composer targets. Implementations must
// treat zero or negative rectangle dimensions as a no-op.
type Surface interface {
	// Size returns the logical canvas dimensions.
	Size() (w, h int)
	// Fill paints the whole canvas.
	Fill(c Color)
	// FillRect paints a solid rectangle.
	FillRect(x, y, w, h int, c Color)
	// StrokeRect paints a one pixel rectangle outline.
	StrokeRect(x, y, w, h int, c Color)
	// DrawBitmap paints the set bits of a bitmap in the given color.
	DrawBitmap(x, y int, bm Bitmap, c Color)
	// DrawText paints a string with its top-left corner at (x, y).
	DrawText(x, y int, s string, c Color)
}
