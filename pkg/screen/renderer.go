package screen

import (
	"image/color"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"github.com/chewxy/math32"

	"github.com/itohio/govic/pkg/display"
)

// clusterRenderer renders the cluster widget.
type clusterRenderer struct {
	cluster *ClusterWidget

	// Background (letterbox fill behind the logical canvas)
	backdrop *canvas.Rectangle

	// Objects list for Fyne
	objects []fyne.CanvasObject

	// Track last size to detect changes
	lastSize fyne.Size
}

// MinSize returns the minimum size of the widget.
func (r *clusterRenderer) MinSize() fyne.Size {
	return fyne.NewSize(2*display.Width, 2*display.Height)
}

// Layout arranges the widget components.
func (r *clusterRenderer) Layout(size fyne.Size) {
	// Backdrop fills entire widget
	r.backdrop.Resize(size)

	// Check if size changed
	if r.lastSize.Width != size.Width || r.lastSize.Height != size.Height {
		r.lastSize = size
		// Size changed, trigger widget refresh to redraw with new dimensions
		// Use BaseWidget.Refresh() to properly trigger Fyne's refresh cycle
		r.cluster.BaseWidget.Refresh()
	}
}

// Refresh updates the widget display.
func (r *clusterRenderer) Refresh() {
	r.cluster.mu.RLock()
	frame := r.cluster.frame
	have := r.cluster.have
	r.cluster.mu.RUnlock()

	size := r.cluster.Size()
	if size.Width == 0 || size.Height == 0 {
		return
	}

	// Clear old objects (but keep backdrop)
	r.objects = []fyne.CanvasObject{r.backdrop}

	surface := newCanvasSurface(r, size)
	if !have {
		surface.Fill(display.Backdrop)
		surface.DrawText(37, 44, "NO SIGNAL", display.Color{Hue: display.HueNeutral, Luma: display.LumaBright})
		return
	}

	r.cluster.composer.Compose(surface, frame)
}

// Objects returns all canvas objects for rendering.
func (r *clusterRenderer) Objects() []fyne.CanvasObject {
	return r.objects
}

// Destroy cleans up resources.
func (r *clusterRenderer) Destroy() {
	// Cleanup handled by Fyne
}

// paletteRGB holds the full-luma color of each hue slot. Slots 1..5 form the
// red to green gauge ramp.
var paletteRGB = [7]color.RGBA{
	{R: 230, G: 230, B: 230, A: 255}, // neutral
	{R: 220, G: 40, B: 40, A: 255},   // red
	{R: 230, G: 150, B: 30, A: 255},  // amber
	{R: 225, G: 215, B: 40, A: 255},  // yellow
	{R: 150, G: 210, B: 50, A: 255},  // yellow-green
	{R: 50, G: 200, B: 70, A: 255},   // green
	{R: 70, G: 140, B: 230, A: 255},  // cold blue
}

// canvasSurface adapts the renderer's object list to the display.Surface
// boundary, scaling logical 128x96 coordinates to the widget size.
type canvasSurface struct {
	r     *clusterRenderer
	scale float32
	offX  float32
	offY  float32
}

var _ display.Surface = (*canvasSurface)(nil)

func newCanvasSurface(r *clusterRenderer, size fyne.Size) *canvasSurface {
	sx := size.Width / float32(display.Width)
	sy := size.Height / float32(display.Height)
	scale := math32.Min(sx, sy)

	// Center the logical canvas inside the widget
	return &canvasSurface{
		r:     r,
		scale: scale,
		offX:  (size.Width - scale*float32(display.Width)) / 2,
		offY:  (size.Height - scale*float32(display.Height)) / 2,
	}
}

// rgba resolves a palette color to RGB, scaling brightness by luma.
func (s *canvasSurface) rgba(c display.Color) color.RGBA {
	base := paletteRGB[0]
	if int(c.Hue) < len(paletteRGB) {
		base = paletteRGB[c.Hue]
	}

	k := math32.Min(float32(c.Luma)/float32(display.LumaBright), 1)
	return color.RGBA{
		R: uint8(math32.Round(float32(base.R) * k)),
		G: uint8(math32.Round(float32(base.G) * k)),
		B: uint8(math32.Round(float32(base.B) * k)),
		A: 255,
	}
}

// pos converts logical coordinates to widget coordinates.
func (s *canvasSurface) pos(x, y int) fyne.Position {
	return fyne.NewPos(s.offX+float32(x)*s.scale, s.offY+float32(y)*s.scale)
}

func (s *canvasSurface) Size() (int, int) {
	return display.Width, display.Height
}

func (s *canvasSurface) Fill(c display.Color) {
	rect := canvas.NewRectangle(s.rgba(c))
	rect.Move(s.pos(0, 0))
	rect.Resize(fyne.NewSize(s.scale*float32(display.Width), s.scale*float32(display.Height)))
	s.r.objects = append(s.r.objects, rect)
}

func (s *canvasSurface) FillRect(x, y, w, h int, c display.Color) {
	if w <= 0 || h <= 0 {
		return
	}
	rect := canvas.NewRectangle(s.rgba(c))
	rect.Move(s.pos(x, y))
	rect.Resize(fyne.NewSize(float32(w)*s.scale, float32(h)*s.scale))
	s.r.objects = append(s.r.objects, rect)
}

func (s *canvasSurface) StrokeRect(x, y, w, h int, c display.Color) {
	if w <= 0 || h <= 0 {
		return
	}
	rect := canvas.NewRectangle(color.Transparent)
	rect.StrokeColor = s.rgba(c)
	rect.StrokeWidth = math32.Max(1, s.scale)
	rect.Move(s.pos(x, y))
	rect.Resize(fyne.NewSize(float32(w)*s.scale, float32(h)*s.scale))
	s.r.objects = append(s.r.objects, rect)
}

func (s *canvasSurface) DrawBitmap(x, y int, bm display.Bitmap, c display.Color) {
	// One rectangle per set pixel; icons are 8x8 so this stays cheap.
	fill := s.rgba(c)
	px := math32.Max(1, s.scale)
	for row := range bm.H {
		for col := range bm.W {
			if !bm.At(col, row) {
				continue
			}
			dot := canvas.NewRectangle(fill)
			dot.Move(s.pos(x+col, y+row))
			dot.Resize(fyne.NewSize(px, px))
			s.r.objects = append(s.r.objects, dot)
		}
	}
}

func (s *canvasSurface) DrawText(x, y int, str string, c display.Color) {
	text := canvas.NewText(str, s.rgba(c))
	text.TextSize = 8 * s.scale
	text.TextStyle = fyne.TextStyle{Monospace: true}
	text.Move(s.pos(x, y))
	s.r.objects = append(s.r.objects, text)
}
