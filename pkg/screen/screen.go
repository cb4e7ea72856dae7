// Package screen is the fyne rendering of the instrument cluster: a custom
// widget that paints engine frames through the display composer onto a scaled
// 128x96 logical canvas.
package screen

import (
	"image/color"
	"sync"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/widget"

	"github.com/itohio/govic/pkg/cluster"
	"github.com/itohio/govic/pkg/config"
	"github.com/itohio/govic/pkg/display"
)

// ClusterWidget is a custom Fyne widget that displays the instrument cluster.
type ClusterWidget struct {
	widget.BaseWidget

	composer *display.Composer

	// Latest frame (protected by mu)
	mu    sync.RWMutex
	frame cluster.Frame
	have  bool
}

// New creates a new ClusterWidget instance.
func New(cfg *config.Config) *ClusterWidget {
	w := &ClusterWidget{
		composer: display.NewComposer(cfg),
	}
	w.ExtendBaseWidget(w)
	// Trigger initial refresh to display the no-signal screen
	w.Refresh()
	return w
}

// SetFrame updates the widget with a new engine frame.
// This should be called from the render callback using fyne.Do().
func (w *ClusterWidget) SetFrame(f cluster.Frame) {
	w.mu.Lock()
	w.frame = f
	w.have = true
	w.mu.Unlock()

	// Refresh the widget (must be outside lock to avoid potential deadlock)
	w.Refresh()
}

// ClearFrame drops the last frame so the widget falls back to the no-signal
// screen, e.g. after a disconnect.
func (w *ClusterWidget) ClearFrame() {
	w.mu.Lock()
	w.have = false
	w.mu.Unlock()

	w.Refresh()
}

// CreateRenderer creates the widget renderer.
func (w *ClusterWidget) CreateRenderer() fyne.WidgetRenderer {
	backdrop := canvas.NewRectangle(color.RGBA{R: 10, G: 10, B: 10, A: 255}) // Letterbox around the canvas
	return &clusterRenderer{
		cluster:  w,
		backdrop: backdrop,
		objects:  []fyne.CanvasObject{backdrop},
		lastSize: fyne.Size{Width: 0, Height: 0},
	}
}
