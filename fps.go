package kinetic

import (
	"fmt"
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
)

// fpsRefresh is how often, in seconds, the overlay text is redrawn.
const fpsRefresh = 0.5

// fpsOverlay is a cached FPS/TPS readout drawn in the window's top-left
// corner. The text is re-rendered only every fpsRefresh seconds.
type fpsOverlay struct {
	img     *ebiten.Image
	elapsed float64
	text    string
	dirty   bool
}

func newFPSOverlay() *fpsOverlay {
	return &fpsOverlay{dirty: true}
}

// update advances the refresh timer and samples the rates when it expires.
func (o *fpsOverlay) update(dt float64, fps, tps float64) {
	o.elapsed += dt
	if o.elapsed < fpsRefresh && o.text != "" {
		return
	}
	o.elapsed = 0
	text := fmt.Sprintf("FPS: %.1f\nTPS: %.1f", fps, tps)
	if text != o.text {
		o.text = text
		o.dirty = true
	}
}

func (o *fpsOverlay) draw(screen *ebiten.Image) {
	if o.img == nil {
		// 100x32 fits two lines of the debug font.
		o.img = ebiten.NewImage(100, 32)
	}
	if o.dirty {
		o.img.Fill(color.RGBA{0, 0, 0, 128})
		ebitenutil.DebugPrint(o.img, o.text)
		o.dirty = false
	}
	screen.DrawImage(o.img, nil)
}
