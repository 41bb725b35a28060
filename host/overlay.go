package host

import (
	"fmt"
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
)

// fpsRefresh is how often, in seconds, the overlay text is refreshed.
const fpsRefresh = 0.5

// fpsOverlay shows FPS, TPS and the centered item. The text is refreshed
// every fpsRefresh seconds rather than every frame.
type fpsOverlay struct {
	img     *ebiten.Image
	elapsed float64
	fps     float64
	tps     float64
	index   int
	dirty   bool
}

func newFPSOverlay() *fpsOverlay {
	return &fpsOverlay{index: -1, dirty: true}
}

// update accumulates dt and samples the ebiten counters when due.
func (o *fpsOverlay) update(dt float64) {
	o.elapsed += dt
	if o.elapsed < fpsRefresh {
		return
	}
	o.elapsed = 0
	o.fps = ebiten.ActualFPS()
	o.tps = ebiten.ActualTPS()
	o.dirty = true
}

func (o *fpsOverlay) text() string {
	return fmt.Sprintf("FPS: %.1f\nTPS: %.1f\nItem: %d", o.fps, o.tps, o.index)
}

func (o *fpsOverlay) draw(screen *ebiten.Image, index int) {
	if index != o.index {
		o.index = index
		o.dirty = true
	}
	if o.img == nil {
		// 110x48 fits three debug-font lines.
		o.img = ebiten.NewImage(110, 48)
	}
	if o.dirty {
		o.img.Clear()
		// Semi-transparent background for readability
		o.img.Fill(color.RGBA{0, 0, 0, 128})
		ebitenutil.DebugPrint(o.img, o.text())
		o.dirty = false
	}
	screen.DrawImage(o.img, nil)
}
