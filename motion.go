package arcgallery

import (
	"math"
	"time"
)

// settleEpsilon is the distance in pixels under which Current counts as
// having reached Target.
const settleEpsilon = 0.5

// step runs one frame of the motion simulator: ease Current toward Target,
// place every item against that single Current, then record it as the
// direction sample for the next frame.
func (g *Gallery) step() {
	var t0 time.Time
	if g.cfg.Debug {
		t0 = time.Now()
	}

	g.scroll.Current = lerp(g.scroll.Current, g.scroll.Target, g.cfg.ScrollEase)
	forward := g.scroll.Current > g.scroll.Last

	wraps := g.place(forward)
	g.scroll.Last = g.scroll.Current

	if g.cfg.Renderer != nil {
		g.cfg.Renderer.Render(Frame{
			SurfaceWidth: g.layout.SurfaceWidth,
			Scroll:       g.scroll,
			Placements:   g.placements,
		})
	}

	g.checkSettle()

	if g.cfg.Debug {
		g.debugLog(frameStats{
			frame:     g.frame,
			placeTime: time.Since(t0),
			wraps:     wraps,
			current:   g.scroll.Current,
			target:    g.scroll.Target,
			forward:   forward,
		})
	}
}

// checkSettle emits EventSettle once each time Current comes within
// settleEpsilon of Target.
func (g *Gallery) checkSettle() {
	if math.Abs(g.scroll.Target-g.scroll.Current) >= settleEpsilon {
		g.settled = false
		return
	}
	if g.settled {
		return
	}
	g.settled = true
	s, idx := g.slotAt(g.scroll.Target)
	g.emit(Event{Type: EventSettle, Index: idx, Slot: s, Target: g.scroll.Target})
}
