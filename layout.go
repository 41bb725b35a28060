package arcgallery

import "math"

// computeLayout derives the layout constants for a surface width and a
// working set of slots items. A non-positive width yields the zero Layout.
func computeLayout(width float64, slots int) Layout {
	if width <= 0 || !finite(width) {
		return Layout{}
	}
	w := math.Min(width*itemWidthRatio, MaxItemWidth)
	pitch := w + ItemPadding
	return Layout{
		SurfaceWidth: width,
		ItemWidth:    w,
		ItemHeight:   w * itemAspect,
		ItemPitch:    pitch,
		HalfWidth:    width / 2,
		StripLength:  pitch * float64(slots),
	}
}

// Resize reports the current surface width in pixels. The first nonzero
// width is applied immediately and centers the strip. Later changes are
// applied once the width has been stable for ResizeSettle; repeating the
// current width is a no-op, so hosts may call Resize every frame. A zero
// width after the first measurement keeps the current layout.
func (g *Gallery) Resize(width float64) {
	if g.inert() || !finite(width) || width < 0 {
		return
	}

	if !g.measured {
		if width == 0 {
			return
		}
		g.applyWidth(width)
		g.center()
		g.measured = true
		return
	}

	if width == 0 {
		// Minimized or hidden surface: hold the current layout.
		return
	}
	if width == g.layout.SurfaceWidth {
		// Back to the applied width before the settle window closed.
		g.resizeTask.cancel()
		return
	}
	if g.resizeTask.pending && width == g.pendingWidth {
		return
	}
	g.pendingWidth = width
	g.resizeTask.schedule(g.clock, ResizeSettle)
}

// applyWidth recomputes the layout constants. Scroll positions are rescaled
// by the pitch ratio so the same item stays centered; placement reads the
// new constants on the next frame.
func (g *Gallery) applyWidth(width float64) {
	old := g.layout.ItemPitch
	g.layout = computeLayout(width, len(g.slots))
	if old > 0 && g.layout.ItemPitch > 0 {
		g.rescale(g.layout.ItemPitch / old)
	}
	g.cfg.Logger.Debug("layout",
		"width", width,
		"itemWidth", g.layout.ItemWidth,
		"pitch", g.layout.ItemPitch)
	g.emit(Event{Type: EventLayout, Index: -1, Slot: -1, Target: g.scroll.Target, Width: width})
}

// rescale multiplies every strip position held by the gallery by f.
func (g *Gallery) rescale(f float64) {
	g.scroll.Current *= f
	g.scroll.Target *= f
	g.scroll.Last *= f
	g.drag.anchor *= f
	if g.tween != nil {
		g.scroll.Target = g.tween.to * f
		g.tween = nil
	}
}

// center puts the middle of the working strip at the center of the surface.
func (g *Gallery) center() {
	mid := g.layout.ItemPitch * float64(len(g.slots)) / 2
	g.scroll = ScrollState{Current: mid, Target: mid, Last: mid}
	for i := range g.slots {
		g.slots[i].turns = 0
	}
	g.settled = true
}
