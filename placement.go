package arcgallery

import "math"

// ArcTransform maps a strip offset x onto a circular arc through the center
// of the surface and its two edges at ±halfWidth, with sagitta |bend| at the
// edges. It returns the vertical offset (Y up) and the rotation that keeps
// the card tangent to the arc. Offsets past halfWidth are clamped to the edge
// value. A zero bend or halfWidth is the flat strip: (0, 0).
//
// Positive bend lowers the edges, negative bend raises them. The mapping is
// symmetric: y(x) == y(-x) and rotation(x) == -rotation(-x).
func ArcTransform(x, halfWidth, bend float64) (y, rotation float64) {
	if bend == 0 || halfWidth <= 0 || !finite(x) {
		return 0, 0
	}
	b := math.Abs(bend)
	r := (halfWidth*halfWidth + b*b) / (2 * b)
	e := math.Min(math.Abs(x), halfWidth)
	arc := r - math.Sqrt(math.Max(r*r-e*e, 0))
	angle := math.Asin(math.Min(e/r, 1))
	if bend > 0 {
		return -arc, -sign(x) * angle
	}
	return arc, sign(x) * angle
}

// place computes every slot's transform for the current scroll position and
// relocates slots that left the visible region behind the direction of
// travel. A relocation changes where the slot is drawn from the next frame
// on; the transform emitted this frame is the pre-wrap one. Each slot wraps
// at most once per frame. Returns the number of relocations.
func (g *Gallery) place(forward bool) int {
	l := g.layout
	half := l.ItemWidth / 2
	cur := g.scroll.Current
	wraps := 0

	g.placements = g.placements[:0]
	for i := range g.slots {
		s := &g.slots[i]
		x := float64(i)*l.ItemPitch + float64(s.turns)*l.StripLength - cur
		y, rot := ArcTransform(x, l.HalfWidth, g.cfg.Bend)

		g.placements = append(g.placements, Placement{
			Slot:  i,
			Index: s.index,
			Item:  g.items[s.index],
			Transform: Transform{
				X: x, Y: y, Rotation: rot,
				Width: l.ItemWidth, Height: l.ItemHeight,
			},
		})

		var dir int
		switch {
		case forward && x+half < -l.HalfWidth:
			dir = 1
		case !forward && x-half > l.HalfWidth:
			dir = -1
		default:
			continue
		}
		s.turns += dir
		wraps++
		g.emit(Event{
			Type:   EventWrap,
			Index:  s.index,
			Slot:   i,
			Target: g.scroll.Target,
			Width:  float64(dir) * l.StripLength,
		})
	}
	return wraps
}
