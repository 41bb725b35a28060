package arcgallery

import (
	"math"
	"sort"
	"testing"
)

func TestArcTransformFlat(t *testing.T) {
	for _, x := range []float64{-900, -500, -1, 0, 1, 250, 500, 2000} {
		y, rot := ArcTransform(x, 500, 0)
		if y != 0 || rot != 0 {
			t.Errorf("ArcTransform(%v, 500, 0) = (%v, %v), want (0, 0)", x, y, rot)
		}
	}
}

func TestArcTransformEdge(t *testing.T) {
	y, rot := ArcTransform(500, 500, 100)
	if !approxEqual(y, -100, 1e-9) {
		t.Errorf("y = %v, want -100", y)
	}
	if want := -math.Asin(500.0 / 1300.0); !approxEqual(rot, want, 1e-12) {
		t.Errorf("rotation = %v, want %v", rot, want)
	}

	// Beyond the edge the values are clamped.
	y2, rot2 := ArcTransform(1400, 500, 100)
	if y2 != y || rot2 != rot {
		t.Errorf("clamped = (%v, %v), want (%v, %v)", y2, rot2, y, rot)
	}
}

func TestArcTransformCenter(t *testing.T) {
	y, rot := ArcTransform(0, 500, 100)
	if y != 0 || rot != 0 {
		t.Errorf("center = (%v, %v), want (0, 0)", y, rot)
	}
}

func TestArcTransformSymmetry(t *testing.T) {
	for _, bend := range []float64{100, -100, 30, 640} {
		for _, x := range []float64{1, 37.5, 120, 351, 499.9, 500, 812} {
			yp, rp := ArcTransform(x, 500, bend)
			yn, rn := ArcTransform(-x, 500, bend)
			if !approxEqual(yp, yn, 1e-9) {
				t.Errorf("bend %v: y(%v) = %v, y(-%v) = %v", bend, x, yp, x, yn)
			}
			if !approxEqual(rp, -rn, 1e-12) {
				t.Errorf("bend %v: rot(%v) = %v, rot(-%v) = %v", bend, x, rp, x, rn)
			}
		}
	}
}

func TestArcTransformNegativeBendRaisesEdges(t *testing.T) {
	yDown, rotDown := ArcTransform(300, 500, 100)
	yUp, rotUp := ArcTransform(300, 500, -100)
	if yDown >= 0 || yUp <= 0 {
		t.Fatalf("y: bend 100 -> %v, bend -100 -> %v", yDown, yUp)
	}
	if !approxEqual(yDown, -yUp, 1e-9) || !approxEqual(rotDown, -rotUp, 1e-12) {
		t.Errorf("negative bend is not a mirror: (%v, %v) vs (%v, %v)", yDown, rotDown, yUp, rotUp)
	}
}

func TestArcTransformMonotonic(t *testing.T) {
	prev := 0.0
	for x := 10.0; x <= 500; x += 10 {
		y, _ := ArcTransform(x, 500, 100)
		if y >= prev {
			t.Fatalf("y(%v) = %v not below y(%v) = %v", x, y, x-10, prev)
		}
		prev = y
	}
}

func TestArcTransformDegenerate(t *testing.T) {
	cases := []struct{ x, h, bend float64 }{
		{100, 0, 100},
		{100, -10, 100},
		{nan(), 500, 100},
		{math.Inf(1), 500, 100},
	}
	for _, c := range cases {
		y, rot := ArcTransform(c.x, c.h, c.bend)
		if y != 0 || rot != 0 {
			t.Errorf("ArcTransform(%v, %v, %v) = (%v, %v), want (0, 0)", c.x, c.h, c.bend, y, rot)
		}
	}
}

func TestPlacementAtRest(t *testing.T) {
	g, _ := newTestGallery(t, 6, 1000)
	g.Update(frameDT)

	p := g.Placements()
	if len(p) != 12 {
		t.Fatalf("placements = %d, want 12", len(p))
	}
	if p[6].X != 0 || p[6].Y != 0 || p[6].Rotation != 0 {
		t.Errorf("centered card = %+v, want X=Y=Rotation=0", p[6].Transform)
	}
	if p[6].Index != 0 || p[7].Index != 1 {
		t.Errorf("indices = %d, %d, want 0, 1", p[6].Index, p[7].Index)
	}
	if !approxEqual(p[7].X, 702, epsilon) {
		t.Errorf("next card X = %v, want 702", p[7].X)
	}
	if p[7].Width != 700 || !approxEqual(p[7].Height, 900, 1e-9) {
		t.Errorf("card size = %vx%v, want 700x900", p[7].Width, p[7].Height)
	}
	// Past the edge every card sits at the clamped edge values.
	wantY, _ := ArcTransform(500, 500, 100)
	if !approxEqual(p[7].Y, wantY, 1e-9) {
		t.Errorf("next card Y = %v, want %v", p[7].Y, wantY)
	}
	if p[7].Item != g.Items()[1] {
		t.Errorf("next card item = %+v", p[7].Item)
	}
}

func TestPlacementFlatStrip(t *testing.T) {
	cfg := testConfig()
	cfg.Bend = 0
	g := New(testItems(4), cfg)
	g.Resize(800)
	g.Nudge(313)
	runFrames(g, 40)
	for _, p := range g.Placements() {
		if p.Y != 0 || p.Rotation != 0 {
			t.Errorf("slot %d: Y=%v Rotation=%v, want 0", p.Slot, p.Y, p.Rotation)
		}
	}
}

// checkStrip asserts the frame's card positions form one gap-free run of
// evenly spaced cards that covers the visible surface.
func checkStrip(t *testing.T, frame int, ps []Placement, l Layout) {
	t.Helper()
	xs := make([]float64, len(ps))
	for i, p := range ps {
		xs[i] = p.X
	}
	sort.Float64s(xs)
	for i := 1; i < len(xs); i++ {
		if d := xs[i] - xs[i-1]; !approxEqual(d, l.ItemPitch, 1e-6) {
			t.Fatalf("frame %d: spacing %v between %v and %v, want %v", frame, d, xs[i-1], xs[i], l.ItemPitch)
		}
	}
	half := l.ItemWidth / 2
	if left := xs[0] - half; left > -l.HalfWidth+ItemPadding {
		t.Fatalf("frame %d: gap on the left, first card edge at %v", frame, left)
	}
	if right := xs[len(xs)-1] + half; right < l.HalfWidth-ItemPadding {
		t.Fatalf("frame %d: gap on the right, last card edge at %v", frame, right)
	}
}

func TestWrapKeepsStripSeamless(t *testing.T) {
	tests := []struct {
		name  string
		nudge float64
	}{
		{"forward", 25000},
		{"backward", -25000},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := testConfig()
			rec := &eventRecorder{}
			cfg.Events = rec
			g := New(testItems(6), cfg)
			g.Resize(1000)
			g.Nudge(tt.nudge)

			for i := 0; i < 400; i++ {
				g.Update(frameDT)
				checkStrip(t, i, g.Placements(), g.Layout())
			}
			if rec.count(EventWrap) == 0 {
				t.Fatal("no wrap events")
			}
			e, _ := rec.last(EventWrap)
			if want := math.Copysign(g.Layout().StripLength, tt.nudge); e.Width != want {
				t.Errorf("wrap distance = %v, want %v", e.Width, want)
			}
		})
	}
}

func TestWrapAfterResize(t *testing.T) {
	g, _ := newTestGallery(t, 3, 1000)
	g.Resize(640)
	g.Update(ResizeSettle.Seconds())
	g.Nudge(9000)
	for i := 0; i < 300; i++ {
		g.Update(frameDT)
		checkStrip(t, i, g.Placements(), g.Layout())
	}
}
