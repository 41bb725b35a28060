package arcgallery

import (
	"io"
	"math"
	"testing"

	"github.com/charmbracelet/log"
)

const (
	epsilon = 1e-9
	frameDT = 1.0 / 60
)

func approxEqual(a, b, eps float64) bool {
	return math.Abs(a-b) < eps
}

func nan() float64 { return math.NaN() }

// eventRecorder collects emitted events.
type eventRecorder struct {
	events []Event
}

func (r *eventRecorder) Emit(e Event) { r.events = append(r.events, e) }

func (r *eventRecorder) count(t EventType) int {
	n := 0
	for _, e := range r.events {
		if e.Type == t {
			n++
		}
	}
	return n
}

func (r *eventRecorder) last(t EventType) (Event, bool) {
	for i := len(r.events) - 1; i >= 0; i-- {
		if r.events[i].Type == t {
			return r.events[i], true
		}
	}
	return Event{}, false
}

func testItems(n int) []Item {
	names := []string{"bridge", "desk", "waterfall", "strawberries", "deep diving", "train track"}
	items := make([]Item, n)
	for i := range items {
		items[i] = Item{Image: "img/" + names[i%len(names)] + ".png", Caption: names[i%len(names)]}
	}
	return items
}

func testConfig() Config {
	cfg := DefaultConfig()
	cfg.Logger = log.New(io.Discard)
	return cfg
}

// newTestGallery returns a gallery of n items measured at width.
func newTestGallery(t *testing.T, n int, width float64) (*Gallery, *eventRecorder) {
	t.Helper()
	rec := &eventRecorder{}
	cfg := testConfig()
	cfg.Events = rec
	g := New(testItems(n), cfg)
	g.Resize(width)
	return g, rec
}

func runFrames(g *Gallery, n int) {
	for i := 0; i < n; i++ {
		g.Update(frameDT)
	}
}

func TestNewDoublesItems(t *testing.T) {
	g := New(testItems(3), testConfig())
	if g.Len() != 3 {
		t.Errorf("Len = %d, want 3", g.Len())
	}
	if len(g.slots) != 6 {
		t.Fatalf("slots = %d, want 6", len(g.slots))
	}
	for i, s := range g.slots {
		if s.index != i%3 {
			t.Errorf("slot %d index = %d, want %d", i, s.index, i%3)
		}
		if s.turns != 0 {
			t.Errorf("slot %d turns = %d, want 0", i, s.turns)
		}
	}
}

func TestNewCopiesItems(t *testing.T) {
	items := testItems(2)
	g := New(items, testConfig())
	items[0].Caption = "changed"
	if g.Items()[0].Caption == "changed" {
		t.Error("gallery shares the caller's slice")
	}
}

func TestEmptyGalleryIsInert(t *testing.T) {
	rendered := 0
	cfg := testConfig()
	cfg.Renderer = RendererFunc(func(Frame) { rendered++ })
	g := New(nil, cfg)

	g.Resize(1000)
	g.Wheel(WheelEvent{DeltaY: 100})
	g.PointerDown(PointerEvent{X: 10})
	g.PointerMove(PointerEvent{X: 0})
	g.PointerUp(PointerEvent{})
	g.ScrollTo(0, 0.2, nil)
	g.InjectWheel(1)
	runFrames(g, 30)
	g.Dispose()
	g.Dispose()

	if rendered != 0 {
		t.Errorf("rendered %d frames, want 0", rendered)
	}
	if g.Layout() != (Layout{}) {
		t.Errorf("Layout = %+v, want zero", g.Layout())
	}
	if g.CenteredIndex() != -1 {
		t.Errorf("CenteredIndex = %d, want -1", g.CenteredIndex())
	}
	if len(g.Placements()) != 0 {
		t.Errorf("placements = %d, want 0", len(g.Placements()))
	}
}

func TestUpdateRendersEveryFrame(t *testing.T) {
	var frames []Frame
	cfg := testConfig()
	cfg.Renderer = RendererFunc(func(f Frame) {
		frames = append(frames, f)
	})
	g := New(testItems(6), cfg)
	g.Resize(1000)
	runFrames(g, 3)

	if len(frames) != 3 {
		t.Fatalf("rendered %d frames, want 3", len(frames))
	}
	for i, f := range frames {
		if len(f.Placements) != 12 {
			t.Errorf("frame %d: %d placements, want 12", i, len(f.Placements))
		}
		if f.SurfaceWidth != 1000 {
			t.Errorf("frame %d: SurfaceWidth = %v, want 1000", i, f.SurfaceWidth)
		}
	}
}

func TestUpdateBeforeMeasureRendersNothing(t *testing.T) {
	rendered := 0
	cfg := testConfig()
	cfg.Renderer = RendererFunc(func(Frame) { rendered++ })
	g := New(testItems(4), cfg)

	g.Resize(0)
	g.Wheel(WheelEvent{DeltaY: 1})
	runFrames(g, 20)

	if rendered != 0 {
		t.Errorf("rendered %d frames before a width was reported", rendered)
	}
	s := g.Scroll()
	for _, v := range []float64{s.Current, s.Target, s.Last} {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			t.Fatalf("scroll state not finite: %+v", s)
		}
	}
}

func TestDisposeStopsFrameLoop(t *testing.T) {
	rendered := 0
	rec := &eventRecorder{}
	cfg := testConfig()
	cfg.Renderer = RendererFunc(func(Frame) { rendered++ })
	cfg.Events = rec
	g := New(testItems(6), cfg)
	g.Resize(1000)
	runFrames(g, 2)

	g.Wheel(WheelEvent{DeltaY: 100}) // schedules a snap
	g.InjectWheel(100)
	g.Dispose()
	before := g.Scroll()
	runFrames(g, 30)

	if rendered != 2 {
		t.Errorf("rendered = %d, want 2", rendered)
	}
	if rec.count(EventSnap) != 0 {
		t.Error("pending snap fired after Dispose")
	}
	if g.Scroll() != before {
		t.Errorf("scroll changed after Dispose: %+v -> %+v", before, g.Scroll())
	}
	if !g.IsDisposed() {
		t.Error("IsDisposed = false")
	}
	g.Dispose() // second call is safe
}

func TestConfigNormalize(t *testing.T) {
	tests := []struct {
		name  string
		mod   func(*Config)
		check func(Config) bool
	}{
		{"zero speed defaults", func(c *Config) { c.ScrollSpeed = 0 }, func(c Config) bool { return c.ScrollSpeed == DefaultScrollSpeed }},
		{"nan speed defaults", func(c *Config) { c.ScrollSpeed = math.NaN() }, func(c Config) bool { return c.ScrollSpeed == DefaultScrollSpeed }},
		{"zero ease defaults", func(c *Config) { c.ScrollEase = 0 }, func(c Config) bool { return c.ScrollEase == DefaultScrollEase }},
		{"ease above one defaults", func(c *Config) { c.ScrollEase = 1.5 }, func(c Config) bool { return c.ScrollEase == DefaultScrollEase }},
		{"negative ease defaults", func(c *Config) { c.ScrollEase = -0.1 }, func(c Config) bool { return c.ScrollEase == DefaultScrollEase }},
		{"ease one kept", func(c *Config) { c.ScrollEase = 1 }, func(c Config) bool { return c.ScrollEase == 1 }},
		{"zero bend kept", func(c *Config) { c.Bend = 0 }, func(c Config) bool { return c.Bend == 0 }},
		{"negative bend kept", func(c *Config) { c.Bend = -40 }, func(c Config) bool { return c.Bend == -40 }},
		{"inf bend flattened", func(c *Config) { c.Bend = math.Inf(1) }, func(c Config) bool { return c.Bend == 0 }},
		{"negative radius defaults", func(c *Config) { c.CornerRadius = -1 }, func(c Config) bool { return c.CornerRadius == DefaultCornerRadius }},
		{"zero text color defaults", func(c *Config) { c.TextColor = Color{} }, func(c Config) bool { return c.TextColor == ColorWhite }},
		{"nil logger replaced", func(c *Config) { c.Logger = nil }, func(c Config) bool { return c.Logger != nil }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := testConfig()
			tt.mod(&cfg)
			if got := New(testItems(1), cfg).Config(); !tt.check(got) {
				t.Errorf("normalized config = %+v", got)
			}
		})
	}
}

func TestConfigDerivedFactors(t *testing.T) {
	cfg := DefaultConfig()
	if !approxEqual(cfg.WheelStep(), 0.4, epsilon) {
		t.Errorf("WheelStep = %v, want 0.4", cfg.WheelStep())
	}
	if !approxEqual(cfg.DragFactor(), 0.05, epsilon) {
		t.Errorf("DragFactor = %v, want 0.05", cfg.DragFactor())
	}
}

func TestEventTypeString(t *testing.T) {
	want := map[EventType]string{
		EventLayout: "layout", EventSnap: "snap", EventWrap: "wrap",
		EventSettle: "settle", EventType(99): "unknown",
	}
	for et, s := range want {
		if et.String() != s {
			t.Errorf("%d.String() = %q, want %q", et, et.String(), s)
		}
	}
}

func TestSecondsToDuration(t *testing.T) {
	if d := secondsToDuration(math.NaN()); d != 0 {
		t.Errorf("NaN -> %v, want 0", d)
	}
	if d := secondsToDuration(-1); d != 0 {
		t.Errorf("-1 -> %v, want 0", d)
	}
	if d := secondsToDuration(0.05); d.Milliseconds() != 50 {
		t.Errorf("0.05 -> %v, want 50ms", d)
	}
}
