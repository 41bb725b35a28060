package arcgallery

import "math"

// Item is one entry of the gallery: an image URI and the caption drawn under it.
type Item struct {
	Image   string `json:"image" toml:"image" yaml:"image"`
	Caption string `json:"caption" toml:"caption" yaml:"caption"`
}

// Color represents an RGBA color with components in [0, 1]. Not premultiplied.
type Color struct {
	R, G, B, A float64
}

// ColorWhite is the default caption color.
var ColorWhite = Color{1, 1, 1, 1}

// Vec2 is a 2D point in surface pixels.
type Vec2 struct {
	X, Y float64
}

// Transform is the on-screen placement of one item. X and Y are relative to
// the center of the surface with Y pointing up, Rotation is counter-clockwise
// in radians. Width and Height are the card size in pixels.
type Transform struct {
	X, Y          float64
	Rotation      float64
	Width, Height float64
}

// Placement pairs a working item with its transform for the current frame.
type Placement struct {
	Slot  int // index in the doubled working set
	Index int // index in the caller's item list
	Item  Item
	Transform
}

// Frame is what a Renderer receives once per Update.
// Placements is reused by the next Update and MUST NOT be retained.
type Frame struct {
	SurfaceWidth float64
	Scroll       ScrollState
	Placements   []Placement
}

// Renderer applies computed transforms to a concrete surface.
type Renderer interface {
	Render(frame Frame)
}

// RendererFunc adapts a function to the Renderer interface.
type RendererFunc func(Frame)

// Render calls f(frame).
func (f RendererFunc) Render(frame Frame) { f(frame) }

// EventType identifies a kind of gallery event.
type EventType uint8

const (
	EventLayout EventType = iota // layout constants were recomputed
	EventSnap                    // target was rounded to an item boundary
	EventWrap                    // an item was relocated to the opposite end
	EventSettle                  // current reached target
)

// String returns the event name.
func (t EventType) String() string {
	switch t {
	case EventLayout:
		return "layout"
	case EventSnap:
		return "snap"
	case EventWrap:
		return "wrap"
	case EventSettle:
		return "settle"
	default:
		return "unknown"
	}
}

// Event carries gallery state changes to an EventSink.
type Event struct {
	Type EventType
	// Index is the source item index: the centered item for snap and settle,
	// the relocated item for wrap. -1 for layout events.
	Index  int
	Slot   int
	Target float64
	// Width is the surface width for layout events and the wrap distance
	// (signed) for wrap events.
	Width float64
}

// EventSink receives gallery events. Emit is called synchronously from the
// method that produced the event.
type EventSink interface {
	Emit(event Event)
}

// Layout holds the constants derived from the surface width.
type Layout struct {
	SurfaceWidth float64
	ItemWidth    float64
	ItemHeight   float64
	ItemPitch    float64 // ItemWidth + padding
	HalfWidth    float64 // wrap boundary
	StripLength  float64 // ItemPitch * working item count
}

// ScrollState is a snapshot of the shared scroll record.
type ScrollState struct {
	Current float64
	Target  float64
	Last    float64
}

// --- Geometry constants ---

const (
	// MaxItemWidth bounds the card width on wide surfaces.
	MaxItemWidth = 700.0
	// ItemPadding is the gap between neighbouring cards.
	ItemPadding = 2.0
	// itemWidthRatio is the share of the surface width one card takes.
	itemWidthRatio = 0.7
	// itemAspect is card height over card width.
	itemAspect = 900.0 / 700.0
)

// lerp moves a toward b by the fraction t.
func lerp(a, b, t float64) float64 {
	return a + (b-a)*t
}

// sign returns -1, 0 or 1. Unlike math.Copysign it maps zero to zero.
func sign(v float64) float64 {
	switch {
	case v > 0:
		return 1
	case v < 0:
		return -1
	default:
		return 0
	}
}

// finite reports whether v is neither NaN nor infinite.
func finite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}
