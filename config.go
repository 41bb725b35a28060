package arcgallery

import (
	"github.com/charmbracelet/log"
)

const (
	// DefaultBend is the sagitta, in pixels, of the arc at the surface edge.
	DefaultBend = 100.0
	// DefaultScrollSpeed multiplies wheel and drag input.
	DefaultScrollSpeed = 2.0
	// DefaultScrollEase is the per-frame smoothing factor.
	DefaultScrollEase = 0.05
	// DefaultCornerRadius is the card corner radius as a fraction of card width.
	DefaultCornerRadius = 0.05

	wheelDamping    = 0.2   // wheel nudge = sign(deltaY) * speed * wheelDamping
	dragSensitivity = 0.025 // drag factor = speed * dragSensitivity
)

// Config controls the gallery. Start from DefaultConfig and override fields.
type Config struct {
	// Bend curves the strip onto a circular arc. Positive values bend the
	// edges away from the viewer, negative toward. 0 is a flat strip.
	Bend float64
	// ScrollSpeed scales wheel and drag input. Zero means DefaultScrollSpeed.
	ScrollSpeed float64
	// ScrollEase is the fraction of the remaining distance covered per frame,
	// in (0, 1]. Zero means DefaultScrollEase.
	ScrollEase float64
	// CornerRadius and TextColor are passed through to renderers.
	CornerRadius float64
	TextColor    Color

	// Debug logs per-frame stats at debug level.
	Debug  bool
	Logger *log.Logger

	Renderer Renderer
	Events   EventSink
}

// DefaultConfig returns the configuration used when nothing is overridden.
func DefaultConfig() Config {
	return Config{
		Bend:         DefaultBend,
		ScrollSpeed:  DefaultScrollSpeed,
		ScrollEase:   DefaultScrollEase,
		CornerRadius: DefaultCornerRadius,
		TextColor:    ColorWhite,
	}
}

// normalize replaces out-of-range values with their defaults, each
// independently, and logs what it replaced.
func (c Config) normalize() Config {
	if c.Logger == nil {
		c.Logger = log.Default()
	}
	if !finite(c.Bend) {
		c.Logger.Warn("invalid bend, using flat strip", "bend", c.Bend)
		c.Bend = 0
	}
	if c.ScrollSpeed == 0 {
		c.ScrollSpeed = DefaultScrollSpeed
	} else if !finite(c.ScrollSpeed) {
		c.Logger.Warn("invalid scroll speed, using default", "scrollSpeed", c.ScrollSpeed)
		c.ScrollSpeed = DefaultScrollSpeed
	}
	if c.ScrollEase == 0 {
		c.ScrollEase = DefaultScrollEase
	} else if !finite(c.ScrollEase) || c.ScrollEase < 0 || c.ScrollEase > 1 {
		c.Logger.Warn("scroll ease outside (0,1], using default", "scrollEase", c.ScrollEase)
		c.ScrollEase = DefaultScrollEase
	}
	if !finite(c.CornerRadius) || c.CornerRadius < 0 {
		c.Logger.Warn("invalid corner radius, using default", "cornerRadius", c.CornerRadius)
		c.CornerRadius = DefaultCornerRadius
	}
	if c.TextColor == (Color{}) {
		c.TextColor = ColorWhite
	}
	return c
}

// WheelStep is the target nudge produced by one wheel notch.
func (c Config) WheelStep() float64 {
	return c.ScrollSpeed * wheelDamping
}

// DragFactor converts pointer travel in pixels to target travel.
func (c Config) DragFactor() float64 {
	return c.ScrollSpeed * dragSensitivity
}
