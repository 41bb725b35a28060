package arcgallery

import (
	"math"

	"github.com/tanema/gween"
	"github.com/tanema/gween/ease"
)

// DefaultScrollDuration is the ScrollBy duration the host uses for keyboard
// navigation, in seconds.
const DefaultScrollDuration = 0.35

// scrollTween drives Target toward a fixed strip position. The final value
// is assigned exactly, since gween works in float32.
type scrollTween struct {
	tween *gween.Tween
	to    float64
}

// ScrollTo animates the target to the nearest strip position that shows the
// source item index, over duration seconds using fn (ease.OutCubic if nil).
// A non-positive duration assigns the target immediately. Wheel and drag
// input cancel the animation. Out-of-range indices are ignored.
func (g *Gallery) ScrollTo(index int, duration float32, fn ease.TweenFunc) {
	if g.inert() || index < 0 || index >= len(g.items) || g.layout.ItemPitch <= 0 {
		return
	}
	k0 := g.nearestStep(g.scroll.Target)
	n := len(g.items)
	d := ((index-k0)%n + n) % n
	k := k0 + d
	if alt := k - n; k0-alt < d {
		k = alt
	}
	g.scrollToStep(k, duration, fn)
}

// ScrollBy animates the target n items forward (negative n: backward) from
// the item nearest the current target.
func (g *Gallery) ScrollBy(n int, duration float32, fn ease.TweenFunc) {
	if g.inert() || g.layout.ItemPitch <= 0 {
		return
	}
	g.scrollToStep(g.nearestStep(g.scroll.Target)+n, duration, fn)
}

// nearestStep returns k such that k*pitch is the item boundary nearest pos.
func (g *Gallery) nearestStep(pos float64) int {
	return int(math.Round(pos / g.layout.ItemPitch))
}

func (g *Gallery) scrollToStep(k int, duration float32, fn ease.TweenFunc) {
	to := float64(k) * g.layout.ItemPitch
	g.snapTask.cancel()
	if duration <= 0 {
		g.tween = nil
		g.scroll.Target = to
		return
	}
	if fn == nil {
		fn = ease.OutCubic
	}
	g.tween = &scrollTween{
		tween: gween.New(float32(g.scroll.Target), float32(to), duration, fn),
		to:    to,
	}
}

// Scrolling reports whether a ScrollTo or ScrollBy animation is active.
func (g *Gallery) Scrolling() bool {
	return g.tween != nil
}

// updateTween advances the active tween by dt seconds and writes Target.
func (g *Gallery) updateTween(dt float64) {
	if g.tween == nil {
		return
	}
	val, done := g.tween.tween.Update(float32(dt))
	if done {
		g.scroll.Target = g.tween.to
		g.tween = nil
		return
	}
	g.scroll.Target = float64(val)
}

func (g *Gallery) cancelTween() {
	g.tween = nil
}
