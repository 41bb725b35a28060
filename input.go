package arcgallery

import "math"

// --- Input events ---

// WheelEvent is one wheel notch or trackpad delta. DeltaY follows the browser
// convention: positive scrolls forward (content moves left).
type WheelEvent struct {
	DeltaY float64
}

// PointerEvent is a mouse or pen event in surface pixels.
type PointerEvent struct {
	X, Y float64
}

// TouchEvent lists the active touch points. Only the first one is used.
type TouchEvent struct {
	Touches []Vec2
}

// first returns the primary touch point, or false if there is none or it
// has no usable coordinates.
func (e TouchEvent) first() (Vec2, bool) {
	if len(e.Touches) == 0 {
		return Vec2{}, false
	}
	p := e.Touches[0]
	if !finite(p.X) {
		return Vec2{}, false
	}
	return p, true
}

// --- Drag state ---

// dragState tracks the single active drag. Pointer and touch share it: a new
// drag start from either source restarts the drag.
type dragState struct {
	active bool
	startX float64
	anchor float64
}

// --- Target mutation ---

// Nudge moves the scroll target by delta pixels. It cancels any active
// ScrollTo but does not schedule a snap.
func (g *Gallery) Nudge(delta float64) {
	if g.inert() || !finite(delta) {
		return
	}
	g.cancelTween()
	g.scroll.Target += delta
}

// Wheel nudges the target by one wheel step in the direction of DeltaY and
// snaps to the nearest item once the wheel has been idle for SnapDelay.
// Wheel input during a drag is not blocked; whichever of the drag end and
// the wheel idle fires last decides the final snap.
func (g *Gallery) Wheel(e WheelEvent) {
	if g.inert() || !finite(e.DeltaY) {
		return
	}
	g.Nudge(sign(e.DeltaY) * g.cfg.WheelStep())
	g.snapTask.schedule(g.clock, SnapDelay)
}

// PointerDown starts a drag at e.X.
func (g *Gallery) PointerDown(e PointerEvent) {
	if g.inert() || !finite(e.X) {
		return
	}
	g.beginDrag(e.X)
}

// PointerMove drags the target while a drag is active. Hosts should deliver
// moves from the whole window, not only the gallery bounds, so drags that
// leave the gallery still resolve.
func (g *Gallery) PointerMove(e PointerEvent) {
	if g.inert() || !g.drag.active || !finite(e.X) {
		return
	}
	g.dragTo(e.X)
}

// PointerUp ends the active drag and snaps the target. The coordinates are
// not used.
func (g *Gallery) PointerUp(PointerEvent) {
	g.endDrag()
}

// TouchStart starts a drag at the first touch point.
func (g *Gallery) TouchStart(e TouchEvent) {
	if g.inert() {
		return
	}
	p, ok := e.first()
	if !ok {
		return
	}
	g.beginDrag(p.X)
}

// TouchMove drags the target to the first touch point.
func (g *Gallery) TouchMove(e TouchEvent) {
	if g.inert() || !g.drag.active {
		return
	}
	p, ok := e.first()
	if !ok {
		return
	}
	g.dragTo(p.X)
}

// TouchEnd ends the active drag and snaps the target. Touch end events
// usually carry no touches, so none are required.
func (g *Gallery) TouchEnd(TouchEvent) {
	g.endDrag()
}

// beginDrag pins Target to Current so the strip stops where it is shown,
// then anchors the drag there.
func (g *Gallery) beginDrag(x float64) {
	g.cancelTween()
	g.scroll.Target = g.scroll.Current
	g.drag = dragState{active: true, startX: x, anchor: g.scroll.Target}
}

func (g *Gallery) dragTo(x float64) {
	g.scroll.Target = g.drag.anchor + (g.drag.startX-x)*g.cfg.DragFactor()
}

func (g *Gallery) endDrag() {
	if g.inert() || !g.drag.active {
		return
	}
	g.drag.active = false
	g.snap()
}

// --- Snap ---

// snap rounds Target to the nearest multiple of the item pitch, keeping its
// sign. No-op before the first layout.
func (g *Gallery) snap() {
	pitch := g.layout.ItemPitch
	if pitch <= 0 {
		return
	}
	k := math.Round(math.Abs(g.scroll.Target) / pitch)
	snapped := pitch * k
	if g.scroll.Target < 0 {
		snapped = -snapped
	}
	g.scroll.Target = snapped

	s, idx := g.slotAt(snapped)
	g.cfg.Logger.Debug("snap", "target", snapped, "index", idx)
	g.emit(Event{Type: EventSnap, Index: idx, Slot: s, Target: snapped})
}
