package arcgallery

// syntheticKind selects which input method a queued event replays.
type syntheticKind uint8

const (
	syntheticWheel syntheticKind = iota
	syntheticDown
	syntheticMove
	syntheticUp
	syntheticResize
)

// syntheticEvent is a single injected input event.
type syntheticEvent struct {
	kind  syntheticKind
	value float64 // x for pointer events, deltaY for wheel, width for resize
}

// InjectWheel queues a wheel event. Queued events are consumed one per
// Update, before the frame is simulated, exactly like real input delivered
// between frames.
func (g *Gallery) InjectWheel(deltaY float64) {
	g.inject(syntheticEvent{kind: syntheticWheel, value: deltaY})
}

// InjectResize queues a surface width report.
func (g *Gallery) InjectResize(width float64) {
	g.inject(syntheticEvent{kind: syntheticResize, value: width})
}

// InjectPress queues a pointer press at x.
func (g *Gallery) InjectPress(x float64) {
	g.inject(syntheticEvent{kind: syntheticDown, value: x})
}

// InjectMove queues a pointer move to x with the button held.
func (g *Gallery) InjectMove(x float64) {
	g.inject(syntheticEvent{kind: syntheticMove, value: x})
}

// InjectRelease queues a pointer release.
func (g *Gallery) InjectRelease() {
	g.inject(syntheticEvent{kind: syntheticUp})
}

// InjectDrag queues a full drag: press at fromX, frames-2 linearly
// interpolated moves and a move plus release at toX. The sequence consumes
// frames+1 updates. Minimum frames is 2.
func (g *Gallery) InjectDrag(fromX, toX float64, frames int) {
	if frames < 2 {
		frames = 2
	}
	g.InjectPress(fromX)
	steps := frames - 2
	for i := 1; i <= steps; i++ {
		t := float64(i) / float64(steps+1)
		g.InjectMove(fromX + (toX-fromX)*t)
	}
	g.InjectMove(toX)
	g.InjectRelease()
}

// Pending returns the number of queued synthetic events.
func (g *Gallery) Pending() int {
	return len(g.injectQueue)
}

func (g *Gallery) inject(e syntheticEvent) {
	if g.inert() {
		return
	}
	g.injectQueue = append(g.injectQueue, e)
}

// processInjected pops one event from the queue and dispatches it.
// Returns true if an event was consumed.
func (g *Gallery) processInjected() bool {
	if len(g.injectQueue) == 0 {
		return false
	}
	evt := g.injectQueue[0]
	copy(g.injectQueue, g.injectQueue[1:])
	g.injectQueue = g.injectQueue[:len(g.injectQueue)-1]

	switch evt.kind {
	case syntheticWheel:
		g.Wheel(WheelEvent{DeltaY: evt.value})
	case syntheticDown:
		g.PointerDown(PointerEvent{X: evt.value})
	case syntheticMove:
		g.PointerMove(PointerEvent{X: evt.value})
	case syntheticUp:
		g.PointerUp(PointerEvent{})
	case syntheticResize:
		g.Resize(evt.value)
	}
	return true
}
