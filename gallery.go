package arcgallery

import (
	"math"
	"time"
)

// slot is one entry of the doubled working set. Its strip position is
// Slot*ItemPitch + turns*StripLength; turns changes when the slot wraps.
type slot struct {
	index int // source item index
	turns int
}

// Gallery is the carousel engine. It owns the scroll state, the working item
// set and the layout constants, and produces one Frame per Update.
//
// A Gallery is not safe for concurrent use. Input methods, Resize and Update
// must all be called from the goroutine that drives the frame loop (the
// ebiten Update goroutine in the host package). The input methods write
// Target; Update is the only writer of Current and Last.
type Gallery struct {
	cfg   Config
	items []Item
	slots []slot

	layout       Layout
	measured     bool // strip has been centered on the first nonzero width
	pendingWidth float64
	resizeTask   delayedTask

	scroll   ScrollState
	snapTask delayedTask
	drag     dragState
	tween    *scrollTween
	settled  bool

	clock       time.Duration
	injectQueue []syntheticEvent
	placements  []Placement
	frame       uint64
	disposed    bool
}

// New creates a gallery over items. The items are copied; changing the list
// later requires a new Gallery. An empty list yields an inert gallery on which
// every method is a no-op.
func New(items []Item, cfg Config) *Gallery {
	cfg = cfg.normalize()
	g := &Gallery{
		cfg:     cfg,
		items:   append([]Item(nil), items...),
		settled: true,
	}
	n := len(g.items)
	if n == 0 {
		return g
	}
	g.slots = make([]slot, 2*n)
	for i := range g.slots {
		g.slots[i].index = i % n
	}
	g.placements = make([]Placement, 0, len(g.slots))
	return g
}

// inert reports whether the gallery does no work at all.
func (g *Gallery) inert() bool {
	return g.disposed || len(g.items) == 0
}

// Update advances the gallery by one frame of dt seconds: it fires due
// debounces, advances an active ScrollTo, eases Current toward Target, places
// every item and hands the frame to the renderer. Nothing is rendered until
// the surface has a nonzero width.
func (g *Gallery) Update(dt float64) {
	if g.inert() {
		return
	}
	g.clock += secondsToDuration(dt)
	g.frame++

	g.processInjected()

	if g.resizeTask.due(g.clock) {
		g.applyWidth(g.pendingWidth)
	}
	if g.snapTask.due(g.clock) {
		g.snap()
	}
	g.updateTween(dt)

	if g.layout.ItemPitch <= 0 {
		return
	}
	g.step()
}

// Dispose stops the gallery. Pending snaps, resizes, tweens and injected
// input are dropped and the renderer and event sink are released. Safe to
// call more than once and on an empty gallery.
func (g *Gallery) Dispose() {
	if g.disposed {
		return
	}
	g.disposed = true
	g.snapTask.cancel()
	g.resizeTask.cancel()
	g.tween = nil
	g.drag = dragState{}
	g.injectQueue = nil
	g.placements = nil
	g.cfg.Renderer = nil
	g.cfg.Events = nil
}

// IsDisposed reports whether Dispose has been called.
func (g *Gallery) IsDisposed() bool {
	return g.disposed
}

// Len returns the number of source items.
func (g *Gallery) Len() int {
	return len(g.items)
}

// Items returns a copy of the source items.
func (g *Gallery) Items() []Item {
	return append([]Item(nil), g.items...)
}

// Config returns the normalized configuration.
func (g *Gallery) Config() Config {
	return g.cfg
}

// Layout returns the current layout constants. The zero Layout means the
// surface has not reported a width yet.
func (g *Gallery) Layout() Layout {
	return g.layout
}

// Scroll returns a snapshot of the scroll state.
func (g *Gallery) Scroll() ScrollState {
	return g.scroll
}

// Placements returns the transforms computed by the last Update. The slice
// is reused by the next Update and MUST NOT be retained.
func (g *Gallery) Placements() []Placement {
	return g.placements
}

// Dragging reports whether a pointer or touch drag is in progress.
func (g *Gallery) Dragging() bool {
	return g.drag.active
}

// Idle reports whether the strip is at rest with nothing scheduled: no drag,
// tween, pending snap or resize, and no queued synthetic input.
func (g *Gallery) Idle() bool {
	return g.settled && math.Abs(g.scroll.Target-g.scroll.Current) < settleEpsilon &&
		!g.drag.active && g.tween == nil &&
		!g.snapTask.pending && !g.resizeTask.pending && len(g.injectQueue) == 0
}

// CenteredIndex returns the source index of the item nearest the center of
// the surface, or -1 before the first layout.
func (g *Gallery) CenteredIndex() int {
	return g.indexAt(g.scroll.Current)
}

// indexAt returns the source index of the item whose strip position is
// nearest pos.
func (g *Gallery) indexAt(pos float64) int {
	_, idx := g.slotAt(pos)
	return idx
}

// slotAt returns the working slot and source index nearest pos.
func (g *Gallery) slotAt(pos float64) (int, int) {
	pitch := g.layout.ItemPitch
	if pitch <= 0 || len(g.slots) == 0 {
		return -1, -1
	}
	n := len(g.slots)
	k := int(math.Round(pos / pitch))
	s := ((k % n) + n) % n
	return s, g.slots[s].index
}

func (g *Gallery) emit(e Event) {
	if g.cfg.Events != nil {
		g.cfg.Events.Emit(e)
	}
}
