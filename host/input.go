package host

import (
	"math"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/tanema/gween/ease"

	"github.com/phanxgames/arcgallery"
)

// clickSlop is how far, in pixels, the pointer may travel between press and
// release and still count as a click.
const clickSlop = 4.0

// inputState holds the polled state of inputs for a single frame. Polling is
// kept apart from handling so the handling can be driven without a window.
type inputState struct {
	Quit bool
	Next bool
	Prev bool

	// WheelY follows the browser convention: positive scrolls forward.
	WheelY float64

	Cursor      arcgallery.Vec2
	CursorMoved bool
	Press       bool // left button just pressed
	Release     bool // left button just released

	// First touch only.
	TouchStart bool
	TouchMove  bool
	TouchEnd   bool
	Touch      arcgallery.Vec2
}

// inputPoller reads ebiten input once per frame. Mouse moves and releases
// are read from the whole window so drags leaving the cards still resolve.
type inputPoller struct {
	cursor   arcgallery.Vec2
	touchID  ebiten.TouchID
	touching bool
	touchBuf []ebiten.TouchID

	pressAt arcgallery.Vec2
}

func (p *inputPoller) poll() inputState {
	var st inputState

	st.Quit = inpututil.IsKeyJustPressed(ebiten.KeyEscape)
	st.Next = inpututil.IsKeyJustPressed(ebiten.KeyArrowRight)
	st.Prev = inpututil.IsKeyJustPressed(ebiten.KeyArrowLeft)

	_, wy := ebiten.Wheel()
	st.WheelY = -wy

	cx, cy := ebiten.CursorPosition()
	st.Cursor = arcgallery.Vec2{X: float64(cx), Y: float64(cy)}
	st.CursorMoved = st.Cursor != p.cursor
	p.cursor = st.Cursor
	st.Press = inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonLeft)
	st.Release = inpututil.IsMouseButtonJustReleased(ebiten.MouseButtonLeft)

	if p.touching {
		if inpututil.IsTouchJustReleased(p.touchID) {
			p.touching = false
			st.TouchEnd = true
		} else {
			x, y := ebiten.TouchPosition(p.touchID)
			st.Touch = arcgallery.Vec2{X: float64(x), Y: float64(y)}
			st.TouchMove = true
		}
	} else {
		p.touchBuf = inpututil.AppendJustPressedTouchIDs(p.touchBuf[:0])
		if len(p.touchBuf) > 0 {
			p.touchID = p.touchBuf[0]
			p.touching = true
			x, y := ebiten.TouchPosition(p.touchID)
			st.Touch = arcgallery.Vec2{X: float64(x), Y: float64(y)}
			st.TouchStart = true
		}
	}
	return st
}

// handleInput feeds one frame of input into the gallery.
func (g *Game) handleInput(st inputState) {
	if st.Quit {
		g.shutdown()
		return
	}
	gal := g.gallery

	if st.WheelY != 0 {
		gal.Wheel(arcgallery.WheelEvent{DeltaY: st.WheelY})
	}

	ev := arcgallery.PointerEvent{X: st.Cursor.X, Y: st.Cursor.Y}
	if st.Press {
		g.input.pressAt = st.Cursor
		gal.PointerDown(ev)
	}
	if st.CursorMoved {
		gal.PointerMove(ev)
	}
	if st.Release {
		gal.PointerUp(ev)
		if isClick(g.input.pressAt, st.Cursor) {
			g.click(st.Cursor)
		}
	}

	touch := arcgallery.TouchEvent{Touches: []arcgallery.Vec2{st.Touch}}
	switch {
	case st.TouchStart:
		gal.TouchStart(touch)
	case st.TouchMove:
		gal.TouchMove(touch)
	case st.TouchEnd:
		gal.TouchEnd(arcgallery.TouchEvent{})
	}

	switch {
	case st.Next:
		gal.ScrollBy(1, arcgallery.DefaultScrollDuration, ease.OutCubic)
	case st.Prev:
		gal.ScrollBy(-1, arcgallery.DefaultScrollDuration, ease.OutCubic)
	}
}

// click scrolls to the card under a screen point.
func (g *Game) click(at arcgallery.Vec2) {
	x, y := arcgallery.ScreenToSurface(g.width, g.height, at.X, at.Y)
	p, ok := g.gallery.ItemAt(x, y)
	if !ok {
		return
	}
	g.gallery.ScrollTo(p.Index, arcgallery.DefaultScrollDuration, ease.OutCubic)
}

func isClick(from, to arcgallery.Vec2) bool {
	return math.Hypot(to.X-from.X, to.Y-from.Y) <= clickSlop
}
