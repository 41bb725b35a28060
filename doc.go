// Package arcgallery is an infinite, draggable image carousel whose strip is
// bent onto a circular arc.
//
// The engine is surface-agnostic: it takes a list of items, the width of the
// hosting surface and raw wheel, pointer and touch input, and once per frame
// produces a [Transform] (x, y, rotation) for every card. A [Renderer] applies
// those transforms; the host package provides one for [Ebitengine].
//
// # Quick start
//
//	g := arcgallery.New(items, arcgallery.DefaultConfig())
//	g.Resize(1000) // first nonzero width centers the strip
//
//	// every frame:
//	g.Wheel(arcgallery.WheelEvent{DeltaY: 100})
//	g.Update(1.0 / 60)
//	for _, p := range g.Placements() {
//		// draw p.Item at p.X, p.Y rotated by p.Rotation
//	}
//
// To run it in a window, use host.New and ebiten.RunGame.
//
// # Scrolling model
//
// Input never moves the strip directly. Wheel, drag and [Gallery.ScrollTo]
// write a scroll target; every [Gallery.Update] moves the rendered position a
// fixed fraction ([Config.ScrollEase]) of the remaining distance toward it.
// When a drag ends, or the wheel has been idle for [SnapDelay], the target is
// rounded to the nearest item so the strip always comes to rest on a card.
//
// # Wrapping
//
// The item list is doubled internally. Each card that leaves the surface
// behind the direction of travel is moved a full strip length to the other
// end, which keeps the strip visually endless in both directions.
//
// # Threading
//
// A Gallery is single-threaded: input methods, Resize and Update must be
// called from the same goroutine, which is what ebiten's Update gives you.
//
// [Ebitengine]: https://ebitengine.org
package arcgallery
