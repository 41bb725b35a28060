// Package host runs an arcgallery.Gallery in an Ebitengine window.
//
// Game implements ebiten.Game: Layout reports the window width to the engine,
// Update polls wheel, mouse, touch and keyboard input into it and advances
// one frame, and Draw renders the cards the engine placed. Images are decoded
// in the background and uploaded on the game goroutine as they arrive.
//
//	game := host.New(items, arcgallery.DefaultConfig(), host.Config{BaseDir: "photos"})
//	defer game.Close()
//	ebiten.RunGame(game)
package host

import (
	"context"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/text/v2"

	"github.com/phanxgames/arcgallery"
	"github.com/phanxgames/arcgallery/internal/imageload"
)

// Config controls the host window behaviour. The zero value is usable.
type Config struct {
	// BaseDir resolves relative image paths.
	BaseDir string
	// Workers is the number of image decoders. Zero uses the loader default.
	Workers int
	// FontData is an optional TTF/OTF font for captions. Nil uses a built-in
	// bitmap face.
	FontData []byte
	// FontSize is the TTF caption size in pixels. Zero means 18.
	FontSize float64
	// ShowFPS draws an FPS/TPS overlay in the top-left corner.
	ShowFPS bool
	// ScreenshotDir receives labelled PNG screenshots. Empty means
	// "screenshots".
	ScreenshotDir string
	// Script, if set, replays scripted input; its screenshot steps are
	// captured by the game.
	Script *arcgallery.ScriptRunner
	Logger *log.Logger
}

// Game hosts one gallery. Create it with New.
type Game struct {
	cfg  Config
	gcfg arcgallery.Config
	log  *log.Logger

	gallery *arcgallery.Gallery
	loader  *imageload.Loader
	tex     *textureCache
	face    text.Face
	input   inputPoller
	fps     *fpsOverlay

	frame     []arcgallery.Placement
	drawOrder []arcgallery.Placement
	card      *cardCanvas
	shots     []shotRequest
	ticks     uint64 // Update calls since New
	session   string // start time, prefixes screenshot names

	width, height float64

	mu      sync.Mutex
	pending []arcgallery.Item
	reload  bool
	quit    bool
	closed  bool
}

// New builds a gallery over items with gcfg and a host around it. The game
// becomes the gallery's Renderer; a Renderer already set in gcfg is still
// called after it.
func New(items []arcgallery.Item, gcfg arcgallery.Config, cfg Config) *Game {
	if cfg.Logger == nil {
		cfg.Logger = log.Default()
	}
	if cfg.FontSize <= 0 {
		cfg.FontSize = 18
	}
	if cfg.ScreenshotDir == "" {
		cfg.ScreenshotDir = "screenshots"
	}
	if gcfg.Logger == nil {
		gcfg.Logger = cfg.Logger
	}

	g := &Game{
		cfg: cfg,
		log: cfg.Logger,
		tex:     newTextureCache(),
		fps:     newFPSOverlay(),
		session: time.Now().Format("20060102-150405"),
	}
	user := gcfg.Renderer
	gcfg.Renderer = arcgallery.RendererFunc(func(f arcgallery.Frame) {
		g.Render(f)
		if user != nil {
			user.Render(f)
		}
	})
	g.gcfg = gcfg
	g.face = newCaptionFace(cfg.FontData, cfg.FontSize, cfg.Logger)
	g.loader = imageload.New(context.Background(), imageload.Options{
		Workers: cfg.Workers,
		BaseDir: cfg.BaseDir,
		Logger:  cfg.Logger,
	})
	if cfg.Script != nil {
		cfg.Script.Screenshots = g
	}
	g.setGallery(items)
	return g
}

// Gallery returns the hosted engine. It changes after a reload.
func (g *Game) Gallery() *arcgallery.Gallery {
	return g.gallery
}

// SetItems replaces the item list. The gallery is rebuilt with the same
// configuration at the start of the next Update. Safe to call from any
// goroutine.
func (g *Game) SetItems(items []arcgallery.Item) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.pending = append([]arcgallery.Item(nil), items...)
	g.reload = true
}

// Close disposes the gallery and stops the image loader. The next Update
// returns ebiten.Termination.
func (g *Game) Close() error {
	g.mu.Lock()
	if g.closed {
		g.mu.Unlock()
		return nil
	}
	g.closed = true
	g.mu.Unlock()

	g.gallery.Dispose()
	return g.loader.Close()
}

// Quit asks the game to stop. The next Update closes it and returns
// ebiten.Termination. Safe to call from any goroutine.
func (g *Game) Quit() {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.quit = true
}

// Layout implements ebiten.Game. The engine debounces width changes itself,
// so the width is reported on every call.
func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	g.width, g.height = float64(outsideWidth), float64(outsideHeight)
	g.gallery.Resize(g.width)
	return outsideWidth, outsideHeight
}

// Update implements ebiten.Game.
func (g *Game) Update() error {
	if g.isClosed() {
		return ebiten.Termination
	}
	if g.quitRequested() {
		g.shutdown()
		return ebiten.Termination
	}
	g.applyReload()

	if g.cfg.Script != nil && !g.cfg.Script.Done() {
		g.cfg.Script.Step(g.gallery)
	}
	g.handleInput(g.input.poll())
	if g.isClosed() {
		return ebiten.Termination
	}

	g.tex.upload(g.loader.Results(), maxUploadsPerFrame, g.log)

	dt := 1 / float64(ebiten.TPS())
	g.ticks++
	g.gallery.Update(dt)
	g.fps.update(dt)
	return nil
}

// Render implements arcgallery.Renderer. The placements are copied because
// the engine reuses its slice on the next Update.
func (g *Game) Render(f arcgallery.Frame) {
	g.frame = append(g.frame[:0], f.Placements...)
}

func (g *Game) isClosed() bool {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.closed
}

// shutdown closes the game from inside Update, where there is no caller to
// return the loader's error to.
func (g *Game) shutdown() {
	if err := g.Close(); err != nil {
		g.log.Error("closing image loader", "err", err)
	}
}

func (g *Game) quitRequested() bool {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.quit
}

// applyReload swaps in a gallery for items queued by SetItems.
func (g *Game) applyReload() {
	g.mu.Lock()
	items, ok := g.pending, g.reload
	g.pending, g.reload = nil, false
	g.mu.Unlock()
	if !ok {
		return
	}
	g.gallery.Dispose()
	g.setGallery(items)
	g.log.Info("gallery reloaded", "items", len(items))
}

func (g *Game) setGallery(items []arcgallery.Item) {
	g.gallery = arcgallery.New(items, g.gcfg)
	g.frame = g.frame[:0]
	if g.width > 0 {
		g.gallery.Resize(g.width)
	}
	for _, it := range items {
		g.loader.Request(it.Image)
	}
}
