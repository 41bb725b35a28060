package cli

import (
	"context"
	"fmt"
	"os"

	"github.com/charmbracelet/log"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/spf13/cobra"

	"github.com/phanxgames/arcgallery"
	"github.com/phanxgames/arcgallery/host"
	"github.com/phanxgames/arcgallery/internal/manifest"
)

// runOptions holds the flags of the run command.
type runOptions struct {
	Title         string
	Width, Height int
	ShowFPS       bool
	Debug         bool
	Watch         bool
	Workers       int
	FontPath      string
	FontSize      float64
	ScreenshotDir string
	ScriptPath    string
}

func newRunCmd() *cobra.Command {
	opts := runOptions{Width: 1280, Height: 720, Watch: true, ScreenshotDir: "screenshots"}

	cmd := &cobra.Command{
		Use:   "run <manifest>",
		Short: "Open a window showing the gallery for a manifest",
		Long: `Run opens a resizable window with the images listed in a TOML or YAML
manifest. Scroll with the mouse wheel, drag with the mouse or a finger, click
a card to center it, use the arrow keys to step and Escape to quit.

The manifest is reloaded whenever it changes on disk unless --watch=false.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runGallery(cmd.Context(), args[0], opts)
		},
	}

	f := cmd.Flags()
	f.StringVarP(&opts.Title, "title", "t", "", "window title (default: manifest title)")
	f.IntVar(&opts.Width, "width", opts.Width, "initial window width")
	f.IntVar(&opts.Height, "height", opts.Height, "initial window height")
	f.BoolVar(&opts.ShowFPS, "fps", false, "show the FPS overlay")
	f.BoolVar(&opts.Debug, "debug", false, "log per-frame stats (needs --verbose)")
	f.BoolVar(&opts.Watch, "watch", opts.Watch, "reload the manifest when it changes")
	f.IntVar(&opts.Workers, "workers", 0, "image decode workers (default 4)")
	f.StringVar(&opts.FontPath, "font", "", "TTF/OTF font for captions")
	f.Float64Var(&opts.FontSize, "font-size", 18, "caption size in pixels")
	f.StringVar(&opts.ScreenshotDir, "screenshots", opts.ScreenshotDir, "directory for screenshots")
	f.StringVar(&opts.ScriptPath, "script", "", "replay an input script in the window")
	return cmd
}

func runGallery(ctx context.Context, path string, opts runOptions) error {
	logger := loggerFromContext(ctx)

	m, err := manifest.Load(path)
	if err != nil {
		return err
	}
	gcfg, err := m.Config(arcgallery.DefaultConfig())
	if err != nil {
		return err
	}
	gcfg.Logger = logger
	gcfg.Debug = opts.Debug

	hcfg := host.Config{
		BaseDir:       m.Dir,
		Workers:       opts.Workers,
		FontSize:      opts.FontSize,
		ShowFPS:       opts.ShowFPS,
		ScreenshotDir: opts.ScreenshotDir,
		Logger:        logger,
	}
	if opts.FontPath != "" {
		if hcfg.FontData, err = os.ReadFile(opts.FontPath); err != nil {
			return fmt.Errorf("failed to read font: %w", err)
		}
	}
	if opts.ScriptPath != "" {
		data, err := os.ReadFile(opts.ScriptPath)
		if err != nil {
			return fmt.Errorf("failed to read script: %w", err)
		}
		if hcfg.Script, err = arcgallery.LoadScript(data); err != nil {
			return fmt.Errorf("%s: %w", opts.ScriptPath, err)
		}
	}

	game := host.New(m.Items, gcfg, hcfg)
	defer game.Close()

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()
	go func() {
		<-ctx.Done()
		game.Quit()
	}()
	if opts.Watch {
		go watchManifest(ctx, path, game, logger)
	}

	ebiten.SetWindowTitle(windowTitle(opts.Title, m.Title))
	ebiten.SetWindowSize(opts.Width, opts.Height)
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)

	logger.Info("gallery started", "manifest", path, "items", len(m.Items))
	if err := ebiten.RunGame(game); err != nil {
		return err
	}
	// Report an interrupt to main so it can exit with the signal status.
	return ctx.Err()
}

// watchManifest pushes every valid reload of path into game until ctx is done.
// Invalid manifests are logged and the current items are kept.
func watchManifest(ctx context.Context, path string, game *host.Game, logger *log.Logger) {
	err := manifest.Watch(ctx, path, func(m *manifest.Manifest, err error) {
		if err != nil {
			logger.Warn("manifest reload failed", "path", path, "err", err)
			return
		}
		logger.Info("manifest changed", "items", len(m.Items))
		game.SetItems(m.Items)
	})
	if err != nil {
		logger.Error("manifest watch stopped", "err", err)
	}
}

func windowTitle(flag, manifestTitle string) string {
	switch {
	case flag != "":
		return flag
	case manifestTitle != "":
		return manifestTitle
	default:
		return "arcgallery"
	}
}
