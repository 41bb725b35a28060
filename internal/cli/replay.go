package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/phanxgames/arcgallery"
	"github.com/phanxgames/arcgallery/internal/manifest"
)

var errReplayTimeout = errors.New("replay did not come to rest")

// replayOptions controls a headless replay.
type replayOptions struct {
	Width     float64
	FPS       int
	MaxFrames int
}

// replayResult is the state of the gallery once a replay has finished.
type replayResult struct {
	Frames      int
	Scroll      arcgallery.ScrollState
	Index       int
	Caption     string
	Events      map[arcgallery.EventType]int
	Screenshots []string
}

func newReplayCmd() *cobra.Command {
	opts := replayOptions{Width: defaultWidth, FPS: 60, MaxFrames: 60 * 60}

	cmd := &cobra.Command{
		Use:   "replay <manifest> <script.json>",
		Short: "Replay an input script without a window",
		Long: `Replay runs an input script against the gallery for a manifest at a fixed
frame rate, without opening a window, until the script has finished and the
strip has come to rest. It then prints the final scroll state, the centered
card and how many events of each kind fired.

Screenshot steps are listed but not captured.`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			logger := loggerFromContext(ctx)

			m, err := manifest.Load(args[0])
			if err != nil {
				return err
			}
			data, err := os.ReadFile(args[1])
			if err != nil {
				return fmt.Errorf("failed to read script: %w", err)
			}
			script, err := arcgallery.LoadScript(data)
			if err != nil {
				return fmt.Errorf("%s: %w", args[1], err)
			}

			prog := newProgress(logger)
			res, err := replay(ctx, m, script, opts, logger)
			if err != nil {
				return err
			}
			prog.done(fmt.Sprintf("Replayed %d frames", res.Frames))
			writeReplay(cmd.OutOrStdout(), res)
			return nil
		},
	}

	cmd.Flags().Float64VarP(&opts.Width, "width", "w", opts.Width, "surface width in pixels")
	cmd.Flags().IntVar(&opts.FPS, "fps", opts.FPS, "frames per simulated second")
	cmd.Flags().IntVar(&opts.MaxFrames, "max-frames", opts.MaxFrames, "give up after this many frames")
	return cmd
}

// eventCounter counts gallery events by type.
type eventCounter map[arcgallery.EventType]int

func (c eventCounter) Emit(e arcgallery.Event) { c[e.Type]++ }

// shotList records screenshot labels with the frame they were requested on.
type shotList struct {
	labels []string
	frame  *int
	logger *log.Logger
}

func (s *shotList) Screenshot(label string) {
	s.labels = append(s.labels, label)
	s.logger.Debug("screenshot", "label", label, "frame", *s.frame)
}

// replay steps script and the gallery once per frame until the script is
// done and the gallery is idle.
func replay(ctx context.Context, m *manifest.Manifest, script *arcgallery.ScriptRunner, opts replayOptions, logger *log.Logger) (replayResult, error) {
	if opts.FPS <= 0 {
		return replayResult{}, fmt.Errorf("fps must be positive: %d", opts.FPS)
	}
	events := eventCounter{}
	g, err := buildGallery(m, opts.Width, logger, events)
	if err != nil {
		return replayResult{}, err
	}
	defer g.Dispose()

	frame := 0
	shots := &shotList{frame: &frame, logger: logger}
	script.Screenshots = shots
	dt := 1 / float64(opts.FPS)

	for ; ; frame++ {
		if err := ctx.Err(); err != nil {
			return replayResult{}, err
		}
		if script.Done() && g.Idle() {
			break
		}
		if frame >= opts.MaxFrames {
			return replayResult{}, fmt.Errorf("%w after %d frames", errReplayTimeout, frame)
		}
		script.Step(g)
		g.Update(dt)
	}

	res := replayResult{
		Frames:      frame,
		Scroll:      g.Scroll(),
		Index:       g.CenteredIndex(),
		Events:      events,
		Screenshots: shots.labels,
	}
	if res.Index >= 0 {
		res.Caption = m.Items[res.Index].Caption
	}
	return res, nil
}

func writeReplay(w io.Writer, r replayResult) {
	printTitle(w, "Replay")
	printKV(w, "frames", r.Frames)
	printNumber(w, "current", r.Scroll.Current)
	printNumber(w, "target", r.Scroll.Target)
	printKV(w, "centered", fmt.Sprintf("%d %s", r.Index, r.Caption))
	for _, t := range []arcgallery.EventType{arcgallery.EventLayout, arcgallery.EventSnap, arcgallery.EventWrap, arcgallery.EventSettle} {
		printKV(w, t.String()+" events", r.Events[t])
	}
	for _, label := range r.Screenshots {
		printKV(w, "screenshot", label)
	}
}
