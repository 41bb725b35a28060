package cli

import (
	"errors"
	"fmt"
	"io"
	"math"
	"sort"
	"strconv"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/phanxgames/arcgallery"
	"github.com/phanxgames/arcgallery/internal/manifest"
)

// defaultWidth is the surface width used by layout and replay.
const defaultWidth = 1280

var errBadWidth = errors.New("width must be positive")

func newLayoutCmd() *cobra.Command {
	var (
		width float64
		all   bool
	)

	cmd := &cobra.Command{
		Use:   "layout <manifest>",
		Short: "Print the card placements at rest for a surface width",
		Long: `Layout builds the gallery for a manifest, measures it at the given width
and prints the layout constants and the transform of every card as the strip
comes to rest centered on the first item.

Only cards that reach the surface are listed unless --all is given.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			logger := loggerFromContext(cmd.Context())
			m, err := manifest.Load(args[0])
			if err != nil {
				return err
			}
			return writeLayout(cmd.OutOrStdout(), m, width, all, logger)
		},
	}

	cmd.Flags().Float64VarP(&width, "width", "w", defaultWidth, "surface width in pixels")
	cmd.Flags().BoolVarP(&all, "all", "a", false, "list offscreen cards too")
	return cmd
}

// buildGallery creates a gallery for m measured at width.
func buildGallery(m *manifest.Manifest, width float64, logger *log.Logger, events arcgallery.EventSink) (*arcgallery.Gallery, error) {
	if width <= 0 || math.IsNaN(width) || math.IsInf(width, 0) {
		return nil, fmt.Errorf("%w: %v", errBadWidth, width)
	}
	cfg, err := m.Config(arcgallery.DefaultConfig())
	if err != nil {
		return nil, err
	}
	cfg.Logger = logger
	cfg.Events = events
	g := arcgallery.New(m.Items, cfg)
	g.Resize(width)
	return g, nil
}

func writeLayout(w io.Writer, m *manifest.Manifest, width float64, all bool, logger *log.Logger) error {
	g, err := buildGallery(m, width, logger, nil)
	if err != nil {
		return err
	}
	defer g.Dispose()
	g.Update(0)

	l := g.Layout()
	title := m.Title
	if title == "" {
		title = "arcgallery"
	}
	printTitle(w, title)
	printKV(w, "items", g.Len())
	printNumber(w, "surface width", l.SurfaceWidth)
	printNumber(w, "card width", l.ItemWidth)
	printNumber(w, "card height", l.ItemHeight)
	printNumber(w, "pitch", l.ItemPitch)
	printNumber(w, "strip length", l.StripLength)
	printNumber(w, "bend", g.Config().Bend)
	fmt.Fprintln(w)

	rows := layoutRows(g.Placements(), l, all)
	if len(rows) == 0 {
		fmt.Fprintln(w, styleDim.Render("  no cards reach the surface"))
		return nil
	}
	fmt.Fprintln(w, layoutTable(rows))
	return nil
}

// layoutRow is one printed card.
type layoutRow struct {
	p        arcgallery.Placement
	centered bool
}

// layoutRows returns the placements ordered left to right, dropping cards
// that cannot reach the surface unless all is set.
func layoutRows(ps []arcgallery.Placement, l arcgallery.Layout, all bool) []layoutRow {
	rows := make([]layoutRow, 0, len(ps))
	for _, p := range ps {
		if !all && math.Abs(p.X)-p.Width/2 >= l.HalfWidth {
			continue
		}
		rows = append(rows, layoutRow{p: p, centered: math.Abs(p.X) < l.ItemPitch/2})
	}
	sort.Slice(rows, func(i, j int) bool { return rows[i].p.X < rows[j].p.X })
	return rows
}

func layoutTable(rows []layoutRow) *table.Table {
	data := make([][]string, len(rows))
	for i, r := range rows {
		data[i] = []string{
			strconv.Itoa(r.p.Slot),
			strconv.Itoa(r.p.Index),
			r.p.Item.Caption,
			fmt.Sprintf("%.1f", r.p.X),
			fmt.Sprintf("%.1f", r.p.Y),
			fmt.Sprintf("%.2f", r.p.Rotation*180/math.Pi),
		}
	}
	return table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(styleDim).
		Headers("SLOT", "ITEM", "CAPTION", "X", "Y", "ROT°").
		Rows(data...).
		StyleFunc(func(row, col int) lipgloss.Style {
			switch {
			case row == table.HeaderRow:
				return styleHeader
			case row >= 0 && row < len(rows) && rows[row].centered:
				return styleCenter
			default:
				return styleCell
			}
		})
}
