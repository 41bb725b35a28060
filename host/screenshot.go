package host

import (
	"fmt"
	"image"
	"image/png"
	"os"
	"path/filepath"
	"strings"
	"unicode"

	"github.com/hajimehoshi/ebiten/v2"
)

// shotRequest is a screenshot queued by Screenshot, stamped with the game
// frame and the item centered when it was requested.
type shotRequest struct {
	label string
	frame uint64
	index int
}

// Screenshot queues a labelled capture of the next drawn frame. Files are
// written to Config.ScreenshotDir and named after the session, the frame,
// the centered item and the label. It satisfies arcgallery.Screenshotter.
func (g *Game) Screenshot(label string) {
	g.shots = append(g.shots, shotRequest{
		label: label,
		frame: g.ticks,
		index: g.gallery.CenteredIndex(),
	})
}

// flushScreenshots reads the rendered frame back once and saves it for every
// queued request.
func (g *Game) flushScreenshots(screen *ebiten.Image) {
	if len(g.shots) == 0 {
		return
	}
	shots := g.shots
	g.shots = g.shots[:0]

	if err := os.MkdirAll(g.cfg.ScreenshotDir, 0o755); err != nil {
		g.log.Error("screenshot", "dir", g.cfg.ScreenshotDir, "err", err)
		return
	}

	b := screen.Bounds()
	pixels := make([]byte, 4*b.Dx()*b.Dy())
	screen.ReadPixels(pixels)
	img := unpremultiply(pixels, b.Dx(), b.Dy())

	items := g.gallery.Items()
	for _, s := range shots {
		caption := ""
		if s.index >= 0 && s.index < len(items) {
			caption = items[s.index].Caption
		}
		name := g.session + "_" + shotName(s, caption)
		path, err := savePNG(g.cfg.ScreenshotDir, name, img)
		if err != nil {
			g.log.Error("screenshot", "label", s.label, "err", err)
			continue
		}
		g.log.Info("screenshot saved", "path", path, "frame", s.frame, "item", s.index)
	}
}

// shotName builds "f<frame>_item<index>_<slug>.png". The slug comes from the
// label, or the centered caption when the label is blank.
func shotName(s shotRequest, caption string) string {
	tag := slug(s.label)
	if tag == "" {
		tag = slug(caption)
	}
	if tag == "" {
		tag = "frame"
	}
	item := "none"
	if s.index >= 0 {
		item = fmt.Sprintf("%02d", s.index)
	}
	return fmt.Sprintf("f%06d_item%s_%s.png", s.frame, item, tag)
}

// slug lowercases s and collapses every run of characters other than ASCII
// letters, digits and dots into a single dash.
func slug(s string) string {
	var b strings.Builder
	dash := false
	for _, r := range strings.ToLower(s) {
		if r < unicode.MaxASCII && (unicode.IsLetter(r) || unicode.IsDigit(r) || r == '.') {
			b.WriteRune(r)
			dash = false
			continue
		}
		if !dash && b.Len() > 0 {
			b.WriteByte('-')
			dash = true
		}
	}
	return strings.TrimRight(b.String(), "-")
}

// savePNG encodes img to dir/name through a temporary file, so a failed
// encode never leaves a truncated PNG behind. It returns the final path.
func savePNG(dir, name string, img image.Image) (string, error) {
	tmp, err := os.CreateTemp(dir, ".shot-*.png")
	if err != nil {
		return "", fmt.Errorf("creating screenshot: %w", err)
	}
	defer os.Remove(tmp.Name())

	if err := png.Encode(tmp, img); err != nil {
		tmp.Close()
		return "", fmt.Errorf("encoding screenshot: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return "", fmt.Errorf("writing screenshot: %w", err)
	}
	path := filepath.Join(dir, name)
	if err := os.Rename(tmp.Name(), path); err != nil {
		return "", fmt.Errorf("saving screenshot: %w", err)
	}
	return path, nil
}

// unpremultiply converts premultiplied RGBA pixels read back from the GPU to
// a straight-alpha image for PNG encoding.
func unpremultiply(pixels []byte, w, h int) *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, w, h))
	n := min(len(pixels), len(img.Pix))
	for i := 0; i+3 < n; i += 4 {
		a := pixels[i+3]
		img.Pix[i+3] = a
		for c := 0; c < 3; c++ {
			v := pixels[i+c]
			if a > 0 && a < 255 {
				v = uint8(min(int(v)*255/int(a), 255))
			}
			img.Pix[i+c] = v
		}
	}
	return img
}
