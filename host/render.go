package host

import (
	"bytes"
	"image/color"
	"math"
	"sort"

	"github.com/charmbracelet/log"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/text/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"golang.org/x/image/font/basicfont"

	"github.com/phanxgames/arcgallery"
)

var (
	backgroundColor  = color.RGBA{0x11, 0x11, 0x14, 0xff}
	placeholderColor = color.RGBA{0x2a, 0x2a, 0x30, 0xff}
	failedColor      = color.RGBA{0x55, 0x22, 0x22, 0xff}
)

// captionGap is the space between a card's bottom edge and its caption.
const captionGap = 12.0

// Draw implements ebiten.Game. Cards are drawn far to near so the centered
// card ends up on top.
func (g *Game) Draw(screen *ebiten.Image) {
	screen.Fill(backgroundColor)

	g.drawOrder = sortForDraw(append(g.drawOrder[:0], g.frame...))
	radius := g.gallery.Config().CornerRadius
	textColor := g.gallery.Config().TextColor
	for _, p := range g.drawOrder {
		if !visible(p, g.width) {
			continue
		}
		g.drawCard(screen, p, radius, textColor)
	}

	if g.cfg.ShowFPS {
		g.fps.draw(screen, g.gallery.CenteredIndex())
	}
	g.flushScreenshots(screen)
}

// sortForDraw orders placements by descending distance from the center.
func sortForDraw(ps []arcgallery.Placement) []arcgallery.Placement {
	sort.SliceStable(ps, func(i, j int) bool {
		return math.Abs(ps[i].X) > math.Abs(ps[j].X)
	})
	return ps
}

// visible reports whether any part of the card can reach a surface of the
// given width. Rotation can swing a corner out by at most half the diagonal.
func visible(p arcgallery.Placement, width float64) bool {
	reach := math.Hypot(p.Width, p.Height) / 2
	return math.Abs(p.X)-reach < width/2
}

func (g *Game) drawCard(screen *ebiten.Image, p arcgallery.Placement, radius float64, textColor arcgallery.Color) {
	if g.card == nil {
		g.card = &cardCanvas{}
	}
	w, h := int(math.Ceil(p.Width)), int(math.Ceil(p.Height))
	if w <= 0 || h <= 0 {
		return
	}
	canvas := g.card.prepare(w, h, radius*p.Width)

	img, state := g.tex.get(p.Item.Image)
	switch state {
	case textureReady:
		op := &ebiten.DrawImageOptions{Filter: ebiten.FilterLinear}
		b := img.Bounds()
		op.GeoM = coverGeoM(float64(b.Dx()), float64(b.Dy()), float64(w), float64(h))
		canvas.DrawImage(img, op)
	case textureFailed:
		canvas.Fill(failedColor)
	default:
		canvas.Fill(placeholderColor)
	}
	g.card.mask(canvas)

	cardGeoM := affineGeoM(p.ScreenTransform(g.width, g.height))
	op := &ebiten.DrawImageOptions{Filter: ebiten.FilterLinear}
	op.GeoM = cardGeoM
	screen.DrawImage(canvas, op)

	if p.Item.Caption != "" {
		g.drawCaption(screen, p, cardGeoM, textColor)
	}
}

func (g *Game) drawCaption(screen *ebiten.Image, p arcgallery.Placement, cardGeoM ebiten.GeoM, c arcgallery.Color) {
	op := &text.DrawOptions{}
	op.GeoM.Translate(p.Width/2, p.Height+captionGap)
	op.GeoM.Concat(cardGeoM)
	op.ColorScale.Scale(float32(c.R*c.A), float32(c.G*c.A), float32(c.B*c.A), float32(c.A))
	op.PrimaryAlign = text.AlignCenter
	op.Filter = ebiten.FilterLinear
	text.Draw(screen, p.Item.Caption, g.face, op)
}

// coverGeoM scales a src-sized image to cover a dst-sized box, cropping the
// overflow equally on both sides.
func coverGeoM(srcW, srcH, dstW, dstH float64) ebiten.GeoM {
	var m ebiten.GeoM
	if srcW <= 0 || srcH <= 0 {
		return m
	}
	s := math.Max(dstW/srcW, dstH/srcH)
	m.Scale(s, s)
	m.Translate((dstW-srcW*s)/2, (dstH-srcH*s)/2)
	return m
}

// affineGeoM converts an [a, b, c, d, tx, ty] affine matrix to a GeoM.
func affineGeoM(m [6]float64) ebiten.GeoM {
	var g ebiten.GeoM
	g.SetElement(0, 0, m[0])
	g.SetElement(0, 1, m[2])
	g.SetElement(0, 2, m[4])
	g.SetElement(1, 0, m[1])
	g.SetElement(1, 1, m[3])
	g.SetElement(1, 2, m[5])
	return g
}

// --- Card canvas ---

// cardCanvas is an offscreen card-sized buffer plus a rounded-rectangle
// alpha mask, both rebuilt only when the card size or radius changes.
type cardCanvas struct {
	buf    *ebiten.Image
	alpha  *ebiten.Image
	w, h   int
	radius float64
}

// prepare returns the cleared buffer for a w x h card.
func (c *cardCanvas) prepare(w, h int, radius float64) *ebiten.Image {
	radius = clampRadius(radius, float64(w), float64(h))
	if c.buf == nil || c.w != w || c.h != h {
		if c.buf != nil {
			c.buf.Deallocate()
			c.alpha.Deallocate()
		}
		c.buf = ebiten.NewImage(w, h)
		c.alpha = ebiten.NewImage(w, h)
		c.w, c.h = w, h
		c.radius = -1
	}
	if c.radius != radius {
		c.alpha.Clear()
		drawRoundedRect(c.alpha, float64(w), float64(h), radius)
		c.radius = radius
	}
	c.buf.Clear()
	return c.buf
}

// mask keeps only the pixels of dst inside the rounded rectangle.
func (c *cardCanvas) mask(dst *ebiten.Image) {
	op := &ebiten.DrawImageOptions{Blend: ebiten.BlendDestinationIn}
	dst.DrawImage(c.alpha, op)
}

// clampRadius limits a corner radius to half the shorter side.
func clampRadius(r, w, h float64) float64 {
	if r < 0 || math.IsNaN(r) {
		return 0
	}
	return math.Min(r, math.Min(w, h)/2)
}

// drawRoundedRect fills a w x h rounded rectangle in opaque white.
func drawRoundedRect(dst *ebiten.Image, w, h, r float64) {
	if r <= 0 {
		dst.Fill(color.White)
		return
	}
	fw, fh, fr := float32(w), float32(h), float32(r)
	vector.DrawFilledRect(dst, fr, 0, fw-2*fr, fh, color.White, true)
	vector.DrawFilledRect(dst, 0, fr, fw, fh-2*fr, color.White, true)
	for _, c := range [][2]float32{{fr, fr}, {fw - fr, fr}, {fr, fh - fr}, {fw - fr, fh - fr}} {
		vector.DrawFilledCircle(dst, c[0], c[1], fr, color.White, true)
	}
}

// --- Caption face ---

// newCaptionFace loads the caption font, falling back to a bitmap face when
// none is configured or it fails to parse.
func newCaptionFace(data []byte, size float64, logger *log.Logger) text.Face {
	if len(data) > 0 {
		src, err := text.NewGoTextFaceSource(bytes.NewReader(data))
		if err == nil {
			return &text.GoTextFace{Source: src, Size: size}
		}
		logger.Warn("caption font unusable, using built-in face", "err", err)
	}
	return text.NewGoXFace(basicfont.Face7x13)
}
