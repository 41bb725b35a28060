package host

import (
	"github.com/charmbracelet/log"
	"github.com/hajimehoshi/ebiten/v2"

	"github.com/phanxgames/arcgallery/internal/imageload"
)

// maxUploadsPerFrame bounds GPU uploads per Update to avoid frame spikes
// when many images finish at once.
const maxUploadsPerFrame = 4

// textureState is the load state of one image URI.
type textureState uint8

const (
	texturePending textureState = iota
	textureReady
	textureFailed
)

// textureCache maps image URIs to uploaded images. Only touched from the
// game goroutine.
type textureCache struct {
	images map[string]*ebiten.Image
	failed map[string]bool
}

func newTextureCache() *textureCache {
	return &textureCache{
		images: make(map[string]*ebiten.Image),
		failed: make(map[string]bool),
	}
}

// get returns the image for uri and its state.
func (c *textureCache) get(uri string) (*ebiten.Image, textureState) {
	if img, ok := c.images[uri]; ok {
		return img, textureReady
	}
	if c.failed[uri] {
		return nil, textureFailed
	}
	return nil, texturePending
}

// upload takes at most limit finished decodes from results and creates their
// ebiten images. It never blocks.
func (c *textureCache) upload(results <-chan imageload.Result, limit int, logger *log.Logger) int {
	n := 0
	for n < limit {
		select {
		case r, ok := <-results:
			if !ok {
				return n
			}
			c.store(r, logger)
			n++
		default:
			return n
		}
	}
	return n
}

func (c *textureCache) store(r imageload.Result, logger *log.Logger) {
	if r.Err != nil {
		c.failed[r.URI] = true
		logger.Error("image unavailable", "uri", r.URI, "err", r.Err)
		return
	}
	c.images[r.URI] = ebiten.NewImageFromImage(r.Image)
	delete(c.failed, r.URI)
}
