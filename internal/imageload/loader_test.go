package imageload

import (
	"context"
	"fmt"
	"image"
	"image/color"
	"image/png"
	"io"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/charmbracelet/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

func writePNG(t *testing.T, dir, name string, w, h int) string {
	t.Helper()
	img := image.NewNRGBA(image.Rect(0, 0, w, h))
	img.Set(0, 0, color.NRGBA{R: 255, A: 255})
	path := filepath.Join(dir, name)
	f, err := os.Create(path)
	require.NoError(t, err)
	require.NoError(t, png.Encode(f, img))
	require.NoError(t, f.Close())
	return path
}

func newTestLoader(t *testing.T, dir string) *Loader {
	t.Helper()
	l := New(context.Background(), Options{Workers: 2, BaseDir: dir, Logger: log.New(io.Discard)})
	t.Cleanup(func() { _ = l.Close() })
	return l
}

// collect reads n results or fails after a timeout.
func collect(t *testing.T, l *Loader, n int) map[string]Result {
	t.Helper()
	got := make(map[string]Result, n)
	timeout := time.After(5 * time.Second)
	for len(got) < n {
		select {
		case r := <-l.Results():
			got[r.URI] = r
		case <-timeout:
			t.Fatalf("timed out with %d of %d results", len(got), n)
		}
	}
	return got
}

func TestLoaderDecodesRelativeAndFileURIs(t *testing.T) {
	dir := t.TempDir()
	writePNG(t, dir, "a.png", 4, 3)
	abs := writePNG(t, dir, "b.png", 2, 2)

	l := newTestLoader(t, dir)
	require.True(t, l.Request("a.png"))
	require.True(t, l.Request("file://"+filepath.ToSlash(abs)))

	got := collect(t, l, 2)
	a := got["a.png"]
	require.NoError(t, a.Err)
	assert.Equal(t, 4, a.Image.Bounds().Dx())
	assert.Equal(t, 3, a.Image.Bounds().Dy())
	require.NoError(t, got["file://"+filepath.ToSlash(abs)].Err)
}

func TestLoaderReportsFailures(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "junk.png"), []byte("not an image"), 0o644))

	l := newTestLoader(t, dir)
	l.Request("missing.png")
	l.Request("junk.png")
	l.Request("https://example.com/x.png")

	got := collect(t, l, 3)
	assert.ErrorIs(t, got["missing.png"].Err, os.ErrNotExist)
	assert.ErrorContains(t, got["junk.png"].Err, "decoding image")
	assert.ErrorIs(t, got["https://example.com/x.png"].Err, ErrUnsupportedScheme)
	for _, r := range got {
		assert.Nil(t, r.Image)
	}
}

func TestLoaderDeduplicates(t *testing.T) {
	dir := t.TempDir()
	writePNG(t, dir, "a.png", 1, 1)

	l := newTestLoader(t, dir)
	assert.True(t, l.Request("a.png"))
	assert.False(t, l.Request("a.png"))
	collect(t, l, 1)

	select {
	case r := <-l.Results():
		t.Fatalf("unexpected second result %+v", r)
	case <-time.After(50 * time.Millisecond):
	}
}

func TestLoaderManyRequests(t *testing.T) {
	dir := t.TempDir()
	const n = 40
	for i := 0; i < n; i++ {
		writePNG(t, dir, fmt.Sprintf("img%02d.png", i), 1+i, 1)
	}

	l := newTestLoader(t, dir)
	for i := 0; i < n; i++ {
		l.Request(fmt.Sprintf("img%02d.png", i))
	}
	got := collect(t, l, n)
	for uri, r := range got {
		assert.NoError(t, r.Err, uri)
	}
}

func TestLoaderCloseWithUndrainedResults(t *testing.T) {
	dir := t.TempDir()
	l := New(context.Background(), Options{Workers: 1, BaseDir: dir, Logger: log.New(io.Discard)})
	for i := 0; i < 10; i++ {
		name := fmt.Sprintf("img%02d.png", i)
		writePNG(t, dir, name, 1, 1)
		l.Request(name)
	}

	require.NoError(t, l.Close())
	require.NoError(t, l.Close())
	assert.False(t, l.Request("k.png"))

	// Results is closed after draining what was delivered.
	for range l.Results() {
	}
}

func TestLoaderStopsWithContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	l := New(ctx, Options{Logger: log.New(io.Discard)})
	cancel()
	require.NoError(t, l.Close())
}

func TestResolve(t *testing.T) {
	tests := []struct {
		name    string
		base    string
		uri     string
		want    string
		wantErr error
	}{
		{"relative", "/data", "img/a.png", filepath.Join("/data", "img/a.png"), nil},
		{"no base", "", "img/a.png", "img/a.png", nil},
		{"absolute", "/data", "/tmp/a.png", "/tmp/a.png", nil},
		{"file url", "/data", "file:///tmp/a.png", filepath.FromSlash("/tmp/a.png"), nil},
		{"http", "/data", "http://x/a.png", "", ErrUnsupportedScheme},
		{"data", "/data", "data:image/png;base64,AAAA", "", ErrUnsupportedScheme},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Resolve(tt.base, tt.uri)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}

	_, err := Resolve("/data", "")
	assert.Error(t, err)
}
