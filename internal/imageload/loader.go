// Package imageload decodes gallery images on a pool of background workers.
//
// Ebitengine images must be created on the game goroutine, so the loader only
// produces decoded image.Image values; the host drains Results once per frame
// and uploads them there.
package imageload

import (
	"context"
	"errors"
	"fmt"
	"image"
	_ "image/gif"  // Register GIF decoder
	_ "image/jpeg" // Register JPEG decoder
	_ "image/png"  // Register PNG decoder
	"io"
	"net/url"
	"os"
	"path/filepath"
	"sync"

	"github.com/charmbracelet/log"
	_ "golang.org/x/image/webp" // Register WebP decoder
	"golang.org/x/sync/errgroup"
)

// ErrUnsupportedScheme is returned for image URIs that are neither plain
// paths nor file:// URLs.
var ErrUnsupportedScheme = errors.New("unsupported image URI scheme")

// DefaultWorkers is the decoder pool size used when Options.Workers is zero.
const DefaultWorkers = 4

// Result is one finished request. Exactly one of Image and Err is set.
type Result struct {
	URI   string
	Image image.Image
	Err   error
}

// Options configures a Loader.
type Options struct {
	// Workers is the number of concurrent decoders.
	Workers int
	// BaseDir resolves relative paths. Empty means the working directory.
	BaseDir string
	Logger  *log.Logger
}

// Loader decodes images requested by URI. Request is safe to call from any
// goroutine; results arrive on Results in completion order.
type Loader struct {
	opts   Options
	ctx    context.Context
	cancel context.CancelFunc
	group  *errgroup.Group

	mu     sync.Mutex
	queue  []string
	seen   map[string]bool
	closed bool

	wake      chan struct{}
	results   chan Result
	closeOnce sync.Once
	closeErr  error
}

// New starts a loader. The workers stop when ctx is cancelled or Close is
// called.
func New(ctx context.Context, opts Options) *Loader {
	if opts.Workers <= 0 {
		opts.Workers = DefaultWorkers
	}
	if opts.Logger == nil {
		opts.Logger = log.Default()
	}
	ctx, cancel := context.WithCancel(ctx)
	group, ctx := errgroup.WithContext(ctx)

	l := &Loader{
		opts:    opts,
		ctx:     ctx,
		cancel:  cancel,
		group:   group,
		seen:    make(map[string]bool),
		wake:    make(chan struct{}, 1),
		results: make(chan Result, opts.Workers*4),
	}
	group.Go(l.dispatch)
	return l
}

// Request queues uri for decoding. It never blocks. A URI is decoded at most
// once per Loader; repeated requests return false, as do requests after
// Close.
func (l *Loader) Request(uri string) bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.closed || l.seen[uri] {
		return false
	}
	l.seen[uri] = true
	l.queue = append(l.queue, uri)

	select {
	case l.wake <- struct{}{}:
	default:
	}
	return true
}

// Results returns the channel finished requests are delivered on. It is
// closed by Close.
func (l *Loader) Results() <-chan Result {
	return l.results
}

// Close stops the workers, waits for them and closes Results. Pending
// requests are dropped. Safe to call more than once.
func (l *Loader) Close() error {
	l.closeOnce.Do(func() {
		l.mu.Lock()
		l.closed = true
		l.queue = nil
		l.mu.Unlock()

		l.cancel()
		if err := l.group.Wait(); err != nil && !errors.Is(err, context.Canceled) {
			l.closeErr = err
		}
		close(l.results)
	})
	return l.closeErr
}

// dispatch hands queued URIs to a bounded pool of decoders until the loader
// is cancelled.
func (l *Loader) dispatch() error {
	workers := new(errgroup.Group)
	workers.SetLimit(l.opts.Workers)
	defer func() { _ = workers.Wait() }()

	for {
		select {
		case <-l.ctx.Done():
			return nil
		case <-l.wake:
		}

		for _, uri := range l.drain() {
			if l.ctx.Err() != nil {
				return nil
			}
			workers.Go(func() error {
				l.deliver(l.load(uri))
				return nil
			})
		}
	}
}

// drain takes every queued URI.
func (l *Loader) drain() []string {
	l.mu.Lock()
	defer l.mu.Unlock()
	q := l.queue
	l.queue = nil
	return q
}

func (l *Loader) deliver(r Result) {
	select {
	case l.results <- r:
	case <-l.ctx.Done():
	}
}

// load opens and decodes one image.
func (l *Loader) load(uri string) Result {
	path, err := Resolve(l.opts.BaseDir, uri)
	if err != nil {
		l.opts.Logger.Warn("image skipped", "uri", uri, "err", err)
		return Result{URI: uri, Err: err}
	}
	img, err := decodeFile(path)
	if err != nil {
		l.opts.Logger.Warn("image failed", "uri", uri, "err", err)
		return Result{URI: uri, Err: err}
	}
	b := img.Bounds()
	l.opts.Logger.Debug("image decoded", "uri", uri, "w", b.Dx(), "h", b.Dy())
	return Result{URI: uri, Image: img}
}

// Resolve maps an item image URI to a local file path. Plain paths are joined
// to baseDir unless absolute; file:// URLs use their path. Any other scheme
// fails with ErrUnsupportedScheme.
func Resolve(baseDir, uri string) (string, error) {
	if uri == "" {
		return "", fmt.Errorf("empty image URI")
	}
	u, err := url.Parse(uri)
	// Single-letter schemes are Windows drive letters.
	if err != nil || u.Scheme == "" || len(u.Scheme) == 1 {
		if filepath.IsAbs(uri) || baseDir == "" {
			return uri, nil
		}
		return filepath.Join(baseDir, uri), nil
	}
	if u.Scheme != "file" {
		return "", fmt.Errorf("%w: %q", ErrUnsupportedScheme, u.Scheme)
	}
	return filepath.FromSlash(u.Path), nil
}

func decodeFile(path string) (image.Image, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening image: %w", err)
	}
	defer f.Close()
	return decode(f)
}

func decode(r io.Reader) (image.Image, error) {
	img, _, err := image.Decode(r)
	if err != nil {
		return nil, fmt.Errorf("decoding image: %w", err)
	}
	return img, nil
}
