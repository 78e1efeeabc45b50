// Package export renders surface animations offline into numbered PNG
// frames. Frames are produced against a virtual clock, so a sequence is
// identical for a given seed regardless of how fast the machine renders.
package export

import (
	"context"
	"fmt"
	"image"
	"image/png"
	"io"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/schollz/progressbar/v3"
	"go.uber.org/zap"

	"site-quote/core/surface"
	"site-quote/internal/errors"
)

// Options configures a frame export
type Options struct {
	// Dir receives the frames, created if missing
	Dir string

	// Size is the frame size in pixels
	Size surface.Size

	// Frames is the number of frames to write
	Frames int

	// FPS sets the simulated time between frames
	FPS int

	// Prefix names the files, <prefix>-0001.png
	Prefix string

	// Static writes the single reduced-motion frame instead of an animation
	Static bool

	// Progress receives the progress bar, nil means stderr
	Progress io.Writer

	Logger *zap.Logger
}

// Host implements surface.Host by writing each presented frame to disk
type Host struct {
	opts Options
	bar  *progressbar.ProgressBar

	mu       sync.Mutex
	paths    []string
	done     chan struct{}
	doneOnce sync.Once
}

// New validates opts and prepares the output directory
func New(opts Options) (*Host, error) {
	if !opts.Size.Usable() {
		return nil, errors.Newf(errors.TypeInput, "invalid frame size %dx%d", opts.Size.W, opts.Size.H)
	}
	if opts.Static {
		opts.Frames = 1
	}
	if opts.Frames <= 0 {
		return nil, errors.Newf(errors.TypeInput, "frame count must be positive, got %d", opts.Frames)
	}
	if opts.Prefix == "" {
		opts.Prefix = "frame"
	}
	if opts.Progress == nil {
		opts.Progress = os.Stderr
	}
	if opts.Logger == nil {
		opts.Logger = zap.NewNop()
	}
	if err := os.MkdirAll(opts.Dir, 0755); err != nil {
		return nil, errors.Render("create output directory", err)
	}

	bar := progressbar.NewOptions(opts.Frames,
		progressbar.OptionSetWriter(opts.Progress),
		progressbar.OptionSetDescription("rendering frames"),
		progressbar.OptionShowCount(),
		progressbar.OptionSetWidth(30),
		progressbar.OptionOnCompletion(func() { fmt.Fprintln(opts.Progress) }),
	)

	return &Host{
		opts: opts,
		bar:  bar,
		done: make(chan struct{}),
	}, nil
}

// Size returns the fixed export size
func (h *Host) Size() surface.Size {
	return h.opts.Size
}

// ReducedMotion reports whether a static frame was requested
func (h *Host) ReducedMotion() bool {
	return h.opts.Static
}

// SubscribeResize never delivers; exports have a fixed size
func (h *Host) SubscribeResize() (<-chan surface.Size, func()) {
	return nil, func() {}
}

// Present encodes the frame as the next PNG in the sequence. Frames past
// the requested count are ignored.
func (h *Host) Present(frame *image.RGBA) error {
	h.mu.Lock()
	defer h.mu.Unlock()

	if len(h.paths) >= h.opts.Frames {
		return nil
	}

	path := filepath.Join(h.opts.Dir, fmt.Sprintf("%s-%04d.png", h.opts.Prefix, len(h.paths)+1))
	if err := writePNG(path, frame); err != nil {
		return err
	}
	h.paths = append(h.paths, path)
	_ = h.bar.Add(1)
	h.opts.Logger.Debug("frame written", zap.String("path", path))

	if len(h.paths) == h.opts.Frames {
		h.doneOnce.Do(func() { close(h.done) })
	}
	return nil
}

// Done is closed once every requested frame is written
func (h *Host) Done() <-chan struct{} {
	return h.done
}

// Paths returns the files written so far
func (h *Host) Paths() []string {
	h.mu.Lock()
	defer h.mu.Unlock()
	return append([]string(nil), h.paths...)
}

func writePNG(path string, img image.Image) error {
	f, err := os.Create(path)
	if err != nil {
		return errors.Render("create frame file", err)
	}
	if err := png.Encode(f, img); err != nil {
		f.Close()
		return errors.Render("encode frame", err).WithContext("path", path)
	}
	if err := f.Close(); err != nil {
		return errors.Render("close frame file", err).WithContext("path", path)
	}
	return nil
}

// Render drives sim until every frame is written and returns the paths
func Render(ctx context.Context, sim surface.Simulator, opts Options) ([]string, error) {
	host, err := New(opts)
	if err != nil {
		return nil, err
	}

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	clock := surface.NewVirtualClock(time.Unix(0, 0))
	anim := surface.NewAnimator(sim, host, clock, surface.Options{
		FPS:                  opts.FPS,
		RespectReducedMotion: true,
		Logger:               host.opts.Logger,
	})
	if err := anim.Start(ctx); err != nil {
		return nil, err
	}

	finished := make(chan error, 1)
	go func() { finished <- anim.Wait() }()

	select {
	case <-host.Done():
	case <-ctx.Done():
	case err := <-finished:
		if err != nil {
			return host.Paths(), err
		}
	}
	anim.Stop()
	if err := anim.Wait(); err != nil {
		return host.Paths(), err
	}

	select {
	case <-host.Done():
		return host.Paths(), nil
	default:
		return host.Paths(), errors.Render("export interrupted", ctx.Err())
	}
}
