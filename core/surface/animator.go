package surface

import (
	"context"
	"image"
	"sync"
	"sync/atomic"
	"time"

	"go.uber.org/zap"

	"site-quote/internal/errors"
)

// State is the animator lifecycle state
type State int32

const (
	StateUninitialized State = iota
	StateSized
	StateRunning
	StateStatic
	StateStopped
)

func (s State) String() string {
	switch s {
	case StateUninitialized:
		return "uninitialized"
	case StateSized:
		return "sized"
	case StateRunning:
		return "running"
	case StateStatic:
		return "static"
	case StateStopped:
		return "stopped"
	default:
		return "unknown"
	}
}

// Host is the drawing surface an animator presents frames to
type Host interface {
	// Size returns the current surface size in pixels
	Size() Size

	// ReducedMotion reports whether the user asked for no animation
	ReducedMotion() bool

	// Present displays a finished frame. The frame is reused after return.
	Present(frame *image.RGBA) error

	// SubscribeResize delivers size changes until the returned func is called
	SubscribeResize() (<-chan Size, func())
}

// Options configures an Animator
type Options struct {
	FPS                  int
	RespectReducedMotion bool
	Logger               *zap.Logger
}

// Animator drives a Simulator from a Clock and presents frames to a Host.
// The frame ticker and the resize subscription are acquired by Start and
// released together when the loop exits, whatever the cause.
type Animator struct {
	sim    Simulator
	host   Host
	clock  Clock
	opts   Options
	logger *zap.Logger

	state   atomic.Int32
	frames  atomic.Uint64
	started atomic.Bool

	stopCh   chan struct{}
	stopOnce sync.Once
	wg       sync.WaitGroup

	mu  sync.Mutex
	err error

	size  Size
	frame *image.RGBA
}

// NewAnimator creates an animator. Nothing runs until Start.
func NewAnimator(sim Simulator, host Host, clock Clock, opts Options) *Animator {
	if opts.FPS <= 0 {
		opts.FPS = 60
	}
	if opts.Logger == nil {
		opts.Logger = zap.NewNop()
	}
	if clock == nil {
		clock = SystemClock{}
	}
	return &Animator{
		sim:    sim,
		host:   host,
		clock:  clock,
		opts:   opts,
		logger: opts.Logger,
		stopCh: make(chan struct{}),
	}
}

// Start subscribes to resizes and launches the frame loop
func (a *Animator) Start(ctx context.Context) error {
	if !a.started.CompareAndSwap(false, true) {
		return errors.New(errors.TypeInternal, "animator already started")
	}
	resizes, unsubscribe := a.host.SubscribeResize()
	a.wg.Add(1)
	go a.run(ctx, resizes, unsubscribe)
	return nil
}

// Stop ends the loop and waits for it to release its resources. It is safe
// to call more than once and before Start.
func (a *Animator) Stop() {
	a.stopOnce.Do(func() {
		close(a.stopCh)
	})
	a.wg.Wait()
}

// Wait blocks until the loop exits and returns the presentation error that
// ended it, if any
func (a *Animator) Wait() error {
	a.wg.Wait()
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.err
}

// State returns the current lifecycle state
func (a *Animator) State() State {
	return State(a.state.Load())
}

// Frames returns the number of frames presented
func (a *Animator) Frames() uint64 {
	return a.frames.Load()
}

func (a *Animator) interval() time.Duration {
	return time.Second / time.Duration(a.opts.FPS)
}

func (a *Animator) run(ctx context.Context, resizes <-chan Size, unsubscribe func()) {
	var (
		ticker Ticker
		tick   <-chan time.Time
		last   time.Time
	)

	defer a.wg.Done()
	defer a.state.Store(int32(StateStopped))
	defer unsubscribe()
	defer func() {
		if ticker != nil {
			ticker.Stop()
		}
	}()

	static := a.opts.RespectReducedMotion && a.host.ReducedMotion()

	stopTicker := func() {
		if ticker != nil {
			ticker.Stop()
			ticker, tick = nil, nil
		}
	}

	// settle moves the loop into the state a new size calls for
	settle := func(sz Size) bool {
		if !a.resize(sz) {
			stopTicker()
			return true
		}
		if static {
			a.state.Store(int32(StateStatic))
			return a.present(a.sim.RenderStatic)
		}
		if ticker == nil {
			ticker = a.clock.NewTicker(a.interval())
			tick = ticker.C()
			last = a.clock.Now()
		}
		a.state.Store(int32(StateRunning))
		return true
	}

	if !settle(a.host.Size()) {
		return
	}

	for {
		select {
		case <-ctx.Done():
			return
		case <-a.stopCh:
			return
		case sz, ok := <-resizes:
			if !ok {
				resizes = nil
				continue
			}
			if sz == a.size {
				continue
			}
			if !settle(sz) {
				return
			}
		case now := <-tick:
			dt := now.Sub(last)
			last = now
			a.sim.Step(dt)
			if !a.present(a.sim.Render) {
				return
			}
		}
	}
}

// resize reinitializes the simulator. It reports false for a size nothing
// can be drawn on.
func (a *Animator) resize(sz Size) bool {
	a.size = sz
	if !sz.Usable() {
		a.state.Store(int32(StateUninitialized))
		a.logger.Debug("surface not drawable", zap.Int("width", sz.W), zap.Int("height", sz.H))
		return false
	}
	a.sim.Resize(sz.W, sz.H)
	a.frame = image.NewRGBA(image.Rect(0, 0, sz.W, sz.H))
	a.state.Store(int32(StateSized))
	a.logger.Debug("surface resized", zap.Int("width", sz.W), zap.Int("height", sz.H))
	return true
}

func (a *Animator) present(draw func(*image.RGBA)) bool {
	draw(a.frame)
	if err := a.host.Present(a.frame); err != nil {
		a.mu.Lock()
		a.err = errors.Render("present frame", err)
		a.mu.Unlock()
		a.logger.Warn("frame presentation failed", zap.Error(err))
		return false
	}
	a.frames.Add(1)
	return true
}
