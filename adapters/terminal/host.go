// Package terminal hosts surface animations in a full-screen terminal.
// Each character cell shows two pixels stacked vertically using the upper
// half block glyph with separate foreground and background colors.
package terminal

import (
	"context"
	"image"
	"sync"
	"sync/atomic"

	"github.com/gdamore/tcell/v2"
	"go.uber.org/zap"

	"site-quote/core/surface"
	"site-quote/internal/errors"
)

const halfBlock = '▀'

// Host implements surface.Host on a tcell screen
type Host struct {
	screen  tcell.Screen
	reduced bool
	logger  *zap.Logger

	mu     sync.Mutex
	subs   map[int]chan surface.Size
	nextID int

	closed atomic.Bool
}

// NewScreen creates and initializes the terminal screen
func NewScreen() (tcell.Screen, error) {
	screen, err := tcell.NewScreen()
	if err != nil {
		return nil, errors.Render("open terminal", err)
	}
	if err := screen.Init(); err != nil {
		return nil, errors.Render("initialize terminal", err)
	}
	screen.HideCursor()
	screen.Clear()
	return screen, nil
}

// New wraps an initialized screen. reduced is the user's reduced-motion
// preference, which terminals cannot report themselves.
func New(screen tcell.Screen, reduced bool, logger *zap.Logger) *Host {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Host{
		screen:  screen,
		reduced: reduced,
		logger:  logger,
		subs:    make(map[int]chan surface.Size),
	}
}

// Size returns the pixel size: one column wide and two rows per cell
func (h *Host) Size() surface.Size {
	w, rows := h.screen.Size()
	return surface.Size{W: w, H: rows * 2}
}

// ReducedMotion returns the configured preference
func (h *Host) ReducedMotion() bool {
	return h.reduced
}

// Present draws a frame and flushes it to the terminal
func (h *Host) Present(frame *image.RGBA) error {
	if h.closed.Load() {
		return errors.Render("terminal closed", nil)
	}

	cols, rows := h.screen.Size()
	b := frame.Bounds()
	cols = min(cols, b.Dx())
	rows = min(rows, b.Dy()/2)

	for row := 0; row < rows; row++ {
		for x := 0; x < cols; x++ {
			top := pixel(frame, b.Min.X+x, b.Min.Y+row*2)
			bottom := pixel(frame, b.Min.X+x, b.Min.Y+row*2+1)
			h.screen.SetContent(x, row, halfBlock, nil, tcell.StyleDefault.Foreground(top).Background(bottom))
		}
	}
	h.screen.Show()
	return nil
}

func pixel(frame *image.RGBA, x, y int) tcell.Color {
	i := frame.PixOffset(x, y)
	p := frame.Pix[i : i+3 : i+3]
	return tcell.NewRGBColor(int32(p[0]), int32(p[1]), int32(p[2]))
}

// SubscribeResize returns a channel that receives the latest size after each
// terminal resize. Stale sizes are dropped when the reader falls behind.
func (h *Host) SubscribeResize() (<-chan surface.Size, func()) {
	h.mu.Lock()
	defer h.mu.Unlock()

	id := h.nextID
	h.nextID++
	ch := make(chan surface.Size, 1)
	h.subs[id] = ch

	var once sync.Once
	return ch, func() {
		once.Do(func() {
			h.mu.Lock()
			delete(h.subs, id)
			h.mu.Unlock()
		})
	}
}

// Subscribers returns the number of live resize subscriptions
func (h *Host) Subscribers() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.subs)
}

func (h *Host) broadcast(sz surface.Size) {
	h.mu.Lock()
	defer h.mu.Unlock()
	for _, ch := range h.subs {
		select {
		case <-ch:
		default:
		}
		ch <- sz
	}
}

// Run pumps terminal events until the user quits, the screen closes or ctx
// is done. It must be called from a single goroutine.
func (h *Host) Run(ctx context.Context) error {
	events := make(chan tcell.Event, 16)
	done := make(chan struct{})
	defer close(done)

	go func() {
		for {
			ev := h.screen.PollEvent()
			if ev == nil {
				close(events)
				return
			}
			select {
			case events <- ev:
			case <-done:
				return
			}
		}
	}()

	for {
		select {
		case <-ctx.Done():
			return nil
		case ev, ok := <-events:
			if !ok {
				h.closed.Store(true)
				return nil
			}
			switch ev := ev.(type) {
			case *tcell.EventResize:
				h.screen.Sync()
				w, rows := ev.Size()
				h.logger.Debug("terminal resized", zap.Int("cols", w), zap.Int("rows", rows))
				h.broadcast(surface.Size{W: w, H: rows * 2})
			case *tcell.EventKey:
				if isQuit(ev) {
					return nil
				}
			}
		}
	}
}

func isQuit(ev *tcell.EventKey) bool {
	switch ev.Key() {
	case tcell.KeyEscape, tcell.KeyCtrlC:
		return true
	case tcell.KeyRune:
		return ev.Rune() == 'q' || ev.Rune() == 'Q'
	}
	return false
}
