package surface

import (
	"sync"
	"time"
)

// Clock schedules animation frames
type Clock interface {
	Now() time.Time
	NewTicker(d time.Duration) Ticker
}

// Ticker delivers frame times until stopped
type Ticker interface {
	C() <-chan time.Time
	Stop()
}

// SystemClock is the wall clock
type SystemClock struct{}

// Now returns the current time with monotonic clock reading
func (SystemClock) Now() time.Time {
	return time.Now()
}

// NewTicker wraps time.NewTicker
func (SystemClock) NewTicker(d time.Duration) Ticker {
	return systemTicker{time.NewTicker(d)}
}

type systemTicker struct {
	t *time.Ticker
}

func (s systemTicker) C() <-chan time.Time { return s.t.C }
func (s systemTicker) Stop()               { s.t.Stop() }

// VirtualClock advances by exactly one interval per delivered tick, as fast
// as ticks are consumed. Offline rendering uses it so output does not depend
// on machine speed.
type VirtualClock struct {
	mu  sync.Mutex
	now time.Time
}

// NewVirtualClock creates a virtual clock starting at start
func NewVirtualClock(start time.Time) *VirtualClock {
	return &VirtualClock{now: start}
}

// Now returns the virtual time
func (c *VirtualClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

// NewTicker starts delivering ticks d apart in virtual time
func (c *VirtualClock) NewTicker(d time.Duration) Ticker {
	t := &virtualTicker{
		ch:   make(chan time.Time),
		stop: make(chan struct{}),
	}
	t.wg.Add(1)
	go func() {
		defer t.wg.Done()
		for {
			c.mu.Lock()
			next := c.now.Add(d)
			c.mu.Unlock()

			select {
			case t.ch <- next:
				c.mu.Lock()
				c.now = next
				c.mu.Unlock()
			case <-t.stop:
				return
			}
		}
	}()
	return t
}

type virtualTicker struct {
	ch   chan time.Time
	stop chan struct{}
	once sync.Once
	wg   sync.WaitGroup
}

func (t *virtualTicker) C() <-chan time.Time { return t.ch }

// Stop ends delivery and waits for the ticker goroutine to exit
func (t *virtualTicker) Stop() {
	t.once.Do(func() {
		close(t.stop)
		t.wg.Wait()
	})
}
