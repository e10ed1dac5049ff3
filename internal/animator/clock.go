package animator

import (
	"sync"
	"time"
)

// Clock owns the shared playhead as a normalized progress value in [0,1].
// Attach registers a tick listener and returns its detach function;
// listeners also fire when the progress is set directly, so observers see
// seeks made while stopped.
type Clock interface {
	SetDuration(d time.Duration)
	Attach(fn func()) (detach func())
	Progress() float64
	SetProgress(p float64)
	Forward()
	Stop()
}

// TickerClock drives progress forward in real time at a fixed tick rate.
// Progress clamps at 1 and the clock stops there, unless Loop is set, in
// which case it wraps to 0 and keeps running.
type TickerClock struct {
	Loop bool

	mu        sync.Mutex
	interval  time.Duration
	duration  time.Duration
	progress  float64
	running   bool
	stopCh    chan struct{}
	listeners map[int]func()
	nextID    int
}

// NewTickerClock returns a clock ticking fps times per second.
func NewTickerClock(fps int) *TickerClock {
	if fps <= 0 {
		fps = 60
	}
	return &TickerClock{
		interval:  time.Second / time.Duration(fps),
		listeners: map[int]func(){},
	}
}

func (c *TickerClock) SetDuration(d time.Duration) {
	c.mu.Lock()
	c.duration = d
	c.mu.Unlock()
}

func (c *TickerClock) Attach(fn func()) func() {
	c.mu.Lock()
	id := c.nextID
	c.nextID++
	c.listeners[id] = fn
	c.mu.Unlock()
	return func() {
		c.mu.Lock()
		delete(c.listeners, id)
		c.mu.Unlock()
	}
}

func (c *TickerClock) Progress() float64 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.progress
}

func (c *TickerClock) SetProgress(p float64) {
	if p < 0 {
		p = 0
	}
	if p > 1 {
		p = 1
	}
	c.mu.Lock()
	c.progress = p
	c.mu.Unlock()
	c.notify()
}

// Forward starts the clock advancing from its current progress.
func (c *TickerClock) Forward() {
	c.mu.Lock()
	if c.running {
		c.mu.Unlock()
		return
	}
	c.running = true
	c.stopCh = make(chan struct{})
	stop := c.stopCh
	c.mu.Unlock()

	go c.run(stop)
}

// Stop halts the clock at its current progress.
func (c *TickerClock) Stop() {
	c.mu.Lock()
	if !c.running {
		c.mu.Unlock()
		return
	}
	c.running = false
	close(c.stopCh)
	c.mu.Unlock()
}

func (c *TickerClock) run(stop chan struct{}) {
	ticker := time.NewTicker(c.interval)
	defer ticker.Stop()
	for {
		select {
		case <-stop:
			return
		case <-ticker.C:
			done := c.step()
			c.notify()
			if done {
				return
			}
		}
	}
}

// step advances progress by one tick. Returns true when the clock has
// stopped and the drive goroutine should exit (after a final notify, so
// observers see the end-of-sequence sample).
func (c *TickerClock) step() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	if !c.running {
		return true
	}
	dur := c.duration
	if dur <= 0 {
		dur = time.Second
	}
	c.progress += float64(c.interval) / float64(dur)
	if c.progress >= 1 {
		if c.Loop {
			c.progress = 0
			return false
		}
		c.progress = 1
		c.running = false
		return true
	}
	return false
}

func (c *TickerClock) notify() {
	c.mu.Lock()
	fns := make([]func(), 0, len(c.listeners))
	for _, fn := range c.listeners {
		fns = append(fns, fn)
	}
	c.mu.Unlock()
	for _, fn := range fns {
		fn()
	}
}

// ManualClock is a Clock stepped explicitly by its owner. Used by tests and
// offline rendering, where wall-clock time must not leak in.
type ManualClock struct {
	duration  time.Duration
	progress  float64
	running   bool
	listeners map[int]func()
	nextID    int
}

func NewManualClock() *ManualClock {
	return &ManualClock{listeners: map[int]func(){}}
}

func (c *ManualClock) SetDuration(d time.Duration) { c.duration = d }

func (c *ManualClock) Attach(fn func()) func() {
	id := c.nextID
	c.nextID++
	c.listeners[id] = fn
	return func() { delete(c.listeners, id) }
}

func (c *ManualClock) Progress() float64 { return c.progress }

func (c *ManualClock) SetProgress(p float64) {
	if p < 0 {
		p = 0
	}
	if p > 1 {
		p = 1
	}
	c.progress = p
	c.fire()
}

func (c *ManualClock) Forward() { c.running = true }
func (c *ManualClock) Stop()    { c.running = false }

// Running reports whether Forward has been called without a matching Stop.
func (c *ManualClock) Running() bool { return c.running }

// Step advances progress by dt against the configured duration and fires
// the tick listeners, whether or not the clock is nominally running.
func (c *ManualClock) Step(dt time.Duration) {
	dur := c.duration
	if dur <= 0 {
		dur = time.Second
	}
	c.progress += float64(dt) / float64(dur)
	if c.progress > 1 {
		c.progress = 1
	}
	c.fire()
}

func (c *ManualClock) fire() {
	for _, fn := range c.listeners {
		fn()
	}
}
