package dragdrop

import (
	"sync"
	"time"
)

// Scroller is the scrollable-region handle the auto-scroller drives. Any
// host that can report pointer position and expose a scroll offset can
// implement it; nothing here assumes a browser.
type Scroller interface {
	// Offset returns the current scroll offset in pixels from the top.
	Offset() float64
	// SetOffset moves the region. Implementations may clamp; the
	// auto-scroller clamps before calling anyway.
	SetOffset(float64)
	// ContentHeight returns the total scrollable content height.
	ContentHeight() float64
	// ViewportHeight returns the visible region height.
	ViewportHeight() float64
}

const (
	// DefaultEdgeThreshold is the pixel band at the viewport's top and
	// bottom edges that triggers auto-scroll.
	DefaultEdgeThreshold = 64.0
	// DefaultMaxSpeed is the scroll rate, in pixels per tick, when the
	// pointer sits directly on an edge.
	DefaultMaxSpeed = 24.0
	// DefaultTickInterval is the scroll timer period.
	DefaultTickInterval = 16 * time.Millisecond
)

// AutoScroller continuously scrolls a region while the drag pointer sits
// near an edge. The scroll runs on its own ticker rather than on pointer
// events, which can be sparse; the speed eases linearly from zero at the
// threshold boundary to the maximum at the edge itself.
type AutoScroller struct {
	mu        sync.Mutex
	scroller  Scroller
	threshold float64
	maxSpeed  float64
	interval  time.Duration

	velocity float64
	stop     chan struct{}
	done     chan struct{}
}

// NewAutoScroller creates a stopped auto-scroller over the region.
func NewAutoScroller(s Scroller) *AutoScroller {
	return &AutoScroller{
		scroller:  s,
		threshold: DefaultEdgeThreshold,
		maxSpeed:  DefaultMaxSpeed,
		interval:  DefaultTickInterval,
	}
}

// SetThreshold overrides the edge band size in pixels.
func (a *AutoScroller) SetThreshold(px float64) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.threshold = px
}

// SetMaxSpeed overrides the per-tick scroll rate at the edge.
func (a *AutoScroller) SetMaxSpeed(px float64) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.maxSpeed = px
}

// SetTickInterval overrides the timer period. Takes effect on next start.
func (a *AutoScroller) SetTickInterval(d time.Duration) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.interval = d
}

// Pointer reports the drag pointer's y position relative to the viewport
// top. Inside the top or bottom threshold band the timer starts (or keeps
// running) with a velocity scaled to edge proximity; outside both bands the
// timer stops.
func (a *AutoScroller) Pointer(y float64) {
	a.mu.Lock()

	vh := a.scroller.ViewportHeight()
	distTop := y
	distBottom := vh - y

	var stop, done chan struct{}
	switch {
	case distTop >= 0 && distTop < a.threshold:
		a.velocity = -a.maxSpeed * (a.threshold - distTop) / a.threshold
		a.startLocked()
	case distBottom >= 0 && distBottom < a.threshold:
		a.velocity = a.maxSpeed * (a.threshold - distBottom) / a.threshold
		a.startLocked()
	default:
		stop, done = a.detachLocked()
	}
	a.mu.Unlock()

	halt(stop, done)
}

// Running reports whether the scroll timer is live.
func (a *AutoScroller) Running() bool {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.stop != nil
}

// Stop halts the timer. Idempotent; called on every drag exit path.
func (a *AutoScroller) Stop() {
	a.mu.Lock()
	stop, done := a.detachLocked()
	a.mu.Unlock()
	halt(stop, done)
}

func (a *AutoScroller) startLocked() {
	if a.stop != nil {
		return
	}
	a.stop = make(chan struct{})
	a.done = make(chan struct{})
	go a.run(a.stop, a.done, a.interval)
}

// detachLocked takes ownership of the live timer channels, if any. The
// actual shutdown wait must happen outside the lock so the ticker goroutine
// can finish a tick in flight.
func (a *AutoScroller) detachLocked() (stop, done chan struct{}) {
	stop, done = a.stop, a.done
	a.stop, a.done = nil, nil
	a.velocity = 0
	return stop, done
}

func halt(stop, done chan struct{}) {
	if stop == nil {
		return
	}
	close(stop)
	<-done
}

func (a *AutoScroller) run(stop, done chan struct{}, interval time.Duration) {
	defer close(done)
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-stop:
			return
		case <-ticker.C:
			a.tick()
		}
	}
}

// tick advances the scroll offset by the current velocity, clamped to the
// region's bounds.
func (a *AutoScroller) tick() {
	a.mu.Lock()
	v := a.velocity
	s := a.scroller
	a.mu.Unlock()
	if v == 0 {
		return
	}
	maxOffset := s.ContentHeight() - s.ViewportHeight()
	if maxOffset < 0 {
		maxOffset = 0
	}
	next := s.Offset() + v
	if next < 0 {
		next = 0
	}
	if next > maxOffset {
		next = maxOffset
	}
	s.SetOffset(next)
}
