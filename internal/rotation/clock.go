package rotation

import (
	"sync"
	"time"
)

// Ticker delivers animation frames.
type Ticker interface {
	C() <-chan time.Time
	Stop()
}

// Clock supplies the current time and a frame source. The rotator samples
// the animation once per tick.
type Clock interface {
	Now() time.Time
	NewTicker(d time.Duration) Ticker
}

// SystemClock returns a Clock backed by the wall clock and time.Ticker.
func SystemClock() Clock {
	return systemClock{}
}

type systemClock struct{}

func (systemClock) Now() time.Time { return time.Now() }

func (systemClock) NewTicker(d time.Duration) Ticker {
	return &systemTicker{t: time.NewTicker(d)}
}

type systemTicker struct {
	t *time.Ticker
}

func (s *systemTicker) C() <-chan time.Time { return s.t.C }
func (s *systemTicker) Stop()               { s.t.Stop() }

// SimulatedClock is a Clock whose time only moves when a ticker fires.
// Every frame advances the clock by exactly one tick interval and is
// delivered as soon as the consumer is ready, so animations of any length
// finish without real waiting. Headless commands and tests use it.
type SimulatedClock struct {
	mu  sync.Mutex
	now time.Time
}

// NewSimulatedClock creates a simulated clock starting at start.
func NewSimulatedClock(start time.Time) *SimulatedClock {
	return &SimulatedClock{now: start}
}

// Now returns the simulated time.
func (c *SimulatedClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

// Advance moves the clock forward by d and returns the new time.
func (c *SimulatedClock) Advance(d time.Duration) time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = c.now.Add(d)
	return c.now
}

// NewTicker returns a ticker that advances the clock by d per frame.
func (c *SimulatedClock) NewTicker(d time.Duration) Ticker {
	t := &simulatedTicker{
		ch:   make(chan time.Time),
		stop: make(chan struct{}),
	}
	go func() {
		for {
			select {
			case <-t.stop:
				return
			case t.ch <- c.Advance(d):
			}
		}
	}()
	return t
}

type simulatedTicker struct {
	ch   chan time.Time
	stop chan struct{}
	once sync.Once
}

func (t *simulatedTicker) C() <-chan time.Time { return t.ch }

func (t *simulatedTicker) Stop() {
	t.once.Do(func() { close(t.stop) })
}
