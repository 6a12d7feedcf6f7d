// Package clock provides the engine's time source.
//
// Tick returns the delta used for physics integration. Now returns the
// absolute timestamp used for animation scheduling and effect timers. Both
// come from the same monotonic source.
package clock

import (
	"time"
)

// Clock is a monotonic millisecond time source.
type Clock interface {
	// Now returns the current absolute time in milliseconds.
	Now() int64
	// Tick starts a new interval and returns the length of the previous one
	// in milliseconds. The first call returns 0.
	Tick() int64
}

// System is a Clock backed by the runtime's monotonic clock.
type System struct {
	origin   time.Time
	lastTick int64
	started  bool
}

// NewSystem creates a system clock whose zero is the moment of creation.
func NewSystem() *System {
	return &System{origin: time.Now()}
}

// Now returns milliseconds elapsed since the clock was created.
func (c *System) Now() int64 {
	return time.Since(c.origin).Milliseconds()
}

// Tick returns milliseconds since the previous Tick.
func (c *System) Tick() int64 {
	return tick(c.Now(), &c.lastTick, &c.started)
}

// Manual is a Clock that only moves when told to. Used by tests and by
// tooling that steps the engine at a fixed rate.
type Manual struct {
	now      int64
	lastTick int64
	started  bool
}

// NewManual creates a manual clock starting at the given time.
func NewManual(start int64) *Manual {
	return &Manual{now: start}
}

// Now returns the current manual time.
func (c *Manual) Now() int64 {
	return c.now
}

// Tick returns the time advanced since the previous Tick.
func (c *Manual) Tick() int64 {
	return tick(c.now, &c.lastTick, &c.started)
}

// Advance moves the clock forward by ms milliseconds.
func (c *Manual) Advance(ms int64) {
	if ms > 0 {
		c.now += ms
	}
}

// Set moves the clock to an absolute time. Times in the past are ignored
// to keep the clock monotonic.
func (c *Manual) Set(ms int64) {
	if ms > c.now {
		c.now = ms
	}
}

func tick(now int64, last *int64, started *bool) int64 {
	if !*started {
		*started = true
		*last = now
		return 0
	}
	diff := now - *last
	*last = now
	return diff
}
