package domain

import (
	"sync/atomic"
	"time"
)

// Clock is the monotonic timestamp source the engine consumes to stamp
// incoming orders. The only contract is that two calls from the same
// ingest stream never regress; implementations may stamp at ingest or at
// book entry.
type Clock interface {
	Now() int64
}

// SystemClock stamps with time.Now().UnixNano(), ratcheted so concurrent
// callers never observe a timestamp smaller than one already handed out.
// Go's wall clock can step backwards (NTP adjustment); the ratchet is what
// actually gives the "strictly non-decreasing" guarantee the spec requires,
// the monotonic reading alone does not survive across goroutines reading it
// out of global order.
type SystemClock struct {
	last atomic.Int64
}

// NewSystemClock returns a ready-to-use SystemClock.
func NewSystemClock() *SystemClock {
	return &SystemClock{}
}

// Now returns the current time in nanoseconds, never less than any value
// previously returned by this clock.
func (c *SystemClock) Now() int64 {
	for {
		now := time.Now().UnixNano()
		last := c.last.Load()
		if now <= last {
			now = last + 1
		}
		if c.last.CompareAndSwap(last, now) {
			return now
		}
	}
}

// ManualClock is a deterministic test double: Now() returns the value last
// set with Set, or advances by one tick if the caller hasn't moved it,
// giving strictly increasing timestamps without wall-clock jitter.
type ManualClock struct {
	value atomic.Int64
}

// NewManualClock returns a ManualClock starting at t.
func NewManualClock(t int64) *ManualClock {
	c := &ManualClock{}
	c.value.Store(t)
	return c
}

// Set pins the next Now() call to t.
func (c *ManualClock) Set(t int64) {
	c.value.Store(t)
}

// Now returns and then advances the clock's current value by one.
func (c *ManualClock) Now() int64 {
	return c.value.Add(1) - 1
}
