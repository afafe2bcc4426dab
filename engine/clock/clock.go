package clock

import "time"

// FrameClock tracks the previous frame timestamp and derives the per-frame delta.
// Timestamps are host-relative durations, as delivered by the host frame scheduler.
type FrameClock struct {
	previous time.Duration
	started  bool
	delta    time.Duration
}

// NewFrameClock creates a FrameClock with no previous timestamp.
//
// Returns:
//   - *FrameClock: a clock whose first Tick returns 0
func NewFrameClock() *FrameClock {
	return &FrameClock{}
}

// Tick records now as the latest timestamp and returns the time elapsed since the previous Tick.
// Returns 0 on the first call after construction or Reset. A timestamp earlier than the previous
// one yields 0 rather than a negative delta.
//
// Parameters:
//   - now: the current frame timestamp
//
// Returns:
//   - time.Duration: the non-negative elapsed time
func (c *FrameClock) Tick(now time.Duration) time.Duration {
	delta := time.Duration(0)
	if c.started {
		delta = max(now-c.previous, 0)
	}
	c.previous = now
	c.started = true
	c.delta = delta
	return delta
}

// Delta returns the delta computed by the most recent Tick.
func (c *FrameClock) Delta() time.Duration {
	return c.delta
}

// Reset forgets the previous timestamp so the next Tick returns 0.
func (c *FrameClock) Reset() {
	c.previous = 0
	c.started = false
	c.delta = 0
}
