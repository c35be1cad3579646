package core

import "time"

// Clock measures elapsed time between frames, in seconds.
// The first Delta after construction or Reset returns 0.
type Clock struct {
	last     time.Time
	maxDelta float64
}

// NewClock creates a clock that clamps every delta to maxDelta seconds.
// A non-positive maxDelta disables clamping.
func NewClock(maxDelta float64) *Clock {
	return &Clock{maxDelta: maxDelta}
}

// Delta returns the seconds elapsed since the previous call.
func (c *Clock) Delta(now time.Time) float64 {
	if c.last.IsZero() {
		c.last = now
		return 0
	}
	d := now.Sub(c.last).Seconds()
	c.last = now
	if d < 0 {
		return 0
	}
	if c.maxDelta > 0 && d > c.maxDelta {
		return c.maxDelta
	}
	return d
}

// Reset forgets the previous frame time, e.g. after a pause.
func (c *Clock) Reset() {
	c.last = time.Time{}
}
