// Package clock gates how often the simulation advances a generation.
package clock

import "time"

// DefaultBase is the interval between generations at divider 1.
const DefaultBase = time.Second

// Clock accumulates elapsed time and fires once the accumulated time reaches
// base/divider. Overrun is carried into the next interval.
type Clock struct {
	base    time.Duration
	divider int
	elapsed time.Duration
}

// New returns a clock with the given base interval and divider 1.
func New(base time.Duration) *Clock {
	if base <= 0 {
		base = DefaultBase
	}
	return &Clock{base: base, divider: 1}
}

// Advance adds dt and reports whether a generation is due. It fires at most
// once per call.
func (c *Clock) Advance(dt time.Duration) bool {
	c.elapsed += dt
	threshold := c.Interval()
	if c.elapsed < threshold {
		return false
	}
	c.elapsed -= threshold
	return true
}

// Interval is the current time between generations.
func (c *Clock) Interval() time.Duration {
	return c.base / time.Duration(c.divider)
}

// Divider returns the speed divider, always at least 1.
func (c *Clock) Divider() int { return c.divider }

// Elapsed returns the time accumulated toward the next generation.
func (c *Clock) Elapsed() time.Duration { return c.elapsed }

// SpeedUp shortens the interval by raising the divider.
func (c *Clock) SpeedUp() { c.divider++ }

// SlowDown lowers the divider, stopping at 1.
func (c *Clock) SlowDown() {
	if c.divider > 1 {
		c.divider--
	}
}

// Reset drops accumulated time.
func (c *Clock) Reset() { c.elapsed = 0 }
