package system

import "time"

// Clock is simulated time. It only moves when the runner ticks, so two
// worlds fed the same inputs observe the same timestamps.
type Clock struct {
	now   time.Duration
	ticks uint64
}

func (c *Clock) Advance(dt time.Duration) {
	c.now += dt
	c.ticks++
}

// Now returns the simulated time elapsed since start.
func (c *Clock) Now() time.Duration { return c.now }

// Ticks returns how many ticks have started.
func (c *Clock) Ticks() uint64 { return c.ticks }

// WholeSeconds returns whole seconds elapsed since t.
func (c *Clock) WholeSeconds(since time.Duration) int64 {
	return int64((c.now - since) / time.Second)
}
