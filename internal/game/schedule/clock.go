// Package schedule provides the simulation clock and the priority event
// queue that drives all deferred combat actions. Events are ordered by due
// tick, FIFO among equal ticks, and carry tagged commands rather than
// closures so that pending work is inspectable and never holds live object
// references across ticks.
package schedule

// Clock holds the current simulation tick. One tick is 1/60 of a second of
// simulated time. The engine loop is the clock's only writer; the clock is
// not safe for concurrent mutation.
type Clock struct {
	tick int64
}

// NewClock returns a Clock at tick 0.
func NewClock() *Clock {
	return &Clock{}
}

// Now returns the current tick.
func (c *Clock) Now() int64 {
	return c.tick
}

// Advance moves the clock forward one tick.
//
// Postcondition: Now() == previous Now() + 1; returns the new tick.
func (c *Clock) Advance() int64 {
	c.tick++
	return c.tick
}
