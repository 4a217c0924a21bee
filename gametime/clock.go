// Package gametime derives wall-clock-like "demo time" from the tick
// counter the Parser observes on NetTick sub-messages (spec §4.13 lists
// NetTick as "used by visitors" without specifying a helper; original_source
// consumers pair a tick count with a fixed tick interval to report elapsed
// match time the same way).
package gametime

// Clock tracks the most recently observed tick and the server's fixed tick
// interval, letting callers convert either one into the other.
type Clock struct {
	tick         int32
	tickInterval float32
}

// DefaultTickInterval is Source 2's standard 64-tick server rate
// (1/64 s per tick). parser.FromStream's Clock uses this unless the
// parser.WithTickInterval option supplies a different value.
const DefaultTickInterval float32 = 1.0 / 64.0

// NewClock creates a Clock starting at tick 0 with the given tick interval.
func NewClock(tickInterval float32) *Clock {
	if tickInterval <= 0 {
		tickInterval = DefaultTickInterval
	}
	return &Clock{tickInterval: tickInterval}
}

// Advance records a newly observed tick. Ticks are expected to be
// monotonically non-decreasing, matching spec §5's "commands are processed
// strictly in stream order" guarantee; callers seeking backward should
// reconstruct a Clock rather than calling Advance with a smaller tick.
func (c *Clock) Advance(tick int32) {
	c.tick = tick
}

// Tick returns the most recently observed tick.
func (c *Clock) Tick() int32 { return c.tick }

// TickInterval returns the configured seconds-per-tick.
func (c *Clock) TickInterval() float32 { return c.tickInterval }

// Seconds returns the elapsed demo time in seconds implied by the current
// tick and tick interval.
func (c *Clock) Seconds() float64 {
	return float64(c.tick) * float64(c.tickInterval)
}

// Reset returns the clock to tick 0, used by Parser.Reset.
func (c *Clock) Reset() {
	c.tick = 0
}
