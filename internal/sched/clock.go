// internal/sched/clock.go

package sched

// Clock is the simulated CPU clock. It only moves forward and keeps track of
// how the elapsed time was spent.
type Clock struct {
	now      int
	busy     int // process work
	idle     int // nothing ready
	switches int // context switch overhead
}

// Now returns the current simulated time.
func (c *Clock) Now() int { return c.now }

// IdleUntil advances the clock to t if t lies in the future and reports
// whether the CPU sat idle.
func (c *Clock) IdleUntil(t int) bool {
	if t <= c.now {
		return false
	}
	c.idle += t - c.now
	c.now = t
	return true
}

// Run accounts for a dispatch of length run followed by one context switch.
func (c *Clock) Run(run, contextSwitch int) {
	c.busy += run
	c.switches += contextSwitch
	c.now += run + contextSwitch
}

// Busy returns the total time spent on process work.
func (c *Clock) Busy() int { return c.busy }

// Idle returns the total time the CPU had nothing to run.
func (c *Clock) Idle() int { return c.idle }

// Switches returns the total context switch overhead.
func (c *Clock) Switches() int { return c.switches }
