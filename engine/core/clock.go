package core

import "time"

// nominalDelta is reported by the first Tick after a Reset when no frame time
// was measured yet.
const nominalDelta = time.Second / 60

// Clock measures wall time between frames.
type Clock struct {
	now      func() time.Time
	maxDelta time.Duration

	startTime time.Time
	lastTick  time.Time
	lastDelta time.Duration
	elapsed   time.Duration
	started   bool
	resumed   bool
}

func NewClock() *Clock {
	return &Clock{
		now: time.Now,
	}
}

// NewClockWithSource is used when the time source must be controlled, e.g. in tests.
func NewClockWithSource(now func() time.Time) *Clock {
	return &Clock{
		now: now,
	}
}

// SetMaxDelta caps the delta returned by Tick. Zero disables the cap.
func (c *Clock) SetMaxDelta(d time.Duration) {
	c.maxDelta = d
}

// Starts the provided clock. Resets elapsed time.
func (c *Clock) Start() {
	c.startTime = c.now()
	c.lastTick = time.Time{}
	c.lastDelta = 0
	c.elapsed = 0
	c.started = true
	c.resumed = false
}

// Stops the provided clock. Does not reset elapsed time.
func (c *Clock) Stop() {
	c.started = false
}

// Updates the provided clock. Should be called just before checking elapsed time.
// Has no effect on non-started clocks.
func (c *Clock) Update() {
	if c.started {
		c.elapsed = c.now().Sub(c.startTime)
	}
}

func (c *Clock) Elapsed() float64 {
	return c.elapsed.Seconds()
}

// Reset forgets the time of the previous frame, so the next Tick does not
// report the time spent while the loop was not producing frames. That Tick
// repeats the last measured delta instead.
func (c *Clock) Reset() {
	c.lastTick = time.Time{}
	c.resumed = true
}

// Tick returns the seconds elapsed since the previous Tick. Only the first
// Tick after Start returns 0; every later Tick returns a strictly positive
// value.
func (c *Clock) Tick() float64 {
	if !c.started {
		c.Start()
	}
	now := c.now()
	c.Update()

	if c.lastTick.IsZero() {
		c.lastTick = now
		if !c.resumed {
			return 0
		}
		c.resumed = false
		delta := c.lastDelta
		if delta <= 0 {
			delta = nominalDelta
		}
		return c.capped(delta).Seconds()
	}

	delta := now.Sub(c.lastTick)
	c.lastTick = now
	if delta <= 0 {
		// coarse timers can report identical instants
		delta = time.Nanosecond
	}
	delta = c.capped(delta)
	c.lastDelta = delta
	return delta.Seconds()
}

func (c *Clock) capped(delta time.Duration) time.Duration {
	if c.maxDelta > 0 && delta > c.maxDelta {
		return c.maxDelta
	}
	return delta
}
