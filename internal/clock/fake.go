package clock

import "time"

// FakeClock is a manually driven Clock for deterministic tests. Time only
// moves when Advance or Set is called.
type FakeClock struct {
	now time.Time
}

// NewFakeClock pins the clock to t, normalized to UTC so derived reading
// dates do not depend on the test host's zone.
func NewFakeClock(t time.Time) *FakeClock {
	return &FakeClock{now: t.UTC()}
}

func (c *FakeClock) Now() time.Time {
	return c.now
}

// Advance moves the clock forward (or backward, with a negative d).
func (c *FakeClock) Advance(d time.Duration) {
	c.now = c.now.Add(d)
}

// Set jumps the clock to an absolute instant.
func (c *FakeClock) Set(t time.Time) {
	c.now = t.UTC()
}
