package clock

import "time"

// Clock stamps events and log lines.
type Clock interface {
	Now() time.Time
}

// RealClock reports wall time in a fixed location, UTC by default.
type RealClock struct {
	loc *time.Location
}

func NewRealClock(loc *time.Location) Clock {
	if loc == nil {
		loc = time.UTC
	}
	return &RealClock{loc: loc}
}

// NewClockIn falls back to UTC when the zone name cannot be loaded.
func NewClockIn(zone string) Clock {
	loc, err := time.LoadLocation(zone)
	if err != nil {
		loc = time.UTC
	}
	return NewRealClock(loc)
}

func (c *RealClock) Now() time.Time {
	return time.Now().In(c.loc)
}

type FixedClock struct {
	currentTime time.Time
}

func NewFixedClock(t time.Time) *FixedClock {
	return &FixedClock{currentTime: t}
}

func (c *FixedClock) Now() time.Time {
	return c.currentTime
}

func (c *FixedClock) Advance(d time.Duration) {
	c.currentTime = c.currentTime.Add(d)
}
