package testutil

import (
	"sync"
	"time"
)

// FakeClock is a deterministic clock. Each Now call returns the current time
// and then moves it forward by Step, so consecutive timestamps differ.
type FakeClock struct {
	mu   sync.Mutex
	now  time.Time
	Step time.Duration
}

// NewFakeClock starts a FakeClock at start in UTC.
func NewFakeClock(start time.Time, step time.Duration) *FakeClock {
	return &FakeClock{now: start.UTC(), Step: step}
}

// Now returns the current fake time and advances by Step.
func (c *FakeClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	current := c.now
	c.now = c.now.Add(c.Step)
	return current
}
