// Package sim holds the pieces shared by every real-time game in the arcade:
// clocks, entity-local timers, kinematics, events and the fixed-rate loop.
// Nothing here draws, plays sound or reads keys.
package sim

import "time"

// Clock is a monotonic time source measured from the start of a session.
type Clock interface {
	Now() time.Duration
}

// ManualClock is advanced explicitly. Tests and replays use it.
type ManualClock struct {
	now time.Duration
}

// Now returns the current manual time.
func (c *ManualClock) Now() time.Duration { return c.now }

// Set jumps to an absolute time.
func (c *ManualClock) Set(t time.Duration) { c.now = t }

// Advance moves the clock forward by d and returns the new time.
func (c *ManualClock) Advance(d time.Duration) time.Duration {
	c.now += d
	return c.now
}

// WallClock reports real elapsed time since it was created.
type WallClock struct {
	start time.Time
}

// NewWallClock starts a wall clock at zero.
func NewWallClock() *WallClock {
	return &WallClock{start: time.Now()}
}

// Now returns the monotonic time since construction.
func (c *WallClock) Now() time.Duration { return time.Since(c.start) }

// FrameClock derives time from a frame counter, so a session driven at a
// fixed tick rate replays identically regardless of scheduling jitter.
type FrameClock struct {
	frames int64
	step   time.Duration
}

// NewFrameClock builds a frame clock for the given ticks per second.
func NewFrameClock(tickRate int) *FrameClock {
	if tickRate <= 0 {
		tickRate = 60
	}
	return &FrameClock{step: time.Second / time.Duration(tickRate)}
}

// Advance counts one frame and returns the new time.
func (c *FrameClock) Advance() time.Duration {
	c.frames++
	return c.Now()
}

// Now returns frames * step.
func (c *FrameClock) Now() time.Duration {
	return time.Duration(c.frames) * c.step
}

// Step returns the duration of one frame.
func (c *FrameClock) Step() time.Duration { return c.step }

// Reset rewinds to zero.
func (c *FrameClock) Reset() { c.frames = 0 }
