// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package sprite

import "time"

// Time is the frame clock resource shared with update systems.
type Time struct {
	// Elapsed is the time since the clock started.
	Elapsed time.Duration
	// Delta is the duration of the previous frame.
	Delta time.Duration
	// Frames counts completed ticks.
	Frames uint64
}

// AverageFPS returns the mean frame rate since the clock started.
func (t Time) AverageFPS() float64 {
	if t.Elapsed <= 0 {
		return 0
	}
	return float64(t.Frames) / t.Elapsed.Seconds()
}

// FPS returns the instantaneous frame rate derived from Delta.
func (t Time) FPS() float64 {
	if t.Delta <= 0 {
		return 0
	}
	return 1 / t.Delta.Seconds()
}

// FrameTimeMillis returns Delta in milliseconds.
func (t Time) FrameTimeMillis() float64 {
	return float64(t.Delta) / float64(time.Millisecond)
}

// Clock advances a Time once per frame.
type Clock struct {
	start time.Time
	last  time.Time
	now   Time
}

// NewClock starts a clock at the given instant.
func NewClock(start time.Time) *Clock {
	return &Clock{start: start, last: start}
}

// Tick records a frame boundary at now and returns the updated Time.
func (c *Clock) Tick(now time.Time) Time {
	c.now.Elapsed = now.Sub(c.start)
	c.now.Delta = now.Sub(c.last)
	c.now.Frames++
	c.last = now
	return c.now
}

// Time returns the values recorded by the most recent Tick.
func (c *Clock) Time() Time {
	return c.now
}
