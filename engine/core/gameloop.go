package core

import "time"

// MaxFrameStep caps a single frame's elapsed time
const MaxFrameStep = 0.25

// FrameClock measures the seconds between frames, like a render-loop
// delta clock. The first Tick returns 0.
type FrameClock struct {
	Now     func() time.Time
	MaxStep float64

	last    time.Time
	started bool
	frames  uint64
}

// NewFrameClock creates a clock reading the wall time
func NewFrameClock() *FrameClock {
	return &FrameClock{Now: time.Now, MaxStep: MaxFrameStep}
}

// Tick returns the elapsed seconds since the previous Tick. Long stalls
// (window dragged, debugger) are capped at MaxStep so the globe does not
// jump.
func (c *FrameClock) Tick() float64 {
	now := c.Now()
	c.frames++
	if !c.started {
		c.started = true
		c.last = now
		return 0
	}
	dt := now.Sub(c.last).Seconds()
	c.last = now
	if dt < 0 {
		return 0
	}
	if c.MaxStep > 0 && dt > c.MaxStep {
		dt = c.MaxStep
	}
	return dt
}

// Frames returns how many times Tick has been called
func (c *FrameClock) Frames() uint64 { return c.frames }
