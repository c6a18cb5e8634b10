// Package clock provides the game clock and the global portal cooldown.
//
// The frame loop advances the clock once per tick. Game time follows the
// time scale (0 while paused or after game over); real time does not.
package clock

// TickSeconds is the fixed logic step used by the frame loop.
const TickSeconds = 1.0 / 60.0

type Clock struct {
	scale     float64
	now       float64
	real      float64
	delta     float64
	realDelta float64
	ticks     uint64
}

func New() *Clock {
	return &Clock{scale: 1}
}

// Tick advances real time by realDt and game time by realDt * scale.
func (c *Clock) Tick(realDt float64) {
	if c == nil || realDt < 0 {
		return
	}
	c.realDelta = realDt
	c.delta = realDt * c.scale
	c.real += realDt
	c.now += c.delta
	c.ticks++
}

// Now returns scaled game seconds.
func (c *Clock) Now() float64 {
	if c == nil {
		return 0
	}
	return c.now
}

// RealNow returns unscaled seconds since start.
func (c *Clock) RealNow() float64 {
	if c == nil {
		return 0
	}
	return c.real
}

// Delta returns the scaled duration of the last tick.
func (c *Clock) Delta() float64 {
	if c == nil {
		return 0
	}
	return c.delta
}

// RealDelta returns the unscaled duration of the last tick.
func (c *Clock) RealDelta() float64 {
	if c == nil {
		return 0
	}
	return c.realDelta
}

func (c *Clock) Ticks() uint64 {
	if c == nil {
		return 0
	}
	return c.ticks
}

func (c *Clock) TimeScale() float64 {
	if c == nil {
		return 0
	}
	return c.scale
}

// SetTimeScale clamps s to [0, 1]. Zero freezes game time.
func (c *Clock) SetTimeScale(s float64) {
	if c == nil {
		return
	}
	switch {
	case s < 0:
		s = 0
	case s > 1:
		s = 1
	}
	c.scale = s
}
