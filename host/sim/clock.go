// This file is part of Lockstep.
//
// Lockstep is free software: you can redistribute it and/or modify
// it under the terms of the GNU General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// Lockstep is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU General Public License for more details.
//
// You should have received a copy of the GNU General Public License
// along with Lockstep.  If not, see <https://www.gnu.org/licenses/>.

package sim

import (
	"time"

	"github.com/jetsetilly/lockstep/host"
)

// Clock is the source of the performance counter.
type Clock interface {
	// the current value of the counter in ticks
	Now() int64

	// called at the end of a frame with the duration of the frame. if wait
	// is true then the host is in the free-running regime
	Advance(ticks int64, wait bool)
}

// SteppedClock is a deterministic clock. Time moves forward when a frame ends
// and by PerRead every time the clock is read.
//
// If PerRead is zero the first read of a frame does not move the clock and
// every further read in the same frame moves it by one tick. A loop waiting
// for the counter to reach a value therefore ends on exactly that value.
type SteppedClock struct {
	now int64

	// amount by which the clock moves every time it is read
	PerRead int64

	// the clock has been read since the last call to Advance()
	read bool
}

// Now implements the Clock interface.
func (c *SteppedClock) Now() int64 {
	if c.PerRead > 0 {
		n := c.now
		c.now += c.PerRead
		return n
	}
	if c.read {
		c.now++
	}
	c.read = true
	return c.now
}

// Advance implements the Clock interface.
func (c *SteppedClock) Advance(ticks int64, _ bool) {
	c.now += ticks
	c.read = false
}

// WallClock measures real time. In the free-running regime a frame lasts for
// at least the frame time.
type WallClock struct {
	start      time.Time
	frameStart time.Time
}

// NewWallClock is the preferred method of initialisation for the WallClock
// type.
func NewWallClock() *WallClock {
	n := time.Now()
	return &WallClock{
		start:      n,
		frameStart: n,
	}
}

func ticks(d time.Duration) int64 {
	return int64(d) / (int64(time.Second) / host.Frequency)
}

func duration(ticks int64) time.Duration {
	return time.Duration(ticks * (int64(time.Second) / host.Frequency))
}

// Now implements the Clock interface.
func (c *WallClock) Now() int64 {
	return ticks(time.Since(c.start))
}

// Advance implements the Clock interface.
func (c *WallClock) Advance(t int64, wait bool) {
	if wait {
		if d := duration(t) - time.Since(c.frameStart); d > 0 {
			time.Sleep(d)
		}
	}
	c.frameStart = time.Now()
}
