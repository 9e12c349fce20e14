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

package host

// Frequency is the number of performance counter ticks per second used by
// the hosts in this project. Frame durations are expressed in these ticks.
const Frequency int64 = 10_000_000

// Sentinel errors for host implementations.
const (
	// the host cannot provide the requested operation. for example, the
	// desktop host cannot read the state of the game
	Unsupported = "host: %s: unsupported by %s host"

	// the key name or number is not recognised
	UnknownKey = "host: unrecognised key (%s)"

	// the frame duration was not positive
	InvalidFrameTime = "host: invalid frame time (%d)"
)

// Control is the set of operations used to drive the host. Every operation
// that changes the host (the mutating operations) is applied immediately but
// only takes effect in the simulation when the frame is advanced.
type Control interface {
	// the number of performance counter ticks per second. constant for the
	// lifetime of the host
	Frequency() int64

	// set the duration of the next and subsequent frames, in ticks
	SetFrameTime(ticks int64) error
	FrameTime() int64

	// free-running regime. when true the host paces each frame by wall-clock
	// time, otherwise frames complete as fast as possible
	SetFrameWait(wait bool)

	// input injection
	MoveMouse(dx, dy int)
	SetKey(key Key, down bool)
	ScrollWheel(delta float64)

	// monotonic performance counter, in ticks
	QueryPerformanceCounter() int64
}

// Events is the set of operations used to poll live input. Events are valid
// only during the frame in which they are polled.
type Events interface {
	KeyEvents() []KeyEvent
	MoveEvents() []MoveEvent
	ScrollEvents() []float64
}

// State is the set of operations that query the state of the simulation.
type State interface {
	// whether a non-interactive cut-scene is active
	IsInMovie() (bool, error)

	// snapshot of the player's position, velocity and rotation
	Snapshot() (TurnState, error)
}

// Capture is the set of operations that are only meaningful while capturing
// a live session. They are never serialized.
type Capture interface {
	// trigger an out-of-band save operation
	SaveCloud(name string) error

	// clip the pointer to the capture region, or release it
	ClipCursor(clip bool) error
}

// Host is the complete Host Control Interface.
type Host interface {
	Control
	Events
	State
	Capture

	// Advance completes the current frame. Exactly one frame of simulated
	// time elapses per call.
	Advance() error
}
