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
	"github.com/jetsetilly/lockstep/host"
)

// Input is the live input that occurred during a frame.
type Input struct {
	Keys    []host.KeyEvent
	Moves   []host.MoveEvent
	Scrolls []float64
}

// EventSource provides the live input for the simulated host. Poll is called
// at most once per frame.
type EventSource interface {
	Poll(frame int) Input
}

// Queue is an EventSource of input prepared in advance.
type Queue struct {
	frames map[int]*Input
}

// NewQueue is the preferred method of initialisation for the Queue type.
func NewQueue() *Queue {
	return &Queue{
		frames: make(map[int]*Input),
	}
}

func (q *Queue) input(frame int) *Input {
	in, ok := q.frames[frame]
	if !ok {
		in = &Input{}
		q.frames[frame] = in
	}
	return in
}

// Key adds a key event to the frame.
func (q *Queue) Key(frame int, key host.Key, down bool) *Queue {
	in := q.input(frame)
	in.Keys = append(in.Keys, host.KeyEvent{Key: key, Down: down})
	return q
}

// Press adds a key down event to the frame and a key up event to the frame
// after.
func (q *Queue) Press(frame int, key host.Key) *Queue {
	return q.Key(frame, key, true).Key(frame+1, key, false)
}

// Move adds a pointer movement to the frame.
func (q *Queue) Move(frame int, dx, dy int) *Queue {
	in := q.input(frame)
	in.Moves = append(in.Moves, host.MoveEvent{DX: dx, DY: dy})
	return q
}

// Scroll adds a scroll event to the frame.
func (q *Queue) Scroll(frame int, delta float64) *Queue {
	in := q.input(frame)
	in.Scrolls = append(in.Scrolls, delta)
	return q
}

// Len is the number of the frame after the last frame with input.
func (q *Queue) Len() int {
	var n int
	for f := range q.frames {
		n = max(n, f+1)
	}
	return n
}

// Poll implements the EventSource interface.
func (q *Queue) Poll(frame int) Input {
	if in, ok := q.frames[frame]; ok {
		return *in
	}
	return Input{}
}
