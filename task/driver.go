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

package task

import (
	"context"

	"github.com/jetsetilly/lockstep/curated"
)

// Sentinel errors for the task package.
const (
	AssertionFailed = "assertion failed: %s"
	NilDelegate     = "task: cannot delegate to nil task"
	FrameError      = "task: frame %d: %v"
)

// Assert returns an AssertionFailed error if cond is false. The error is
// fatal when returned from Step().
func Assert(cond bool, format string, args ...any) error {
	if cond {
		return nil
	}
	if len(args) > 0 {
		return curated.Errorf(AssertionFailed, curated.Errorf(format, args...))
	}
	return curated.Errorf(AssertionFailed, format)
}

// Driver steps a task and its delegated sub-tasks. The sub-tasks are held in
// an explicit stack, the root task at the bottom.
type Driver struct {
	stack []Task

	// value passed to the next call to Step()
	resume Value

	result Value
	done   bool

	// number of suspensions
	frames int
}

// NewDriver is the preferred method of initialisation for the Driver type.
func NewDriver(root Task) *Driver {
	return &Driver{
		stack: []Task{root},
	}
}

// Resume steps the active task until it yields or the root task completes.
// Returns true when the root task has completed.
//
// Any error from a task is fatal. The stack is discarded and every subsequent
// call to Resume() returns true.
func (d *Driver) Resume() (bool, error) {
	for len(d.stack) > 0 {
		top := d.stack[len(d.stack)-1]

		o, err := top.Step(d.resume)
		d.resume = nil
		if err != nil {
			d.stack = d.stack[:0]
			d.done = true
			return true, err
		}

		switch o.kind {
		case yield:
			d.frames++
			return false, nil

		case complete:
			d.stack = d.stack[:len(d.stack)-1]
			if len(d.stack) == 0 {
				d.result = o.value
				d.done = true
				return true, nil
			}
			d.resume = o.value

		case delegate:
			if o.sub == nil {
				d.stack = d.stack[:0]
				d.done = true
				return true, curated.Errorf(NilDelegate)
			}
			d.stack = append(d.stack, o.sub)
		}
	}

	return true, nil
}

// Done returns true if the root task has completed or an error has occurred.
func (d *Driver) Done() bool {
	return d.done
}

// Result is the value returned by the root task. Nil until Done() is true.
func (d *Driver) Result() Value {
	return d.result
}

// Depth is the number of tasks on the delegation stack.
func (d *Driver) Depth() int {
	return len(d.stack)
}

// Frames is the number of times a task has been suspended.
func (d *Driver) Frames() int {
	return d.frames
}

// Frames is the part of the host that completes frames.
type Frames interface {
	Advance() error
}

// Run drives the task until it completes. Frames.Advance() is called once for
// every suspension. The context is checked only between frames.
//
// If the task returns an error then no further frames are advanced and the
// error is returned.
func Run(ctx context.Context, frames Frames, root Task) (Value, error) {
	d := NewDriver(root)
	for {
		done, err := d.Resume()
		if err != nil {
			return nil, err
		}
		if done {
			return d.Result(), nil
		}

		if err := frames.Advance(); err != nil {
			return nil, curated.Errorf(FrameError, d.Frames(), err)
		}

		if err := ctx.Err(); err != nil {
			return nil, err
		}
	}
}
