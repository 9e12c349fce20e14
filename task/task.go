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

// Value is the result of a completed task and the value passed to a task
// when it is resumed after a delegated sub-task completes.
type Value any

type outcomeKind int

const (
	yield outcomeKind = iota
	complete
	delegate
)

// Outcome is the result of a single call to Task.Step(). Use the Yield(),
// Return() and Delegate() functions to create an Outcome.
type Outcome struct {
	kind  outcomeKind
	value Value
	sub   Task
}

// Yield indicates that the task is suspended. Exactly one frame will elapse
// before the task is stepped again.
func Yield() Outcome {
	return Outcome{kind: yield}
}

// Return indicates that the task has completed with the value v.
func Return(v Value) Outcome {
	return Outcome{kind: complete, value: v}
}

// Delegate indicates that the sub-task should be run to completion before the
// task is stepped again. The sub-task is stepped immediately, in the same
// frame, and the task is resumed with its result.
func Delegate(sub Task) Outcome {
	return Outcome{kind: delegate, sub: sub}
}

// IsYield returns true if the Outcome was created by Yield().
func (o Outcome) IsYield() bool {
	return o.kind == yield
}

// IsReturn returns true if the Outcome was created by Return().
func (o Outcome) IsReturn() bool {
	return o.kind == complete
}

// IsDelegate returns true if the Outcome was created by Delegate().
func (o Outcome) IsDelegate() bool {
	return o.kind == delegate
}

// Value returns the value of an Outcome created by Return().
func (o Outcome) Value() Value {
	return o.value
}

// Task is a unit of script execution that can be suspended. Step is called
// with the result of the most recently completed sub-task, or nil.
//
// A Task must not be shared between drivers and a completed Task must not be
// stepped again.
type Task interface {
	Step(resume Value) (Outcome, error)
}

// TaskFunc allows a function to be used as a Task.
type TaskFunc func(resume Value) (Outcome, error)

// Step implements the Task interface.
func (f TaskFunc) Step(resume Value) (Outcome, error) {
	return f(resume)
}
