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

package sequence

import (
	"github.com/jetsetilly/lockstep/task"
)

type wait struct {
	remaining int
}

func (w *wait) Step(_ task.Value) (task.Outcome, error) {
	if w.remaining <= 0 {
		return task.Return(nil), nil
	}
	w.remaining--
	return task.Yield(), nil
}

// Wait returns a task that suspends exactly n times. Wait(0), and any
// negative value, completes without suspending.
func Wait(n int) task.Task {
	return &wait{remaining: n}
}

// Frame returns a task that suspends once.
func Frame() task.Task {
	return Wait(1)
}

// Do returns a task that calls the function and completes without
// suspending.
func Do(f func() error) task.Task {
	return Call(func() (task.Value, error) {
		return nil, f()
	})
}

// Call returns a task that completes with the result of the function without
// suspending.
func Call(f func() (task.Value, error)) task.Task {
	return task.TaskFunc(func(_ task.Value) (task.Outcome, error) {
		v, err := f()
		if err != nil {
			return task.Outcome{}, err
		}
		return task.Return(v), nil
	})
}

type seq struct {
	tasks []task.Task
	idx   int
}

func (s *seq) Step(resume task.Value) (task.Outcome, error) {
	if s.idx >= len(s.tasks) {
		return task.Return(resume), nil
	}
	s.idx++
	return task.Delegate(s.tasks[s.idx-1]), nil
}

// Seq returns a task that runs each task in turn. The result is the result of
// the final task.
func Seq(tasks ...task.Task) task.Task {
	return &seq{tasks: tasks}
}

type repeat struct {
	n    int
	i    int
	body func(i int) task.Task
}

func (r *repeat) Step(_ task.Value) (task.Outcome, error) {
	if r.i >= r.n {
		return task.Return(nil), nil
	}
	r.i++
	return task.Delegate(r.body(r.i - 1)), nil
}

// Repeat returns a task that runs the task created by the body function n
// times. The body function is called with the iteration number, starting at
// zero.
func Repeat(n int, body func(i int) task.Task) task.Task {
	return &repeat{n: n, body: body}
}

// WaitWhile returns a task that suspends for as long as the condition is true.
// The condition is tested before every suspension. The result is the number
// of suspensions.
func WaitWhile(cond func() (bool, error)) task.Task {
	var n int
	return task.TaskFunc(func(_ task.Value) (task.Outcome, error) {
		ok, err := cond()
		if err != nil {
			return task.Outcome{}, err
		}
		if !ok {
			return task.Return(n), nil
		}
		n++
		return task.Yield(), nil
	})
}

// WaitUntil returns a task that suspends until the condition is true.
func WaitUntil(cond func() (bool, error)) task.Task {
	return WaitWhile(func() (bool, error) {
		ok, err := cond()
		return !ok, err
	})
}
