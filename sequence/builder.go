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

// Builder is used to create a script in Go. Each method adds a step and
// returns the Builder so that calls can be chained:
//
//	b := sequence.NewBuilder()
//	b.Do(press).Yield().Do(release).Wait(40)
//	root := b.Build()
//
// Build() creates a new task every time it is called so the same Builder can
// be used to create more than one run of the script.
type Builder struct {
	steps []func() task.Task
}

// NewBuilder is the preferred method of initialisation for the Builder type.
func NewBuilder() *Builder {
	return &Builder{}
}

// Do adds a function that is called without suspending.
func (b *Builder) Do(f func() error) *Builder {
	b.steps = append(b.steps, func() task.Task { return Do(f) })
	return b
}

// Yield adds a single suspension.
func (b *Builder) Yield() *Builder {
	return b.Wait(1)
}

// Wait adds n suspensions.
func (b *Builder) Wait(n int) *Builder {
	b.steps = append(b.steps, func() task.Task { return Wait(n) })
	return b
}

// Assert adds a condition that stops the script with an assertion error if
// it is false.
func (b *Builder) Assert(cond func() (bool, error), description string) *Builder {
	return b.Do(func() error {
		ok, err := cond()
		if err != nil {
			return err
		}
		return task.Assert(ok, description)
	})
}

// WaitWhile adds a suspension that lasts as long as the condition is true.
func (b *Builder) WaitWhile(cond func() (bool, error)) *Builder {
	b.steps = append(b.steps, func() task.Task { return WaitWhile(cond) })
	return b
}

// Call adds a delegation to the task created by the function.
func (b *Builder) Call(f func() task.Task) *Builder {
	b.steps = append(b.steps, f)
	return b
}

// Task adds another Builder's script as a delegated sub-task.
func (b *Builder) Task(sub *Builder) *Builder {
	return b.Call(sub.Build)
}

// Build returns a new task that runs the steps in order.
func (b *Builder) Build() task.Task {
	steps := make([]task.Task, len(b.steps))
	for i, s := range b.steps {
		steps[i] = s()
	}
	return Seq(steps...)
}
