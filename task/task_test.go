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

package task_test

import (
	"context"
	"errors"
	"testing"

	"github.com/jetsetilly/lockstep/curated"
	"github.com/jetsetilly/lockstep/task"
	"github.com/jetsetilly/lockstep/test"
)

// frames counts calls to Advance()
type frames struct {
	n int
}

func (f *frames) Advance() error {
	f.n++
	return nil
}

// yields n times and then returns v
func yielding(n int, v task.Value) task.Task {
	return task.TaskFunc(func(_ task.Value) (task.Outcome, error) {
		if n == 0 {
			return task.Return(v), nil
		}
		n--
		return task.Yield(), nil
	})
}

func TestYieldAndReturn(t *testing.T) {
	var f frames
	v, err := task.Run(context.Background(), &f, yielding(3, "done"))
	test.ExpectSuccess(t, err)
	test.ExpectEquality(t, v, task.Value("done"))
	test.ExpectEquality(t, f.n, 3)
}

func TestDelegation(t *testing.T) {
	var f frames

	// the parent delegates twice and adds the results
	var step int
	var sum int
	parent := task.TaskFunc(func(resume task.Value) (task.Outcome, error) {
		step++
		switch step {
		case 1:
			return task.Delegate(yielding(2, 10)), nil
		case 2:
			sum += resume.(int)
			return task.Delegate(yielding(0, 5)), nil
		case 3:
			sum += resume.(int)
			return task.Yield(), nil
		}
		return task.Return(sum), nil
	})

	v, err := task.Run(context.Background(), &f, parent)
	test.ExpectSuccess(t, err)
	test.ExpectEquality(t, v, task.Value(15))

	// two frames in the first sub-task, none in the second and one in the parent
	test.ExpectEquality(t, f.n, 3)
}

func TestDriverDepth(t *testing.T) {
	inner := yielding(1, nil)
	outer := task.TaskFunc(func(resume task.Value) (task.Outcome, error) {
		if inner != nil {
			sub := inner
			inner = nil
			return task.Delegate(sub), nil
		}
		return task.Return(nil), nil
	})

	d := task.NewDriver(outer)
	done, err := d.Resume()
	test.ExpectSuccess(t, err)
	test.ExpectFailure(t, done)
	test.ExpectEquality(t, d.Depth(), 2)
	test.ExpectEquality(t, d.Frames(), 1)

	done, err = d.Resume()
	test.ExpectSuccess(t, err)
	test.ExpectSuccess(t, done)
	test.ExpectSuccess(t, d.Done())
	test.ExpectEquality(t, d.Depth(), 0)
}

func TestFatalError(t *testing.T) {
	var f frames

	var step int
	tsk := task.TaskFunc(func(_ task.Value) (task.Outcome, error) {
		step++
		if step == 3 {
			return task.Outcome{}, task.Assert(false, "step %d", step)
		}
		return task.Yield(), nil
	})

	_, err := task.Run(context.Background(), &f, tsk)
	test.ExpectFailure(t, err)
	test.ExpectSuccess(t, curated.Is(err, task.AssertionFailed))
	test.ExpectEquality(t, err.Error(), "assertion failed: step 3")

	// no frames after the failure
	test.ExpectEquality(t, f.n, 2)
	test.ExpectEquality(t, step, 3)
}

func TestErrorDiscardsStack(t *testing.T) {
	failing := task.TaskFunc(func(_ task.Value) (task.Outcome, error) {
		return task.Outcome{}, errors.New("failed")
	})
	var parentResumed bool
	parent := task.TaskFunc(func(resume task.Value) (task.Outcome, error) {
		if failing != nil {
			f := failing
			failing = nil
			return task.Delegate(f), nil
		}
		parentResumed = true
		return task.Return(nil), nil
	})

	d := task.NewDriver(parent)
	done, err := d.Resume()
	test.ExpectFailure(t, err)
	test.ExpectSuccess(t, done)
	test.ExpectEquality(t, d.Depth(), 0)

	done, err = d.Resume()
	test.ExpectSuccess(t, err)
	test.ExpectSuccess(t, done)
	test.ExpectFailure(t, parentResumed)
}

func TestNilDelegate(t *testing.T) {
	tsk := task.TaskFunc(func(_ task.Value) (task.Outcome, error) {
		return task.Delegate(nil), nil
	})
	_, err := task.Run(context.Background(), &frames{}, tsk)
	test.ExpectSuccess(t, curated.Is(err, task.NilDelegate))
}

func TestCancel(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())

	var f frames
	forever := task.TaskFunc(func(_ task.Value) (task.Outcome, error) {
		if f.n == 5 {
			cancel()
		}
		return task.Yield(), nil
	})

	_, err := task.Run(ctx, &f, forever)
	test.ExpectSuccess(t, errors.Is(err, context.Canceled))
	test.ExpectEquality(t, f.n, 6)
}

func TestAssert(t *testing.T) {
	test.ExpectSuccess(t, task.Assert(true, "never"))
	err := task.Assert(false, "is_in_movie()")
	test.ExpectEquality(t, err.Error(), "assertion failed: is_in_movie()")
}
