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

package sequence_test

import (
	"context"
	"errors"
	"testing"

	"github.com/jetsetilly/lockstep/curated"
	"github.com/jetsetilly/lockstep/sequence"
	"github.com/jetsetilly/lockstep/task"
	"github.com/jetsetilly/lockstep/test"
)

type frames struct {
	n int
}

func (f *frames) Advance() error {
	f.n++
	return nil
}

func TestWait(t *testing.T) {
	for _, n := range []int{0, 1, 2, 17, 1000} {
		var f frames
		d := task.NewDriver(sequence.Wait(n))

		var suspensions int
		for {
			done, err := d.Resume()
			test.DemandSuccess(t, err)
			if done {
				break
			}
			suspensions++
			f.Advance()
		}
		test.ExpectEquality(t, suspensions, n, n)
		test.ExpectEquality(t, f.n, n, n)
	}
}

func TestWaitNegative(t *testing.T) {
	var f frames
	_, err := task.Run(context.Background(), &f, sequence.Wait(-1))
	test.ExpectSuccess(t, err)
	test.ExpectEquality(t, f.n, 0)
}

func TestSeq(t *testing.T) {
	var f frames
	var log []int

	s := sequence.Seq(
		sequence.Do(func() error { log = append(log, f.n); return nil }),
		sequence.Wait(3),
		sequence.Do(func() error { log = append(log, f.n); return nil }),
		sequence.Frame(),
		sequence.Call(func() (task.Value, error) { return "result", nil }),
	)

	v, err := task.Run(context.Background(), &f, s)
	test.ExpectSuccess(t, err)
	test.ExpectEquality(t, v, task.Value("result"))
	test.ExpectEquality(t, f.n, 4)
	test.ExpectEquality(t, len(log), 2)
	test.ExpectEquality(t, log[0], 0)
	test.ExpectEquality(t, log[1], 3)
}

func TestRepeat(t *testing.T) {
	var f frames
	var iterations []int

	r := sequence.Repeat(3, func(i int) task.Task {
		iterations = append(iterations, i)
		return sequence.Wait(2)
	})

	_, err := task.Run(context.Background(), &f, r)
	test.ExpectSuccess(t, err)
	test.ExpectEquality(t, f.n, 6)
	test.ExpectEquality(t, len(iterations), 3)
	test.ExpectEquality(t, iterations[2], 2)
}

func TestWaitWhile(t *testing.T) {
	var f frames
	w := sequence.WaitWhile(func() (bool, error) {
		return f.n < 10, nil
	})
	v, err := task.Run(context.Background(), &f, w)
	test.ExpectSuccess(t, err)
	test.ExpectEquality(t, v, task.Value(10))
	test.ExpectEquality(t, f.n, 10)

	u := sequence.WaitUntil(func() (bool, error) {
		return f.n >= 15, nil
	})
	v, err = task.Run(context.Background(), &f, u)
	test.ExpectSuccess(t, err)
	test.ExpectEquality(t, v, task.Value(5))

	e := sequence.WaitWhile(func() (bool, error) {
		return false, errors.New("no state")
	})
	_, err = task.Run(context.Background(), &f, e)
	test.ExpectFailure(t, err)
}

func TestBuilder(t *testing.T) {
	var f frames
	var presses int

	inner := sequence.NewBuilder()
	inner.Do(func() error { presses++; return nil }).Yield()

	b := sequence.NewBuilder()
	b.Wait(8).Task(inner).Wait(40).Task(inner)
	b.Assert(func() (bool, error) { return presses == 2, nil }, "two presses")

	_, err := task.Run(context.Background(), &f, b.Build())
	test.ExpectSuccess(t, err)
	test.ExpectEquality(t, f.n, 50)
	test.ExpectEquality(t, presses, 2)

	// a builder can be used more than once
	_, err = task.Run(context.Background(), &f, b.Build())
	test.ExpectFailure(t, err)
	test.ExpectSuccess(t, curated.Is(err, task.AssertionFailed))
	test.ExpectEquality(t, f.n, 100)
}
