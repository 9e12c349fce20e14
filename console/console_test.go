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

package console_test

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/jetsetilly/lockstep/console"
	"github.com/jetsetilly/lockstep/environment"
	"github.com/jetsetilly/lockstep/eval"
	"github.com/jetsetilly/lockstep/host"
	"github.com/jetsetilly/lockstep/host/sim"
	"github.com/jetsetilly/lockstep/logger"
	"github.com/jetsetilly/lockstep/script"
	"github.com/jetsetilly/lockstep/task"
	"github.com/jetsetilly/lockstep/test"
)

type session struct {
	env *environment.Environment
	sim *sim.Sim
	ns  *eval.Namespace
	out *test.Writer
	con *console.Console
}

func newSession(t *testing.T, input ...string) *session {
	t.Helper()

	s := &session{
		sim: sim.NewSim(logger.Allow, nil, nil, nil),
		out: &test.Writer{},
	}
	s.env = environment.NewEnvironment(environment.MainSession, s.sim)
	s.env.Quiet = true

	s.ns = eval.NewNamespace(s.out)
	test.DemandSuccess(t, script.NewBuiltins(s.sim).Bind(s.ns, "*"))

	src := strings.Join(input, "\n") + "\n"
	term := console.NewPlainTerminal(strings.NewReader(src), s.out)
	s.con = console.NewConsole(s.env, s.ns, term, nil)

	return s
}

func (s *session) run(t *testing.T) {
	t.Helper()
	v, err := task.Run(context.Background(), s.env, s.con)
	test.DemandSuccess(t, err)
	test.ExpectEquality(t, v, nil)
}

func TestFrameCounting(t *testing.T) {
	s := newSession(t, "", "", "x = 1", "x")
	s.run(t)

	test.ExpectSuccess(t, s.out.Compare(`    yield from wait(2)
    x = 1
    yield
    x -- 1
`))
	test.ExpectEquality(t, s.env.Frame(), 4)
	test.ExpectEquality(t, s.con.Statements(), 2)
}

func TestErrorsAreAbsorbed(t *testing.T) {
	s := newSession(t, "", "nosuch()", "y = 2", "y + 1")
	s.run(t)

	lines := s.out.Lines()
	test.DemandEquality(t, len(lines), 6)
	test.ExpectEquality(t, lines[0], "    yield")
	test.ExpectSuccess(t, strings.HasPrefix(lines[1], "-- eval: "))

	// the line that failed took a frame
	test.ExpectEquality(t, lines[2], "    yield")
	test.ExpectEquality(t, lines[3], "    y = 2")
	test.ExpectEquality(t, lines[4], "    yield")
	test.ExpectEquality(t, lines[5], "    y + 1 -- 3")

	test.ExpectEquality(t, s.env.Frame(), 4)
}

func TestOneFramePerLine(t *testing.T) {
	s := newSession(t, "nosuch()", "nosuch()", "x = 1")
	s.run(t)

	test.ExpectEquality(t, s.env.Frame(), 3)
	lines := s.out.Lines()
	test.DemandEquality(t, len(lines), 5)
	test.ExpectSuccess(t, strings.HasPrefix(lines[0], "-- eval: "))
	test.ExpectEquality(t, lines[1], "    yield")
	test.ExpectSuccess(t, strings.HasPrefix(lines[2], "-- eval: "))
	test.ExpectEquality(t, lines[3], "    yield")
	test.ExpectEquality(t, lines[4], "    x = 1")
}

func TestExpressionWithoutResult(t *testing.T) {
	s := newSession(t, "set_key(VK_W, true)", "print('hello')")
	s.run(t)

	test.ExpectSuccess(t, s.out.Compare(`    set_key(VK_W, true)
    yield
hello
    print('hello')
`))
	test.ExpectSuccess(t, s.sim.IsKeyDown(host.VK_W))
}

func TestDelegation(t *testing.T) {
	s := newSession(t, "yield from wait(3)", "yield from answer()", "frame = 1")
	s.ns.Bind("answer", func(args []eval.Value) (eval.Value, error) {
		return task.TaskFunc(func(task.Value) (task.Outcome, error) {
			return task.Return(42), nil
		}), nil
	})
	s.run(t)

	// no frame elapses between the completion of a task and the next
	// statement
	test.ExpectSuccess(t, s.out.Compare(`    yield from wait(3)
    yield from answer() -- 42
    frame = 1
`))
	test.ExpectEquality(t, s.env.Frame(), 4)
}

func TestDelegationFailure(t *testing.T) {
	s := newSession(t, "yield from broken()", "yield from 10", "z = 3")
	s.ns.Bind("broken", func(args []eval.Value) (eval.Value, error) {
		n := 0
		return task.TaskFunc(func(task.Value) (task.Outcome, error) {
			n++
			if err := task.Assert(n < 3, "broken after %d frames", n); err != nil {
				return task.Outcome{}, err
			}
			return task.Yield(), nil
		}), nil
	})
	s.run(t)

	lines := s.out.Lines()
	test.DemandEquality(t, len(lines), 5)
	test.ExpectSuccess(t, strings.HasPrefix(lines[0], "-- assertion failed"))

	// two frames from the broken task and one for the failure
	test.ExpectEquality(t, lines[1], "    yield from wait(3)")
	test.ExpectSuccess(t, strings.HasPrefix(lines[2], "-- eval: not a task"))
	test.ExpectEquality(t, lines[3], "    yield")
	test.ExpectEquality(t, lines[4], "    z = 3")

	test.ExpectEquality(t, s.env.Frame(), 5)
}

func TestDelegationFailureTranscript(t *testing.T) {
	s := newSession(t, "yield from hold()", "z = 3")
	s.ns.Bind("hold", func(args []eval.Value) (eval.Value, error) {
		n := 0
		return task.TaskFunc(func(task.Value) (task.Outcome, error) {
			n++
			if n == 1 {
				s.sim.SetKey(host.VK_W, true)
			}
			if err := task.Assert(n < 3, "released after %d frames", n); err != nil {
				return task.Outcome{}, err
			}
			return task.Yield(), nil
		}), nil
	})

	var b bytes.Buffer
	scr := script.NewScribe(&b)
	scr.WriteHeader("*")
	scr.WriteProcedure(script.Entry)
	s.con.SetScribe(scr)
	s.run(t)

	// the failed delegation is not in the transcript but the frames it took
	// are
	test.ExpectEquality(t, b.String(), "lockstepscript\nv1\nimport *\n\nmain:\n    yield from wait(3)\n    z = 3\n")
	test.ExpectEquality(t, s.env.Frame(), 4)
}

func TestScribe(t *testing.T) {
	s := newSession(t, "", "a = 1", "", "", "nosuch()", "a")

	var b bytes.Buffer
	scr := script.NewScribe(&b)
	scr.WriteHeader("*")
	scr.WriteProcedure(script.Entry)
	s.con.SetScribe(scr)
	s.run(t)

	// the scribe makes a script that can be run
	sc, err := script.Parse("session", b.String())
	test.DemandSuccess(t, err)

	replay := sim.NewSim(logger.Allow, nil, nil, nil)
	env := environment.NewEnvironment(environment.MainSession, replay)
	env.Quiet = true
	tsk, err := sc.Start(eval.NewNamespace(nil), script.NewBuiltins(replay), script.Entry)
	test.DemandSuccess(t, err)
	_, err = task.Run(context.Background(), env, tsk)
	test.DemandSuccess(t, err)

	// the replay ends with the last statement and so the frame the last
	// statement takes is not replayed
	test.ExpectEquality(t, env.Frame(), s.env.Frame()-1)
	test.ExpectFailure(t, strings.Contains(b.String(), "nosuch"))
}

func TestTranscriptAfterInterrupt(t *testing.T) {
	s := newSession(t, "x = 1", "y = 2")

	var b bytes.Buffer
	scr := script.NewScribe(&b)
	scr.WriteHeader("*")
	scr.WriteProcedure(script.Entry)
	s.con.SetScribe(scr)

	// the frame loop stops after the first frame
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := task.Run(ctx, s.env, s.con)
	test.ExpectSuccess(t, errors.Is(err, context.Canceled))
	test.ExpectEquality(t, s.con.Statements(), 1)
	test.ExpectEquality(t, b.Len(), 0)

	test.ExpectSuccess(t, s.con.End())
	test.ExpectEquality(t, b.String(), "lockstepscript\nv1\nimport *\n\nmain:\n    x = 1\n")
}

func TestInteractiveBuiltin(t *testing.T) {
	s := newSession(t, "", "x = position()")

	b := script.NewBuiltins(s.sim)
	b.SetInteractive(func() (task.Task, error) {
		return s.con, nil
	})

	sc, err := script.Parse("route", `lockstepscript
v1
import *

main:
    yield
    yield from interactive()
    return 7
`)
	test.DemandSuccess(t, err)

	tsk, err := sc.Start(s.ns, b, script.Entry)
	test.DemandSuccess(t, err)
	v, err := task.Run(context.Background(), s.env, tsk)
	test.DemandSuccess(t, err)
	test.ExpectEquality(t, v, eval.Value(7.0))
	test.ExpectEquality(t, s.env.Frame(), 3)
	test.ExpectSuccess(t, s.out.Compare("    yield\n    x = position()\n"))
}

func TestNoInteractive(t *testing.T) {
	s := newSession(t, "yield from interactive()")
	s.run(t)

	lines := s.out.Lines()
	test.DemandEquality(t, len(lines), 1)
	test.ExpectSuccess(t, strings.Contains(lines[0], "no console available"))
}
