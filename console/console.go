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

package console

import (
	"fmt"
	"io"
	"strings"

	"github.com/jetsetilly/lockstep/environment"
	"github.com/jetsetilly/lockstep/eval"
	"github.com/jetsetilly/lockstep/logger"
	"github.com/jetsetilly/lockstep/script"
	"github.com/jetsetilly/lockstep/task"
)

// the prefix of a delegation statement
const delegation = "yield from "

// Console reads statements from a terminal and evaluates them in a
// namespace. Each line takes one frame, whether it is a statement, a blank
// line or a line that fails to evaluate. The statements are echoed in a form that can be pasted into a
// procedure body.
//
// Console implements the task.Task interface.
type Console struct {
	env   *environment.Environment
	ns    *eval.Namespace
	term  Terminal
	prefs *Preferences

	// optional scribe. receives the same lines as the terminal
	scribe *script.Scribe

	// frames elapsed since the last statement was echoed
	counter int

	// the delegation statement waiting for the result of the task
	pending string

	// number of statements echoed
	statements int
}

// NewConsole is the preferred method of initialisation for the Console type.
// The preferences argument can be nil in which case the default preferences
// are used.
func NewConsole(env *environment.Environment, ns *eval.Namespace, term Terminal, prefs *Preferences) *Console {
	if prefs == nil {
		prefs = newPreferences()
	}
	return &Console{
		env:   env,
		ns:    ns,
		term:  term,
		prefs: prefs,
	}
}

// SetScribe attaches a scribe to the console. The scribe is flushed by End().
func (con *Console) SetScribe(scribe *script.Scribe) {
	con.scribe = scribe
}

// Statements returns the number of statements echoed.
func (con *Console) Statements() int {
	return con.statements
}

func (con *Console) prompt() string {
	return fmt.Sprintf("%s %d ", con.prefs.Prompt.Get().(string), con.counter)
}

func (con *Console) emit(s string) {
	fmt.Fprintf(con.term, "%s%s\n", script.Indent, s)
	if con.scribe != nil {
		con.scribe.WriteLine(s)
	}
}

func (con *Console) echo(s string, v eval.Value) {
	if v != nil {
		s = fmt.Sprintf("%s -- %s", s, eval.Repr(v))
	}
	con.emit(s)
	con.statements++
}

// diagnostics are not sent to the scribe
func (con *Console) report(err error) {
	for _, l := range strings.Split(err.Error(), "\n") {
		fmt.Fprintf(con.term, "-- %s\n", l)
	}
}

// bring the output in line with the number of frames that have elapsed
func (con *Console) catchUp() {
	switch {
	case con.counter == 1:
		con.emit("yield")
	case con.counter > 1:
		con.emit(fmt.Sprintf("yield from wait(%d)", con.counter))
	}
	con.counter = 0
}

// End flushes the scribe. It is called when the console task completes and
// must be called by the owner of the console if the task is abandoned before
// then. For example, when the frame loop is interrupted.
func (con *Console) End() error {
	if con.scribe == nil {
		return nil
	}
	return con.scribe.Flush()
}

func (con *Console) end() (task.Outcome, error) {
	if err := con.End(); err != nil {
		logger.Logf(con.env, "console", "scribe: %v", err)
	}
	return task.Return(nil), nil
}

// an error takes the frame of the line that caused it. input resumes on the
// next frame
func (con *Console) absorb(err error) (task.Outcome, error) {
	con.report(err)
	con.counter++
	return task.Yield(), nil
}

// Step implements the task.Task interface.
func (con *Console) Step(resume task.Value) (task.Outcome, error) {
	if con.pending != "" {
		pending := con.pending
		con.pending = ""
		if f, ok := resume.(failure); ok {
			// the frames that elapsed before the failure are caught up by
			// the next statement
			con.counter += f.frames
			return con.absorb(f.err)
		}
		con.echo(pending, resume)
	}

	s, err := con.term.ReadLine(con.prompt())
	if err != nil {
		if err != io.EOF {
			logger.Logf(con.env, "console", "%v", err)
		}
		return con.end()
	}

	s = strings.TrimSpace(s)
	if s == "" {
		con.counter++
		return task.Yield(), nil
	}

	con.catchUp()

	if expr, ok := strings.CutPrefix(s, delegation); ok {
		v, err := con.ns.Eval(expr)
		if err != nil {
			return con.absorb(err)
		}
		t, err := eval.ToTask(v)
		if err != nil {
			return con.absorb(err)
		}
		con.pending = s
		return task.Delegate(newGuard(t)), nil
	}

	var v eval.Value
	if eval.IsAssignment(s) {
		err = con.ns.Exec(s)
	} else {
		v, err = con.ns.Run(s)
	}
	if err != nil {
		return con.absorb(err)
	}

	con.echo(s, v)
	con.counter++
	return task.Yield(), nil
}

// failure is the result of a guarded task that returned an error
type failure struct {
	err error

	// frames that elapsed before the error
	frames int
}

// guard runs a task with its own driver so that an error in the task does
// not end the console
type guard struct {
	d *task.Driver
}

func newGuard(t task.Task) *guard {
	return &guard{d: task.NewDriver(t)}
}

// Step implements the task.Task interface.
func (g *guard) Step(_ task.Value) (task.Outcome, error) {
	done, err := g.d.Resume()
	if err != nil {
		return task.Return(failure{err: err, frames: g.d.Frames()}), nil
	}
	if done {
		return task.Return(g.d.Result()), nil
	}
	return task.Yield(), nil
}
