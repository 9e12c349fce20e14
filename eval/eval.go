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

package eval

import (
	"fmt"
	"io"
	"strings"

	"github.com/Shopify/go-lua"
	"github.com/jetsetilly/lockstep/curated"
	"github.com/jetsetilly/lockstep/task"
)

// Sentinel errors for the eval package.
const (
	EvalError = "eval: %s"
	NotATask  = "eval: not a task (%s)"
)

// Value is a value in the namespace converted to a Go type. See the package
// documentation for the list of types.
type Value = task.Value

// Func is a Go function that can be bound in the namespace.
type Func func(args []Value) (Value, error)

// the chunk name gives error messages a prefix of "console:1:"
const chunkName = "=console"

// the standard functions that are removed from the base library
var removed = []string{
	"dofile", "loadfile", "load", "loadstring", "require", "collectgarbage",
}

// Namespace is an evaluation context. Bindings made by one call to Exec(),
// Eval() or Run() are visible to subsequent calls.
type Namespace struct {
	l *lua.State

	// output for the print() function
	output io.Writer

	// the most recent error returned by a bound Go function. used to keep
	// the error chain intact when the error passes through the namespace
	goErr error
}

// NewNamespace is the preferred method of initialisation for the Namespace
// type. The output of print() is sent to the io.Writer, which can be nil.
func NewNamespace(output io.Writer) *Namespace {
	ns := &Namespace{
		l:      lua.NewState(),
		output: output,
	}

	for _, lib := range []struct {
		name string
		open lua.Function
	}{
		{name: "_G", open: lua.BaseOpen},
		{name: "string", open: lua.StringOpen},
		{name: "math", open: lua.MathOpen},
		{name: "table", open: lua.TableOpen},
		{name: "bit32", open: lua.Bit32Open},
	} {
		lua.Require(ns.l, lib.name, lib.open, true)
		ns.l.Pop(1)
	}

	for _, n := range removed {
		ns.l.PushNil()
		ns.l.SetGlobal(n)
	}

	ns.l.Register("print", ns.print)

	registerTaskType(ns.l)

	return ns
}

// SetOutput changes the destination of the print() function.
func (ns *Namespace) SetOutput(output io.Writer) {
	ns.output = output
}

func (ns *Namespace) print(l *lua.State) int {
	n := l.Top()
	s := make([]string, 0, n)
	for i := 1; i <= n; i++ {
		v := toGo(l, i, 0)
		if str, ok := v.(string); ok {
			s = append(s, str)
		} else {
			s = append(s, Repr(v))
		}
	}
	if ns.output != nil {
		io.WriteString(ns.output, strings.Join(s, "\t"))
		io.WriteString(ns.output, "\n")
	}
	return 0
}

// Bind the Go function to the name. Errors returned by the function are
// raised as errors in the namespace.
func (ns *Namespace) Bind(name string, f Func) {
	ns.l.Register(name, func(l *lua.State) int {
		n := l.Top()
		args := make([]Value, n)
		for i := 1; i <= n; i++ {
			args[i-1] = toGo(l, i, 0)
		}

		v, err := f(args)
		if err != nil {
			ns.goErr = err
			lua.Errorf(l, "%s", err.Error())
			return 0
		}
		if v == nil {
			return 0
		}
		push(l, v)
		return 1
	})
}

// SetValue binds the value to the name.
func (ns *Namespace) SetValue(name string, v Value) {
	push(ns.l, v)
	ns.l.SetGlobal(name)
}

// Value returns the value bound to the name. Returns nil if there is no such
// binding.
func (ns *Namespace) Value(name string) Value {
	ns.l.Global(name)
	defer ns.l.Pop(1)
	return toGo(ns.l, -1, 0)
}

// Exec executes the source as a statement.
func (ns *Namespace) Exec(src string) error {
	ns.goErr = nil

	base := ns.l.Top()
	defer ns.l.SetTop(base)

	if err := lua.LoadBuffer(ns.l, src, chunkName, ""); err != nil {
		return ns.errorf(base, err)
	}
	if err := ns.l.ProtectedCall(0, 0, 0); err != nil {
		return ns.errorf(base, err)
	}
	return nil
}

// Eval evaluates the source as an expression and returns the value.
func (ns *Namespace) Eval(src string) (Value, error) {
	ns.goErr = nil

	base := ns.l.Top()
	defer ns.l.SetTop(base)

	if err := lua.LoadBuffer(ns.l, "return "+src, chunkName, ""); err != nil {
		return nil, ns.errorf(base, err)
	}
	if err := ns.l.ProtectedCall(0, 1, 0); err != nil {
		return nil, ns.errorf(base, err)
	}
	return toGo(ns.l, -1, 0), nil
}

// Run executes an assignment with Exec() and evaluates anything else as an
// expression with Eval(). If the source is not a valid expression then it is
// executed as a statement. The result of an assignment or a statement is
// always nil.
func (ns *Namespace) Run(src string) (Value, error) {
	ns.goErr = nil

	if IsAssignment(src) {
		return nil, ns.Exec(src)
	}

	base := ns.l.Top()
	if err := lua.LoadBuffer(ns.l, "return "+src, chunkName, ""); err != nil {
		ns.l.SetTop(base)
		return nil, ns.Exec(src)
	}
	defer ns.l.SetTop(base)
	if err := ns.l.ProtectedCall(0, 1, 0); err != nil {
		return nil, ns.errorf(base, err)
	}
	return toGo(ns.l, -1, 0), nil
}

// errorf returns the error message left on the stack by a failed load or
// call, or the error itself if there is no message.
func (ns *Namespace) errorf(base int, err error) error {
	goErr := ns.goErr
	ns.goErr = nil

	if ns.l.Top() > base {
		if msg, ok := ns.l.ToString(-1); ok {
			if goErr != nil && strings.Contains(msg, goErr.Error()) {
				return curated.Errorf(EvalError, goErr)
			}
			return curated.Errorf(EvalError, msg)
		}
	}
	return curated.Errorf(EvalError, err)
}

// Truthy returns the truth of the value. Only nil and false are false.
func Truthy(v Value) bool {
	switch v := v.(type) {
	case nil:
		return false
	case bool:
		return v
	}
	return true
}

// ToTask returns the task in the value. It is an error if the value is not a
// task.
func ToTask(v Value) (task.Task, error) {
	if t, ok := v.(task.Task); ok {
		return t, nil
	}
	return nil, curated.Errorf(NotATask, Repr(v))
}

// String returns a summary of the namespace.
func (ns *Namespace) String() string {
	return fmt.Sprintf("lua namespace (stack %d)", ns.l.Top())
}
