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

package script

import (
	"github.com/jetsetilly/lockstep/curated"
	"github.com/jetsetilly/lockstep/eval"
	"github.com/jetsetilly/lockstep/task"
)

// Bind the imports and the procedures of the script into the namespace.
// Procedures are bound as functions that return a task, so "yield from
// intro()" delegates to the procedure named intro.
func (scr *Script) Bind(ns *eval.Namespace, builtins *Builtins) error {
	if err := builtins.Bind(ns, scr.Imports...); err != nil {
		return curated.Errorf(ImportError, scr.Name, err)
	}

	for _, n := range scr.order {
		proc := scr.procs[n]
		ns.Bind(n, func(args []eval.Value) (eval.Value, error) {
			if len(args) > len(proc.params) {
				return nil, curated.Errorf(eval.ArgCount, proc.name, len(proc.params), len(args))
			}
			return scr.newCall(ns, proc, args), nil
		})
	}

	return nil
}

// Start binds the script into the namespace and returns the task for the
// named procedure.
func (scr *Script) Start(ns *eval.Namespace, builtins *Builtins, entry string) (task.Task, error) {
	proc, ok := scr.procs[entry]
	if !ok {
		return nil, curated.Errorf(NoProcedure, scr.Name, entry)
	}
	if err := scr.Bind(ns, builtins); err != nil {
		return nil, err
	}
	return scr.newCall(ns, proc, nil), nil
}

// call is a single invocation of a procedure
type call struct {
	scr  *Script
	ns   *eval.Namespace
	proc *procedure
	args []eval.Value

	started bool
	pc      int

	// remaining iterations of the open repeat blocks
	counts []int

	// name to bind the result of the most recent delegation to
	bind string
}

func (scr *Script) newCall(ns *eval.Namespace, proc *procedure, args []eval.Value) *call {
	return &call{
		scr:  scr,
		ns:   ns,
		proc: proc,
		args: args,
	}
}

func (c *call) errorf(ins *instruction, err error) error {
	return curated.Errorf(LineError, c.scr.Name, ins.line, err)
}

// Step implements the task.Task interface.
func (c *call) Step(resume task.Value) (task.Outcome, error) {
	if !c.started {
		c.started = true

		// parameters are global bindings
		for i, p := range c.proc.params {
			c.ns.SetValue(p, eval.Arg(c.args, i))
		}
	}

	if c.bind != "" {
		c.ns.SetValue(c.bind, resume)
		c.bind = ""
	}

	for c.pc < len(c.proc.code) {
		ins := &c.proc.code[c.pc]
		c.pc++

		switch ins.op {
		case opExec:
			if _, err := c.ns.Run(ins.text); err != nil {
				return task.Outcome{}, c.errorf(ins, err)
			}

		case opYield:
			return task.Yield(), nil

		case opDelegate:
			v, err := c.ns.Eval(ins.text)
			if err != nil {
				return task.Outcome{}, c.errorf(ins, err)
			}
			t, err := eval.ToTask(v)
			if err != nil {
				return task.Outcome{}, c.errorf(ins, err)
			}
			c.bind = ins.bind
			return task.Delegate(t), nil

		case opAssert:
			v, err := c.ns.Eval(ins.text)
			if err != nil {
				return task.Outcome{}, c.errorf(ins, err)
			}
			if err := task.Assert(eval.Truthy(v), ins.text); err != nil {
				return task.Outcome{}, c.errorf(ins, err)
			}

		case opBranch:
			v, err := c.ns.Eval(ins.text)
			if err != nil {
				return task.Outcome{}, c.errorf(ins, err)
			}
			if !eval.Truthy(v) {
				c.pc = ins.jump
			}

		case opJump:
			c.pc = ins.jump

		case opRepeat:
			v, err := c.ns.Eval(ins.text)
			if err != nil {
				return task.Outcome{}, c.errorf(ins, err)
			}
			n, err := eval.ToInt("repeat", []eval.Value{v}, 0)
			if err != nil {
				return task.Outcome{}, c.errorf(ins, err)
			}
			if n <= 0 {
				c.pc = ins.jump
			} else {
				c.counts = append(c.counts, n)
			}

		case opRepeatEnd:
			top := len(c.counts) - 1
			c.counts[top]--
			if c.counts[top] > 0 {
				c.pc = ins.jump
			} else {
				c.counts = c.counts[:top]
			}

		case opReturn:
			c.pc = len(c.proc.code)
			if ins.text == "" {
				return task.Return(nil), nil
			}
			v, err := c.ns.Eval(ins.text)
			if err != nil {
				return task.Outcome{}, c.errorf(ins, err)
			}
			return task.Return(v), nil
		}
	}

	return task.Return(nil), nil
}
