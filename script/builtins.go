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
	"math"
	"sort"

	"github.com/jetsetilly/lockstep/curated"
	"github.com/jetsetilly/lockstep/eval"
	"github.com/jetsetilly/lockstep/host"
	"github.com/jetsetilly/lockstep/sequence"
	"github.com/jetsetilly/lockstep/task"
	"github.com/jetsetilly/lockstep/turn"
)

// NoInteractive is returned by the interactive() builtin if there is no
// console available.
const NoInteractive = "interactive: no console available"

type builtin struct {
	fn    eval.Func
	value eval.Value
}

// Builtins is the list of functions and constants that a script can import.
// Most of the builtins call the host directly.
type Builtins struct {
	host  host.Host
	table map[string]builtin

	// creates the console task for the interactive() builtin
	interactive func() (task.Task, error)
}

// NewBuiltins is the preferred method of initialisation for the Builtins
// type.
func NewBuiltins(h host.Host) *Builtins {
	b := &Builtins{
		host:  h,
		table: make(map[string]builtin),
	}

	b.value("FREQUENCY", h.Frequency())
	for n, k := range host.KeyNames {
		b.value("VK_"+n, int(k))
	}

	b.fn("set_frame_time", b.setFrameTime)
	b.fn("get_frame_time", b.getFrameTime)
	b.fn("set_frame_wait", b.setFrameWait)
	b.fn("set_key", b.setKey)
	b.fn("move_mouse", b.moveMouse)
	b.fn("scroll_wheel", b.scrollWheel)
	b.fn("query_performance_counter", b.queryPerformanceCounter)
	b.fn("is_in_movie", b.isInMovie)
	b.fn("save_state", b.saveState)
	b.fn("position", b.position)
	b.fn("velocity", b.velocity)
	b.fn("rotation", b.rotation)
	b.fn("save_cloud", b.saveCloud)
	b.fn("clip_cursor", b.clipCursor)
	b.fn("wait", wait)
	b.fn("compute_turn", computeTurn)
	b.fn("norm", norm)
	b.fn("sqr_norm", sqrNorm)
	b.fn("idiv", idiv)
	b.fn("interactive", b.startInteractive)

	return b
}

func (b *Builtins) fn(name string, f eval.Func) {
	b.table[name] = builtin{fn: f}
}

func (b *Builtins) value(name string, v eval.Value) {
	b.table[name] = builtin{value: v}
}

// SetInteractive sets the function that creates the task for the
// interactive() builtin.
func (b *Builtins) SetInteractive(f func() (task.Task, error)) {
	b.interactive = f
}

// Names returns the names of all builtins in alphabetical order.
func (b *Builtins) Names() []string {
	n := make([]string, 0, len(b.table))
	for k := range b.table {
		n = append(n, k)
	}
	sort.Strings(n)
	return n
}

// Bind the named builtins into the namespace. A name of "*" binds all
// builtins.
func (b *Builtins) Bind(ns *eval.Namespace, names ...string) error {
	for _, n := range names {
		if n == "*" {
			return b.Bind(ns, b.Names()...)
		}
	}

	for _, n := range names {
		e, ok := b.table[n]
		if !ok {
			return curated.Errorf(UnknownBuiltin, n)
		}
		if e.fn != nil {
			ns.Bind(n, e.fn)
		} else {
			ns.SetValue(n, e.value)
		}
	}

	return nil
}

func (b *Builtins) setFrameTime(args []eval.Value) (eval.Value, error) {
	if err := eval.CheckArgs("set_frame_time", args, 1, 1); err != nil {
		return nil, err
	}
	t, err := eval.ToInt("set_frame_time", args, 0)
	if err != nil {
		return nil, err
	}
	return nil, b.host.SetFrameTime(int64(t))
}

func (b *Builtins) getFrameTime(args []eval.Value) (eval.Value, error) {
	if err := eval.CheckArgs("get_frame_time", args, 0, 0); err != nil {
		return nil, err
	}
	return b.host.FrameTime(), nil
}

func (b *Builtins) setFrameWait(args []eval.Value) (eval.Value, error) {
	if err := eval.CheckArgs("set_frame_wait", args, 1, 1); err != nil {
		return nil, err
	}
	w, err := eval.ToBool("set_frame_wait", args, 0)
	if err != nil {
		return nil, err
	}
	b.host.SetFrameWait(w)
	return nil, nil
}

func (b *Builtins) setKey(args []eval.Value) (eval.Value, error) {
	if err := eval.CheckArgs("set_key", args, 2, 2); err != nil {
		return nil, err
	}
	k, err := eval.ToInt("set_key", args, 0)
	if err != nil {
		return nil, err
	}
	d, err := eval.ToBool("set_key", args, 1)
	if err != nil {
		return nil, err
	}
	b.host.SetKey(host.Key(k), d)
	return nil, nil
}

func (b *Builtins) moveMouse(args []eval.Value) (eval.Value, error) {
	if err := eval.CheckArgs("move_mouse", args, 2, 2); err != nil {
		return nil, err
	}
	dx, err := eval.ToInt("move_mouse", args, 0)
	if err != nil {
		return nil, err
	}
	dy, err := eval.ToInt("move_mouse", args, 1)
	if err != nil {
		return nil, err
	}
	b.host.MoveMouse(dx, dy)
	return nil, nil
}

func (b *Builtins) scrollWheel(args []eval.Value) (eval.Value, error) {
	if err := eval.CheckArgs("scroll_wheel", args, 1, 1); err != nil {
		return nil, err
	}
	v, err := eval.ToFloat("scroll_wheel", args, 0)
	if err != nil {
		return nil, err
	}
	b.host.ScrollWheel(v)
	return nil, nil
}

func (b *Builtins) queryPerformanceCounter(args []eval.Value) (eval.Value, error) {
	if err := eval.CheckArgs("query_performance_counter", args, 0, 0); err != nil {
		return nil, err
	}
	return b.host.QueryPerformanceCounter(), nil
}

func (b *Builtins) isInMovie(args []eval.Value) (eval.Value, error) {
	if err := eval.CheckArgs("is_in_movie", args, 0, 0); err != nil {
		return nil, err
	}
	return b.host.IsInMovie()
}

func stateTable(s host.TurnState) map[string]eval.Value {
	return map[string]eval.Value{
		"position": s.Position[:],
		"velocity": s.Velocity[:],
		"rotation": s.Rotation[:],
	}
}

func (b *Builtins) saveState(args []eval.Value) (eval.Value, error) {
	if err := eval.CheckArgs("save_state", args, 0, 0); err != nil {
		return nil, err
	}
	s, err := b.host.Snapshot()
	if err != nil {
		return nil, err
	}
	return stateTable(s), nil
}

func (b *Builtins) position(args []eval.Value) (eval.Value, error) {
	if err := eval.CheckArgs("position", args, 0, 0); err != nil {
		return nil, err
	}
	s, err := b.host.Snapshot()
	if err != nil {
		return nil, err
	}
	return s.Position[:], nil
}

func (b *Builtins) velocity(args []eval.Value) (eval.Value, error) {
	if err := eval.CheckArgs("velocity", args, 0, 0); err != nil {
		return nil, err
	}
	s, err := b.host.Snapshot()
	if err != nil {
		return nil, err
	}
	return s.Velocity[:], nil
}

func (b *Builtins) rotation(args []eval.Value) (eval.Value, error) {
	if err := eval.CheckArgs("rotation", args, 0, 0); err != nil {
		return nil, err
	}
	s, err := b.host.Snapshot()
	if err != nil {
		return nil, err
	}
	return s.Rotation[:], nil
}

func (b *Builtins) saveCloud(args []eval.Value) (eval.Value, error) {
	if err := eval.CheckArgs("save_cloud", args, 1, 1); err != nil {
		return nil, err
	}
	n, err := eval.ToString("save_cloud", args, 0)
	if err != nil {
		return nil, err
	}
	return nil, b.host.SaveCloud(n)
}

func (b *Builtins) clipCursor(args []eval.Value) (eval.Value, error) {
	if err := eval.CheckArgs("clip_cursor", args, 0, 1); err != nil {
		return nil, err
	}
	clip := true
	if len(args) == 1 {
		var err error
		clip, err = eval.ToBool("clip_cursor", args, 0)
		if err != nil {
			return nil, err
		}
	}
	return nil, b.host.ClipCursor(clip)
}

func (b *Builtins) startInteractive(args []eval.Value) (eval.Value, error) {
	if err := eval.CheckArgs("interactive", args, 0, 0); err != nil {
		return nil, err
	}
	if b.interactive == nil {
		return nil, curated.Errorf(NoInteractive)
	}
	return b.interactive()
}

func wait(args []eval.Value) (eval.Value, error) {
	if err := eval.CheckArgs("wait", args, 1, 1); err != nil {
		return nil, err
	}
	n, err := eval.ToInt("wait", args, 0)
	if err != nil {
		return nil, err
	}
	return sequence.Wait(n), nil
}

func computeTurn(args []eval.Value) (eval.Value, error) {
	if err := eval.CheckArgs("compute_turn", args, 2, 3); err != nil {
		return nil, err
	}
	target, err := eval.ToInt("compute_turn", args, 0)
	if err != nil {
		return nil, err
	}
	dt, err := eval.ToFloat("compute_turn", args, 1)
	if err != nil {
		return nil, err
	}
	accel := turn.DefaultAcceleration
	if len(args) == 3 {
		accel, err = eval.ToFloat("compute_turn", args, 2)
		if err != nil {
			return nil, err
		}
	}
	return turn.Compute(target, dt, accel)
}

func sumSquares(name string, args []eval.Value) (float64, error) {
	if err := eval.CheckArgs(name, args, 1, 1); err != nil {
		return 0, err
	}
	v, err := eval.ToFloats(name, args, 0)
	if err != nil {
		return 0, err
	}
	var s float64
	for _, x := range v {
		s += x * x
	}
	return s, nil
}

func sqrNorm(args []eval.Value) (eval.Value, error) {
	s, err := sumSquares("sqr_norm", args)
	if err != nil {
		return nil, err
	}
	return s, nil
}

func norm(args []eval.Value) (eval.Value, error) {
	s, err := sumSquares("norm", args)
	if err != nil {
		return nil, err
	}
	return math.Sqrt(s), nil
}

// integer division rounding towards negative infinity
func idiv(args []eval.Value) (eval.Value, error) {
	if err := eval.CheckArgs("idiv", args, 2, 2); err != nil {
		return nil, err
	}
	a, err := eval.ToInt("idiv", args, 0)
	if err != nil {
		return nil, err
	}
	d, err := eval.ToInt("idiv", args, 1)
	if err != nil {
		return nil, err
	}
	if d == 0 {
		return nil, curated.Errorf("idiv: division by zero")
	}
	q := a / d
	if (a%d != 0) && ((a < 0) != (d < 0)) {
		q--
	}
	return q, nil
}
