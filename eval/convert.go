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
	"math"
	"sort"
	"strconv"
	"strings"

	"github.com/Shopify/go-lua"
	"github.com/jetsetilly/lockstep/curated"
	"github.com/jetsetilly/lockstep/task"
)

// Sentinel errors for argument conversion.
const (
	ArgCount = "%s: expected %d arguments, got %d"
	ArgType  = "%s: argument %d: expected %s, got %s"
)

// tables nested more deeply than this are converted to nil
const maxDepth = 8

// Function is the Go form of a function in the namespace. It cannot be called
// from Go.
type Function struct{}

func (Function) String() string {
	return "<function>"
}

const taskTypeName = "lockstep.task"

type taskBox struct {
	t task.Task
}

func registerTaskType(l *lua.State) {
	lua.NewMetaTable(l, taskTypeName)
	l.PushGoFunction(func(l *lua.State) int {
		l.PushString("<task>")
		return 1
	})
	l.SetField(-2, "__tostring")
	l.Pop(1)
}

// push the Go value onto the stack
func push(l *lua.State, v Value) {
	switch v := v.(type) {
	case nil:
		l.PushNil()
	case bool:
		l.PushBoolean(v)
	case int:
		l.PushInteger(v)
	case int64:
		l.PushNumber(float64(v))
	case float64:
		l.PushNumber(v)
	case string:
		l.PushString(v)
	case task.Task:
		l.PushUserData(&taskBox{t: v})
		lua.SetMetaTableNamed(l, taskTypeName)
	case []Value:
		l.CreateTable(len(v), 0)
		for i, e := range v {
			push(l, e)
			l.RawSetInt(-2, i+1)
		}
	case []float64:
		l.CreateTable(len(v), 0)
		for i, e := range v {
			l.PushNumber(e)
			l.RawSetInt(-2, i+1)
		}
	case []int:
		l.CreateTable(len(v), 0)
		for i, e := range v {
			l.PushInteger(e)
			l.RawSetInt(-2, i+1)
		}
	case map[string]Value:
		l.CreateTable(0, len(v))
		for k, e := range v {
			push(l, e)
			l.SetField(-2, k)
		}
	case fmt.Stringer:
		l.PushString(v.String())
	default:
		l.PushString(fmt.Sprintf("%v", v))
	}
}

// convert the value at the stack index to a Go value
func toGo(l *lua.State, idx int, depth int) Value {
	switch l.TypeOf(idx) {
	case lua.TypeNil, lua.TypeNone:
		return nil
	case lua.TypeBoolean:
		return l.ToBoolean(idx)
	case lua.TypeNumber:
		n, _ := l.ToNumber(idx)
		return n
	case lua.TypeString:
		s, _ := l.ToString(idx)
		return s
	case lua.TypeTable:
		if depth >= maxDepth {
			return nil
		}
		return tableToGo(l, idx, depth+1)
	case lua.TypeFunction:
		return Function{}
	case lua.TypeUserData:
		if b, ok := l.ToUserData(idx).(*taskBox); ok {
			return b.t
		}
		return l.ToUserData(idx)
	}
	return nil
}

func tableToGo(l *lua.State, idx int, depth int) Value {
	idx = l.AbsIndex(idx)

	seq := make(map[int]Value)
	fields := make(map[string]Value)

	l.PushNil()
	for l.Next(idx) {
		// key is at -2 and value at -1. the key must not be converted in
		// place or the iteration will fail
		switch l.TypeOf(-2) {
		case lua.TypeNumber:
			n, _ := l.ToNumber(-2)
			if n == math.Trunc(n) && n >= 1 {
				seq[int(n)] = toGo(l, -1, depth)
			} else {
				fields[strconv.FormatFloat(n, 'g', -1, 64)] = toGo(l, -1, depth)
			}
		case lua.TypeString:
			k, _ := l.ToString(-2)
			fields[k] = toGo(l, -1, depth)
		}
		l.Pop(1)
	}

	if len(fields) == 0 {
		if s, ok := sequence(seq); ok {
			return s
		}
	}

	for k, v := range seq {
		fields[strconv.Itoa(k)] = v
	}
	return fields
}

// sequence returns the values as a slice if the keys run from 1 without gaps
func sequence(seq map[int]Value) ([]Value, bool) {
	s := make([]Value, len(seq))
	for i := range s {
		v, ok := seq[i+1]
		if !ok {
			return nil, false
		}
		s[i] = v
	}
	return s, true
}

// Repr returns the value formatted as it would be written in a script.
func Repr(v Value) string {
	switch v := v.(type) {
	case nil:
		return "nil"
	case bool:
		return strconv.FormatBool(v)
	case float64:
		return strconv.FormatFloat(v, 'g', -1, 64)
	case int:
		return strconv.Itoa(v)
	case string:
		return strconv.Quote(v)
	case []Value:
		s := make([]string, len(v))
		for i := range v {
			s[i] = Repr(v[i])
		}
		return fmt.Sprintf("{%s}", strings.Join(s, ", "))
	case map[string]Value:
		k := make([]string, 0, len(v))
		for n := range v {
			k = append(k, n)
		}
		sort.Strings(k)
		s := make([]string, len(k))
		for i, n := range k {
			s[i] = fmt.Sprintf("%s = %s", n, Repr(v[n]))
		}
		return fmt.Sprintf("{%s}", strings.Join(s, ", "))
	case task.Task:
		return "<task>"
	case fmt.Stringer:
		return v.String()
	}
	return fmt.Sprintf("%v", v)
}

func typeName(v Value) string {
	switch v.(type) {
	case nil:
		return "nil"
	case bool:
		return "boolean"
	case float64, int:
		return "number"
	case string:
		return "string"
	case []Value, map[string]Value:
		return "table"
	case Function:
		return "function"
	case task.Task:
		return "task"
	}
	return fmt.Sprintf("%T", v)
}

// CheckArgs returns an error if the number of arguments is outside the range
// min to max inclusive.
func CheckArgs(name string, args []Value, min int, max int) error {
	if len(args) < min {
		return curated.Errorf(ArgCount, name, min, len(args))
	}
	if len(args) > max {
		return curated.Errorf(ArgCount, name, max, len(args))
	}
	return nil
}

// Arg returns the argument at the index or nil if there is no such argument.
func Arg(args []Value, i int) Value {
	if i < len(args) {
		return args[i]
	}
	return nil
}

// ToInt converts the argument at index i to an int. Numbers with a
// fractional part are not accepted.
func ToInt(name string, args []Value, i int) (int, error) {
	switch v := Arg(args, i).(type) {
	case float64:
		if v == math.Trunc(v) && !math.IsInf(v, 0) {
			return int(v), nil
		}
		return 0, curated.Errorf(ArgType, name, i+1, "integer", Repr(v))
	case int:
		return v, nil
	}
	return 0, curated.Errorf(ArgType, name, i+1, "integer", typeName(Arg(args, i)))
}

// ToFloat converts the argument at index i to a float64.
func ToFloat(name string, args []Value, i int) (float64, error) {
	switch v := Arg(args, i).(type) {
	case float64:
		return v, nil
	case int:
		return float64(v), nil
	}
	return 0, curated.Errorf(ArgType, name, i+1, "number", typeName(Arg(args, i)))
}

// ToBool converts the argument at index i to a bool. Only booleans are
// accepted.
func ToBool(name string, args []Value, i int) (bool, error) {
	if v, ok := Arg(args, i).(bool); ok {
		return v, nil
	}
	return false, curated.Errorf(ArgType, name, i+1, "boolean", typeName(Arg(args, i)))
}

// ToString converts the argument at index i to a string.
func ToString(name string, args []Value, i int) (string, error) {
	if v, ok := Arg(args, i).(string); ok {
		return v, nil
	}
	return "", curated.Errorf(ArgType, name, i+1, "string", typeName(Arg(args, i)))
}

// ToFloats converts the argument at index i, which must be a sequence of
// numbers, to a slice of float64.
func ToFloats(name string, args []Value, i int) ([]float64, error) {
	s, ok := Arg(args, i).([]Value)
	if !ok {
		return nil, curated.Errorf(ArgType, name, i+1, "sequence", typeName(Arg(args, i)))
	}
	f := make([]float64, len(s))
	for j := range s {
		n, ok := s[j].(float64)
		if !ok {
			return nil, curated.Errorf(ArgType, name, i+1, "sequence of numbers", typeName(s[j]))
		}
		f[j] = n
	}
	return f, nil
}
