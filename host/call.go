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

package host

import (
	"strconv"
	"strings"
)

// Call is the canonical form of one host-mutating call. The String() form is
// valid script text and is used when serializing a recording, in the call
// log of the simulated host and when calculating a digest.
type Call struct {
	Name string
	Args []any
}

// the frame boundary is recorded in a call log as a Call with this name
const boundary = "yield"

// Boundary is the Call that marks the end of a frame in a call log.
var Boundary = Call{Name: boundary}

// IsBoundary returns true if the Call marks the end of a frame.
func (c Call) IsBoundary() bool {
	return c.Name == boundary
}

func (c Call) String() string {
	if c.IsBoundary() {
		return boundary
	}

	s := strings.Builder{}
	s.WriteString(c.Name)
	s.WriteRune('(')
	for i, a := range c.Args {
		if i > 0 {
			s.WriteString(", ")
		}
		s.WriteString(formatArg(a))
	}
	s.WriteRune(')')
	return s.String()
}

func formatArg(a any) string {
	switch v := a.(type) {
	case bool:
		return strconv.FormatBool(v)
	case int:
		return strconv.Itoa(v)
	case int64:
		return strconv.FormatInt(v, 10)
	case Key:
		return strconv.Itoa(int(v))
	case float64:
		return strconv.FormatFloat(v, 'g', -1, 64)
	case string:
		return strconv.Quote(v)
	}
	return "nil"
}

// SetFrameTimeCall returns the Call for SetFrameTime().
func SetFrameTimeCall(ticks int64) Call {
	return Call{Name: "set_frame_time", Args: []any{ticks}}
}

// SetFrameWaitCall returns the Call for SetFrameWait().
func SetFrameWaitCall(wait bool) Call {
	return Call{Name: "set_frame_wait", Args: []any{wait}}
}

// SetKeyCall returns the Call for SetKey().
func SetKeyCall(key Key, down bool) Call {
	return Call{Name: "set_key", Args: []any{key, down}}
}

// MoveMouseCall returns the Call for MoveMouse().
func MoveMouseCall(dx, dy int) Call {
	return Call{Name: "move_mouse", Args: []any{dx, dy}}
}

// ScrollWheelCall returns the Call for ScrollWheel().
func ScrollWheelCall(delta float64) Call {
	return Call{Name: "scroll_wheel", Args: []any{delta}}
}

// FormatCalls returns the calls one per line.
func FormatCalls(calls []Call) string {
	s := strings.Builder{}
	for _, c := range calls {
		s.WriteString(c.String())
		s.WriteRune('\n')
	}
	return s.String()
}
