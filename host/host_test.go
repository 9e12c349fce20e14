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

package host_test

import (
	"testing"

	"github.com/jetsetilly/lockstep/curated"
	"github.com/jetsetilly/lockstep/host"
	"github.com/jetsetilly/lockstep/test"
)

func TestCallString(t *testing.T) {
	test.ExpectEquality(t, host.SetKeyCall(host.VK_F, true).String(), "set_key(70, true)")
	test.ExpectEquality(t, host.MoveMouseCall(-3, 0).String(), "move_mouse(-3, 0)")
	test.ExpectEquality(t, host.ScrollWheelCall(-1).String(), "scroll_wheel(-1)")
	test.ExpectEquality(t, host.ScrollWheelCall(0.5).String(), "scroll_wheel(0.5)")
	test.ExpectEquality(t, host.SetFrameTimeCall(40000).String(), "set_frame_time(40000)")
	test.ExpectEquality(t, host.SetFrameWaitCall(false).String(), "set_frame_wait(false)")
	test.ExpectEquality(t, host.Boundary.String(), "yield")
	test.ExpectSuccess(t, host.Boundary.IsBoundary())
	test.ExpectFailure(t, host.SetFrameWaitCall(true).IsBoundary())
}

func TestFormatCalls(t *testing.T) {
	calls := []host.Call{
		host.SetFrameTimeCall(100000),
		host.SetKeyCall(host.VK_W, true),
		host.Boundary,
	}
	test.ExpectEquality(t, host.FormatCalls(calls), "set_frame_time(100000)\nset_key(87, true)\nyield\n")
}

func TestParseKey(t *testing.T) {
	k, err := host.ParseKey("f1")
	test.ExpectSuccess(t, err)
	test.ExpectEquality(t, k, host.VK_F1)

	k, err = host.ParseKey("VK_LSHIFT")
	test.ExpectSuccess(t, err)
	test.ExpectEquality(t, k, host.VK_LSHIFT)

	k, err = host.ParseKey("h")
	test.ExpectSuccess(t, err)
	test.ExpectEquality(t, k, host.VK_H)

	k, err = host.ParseKey("0x4b")
	test.ExpectSuccess(t, err)
	test.ExpectEquality(t, k, host.VK_K)

	k, err = host.ParseKey("32")
	test.ExpectSuccess(t, err)
	test.ExpectEquality(t, k, host.VK_SPACE)

	_, err = host.ParseKey("nonsense")
	test.ExpectFailure(t, err)
	test.ExpectSuccess(t, curated.Is(err, host.UnknownKey))
}

func TestKeyString(t *testing.T) {
	test.ExpectEquality(t, host.VK_F4.String(), "F4")
	test.ExpectEquality(t, host.VK_W.String(), "W")
	test.ExpectEquality(t, host.Key(0xe9).String(), "0xe9")
}

func TestVectors(t *testing.T) {
	v := host.Vec3{3, 4, 0}
	test.ExpectEquality(t, v.SqrNorm(), 25.0)
	test.ExpectEquality(t, v.Norm(), 5.0)
	test.ExpectEquality(t, v.String(), "(3, 4, 0)")
	test.ExpectEquality(t, host.Rot3{1, -2, 0}.String(), "(1, -2, 0)")
}
