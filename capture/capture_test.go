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

package capture

import (
	"testing"

	"github.com/gdamore/tcell/v2"
	"github.com/jetsetilly/lockstep/host"
	"github.com/jetsetilly/lockstep/host/sim"
	"github.com/jetsetilly/lockstep/test"
)

func newTestCapture(t *testing.T, interrupt func()) *Capture {
	t.Helper()
	c, err := NewCapture(tcell.NewSimulationScreen("UTF-8"), nil, interrupt)
	test.DemandSuccess(t, err)
	t.Cleanup(c.End)
	return c
}

func TestKeys(t *testing.T) {
	c := newTestCapture(t, nil)

	c.handle(tcell.NewEventKey(tcell.KeyRune, 'w', tcell.ModNone))
	c.handle(tcell.NewEventKey(tcell.KeyF3, 0, tcell.ModNone))
	in := c.Poll(0)
	test.DemandEquality(t, len(in.Keys), 2)
	test.ExpectEquality(t, in.Keys[0], host.KeyEvent{Key: host.VK_W, Down: true})
	test.ExpectEquality(t, in.Keys[1], host.KeyEvent{Key: host.VK_F3, Down: true})

	// released on the next poll
	in = c.Poll(1)
	test.DemandEquality(t, len(in.Keys), 2)
	test.ExpectEquality(t, in.Keys[0], host.KeyEvent{Key: host.VK_W})
	test.ExpectEquality(t, in.Keys[1], host.KeyEvent{Key: host.VK_F3})

	in = c.Poll(2)
	test.ExpectEquality(t, len(in.Keys), 0)
}

func TestShiftedLetter(t *testing.T) {
	c := newTestCapture(t, nil)
	c.handle(tcell.NewEventKey(tcell.KeyRune, 'H', tcell.ModShift))
	in := c.Poll(0)
	test.DemandEquality(t, len(in.Keys), 2)
	test.ExpectEquality(t, in.Keys[0].Key, host.VK_LSHIFT)
	test.ExpectEquality(t, in.Keys[1].Key, host.VK_H)
}

func TestInterrupt(t *testing.T) {
	var interrupted bool
	c := newTestCapture(t, func() { interrupted = true })
	c.handle(tcell.NewEventKey(tcell.KeyCtrlC, 0, tcell.ModCtrl))
	test.ExpectSuccess(t, interrupted)
	test.ExpectEquality(t, len(c.Poll(0).Keys), 0)
}

func TestMouse(t *testing.T) {
	c := newTestCapture(t, nil)

	// the first position is the reference for movement
	c.handle(tcell.NewEventMouse(10, 5, tcell.ButtonNone, tcell.ModNone))
	c.handle(tcell.NewEventMouse(8, 6, tcell.Button1, tcell.ModNone))
	c.handle(tcell.NewEventMouse(8, 6, tcell.WheelUp, tcell.ModNone))

	in := c.Poll(0)
	test.DemandEquality(t, len(in.Moves), 1)
	test.ExpectEquality(t, in.Moves[0], host.MoveEvent{DX: -2 * sim.DefaultMouseScale, DY: sim.DefaultMouseScale})
	test.DemandEquality(t, len(in.Keys), 2)
	test.ExpectEquality(t, in.Keys[0], host.KeyEvent{Key: host.VK_LBUTTON, Down: true})
	test.ExpectEquality(t, in.Keys[1], host.KeyEvent{Key: host.VK_LBUTTON, Down: false})
	test.DemandEquality(t, len(in.Scrolls), 1)
	test.ExpectEquality(t, in.Scrolls[0], 1.0)
}

func TestWithSim(t *testing.T) {
	c := newTestCapture(t, nil)
	s := sim.NewSim(nil, nil, nil, c)

	c.handle(tcell.NewEventKey(tcell.KeyRune, 'k', tcell.ModNone))
	keys := s.KeyEvents()
	test.DemandEquality(t, len(keys), 1)
	test.ExpectEquality(t, keys[0].Key, host.VK_K)
}
