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

package digest_test

import (
	"testing"

	"github.com/jetsetilly/lockstep/digest"
	"github.com/jetsetilly/lockstep/host"
	"github.com/jetsetilly/lockstep/host/sim"
	"github.com/jetsetilly/lockstep/logger"
	"github.com/jetsetilly/lockstep/test"
)

var _ digest.Digest = (*digest.Calls)(nil)
var _ host.Host = (*digest.Calls)(nil)

// run the same sequence of calls and return the digest
func run(moveFrame int) string {
	dig := digest.NewCalls(sim.NewSim(logger.Allow, nil, nil, nil))
	dig.SetFrameTime(40000)
	for f := 0; f < 5; f++ {
		if f == moveFrame {
			dig.MoveMouse(1, 0)
		}
		dig.Advance()
	}
	return dig.Hash()
}

func TestDeterminism(t *testing.T) {
	test.ExpectEquality(t, run(2), run(2))

	// the same call in a different frame produces a different digest
	test.ExpectInequality(t, run(2), run(3))
}

func TestCaptureExcluded(t *testing.T) {
	a := digest.NewCalls(sim.NewSim(logger.Allow, nil, nil, nil))
	b := digest.NewCalls(sim.NewSim(logger.Allow, nil, nil, nil))

	a.SetKey(host.VK_W, true)
	b.SetKey(host.VK_W, true)
	b.SaveCloud("cloud")
	b.ClipCursor(true)
	a.Advance()
	b.Advance()

	test.ExpectEquality(t, a.Hash(), b.Hash())
	test.ExpectEquality(t, a.Frames(), 1)
}

func TestFailedCallExcluded(t *testing.T) {
	a := digest.NewCalls(sim.NewSim(logger.Allow, nil, nil, nil))
	b := digest.NewCalls(sim.NewSim(logger.Allow, nil, nil, nil))
	test.ExpectFailure(t, b.SetFrameTime(-1))
	a.Advance()
	b.Advance()
	test.ExpectEquality(t, a.Hash(), b.Hash())
}

func TestReset(t *testing.T) {
	dig := digest.NewCalls(sim.NewSim(logger.Allow, nil, nil, nil))
	empty := dig.Hash()
	test.ExpectEquality(t, len(empty), 40)

	dig.SetKey(host.VK_W, true)
	dig.Advance()
	test.ExpectInequality(t, dig.Hash(), empty)

	dig.ResetDigest()
	test.ExpectEquality(t, dig.Hash(), empty)
	test.ExpectEquality(t, dig.Frames(), 0)
}
