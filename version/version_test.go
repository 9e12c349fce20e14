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

package version

import (
	"runtime/debug"
	"testing"

	"github.com/jetsetilly/lockstep/test"
)

func TestVersion(t *testing.T) {
	inf := fromBuildInfo("", nil)
	test.ExpectEquality(t, inf.Version, "local")
	test.ExpectEquality(t, inf.Release, false)
	test.ExpectEquality(t, inf.String(), "Lockstep local (no revision information)")

	info := &debug.BuildInfo{
		Settings: []debug.BuildSetting{
			{Key: "vcs", Value: "git"},
			{Key: "vcs.revision", Value: "abc123"},
			{Key: "vcs.modified", Value: "true"},
		},
	}
	inf = fromBuildInfo("", info)
	test.ExpectEquality(t, inf.Version, "unreleased")
	test.ExpectEquality(t, inf.Revision, "abc123+dirty")

	inf = fromBuildInfo("v0.1.0", info)
	test.ExpectSuccess(t, inf.Release)
	test.ExpectEquality(t, inf.String(), "Lockstep v0.1.0")
}
