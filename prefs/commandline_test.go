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

package prefs_test

import (
	"os"
	"testing"

	"github.com/jetsetilly/lockstep/curated"
	"github.com/jetsetilly/lockstep/prefs"
	"github.com/jetsetilly/lockstep/test"
)

func TestOverrideParsing(t *testing.T) {
	test.ExpectEquality(t, prefs.PopCommandLineStack(), "")

	prefs.PushCommandLineStack("  recorder.preset.1 ::  5 ")
	test.ExpectEquality(t, prefs.PopCommandLineStack(), "recorder.preset.1::5")

	// groups are returned sorted by key
	prefs.PushCommandLineStack("sim.speed::300; console.prompt::>")
	test.ExpectEquality(t, prefs.PopCommandLineStack(), "console.prompt::>; sim.speed::300")

	// malformed pairs are dropped and the rest kept
	prefs.PushCommandLineStack("recorder.preset.1=5; recorder.key.toggle::H; a::b::c")
	test.ExpectEquality(t, prefs.PopCommandLineStack(), "recorder.key.toggle::H")

	// a later pair for the same key replaces the earlier one. environment
	// overrides are joined in front of command line overrides
	prefs.PushCommandLineStack("sim.accel::2; sim.accel::4")
	ok, v := prefs.GetCommandLinePref("sim.accel")
	test.ExpectSuccess(t, ok)
	test.ExpectEquality(t, v, prefs.Value("4"))

	// values are consumed when they are read
	ok, _ = prefs.GetCommandLinePref("sim.accel")
	test.ExpectFailure(t, ok)
	test.ExpectEquality(t, prefs.PopCommandLineStack(), "")
}

func TestOverrideGroups(t *testing.T) {
	prefs.PushCommandLineStack("recorder.preset.1::5")
	prefs.PushCommandLineStack("recorder.preset.1::10")

	// only the top group is consulted
	ok, v := prefs.GetCommandLinePref("recorder.preset.1")
	test.ExpectSuccess(t, ok)
	test.ExpectEquality(t, v, prefs.Value("10"))
	test.ExpectEquality(t, prefs.PopCommandLineStack(), "")

	test.ExpectEquality(t, prefs.SizeCommandLineStack(), 1)
	test.ExpectEquality(t, prefs.PopCommandLineStack(), "recorder.preset.1::5")
	test.ExpectEquality(t, prefs.SizeCommandLineStack(), 0)
}

func TestOverridesApplyOnLoad(t *testing.T) {
	fn := tmpPrefFile(t)
	test.DemandSuccess(t, os.WriteFile(fn, []byte(prefs.WarningBoilerPlate+"\nrecorder.preset.1 :: 2.5\n"), 0o600))

	dsk, err := prefs.NewDisk(fn)
	test.DemandSuccess(t, err)

	var preset prefs.Float
	var prompt prefs.String
	test.DemandSuccess(t, dsk.Add("recorder.preset.1", &preset))
	test.DemandSuccess(t, dsk.Add("console.prompt", &prompt))

	// the override beats the file. the unknown key is left in the group
	prefs.PushCommandLineStack("recorder.preset.1::5; sim.speed::300")
	test.DemandSuccess(t, dsk.Load(false))
	test.ExpectEquality(t, preset.Get(), prefs.Value(5.0))
	test.ExpectEquality(t, prefs.PopCommandLineStack(), "sim.speed::300")

	// without an override the file value is used
	test.DemandSuccess(t, dsk.Load(false))
	test.ExpectEquality(t, preset.Get(), prefs.Value(2.5))

	// a bad override is an error naming the key
	prefs.PushCommandLineStack("recorder.preset.1::fast")
	err = dsk.Load(false)
	test.ExpectFailure(t, err)
	test.ExpectFailure(t, curated.Is(err, prefs.NoPrefsFile))
	prefs.PopCommandLineStack()
}
