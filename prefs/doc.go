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

// Package prefs stores preference values and saves them to disk.
//
// Preference values are declared with one of the types Bool, Int, Float,
// String or Generic. The values are safe to read from more than one goroutine.
// Hook functions can be attached to the basic types to react to changes.
//
// A Disk instance associates values with a file. The file is plain text, one
// value per line, with the key and value separated by " :: ". The first line
// is the WarningBoilerPlate string.
//
// The typical pattern for a group of preferences is:
//
//	dsk, err := prefs.NewDisk(paths.ResourcePath("", prefs.DefaultPrefsFile))
//	err = dsk.Add("recorder.preset.1", &p.Preset[0])
//	...
//	p.SetDefaults()
//	err = dsk.Load(true)
//	if err != nil && !curated.Is(err, prefs.NoPrefsFile) {
//		return err
//	}
//
// Values can be overridden for the duration of a run with the command line
// stack. A string of key/value pairs is pushed with PushCommandLineStack()
// before the Disk is loaded. Overridden values are saved like any other value
// if Save() is called.
package prefs

// DefaultPrefsFile is the name of the preferences file in the resource
// directory.
const DefaultPrefsFile = "preferences"
