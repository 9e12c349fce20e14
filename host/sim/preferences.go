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

package sim

import (
	"github.com/jetsetilly/lockstep/curated"
	"github.com/jetsetilly/lockstep/paths"
	"github.com/jetsetilly/lockstep/prefs"
	"github.com/jetsetilly/lockstep/turn"
)

// DefaultMouseScale is the default value of the sim.mousescale preference.
const DefaultMouseScale = 64

// Preferences for the simulated host.
type Preferences struct {
	dsk *prefs.Disk

	// acceleration of the camera model
	Acceleration prefs.Float

	// speed of the player in units per second
	Speed prefs.Float

	// number of turn units per terminal cell of pointer movement. used by
	// the capture package
	MouseScale prefs.Int
}

func (p *Preferences) String() string {
	if p.dsk == nil {
		return ""
	}
	return p.dsk.String()
}

// NewPreferences is the preferred method of initialisation for the
// Preferences type. Values are loaded from the preferences file.
func NewPreferences() (*Preferences, error) {
	p := newPreferences()

	pth, err := paths.ResourcePath("", prefs.DefaultPrefsFile)
	if err != nil {
		return nil, err
	}
	p.dsk, err = prefs.NewDisk(pth)
	if err != nil {
		return nil, err
	}

	err = p.dsk.Add("sim.accel", &p.Acceleration)
	if err != nil {
		return nil, err
	}
	err = p.dsk.Add("sim.speed", &p.Speed)
	if err != nil {
		return nil, err
	}
	err = p.dsk.Add("sim.mousescale", &p.MouseScale)
	if err != nil {
		return nil, err
	}

	err = p.dsk.Load(true)
	if err != nil {
		// ignore missing prefs file errors
		if !curated.Is(err, prefs.NoPrefsFile) {
			return nil, err
		}
	}

	return p, nil
}

// preferences with default values and no disk backing
func newPreferences() *Preferences {
	p := &Preferences{}
	p.SetDefaults()
	return p
}

// SetDefaults reverts all settings to default values.
func (p *Preferences) SetDefaults() {
	p.Acceleration.Set(turn.DefaultAcceleration)
	p.Speed.Set(4.0)
	p.MouseScale.Set(DefaultMouseScale)
}

// Load simulated host preferences from disk.
func (p *Preferences) Load() error {
	return p.dsk.Load(false)
}

// Save simulated host preferences to disk.
func (p *Preferences) Save() error {
	return p.dsk.Save()
}
