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

package recorder

import (
	"fmt"

	"github.com/jetsetilly/lockstep/curated"
	"github.com/jetsetilly/lockstep/host"
	"github.com/jetsetilly/lockstep/paths"
	"github.com/jetsetilly/lockstep/prefs"
)

// NumPresets is the number of minimum frame duration presets.
const NumPresets = 4

// default preset rates in frames per second
var defaultPresets = [NumPresets]float64{2.5, 5, 100, 250}

var defaultPresetKeys = [NumPresets]host.Key{host.VK_F1, host.VK_F2, host.VK_F3, host.VK_F4}

const (
	defaultToggleKey = host.VK_H
	defaultSaveKey   = host.VK_K
	defaultSaveName  = "cloud"
)

// the preset that is used when recording begins
const initialPreset = 3

// Preferences for the recorder.
type Preferences struct {
	dsk *prefs.Disk

	// minimum frame duration presets expressed as a rate in frames per
	// second
	Presets [NumPresets]prefs.Float

	// the keys that select the presets
	PresetKeys [NumPresets]host.Key

	// the key that toggles the free-running regime
	ToggleKey host.Key

	// the key that triggers the out-of-band save
	SaveKey host.Key

	// name passed to the save operation
	SaveName prefs.String
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

	for i := range p.Presets {
		err = p.dsk.Add(fmt.Sprintf("recorder.preset.%d", i+1), &p.Presets[i])
		if err != nil {
			return nil, err
		}
	}
	for i := range p.PresetKeys {
		err = p.dsk.Add(fmt.Sprintf("recorder.key.preset.%d", i+1), keyPref(&p.PresetKeys[i], defaultPresetKeys[i]))
		if err != nil {
			return nil, err
		}
	}
	err = p.dsk.Add("recorder.key.toggle", keyPref(&p.ToggleKey, defaultToggleKey))
	if err != nil {
		return nil, err
	}
	err = p.dsk.Add("recorder.key.save", keyPref(&p.SaveKey, defaultSaveKey))
	if err != nil {
		return nil, err
	}
	err = p.dsk.Add("recorder.savename", &p.SaveName)
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

// key bindings are stored in the prefs file by name. an empty value restores
// the default binding
func keyPref(k *host.Key, def host.Key) *prefs.Generic {
	return prefs.NewGeneric(
		func(v prefs.Value) error {
			s := v.(string)
			if s == "" {
				*k = def
				return nil
			}
			nk, err := host.ParseKey(s)
			if err != nil {
				return err
			}
			*k = nk
			return nil
		},
		func() prefs.Value {
			return *k
		},
	)
}

// preferences with default values and no disk backing
func newPreferences() *Preferences {
	p := &Preferences{}
	p.SetDefaults()
	return p
}

// SetDefaults reverts all settings to default values.
func (p *Preferences) SetDefaults() {
	for i := range p.Presets {
		p.Presets[i].Set(defaultPresets[i])
	}
	p.PresetKeys = defaultPresetKeys
	p.ToggleKey = defaultToggleKey
	p.SaveKey = defaultSaveKey
	p.SaveName.Set(defaultSaveName)
}

// Load recorder preferences from disk.
func (p *Preferences) Load() error {
	return p.dsk.Load(false)
}

// Save recorder preferences to disk.
func (p *Preferences) Save() error {
	return p.dsk.Save()
}

// PresetTicks returns the minimum frame duration for the preset in ticks of
// the host's performance counter.
func (p *Preferences) PresetTicks(preset int, frequency int64) int64 {
	rate := p.Presets[preset].Get().(float64)
	if rate <= 0 {
		rate = defaultPresets[preset]
	}
	return int64(float64(frequency) / rate)
}
