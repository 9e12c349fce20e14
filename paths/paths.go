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

package paths

import (
	"path/filepath"
	"sync"
)

// the name of the directory containing all resources
const resourceDir = ".lockstep"

var base struct {
	crit     sync.Mutex
	override string
}

// SetBase changes the directory used as the base for all resource paths. An
// empty string restores the default behaviour.
func SetBase(pth string) {
	base.crit.Lock()
	defer base.crit.Unlock()
	base.override = pth
}

// ResourcePath returns the path to a resource file in a sub-directory of the
// resource directory. The sub-directory is created if it does not exist. Both
// subPth and file can be empty.
func ResourcePath(subPth string, file string) (string, error) {
	base.crit.Lock()
	override := base.override
	base.crit.Unlock()

	var pth string
	var err error

	if override != "" {
		pth, err = ensureDir(filepath.Join(override, subPth))
	} else {
		pth, err = getBasePath(subPth)
	}
	if err != nil {
		return "", err
	}

	return filepath.Join(pth, file), nil
}
