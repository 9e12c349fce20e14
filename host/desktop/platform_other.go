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

//go:build !windows

package desktop

import (
	"runtime"

	"github.com/jetsetilly/lockstep/curated"
	"github.com/jetsetilly/lockstep/host"
)

func newPlatform() (platform, error) {
	return nil, curated.Errorf(host.Unsupported, runtime.GOOS, name)
}
