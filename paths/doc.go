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

// Package paths contains functions to prepare paths to Lockstep resources.
//
// The ResourcePath() function returns the path to a file in a sub-directory
// of the resource directory. For example, the following returns the path to
// the preferences file:
//
//	pth, err := paths.ResourcePath("", "preferences")
//
// In development builds the resource directory is ".lockstep" in the current
// working directory. In builds with the "release" tag it is the "lockstep"
// directory in the user's configuration directory, as defined by
// os.UserConfigDir(). On a modern Linux system this is:
//
//	/home/user/.config/lockstep/preferences
//
// The SetBase() function overrides both of these. It is used when the
// LOCKSTEP_RESOURCES environment variable is set.
package paths
