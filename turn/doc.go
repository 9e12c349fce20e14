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

// Package turn solves the camera response model of the host. Given a target
// rotation, expressed in turn units of which there are 65536 per revolution,
// Compute() returns the pointer delta required to achieve that rotation in a
// single frame.
//
// The package is independent of the rest of the project. It does not know
// about the host or about scripts.
package turn
