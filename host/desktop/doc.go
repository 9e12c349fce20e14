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

// Package desktop implements a host that drives the focused window of the
// Windows desktop. Input is injected with SendInput and the live input is
// read with GetAsyncKeyState and GetCursorPos. The frame time paces the
// frames in the free-running regime.
//
// On other platforms NewDesktop() returns a host.Unsupported error.
package desktop
