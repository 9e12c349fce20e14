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

// Package sim is a deterministic implementation of the host.Host interface.
// It is used for testing and for running scripts without a real host.
//
// The simulation is simple. The camera responds to pointer movement with the
// same model that the turn package solves and the player moves when the W,
// A, S and D keys are held. Cut-scenes are added with AddMovie().
//
// Every mutating call is recorded and the list is available with Calls().
// The end of each frame is recorded with host.Boundary, so the list is a
// complete description of what the host was asked to do and when.
//
// Live input comes from an EventSource. The Queue type provides input that
// has been prepared in advance and the capture package provides input from
// the terminal.
package sim
