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

// Package recorder captures the live input of a host and writes it as a
// script. Playing the script back reproduces the same sequence of calls to
// the host, frame for frame.
//
// A recording begins with a fixed header and a single main procedure. Every
// frame of the recording ends with a yield line. The frame time is written
// only when it changes.
//
// Some keys are reserved by the recorder. The preset keys select the minimum
// duration of a frame, the toggle key switches between the free-running and
// fixed-step regimes and the save key asks the host to save the game. The
// reserved keys are still passed to the host and are still recorded.
//
// The Playback type replays a recording and compares the digest of the
// calls it makes with the digest written at the end of the recording.
package recorder
