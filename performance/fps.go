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

package performance

import (
	"github.com/jetsetilly/lockstep/host"
)

// CalcFPS takes the number of frames and the duration (in seconds) and
// returns the frames-per-second and the accuracy of that value as a
// percentage of the rate implied by the frame time.
func CalcFPS(frameTime int64, numFrames int, duration float64) (fps float64, accuracy float64) {
	if duration <= 0 || frameTime <= 0 {
		return 0, 0
	}
	fps = float64(numFrames) / duration
	rate := float64(host.Frequency) / float64(frameTime)
	accuracy = 100 * fps / rate
	return fps, accuracy
}
