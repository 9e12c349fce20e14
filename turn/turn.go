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

package turn

import (
	"math"

	"github.com/jetsetilly/lockstep/curated"
)

// OutOfDomain is returned by Compute() when there is no pointer delta that
// produces the target rotation.
const OutOfDomain = "turn: out of domain: %s"

const (
	// Revolution is the number of turn units in a full rotation.
	Revolution = 65536

	// ToRadians converts turn units to radians.
	ToRadians = math.Pi / 32768

	// FromRadians converts radians to turn units.
	FromRadians = 32768 / math.Pi

	// Friction of the camera model.
	Friction = 8.0

	// DefaultAcceleration of the camera model.
	DefaultAcceleration = 2000.0 / 600.0
)

// Compute returns the pointer delta, in turn units, that rotates the camera by
// the target number of turn units in a frame of dt seconds with the
// acceleration accel.
//
// The camera model is such that the new facing direction is the blend of the
// current direction, damped by friction, and the direction of the pointer
// input, scaled by acceleration and friction.
func Compute(target int, dt float64, accel float64) (int, error) {
	if dt < 0 || math.IsNaN(dt) || math.IsInf(dt, 0) {
		return 0, curated.Errorf(OutOfDomain, "invalid frame duration")
	}

	u1 := math.Cos(ToRadians * float64(target))
	u2 := math.Sin(ToRadians * float64(target))

	dtaf := dt * (accel + Friction)
	dtf1 := dt*Friction - 1
	dtf1u2 := dtf1 * u2

	disc := dtaf*dtaf - dtf1u2*dtf1u2
	if disc < 0 {
		return 0, curated.Errorf(OutOfDomain, "target cannot be reached in one frame")
	}

	m := math.Sqrt(disc) - dtf1*u1
	if m <= 0 {
		return 0, curated.Errorf(OutOfDomain, "target requires reversed facing")
	}

	d1 := m*u1 + dtf1
	d2 := m * u2

	return int(math.Round(FromRadians * math.Atan2(d2, d1))), nil
}

// MustCompute is like Compute() but panics if the target is out of domain.
// Useful for initialising tables of constant values.
func MustCompute(target int, dt float64, accel float64) int {
	v, err := Compute(target, dt, accel)
	if err != nil {
		panic(err)
	}
	return v
}

// Apply is the inverse of Compute(). It returns the rotation, in turn units,
// that results from the pointer delta in a frame of dt seconds.
func Apply(delta int, dt float64, accel float64) int {
	phi := ToRadians * float64(delta)
	dtaf := dt * (accel + Friction)
	x := (1 - dt*Friction) + dtaf*math.Cos(phi)
	y := dtaf * math.Sin(phi)
	return int(math.Round(FromRadians * math.Atan2(y, x)))
}
