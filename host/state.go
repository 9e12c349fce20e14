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

package host

import (
	"fmt"
	"math"
)

// Vec3 is a position or velocity in the simulation.
type Vec3 [3]float64

func (v Vec3) String() string {
	return fmt.Sprintf("(%g, %g, %g)", v[0], v[1], v[2])
}

// SqrNorm is the square of the length of the vector.
func (v Vec3) SqrNorm() float64 {
	return v[0]*v[0] + v[1]*v[1] + v[2]*v[2]
}

// Norm is the length of the vector.
func (v Vec3) Norm() float64 {
	return math.Sqrt(v.SqrNorm())
}

// Rot3 is an orientation in turn units. The first component is the yaw, the
// second the pitch and the third the roll. Each component wraps at 65536.
type Rot3 [3]int

func (r Rot3) String() string {
	return fmt.Sprintf("(%d, %d, %d)", r[0], r[1], r[2])
}

// TurnState is a snapshot of the player's state. It is obtained from the host
// on demand and should not be retained.
type TurnState struct {
	Position Vec3
	Velocity Vec3
	Rotation Rot3
}

func (s TurnState) String() string {
	return fmt.Sprintf("position %s velocity %s rotation %s", s.Position, s.Velocity, s.Rotation)
}
