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

package digest

import (
	"crypto/sha1"
	"fmt"

	"github.com/jetsetilly/lockstep/host"
)

// Calls wraps a host.Host and calculates a digest of the mutating calls. Only
// calls that are passed to the underlying host are included. The capture
// operations SaveCloud() and ClipCursor() are not part of the digest.
type Calls struct {
	host.Host
	digest [sha1.Size]byte

	// the calls made during the current frame. the first bytes are the digest
	// of the previous frame
	frame  []byte
	frames int
}

// NewCalls is the preferred method of initialisation for the Calls type.
func NewCalls(h host.Host) *Calls {
	dig := &Calls{Host: h}
	dig.ResetDigest()
	return dig
}

// Hash implements the digest.Digest interface.
func (dig *Calls) Hash() string {
	return fmt.Sprintf("%x", dig.digest)
}

// ResetDigest implements the digest.Digest interface.
func (dig *Calls) ResetDigest() {
	for i := range dig.digest {
		dig.digest[i] = 0
	}
	dig.frame = dig.frame[:0]
	dig.frame = append(dig.frame, dig.digest[:]...)
	dig.frames = 0
}

// Frames is the number of frames included in the digest.
func (dig *Calls) Frames() int {
	return dig.frames
}

func (dig *Calls) add(c host.Call) {
	dig.frame = append(dig.frame, c.String()...)
	dig.frame = append(dig.frame, '\n')
}

// SetFrameTime implements the host.Host interface.
func (dig *Calls) SetFrameTime(ticks int64) error {
	if err := dig.Host.SetFrameTime(ticks); err != nil {
		return err
	}
	dig.add(host.SetFrameTimeCall(ticks))
	return nil
}

// SetFrameWait implements the host.Host interface.
func (dig *Calls) SetFrameWait(wait bool) {
	dig.Host.SetFrameWait(wait)
	dig.add(host.SetFrameWaitCall(wait))
}

// MoveMouse implements the host.Host interface.
func (dig *Calls) MoveMouse(dx, dy int) {
	dig.Host.MoveMouse(dx, dy)
	dig.add(host.MoveMouseCall(dx, dy))
}

// SetKey implements the host.Host interface.
func (dig *Calls) SetKey(key host.Key, down bool) {
	dig.Host.SetKey(key, down)
	dig.add(host.SetKeyCall(key, down))
}

// ScrollWheel implements the host.Host interface.
func (dig *Calls) ScrollWheel(delta float64) {
	dig.Host.ScrollWheel(delta)
	dig.add(host.ScrollWheelCall(delta))
}

// Advance implements the host.Host interface.
func (dig *Calls) Advance() error {
	if err := dig.Host.Advance(); err != nil {
		return err
	}

	// chain fingerprints by hashing the previous digest with the calls made
	// during the frame
	dig.digest = sha1.Sum(dig.frame)
	dig.frame = dig.frame[:0]
	dig.frame = append(dig.frame, dig.digest[:]...)
	dig.frames++

	return nil
}
