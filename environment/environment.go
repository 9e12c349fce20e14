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

package environment

import (
	"github.com/jetsetilly/lockstep/host"
)

// Label is used to name the environment
type Label string

// MainSession is the label of the session started from the command line.
const MainSession = Label("")

// Environment is the context for a session. It is passed to every component
// that needs to know about the host, the frame count or the logging
// preference.
type Environment struct {
	Label Label

	// the host being driven. the digest wrapper is installed here when
	// required
	Host host.Host

	// a quiet environment produces no log entries
	Quiet bool

	// number of frames advanced through the environment
	frames int
}

// NewEnvironment is the preferred method of initialisation for the
// Environment type.
func NewEnvironment(label Label, h host.Host) *Environment {
	return &Environment{
		Label: label,
		Host:  h,
	}
}

// AllowLogging implements the logger.Permission interface.
func (env *Environment) AllowLogging() bool {
	return !env.Quiet
}

// Advance completes the current frame of the host. It implements the
// task.Frames interface.
func (env *Environment) Advance() error {
	if err := env.Host.Advance(); err != nil {
		return err
	}
	env.frames++
	return nil
}

// Frame returns the number of frames advanced through the environment.
func (env *Environment) Frame() int {
	return env.frames
}

// IsMainSession returns true if the environment is for the session started
// from the command line.
func (env *Environment) IsMainSession() bool {
	return env.Label == MainSession
}

// IsSession checks the session label and returns true if it matches.
func (env *Environment) IsSession(label Label) bool {
	return env.Label == label
}
