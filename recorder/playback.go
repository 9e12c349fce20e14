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

package recorder

import (
	"context"
	"fmt"
	"io"

	"github.com/jetsetilly/lockstep/curated"
	"github.com/jetsetilly/lockstep/digest"
	"github.com/jetsetilly/lockstep/environment"
	"github.com/jetsetilly/lockstep/eval"
	"github.com/jetsetilly/lockstep/logger"
	"github.com/jetsetilly/lockstep/script"
	"github.com/jetsetilly/lockstep/task"
)

// Sentinel errors for playback.
const (
	PlaybackHashError = "playback: digest mismatch after %d frames (%s)"
	PlaybackNoDigest  = "playback: %s has no digest"
)

// Playback reperforms a recording and checks that the calls made to the
// host are the same as those made when the recording was made.
type Playback struct {
	scr *script.Script

	// output of print() in the recording. recordings don't normally print
	// anything but the script might have been edited
	Output io.Writer
}

// NewPlayback is the preferred method of initialisation for the Playback
// type.
func NewPlayback(filename string) (*Playback, error) {
	scr, err := script.Load(filename)
	if err != nil {
		return nil, curated.Errorf("playback: %v", err)
	}
	return &Playback{scr: scr}, nil
}

func (plb *Playback) String() string {
	if plb.scr.Digest == "" {
		return plb.scr.Name
	}
	return fmt.Sprintf("%s [%s]", plb.scr.Name, plb.scr.Digest)
}

// Digest returns the digest stored in the recording. Empty if the recording
// was made without a digest.
func (plb *Playback) Digest() string {
	return plb.scr.Digest
}

// Play runs the recording to completion. The host of the environment must be
// the host being digested. If the recording has a digest then the digest of
// the playback is compared with it.
func (plb *Playback) Play(ctx context.Context, env *environment.Environment, dig digest.Digest) error {
	ns := eval.NewNamespace(plb.Output)
	b := script.NewBuiltins(env.Host)

	t, err := plb.scr.Start(ns, b, script.Entry)
	if err != nil {
		return curated.Errorf("playback: %v", err)
	}

	dig.ResetDigest()
	frames := env.Frame()

	if _, err := task.Run(ctx, env, t); err != nil {
		return curated.Errorf("playback: %v", err)
	}

	frames = env.Frame() - frames

	if plb.scr.Digest == "" {
		logger.Logf(env, "playback", "%s: %d frames (unverified)", plb.scr.Name, frames)
		return nil
	}

	if dig.Hash() != plb.scr.Digest {
		return curated.Errorf(PlaybackHashError, frames, plb.scr.Name)
	}

	logger.Logf(env, "playback", "%s: %d frames (verified)", plb.scr.Name, frames)
	return nil
}

// Verify is the same as Play() except that a recording without a digest is
// an error.
func (plb *Playback) Verify(ctx context.Context, env *environment.Environment, dig digest.Digest) error {
	if plb.scr.Digest == "" {
		return curated.Errorf(PlaybackNoDigest, plb.scr.Name)
	}
	return plb.Play(ctx, env, dig)
}
