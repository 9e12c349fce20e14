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
	"fmt"
	"os"

	"github.com/jetsetilly/lockstep/curated"
	"github.com/jetsetilly/lockstep/digest"
	"github.com/jetsetilly/lockstep/environment"
	"github.com/jetsetilly/lockstep/host"
	"github.com/jetsetilly/lockstep/logger"
	"github.com/jetsetilly/lockstep/script"
	"github.com/jetsetilly/lockstep/task"
)

// Sentinel errors for the recorder package.
const (
	ArtifactError = "recorder: %v"
)

// the builtins used by a recording
var imports = []string{"move_mouse", "scroll_wheel", "set_frame_time", "set_frame_wait", "set_key"}

// Recorder captures the live input of the host and writes a script that
// reproduces it. It implements the task.Task interface and should be run
// with task.Run() using the same environment.
type Recorder struct {
	env   *environment.Environment
	prefs *Preferences
	dig   digest.Digest

	filename string
	file     *os.File
	scribe   *script.Scribe

	// the number of frames recorded
	frames int

	// stop recording after this many frames. zero means no limit
	MaxFrames int

	// the reference time of the previous frame and the duration of the
	// previous frame
	t0  int64
	pdt int64

	// the minimum duration of a frame in ticks
	minDuration int64

	// when free-running the recorder waits until the minimum duration has
	// elapsed and uses the actual duration of the frame
	freeRunning bool
}

// NewRecorder is the preferred method of initialisation for the Recorder
// type. The preferences argument can be nil in which case the default
// preferences are used.
//
// The digest argument can also be nil. If it is not nil it should be the
// digest of the host in the environment and the hash will be written to the
// end of the recording by End().
//
// Failure to create the file is fatal. No input is captured.
func NewRecorder(env *environment.Environment, filename string, prefs *Preferences, dig digest.Digest) (*Recorder, error) {
	if prefs == nil {
		prefs = newPreferences()
	}

	rec := &Recorder{
		env:         env,
		prefs:       prefs,
		dig:         dig,
		filename:    filename,
		freeRunning: true,
	}

	var err error
	rec.file, err = os.Create(filename)
	if err != nil {
		return nil, curated.Errorf(ArtifactError, err)
	}
	rec.scribe = script.NewScribe(rec.file)

	rec.scribe.WriteHeader(imports...)
	rec.scribe.WriteProcedure(script.Entry)
	if err := rec.scribe.Flush(); err != nil {
		rec.file.Close()
		return nil, curated.Errorf(ArtifactError, err)
	}

	rec.minDuration = rec.prefs.PresetTicks(initialPreset, env.Host.Frequency())

	if err := env.Host.ClipCursor(true); err != nil {
		logger.Logf(env, "recorder", "clip cursor: %v", err)
	}

	if dig != nil {
		dig.ResetDigest()
	}

	logger.Logf(env, "recorder", "recording to %s", filename)

	return rec, nil
}

func (rec *Recorder) String() string {
	return fmt.Sprintf("%s (%d frames)", rec.filename, rec.frames)
}

// Frames returns the number of frames recorded.
func (rec *Recorder) Frames() int {
	return rec.frames
}

// MinDuration returns the current minimum frame duration in ticks.
func (rec *Recorder) MinDuration() int64 {
	return rec.minDuration
}

// IsFreeRunning returns true if the recorder is in the free-running regime.
func (rec *Recorder) IsFreeRunning() bool {
	return rec.freeRunning
}

func (rec *Recorder) write(c host.Call) {
	rec.scribe.WriteLine(c.String())
}

// Step implements the task.Task interface. Each step records one frame.
func (rec *Recorder) Step(_ task.Value) (task.Outcome, error) {
	if rec.MaxFrames > 0 && rec.frames >= rec.MaxFrames {
		return task.Return(nil), nil
	}

	h := rec.env.Host

	if rec.frames == 0 {
		h.SetFrameWait(rec.freeRunning)
		rec.write(host.SetFrameWaitCall(rec.freeRunning))
	}

	var dt int64
	if rec.freeRunning && rec.frames > 0 {
		t1 := h.QueryPerformanceCounter()
		tn := max(rec.t0+rec.minDuration, t1)
		for t1 < tn {
			t1 = h.QueryPerformanceCounter()
		}
		dt = tn - rec.t0
		rec.t0 = tn
	} else {
		rec.t0 = h.QueryPerformanceCounter()
		dt = rec.minDuration
	}

	if dt != rec.pdt {
		if err := h.SetFrameTime(dt); err != nil {
			return task.Outcome{}, err
		}
		rec.write(host.SetFrameTimeCall(dt))
		rec.pdt = dt
	}

	for _, ev := range h.KeyEvents() {
		if ev.Down {
			rec.reservedKey(ev.Key)
		}
		h.SetKey(ev.Key, ev.Down)
		rec.write(host.SetKeyCall(ev.Key, ev.Down))
	}

	for _, ev := range h.MoveEvents() {
		h.MoveMouse(ev.DX, ev.DY)
		rec.write(host.MoveMouseCall(ev.DX, ev.DY))
	}

	for _, v := range h.ScrollEvents() {
		h.ScrollWheel(v)
		rec.write(host.ScrollWheelCall(v))
	}

	rec.write(host.Boundary)
	if err := rec.scribe.Flush(); err != nil {
		logger.Logf(rec.env, "recorder", "frame %d: %v", rec.frames, err)
	}
	rec.frames++

	return task.Yield(), nil
}

// act on a key press if it is one of the reserved keys. reserved keys are
// still recorded as normal key events
func (rec *Recorder) reservedKey(k host.Key) {
	h := rec.env.Host

	for i, pk := range rec.prefs.PresetKeys {
		if k == pk {
			rec.minDuration = rec.prefs.PresetTicks(i, h.Frequency())
			logger.Logf(rec.env, "recorder", "preset %d: %d ticks", i+1, rec.minDuration)
		}
	}

	if k == rec.prefs.ToggleKey {
		rec.freeRunning = !rec.freeRunning
		h.SetFrameWait(rec.freeRunning)
		rec.write(host.SetFrameWaitCall(rec.freeRunning))
	}

	if k == rec.prefs.SaveKey {
		n := rec.prefs.SaveName.Get().(string)
		if err := h.SaveCloud(n); err != nil {
			logger.Logf(rec.env, "recorder", "save: %v", err)
		}
	}
}

// End the recording. The digest is written, if available, and the file is
// closed. Returns the first error that occurred while writing the recording.
func (rec *Recorder) End() error {
	if rec.dig != nil {
		rec.scribe.WriteDigest(rec.dig.Hash())
	}
	rec.scribe.Flush()

	err := rec.scribe.Err()
	if cerr := rec.file.Close(); err == nil {
		err = cerr
	}

	if cerr := rec.env.Host.ClipCursor(false); cerr != nil {
		logger.Logf(rec.env, "recorder", "release cursor: %v", cerr)
	}

	if err != nil {
		return curated.Errorf(ArtifactError, err)
	}

	logger.Logf(rec.env, "recorder", "recorded %d frames to %s", rec.frames, rec.filename)
	return nil
}
