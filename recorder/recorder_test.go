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

package recorder_test

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/jetsetilly/lockstep/curated"
	"github.com/jetsetilly/lockstep/digest"
	"github.com/jetsetilly/lockstep/environment"
	"github.com/jetsetilly/lockstep/host"
	"github.com/jetsetilly/lockstep/host/sim"
	"github.com/jetsetilly/lockstep/logger"
	"github.com/jetsetilly/lockstep/recorder"
	"github.com/jetsetilly/lockstep/task"
	"github.com/jetsetilly/lockstep/test"
)

const header = `lockstepscript
v1
import move_mouse, scroll_wheel, set_frame_time, set_frame_wait, set_key

main:
`

// record the input in the queue for the number of frames. returns the
// contents of the recording
func record(t *testing.T, h host.Host, dig digest.Digest, frames int) (*recorder.Recorder, string) {
	t.Helper()

	fn := filepath.Join(t.TempDir(), "recording.lss")
	env := environment.NewEnvironment(environment.MainSession, h)
	env.Quiet = true

	rec, err := recorder.NewRecorder(env, fn, nil, dig)
	test.DemandSuccess(t, err)
	rec.MaxFrames = frames

	_, err = task.Run(context.Background(), env, rec)
	test.DemandSuccess(t, err)
	test.DemandSuccess(t, rec.End())

	b, err := os.ReadFile(fn)
	test.DemandSuccess(t, err)
	return rec, string(b)
}

func TestRecording(t *testing.T) {
	q := sim.NewQueue()
	q.Press(1, host.VK_W).Move(2, 3, -1)
	s := sim.NewSim(logger.Allow, nil, nil, q)

	rec, out := record(t, s, nil, 3)
	test.ExpectEquality(t, rec.Frames(), 3)
	test.ExpectEquality(t, out, header+`    set_frame_wait(true)
    set_frame_time(40000)
    yield
    set_key(87, true)
    yield
    set_key(87, false)
    move_mouse(3, -1)
    yield
`)

	// the recording is reflected in the host
	test.ExpectEquality(t, s.Frame(), 3)
	test.ExpectSuccess(t, s.FrameWait())
	test.ExpectFailure(t, s.IsClipped())
}

func TestFixedStepPresets(t *testing.T) {
	q := sim.NewQueue()
	q.Press(1, host.VK_H).Press(2, host.VK_F1)
	s := sim.NewSim(logger.Allow, nil, nil, q)

	_, out := record(t, s, nil, 4)
	test.ExpectEquality(t, out, header+`    set_frame_wait(true)
    set_frame_time(40000)
    yield
    set_frame_wait(false)
    set_key(72, true)
    yield
    set_key(72, false)
    set_key(112, true)
    yield
    set_frame_time(4000000)
    set_key(112, false)
    yield
`)
	test.ExpectFailure(t, s.FrameWait())
}

func TestFreeRunningPreset(t *testing.T) {
	q := sim.NewQueue()
	q.Press(0, host.VK_F3)

	clk := &sim.SteppedClock{PerRead: 10000}
	s := sim.NewSim(logger.Allow, nil, clk, q)

	_, out := record(t, s, nil, 2)
	lines := strings.Split(strings.TrimPrefix(out, header), "\n")

	// the preset takes effect on the frame after the key press. the recorder
	// waits for the full duration of the new preset
	test.DemandSuccess(t, len(lines) > 5)
	test.ExpectEquality(t, lines[1], "    set_frame_time(40000)")
	test.ExpectEquality(t, lines[2], "    set_key(114, true)")
	test.ExpectEquality(t, lines[4], "    set_frame_time(100000)")
}

func TestFreeRunningDefaultClock(t *testing.T) {
	q := sim.NewQueue()
	q.Press(0, host.VK_F1)
	s := sim.NewSim(logger.Allow, nil, nil, q)

	// the wait for the longer frame ends when the stepped clock has been
	// polled up to the new minimum duration
	_, out := record(t, s, nil, 3)
	test.ExpectEquality(t, out, header+`    set_frame_wait(true)
    set_frame_time(40000)
    set_key(112, true)
    yield
    set_frame_time(4000000)
    set_key(112, false)
    yield
    yield
`)
	test.ExpectEquality(t, s.FrameTime(), int64(4000000))
}

func TestSaveKey(t *testing.T) {
	q := sim.NewQueue()
	q.Press(1, host.VK_K)
	s := sim.NewSim(logger.Allow, nil, nil, q)

	_, out := record(t, s, nil, 3)
	test.DemandEquality(t, len(s.Saves()), 1)
	test.ExpectEquality(t, s.Saves()[0], "cloud")

	// the key is recorded but the save is not
	test.ExpectSuccess(t, strings.Contains(out, "set_key(75, true)"))
	test.ExpectFailure(t, strings.Contains(out, "cloud"))
}

func TestRoundTrip(t *testing.T) {
	q := sim.NewQueue()
	q.Press(1, host.VK_W).Key(2, host.VK_LSHIFT, true).Move(3, -40, 2).Scroll(4, 1)
	q.Press(5, host.VK_H).Key(7, host.VK_LSHIFT, false).Press(8, host.VK_F2)

	recSim := sim.NewSim(logger.Allow, nil, nil, q)
	recDig := digest.NewCalls(recSim)
	_, out := record(t, recDig, recDig, 12)
	test.ExpectSuccess(t, strings.Contains(out, "-- digest "+recDig.Hash()))

	fn := filepath.Join(t.TempDir(), "roundtrip.lss")
	test.DemandSuccess(t, os.WriteFile(fn, []byte(out), 0o644))

	plb, err := recorder.NewPlayback(fn)
	test.DemandSuccess(t, err)
	test.ExpectEquality(t, plb.Digest(), recDig.Hash())

	playSim := sim.NewSim(logger.Allow, nil, nil, nil)
	playDig := digest.NewCalls(playSim)
	env := environment.NewEnvironment(environment.MainSession, playDig)
	env.Quiet = true
	test.DemandSuccess(t, plb.Verify(context.Background(), env, playDig))

	test.ExpectEquality(t, host.FormatCalls(playSim.Calls()), host.FormatCalls(recSim.Calls()))
	test.ExpectEquality(t, playSim.Yaw(), recSim.Yaw())
	test.ExpectEquality(t, playSim.Scrolled(), recSim.Scrolled())
}

func TestPlaybackMismatch(t *testing.T) {
	q := sim.NewQueue()
	q.Press(1, host.VK_W)
	recDig := digest.NewCalls(sim.NewSim(logger.Allow, nil, nil, q))
	_, out := record(t, recDig, recDig, 3)

	// alter the recording without changing the digest
	out = strings.Replace(out, "set_key(87, true)", "set_key(83, true)", 1)
	fn := filepath.Join(t.TempDir(), "altered.lss")
	test.DemandSuccess(t, os.WriteFile(fn, []byte(out), 0o644))

	plb, err := recorder.NewPlayback(fn)
	test.DemandSuccess(t, err)

	dig := digest.NewCalls(sim.NewSim(logger.Allow, nil, nil, nil))
	env := environment.NewEnvironment(environment.MainSession, dig)
	env.Quiet = true
	err = plb.Verify(context.Background(), env, dig)
	test.ExpectSuccess(t, curated.Is(err, recorder.PlaybackHashError))
}

func TestPlaybackNoDigest(t *testing.T) {
	_, out := record(t, sim.NewSim(logger.Allow, nil, nil, nil), nil, 2)
	fn := filepath.Join(t.TempDir(), "nodigest.lss")
	test.DemandSuccess(t, os.WriteFile(fn, []byte(out), 0o644))

	plb, err := recorder.NewPlayback(fn)
	test.DemandSuccess(t, err)

	dig := digest.NewCalls(sim.NewSim(logger.Allow, nil, nil, nil))
	env := environment.NewEnvironment(environment.MainSession, dig)
	env.Quiet = true

	err = plb.Verify(context.Background(), env, dig)
	test.ExpectSuccess(t, curated.Is(err, recorder.PlaybackNoDigest))

	// playing without verification is fine
	test.ExpectSuccess(t, plb.Play(context.Background(), env, dig))
	test.ExpectEquality(t, dig.Frames(), 2)
}

func TestArtifactFailure(t *testing.T) {
	s := sim.NewSim(logger.Allow, nil, nil, nil)
	env := environment.NewEnvironment(environment.MainSession, s)
	env.Quiet = true

	fn := filepath.Join(t.TempDir(), "missing", "recording.lss")
	_, err := recorder.NewRecorder(env, fn, nil, nil)
	test.ExpectSuccess(t, curated.Is(err, recorder.ArtifactError))

	// nothing has been done to the host
	test.ExpectEquality(t, len(s.Calls()), 0)
	test.ExpectFailure(t, s.IsClipped())
}
