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

package sim

import (
	"math"

	"github.com/jetsetilly/lockstep/curated"
	"github.com/jetsetilly/lockstep/host"
	"github.com/jetsetilly/lockstep/logger"
	"github.com/jetsetilly/lockstep/turn"
)

// Span is a range of frames. From is inclusive and To is exclusive.
type Span struct {
	From int
	To   int
}

// Sim is a deterministic simulated host. It models a first person camera and
// a player who moves with the W, A, S and D keys.
type Sim struct {
	perm   logger.Permission
	prefs  *Preferences
	clock  Clock
	events EventSource

	frame     int
	frameTime int64
	frameWait bool

	keys    map[host.Key]bool
	scrolls float64

	// the input for the current frame. polled on first use
	input  Input
	polled bool

	// pointer movement during the current frame
	dx int
	dy int

	yaw      int
	pitch    int
	position host.Vec3
	velocity host.Vec3

	// cut scenes
	movies []Span

	// every mutating call in order with frame boundaries
	calls []host.Call

	saves   []string
	clipped bool
}

// NewSim is the preferred method of initialisation for the Sim type. The
// preferences argument can be nil in which case default preferences are
// used. The events argument can also be nil if there is no live input.
func NewSim(perm logger.Permission, prefs *Preferences, clock Clock, events EventSource) *Sim {
	if prefs == nil {
		prefs = newPreferences()
	}
	if clock == nil {
		clock = &SteppedClock{}
	}
	return &Sim{
		perm:      perm,
		prefs:     prefs,
		clock:     clock,
		events:    events,
		frameTime: host.Frequency / 60,
		keys:      make(map[host.Key]bool),
	}
}

func (s *Sim) String() string {
	return "sim"
}

// AddMovie adds a cut-scene to the simulation.
func (s *Sim) AddMovie(span Span) {
	s.movies = append(s.movies, span)
}

// Frame returns the number of the current frame. The first frame is zero.
func (s *Sim) Frame() int {
	return s.frame
}

// Calls returns the list of mutating calls made on the host. The end of each
// frame is marked with host.Boundary.
func (s *Sim) Calls() []host.Call {
	return s.calls
}

// Saves returns the names passed to SaveCloud().
func (s *Sim) Saves() []string {
	return s.saves
}

// IsKeyDown returns the state of the key.
func (s *Sim) IsKeyDown(k host.Key) bool {
	return s.keys[k]
}

// IsClipped returns true if the pointer has been clipped.
func (s *Sim) IsClipped() bool {
	return s.clipped
}

// FrameWait returns the current timing regime.
func (s *Sim) FrameWait() bool {
	return s.frameWait
}

// Yaw is the total rotation of the camera. Unlike the rotation in the
// snapshot it does not wrap.
func (s *Sim) Yaw() int {
	return s.yaw
}

// Scrolled is the sum of all scroll_wheel() deltas.
func (s *Sim) Scrolled() float64 {
	return s.scrolls
}

func (s *Sim) log(c host.Call) {
	s.calls = append(s.calls, c)
}

// Frequency implements the host.Host interface.
func (s *Sim) Frequency() int64 {
	return host.Frequency
}

// SetFrameTime implements the host.Host interface.
func (s *Sim) SetFrameTime(ticks int64) error {
	if ticks <= 0 {
		return curated.Errorf(host.InvalidFrameTime, ticks)
	}
	s.log(host.SetFrameTimeCall(ticks))
	s.frameTime = ticks
	return nil
}

// FrameTime implements the host.Host interface.
func (s *Sim) FrameTime() int64 {
	return s.frameTime
}

// SetFrameWait implements the host.Host interface.
func (s *Sim) SetFrameWait(wait bool) {
	s.log(host.SetFrameWaitCall(wait))
	s.frameWait = wait
}

// MoveMouse implements the host.Host interface.
func (s *Sim) MoveMouse(dx, dy int) {
	s.log(host.MoveMouseCall(dx, dy))
	s.dx += dx
	s.dy += dy
}

// SetKey implements the host.Host interface.
func (s *Sim) SetKey(key host.Key, down bool) {
	s.log(host.SetKeyCall(key, down))
	s.keys[key] = down
}

// ScrollWheel implements the host.Host interface.
func (s *Sim) ScrollWheel(delta float64) {
	s.log(host.ScrollWheelCall(delta))
	s.scrolls += delta
}

// QueryPerformanceCounter implements the host.Host interface.
func (s *Sim) QueryPerformanceCounter() int64 {
	return s.clock.Now()
}

func (s *Sim) poll() {
	if s.polled {
		return
	}
	s.polled = true
	if s.events != nil {
		s.input = s.events.Poll(s.frame)
	}
}

// KeyEvents implements the host.Host interface.
func (s *Sim) KeyEvents() []host.KeyEvent {
	s.poll()
	return s.input.Keys
}

// MoveEvents implements the host.Host interface.
func (s *Sim) MoveEvents() []host.MoveEvent {
	s.poll()
	return s.input.Moves
}

// ScrollEvents implements the host.Host interface.
func (s *Sim) ScrollEvents() []float64 {
	s.poll()
	return s.input.Scrolls
}

// IsInMovie implements the host.Host interface.
func (s *Sim) IsInMovie() (bool, error) {
	for _, m := range s.movies {
		if s.frame >= m.From && s.frame < m.To {
			return true, nil
		}
	}
	return false, nil
}

// Snapshot implements the host.Host interface.
func (s *Sim) Snapshot() (host.TurnState, error) {
	return host.TurnState{
		Position: s.position,
		Velocity: s.velocity,
		Rotation: host.Rot3{wrap(s.yaw), s.pitch, 0},
	}, nil
}

// SaveCloud implements the host.Host interface.
func (s *Sim) SaveCloud(name string) error {
	s.saves = append(s.saves, name)
	logger.Logf(s.perm, "sim", "save %d: %s", len(s.saves), name)
	return nil
}

// ClipCursor implements the host.Host interface.
func (s *Sim) ClipCursor(clip bool) error {
	s.clipped = clip
	return nil
}

// wrap turn units into the range 0 to 65535
func wrap(t int) int {
	t %= turn.Revolution
	if t < 0 {
		t += turn.Revolution
	}
	return t
}

// Advance implements the host.Host interface.
func (s *Sim) Advance() error {
	dt := float64(s.frameTime) / float64(host.Frequency)
	accel := s.prefs.Acceleration.Get().(float64)

	// camera does not move during cut-scenes
	movie, _ := s.IsInMovie()
	if !movie {
		if s.dx != 0 {
			s.yaw += turn.Apply(s.dx, dt, accel)
		}
		s.pitch = max(-turn.Revolution/4, min(turn.Revolution/4, s.pitch+s.dy))
		s.move(dt)
	}
	s.dx = 0
	s.dy = 0

	s.log(host.Boundary)
	s.clock.Advance(s.frameTime, s.frameWait)
	s.frame++
	s.polled = false
	s.input = Input{}

	return nil
}

// move the player according to the state of the movement keys
func (s *Sim) move(dt float64) {
	var fwd, side float64
	if s.keys[host.VK_W] {
		fwd++
	}
	if s.keys[host.VK_S] {
		fwd--
	}
	if s.keys[host.VK_D] {
		side++
	}
	if s.keys[host.VK_A] {
		side--
	}

	speed := s.prefs.Speed.Get().(float64)
	if s.keys[host.VK_LSHIFT] {
		speed *= 2
	}

	if l := math.Hypot(fwd, side); l > 0 {
		fwd /= l
		side /= l
	}

	a := turn.ToRadians * float64(s.yaw)
	s.velocity = host.Vec3{
		speed * (fwd*math.Cos(a) - side*math.Sin(a)),
		speed * (fwd*math.Sin(a) + side*math.Cos(a)),
		0,
	}

	for i := range s.position {
		s.position[i] += s.velocity[i] * dt
	}
}
