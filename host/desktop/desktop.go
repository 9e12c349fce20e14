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

package desktop

import (
	"fmt"
	"sort"
	"time"

	"github.com/jetsetilly/lockstep/curated"
	"github.com/jetsetilly/lockstep/host"
	"github.com/jetsetilly/lockstep/logger"
)

// the name of the host in error messages
const name = "desktop"

// platform is the operating system interface used by the desktop host
type platform interface {
	// raw performance counter and its frequency
	counter() int64
	frequency() int64

	// live state of the keyboard and pointer
	keyDown(k host.Key) bool
	cursor() (x int, y int, err error)

	// injection of input into the focused window
	sendKey(k host.Key, down bool) error
	sendMove(dx, dy int) error
	sendWheel(delta float64) error

	// confine the pointer to the focused window
	clip(clip bool) error

	sleep(d time.Duration)
}

// Desktop is a host that drives whatever window has the input focus. Input
// is injected with the operating system's input functions and the live
// input is read from the state of the keyboard and pointer.
//
// The desktop host cannot control the game's own clock. The frame time is
// used to pace frames in the free-running regime. The state of the game
// cannot be queried and the state operations return Unsupported errors.
type Desktop struct {
	perm logger.Permission
	plat platform

	// when false the mutating operations change the state of the host but
	// no input is injected. a recording should not inject because the live
	// input has already reached the game
	Inject bool

	frameTime  int64
	frameWait  bool
	frameStart int64

	// the keys polled for live input and their state at the last poll
	polled []host.Key
	live   map[host.Key]bool

	// pointer position at the last poll
	x, y   int
	hasPos bool

	// input for the current frame
	input struct {
		keys  []host.KeyEvent
		moves []host.MoveEvent
	}
}

// NewDesktop is the preferred method of initialisation for the Desktop type.
// Returns an Unsupported error on platforms other than Windows.
func NewDesktop(perm logger.Permission) (*Desktop, error) {
	plat, err := newPlatform()
	if err != nil {
		return nil, err
	}
	return newDesktop(perm, plat), nil
}

func newDesktop(perm logger.Permission, plat platform) *Desktop {
	d := &Desktop{
		perm:      perm,
		plat:      plat,
		Inject:    true,
		frameTime: host.Frequency / 60,
		live:      make(map[host.Key]bool),
	}

	seen := make(map[host.Key]bool)
	for _, k := range host.KeyNames {
		if !seen[k] {
			seen[k] = true
			d.polled = append(d.polled, k)
		}
	}
	sort.Slice(d.polled, func(i, j int) bool { return d.polled[i] < d.polled[j] })

	// keys held when the host is created do not produce events
	for _, k := range d.polled {
		d.live[k] = plat.keyDown(k)
	}
	d.x, d.y, d.hasPos = d.cursor()

	d.frameStart = d.QueryPerformanceCounter()

	return d
}

func (d *Desktop) String() string {
	return name
}

func (d *Desktop) cursor() (int, int, bool) {
	x, y, err := d.plat.cursor()
	if err != nil {
		logger.Logf(d.perm, "desktop", "cursor: %v", err)
		return 0, 0, false
	}
	return x, y, true
}

// Frequency implements the host.Host interface.
func (d *Desktop) Frequency() int64 {
	return host.Frequency
}

// SetFrameTime implements the host.Host interface.
func (d *Desktop) SetFrameTime(ticks int64) error {
	if ticks <= 0 {
		return curated.Errorf(host.InvalidFrameTime, ticks)
	}
	d.frameTime = ticks
	return nil
}

// FrameTime implements the host.Host interface.
func (d *Desktop) FrameTime() int64 {
	return d.frameTime
}

// SetFrameWait implements the host.Host interface.
func (d *Desktop) SetFrameWait(wait bool) {
	d.frameWait = wait
}

func (d *Desktop) inject(err error) {
	if err != nil {
		logger.Logf(d.perm, "desktop", "inject: %v", err)
	}
}

// MoveMouse implements the host.Host interface.
func (d *Desktop) MoveMouse(dx, dy int) {
	if d.Inject {
		d.inject(d.plat.sendMove(dx, dy))
	}
}

// SetKey implements the host.Host interface.
func (d *Desktop) SetKey(key host.Key, down bool) {
	if d.Inject {
		d.inject(d.plat.sendKey(key, down))
	}
}

// ScrollWheel implements the host.Host interface.
func (d *Desktop) ScrollWheel(delta float64) {
	if d.Inject {
		d.inject(d.plat.sendWheel(delta))
	}
}

// QueryPerformanceCounter implements the host.Host interface. The platform
// counter is converted to ticks of host.Frequency.
func (d *Desktop) QueryPerformanceCounter() int64 {
	c := d.plat.counter()
	f := d.plat.frequency()
	if f == host.Frequency {
		return c
	}
	return c/f*host.Frequency + c%f*host.Frequency/f
}

// KeyEvents implements the host.Host interface.
func (d *Desktop) KeyEvents() []host.KeyEvent {
	return d.input.keys
}

// MoveEvents implements the host.Host interface.
func (d *Desktop) MoveEvents() []host.MoveEvent {
	return d.input.moves
}

// ScrollEvents implements the host.Host interface. The state of the mouse
// wheel cannot be polled so there are never any scroll events.
func (d *Desktop) ScrollEvents() []float64 {
	return nil
}

// IsInMovie implements the host.Host interface.
func (d *Desktop) IsInMovie() (bool, error) {
	return false, curated.Errorf(host.Unsupported, "is_in_movie", name)
}

// Snapshot implements the host.Host interface.
func (d *Desktop) Snapshot() (host.TurnState, error) {
	return host.TurnState{}, curated.Errorf(host.Unsupported, "save_state", name)
}

// SaveCloud implements the host.Host interface.
func (d *Desktop) SaveCloud(n string) error {
	return curated.Errorf(host.Unsupported, fmt.Sprintf("save_cloud(%q)", n), name)
}

// ClipCursor implements the host.Host interface.
func (d *Desktop) ClipCursor(clip bool) error {
	if err := d.plat.clip(clip); err != nil {
		return curated.Errorf("desktop: %v", err)
	}
	return nil
}

// Advance implements the host.Host interface. In the free-running regime the
// frame lasts for at least the frame time. The live input is polled at the
// end of the frame and is available during the next frame.
func (d *Desktop) Advance() error {
	if d.frameWait {
		end := d.frameStart + d.frameTime
		if now := d.QueryPerformanceCounter(); now < end {
			d.plat.sleep(time.Duration((end - now) * (int64(time.Second) / host.Frequency)))
		}
	}
	d.frameStart = d.QueryPerformanceCounter()

	d.input.keys = d.input.keys[:0]
	d.input.moves = d.input.moves[:0]

	for _, k := range d.polled {
		down := d.plat.keyDown(k)
		if down != d.live[k] {
			d.live[k] = down
			d.input.keys = append(d.input.keys, host.KeyEvent{Key: k, Down: down})
		}
	}

	if x, y, ok := d.cursor(); ok {
		if d.hasPos && (x != d.x || y != d.y) {
			d.input.moves = append(d.input.moves, host.MoveEvent{DX: x - d.x, DY: y - d.y})
		}
		d.x, d.y, d.hasPos = x, y, true
	}

	return nil
}
