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

package capture

import (
	"fmt"
	"unicode"

	"github.com/gdamore/tcell/v2"
	"github.com/jetsetilly/lockstep/curated"
	"github.com/jetsetilly/lockstep/host"
	"github.com/jetsetilly/lockstep/host/sim"
)

// the size of the event channel. events are dropped if the channel is full
const queueSize = 256

// scroll amount for one step of the mouse wheel
const wheelStep = 1.0

// Capture is a source of live input for the simulated host. Key presses,
// pointer movement, button presses and the mouse wheel are captured from a
// terminal. It implements the sim.EventSource interface.
//
// Terminals do not report key releases so a key is released in the frame
// after the frame in which it was pressed.
type Capture struct {
	screen tcell.Screen
	prefs  *sim.Preferences

	events chan tcell.Event

	// input accumulated since the last poll
	input sim.Input

	// keys to release at the next poll
	release []host.Key

	// previous pointer position
	x, y   int
	hasPos bool

	buttons tcell.ButtonMask

	// called when the user presses ctrl-c or escape
	interrupt func()

	// status line
	status string

	ended bool
}

// NewCapture is the preferred method of initialisation for the Capture type.
// The screen is initialised and mouse reporting is enabled. End() must be
// called to restore the terminal.
//
// The preferences argument can be nil in which case the default mouse scale
// is used. The interrupt function is called when the user asks to stop. It can be
// nil.
func NewCapture(screen tcell.Screen, prefs *sim.Preferences, interrupt func()) (*Capture, error) {
	if err := screen.Init(); err != nil {
		return nil, curated.Errorf("capture: %v", err)
	}
	screen.EnableMouse()
	screen.HideCursor()
	screen.Clear()

	c := &Capture{
		screen:    screen,
		prefs:     prefs,
		events:    make(chan tcell.Event, queueSize),
		interrupt: interrupt,
	}

	go func() {
		for {
			ev := screen.PollEvent()
			if ev == nil {
				close(c.events)
				return
			}
			select {
			case c.events <- ev:
			default:
			}
		}
	}()

	return c, nil
}

// End the capture and restore the terminal. Calling End() more than once has
// no further effect.
func (c *Capture) End() {
	if c.ended {
		return
	}
	c.ended = true
	c.screen.Fini()
}

// SetStatus sets the text of the status line. The status line is drawn on
// the next poll.
func (c *Capture) SetStatus(s string) {
	c.status = s
}

// Poll implements the sim.EventSource interface.
func (c *Capture) Poll(frame int) sim.Input {
	for _, k := range c.release {
		c.input.Keys = append(c.input.Keys, host.KeyEvent{Key: k})
	}
	c.release = c.release[:0]

	c.drain()

	c.draw(frame)

	in := c.input
	c.input = sim.Input{}
	return in
}

// handle every event in the queue without blocking
func (c *Capture) drain() {
	for {
		select {
		case ev, ok := <-c.events:
			if !ok {
				return
			}
			c.handle(ev)
		default:
			return
		}
	}
}

func (c *Capture) handle(ev tcell.Event) {
	switch ev := ev.(type) {
	case *tcell.EventKey:
		if ev.Key() == tcell.KeyCtrlC || ev.Key() == tcell.KeyEscape {
			if c.interrupt != nil {
				c.interrupt()
			}
			return
		}
		keys := translate(ev)
		for _, k := range keys {
			c.input.Keys = append(c.input.Keys, host.KeyEvent{Key: k, Down: true})
		}
		c.release = append(c.release, keys...)

	case *tcell.EventMouse:
		c.mouse(ev)

	case *tcell.EventResize:
		c.screen.Sync()
	}
}

func (c *Capture) mouse(ev *tcell.EventMouse) {
	x, y := ev.Position()
	if c.hasPos && (x != c.x || y != c.y) {
		scale := sim.DefaultMouseScale
		if c.prefs != nil {
			scale = c.prefs.MouseScale.Get().(int)
		}
		c.input.Moves = append(c.input.Moves, host.MoveEvent{
			DX: (x - c.x) * scale,
			DY: (y - c.y) * scale,
		})
	}
	c.x, c.y = x, y
	c.hasPos = true

	b := ev.Buttons()
	if b&tcell.WheelUp != 0 {
		c.input.Scrolls = append(c.input.Scrolls, wheelStep)
	}
	if b&tcell.WheelDown != 0 {
		c.input.Scrolls = append(c.input.Scrolls, -wheelStep)
	}

	for _, m := range []struct {
		button tcell.ButtonMask
		key    host.Key
	}{
		{button: tcell.Button1, key: host.VK_LBUTTON},
		{button: tcell.Button2, key: host.VK_RBUTTON},
		{button: tcell.Button3, key: host.VK_MBUTTON},
	} {
		now := b&m.button != 0
		before := c.buttons&m.button != 0
		if now != before {
			c.input.Keys = append(c.input.Keys, host.KeyEvent{Key: m.key, Down: now})
		}
	}
	c.buttons = b & (tcell.Button1 | tcell.Button2 | tcell.Button3)
}

func (c *Capture) draw(frame int) {
	w, h := c.screen.Size()
	if h == 0 {
		return
	}

	s := fmt.Sprintf(" frame %d", frame)
	if c.status != "" {
		s = fmt.Sprintf("%s | %s", s, c.status)
	}
	s = fmt.Sprintf("%-*s", w, s)

	style := tcell.StyleDefault.Reverse(true)
	for i, r := range []rune(s) {
		if i >= w {
			break
		}
		c.screen.SetContent(i, h-1, r, nil, style)
	}
	c.screen.Show()
}

// translate a key event into the virtual keys that are pressed. a shifted
// letter is the letter and the left shift key
func translate(ev *tcell.EventKey) []host.Key {
	switch ev.Key() {
	case tcell.KeyRune:
		r := ev.Rune()
		switch {
		case r == ' ':
			return []host.Key{host.VK_SPACE}
		case r >= '0' && r <= '9':
			return []host.Key{host.Key(r)}
		case r >= 'a' && r <= 'z':
			return []host.Key{host.Key(unicode.ToUpper(r))}
		case r >= 'A' && r <= 'Z':
			return []host.Key{host.VK_LSHIFT, host.Key(r)}
		}
		return nil
	case tcell.KeyEnter:
		return []host.Key{host.VK_RETURN}
	case tcell.KeyTab:
		return []host.Key{host.VK_TAB}
	case tcell.KeyBackspace, tcell.KeyBackspace2:
		return []host.Key{host.VK_BACK}
	case tcell.KeyUp:
		return []host.Key{host.VK_UP}
	case tcell.KeyDown:
		return []host.Key{host.VK_DOWN}
	case tcell.KeyLeft:
		return []host.Key{host.VK_LEFT}
	case tcell.KeyRight:
		return []host.Key{host.VK_RIGHT}
	}

	if ev.Key() >= tcell.KeyF1 && ev.Key() <= tcell.KeyF12 {
		return []host.Key{host.VK_F1 + host.Key(ev.Key()-tcell.KeyF1)}
	}

	return nil
}
