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

//go:build windows

package desktop

import (
	"time"
	"unsafe"

	"github.com/jetsetilly/lockstep/host"
	"golang.org/x/sys/windows"
)

var (
	user32                        = windows.NewLazySystemDLL("user32.dll")
	procSendInput                 = user32.NewProc("SendInput")
	procGetAsyncKeyState          = user32.NewProc("GetAsyncKeyState")
	procGetCursorPos              = user32.NewProc("GetCursorPos")
	procClipCursor                = user32.NewProc("ClipCursor")
	procGetForegroundWindow       = user32.NewProc("GetForegroundWindow")
	procGetWindowRect             = user32.NewProc("GetWindowRect")
	kernel32                      = windows.NewLazySystemDLL("kernel32.dll")
	procQueryPerformanceCounter   = kernel32.NewProc("QueryPerformanceCounter")
	procQueryPerformanceFrequency = kernel32.NewProc("QueryPerformanceFrequency")
)

const (
	inputMouse    = 0
	inputKeyboard = 1

	mouseeventfMove      = 0x0001
	mouseeventfLeftDown  = 0x0002
	mouseeventfLeftUp    = 0x0004
	mouseeventfRightDown = 0x0008
	mouseeventfRightUp   = 0x0010
	mouseeventfMidDown   = 0x0020
	mouseeventfMidUp     = 0x0040
	mouseeventfWheel     = 0x0800

	keyeventfKeyUp = 0x0002

	wheelDelta = 120
)

type point struct {
	x, y int32
}

type rect struct {
	left, top, right, bottom int32
}

type mouseInput struct {
	dx        int32
	dy        int32
	mouseData uint32
	flags     uint32
	time      uint32
	extraInfo uintptr
}

type keybdInput struct {
	vk        uint16
	scan      uint16
	flags     uint32
	time      uint32
	extraInfo uintptr
}

// the union in the INPUT structure is the size of the largest member, which
// is the mouse input
type input struct {
	typ uint32
	mi  mouseInput
}

type windowsPlatform struct {
	freq int64
}

func newPlatform() (platform, error) {
	var f int64
	r, _, err := procQueryPerformanceFrequency.Call(uintptr(unsafe.Pointer(&f)))
	if r == 0 {
		return nil, err
	}
	return &windowsPlatform{freq: f}, nil
}

func (p *windowsPlatform) counter() int64 {
	var c int64
	procQueryPerformanceCounter.Call(uintptr(unsafe.Pointer(&c)))
	return c
}

func (p *windowsPlatform) frequency() int64 {
	return p.freq
}

func (p *windowsPlatform) keyDown(k host.Key) bool {
	r, _, _ := procGetAsyncKeyState.Call(uintptr(k))
	return r&0x8000 != 0
}

func (p *windowsPlatform) cursor() (int, int, error) {
	var pt point
	r, _, err := procGetCursorPos.Call(uintptr(unsafe.Pointer(&pt)))
	if r == 0 {
		return 0, 0, err
	}
	return int(pt.x), int(pt.y), nil
}

func send(in *input) error {
	r, _, err := procSendInput.Call(1, uintptr(unsafe.Pointer(in)), unsafe.Sizeof(*in))
	if r == 0 {
		return err
	}
	return nil
}

func (p *windowsPlatform) sendKey(k host.Key, down bool) error {
	var flags uint32
	switch k {
	case host.VK_LBUTTON:
		flags = mouseeventfLeftUp
		if down {
			flags = mouseeventfLeftDown
		}
	case host.VK_RBUTTON:
		flags = mouseeventfRightUp
		if down {
			flags = mouseeventfRightDown
		}
	case host.VK_MBUTTON:
		flags = mouseeventfMidUp
		if down {
			flags = mouseeventfMidDown
		}
	}
	if flags != 0 {
		return send(&input{typ: inputMouse, mi: mouseInput{flags: flags}})
	}

	in := input{typ: inputKeyboard}
	ki := (*keybdInput)(unsafe.Pointer(&in.mi))
	ki.vk = uint16(k)
	if !down {
		ki.flags = keyeventfKeyUp
	}
	return send(&in)
}

func (p *windowsPlatform) sendMove(dx, dy int) error {
	return send(&input{typ: inputMouse, mi: mouseInput{
		dx:    int32(dx),
		dy:    int32(dy),
		flags: mouseeventfMove,
	}})
}

func (p *windowsPlatform) sendWheel(delta float64) error {
	return send(&input{typ: inputMouse, mi: mouseInput{
		mouseData: uint32(int32(delta * wheelDelta)),
		flags:     mouseeventfWheel,
	}})
}

func (p *windowsPlatform) clip(clip bool) error {
	if !clip {
		r, _, err := procClipCursor.Call(0)
		if r == 0 {
			return err
		}
		return nil
	}

	hwnd, _, _ := procGetForegroundWindow.Call()
	var rc rect
	r, _, err := procGetWindowRect.Call(hwnd, uintptr(unsafe.Pointer(&rc)))
	if r == 0 {
		return err
	}
	r, _, err = procClipCursor.Call(uintptr(unsafe.Pointer(&rc)))
	if r == 0 {
		return err
	}
	return nil
}

func (p *windowsPlatform) sleep(d time.Duration) {
	time.Sleep(d)
}
