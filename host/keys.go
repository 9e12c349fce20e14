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
	"sort"
	"strconv"
	"strings"

	"github.com/jetsetilly/lockstep/curated"
)

// Key is a virtual key code. The values are the same as those used by the
// Windows API.
type Key int

// KeyEvent is a change of state of a key.
type KeyEvent struct {
	Key  Key
	Down bool
}

// MoveEvent is the relative pointer movement accumulated during one frame.
type MoveEvent struct {
	DX int
	DY int
}

// List of virtual key codes with names.
const (
	VK_LBUTTON  Key = 0x01
	VK_RBUTTON  Key = 0x02
	VK_MBUTTON  Key = 0x04
	VK_BACK     Key = 0x08
	VK_TAB      Key = 0x09
	VK_RETURN   Key = 0x0d
	VK_SHIFT    Key = 0x10
	VK_CONTROL  Key = 0x11
	VK_MENU     Key = 0x12
	VK_ESCAPE   Key = 0x1b
	VK_SPACE    Key = 0x20
	VK_LEFT     Key = 0x25
	VK_UP       Key = 0x26
	VK_RIGHT    Key = 0x27
	VK_DOWN     Key = 0x28
	VK_0        Key = 0x30
	VK_1        Key = 0x31
	VK_2        Key = 0x32
	VK_3        Key = 0x33
	VK_4        Key = 0x34
	VK_5        Key = 0x35
	VK_6        Key = 0x36
	VK_7        Key = 0x37
	VK_8        Key = 0x38
	VK_9        Key = 0x39
	VK_A        Key = 0x41
	VK_B        Key = 0x42
	VK_C        Key = 0x43
	VK_D        Key = 0x44
	VK_E        Key = 0x45
	VK_F        Key = 0x46
	VK_G        Key = 0x47
	VK_H        Key = 0x48
	VK_I        Key = 0x49
	VK_J        Key = 0x4a
	VK_K        Key = 0x4b
	VK_L        Key = 0x4c
	VK_M        Key = 0x4d
	VK_N        Key = 0x4e
	VK_O        Key = 0x4f
	VK_P        Key = 0x50
	VK_Q        Key = 0x51
	VK_R        Key = 0x52
	VK_S        Key = 0x53
	VK_T        Key = 0x54
	VK_U        Key = 0x55
	VK_V        Key = 0x56
	VK_W        Key = 0x57
	VK_X        Key = 0x58
	VK_Y        Key = 0x59
	VK_Z        Key = 0x5a
	VK_F1       Key = 0x70
	VK_F2       Key = 0x71
	VK_F3       Key = 0x72
	VK_F4       Key = 0x73
	VK_F5       Key = 0x74
	VK_F6       Key = 0x75
	VK_F7       Key = 0x76
	VK_F8       Key = 0x77
	VK_F9       Key = 0x78
	VK_F10      Key = 0x79
	VK_F11      Key = 0x7a
	VK_F12      Key = 0x7b
	VK_LSHIFT   Key = 0xa0
	VK_RSHIFT   Key = 0xa1
	VK_LCONTROL Key = 0xa2
	VK_RCONTROL Key = 0xa3
	VK_LMENU    Key = 0xa4
	VK_RMENU    Key = 0xa5
)

// KeyNames maps the name of a key, without the VK_ prefix, to its code.
var KeyNames = map[string]Key{
	"LBUTTON": VK_LBUTTON, "RBUTTON": VK_RBUTTON, "MBUTTON": VK_MBUTTON,
	"BACK": VK_BACK, "TAB": VK_TAB, "RETURN": VK_RETURN,
	"SHIFT": VK_SHIFT, "CONTROL": VK_CONTROL, "MENU": VK_MENU,
	"ESCAPE": VK_ESCAPE, "SPACE": VK_SPACE,
	"LEFT": VK_LEFT, "UP": VK_UP, "RIGHT": VK_RIGHT, "DOWN": VK_DOWN,
	"F1": VK_F1, "F2": VK_F2, "F3": VK_F3, "F4": VK_F4,
	"F5": VK_F5, "F6": VK_F6, "F7": VK_F7, "F8": VK_F8,
	"F9": VK_F9, "F10": VK_F10, "F11": VK_F11, "F12": VK_F12,
	"LSHIFT": VK_LSHIFT, "RSHIFT": VK_RSHIFT,
	"LCONTROL": VK_LCONTROL, "RCONTROL": VK_RCONTROL,
	"LMENU": VK_LMENU, "RMENU": VK_RMENU,
}

func init() {
	// digits and letters have the same code as their ASCII value
	for c := '0'; c <= '9'; c++ {
		KeyNames[string(c)] = Key(c)
	}
	for c := 'A'; c <= 'Z'; c++ {
		KeyNames[string(c)] = Key(c)
	}
}

// SortedKeyNames returns the names in KeyNames in alphabetical order.
func SortedKeyNames() []string {
	n := make([]string, 0, len(KeyNames))
	for k := range KeyNames {
		n = append(n, k)
	}
	sort.Strings(n)
	return n
}

func (k Key) String() string {
	for n, c := range KeyNames {
		if c == k {
			return n
		}
	}
	return fmt.Sprintf("%#02x", int(k))
}

// ParseKey converts a key name or number to a Key. Names are case
// insensitive and may include the VK_ prefix. Numbers can be decimal or
// hexadecimal with the 0x prefix.
func ParseKey(s string) (Key, error) {
	s = strings.ToUpper(strings.TrimSpace(s))
	if k, ok := KeyNames[strings.TrimPrefix(s, "VK_")]; ok {
		return k, nil
	}

	n, err := strconv.ParseInt(strings.Replace(s, "0X", "0x", 1), 0, 16)
	if err != nil || n <= 0 || n > 0xfe {
		return 0, curated.Errorf(UnknownKey, s)
	}
	return Key(n), nil
}
