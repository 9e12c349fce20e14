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

package console

import (
	"bufio"
	"io"
	"os"
	"sort"
	"strings"

	"github.com/jetsetilly/lockstep/curated"
	"golang.org/x/term"
)

// Sentinel errors for terminal implementations.
const (
	NotATerminal = "console: not a terminal"
)

// Terminal defines the operations required by the console for input and
// output. Output is written with the io.Writer interface.
type Terminal interface {
	io.Writer

	// ReadLine returns the next line of input without the line ending.
	// Returns io.EOF at the end of input.
	ReadLine(prompt string) (string, error)
}

// PlainTerminal reads lines from an io.Reader. It keeps the terminal in
// whatever mode it started, which is probably cooked mode.
type PlainTerminal struct {
	input  *bufio.Reader
	output io.Writer

	// write the prompt to the output before reading. useful when the input
	// is a real terminal
	ShowPrompt bool
}

// NewPlainTerminal is the preferred method of initialisation for the
// PlainTerminal type.
func NewPlainTerminal(input io.Reader, output io.Writer) *PlainTerminal {
	return &PlainTerminal{
		input:  bufio.NewReader(input),
		output: output,
	}
}

// Write implements the io.Writer interface.
func (pt *PlainTerminal) Write(p []byte) (int, error) {
	return pt.output.Write(p)
}

// ReadLine implements the Terminal interface.
func (pt *PlainTerminal) ReadLine(prompt string) (string, error) {
	if pt.ShowPrompt {
		io.WriteString(pt.output, prompt)
	}

	s, err := pt.input.ReadString('\n')
	if err != nil {
		// the final line may not have a line ending
		if err == io.EOF && s != "" {
			return strings.TrimRight(s, "\r\n"), nil
		}
		return "", err
	}

	return strings.TrimRight(s, "\r\n"), nil
}

// RawTerminal puts the terminal into raw mode and provides line editing,
// history and completion of names.
type RawTerminal struct {
	fd    int
	state *term.State
	term  *term.Terminal

	names []string
}

// NewRawTerminal is the preferred method of initialisation for the
// RawTerminal type. Returns a NotATerminal error if the input is not a
// terminal.
//
// CleanUp() must be called to restore the terminal.
func NewRawTerminal(input *os.File, output io.Writer) (*RawTerminal, error) {
	fd := int(input.Fd())
	if !term.IsTerminal(fd) {
		return nil, curated.Errorf(NotATerminal)
	}

	state, err := term.MakeRaw(fd)
	if err != nil {
		return nil, curated.Errorf("console: %v", err)
	}

	rt := &RawTerminal{
		fd:    fd,
		state: state,
		term: term.NewTerminal(struct {
			io.Reader
			io.Writer
		}{input, output}, ""),
	}
	rt.term.AutoCompleteCallback = rt.complete

	if w, h, err := term.GetSize(fd); err == nil {
		rt.term.SetSize(w, h)
	}

	return rt, nil
}

// CleanUp restores the terminal to the state it was in before
// NewRawTerminal() was called.
func (rt *RawTerminal) CleanUp() {
	term.Restore(rt.fd, rt.state)
}

// SetNames sets the list of names used for tab completion.
func (rt *RawTerminal) SetNames(names []string) {
	rt.names = append(rt.names[:0], names...)
	sort.Strings(rt.names)
}

// Write implements the io.Writer interface. Line endings are converted for
// the raw terminal.
func (rt *RawTerminal) Write(p []byte) (int, error) {
	return rt.term.Write(p)
}

// ReadLine implements the Terminal interface.
func (rt *RawTerminal) ReadLine(prompt string) (string, error) {
	rt.term.SetPrompt(prompt)
	return rt.term.ReadLine()
}

// complete the word immediately before the cursor
func (rt *RawTerminal) complete(line string, pos int, key rune) (string, int, bool) {
	if key != '\t' {
		return "", 0, false
	}

	start := pos
	for start > 0 && isNameByte(line[start-1]) {
		start--
	}
	word := line[start:pos]
	if word == "" {
		return "", 0, false
	}

	for _, n := range rt.names {
		if strings.HasPrefix(n, word) && n != word {
			s := line[:start] + n + line[pos:]
			return s, start + len(n), true
		}
	}

	return "", 0, false
}

func isNameByte(c byte) bool {
	return c == '_' || (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z') || (c >= '0' && c <= '9')
}
