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

package script

import (
	"bufio"
	"fmt"
	"io"
	"strings"
)

// the trailing comment that records the digest of a recording
const digestPrefix = "-- digest "

// Indent is the indentation of a line in a procedure body.
const Indent = "    "

// Scribe writes a script. Errors are latched: after the first error nothing
// more is written and the error is returned by Err() and by every
// subsequent call.
type Scribe struct {
	w   *bufio.Writer
	err error
}

// NewScribe is the preferred method of initialisation for the Scribe type.
func NewScribe(w io.Writer) *Scribe {
	return &Scribe{
		w: bufio.NewWriter(w),
	}
}

func (scr *Scribe) write(s string) error {
	if scr.err != nil {
		return scr.err
	}
	_, scr.err = scr.w.WriteString(s)
	return scr.err
}

// WriteHeader writes the two header lines and the import line. If there are
// no imports then no import line is written.
func (scr *Scribe) WriteHeader(imports ...string) error {
	scr.write(fmt.Sprintf("%s\n%s\n", headerID, headerVersion))
	if len(imports) > 0 {
		scr.write(fmt.Sprintf("import %s\n", strings.Join(imports, ", ")))
	}
	return scr.err
}

// WriteProcedure opens a new procedure. A blank line separates the procedure
// from what came before.
func (scr *Scribe) WriteProcedure(name string) error {
	return scr.write(fmt.Sprintf("\n%s:\n", name))
}

// WriteLine writes a line in the procedure body. The line is indented.
func (scr *Scribe) WriteLine(s string) error {
	return scr.write(Indent + s + "\n")
}

// WriteDigest writes the digest comment.
func (scr *Scribe) WriteDigest(digest string) error {
	return scr.WriteLine(digestPrefix + digest)
}

// Flush buffered lines to the underlying io.Writer.
func (scr *Scribe) Flush() error {
	if scr.err != nil {
		return scr.err
	}
	scr.err = scr.w.Flush()
	return scr.err
}

// Err returns the first error encountered by the Scribe.
func (scr *Scribe) Err() error {
	return scr.err
}
