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

package paths

import (
	"fmt"
	"strings"
	"time"
)

// UniqueFilename creates a filename that should not collide with any existing
// file, assuming a functioning clock. The function does not check.
//
// Used to generate names for recordings and console transcripts. Format of
// the returned string is:
//
//	prepend_label_YYYYMMDD_HHMMSS.ext
//
// The label part is omitted if the label is empty. The extension is omitted
// if ext is empty.
func UniqueFilename(prepend string, label string, ext string) string {
	return uniqueFilename(prepend, label, ext, time.Now())
}

func uniqueFilename(prepend string, label string, ext string, n time.Time) string {
	timestamp := n.Format("20060102_150405")

	var fn string
	if l := strings.TrimSpace(label); l != "" {
		fn = fmt.Sprintf("%s_%s_%s", prepend, l, timestamp)
	} else {
		fn = fmt.Sprintf("%s_%s", prepend, timestamp)
	}

	if ext != "" {
		fn = fmt.Sprintf("%s.%s", fn, strings.TrimPrefix(ext, "."))
	}

	return fn
}
