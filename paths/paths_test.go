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
	"path/filepath"
	"testing"
	"time"

	"github.com/jetsetilly/lockstep/test"
)

func TestPaths(t *testing.T) {
	dir := t.TempDir()
	SetBase(dir)
	defer SetBase("")

	pth, err := ResourcePath("foo/bar", "baz")
	test.ExpectSuccess(t, err)
	test.ExpectEquality(t, pth, filepath.Join(dir, "foo", "bar", "baz"))

	pth, err = ResourcePath("foo/bar", "")
	test.ExpectSuccess(t, err)
	test.ExpectEquality(t, pth, filepath.Join(dir, "foo", "bar"))

	pth, err = ResourcePath("", "baz")
	test.ExpectSuccess(t, err)
	test.ExpectEquality(t, pth, filepath.Join(dir, "baz"))

	pth, err = ResourcePath("", "")
	test.ExpectSuccess(t, err)
	test.ExpectEquality(t, pth, dir)
}

func TestUniqueFilename(t *testing.T) {
	n := time.Date(2026, 10, 15, 9, 8, 7, 0, time.UTC)
	test.ExpectEquality(t, uniqueFilename("recording", "", "lss", n), "recording_20261015_090807.lss")
	test.ExpectEquality(t, uniqueFilename("recording", " intro ", ".lss", n), "recording_intro_20261015_090807.lss")
	test.ExpectEquality(t, uniqueFilename("console", "", "", n), "console_20261015_090807")
}
