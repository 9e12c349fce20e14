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

// Package test contains helper functions that remove common boilerplate from
// tests.
//
// The Expect functions report a test failure but allow the test to continue.
// The Demand functions end the test immediately. Demand should be used when
// the value being tested is needed by later parts of the test, for example
// the length of two slices before they are iterated over in unison.
//
// ExpectSuccess() and ExpectFailure() interpret a value according to its type:
//
//	bool  -> true is success
//	error -> nil is success
//	nil   -> success
//
// The nil case follows from how errors work in Go. A nil interface value is
// most likely an error that didn't happen.
//
// The Writer type implements io.Writer and is used to capture output. The
// RingWriter and CappedWriter types are writers that retain only the most
// recent or the earliest output respectively.
//
// All functions accept an optional list of tags that are printed in the
// failure message. Useful for identifying which iteration of a table test
// failed.
package test
