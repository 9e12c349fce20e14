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

// Package console implements an interactive session in which statements are
// typed one at a time and evaluated against a running host.
//
// Every input line takes one frame. Before a statement
// is echoed the console writes the frame boundaries that have elapsed since
// the previous statement: a single yield for one frame or a call to wait()
// for more than one. The echoed lines can therefore be pasted into a
// procedure body to reproduce the session.
//
// A statement beginning with "yield from" delegates to the task it
// evaluates to and is echoed when the task completes. The result of a
// statement, if it is not nil, is appended to the echo as a comment.
//
// Errors do not end the session. They are written as comments and, like
// any other line, take one frame. A task that fails after a number of frames
// leaves those frames to be caught up by the next statement.
//
// Input comes from a Terminal. PlainTerminal reads lines from any
// io.Reader. RawTerminal uses golang.org/x/term for line editing on a real
// terminal.
package console
