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

// Package host defines the Host Control Interface. A host is the process
// being driven: it advances in discrete frames and accepts injected input
// between frames.
//
// The interface is split into smaller interfaces by concern. The Host
// interface is the union of all of them and is what the rest of the project
// asks for. The sim package implements a deterministic host suitable for
// testing and the desktop package drives a real window on Windows.
//
// The Call type is the canonical textual form of a host-mutating operation.
// It is the form used when serializing a recording and so the String() form
// of a Call must be valid script text.
package host
