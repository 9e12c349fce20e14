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

// Package sequence contains tasks that wait or run other tasks in a
// particular order. They are the building blocks of scripts written in Go
// and are used to implement the wait() builtin of the script language.
//
// None of the tasks in this package interact with the host. The Wait() task
// in particular suspends the required number of times and does nothing else.
package sequence
