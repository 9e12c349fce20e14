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

// Package eval is the sandbox in which script lines and console input are
// evaluated. The language is Lua 5.2 but only the base, string, math, table
// and bit32 libraries are available. The functions that load code from disk
// or from strings are removed and there is no access to the operating system
// except through the functions bound with Bind().
//
// Values crossing between the namespace and Go are converted as follows:
//
//	nil		nil
//	boolean		bool
//	number		float64
//	string		string
//	sequence	[]Value
//	other table	map[string]Value
//	task		task.Task
//	function	Function
//
// Tasks are opaque values in the namespace. They are created by Go functions
// and can be stored, passed around and delegated to by a script.
//
// Assignments create global bindings. A local variable only lasts for the
// line in which it is declared.
package eval
