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

// Package script implements the lockstep script format. A script file begins
// with two header lines, the format identifier and the version:
//
//	lockstepscript
//	v1
//
// followed by import lines and procedures. An import line names the builtins
// that the script uses, or "*" for all builtins:
//
//	import set_key, set_frame_time, wait
//
// A procedure begins with its name, and optional parameters, followed by a
// colon at the start of a line. The body of the procedure is indented:
//
//	main:
//	    set_frame_time(idiv(FREQUENCY, 60))
//	    yield from wait(8)
//	    set_key(VK_F, true)
//	    yield
//	    set_key(VK_F, false)
//
// The procedure called main is the entry point. Comments begin with "--".
//
// The following lines in a procedure body have special meaning:
//
//	yield				one frame elapses
//	yield from <expr>		delegate to the task
//	<name> = yield from <expr>	delegate and bind the result
//	assert <expr>			stop the script if false
//	while <expr> ... end		loop while true
//	if <expr> ... else ... end	conditional
//	repeat <expr> ... end		loop a fixed number of times
//	return [<expr>]			end the procedure
//
// Every other line is evaluated with the eval package. A single line Lua
// block, such as "for i = 1, 3 do x = x + i end", is also passed to the
// evaluator.
//
// Procedures are bound as functions that return a task. A script delegates
// to a procedure with "yield from intro()". Parameters of a procedure are
// bound as global values when the procedure starts.
//
// Any error while running a script is fatal. The error message includes the
// line number of the line that failed.
//
// The Scribe type writes scripts. It is used by the recorder and by the
// console.
package script
