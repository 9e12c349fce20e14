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

// Package task is the suspension runtime. A script is a Task: a step function
// that runs until its next suspension point and reports how it stopped.
//
// A Task can stop in one of three ways. It can Yield(), in which case exactly
// one frame will elapse before it is stepped again. It can Return() a value,
// in which case it is complete. Or it can Delegate() to a sub-task, in which
// case the sub-task is run to completion, forwarding all of its suspensions,
// and the Task is resumed with the sub-task's result.
//
// The Driver holds the delegation stack. Run() pairs a Driver with the host,
// advancing one frame for every suspension.
//
// Errors returned by a Task are fatal. The driver stops stepping and no
// further frames are advanced. Use Assert() to create an assertion error.
package task
