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

// Package curated is the error type used throughout Lockstep.
//
// Errors are created with Errorf(). Unlike fmt.Errorf() the first argument is
// thought of as a pattern. The pattern identifies the error and can be tested
// for with Is() and Has():
//
//	const NotAScript = "script: %s: not a lockstep script"
//
//	err := curated.Errorf(NotAScript, filename)
//	if curated.Is(err, NotAScript) {
//		...
//	}
//
// Is() only looks at the outermost error. Has() looks down the chain of
// wrapped curated errors:
//
//	f := curated.Errorf("play: %v", err)
//	curated.Is(f, NotAScript)  // false
//	curated.Has(f, NotAScript) // true
//
// Patterns that are tested for by other packages are exported as constants
// from the package that creates them. These are the sentinel errors of the
// project.
//
// Message chains are parts separated by ": ". When an error is wrapped by a
// pattern with the same leading part, the duplicate is removed. So:
//
//	curated.Errorf("script: %v", curated.Errorf("script: line 10: bad"))
//
// prints as "script: line 10: bad".
//
// Curated errors implement Unwrap() so the standard library errors.Is() and
// errors.As() functions also work with values wrapped by a curated error.
package curated
