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

// Package modalflag is a wrapper for the flag package in the Go standard
// library. It adds the concept of modes: the first non-flag argument selects a
// mode, and the remaining arguments are parsed again with the flags for that
// mode. Modes can be nested to any depth.
//
// For example, the command line:
//
//	lockstep -log RECORD -host sim recording.lss
//
// is parsed in two steps. The first step knows about the -log flag and the
// sub-modes PLAY, RECORD, CONSOLE, TURN and VERIFY:
//
//	md := modalflag.Modes{Output: os.Stdout}
//	md.NewArgs(os.Args[1:])
//	log := md.AddBool("log", false, "echo log to stdout")
//	md.AddSubModes("PLAY", "RECORD", "CONSOLE", "TURN", "VERIFY")
//
//	switch r, err := md.Parse(); r {
//	case modalflag.ParseHelp:
//		return nil
//	case modalflag.ParseError:
//		return err
//	}
//
// After Parse() the Mode() function returns "RECORD". The caller then begins
// a new mode and adds the flags for that mode:
//
//	md.NewMode()
//	host := md.AddString("host", "sim", "host type")
//	md.Parse()
//
//	filename := md.GetArg(0)
//
// The first sub-mode in the list is the default. If the first argument is
// not a recognised sub-mode then the default is selected and the argument is
// left for the next call to Parse(). Sub-modes are not case sensitive.
//
// Help is printed automatically when the -help flag is given, together with
// the list of sub-modes and any text given to AdditionalHelp().
package modalflag
