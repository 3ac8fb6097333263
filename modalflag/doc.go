// This file is part of Limitpatch.
//
// Limitpatch is free software: you can redistribute it and/or modify
// it under the terms of the GNU General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// Limitpatch is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU General Public License for more details.
//
// You should have received a copy of the GNU General Public License
// along with Limitpatch.  If not, see <https://www.gnu.org/licenses/>.

// Package modalflag is a wrapper for the flag package in the Go standard
// library. It handles program modes and allows different flags for each mode.
//
// Arguments are given to NewArgs() and then parsed with Parse(). If sub-modes
// have been added with AddSubModes() then Parse() checks whether the first
// argument after the flags names one of them. If it does, the mode is added to
// the mode path and the argument is consumed. If it does not, the first
// sub-mode is the default.
//
//	md := modalflag.Modes{Output: os.Stdout}
//	md.NewArgs(os.Args[1:])
//	md.AddSubModes("apply", "verify", "revert")
//	if p, err := md.Parse(); p != modalflag.ParseContinue {
//		return err
//	}
//
// Once the mode has been decided a new set of flags can be added for that mode
// with NewMode() and parsed with a second call to Parse():
//
//	switch md.Mode() {
//	case "APPLY":
//		md.NewMode()
//		output := md.AddString("o", "", "output file")
//		section := md.AddAddress("section", 0, "address of extended section")
//		...
//	}
//
// Flags given before the mode selector are not recognised by the first call
// to Parse() if no flags have been added at that point. In that case the
// default mode is selected and the flags are parsed by the second call to
// Parse().
//
// Mode comparisons are case insensitive and modes are always reported in upper
// case.
package modalflag
