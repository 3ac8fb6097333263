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

// Package patch describes modifications to a compiled executable and applies
// them to an image of that executable.
//
// The smallest unit is the Patch. A Patch is either Direct, replacing a value
// of one, two or four bytes with a literal value of the same width, or
// Relocating, replacing a four byte pointer with a pointer into the extended
// section (see the layout package). Patches are grouped into a named Set and
// sets are grouped into a Profile. A Profile describes exactly one compiled
// variant of the executable, identified by a signature value at a known
// address.
//
// The Table type is the complete, immutable description of all profiles and
// the layout of the extended section. It should be constructed once and can
// then be shared freely.
//
// The Engine type uses the table to patch an Image. The Identify() function
// selects the profile that matches the image. The Apply() function then
// verifies and writes every patch in the profile. Every attempted patch
// results in a Result and the results are collected in a Report:
//
//	eng := patch.NewEngine(tbl)
//	rep, err := eng.Run(img, tbl.Profiles)
//	if err != nil {
//		// the image was not recognised. nothing has been written
//	}
//	rep.WriteText(os.Stdout)
//
// The value of a relocating patch is resolved only when the patch is about to
// be applied. The resolved value is the address of the extended section in the
// target, plus the start of the region in the layout, plus the offset
// recorded in the patch. The address of the extended section comes from the
// image if it implements the Reserver interface or from the SectionBase field
// of the Engine otherwise.
package patch
