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

// Package layout plans the extended section. The extended section is a block
// of memory that is not present in the original executable and which is used
// to hold enlarged versions of data structures that are of fixed size in the
// original.
//
// The section is divided into named regions. Each region has a fixed size and
// regions are packed contiguously, in the order they are declared, from
// offset zero. Relocating patches refer to a region by name and to an offset
// within that region. The offset of the region in the section is only added
// when the patch is resolved, which means that regions can be resized or
// reordered without editing any patch.
package layout
