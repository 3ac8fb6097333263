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

// Package table is the patch table for the supported Battlefront executables.
//
// The New() function creates the table. The table is constructed from
// constant data and there is no reason to create more than one.
//
// Sets that have not been verified against the executable, or which are known
// to be incomplete, are included in the table but are disabled. They can be
// enabled by name with the Enable field of the patch.Engine type.
package table
