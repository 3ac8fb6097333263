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

package table

import "github.com/limitpatch/limitpatch/layout"

// Names of the regions in the extended section.
const (
	DLCMissions = "dlc_missions"
	MatrixPool  = "matrix_pool"
	HiRezPatch  = "hirez_patch"
)

// DLC mission table. The game has room for 0x32 missions of 0x110 bytes each.
// The relocated table has room for DLCMissionLimit missions.
const (
	DLCMissionSize  = 0x110
	DLCMissionLimit = 0x1000
)

// Fixed size regions.
const (
	MatrixPoolSize = 0x30d400
	HiRezPatchSize = 0x1000
)

// Regions of the extended section in the order they are laid out.
func Regions() []layout.Region {
	return []layout.Region{
		{Name: DLCMissions, Size: DLCMissionSize * DLCMissionLimit},
		{Name: MatrixPool, Size: MatrixPoolSize},
		{Name: HiRezPatch, Size: HiRezPatchSize},
	}
}
