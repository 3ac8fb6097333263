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

import (
	"github.com/limitpatch/limitpatch/layout"
	"github.com/limitpatch/limitpatch/patch"
)

// the identity value found in every supported executable. the bytes spell
// "Applicat"
const applicationID = 0x746163696c707041

// New creates the patch table. The table should be created once and shared.
func New() patch.Table {
	return patch.Table{
		Layout: layout.Compute(Regions()),
		Profiles: []patch.Profile{
			{
				Name:       "Battlefront SWBFspy",
				IDAddress:  0x29c978,
				ExpectedID: applicationID,
				Sets: []patch.Set{
					redMemoryHeap(),
					soundLayerLimit(),
					dlcMissionLimit(),
					spawnScreen(),
				},
			},
			{
				Name:       "Battlefront SPTest",
				IDAddress:  0x202164,
				ExpectedID: applicationID,
				Sets: []patch.Set{
					redMemoryHeap(),
					soundLayerLimit(),
					sptestDLCMissionLimit(),
					disabled(spawnScreen()),
				},
			},
		},
	}
}

func disabled(s patch.Set) patch.Set {
	s.Disabled = true
	return s
}

func redMemoryHeap() patch.Set {
	return patch.Set{
		Name:     "RedMemory Heap Extensions",
		Disabled: true,
		Patches: []patch.Patch{
			patch.Dword(0x2165b1, 0x4000000, 0x10000000).Describe("malloc call arg"),
			patch.Dword(0x2165c7, 0x4000000, 0x10000000).Describe("malloc'd block end pointer"),
		},
	}
}

func soundLayerLimit() patch.Set {
	return patch.Set{
		Name:     "SoundParameterized Layer Limit Extension",
		Disabled: true,
		Patches: []patch.Patch{
			patch.Dword(0x3e170c, 0xa0, 0x2000),
		},
	}
}
