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

import "github.com/limitpatch/limitpatch/patch"

// dlcMissionLimit removes the limit on the number of downloadable missions
// and moves the mission table to the extended section.
//
// the mission table in the SWBFspy executable begins at 0x734328. offsets
// into the relocated table are the distance of the original pointer from that
// address.
func dlcMissionLimit() patch.Set {
	return patch.Set{
		Name: "DLC Mission Limit Extension",
		Patches: []patch.Patch{
			// disable the limit check. the second patch has a two byte
			// original value and a four byte replacement in the source
			// table. the original value is zero extended and verification
			// will refuse the patch if the upper bytes differ
			patch.Dword(0x9d52d, 0x0f32f883, 0x90909090).Describe("AddDownloadableContent"),
			patch.Dword(0x9d531, 0x8c8d, 0x90909090).Describe("AddDownloadableContent"),
			patch.Dword(0x9d535, 0x4c8d5300, 0x4c8d5390).Describe("AddDownloadableContent"),

			// move the table out to the extended section
			patch.Relocate(0x9d550, 0x734328, DLCMissions, 0).Describe("AddDownloadableContent"),
			patch.Relocate(0x9d573, 0x73432c, DLCMissions, 0x73432c-0x734328).Describe("AddDownloadableContent"),
			patch.Relocate(0x9d579, 0x734330, DLCMissions, 0x734330-0x734328).Describe("AddDownloadableContent"),
			patch.Relocate(0x9d57e, 0x737848, DLCMissions, 0x737848-0x734328).Describe("AddDownloadableContent"),
			patch.Relocate(0x9d5a2, 0x734433, DLCMissions, 0x734433-0x734328).Describe("AddDownloadableContent"),
			patch.Relocate(0x9d5ae, 0x734434, DLCMissions, 0x734434-0x734328).Describe("AddDownloadableContent"),
			patch.Relocate(0x9d40c, 0x734328, DLCMissions, 0).Describe("SetCurrentMap"),
			patch.Relocate(0x9d44c, 0x73432c, DLCMissions, 0x73432c-0x734328).Describe("SetCurrentMission"),
			patch.Relocate(0x9d490, 0x734330, DLCMissions, 0x734330-0x734328).Describe("GetContentDirectory"),
			patch.Relocate(0x9d4d2, 0x73432c, DLCMissions, 0x73432c-0x734328).Describe("IsMissionDownloaded"),
			patch.Relocate(0x9d37a, 0x737848, DLCMissions, 0x737848-0x734328).Describe("AddMissionCommon"),
		},
	}
}

// sptestDLCMissionLimit is the same fix for the SPTest executable. It has not
// been verified against the executable and is disabled.
//
// the mission table in the SPTest executable begins at 0x67aef8.
func sptestDLCMissionLimit() patch.Set {
	return patch.Set{
		Name:     "DLC Mission Limit Extension",
		Disabled: true,
		Patches: []patch.Patch{
			patch.Relocate(0xd8a8, 0x67aef8, DLCMissions, 0).Describe("AddDownloadableContent"),
			patch.Relocate(0xd8ca, 0x67aefc, DLCMissions, 0x67aefc-0x67aef8).Describe("AddDownloadableContent"),
			patch.Relocate(0xd8d0, 0x67af00, DLCMissions, 0x67af00-0x67aef8).Describe("AddDownloadableContent"),
			patch.Relocate(0xd8d5, 0x67e418, DLCMissions, 0x67e418-0x67aef8).Describe("AddDownloadableContent"),
			patch.Relocate(0xd8f5, 0x67b003, DLCMissions, 0x67b003-0x67aef8).Describe("AddDownloadableContent"),
			patch.Relocate(0xd900, 0x67b004, DLCMissions, 0x67b004-0x67aef8).Describe("AddDownloadableContent"),
			patch.Relocate(0xd7af, 0x67aef8, DLCMissions, 0).Describe("SetCurrentMap"),
			patch.Relocate(0xd7e4, 0x67aefc, DLCMissions, 0x67aefc-0x67aef8).Describe("SetCurrentMission"),
			patch.Relocate(0xd822, 0x67af00, DLCMissions, 0x67af00-0x67aef8).Describe("GetContentDirectory"),
			patch.Relocate(0xd746, 0x67e418, DLCMissions, 0x67e418-0x67aef8).Describe("AddMissionCommon"),
		},
	}
}
