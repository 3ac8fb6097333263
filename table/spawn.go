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

// spawnScreen raises the number of unit slots on the spawn screen from five
// to ten. The slot arrays of the SpawnDisplay object are moved beyond the end
// of the object, which is enlarged from 0x2340 to 0x2740 bytes.
func spawnScreen() patch.Set {
	return patch.Set{
		Name: "Spawn Screen Fix",
		Patches: []patch.Patch{
			// slot count
			patch.Dword(0x1a94b2, 0x0f05ff83, 0x0f0aff83).Describe("SpawnDisplay::Initialize"),
			patch.Dword(0x1a9985, 0x7c05ff83, 0x7c0aff83).Describe("SpawnDisplay::UpdateInput"),

			// object size
			patch.Word(0x1a7e47, 0x2340, 0x2740).Describe("SpawnDisplay::Create"),

			patch.Word(0x1a91c1, 0x0590, 0x2350).Describe("SpawnDisplay::Initialize"),
			patch.Word(0x1a97fb, 0x0580, 0x2340).Describe("SpawnDisplay::UpdateInput"),
			patch.Word(0x1a9856, 0x0590, 0x2350).Describe("SpawnDisplay::UpdateInput"),
			patch.Word(0x1a987b, 0x0594, 0x2354).Describe("SpawnDisplay::UpdateInput"),

			patch.Word(0x1a8d7c, 0x0588, 0x2348).Describe("SpawnDisplay::Show"),
			patch.Word(0x1a8d85, 0x0580, 0x2340).Describe("SpawnDisplay::Show"),
			patch.Word(0x1a8d8e, 0x0590, 0x2350).Describe("SpawnDisplay::Show"),
			patch.Word(0x1a8d97, 0x058c, 0x234c).Describe("SpawnDisplay::Show"),
			patch.Word(0x1a8da0, 0x0584, 0x2344).Describe("SpawnDisplay::Show"),
			patch.Word(0x1a8da9, 0x0594, 0x2354).Describe("SpawnDisplay::Show"),

			patch.Dword(0x1a86bb, 0x7d05f983, 0x7d0af983).Describe("SpawnDisplay::SetupSlots"),
			patch.Byte(0x1a86c1, 0x05, 0x0a).Describe("SpawnDisplay::SetupSlots"),
			patch.Dword(0x1a86f3, 0x7c050000, 0x7c0a0000).Describe("SpawnDisplay::SetupSlots"),
			patch.Dword(0x1a8690, 0x0914468b, 0x0928468b).Describe("SpawnDisplay::SetupSlots"),
			patch.Dword(0x1a8696, 0x093c468b, 0x0950468b).Describe("SpawnDisplay::SetupSlots"),

			// slot array
			patch.Word(0x1a8008, 0x0530, 0x2500).Describe("SpawnDisplay::UpdateObjectText"),
			patch.Word(0x1a8646, 0x0530, 0x2500).Describe("SpawnDisplay::SetupSlots"),
			patch.Word(0x1a870b, 0x0530, 0x2500).Describe("SpawnDisplay::SetupSlots"),
			patch.Word(0x1a9333, 0x0530, 0x2500).Describe("SpawnDisplay::Initialize"),
			patch.Word(0x1a9569, 0x0530, 0x2500).Describe("SpawnDisplay::Initialize"),
			patch.Word(0x1a98c2, 0x0530, 0x2500).Describe("SpawnDisplay::UpdateInput"),
			patch.Word(0x1a9919, 0x0530, 0x2500).Describe("SpawnDisplay::UpdateInput"),
			patch.Word(0x1a9a3d, 0x0530, 0x2500).Describe("SpawnDisplay::UpdateInput"),
			patch.Word(0x1a9a19, 0x0530, 0x2500).Describe("SpawnDisplay::UpdateInput"),

			patch.Dword(0x1a863e, 0xfffffad0, 0xffffdb00).Describe("SpawnDisplay::SetupSlots"),

			// slot info array
			patch.Word(0x1a85a4, 0x0544, 0x2528).Describe("SpawnDisplay::SetSlotInfo"),
			patch.Word(0x1a85ae, 0x0544, 0x2528).Describe("SpawnDisplay::SetSlotInfo"),
			patch.Word(0x1a85c5, 0x0544, 0x2528).Describe("SpawnDisplay::SetSlotInfo"),
			patch.Word(0x1a86c8, 0x0544, 0x2528).Describe("SpawnDisplay::SetupSlots"),
			patch.Word(0x1a871d, 0x0544, 0x2528).Describe("SpawnDisplay::SetSlotInfo"),
			patch.Word(0x1a98d4, 0x0544, 0x2528).Describe("SpawnDisplay::UpdateInput"),
			patch.Word(0x1a9925, 0x0544, 0x2528).Describe("SpawnDisplay::UpdateInput"),
			patch.Word(0x1a9a2b, 0x0544, 0x2528).Describe("SpawnDisplay::UpdateInput"),
			patch.Word(0x1a9a4a, 0x0544, 0x2528).Describe("SpawnDisplay::UpdateInput"),

			// listed twice in the source table. the second attempt always
			// fails verification
			patch.Word(0x1a9925, 0x0544, 0x2528).Describe("SpawnDisplay::UpdateInput"),

			patch.Dword(0x1a936b, 0xeb146b89, 0xeb286b89).Describe("SpawnDisplay::Initialize"),
			patch.Dword(0x1a86d3, 0x21ec488b, 0x21d8488b).Describe("SpawnDisplay::SetupSlots"),
			patch.Dword(0x1a9499, 0xe83c6b89, 0xe8506b89).Describe("SpawnDisplay::Initialize"),
			patch.Word(0x1a9937, 0x056c, 0x2550).Describe("SpawnDisplay::UpdateInput"),
		},
	}
}
