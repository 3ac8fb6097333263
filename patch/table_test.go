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

package patch_test

import (
	"strings"
	"testing"

	"github.com/limitpatch/limitpatch/curated"
	"github.com/limitpatch/limitpatch/patch"
	"github.com/limitpatch/limitpatch/test"
)

func TestValidate(t *testing.T) {
	tbl := smallTable(patch.Set{
		Name: "limit",
		Patches: []patch.Patch{
			patch.Word(0x10, 0x2340, 0x2740),
			patch.Byte(0x11, 0x23, 0x27),
			patch.Relocate(0x20, 0x00734328, "second", 0x3c),
		},
	})

	defects, warnings := tbl.Validate()
	test.ExpectEquality(t, len(defects), 0)
	test.DemandEquality(t, len(warnings), 1)
	test.ExpectSuccess(t, curated.Is(warnings[0], patch.OverlappingPatches))
}

func TestValidateDefects(t *testing.T) {
	tbl := smallTable(patch.Set{
		Name: "limit",
		Patches: []patch.Patch{
			patch.Relocate(0x20, 0x00734328, "missing", 0),
			patch.Relocate(0x30, 0x00734328, "second", 0x40),
			patch.Direct{Addr: 0x40, Size: patch.Width8, Orig: 0x100, Replacement: 0x01},
			patch.Direct{Addr: 0x50, Size: 3},
		},
	})

	// a second profile that can never be told apart from the first
	dup := tbl.Profiles[0]
	dup.Name = "duplicate"
	tbl.Profiles = append(tbl.Profiles, dup)

	defects, _ := tbl.Validate()

	var unknown, outside, width, invalid, identity int
	for _, d := range defects {
		switch {
		case curated.Is(d, patch.UnknownRegion):
			unknown++
		case curated.Is(d, patch.OffsetOutOfRegion):
			outside++
		case curated.Is(d, patch.WidthMismatch):
			width++
		case curated.Is(d, patch.InvalidWidth):
			invalid++
		case curated.Is(d, patch.DuplicateIdentity):
			identity++
		}
	}

	// every patch defect is reported once per profile
	test.ExpectEquality(t, unknown, 2)
	test.ExpectEquality(t, outside, 2)
	test.ExpectEquality(t, width, 2)
	test.ExpectEquality(t, invalid, 2)
	test.ExpectEquality(t, identity, 1)
	test.ExpectEquality(t, len(defects), 9)

	_, ok := tbl.Profile("duplicate")
	test.ExpectSuccess(t, ok)
}

func TestValidateOverlapSpan(t *testing.T) {
	// the dword covers both of the following bytes even though only the first
	// byte is next to it by address
	tbl := smallTable(patch.Set{
		Name: "limit",
		Patches: []patch.Patch{
			patch.Dword(0x10, 0x00, 0x01),
			patch.Byte(0x11, 0x00, 0x01),
			patch.Byte(0x12, 0x00, 0x01),
			patch.Byte(0x14, 0x00, 0x01),
		},
	})

	_, warnings := tbl.Validate()
	test.DemandEquality(t, len(warnings), 2)
	for _, w := range warnings {
		test.ExpectSuccess(t, curated.Is(w, patch.OverlappingPatches))
	}
	test.ExpectSuccess(t, strings.HasSuffix(warnings[1].Error(), "0x000010 and 0x000012"))
}

func TestValidatePointers(t *testing.T) {
	tbl := smallTable(patch.Set{
		Name: "limit",
		Patches: []patch.Patch{
			&patch.Relocating{Addr: 0x20, Orig: 0x00734328, Region: "missing"},
			&patch.Direct{Addr: 0x40, Size: patch.Width8, Orig: 0x100, Replacement: 0x01},
		},
	})

	defects, _ := tbl.Validate()
	test.DemandEquality(t, len(defects), 2)
	test.ExpectSuccess(t, curated.Is(defects[0], patch.UnknownRegion))
	test.ExpectSuccess(t, curated.Is(defects[1], patch.WidthMismatch))
}
