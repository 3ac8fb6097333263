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
	"testing"

	"github.com/limitpatch/limitpatch/curated"
	"github.com/limitpatch/limitpatch/patch"
	"github.com/limitpatch/limitpatch/target"
	"github.com/limitpatch/limitpatch/test"
)

func smallTable(sets ...patch.Set) patch.Table {
	return patch.Table{
		Layout:   smallLayout(),
		Profiles: []patch.Profile{smallProfile(sets...)},
	}
}

func TestApply(t *testing.T) {
	tbl := smallTable(patch.Set{
		Name:    "limit",
		Patches: []patch.Patch{patch.Byte(0x10, 0x05, 0x0a)},
	})

	b := smallImage()
	b[0x10] = 0x05
	img := target.NewMemory(b)

	eng := patch.NewEngine(tbl)
	r, err := eng.Run(img, tbl.Profiles)
	test.DemandSuccess(t, err)
	test.ExpectSuccess(t, r.Complete())
	test.ExpectEquality(t, r.Count(patch.Applied), 1)
	test.ExpectEquality(t, img.Bytes()[0x10], 0x0a)

	// applying again fails verification and the image is unchanged
	r, err = eng.Run(img, tbl.Profiles)
	test.DemandSuccess(t, err)
	test.ExpectFailure(t, r.Complete())
	test.DemandEquality(t, len(r.Results), 1)
	test.ExpectEquality(t, r.Results[0].Outcome, patch.Mismatch)
	test.ExpectSuccess(t, curated.Is(r.Results[0].Err, patch.VerificationMismatch))
	test.ExpectEquality(t, img.Bytes()[0x10], 0x0a)
}

func TestApplyMismatch(t *testing.T) {
	tbl := smallTable(patch.Set{
		Name: "limit",
		Patches: []patch.Patch{
			patch.Word(0x10, 0x2340, 0x2740),
			patch.Byte(0x20, 0x05, 0x0a),
		},
	})

	b := smallImage()
	b[0x10] = 0x40
	b[0x11] = 0x24
	b[0x20] = 0x05
	img := target.NewMemory(b)

	r, err := patch.NewEngine(tbl).Apply(img, tbl.Profiles[0])
	test.DemandSuccess(t, err)
	test.DemandEquality(t, len(r.Results), 2)

	// the first patch fails but the second patch is still applied
	test.ExpectEquality(t, r.Results[0].Outcome, patch.Mismatch)
	test.ExpectEquality(t, string(r.Results[0].Found), string([]byte{0x40, 0x24}))
	test.ExpectEquality(t, r.Results[1].Outcome, patch.Applied)

	test.ExpectEquality(t, img.Bytes()[0x10], 0x40)
	test.ExpectEquality(t, img.Bytes()[0x11], 0x24)
	test.ExpectEquality(t, img.Bytes()[0x20], 0x0a)
}

func TestApplyUnrecognized(t *testing.T) {
	tbl := smallTable(patch.Set{
		Name:    "limit",
		Patches: []patch.Patch{patch.Byte(0x10, 0x00, 0x0a)},
	})

	img := target.NewMemory(make([]byte, 0x200))

	_, err := patch.NewEngine(tbl).Run(img, tbl.Profiles)
	test.ExpectSuccess(t, curated.Is(err, patch.UnrecognizedImage))
	test.ExpectFailure(t, img.Modified())
}

func TestApplyWriteFailure(t *testing.T) {
	tbl := smallTable(patch.Set{
		Name: "limit",
		Patches: []patch.Patch{
			patch.Byte(0x10, 0x00, 0x0a),
			patch.Byte(0x11, 0x00, 0x0a),
		},
	})

	img := readOnly{data: smallImage()}

	r, err := patch.NewEngine(tbl).Run(img, tbl.Profiles)
	test.DemandSuccess(t, err)
	test.ExpectEquality(t, r.Count(patch.WriteFailed), 2)
	test.ExpectSuccess(t, curated.Is(r.Results[1].Err, patch.WriteFailure))
}

func TestApplyReadFailure(t *testing.T) {
	tbl := smallTable(patch.Set{
		Name: "limit",
		Patches: []patch.Patch{
			patch.Dword(0x1fe, 0x00, 0x0a),
			patch.Byte(0x10, 0x00, 0x0a),
		},
	})

	img := target.NewMemory(smallImage())

	r, err := patch.NewEngine(tbl).Run(img, tbl.Profiles)
	test.DemandSuccess(t, err)
	test.DemandEquality(t, len(r.Results), 2)
	test.ExpectEquality(t, r.Results[0].Outcome, patch.ReadFailed)
	test.ExpectSuccess(t, curated.Is(r.Results[0].Err, patch.ReadFailure))
	test.ExpectEquality(t, r.Results[1].Outcome, patch.Applied)
}

func TestSetSelection(t *testing.T) {
	tbl := smallTable(
		patch.Set{
			Name:    "enabled",
			Patches: []patch.Patch{patch.Byte(0x10, 0x00, 0x01)},
		},
		patch.Set{
			Name:     "disabled",
			Disabled: true,
			Patches:  []patch.Patch{patch.Byte(0x11, 0x00, 0x01)},
		},
	)

	img := target.NewMemory(smallImage())
	eng := patch.NewEngine(tbl)

	r, err := eng.Apply(img, tbl.Profiles[0])
	test.DemandSuccess(t, err)
	test.ExpectEquality(t, len(r.Results), 1)
	test.DemandEquality(t, len(r.Skipped), 1)
	test.ExpectEquality(t, r.Skipped[0], "disabled")
	test.ExpectEquality(t, img.Bytes()[0x11], 0x00)

	img = target.NewMemory(smallImage())
	eng.Enable = []string{"disabled"}
	eng.Skip = []string{"enabled"}

	r, err = eng.Apply(img, tbl.Profiles[0])
	test.DemandSuccess(t, err)
	test.DemandEquality(t, len(r.Results), 1)
	test.ExpectEquality(t, r.Results[0].Set, "disabled")
	test.ExpectEquality(t, img.Bytes()[0x10], 0x00)
	test.ExpectEquality(t, img.Bytes()[0x11], 0x01)
}

func TestRelocationReserved(t *testing.T) {
	tbl := smallTable(patch.Set{
		Name: "move",
		Patches: []patch.Patch{
			patch.Relocate(0x10, 0x00734328, "second", 0),
			patch.Relocate(0x14, 0x0073432c, "second", 4),
		},
	})

	b := smallImage()
	copy(b[0x10:], patch.Width32.Encode(0x00734328))
	copy(b[0x14:], patch.Width32.Encode(0x0073432c))
	img := target.NewMemory(b)

	r, err := patch.NewEngine(tbl).Run(img, tbl.Profiles)
	test.DemandSuccess(t, err)
	test.ExpectSuccess(t, r.Complete())
	test.ExpectSuccess(t, r.Relocated)

	// the image is 0x200 bytes long so the section is reserved at the next
	// page boundary
	test.ExpectEquality(t, r.SectionBase, 0x1000)
	test.ExpectEquality(t, img.Len(), 0x1000+0x140)
	test.ExpectEquality(t, patch.Width32.Decode(img.Bytes()[0x10:0x14]), 0x1100)
	test.ExpectEquality(t, patch.Width32.Decode(img.Bytes()[0x14:0x18]), 0x1104)
}

func TestRelocationConfigured(t *testing.T) {
	tbl := smallTable(patch.Set{
		Name: "move",
		Patches: []patch.Patch{
			patch.Byte(0x20, 0x00, 0x01),
			patch.Relocate(0x10, 0x00000000, "first", 0x10),
		},
	})

	img := fixed{data: smallImage()}
	eng := patch.NewEngine(tbl)

	// the image cannot reserve the section and no base has been configured.
	// nothing is written
	_, err := eng.Run(img, tbl.Profiles)
	test.ExpectSuccess(t, curated.Is(err, patch.NoSection))
	test.ExpectEquality(t, img.data[0x20], 0x00)

	eng.SectionBase = 0x00800000
	r, err := eng.Run(img, tbl.Profiles)
	test.DemandSuccess(t, err)
	test.ExpectSuccess(t, r.Complete())
	test.ExpectEquality(t, patch.Width32.Decode(img.data[0x10:0x14]), 0x00800010)
}

func TestRelocationZeroSection(t *testing.T) {
	tbl := smallTable(patch.Set{
		Name:    "move",
		Patches: []patch.Patch{patch.Relocate(0x10, 0x00000000, "second", 0x10)},
	})

	img := fixed{data: smallImage()}
	eng := patch.NewEngine(tbl)
	eng.AllowZeroSection = true

	r, err := eng.Run(img, tbl.Profiles)
	test.DemandSuccess(t, err)
	test.ExpectSuccess(t, r.Complete())
	test.ExpectEquality(t, patch.Width32.Decode(img.data[0x10:0x14]), 0x110)
}

func TestRelocationUnknownRegion(t *testing.T) {
	tbl := smallTable(patch.Set{
		Name: "move",
		Patches: []patch.Patch{
			patch.Byte(0x20, 0x00, 0x01),
			patch.Relocate(0x10, 0x00000000, "missing", 0),
		},
	})

	img := fixed{data: smallImage()}
	eng := patch.NewEngine(tbl)
	eng.SectionBase = 0x1000

	// resolution happens before any patch is written
	_, err := eng.Run(img, tbl.Profiles)
	test.ExpectSuccess(t, curated.Has(err, patch.UnknownRegion))
	test.ExpectEquality(t, img.data[0x20], 0x00)
}

func TestRevert(t *testing.T) {
	tbl := smallTable(patch.Set{
		Name: "limit",
		Patches: []patch.Patch{
			patch.Word(0x10, 0x2340, 0x2740),
			patch.Relocate(0x20, 0x00734328, "first", 0),
		},
	})

	b := smallImage()
	copy(b[0x10:], patch.Width16.Encode(0x2340))
	copy(b[0x20:], patch.Width32.Encode(0x00734328))
	original := string(b)

	img := fixed{data: b}
	eng := patch.NewEngine(tbl)
	eng.SectionBase = 0x00900000

	r, err := eng.Run(img, tbl.Profiles)
	test.DemandSuccess(t, err)
	test.ExpectSuccess(t, r.Complete())
	test.ExpectInequality(t, string(img.data), original)

	r, err = eng.Revert(img, tbl.Profiles[0])
	test.DemandSuccess(t, err)
	test.ExpectSuccess(t, r.Complete())
	test.ExpectEquality(t, r.Operation, patch.OpRevert)
	test.ExpectEquality(t, string(img.data), original)

	// reverting an unpatched image fails verification
	r, err = eng.Revert(img, tbl.Profiles[0])
	test.DemandSuccess(t, err)
	test.ExpectEquality(t, r.Count(patch.Mismatch), 2)
}

func TestRelocationDefectNotReserved(t *testing.T) {
	tbl := smallTable(patch.Set{
		Name: "move",
		Patches: []patch.Patch{
			patch.Byte(0x20, 0x00, 0x01),
			patch.Relocate(0x10, 0x00000000, "missing", 0),
		},
	})

	img := target.NewMemory(smallImage())

	// the image is not extended if the table cannot be resolved
	_, err := patch.NewEngine(tbl).Run(img, tbl.Profiles)
	test.DemandFailure(t, err)
	test.ExpectSuccess(t, curated.Has(err, patch.UnknownRegion))
	test.ExpectEquality(t, img.Len(), 0x200)
	test.ExpectFailure(t, img.Modified())
}

func TestRelocationReservedOnce(t *testing.T) {
	tbl := smallTable(patch.Set{
		Name:    "move",
		Patches: []patch.Patch{patch.Relocate(0x10, 0x00734328, "second", 0)},
	})

	b := smallImage()
	copy(b[0x10:], patch.Width32.Encode(0x00734328))
	img := target.NewMemory(b)
	eng := patch.NewEngine(tbl)

	r, err := eng.Run(img, tbl.Profiles)
	test.DemandSuccess(t, err)
	test.ExpectSuccess(t, r.Complete())
	test.ExpectEquality(t, img.Len(), 0x1000+0x140)

	// no relocating patch can be applied a second time so the section is not
	// reserved again
	r, err = eng.Run(img, tbl.Profiles)
	test.DemandSuccess(t, err)
	test.ExpectEquality(t, r.Count(patch.Mismatch), 1)
	test.ExpectFailure(t, r.Relocated)
	test.ExpectEquality(t, r.SectionBase, 0)
	test.ExpectEquality(t, img.Len(), 0x1000+0x140)
}
