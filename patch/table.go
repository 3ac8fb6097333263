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

package patch

import (
	"sort"

	"github.com/limitpatch/limitpatch/curated"
	"github.com/limitpatch/limitpatch/layout"
)

// Table is the complete, immutable description of everything that can be
// patched: the layout of the extended section and the profile for every
// recognised executable.
type Table struct {
	Layout   layout.Layout
	Profiles []Profile
}

// Profile returns the named profile.
func (t Table) Profile(name string) (Profile, bool) {
	for _, p := range t.Profiles {
		if p.Name == name {
			return p, true
		}
	}
	return Profile{}, false
}

// Validate the table for configuration defects. Errors are returned in two
// lists: defects that make the table unusable and warnings about things that
// are suspicious but which do not prevent patching.
//
// Defects are duplicate profile names, profiles that could never be told apart
// by identification, invalid widths, and relocating patches that refer to a
// region that does not exist or to an offset outside of the region.
//
// Warnings are patches in the same set whose byte ranges overlap. Only the
// first of two overlapping patches can succeed.
func (t Table) Validate() (defects []error, warnings []error) {
	type identity struct {
		address uint32
		id      uint64
		width   Width
	}
	ids := make(map[identity]string)
	names := make(map[string]bool)

	for _, p := range t.Profiles {
		if names[p.Name] {
			defects = append(defects, curated.Errorf(DuplicateProfile, p.Name))
		}
		names[p.Name] = true

		if !p.Width().Valid() {
			defects = append(defects, curated.Errorf(InvalidIDWidth, p.Name))
		}

		k := identity{address: p.IDAddress, id: p.ExpectedID, width: p.Width()}
		if other, ok := ids[k]; ok {
			defects = append(defects, curated.Errorf(DuplicateIdentity, other, p.Name))
		} else {
			ids[k] = p.Name
		}

		for _, s := range p.Sets {
			defects = append(defects, t.validatePatches(s)...)
			warnings = append(warnings, overlapping(p, s)...)
		}
	}

	return defects, warnings
}

func (t Table) validatePatches(s Set) []error {
	var errs []error

	for _, p := range s.Patches {
		switch p := deref(p).(type) {
		case Direct:
			if !p.Size.Valid() {
				errs = append(errs, curated.Errorf(InvalidWidth, p.Addr, int(p.Size)))
				continue
			}
			if !p.Size.Fits(p.Orig) || !p.Size.Fits(p.Replacement) {
				errs = append(errs, curated.Errorf(WidthMismatch, p.Addr))
			}

		case Relocating:
			a, ok := t.Layout.Lookup(p.Region)
			if !ok {
				errs = append(errs, curated.Errorf(UnknownRegion, p.Region, p.Addr))
				continue
			}
			if p.Offset >= a.Size() {
				errs = append(errs, curated.Errorf(OffsetOutOfRegion, p.Offset, p.Region, p.Addr))
			}
		}
	}

	return errs
}

// overlapping returns a warning for every patch in the set whose byte range
// overlaps that of a patch at a lower address.
func overlapping(p Profile, s Set) []error {
	sorted := make([]Patch, len(s.Patches))
	copy(sorted, s.Patches)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Address() < sorted[j].Address()
	})

	var errs []error
	var prev Patch
	var end uint64
	for _, ptc := range sorted {
		if prev != nil && end > uint64(ptc.Address()) {
			errs = append(errs, curated.Errorf(OverlappingPatches, p.Name+"/"+s.Name, prev.Address(), ptc.Address()))
		}

		// the patch reaching furthest is the one later patches are compared with
		if e := uint64(ptc.Address()) + uint64(ptc.Width()); prev == nil || e > end {
			prev = ptc
			end = e
		}
	}
	return errs
}
