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

// Set is a named and ordered collection of patches that together implement
// one fix or feature.
type Set struct {
	// name of the set. only used for logging and reporting
	Name string

	// disabled sets are part of the table but are not applied unless they are
	// explicitly enabled
	Disabled bool

	Patches []Patch
}

// Profile is the identity of one compiled variant of the target executable
// and the patch sets that apply to it.
type Profile struct {
	Name string

	// the value at IDAddress must equal ExpectedID for the profile to match.
	// the number of bytes compared is IDWidth. the zero value for IDWidth is
	// treated as Width64
	IDAddress  uint32
	ExpectedID uint64
	IDWidth    Width

	Sets []Set
}

// Width of the identity value.
func (p Profile) Width() Width {
	if p.IDWidth == 0 {
		return Width64
	}
	return p.IDWidth
}

// Set returns the named set.
func (p Profile) Set(name string) (Set, bool) {
	for _, s := range p.Sets {
		if s.Name == name {
			return s, true
		}
	}
	return Set{}, false
}

// NumPatches returns the number of patches in all sets, enabled or not.
func (p Profile) NumPatches() int {
	var n int
	for _, s := range p.Sets {
		n += len(s.Patches)
	}
	return n
}

// relocates returns true if any of the sets contain a relocating patch.
func relocates(sets []Set) bool {
	for _, s := range sets {
		for _, p := range s.Patches {
			switch p.(type) {
			case Relocating, *Relocating:
				return true
			}
		}
	}
	return false
}
