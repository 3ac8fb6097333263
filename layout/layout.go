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

package layout

import "fmt"

// Region is a named, fixed size sub-region of the extended section.
type Region struct {
	Name string
	Size uint32
}

// Allocation is a Region with its position in the extended section.
type Allocation struct {
	Name  string
	Start uint32
	End   uint32
}

// Size of the allocation in bytes.
func (a Allocation) Size() uint32 {
	return a.End - a.Start
}

func (a Allocation) String() string {
	return fmt.Sprintf("%s: 0x%06x - 0x%06x (%#x bytes)", a.Name, a.Start, a.End, a.Size())
}

// Layout is the computed arrangement of regions in the extended section.
// Regions are packed in declaration order from offset zero with no gaps.
//
// A Layout is immutable once computed and is safe to share.
type Layout struct {
	allocations []Allocation
	index       map[string]int
	size        uint32
}

// Compute the Layout for an ordered list of regions. The start offset of each
// region is the sum of the sizes of all regions declared before it.
//
// The region list is a compile time constant so a region list that cannot be
// laid out (a duplicate name or a total size that overflows 32 bits) is a
// programming error and causes a panic.
func Compute(regions []Region) Layout {
	l := Layout{
		allocations: make([]Allocation, 0, len(regions)),
		index:       make(map[string]int, len(regions)),
	}

	for _, r := range regions {
		if _, ok := l.index[r.Name]; ok {
			panic(fmt.Sprintf("layout: duplicate region name %q", r.Name))
		}

		end := l.size + r.Size
		if end < l.size {
			panic(fmt.Sprintf("layout: region %q overflows the extended section", r.Name))
		}

		l.index[r.Name] = len(l.allocations)
		l.allocations = append(l.allocations, Allocation{
			Name:  r.Name,
			Start: l.size,
			End:   end,
		})
		l.size = end
	}

	return l
}

// Size is the total size of the extended section. This is the number of bytes
// that must be reserved in the target before relocating patches are applied.
func (l Layout) Size() uint32 {
	return l.size
}

// Lookup returns the allocation for the named region.
func (l Layout) Lookup(name string) (Allocation, bool) {
	i, ok := l.index[name]
	if !ok {
		return Allocation{}, false
	}
	return l.allocations[i], true
}

// Start returns the start offset of the named region.
func (l Layout) Start(name string) (uint32, bool) {
	a, ok := l.Lookup(name)
	return a.Start, ok
}

// Allocations returns a copy of every allocation in declaration order.
func (l Layout) Allocations() []Allocation {
	c := make([]Allocation, len(l.allocations))
	copy(c, l.allocations)
	return c
}
