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
	"fmt"

	"github.com/limitpatch/limitpatch/curated"
	"github.com/limitpatch/limitpatch/layout"
)

// Patch is a single modification to the target. There are two
// implementations: Direct and Relocating.
//
// The interface is sealed. The apply algorithm must never treat the value of
// a relocating patch as a literal so the only way to obtain the bytes to write
// is through the Resolve() function.
type Patch interface {
	// the address of the patch in the target
	Address() uint32

	// the number of bytes read and written by the patch
	Width() Width

	// the value expected at the address before the patch is applied
	Original() uint64

	// a short description of the patch. usually the name of the function
	// containing the patched instruction
	Description() string

	String() string

	sealed()
}

// Direct is a patch whose replacement value is a literal.
type Direct struct {
	Addr        uint32
	Size        Width
	Orig        uint64
	Replacement uint64
	Comment     string
}

// Byte creates a Direct patch of one byte.
func Byte(address uint32, original, replacement uint8) Direct {
	return Direct{Addr: address, Size: Width8, Orig: uint64(original), Replacement: uint64(replacement)}
}

// Word creates a Direct patch of two bytes.
func Word(address uint32, original, replacement uint16) Direct {
	return Direct{Addr: address, Size: Width16, Orig: uint64(original), Replacement: uint64(replacement)}
}

// Dword creates a Direct patch of four bytes.
func Dword(address uint32, original, replacement uint32) Direct {
	return Direct{Addr: address, Size: Width32, Orig: uint64(original), Replacement: uint64(replacement)}
}

// Describe returns a copy of the patch with the description set.
func (p Direct) Describe(comment string) Direct {
	p.Comment = comment
	return p
}

// Address implements the Patch interface.
func (p Direct) Address() uint32 { return p.Addr }

// Width implements the Patch interface.
func (p Direct) Width() Width { return p.Size }

// Original implements the Patch interface.
func (p Direct) Original() uint64 { return p.Orig }

// Description implements the Patch interface.
func (p Direct) Description() string { return p.Comment }

func (p Direct) String() string {
	return fmt.Sprintf("0x%06x %s %#x -> %#x", p.Addr, p.Size, p.Orig, p.Replacement)
}

func (p Direct) sealed() {}

// Relocating is a patch that redirects a pointer into the extended section.
// The pointer is always four bytes wide.
//
// The value written is the address of the extended section in the target plus
// the start of the named region in the section layout plus Offset. The Offset
// is the distance of the original pointer from the beginning of the data
// structure being relocated. Patches that point into the same structure from
// different places must therefore preserve their relative distances.
type Relocating struct {
	Addr    uint32
	Orig    uint32
	Region  string
	Offset  uint32
	Comment string
}

// Relocate creates a Relocating patch.
func Relocate(address uint32, original uint32, region string, offset uint32) Relocating {
	return Relocating{Addr: address, Orig: original, Region: region, Offset: offset}
}

// Describe returns a copy of the patch with the description set.
func (p Relocating) Describe(comment string) Relocating {
	p.Comment = comment
	return p
}

// Address implements the Patch interface.
func (p Relocating) Address() uint32 { return p.Addr }

// Width implements the Patch interface.
func (p Relocating) Width() Width { return Width32 }

// Original implements the Patch interface.
func (p Relocating) Original() uint64 { return uint64(p.Orig) }

// Description implements the Patch interface.
func (p Relocating) Description() string { return p.Comment }

func (p Relocating) String() string {
	return fmt.Sprintf("0x%06x %s %#x -> %s+%#x", p.Addr, Width32, p.Orig, p.Region, p.Offset)
}

func (p Relocating) sealed() {}

// Resolved is a patch with the replacement value decided. It is ready to be
// verified and written.
type Resolved struct {
	Patch       Patch
	Original    []byte
	Replacement []byte
}

// Resolve the bytes to be written for a patch. For relocating patches, base
// is the address of the extended section in the target.
func Resolve(p Patch, l layout.Layout, base uint32) (Resolved, error) {
	switch p := p.(type) {
	case *Direct:
		return Resolve(*p, l, base)

	case *Relocating:
		return Resolve(*p, l, base)

	case Direct:
		if !p.Size.Valid() {
			return Resolved{}, curated.Errorf(InvalidWidth, p.Addr, int(p.Size))
		}
		return Resolved{
			Patch:       p,
			Original:    p.Size.Encode(p.Orig),
			Replacement: p.Size.Encode(p.Replacement),
		}, nil

	case Relocating:
		a, ok := l.Lookup(p.Region)
		if !ok {
			return Resolved{}, curated.Errorf(UnknownRegion, p.Region, p.Addr)
		}

		v := uint64(base) + uint64(a.Start) + uint64(p.Offset)
		if !Width32.Fits(v) {
			return Resolved{}, curated.Errorf(RelocationOverflow, p.Addr, v)
		}

		return Resolved{
			Patch:       p,
			Original:    Width32.Encode(uint64(p.Orig)),
			Replacement: Width32.Encode(v),
		}, nil
	}

	panic(fmt.Sprintf("patch: unhandled patch type %T", p))
}

// deref returns the value of a patch given by pointer.
func deref(p Patch) Patch {
	switch p := p.(type) {
	case *Direct:
		return *p
	case *Relocating:
		return *p
	}
	return p
}
